package system

// VersionResponse 버전 정보 응답
type VersionResponse struct {
	// Version 서버 버전 (Git 태그 또는 커밋 기반)
	Version string `json:"version"`

	// BuildDate 빌드 일시
	BuildDate string `json:"build_date"`

	// Commit Git 커밋 해시
	Commit string `json:"commit"`

	// BuildNumber 빌드 번호
	BuildNumber string `json:"build_number"`

	// GoVersion 빌드에 사용된 Go 버전
	GoVersion string `json:"go_version"`
}
