package system

// HealthResponse 헬스체크 응답
type HealthResponse struct {
	// Status 전체 서버 상태 (healthy, unhealthy)
	Status string `json:"status"`

	// Uptime 서버 가동 시간(초)
	Uptime int64 `json:"uptime"`

	// Dependencies 외부 의존성별 상태
	Dependencies map[string]DependencyStatus `json:"dependencies"`
}
