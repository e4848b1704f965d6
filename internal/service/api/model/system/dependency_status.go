// Package system 시스템 엔드포인트의 응답 모델을 정의합니다.
package system

// DependencyStatus 외부 의존성 하나의 상태입니다.
type DependencyStatus struct {
	// Status 의존성 상태 (healthy, unhealthy)
	Status string `json:"status"`

	// Message 상태에 대한 부가 설명
	Message string `json:"message"`
}
