// Package contract 서비스 간에 공유되는 최소 인터페이스 계약을 정의합니다.
// 구현 패키지 간의 직접 의존(순환 참조)을 피하기 위해 별도 패키지로 분리합니다.
package contract

// NotificationSender 운영 알림 발송 기능을 제공하는 인터페이스입니다.
// 재검증 서비스와 API 서비스는 이 인터페이스를 통해 알림 서비스를 사용합니다.
type NotificationSender interface {
	// NotifyDefault 기본 알림 채널로 메시지를 발송합니다.
	// 발송 요청이 큐에 정상 등록되면 nil을 반환하며, 실제 전송 결과와는 무관합니다.
	NotifyDefault(message string) error

	// NotifyDefaultWithError 기본 알림 채널로 "오류" 성격의 메시지를 발송합니다.
	// 관리자의 주의가 필요한 긴급 상황 알림에 사용합니다.
	NotifyDefaultWithError(message string) error
}
