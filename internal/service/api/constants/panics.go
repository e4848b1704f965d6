package constants

// 시스템 시작/구동 시 발생할 수 있는 크리티컬한 패닉 메시지 상수입니다.
const (
	// PanicMsgAppConfigRequired 패닉 메시지: AppConfig 필수
	PanicMsgAppConfigRequired = "AppConfig는 필수입니다"

	// PanicMsgNotificationSenderRequired 패닉 메시지: NotificationSender 필수
	PanicMsgNotificationSenderRequired = "NotificationSender는 필수입니다"

	// PanicMsgStoreRequired 패닉 메시지: 캐시 Store 필수
	PanicMsgStoreRequired = "cache.Store는 필수입니다"

	// PanicMsgCommerceClientRequired 패닉 메시지: 커머스 클라이언트 필수
	PanicMsgCommerceClientRequired = "커머스 클라이언트는 필수입니다"

	// PanicMsgContentClientRequired 패닉 메시지: 콘텐츠 클라이언트 필수
	PanicMsgContentClientRequired = "콘텐츠 클라이언트는 필수입니다"

	// PanicMsgAssistantRequired 패닉 메시지: 챗 어시스턴트 필수
	PanicMsgAssistantRequired = "챗 어시스턴트는 필수입니다"

	// PanicMsgRateLimitRequestsPerSecondInvalid 패닉 메시지: requestsPerSecond 설정 오류
	PanicMsgRateLimitRequestsPerSecondInvalid = "RateLimiting: requestsPerSecond는 양수여야 합니다"

	// PanicMsgRateLimitBurstInvalid 패닉 메시지: burst 설정 오류
	PanicMsgRateLimitBurstInvalid = "RateLimiting: burst는 양수여야 합니다"
)
