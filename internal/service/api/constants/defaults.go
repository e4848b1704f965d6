package constants

import "time"

// 서버 설정 기본값 상수입니다.
const (
	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 시간 (60초)
	// 별도의 타임아웃 설정이 없는 경우 이 값이 적용되며, 요청 처리가 이 시간을 초과하면
	// 자동으로 취소되어 서버 리소스를 보호합니다.
	DefaultRequestTimeout = 60 * time.Second

	// DefaultReadTimeout 요청 본문 읽기 최대 대기 시간 (30초)
	DefaultReadTimeout = 30 * time.Second

	// DefaultReadHeaderTimeout HTTP 헤더 읽기 최대 대기 시간 (10초)
	// Slowloris DoS 공격을 방어하기 위해 헤더를 매우 느리게 전송하는
	// 악의적인 클라이언트의 연결 고갈 공격을 방지합니다.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout 응답 쓰기 최대 대기 시간 (120초)
	// AI 챗 SSE 스트림이 이 시간 안에 완료되어야 하므로 일반 요청보다 길게 설정합니다.
	DefaultWriteTimeout = 120 * time.Second

	// DefaultIdleTimeout Keep-Alive 연결의 유휴 상태 최대 허용 시간 (90초)
	DefaultIdleTimeout = 90 * time.Second

	// DefaultRateLimitPerSecond IP당 초당 허용 요청 수 (Token Bucket의 토큰 생성 속도)
	DefaultRateLimitPerSecond = 20

	// DefaultRateLimitBurst IP당 순간 최대 허용 요청 수 (Token Bucket의 버킷 크기)
	DefaultRateLimitBurst = 40

	// DefaultMaxBodySize 요청 본문의 최대 크기 (2MB)
	// 대용량 요청으로 인한 메모리 고갈 및 DoS 공격을 방지합니다.
	DefaultMaxBodySize = "2M"
)
