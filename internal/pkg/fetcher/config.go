package fetcher

import (
	"time"
)

// Config Fetcher 체인을 구성하기 위한 설정 옵션을 정의하는 구조체입니다.
type Config struct {
	// Timeout HTTP 요청 전체에 대한 타임아웃입니다.
	//   - nil: 설정하지 않음 (HTTPFetcher 기본값 사용)
	//   - 0: 타임아웃 없음 (무한 대기)
	//   - 양수: 지정된 시간으로 제한
	Timeout *time.Duration

	// MaxRetries 최대 재시도 횟수입니다.
	//   - 0: 재시도 안 함
	//   - 양수: 실패 시(5xx 에러 또는 네트워크 오류 등) 지정된 횟수만큼 재시도
	//   - 허용 범위(0~10)를 벗어나면 범위 내로 보정
	MaxRetries int

	// MinRetryDelay 재시도 대기 시간의 최소값입니다. (1초 미만은 1초로 보정)
	MinRetryDelay time.Duration

	// MaxRetryDelay 재시도 대기 시간의 최대값입니다. (0: 기본값 30초)
	MaxRetryDelay time.Duration

	// MaxBytes HTTP 응답 본문의 최대 허용 크기입니다. (단위: 바이트)
	//   - NoLimit(-1): 크기 제한을 적용하지 않음
	//   - 0 이하: 기본값(10MB)으로 보정
	MaxBytes int64

	// DisableStatusCodeValidation HTTP 응답 상태 코드 검증 사용 여부를 제어합니다.
	//   - false (기본값): 200 OK 또는 AllowedStatusCodes만 허용
	//   - true: 모든 상태 코드 허용 (커스텀 에러 처리가 필요한 경우)
	DisableStatusCodeValidation bool

	// AllowedStatusCodes 허용할 HTTP 응답 상태 코드 목록입니다.
	//   - nil/빈 슬라이스: 200 OK만 허용
	AllowedStatusCodes []int

	// DisableLogging HTTP 요청/응답 로깅 사용 여부를 제어합니다.
	DisableLogging bool
}

// New 주요 설정값(재시도 횟수, 지연 시간, 본문 크기 제한)만으로 Fetcher를 생성합니다.
// 상세 설정이 필요한 경우에는 NewFromConfig 함수를 직접 사용하세요.
func New(maxRetries int, minRetryDelay time.Duration, maxBytes int64, opts ...Option) Fetcher {
	return NewFromConfig(Config{
		MaxRetries:    maxRetries,
		MinRetryDelay: minRetryDelay,
		MaxBytes:      maxBytes,
	}, opts...)
}

// NewFromConfig Config를 기반으로 Fetcher 실행 체인을 생성합니다.
//
// 체인은 다음 순서로 구성됩니다 (바깥쪽 -> 안쪽):
//
//  1. LoggingFetcher    (최외곽): 모든 시도와 지연을 포함한 전체 요청 생애주기를 기록
//  2. RetryFetcher      (제어): 실패 시 지수 백오프 전략에 따라 재시도를 총괄 제어
//  3. StatusCodeFetcher (검증): HTTP 응답 상태 코드의 유효성을 검사
//  4. MaxBytesFetcher   (보호): 응답 본문의 크기를 감시하여 메모리 고갈을 방지
//  5. HTTPFetcher       (최내곽): 실제 네트워크 I/O 및 패킷 전송을 담당
//
// 검증 로직(StatusCode)은 각 시도(Attempt)마다 수행되어야 하므로 RetryFetcher
// 안쪽에 위치하며, LoggingFetcher는 재시도를 포함한 전체 흐름을 기록하기 위해
// 가장 바깥에 위치합니다.
func NewFromConfig(cfg Config, opts ...Option) Fetcher {
	var mergedOpts []Option

	if cfg.Timeout != nil {
		mergedOpts = append(mergedOpts, WithTimeout(*cfg.Timeout))
	}

	// 추가 옵션을 마지막에 추가하여 Config 기반 옵션을 덮어쓸 수 있도록 함!!
	mergedOpts = append(mergedOpts, opts...)

	// 1단계: 기본 HTTPFetcher 생성 (체인의 가장 안쪽)
	var f Fetcher = NewHTTPFetcher(mergedOpts...)

	// 2단계: HTTP 응답 본문의 크기 제한 미들웨어
	f = NewMaxBytesFetcher(f, cfg.MaxBytes)

	// 3단계: HTTP 응답 상태 코드 검증 미들웨어
	if !cfg.DisableStatusCodeValidation {
		if len(cfg.AllowedStatusCodes) > 0 {
			f = NewStatusCodeFetcherWithOptions(f, cfg.AllowedStatusCodes...)
		} else {
			f = NewStatusCodeFetcher(f)
		}
	}

	// 4단계: HTTP 요청 재시도 수행 미들웨어
	f = NewRetryFetcher(f, cfg.MaxRetries, cfg.MinRetryDelay, cfg.MaxRetryDelay)

	// 5단계: 로깅 미들웨어 (체인의 가장 바깥쪽)
	if !cfg.DisableLogging {
		f = NewLoggingFetcher(f)
	}

	return f
}
