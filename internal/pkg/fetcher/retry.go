package fetcher

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"net/http"
	"slices"
	"time"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
)

const (
	// minAllowedRetries 허용 가능한 최소 재시도 횟수입니다. (0: 재시도 안 함)
	minAllowedRetries = 0

	// maxAllowedRetries 허용 가능한 최대 재시도 횟수입니다.
	maxAllowedRetries = 10

	// minAllowedRetryDelay 서버 부하 방지를 위한 재시도 대기 시간의 하한입니다.
	minAllowedRetryDelay = 1 * time.Second

	// defaultMaxRetryDelay 재시도 대기 시간 최대값의 기본값입니다.
	defaultMaxRetryDelay = 30 * time.Second
)

// RetryFetcher HTTP 요청 실패 시 자동으로 재시도를 수행하는 미들웨어입니다.
//
//   - 지수 백오프(Exponential Backoff): 재시도 간격을 지수적으로 증가시켜 서버 부하를 분산
//   - Jitter: 무작위 지연을 추가하여 동시 다발적인 재시도(Thundering Herd)를 방지
//   - 컨텍스트 취소 감지: 요청 취소 시 즉시 재시도 중단
type RetryFetcher struct {
	delegate Fetcher

	maxRetries    int
	minRetryDelay time.Duration
	maxRetryDelay time.Duration
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*RetryFetcher)(nil)

// NewRetryFetcher 새로운 RetryFetcher 인스턴스를 생성합니다.
func NewRetryFetcher(delegate Fetcher, maxRetries int, minRetryDelay time.Duration, maxRetryDelay time.Duration) *RetryFetcher {
	maxRetries = normalizeMaxRetries(maxRetries)
	minRetryDelay, maxRetryDelay = normalizeRetryDelays(minRetryDelay, maxRetryDelay)

	return &RetryFetcher{
		delegate:      delegate,
		maxRetries:    maxRetries,
		minRetryDelay: minRetryDelay,
		maxRetryDelay: maxRetryDelay,
	}
}

// normalizeMaxRetries 최대 재시도 횟수를 허용 범위로 보정합니다.
func normalizeMaxRetries(maxRetries int) int {
	if maxRetries < minAllowedRetries {
		return minAllowedRetries
	}
	if maxRetries > maxAllowedRetries {
		return maxAllowedRetries
	}
	return maxRetries
}

// normalizeRetryDelays 재시도 대기 시간의 최소값과 최대값을 함께 보정합니다.
func normalizeRetryDelays(minDelay, maxDelay time.Duration) (time.Duration, time.Duration) {
	if minDelay < minAllowedRetryDelay {
		minDelay = minAllowedRetryDelay
	}
	if maxDelay == 0 {
		maxDelay = defaultMaxRetryDelay
	}
	// 최대 재시도 대기 시간은 최소 재시도 대기 시간보다 작을 수 없습니다.
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return minDelay, maxDelay
}

// isIdempotentMethod 재시도가 안전한 멱등 메서드인지 확인합니다.
// POST, PATCH는 데이터 중복 생성/수정 위험이 있으므로 재시도에서 제외합니다.
func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

// retryableStatusCodes 재시도 대상 HTTP 상태 코드 판정에서 제외되는 5xx 코드입니다.
// 501(Not Implemented), 505(HTTP Version Not Supported), 511(Network Auth Required)은
// 재시도해도 결과가 달라지지 않습니다.
var nonRetryable5xx = []int{
	http.StatusNotImplemented,
	http.StatusHTTPVersionNotSupported,
	http.StatusNetworkAuthenticationRequired,
}

// isRetryableStatusCode 재시도 대상 상태 코드인지 확인합니다.
func isRetryableStatusCode(statusCode int) bool {
	if statusCode == http.StatusTooManyRequests || statusCode == http.StatusRequestTimeout {
		return true
	}
	if statusCode >= 500 && !slices.Contains(nonRetryable5xx, statusCode) {
		return true
	}
	return false
}

// isRetryableError 재시도 대상 에러인지 확인합니다.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// 컨텍스트 취소/만료는 호출자의 의도이므로 재시도하지 않습니다.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// 상태 코드 검증 에러: 5xx/429/408만 재시도 대상입니다.
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return isRetryableStatusCode(statusErr.StatusCode)
	}

	// 네트워크 오류 (타임아웃, 연결 실패 등)
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// 비즈니스 로직 에러는 재시도해도 결과가 달라지지 않습니다.
	if apperrors.Is(err, apperrors.ExecutionFailed) ||
		apperrors.Is(err, apperrors.InvalidInput) ||
		apperrors.Is(err, apperrors.Forbidden) ||
		apperrors.Is(err, apperrors.NotFound) {
		return false
	}

	// URL 에러 등 그 외 전송 계층 에러는 재시도 대상으로 간주합니다.
	return true
}

// Do HTTP 요청을 수행하며, 실패 시 지수 백오프 전략에 따라 자동으로 재시도합니다.
//
// 재시도 대상: 네트워크 오류, 5xx(501/505/511 제외), 429, 408.
// 재시도 제외: 컨텍스트 취소, 4xx 클라이언트 에러, 비멱등 메서드(POST/PATCH).
func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	effectiveMaxRetries := f.maxRetries

	// 비멱등 메서드는 재시도 시 데이터 중복 생성/수정 위험이 있으므로 재시도 비활성화!!
	if !isIdempotentMethod(req.Method) {
		effectiveMaxRetries = 0
	}

	// 재시도 시 요청 본문을 다시 읽어야 하므로, GetBody가 없으면 재시도만 비활성화하고
	// 요청 처리는 계속 진행합니다.
	if req.Body != nil && req.GetBody == nil && effectiveMaxRetries > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"url":    redactURL(req.URL),
			"method": req.Method,
		}).Warn("재시도 비활성화: 요청 본문 재생성 불가 (GetBody nil)")

		effectiveMaxRetries = 0
	}

	var lastErr error

	// 첫 번째 시도와 재시도를 포함하여 최대 `effectiveMaxRetries + 1`회 반복합니다.
	for i := 0; i <= effectiveMaxRetries; i++ {
		if i > 0 {
			// 지수 백오프: 1초 -> 2초 -> 4초 ... (maxRetryDelay 상한)
			delay := f.minRetryDelay * time.Duration(1<<(i-1))
			if delay > f.maxRetryDelay {
				delay = f.maxRetryDelay
			}

			// Full Jitter: 0 ~ delay 사이의 무작위 값을 선택해 동시 재시도를 분산합니다.
			if delay > 0 {
				delay = time.Duration(rand.Int64N(int64(delay) + 1))
			}
			if delay < time.Millisecond {
				delay = f.minRetryDelay
			}

			applog.WithComponentAndFields(component, applog.Fields{
				"url":         redactURL(req.URL),
				"retry":       i,
				"max_retries": effectiveMaxRetries,
				"delay":       delay.String(),
			}).Warn("HTTP 요청 재시도 대기")

			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(delay):
			}

			// 요청 본문 재구성
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, apperrors.Wrap(err, apperrors.Internal, "재시도를 위한 요청 본문 재구성에 실패했습니다.")
				}
				req.Body = body
			}
		}

		resp, err := f.delegate.Do(req)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}
	}

	return nil, lastErr
}
