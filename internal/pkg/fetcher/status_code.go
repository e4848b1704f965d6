package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
)

// bodySnippetLimit 에러에 포함할 응답 본문의 최대 크기입니다. (4KB)
const bodySnippetLimit = 4 * 1024

// HTTPStatusError HTTP 요청 실패 시 상태 코드와 응답 정보를 포함하는 구조화된 에러입니다.
//
// 상태 코드, URL, 응답 헤더, 응답 본문 일부를 구조화된 필드로 제공하여
// 호출자가 에러 상황을 정확히 파악하고 적절한 대응(재시도, 로깅, 알림 등)을
// 할 수 있도록 돕습니다. Cause 필드에 apperrors.AppError를 포함하여
// 표준 Unwrap() 기반의 에러 체이닝을 지원합니다.
type HTTPStatusError struct {
	// StatusCode 서버가 반환한 HTTP 상태 코드입니다.
	StatusCode int

	// Status HTTP 상태 코드에 대응하는 텍스트 설명입니다. (예: "404 Not Found")
	Status string

	// URL 요청을 보낸 대상 URL입니다. (자격증명은 마스킹됨)
	URL string

	// Header 서버가 반환한 HTTP 응답 헤더입니다.
	Header http.Header

	// BodySnippet 응답 본문의 앞부분(최대 4KB)입니다. 디버깅 용도로 사용됩니다.
	BodySnippet string

	// Cause 이 HTTP 에러의 근본 원인이 되는 내부 도메인 에러입니다.
	Cause error
}

// Error 표준 error 인터페이스를 구현합니다.
func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += fmt.Sprintf(" URL: %s", e.URL)
	}
	if e.BodySnippet != "" {
		msg += fmt.Sprintf(", Body: %s", e.BodySnippet)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

// Unwrap 표준 errors.Unwrap 인터페이스를 구현합니다.
func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}

// classifyStatusCode HTTP 상태 코드를 에러 타입으로 분류합니다.
func classifyStatusCode(statusCode int) apperrors.ErrorType {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return apperrors.Unauthorized
	case statusCode == http.StatusNotFound:
		return apperrors.NotFound
	case statusCode == http.StatusTooManyRequests:
		return apperrors.Unavailable
	case statusCode >= 500:
		return apperrors.Unavailable
	default:
		return apperrors.ExecutionFailed
	}
}

// redactURL URL에서 자격증명(비밀번호 등)을 제거한 문자열을 반환합니다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Redacted()
}

// newHTTPStatusError 허용되지 않은 상태 코드에 대한 HTTPStatusError를 생성합니다.
// 응답 본문의 앞부분을 읽어 BodySnippet에 보관합니다.
func newHTTPStatusError(resp *http.Response) *HTTPStatusError {
	var snippet string
	if resp.Body != nil {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, bodySnippetLimit))
		snippet = strings.TrimSpace(string(data))
	}

	errType := classifyStatusCode(resp.StatusCode)

	return &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		URL:         redactURL(resp.Request.URL),
		Header:      resp.Header,
		BodySnippet: snippet,
		Cause:       apperrors.Newf(errType, "허용되지 않은 HTTP 응답 상태 코드입니다. (%d)", resp.StatusCode),
	}
}

// StatusCodeFetcher HTTP 응답의 상태 코드를 검증하는 미들웨어입니다.
//
//   - 허용된 HTTP 상태 코드만 성공으로 처리합니다.
//   - 실패한 응답의 리소스를 안전하게 정리하여 커넥션 재사용을 보장합니다.
type StatusCodeFetcher struct {
	delegate Fetcher

	// allowedStatusCodes 허용할 HTTP 상태 코드 목록입니다.
	// nil 또는 빈 슬라이스인 경우 200 OK만 허용합니다.
	allowedStatusCodes []int
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher 200 OK만 허용하는 StatusCodeFetcher 인스턴스를 생성합니다.
func NewStatusCodeFetcher(delegate Fetcher) *StatusCodeFetcher {
	return &StatusCodeFetcher{
		delegate: delegate,
	}
}

// NewStatusCodeFetcherWithOptions 특정 HTTP 상태 코드들을 허용하는 StatusCodeFetcher 인스턴스를 생성합니다.
func NewStatusCodeFetcherWithOptions(delegate Fetcher, allowedStatusCodes ...int) *StatusCodeFetcher {
	return &StatusCodeFetcher{
		delegate:           delegate,
		allowedStatusCodes: allowedStatusCodes,
	}
}

// Do HTTP 요청을 수행하고 응답 상태 코드를 검증합니다.
//
// 에러 발생 시 응답 객체의 Body는 내부에서 정리되므로 호출자가 닫을 필요가 없습니다.
// 성공 시에는 호출자가 반드시 응답 객체의 Body를 닫아야 합니다.
func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	allowed := f.allowedStatusCodes
	if len(allowed) == 0 {
		allowed = []int{http.StatusOK}
	}

	if !slices.Contains(allowed, resp.StatusCode) {
		statusErr := newHTTPStatusError(resp)
		drainAndCloseBody(resp.Body)
		return nil, statusErr
	}

	return resp, nil
}
