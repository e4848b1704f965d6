package fetcher

import (
	"net/http"
	"time"
)

const (
	// defaultTimeout HTTP 요청 전체에 대한 기본 타임아웃입니다.
	defaultTimeout = 30 * time.Second

	// defaultUserAgent 요청 헤더에 User-Agent가 없는 경우 사용되는 기본값입니다.
	defaultUserAgent = "storefront-server/1.0"
)

// HTTPFetcher 실제 네트워크 I/O를 담당하는 체인 최내곽의 HTTP 클라이언트 구현체입니다.
type HTTPFetcher struct {
	client *http.Client

	defaultUA string
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*HTTPFetcher)(nil)

// Option HTTPFetcher의 설정을 변경하기 위한 함수 타입입니다.
type Option func(*HTTPFetcher)

// WithTimeout HTTP 요청 전체에 대한 타임아웃을 설정합니다.
// DNS 조회, 연결, TLS 핸드셰이크, 응답 본문 읽기까지 모든 단계를 포함합니다.
func WithTimeout(timeout time.Duration) Option {
	return func(h *HTTPFetcher) {
		h.client.Timeout = timeout
	}
}

// WithTransport HTTP 클라이언트의 Transport를 직접 설정합니다.
// 커스텀 Dialer, TLS 설정 등 고급 설정이 필요한 경우에만 사용합니다.
func WithTransport(transport http.RoundTripper) Option {
	return func(h *HTTPFetcher) {
		h.client.Transport = transport
	}
}

// WithUserAgent 기본 User-Agent를 설정합니다.
// 요청 헤더에 User-Agent가 이미 설정되어 있으면 그 값이 우선적으로 사용됩니다.
func WithUserAgent(ua string) Option {
	return func(h *HTTPFetcher) {
		h.defaultUA = ua
	}
}

// NewHTTPFetcher 기본 타임아웃(30초) 설정이 포함된 새로운 HTTPFetcher 인스턴스를 생성합니다.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	h := &HTTPFetcher{
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		defaultUA: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Do HTTP 요청을 실행합니다.
// 요청 헤더에 User-Agent가 없는 경우 기본값을 자동으로 추가합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", h.defaultUA)
	}
	return h.client.Do(req)
}
