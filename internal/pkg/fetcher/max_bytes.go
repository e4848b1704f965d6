package fetcher

import (
	"errors"
	"io"
	"net/http"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
)

const (
	// defaultMaxBytes 응답 본문의 기본 크기 제한값입니다. (10MB)
	defaultMaxBytes = 10 * 1024 * 1024

	// NoLimit 응답 본문에 대한 크기 제한을 적용하지 않음을 나타내는 특수 상수입니다.
	NoLimit = -1
)

// newErrResponseBodyTooLarge 응답 본문 크기 제한 초과 에러를 생성합니다.
func newErrResponseBodyTooLarge(limit int64) error {
	return apperrors.Newf(apperrors.ExecutionFailed, "HTTP 응답 본문이 허용된 최대 크기(%d바이트)를 초과하였습니다.", limit)
}

// maxBytesReader http.MaxBytesReader를 래핑하여 apperrors 형식의 에러를 제공합니다.
type maxBytesReader struct {
	rc io.ReadCloser

	// 바이트 수 제한값 (에러 메시지에 포함하기 위해 저장)
	limit int64
}

// Read 데이터를 읽으며, 크기 제한 초과 시 apperrors로 변환합니다.
func (r *maxBytesReader) Read(p []byte) (n int, err error) {
	n, err = r.rc.Read(p)
	if err != nil {
		// http.MaxBytesReader는 제한 초과 시 *http.MaxBytesError를 반환합니다.
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return n, newErrResponseBodyTooLarge(r.limit)
		}
	}

	return n, err
}

// Close 래핑된 ReadCloser를 닫습니다.
func (r *maxBytesReader) Close() error {
	return r.rc.Close()
}

// MaxBytesFetcher HTTP 응답 본문의 크기를 제한하는 미들웨어입니다.
//
//   - Content-Length 헤더 기반 조기 차단 (네트워크 대역폭 절약)
//   - 실제 읽기 시점의 바이트 수 제한 (Content-Length 조작 방어)
type MaxBytesFetcher struct {
	delegate Fetcher

	// 응답 본문의 최대 허용 바이트 수
	limit int64
}

// NewMaxBytesFetcher 새로운 MaxBytesFetcher 인스턴스를 생성합니다.
// limit이 NoLimit(-1)이면 제한을 적용하지 않고 delegate를 그대로 반환합니다.
func NewMaxBytesFetcher(delegate Fetcher, limit int64) Fetcher {
	if limit == NoLimit {
		return delegate
	}
	if limit <= 0 {
		limit = defaultMaxBytes
	}

	return &MaxBytesFetcher{
		delegate: delegate,
		limit:    limit,
	}
}

// Do HTTP 요청을 수행하고 응답 본문에 크기 제한을 적용합니다.
// 반환된 응답의 Body는 반드시 호출자가 닫아야 합니다.
func (f *MaxBytesFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	// 1차 방어: Content-Length 헤더 기반 조기 차단
	if resp.ContentLength > f.limit {
		drainAndCloseBody(resp.Body)
		return nil, newErrResponseBodyTooLarge(f.limit)
	}

	// 2차 방어: 실제 읽기 시점의 바이트 수 제한
	// http.MaxBytesReader는 Content-Length를 신뢰하지 않고 실제 읽은 바이트 수로 제한하므로
	// 헤더가 없거나 조작된 응답도 방어할 수 있습니다.
	if resp.Body != nil {
		resp.Body = &maxBytesReader{
			rc:    http.MaxBytesReader(nil, resp.Body, f.limit),
			limit: f.limit,
		}
	}

	return resp, nil
}
