package fetcher

import (
	"net/http"
	"time"

	applog "github.com/darkkaiser/storefront-server/pkg/log"
)

// component 로그의 component 필드에 기록되는 식별자입니다.
const component = "fetcher"

// LoggingFetcher 체인 최외곽에서 전체 요청 생애주기(재시도 포함)를 기록하는 미들웨어입니다.
type LoggingFetcher struct {
	delegate Fetcher
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*LoggingFetcher)(nil)

// NewLoggingFetcher 새로운 LoggingFetcher 인스턴스를 생성합니다.
func NewLoggingFetcher(delegate Fetcher) *LoggingFetcher {
	return &LoggingFetcher{
		delegate: delegate,
	}
}

// Do HTTP 요청을 수행하고 소요 시간과 결과를 로깅합니다.
func (f *LoggingFetcher) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := f.delegate.Do(req)

	fields := applog.Fields{
		"url":      redactURL(req.URL),
		"method":   req.Method,
		"duration": time.Since(start).String(),
	}

	if err != nil {
		applog.WithComponentAndFields(component, fields).WithError(err).Error("HTTP 요청 실패")
		return nil, err
	}

	fields["status_code"] = resp.StatusCode
	applog.WithComponentAndFields(component, fields).Debug("HTTP 요청 완료")

	return resp, nil
}
