// Package fetcher 업스트림 API 호출을 위한 HTTP 클라이언트 체인을 제공합니다.
//
// Fetcher 체인은 책임 연쇄 패턴(Chain of Responsibility)을 따르며,
// 로깅, 재시도, 상태 코드 검증, 응답 크기 제한 미들웨어를 조합하여 구성됩니다.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
)

// Fetcher HTTP 요청을 수행하는 인터페이스
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// FetchJSON HTTP 요청을 수행하고 응답 본문(JSON)을 지정된 구조체(v)로 디코딩합니다.
func FetchJSON(ctx context.Context, f Fetcher, method, url string, header map[string]string, body io.Reader, v any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, fmt.Sprintf("JSON 요청 생성에 실패했습니다. (URL: %s)", url))
	}
	for key, value := range header {
		req.Header.Set(key, value)
	}

	resp, err := f.Do(req)
	if err != nil {
		// 상태 코드 검증 에러는 체인 내부에서 이미 분류되어 있으므로 그대로 전파합니다.
		var statusErr *HTTPStatusError
		if apperrors.As(err, &statusErr) {
			return err
		}
		return apperrors.Wrap(err, apperrors.Unavailable, fmt.Sprintf("JSON API(%s) 요청 전송 중 에러가 발생했습니다.", url))
	}
	defer resp.Body.Close() // 응답을 받은 즉시 defer 설정하여 메모리 누수 방지

	// json.Decoder를 사용하여 스트림 방식으로 JSON 파싱 (메모리 효율적)
	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("불러온 응답(%s) 데이터의 JSON 변환이 실패하였습니다.", url))
	}

	return nil
}

// drainAndCloseBody 응답 본문을 안전하게 비우고 닫습니다.
// 커넥션 재사용을 위해 에러 경로에서도 Body를 끝까지 읽어야 합니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}

	// 과도한 데이터 소비를 방지하기 위해 최대 64KB까지만 읽습니다.
	_, _ = io.CopyN(io.Discard, body, 64*1024)
	_ = body.Close()
}
