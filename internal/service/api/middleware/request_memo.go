package middleware

import (
	"github.com/darkkaiser/storefront-server/internal/service/cache"
	"github.com/labstack/echo/v4"
)

// contextKeyRequestMemo 요청 범위 Memo가 저장되는 echo 컨텍스트 키입니다.
const contextKeyRequestMemo = "request_memo"

// RequestMemo 요청마다 새로운 cache.Memo를 컨텍스트에 부착하는 미들웨어를 반환합니다.
//
// 하나의 요청을 처리하는 동안 동일한 데이터 조회가 반복되면 Memo가 중복 호출을
// 제거합니다. Memo의 수명은 정확히 요청 하나이며, 요청 간에 공유되지 않습니다.
func RequestMemo() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(contextKeyRequestMemo, cache.NewMemo())
			return next(c)
		}
	}
}

// MemoFrom 컨텍스트에서 요청 범위 Memo를 꺼냅니다.
// RequestMemo 미들웨어가 적용되지 않은 경로에서는 새 Memo를 반환하여 호출부를 단순화합니다.
func MemoFrom(c echo.Context) *cache.Memo {
	if memo, ok := c.Get(contextKeyRequestMemo).(*cache.Memo); ok {
		return memo
	}
	return cache.NewMemo()
}
