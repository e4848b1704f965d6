// Package cart 장바구니 식별자의 쿠키 영속화와 원격 장바구니 상태를
// 재동기화하는 세션 상태 기계를 제공합니다.
//
// 영속화 계층은 쿠키 단일 계층입니다. 서버 렌더링 배포 결정에 따라
// 클라이언트 로컬 저장소 계층은 사용하지 않으며, 두 계층을 병합하지 않습니다.
package cart

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName 장바구니 식별자를 보관하는 쿠키 이름입니다.
const CookieName = "storefront_cart_id"

// cookieMaxAge 장바구니 쿠키의 유효 기간입니다.
const cookieMaxAge = 30 * 24 * time.Hour

// IDFromRequest 요청 쿠키에서 장바구니 식별자를 읽습니다. 없으면 빈 문자열을 반환합니다.
func IDFromRequest(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SaveID 장바구니 식별자를 응답 쿠키에 기록합니다.
// 쿠키 쓰기는 응답 헤더를 변경할 수 있는 뮤테이션 엔드포인트에서만 수행됩니다.
func SaveID(c echo.Context, id string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearID 장바구니 쿠키를 만료시킵니다. 오래된 식별자를 폐기할 때 사용합니다.
func ClearID(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
