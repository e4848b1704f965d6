// Package recent 최근 본 상품 핸들 목록을 쿠키로 관리합니다.
//
// 목록은 최신순이며 고정 크기(3)로 제한됩니다. 이미 있는 핸들을 다시 기록하면
// 중복 추가 대신 맨 앞으로 이동합니다. 항상 비권위적(best-effort) 데이터로
// 취급하여, 손상된 쿠키 값은 조용히 빈 목록으로 대체됩니다.
package recent

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName 최근 본 상품 핸들 목록을 보관하는 쿠키 이름입니다.
const CookieName = "storefront_recently_viewed"

// maxEntries 목록의 최대 크기입니다. 초과분은 가장 오래된 항목부터 제거됩니다.
const maxEntries = 3

// cookieMaxAge 최근 본 상품 쿠키의 유효 기간입니다.
const cookieMaxAge = 30 * 24 * time.Hour

// List 쿠키에서 최근 본 상품 핸들 목록을 읽습니다. 손상된 값은 빈 목록으로 처리합니다.
func List(c echo.Context) []string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return []string{}
	}

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return []string{}
	}

	handles := []string{}
	for _, handle := range strings.Split(decoded, ",") {
		handle = strings.TrimSpace(handle)
		if handle == "" {
			continue
		}
		handles = append(handles, handle)
		if len(handles) == maxEntries {
			break
		}
	}

	return handles
}

// Record 핸들을 목록 맨 앞에 기록하고 갱신된 목록을 쿠키에 저장합니다.
// 이미 목록에 있는 핸들은 맨 앞으로 이동하며, 크기 초과분은 잘립니다.
func Record(c echo.Context, handle string, secure bool) []string {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return List(c)
	}

	handles := []string{handle}
	for _, existing := range List(c) {
		if existing == handle {
			continue
		}
		handles = append(handles, existing)
		if len(handles) == maxEntries {
			break
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(strings.Join(handles, ",")),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})

	return handles
}
