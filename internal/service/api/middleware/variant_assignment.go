package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/darkkaiser/storefront-server/internal/config"
	"github.com/darkkaiser/storefront-server/internal/service/ab"
	"github.com/darkkaiser/storefront-server/internal/service/api/constants"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// variantCookieMaxAge A/B 변형 쿠키의 유효 기간입니다. (30일)
const variantCookieMaxAge = 30 * 24 * time.Hour

// VariantAssignment A/B 테스트 변형을 클라이언트 단위로 결정하는 미들웨어를 반환합니다.
//
// API/정적 리소스를 제외한 모든 요청에 대해 테스트별로:
//   - 유효한 변형 쿠키가 이미 있으면 그 값을 재사용합니다 (재할당 없음).
//   - 없으면 클라이언트 식별자(IP + User-Agent)의 결정적 해시로 변형을 계산하고
//     ab-<테스트명> 쿠키(30일, Lax, 스크립트 판독 가능)로 저장합니다.
//   - 결정된 변형은 분석 연계를 위해 X-AB-<테스트명> 응답 헤더로도 노출됩니다.
//
// 미들웨어 실행 여부는 X-Storefront-Middleware 진단 헤더로 확인할 수 있습니다.
func VariantAssignment(tests []config.ABTestConfig, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipVariantAssignment(c.Request().URL.Path) {
				return next(c)
			}

			c.Response().Header().Set(constants.HeaderMiddlewareDiagnostic, "1")

			identity := ab.Identity(c.RealIP(), c.Request().UserAgent())

			for _, test := range tests {
				variant := assignedVariant(c, test)
				if variant == "" {
					variant = ab.Assign(identity, test)
					if variant == "" {
						// 변형 목록이 비어있는 테스트는 할당할 수 없습니다.
						applog.WithComponentAndFields(constants.ComponentMiddlewareVariant, applog.Fields{
							"test": test.Name,
						}).Warn("변형 목록이 비어있어 A/B 테스트를 건너뜁니다")
						continue
					}

					c.SetCookie(&http.Cookie{
						Name:     ab.CookieName(test.Name),
						Value:    variant,
						Path:     "/",
						MaxAge:   int(variantCookieMaxAge.Seconds()),
						Secure:   secure,
						SameSite: http.SameSiteLaxMode,
						// HttpOnly를 설정하지 않아 클라이언트 스크립트에서도 변형을 읽을 수 있습니다.
					})
				}

				c.Response().Header().Set(ab.HeaderName(test.Name), variant)
			}

			return next(c)
		}
	}
}

// assignedVariant 기존 쿠키의 변형 값이 테스트에 선언된 변형 중 하나이면 반환합니다.
// 쿠키가 없거나 값이 더 이상 유효하지 않으면 빈 문자열을 반환합니다.
func assignedVariant(c echo.Context, test config.ABTestConfig) string {
	cookie, err := c.Cookie(ab.CookieName(test.Name))
	if err != nil || cookie.Value == "" {
		return ""
	}

	if !slices.Contains(test.Variants, cookie.Value) {
		return ""
	}

	return cookie.Value
}

// skipVariantAssignment API 엔드포인트와 정적 리소스 경로를 변형 할당 대상에서 제외합니다.
func skipVariantAssignment(path string) bool {
	if strings.HasPrefix(path, "/api/") {
		return true
	}
	if path == "/health" || path == "/version" || path == "/favicon.ico" {
		return true
	}

	// 확장자가 있는 경로(정적 파일)는 제외합니다.
	if idx := strings.LastIndex(path, "/"); idx >= 0 && strings.Contains(path[idx:], ".") {
		return true
	}

	return false
}
