package api

import (
	"github.com/darkkaiser/storefront-server/internal/service/api/handler/storefront"
	"github.com/darkkaiser/storefront-server/internal/service/api/handler/system"
	appmiddleware "github.com/darkkaiser/storefront-server/internal/service/api/middleware"
	"github.com/labstack/echo/v4"
)

// SetupRoutes Echo 인스턴스에 API 서비스의 라우트를 등록합니다.
//
// 등록되는 엔드포인트:
//   - 시스템: GET /health, GET /version (인증 불필요)
//   - 장바구니: POST/GET /api/cart
//   - 카탈로그: POST /api/products/by-handles
//   - 콘텐츠: GET /api/content/homepage, /api/content/pages/:slug,
//     /api/content/services/:handle
//   - 후기: POST /api/testimonials/submit
//   - AI 챗: POST /api/chat (SSE 스트리밍)
//   - 최근 본 상품: GET/POST /api/recently-viewed
//   - 캐시 재검증: POST /api/revalidate (공유 시크릿 헤더 필요)
//
// /api 그룹에는 요청 범위 Memo 미들웨어가 적용되어 동일 요청 내의
// 중복 데이터 조회를 제거합니다.
func SetupRoutes(e *echo.Echo, systemHandler *system.Handler, storefrontHandler *storefront.Handler) {
	registerSystemRoutes(e, systemHandler)
	registerStorefrontRoutes(e, storefrontHandler)
}

func registerSystemRoutes(e *echo.Echo, h *system.Handler) {
	e.GET("/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)
}

func registerStorefrontRoutes(e *echo.Echo, h *storefront.Handler) {
	api := e.Group("/api", appmiddleware.RequestMemo())

	api.POST("/cart", h.CartActionHandler)
	api.GET("/cart", h.GetCartHandler)

	api.POST("/products/by-handles", h.ProductsByHandlesHandler)

	api.GET("/content/homepage", h.HomepageHandler)
	api.GET("/content/pages/:slug", h.PageBySlugHandler)
	api.GET("/content/services/:handle", h.ServiceBySlugHandler)

	api.POST("/testimonials/submit", h.SubmitTestimonialHandler)

	api.POST("/chat", h.ChatHandler)

	api.GET("/recently-viewed", h.GetRecentlyViewedHandler)
	api.POST("/recently-viewed", h.RecordRecentlyViewedHandler)

	api.POST("/revalidate", h.RevalidateHandler)
}
