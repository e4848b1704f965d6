// Package storefront 스토어프론트 API의 HTTP 요청 핸들러를 제공합니다.
//
// 이 패키지는 HTTP 요청을 받아 검증하고, 장바구니/카탈로그/콘텐츠/챗 서비스를
// 호출한 후 적절한 HTTP 응답을 반환하는 핸들러 함수들을 포함합니다.
package storefront

import (
	"context"

	"github.com/darkkaiser/storefront-server/internal/config"
	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/darkkaiser/storefront-server/internal/service/api/constants"
	appmiddleware "github.com/darkkaiser/storefront-server/internal/service/api/middleware"
	"github.com/darkkaiser/storefront-server/internal/service/cache"
	"github.com/darkkaiser/storefront-server/internal/service/chat"
	"github.com/darkkaiser/storefront-server/internal/service/commerce"
	"github.com/darkkaiser/storefront-server/internal/service/content"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 스토어프론트 API 요청을 처리하고 도메인 서비스를 연결하는 핸들러입니다.
//
// 업스트림 클라이언트들은 프로세스당 한 번 생성되어 주입되며,
// 핸들러는 요청 범위의 상태(장바구니 세션, Memo)만 새로 만듭니다.
type Handler struct {
	appConfig *config.AppConfig

	products commerce.ProductAPI
	carts    commerce.CartAPI
	content  content.ContentAPI

	assistant *chat.Assistant

	store *cache.Store
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(appConfig *config.AppConfig, products commerce.ProductAPI, carts commerce.CartAPI, contentAPI content.ContentAPI, assistant *chat.Assistant, store *cache.Store) *Handler {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if products == nil || carts == nil {
		panic(constants.PanicMsgCommerceClientRequired)
	}
	if contentAPI == nil {
		panic(constants.PanicMsgContentClientRequired)
	}
	if assistant == nil {
		panic(constants.PanicMsgAssistantRequired)
	}
	if store == nil {
		panic(constants.PanicMsgStoreRequired)
	}

	return &Handler{
		appConfig: appConfig,

		products: products,
		carts:    carts,
		content:  contentAPI,

		assistant: assistant,

		store: store,
	}
}

// secureCookies TLS 배포에서만 쿠키에 Secure 속성을 부여합니다.
func (h *Handler) secureCookies() bool {
	return h.appConfig.Storefront.WS.TLSServer
}

// log 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint": c.Path(),
	})
}

// cachedProduct 핸들 기반 상품 조회에 요청 범위 Memo와 프로세스 캐시를 계층화합니다.
// 존재하지 않는 핸들은 (nil, nil)로 캐시되어 반복 조회를 막습니다.
func (h *Handler) cachedProduct(c echo.Context, handle string) (*commerce.Product, error) {
	key := cache.KeyProduct(handle)

	value, err := appmiddleware.MemoFrom(c).Do(key, func() (interface{}, error) {
		return h.store.GetOrLoad(c.Request().Context(), key, h.appConfig.Cache.ProductTTLDuration(), []string{cache.TagProducts}, func(ctx context.Context) (interface{}, error) {
			return h.products.GetProductByHandle(ctx, handle)
		})
	})
	if err != nil {
		return nil, err
	}

	product, _ := value.(*commerce.Product)
	return product, nil
}

// cachedProductList 캐시된 상품 목록(첫 페이지)을 반환합니다.
// 조회 실패는 소프트하게 처리되어 빈 목록이 반환됩니다.
func (h *Handler) cachedProductList(ctx context.Context) []commerce.Product {
	value, err := h.store.GetOrLoad(ctx, cache.KeyProductList, h.appConfig.Cache.ProductTTLDuration(), []string{cache.TagProducts}, func(ctx context.Context) (interface{}, error) {
		return h.products.ListProducts(ctx)
	})
	if err != nil {
		applog.WithComponent(constants.ComponentHandler).WithError(err).Warn("상품 목록 조회 실패 (빈 카탈로그로 진행)")
		return nil
	}

	products, _ := value.([]commerce.Product)
	return products
}

// newUnavailableError 콘텐츠 소프트 실패를 캐시되지 않는 로더 에러로 변환합니다.
func newUnavailableError(what string) error {
	return apperrors.New(apperrors.Unavailable, what+" 콘텐츠를 가져오지 못했습니다")
}
