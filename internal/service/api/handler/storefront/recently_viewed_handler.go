package storefront

import (
	"net/http"

	"github.com/darkkaiser/storefront-server/internal/pkg/validator"
	"github.com/darkkaiser/storefront-server/internal/service/api/constants"
	"github.com/darkkaiser/storefront-server/internal/service/api/httputil"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/request"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/response"
	"github.com/darkkaiser/storefront-server/internal/service/commerce"
	"github.com/darkkaiser/storefront-server/internal/service/recent"
	"github.com/labstack/echo/v4"
)

// GetRecentlyViewedHandler 최근 본 상품 핸들 목록과 해석 가능한 상품 정보를 반환합니다.
//
// 쿠키 값이 손상된 경우 빈 목록으로 응답하며, 해석할 수 없는 핸들의 상품 정보는
// 조용히 제외됩니다(핸들 목록에는 유지).
func (h *Handler) GetRecentlyViewedHandler(c echo.Context) error {
	handles := recent.List(c)

	products := make([]commerce.Product, 0, len(handles))
	for _, handle := range handles {
		product, err := h.cachedProduct(c, handle)
		if err != nil {
			h.log(c).WithField("handle", handle).WithError(err).Warn("최근 본 상품 조회 실패 (응답에서 제외)")
			continue
		}
		if product != nil {
			products = append(products, *product)
		}
	}

	return c.JSON(http.StatusOK, response.RecentlyViewedResponse{
		Handles:  handles,
		Products: products,
	})
}

// RecordRecentlyViewedHandler 상품 핸들을 최근 본 목록에 기록하고 갱신된 목록을 반환합니다.
func (h *Handler) RecordRecentlyViewedHandler(c echo.Context) error {
	req := new(request.RecentlyViewedRequest)
	if err := c.Bind(req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}

	if err := validator.Struct(req); err != nil {
		return httputil.NewBadRequestError(validator.FormatValidationError(err))
	}

	handles := recent.Record(c, req.Handle, h.secureCookies())

	return c.JSON(http.StatusOK, response.RecentlyViewedResponse{Handles: handles})
}
