package storefront

import (
	"net/http"

	"github.com/darkkaiser/storefront-server/internal/pkg/validator"
	"github.com/darkkaiser/storefront-server/internal/service/api/constants"
	"github.com/darkkaiser/storefront-server/internal/service/api/httputil"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/request"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/response"
	"github.com/darkkaiser/storefront-server/internal/service/commerce"
	"github.com/labstack/echo/v4"
)

// ProductsByHandlesHandler 핸들 목록(최대 10개)으로 상품을 조회합니다.
//
// 해석할 수 없는 핸들은 에러 없이 조용히 제외됩니다(부분 실패 허용).
// 동일 요청 내의 중복 핸들은 Memo가, 요청 간 반복 조회는 프로세스 캐시가
// 각각 중복 호출을 제거합니다.
func (h *Handler) ProductsByHandlesHandler(c echo.Context) error {
	req := new(request.ByHandlesRequest)
	if err := c.Bind(req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}

	if err := validator.Struct(req); err != nil {
		return httputil.NewBadRequestError(validator.FormatValidationError(err))
	}

	products := make([]commerce.Product, 0, len(req.Handles))
	for _, handle := range req.Handles {
		product, err := h.cachedProduct(c, handle)
		if err != nil {
			// 업스트림 실패도 부분 실패로 처리하고 로그만 남깁니다.
			h.log(c).WithField("handle", handle).WithError(err).Warn("상품 조회 실패 (응답에서 제외)")
			continue
		}
		if product != nil {
			products = append(products, *product)
		}
	}

	return c.JSON(http.StatusOK, response.ProductsResponse{Products: products})
}
