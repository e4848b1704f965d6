package storefront

import (
	"net/http"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/darkkaiser/storefront-server/internal/pkg/validator"
	"github.com/darkkaiser/storefront-server/internal/service/api/constants"
	"github.com/darkkaiser/storefront-server/internal/service/api/httputil"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/request"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/response"
	"github.com/darkkaiser/storefront-server/internal/service/cart"
	"github.com/darkkaiser/storefront-server/internal/service/commerce"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// CartActionHandler 장바구니 생성/추가/제거 요청을 처리합니다.
//
// 요청의 cartId가 비어있으면 쿠키의 식별자를 사용하며, 변경으로 새 장바구니가
// 만들어진 경우에만 응답에서 쿠키를 갱신합니다(변경 경계에서의 쿠키 기록).
// 변경 도중 장바구니가 만료된 것으로 판명되면 쿠키를 비우고 404를 반환합니다.
func (h *Handler) CartActionHandler(c echo.Context) error {
	// 1. 요청 바인딩
	req := new(request.CartRequest)
	if err := c.Bind(req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}

	// 2. 입력 검증
	if err := validator.Struct(req); err != nil {
		return httputil.NewBadRequestError(validator.FormatValidationError(err))
	}

	// 3. 장바구니 식별자 결정 (요청 본문 우선, 쿠키 폴백)
	cartID := req.CartID
	if cartID == "" {
		cartID = cart.IDFromRequest(c)
	}

	session := cart.NewSession(h.carts, cartID)
	ctx := c.Request().Context()

	// 4. 액션 수행
	var result *commerce.Cart
	var err error

	switch req.Action {
	case request.CartActionCreate:
		result, err = session.Refresh(ctx)
	case request.CartActionAdd:
		result, err = session.AddItem(ctx, req.VariantID, req.NormalizedQuantity())
	case request.CartActionRemove:
		result, err = session.RemoveItem(ctx, req.LineIDs)
	}

	if err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			cart.ClearID(c)
			return httputil.NewNotFoundError(constants.ErrMsgCartNotFound)
		}
		return httputil.FromAppError(err)
	}

	// 5. 새 장바구니가 만들어졌으면 쿠키 갱신 (변경 경계)
	if session.CartID() != "" && session.CartID() != cartID {
		cart.SaveID(c, session.CartID(), h.secureCookies())
	}

	h.log(c).WithFields(applog.Fields{
		"action":         req.Action,
		"cart_id":        session.CartID(),
		"total_quantity": result.TotalQuantity,
	}).Info("장바구니 요청 처리 완료")

	// 6. 성공 응답
	return c.JSON(http.StatusOK, response.CartResponse{Cart: result})
}

// GetCartHandler 장바구니를 조회합니다.
//
// cartId 쿼리 파라미터가 없으면 쿠키의 식별자를 사용합니다.
// 백엔드에서 만료된 장바구니는 404와 함께 쿠키를 비웁니다.
func (h *Handler) GetCartHandler(c echo.Context) error {
	cartID := c.QueryParam(constants.CartIDQuery)
	fromCookie := false

	if cartID == "" {
		cartID = cart.IDFromRequest(c)
		fromCookie = true
	}

	if cartID == "" {
		return httputil.NewBadRequestError("장바구니 식별자(cartId)가 필요합니다")
	}

	result, err := h.carts.GetCart(c.Request().Context(), cartID)
	if err != nil {
		return httputil.FromAppError(err)
	}
	if result == nil {
		// 만료된 식별자: 쿠키에서 온 경우 오래된 쿠키도 함께 폐기합니다.
		if fromCookie {
			cart.ClearID(c)
		}
		return httputil.NewNotFoundError(constants.ErrMsgCartNotFound)
	}

	return c.JSON(http.StatusOK, response.CartResponse{Cart: result})
}
