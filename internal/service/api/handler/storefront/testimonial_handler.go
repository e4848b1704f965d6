package storefront

import (
	"net/http"

	"github.com/darkkaiser/storefront-server/internal/pkg/validator"
	"github.com/darkkaiser/storefront-server/internal/service/api/constants"
	"github.com/darkkaiser/storefront-server/internal/service/api/httputil"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/request"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/response"
	"github.com/darkkaiser/storefront-server/internal/service/content"
	"github.com/labstack/echo/v4"
)

// SubmitTestimonialHandler 고객 후기를 콘텐츠 백엔드에 등록합니다.
//
// 쓰기 토큰이 설정되지 않은 배포에서는 Configuration 에러가 500으로 매핑됩니다.
func (h *Handler) SubmitTestimonialHandler(c echo.Context) error {
	req := new(request.TestimonialRequest)
	if err := c.Bind(req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}

	if err := validator.Struct(req); err != nil {
		return httputil.NewBadRequestError(validator.FormatValidationError(err))
	}

	id, err := h.content.SubmitTestimonial(c.Request().Context(), content.TestimonialFields{
		Name:  req.Name,
		Email: req.Email,
		Quote: req.Quote,
		Role:  req.Role,
	})
	if err != nil {
		return httputil.FromAppError(err)
	}

	h.log(c).WithField("testimonial_id", id).Info("고객 후기 등록 완료")

	return c.JSON(http.StatusOK, response.TestimonialResponse{
		Success:       true,
		TestimonialID: id,
	})
}
