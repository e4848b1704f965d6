package storefront

import (
	"crypto/subtle"
	"net/http"

	"github.com/darkkaiser/storefront-server/internal/pkg/validator"
	"github.com/darkkaiser/storefront-server/internal/service/api/constants"
	"github.com/darkkaiser/storefront-server/internal/service/api/httputil"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/request"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/response"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// RevalidateHandler 캐시 태그를 강제 만료합니다. 콘텐츠/커머스 백엔드의
// 변경 웹훅이 호출하는 외부 트리거 엔드포인트입니다.
//
// 공유 시크릿(cache.purge_secret)이 설정되지 않은 배포에서는 비활성화되며,
// 시크릿 불일치는 401을 반환합니다. 퍼지된 키의 다음 조회는 동기 로드로
// 이어져 즉시 새 데이터를 받습니다.
func (h *Handler) RevalidateHandler(c echo.Context) error {
	secret := h.appConfig.Cache.PurgeSecret
	if secret == "" {
		return httputil.NewServiceUnavailableError(constants.ErrMsgRevalidateDisabled)
	}

	provided := c.Request().Header.Get(constants.HeaderRevalidateSecret)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
		return httputil.NewUnauthorizedError(constants.ErrMsgRevalidateSecretInvalid)
	}

	req := new(request.RevalidateRequest)
	if err := c.Bind(req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}

	if err := validator.Struct(req); err != nil {
		return httputil.NewBadRequestError(validator.FormatValidationError(err))
	}

	purged := h.store.PurgeTag(req.Tag)

	h.log(c).WithFields(applog.Fields{
		"tag":    req.Tag,
		"purged": purged,
	}).Info("캐시 태그 재검증 요청 처리 완료")

	return c.JSON(http.StatusOK, response.RevalidateResponse{
		Tag:    req.Tag,
		Purged: purged,
	})
}
