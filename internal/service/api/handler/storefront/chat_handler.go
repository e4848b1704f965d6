package storefront

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/darkkaiser/storefront-server/internal/pkg/validator"
	"github.com/darkkaiser/storefront-server/internal/service/api/constants"
	"github.com/darkkaiser/storefront-server/internal/service/api/httputil"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/request"
	"github.com/darkkaiser/storefront-server/internal/service/chat"
	"github.com/labstack/echo/v4"
)

// sseDoneEvent 스트림 종료를 알리는 마지막 이벤트입니다.
const sseDoneEvent = "data: [DONE]\n\n"

// ChatHandler 대화 이력으로 AI 어시스턴트 완성을 요청하고 토큰을 SSE로 중계합니다.
//
// 시스템 프롬프트는 캐시된 상품 목록으로 생성되어 상담의 근거 데이터로 주입됩니다.
// 응답 헤더는 첫 토큰이 도착한 뒤에 기록되므로, 그 전에 실패하면 일반 JSON
// 에러 응답이 반환됩니다. 스트리밍이 시작된 후의 실패는 로깅만 합니다.
func (h *Handler) ChatHandler(c echo.Context) error {
	req := new(request.ChatRequest)
	if err := c.Bind(req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
	}

	if err := validator.Struct(req); err != nil {
		return httputil.NewBadRequestError(validator.FormatValidationError(err))
	}

	ctx := c.Request().Context()

	// 카탈로그 시스템 프롬프트 생성 (조회 실패 시 빈 카탈로그로 진행)
	prompt := chat.CatalogPrompt(h.cachedProductList(ctx))

	res := c.Response()
	started := false

	err := h.assistant.StreamCompletion(ctx, req.Messages, prompt, func(token string) error {
		if !started {
			res.Header().Set(echo.HeaderContentType, "text/event-stream")
			res.Header().Set(echo.HeaderCacheControl, "no-cache")
			res.WriteHeader(http.StatusOK)
			started = true
		}

		payload, err := json.Marshal(map[string]string{"token": token})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
			return err
		}
		res.Flush()

		return nil
	})
	if err != nil {
		if started {
			// 이미 본문 전송이 시작되어 상태 코드를 바꿀 수 없습니다.
			h.log(c).WithError(err).Error("챗 스트리밍 도중 업스트림 실패")
			return nil
		}
		return httputil.FromAppError(err)
	}

	// 토큰 없이 완료된 경우에도 올바른 SSE 응답을 완성합니다.
	if !started {
		res.Header().Set(echo.HeaderContentType, "text/event-stream")
		res.Header().Set(echo.HeaderCacheControl, "no-cache")
		res.WriteHeader(http.StatusOK)
	}

	fmt.Fprint(res, sseDoneEvent)
	res.Flush()

	return nil
}
