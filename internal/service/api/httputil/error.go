package httputil

import (
	"net/http"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/darkkaiser/storefront-server/internal/service/api/constants"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/response"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// FromAppError AppError의 에러 타입을 HTTP 상태 코드로 변환한 echo 에러를 생성합니다.
//
// 매핑 정책 (에러 분류 체계 기준):
//   - InvalidInput, Precondition → 400 (클라이언트 입력/사전조건 문제)
//   - NotFound → 404
//   - Unauthorized → 502 (업스트림이 서버 자격 증명을 거부한 것은 운영자의
//     설정 문제이지 클라이언트의 인증 실패가 아닙니다)
//   - Unavailable, ExecutionFailed, ParsingFailed → 502 (업스트림 장애)
//   - Configuration, 그 외 → 500
//
// 클라이언트 응답에는 자격 증명이나 내부 상세가 노출되지 않도록 일반화된
// 메시지를 사용하고, 원본 에러는 전역 에러 핸들러가 로깅합니다.
func FromAppError(err error) error {
	switch apperrors.UnderlyingType(err) {
	case apperrors.InvalidInput, apperrors.Precondition:
		return NewBadRequestError(err.Error())
	case apperrors.NotFound:
		return NewNotFoundError(err.Error())
	case apperrors.Unauthorized, apperrors.Unavailable, apperrors.ExecutionFailed, apperrors.ParsingFailed:
		return NewBadGatewayError(constants.ErrMsgUpstreamFailure)
	default:
		return NewInternalServerError(constants.ErrMsgInternalServer)
	}
}

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 모든 HTTP 에러를 가로채서 표준 ErrorResponse JSON 형식으로 변환하여 반환합니다.
// 에러 발생 시 적절한 로그 레벨(Error/Warn)로 상세 정보를 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := constants.ErrMsgInternalServer

	// AppError가 핸들러에서 변환되지 않고 올라온 경우 먼저 상태 코드로 매핑합니다.
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		err = FromAppError(err)
	}

	// Echo HTTPError 타입 확인
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else if resp, ok := he.Message.(response.ErrorResponse); ok {
			message = resp.Message
		}
	}

	// 라우터가 생성한 404는 사용자 친화적인 한국어 메시지로 통일합니다.
	// 핸들러가 직접 지정한 404 메시지(장바구니 만료 등)는 그대로 유지합니다.
	if code == http.StatusNotFound && (message == constants.ErrMsgInternalServer || message == http.StatusText(code)) {
		message = constants.ErrMsgNotFound
	}

	// 에러 로깅 (보안 및 디버깅 용도)
	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		// 5xx: 서버 내부 오류 - 즉시 조치 필요
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		// 4xx: 클라이언트 요청 오류 - 정상적인 거부 응답
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이중 응답 방지: 이미 응답이 전송된 경우 추가 응답 시도하지 않음
	if c.Response().Committed {
		return
	}

	// HEAD 요청 처리: HTTP 명세에 따라 헤더만 반환하고 본문은 생략
	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}

	// 일반 요청: 표준 ErrorResponse JSON 형식으로 응답
	c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
