package constants

// 클라이언트에게 반환되는 에러 메시지 상수입니다.
const (
	// 400 Bad Request
	ErrMsgBadRequest            = "잘못된 요청입니다"
	ErrMsgBadRequestInvalidBody = "요청 본문을 파싱할 수 없습니다. JSON 형식을 확인해주세요"

	// 401 Unauthorized
	ErrMsgRevalidateSecretInvalid = "재검증 시크릿이 유효하지 않습니다"

	// 404 Not Found
	ErrMsgNotFound     = "요청한 리소스를 찾을 수 없습니다"
	ErrMsgCartNotFound = "장바구니를 찾을 수 없습니다. 만료되었거나 잘못된 식별자입니다"

	// 429 Too Many Requests
	ErrMsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"

	// 500 Internal Server Error
	ErrMsgInternalServer = "내부 서버 오류가 발생했습니다"

	// 502 Bad Gateway
	ErrMsgUpstreamFailure = "외부 백엔드 호출에 실패했습니다. 잠시 후 다시 시도해주세요"

	// 503 Service Unavailable
	ErrMsgRevalidateDisabled = "재검증 엔드포인트가 비활성화되어 있습니다. 'cache.purge_secret' 설정을 확인하세요"
)
