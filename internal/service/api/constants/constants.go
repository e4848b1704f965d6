// Package constants API 서비스 전반에서 사용되는 상수를 정의합니다.
package constants

// 로그 발생 위치(컴포넌트) 식별을 위한 상수입니다.
const (
	// ComponentService 서비스 컴포넌트 이름
	ComponentService = "api.service"

	// ComponentHandler 핸들러 컴포넌트 이름
	ComponentHandler = "api.handler"

	// ComponentMiddleware 미들웨어 컴포넌트 이름
	ComponentMiddleware = "api.middleware"

	// ComponentMiddlewareVariant 변형 할당 미들웨어 컴포넌트 이름
	ComponentMiddlewareVariant = "api.middleware.variant"

	// ComponentErrorHandler 에러 핸들러 컴포넌트 이름
	ComponentErrorHandler = "api.error_handler"
)

// HTTP 헤더 키 상수입니다.
const (
	// HeaderRevalidateSecret 캐시 재검증(퍼지) 웹훅 인증용 공유 시크릿 헤더 키
	HeaderRevalidateSecret = "X-Revalidate-Secret"

	// HeaderMiddlewareDiagnostic 변형 할당 미들웨어의 실행 여부를 표시하는 진단 헤더 키
	HeaderMiddlewareDiagnostic = "X-Storefront-Middleware"
)

// URL 쿼리 파라미터 키 상수입니다.
const (
	// CartIDQuery 장바구니 조회용 쿼리 파라미터 키
	CartIDQuery = "cartId"
)

// 라우트 경로 상수입니다.
const (
	// ChatRoutePath AI 챗 스트리밍 엔드포인트 경로
	// 스트리밍 응답은 버퍼링되면 안 되므로 Timeout 미들웨어에서 제외됩니다.
	ChatRoutePath = "/api/chat"
)
