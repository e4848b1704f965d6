// Package ab 클라이언트 식별자 기반의 결정적 A/B 테스트 변형 할당을 제공합니다.
//
// 암호학적 해시가 아닌 단순 롤링 해시를 사용합니다. 필요한 것은 동일 식별자에
// 대한 결정성과 적당히 고른 분포뿐이며, 서버 측 저장 상태는 응답 쿠키 외에 없습니다.
package ab

import (
	"github.com/darkkaiser/storefront-server/internal/config"
	"github.com/iancoleman/strcase"
)

// unknownIdentityPart 클라이언트 IP 또는 User-Agent가 비어있을 때 대체되는 값입니다.
const unknownIdentityPart = "unknown"

// Identity 요청별 클라이언트 식별자 문자열을 만듭니다.
func Identity(clientIP, userAgent string) string {
	if clientIP == "" {
		clientIP = unknownIdentityPart
	}
	if userAgent == "" {
		userAgent = unknownIdentityPart
	}
	return clientIP + "-" + userAgent
}

// Assign 식별자를 해싱하여 테스트의 변형 하나를 결정적으로 선택합니다.
//
// 해시는 문자 코드를 31배 누적하며 부호 있는 32비트로 래핑됩니다.
// 동일 식별자는 쿠키 수명과 무관하게 항상 동일한 변형을 받습니다.
func Assign(identity string, test config.ABTestConfig) string {
	if len(test.Variants) == 0 {
		return ""
	}

	var h int32
	for _, ch := range identity {
		h = h*31 + int32(ch)
	}

	// int32 최솟값의 부호 반전 오버플로를 피하기 위해 64비트로 넓혀 절댓값을 취합니다.
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}

	return test.Variants[abs%int64(len(test.Variants))]
}

// CookieName 테스트 이름에 대응하는 변형 쿠키 이름을 반환합니다. (예: HeroLayout → ab-hero-layout)
func CookieName(testName string) string {
	return "ab-" + strcase.ToKebab(testName)
}

// HeaderName 테스트 이름에 대응하는 분석용 응답 헤더 이름을 반환합니다. (예: HeroLayout → X-AB-hero-layout)
func HeaderName(testName string) string {
	return "X-AB-" + strcase.ToKebab(testName)
}
