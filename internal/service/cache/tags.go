package cache

// 캐시 무효화 태그입니다. 웹훅 기반 퍼지와 재검증 서비스가 공유합니다.
const (
	// TagProducts 커머스 상품 데이터에 부여되는 태그
	TagProducts = "shopify-products"

	// TagHomepage 홈페이지 콘텐츠에 부여되는 태그
	TagHomepage = "sanity-homepage"

	// TagPages 일반 페이지 콘텐츠에 부여되는 태그
	TagPages = "sanity-pages"

	// TagServices 레거시 서비스 문서에 부여되는 태그
	TagServices = "sanity-services"
)

// 캐시 키입니다. API 핸들러와 재검증 서비스가 동일한 항목을 가리키도록 공유합니다.
const (
	// KeyProductList 상품 목록(첫 페이지)의 캐시 키
	KeyProductList = "commerce:products"

	// KeyHomepage 홈페이지 콘텐츠의 캐시 키
	KeyHomepage = "content:homepage"
)

// KeyProduct 핸들 기반 상품 조회의 캐시 키를 생성합니다.
func KeyProduct(handle string) string {
	return "commerce:product:" + handle
}

// KeyPage 슬러그 기반 페이지 조회의 캐시 키를 생성합니다.
func KeyPage(slug string) string {
	return "content:page:" + slug
}

// KeyService 레거시 서비스 문서 조회의 캐시 키를 생성합니다.
func KeyService(handle string) string {
	return "content:service:" + handle
}
