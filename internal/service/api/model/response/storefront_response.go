package response

import "github.com/darkkaiser/storefront-server/internal/service/commerce"

// CartResponse 장바구니 조회/변경 응답
type CartResponse struct {
	Cart *commerce.Cart `json:"cart"`
}

// ProductsResponse 상품 목록 응답
type ProductsResponse struct {
	Products []commerce.Product `json:"products"`
}

// TestimonialResponse 고객 후기 등록 응답
type TestimonialResponse struct {
	Success       bool   `json:"success"`
	TestimonialID string `json:"testimonialId"`
}

// RecentlyViewedResponse 최근 본 상품 응답
// GET 요청에는 핸들 목록과 함께 해석 가능한 상품 정보가 포함됩니다.
type RecentlyViewedResponse struct {
	Handles  []string           `json:"handles"`
	Products []commerce.Product `json:"products,omitempty"`
}

// RevalidateResponse 캐시 태그 재검증(퍼지) 응답
type RevalidateResponse struct {
	Tag    string `json:"tag"`
	Purged int    `json:"purged"`
}
