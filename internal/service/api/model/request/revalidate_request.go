package request

// RevalidateRequest 캐시 태그 재검증(퍼지) 요청
type RevalidateRequest struct {
	// 퍼지할 캐시 태그 (예: sanity-homepage, shopify-products)
	Tag string `json:"tag" validate:"required,max=100" korean:"캐시 태그"`
}
