// Package commerce 헤드리스 커머스 백엔드의 GraphQL Storefront API를 호출하여
// 상품 카탈로그 조회와 장바구니 변경을 수행하는 클라이언트를 제공합니다.
//
// 이 계층은 네트워크 호출만 담당하며 캐싱은 상위 계층(cache 패키지)에서 구성됩니다.
// 응답 정규화는 parse.go 한 곳에서만 수행됩니다.
package commerce

// Money 금액과 통화 코드 쌍입니다. 금액은 정밀도 손실을 피하기 위해 문자열로 유지합니다.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Image 이미지 URL과 대체 텍스트입니다.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// ProductVariant 구매 가능한 상품 변형(옵션 조합) 정보입니다.
type ProductVariant struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Price            Money  `json:"price"`
	AvailableForSale bool   `json:"availableForSale"`
}

// PriceRange 상품의 가격 범위 정보입니다.
type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
}

// Product 읽기 전용 카탈로그 상품입니다. 이 시스템은 상품을 수정하지 않습니다.
type Product struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Handle        string           `json:"handle"`
	Description   string           `json:"description,omitempty"`
	FeaturedImage *Image           `json:"featuredImage,omitempty"`
	PriceRange    PriceRange       `json:"priceRange"`
	Variants      []ProductVariant `json:"variants"`
}

// Merchandise 장바구니 라인에 담긴 상품 변형과 부모 상품의 요약 정보입니다.
type Merchandise struct {
	VariantID     string `json:"variantId"`
	VariantTitle  string `json:"variantTitle"`
	ProductTitle  string `json:"productTitle"`
	ProductHandle string `json:"productHandle"`
	Image         *Image `json:"image,omitempty"`
	Price         Money  `json:"price"`
}

// CartLine 장바구니의 한 라인입니다. ID는 라인 식별자이며 변형 ID와 구분됩니다.
type CartLine struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Merchandise Merchandise `json:"merchandise"`
}

// CartCost 장바구니 합계 금액입니다.
type CartCost struct {
	TotalAmount Money `json:"totalAmount"`
}

// Cart 원격 커머스 백엔드의 장바구니 상태를 그대로 미러링한 구조체입니다.
//
// 로컬에서 수량을 독자적으로 변경하지 않으며, 항상 마지막으로 성공한 원격 응답의
// 사본으로 통째로 교체됩니다. TotalQuantity는 모든 라인 수량의 합과 일치해야 하며,
// 불일치는 파싱 단계에서 손상된 응답으로 처리됩니다.
type Cart struct {
	ID            string     `json:"id"`
	CheckoutURL   string     `json:"checkoutUrl"`
	TotalQuantity int        `json:"totalQuantity"`
	Cost          CartCost   `json:"cost"`
	Lines         []CartLine `json:"lines"`
}
