// Package request API 요청 모델과 검증 태그를 정의합니다.
package request

// 장바구니 액션 상수입니다.
const (
	CartActionCreate = "create"
	CartActionAdd    = "add"
	CartActionRemove = "remove"
)

// CartRequest 장바구니 생성/변경 요청
type CartRequest struct {
	// 수행할 액션 (create, add, remove)
	Action string `json:"action" validate:"required,oneof=create add remove" korean:"액션"`
	// 장바구니 식별자 (없으면 쿠키의 식별자를 사용)
	CartID string `json:"cartId" korean:"장바구니 ID"`
	// 추가할 상품 변형 식별자 (add 액션 필수)
	VariantID string `json:"variantId" validate:"required_if=Action add" korean:"상품 변형 ID"`
	// 추가 수량 (생략 시 1)
	Quantity int `json:"quantity" validate:"omitempty,min=1" korean:"수량"`
	// 제거할 라인 식별자 목록 (remove 액션 필수)
	LineIDs []string `json:"lineIds" validate:"required_if=Action remove,omitempty,min=1,dive,required" korean:"라인 ID 목록"`
}

// NormalizedQuantity 생략된 수량을 기본값 1로 보정하여 반환합니다.
func (r *CartRequest) NormalizedQuantity() int {
	if r.Quantity < 1 {
		return 1
	}
	return r.Quantity
}
