package request

// RecentlyViewedRequest 최근 본 상품 기록 요청
type RecentlyViewedRequest struct {
	// 기록할 상품 핸들
	Handle string `json:"handle" validate:"required,max=100" korean:"상품 핸들"`
}
