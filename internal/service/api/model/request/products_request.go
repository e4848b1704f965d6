package request

// ByHandlesRequest 핸들 목록 기반 상품 조회 요청
type ByHandlesRequest struct {
	// 조회할 상품 핸들 목록 (최대 10개)
	Handles []string `json:"handles" validate:"required,min=1,max=10,dive,required" korean:"핸들 목록"`
}
