package request

// TestimonialRequest 고객 후기 등록 요청
type TestimonialRequest struct {
	// 작성자 이름
	Name string `json:"name" validate:"required,max=100" korean:"이름"`
	// 작성자 이메일
	Email string `json:"email" validate:"required,email" korean:"이메일"`
	// 후기 본문
	Quote string `json:"quote" validate:"required,max=2000" korean:"후기 내용"`
	// 작성자 직함/역할 (선택)
	Role string `json:"role" validate:"omitempty,max=100" korean:"직함"`
}
