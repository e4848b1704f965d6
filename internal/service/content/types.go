// Package content 헤드리스 콘텐츠 백엔드의 문서 질의 API(GROQ)와 이미지 CDN을
// 호출하여 마케팅 콘텐츠를 조회하고, 후기(Testimonial) 문서를 생성하는
// 클라이언트를 제공합니다.
//
// 조회 실패는 소프트하게 처리됩니다. 콘텐츠 부재가 페이지 렌더링을 실패시키면
// 안 되므로, 조회 계열 조작은 에러를 로깅한 뒤 nil을 반환하고 호출자는 대체
// 문구로 렌더링합니다. 쓰기 조작(SubmitTestimonial)만 에러를 그대로 반환합니다.
package content

// Testimonial 고객 후기 문서입니다.
type Testimonial struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Quote string `json:"quote"`
}

// FAQItem 자주 묻는 질문 항목입니다.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Homepage 홈페이지 마케팅 콘텐츠 문서입니다.
type Homepage struct {
	HeroHeading    string        `json:"heroHeading"`
	HeroSubheading string        `json:"heroSubheading,omitempty"`
	HeroImageURL   string        `json:"heroImageUrl,omitempty"`
	Testimonials   []Testimonial `json:"testimonials,omitempty"`
	FAQs           []FAQItem     `json:"faqs,omitempty"`
}

// Page 슬러그로 식별되는 일반 콘텐츠 페이지 문서입니다.
type Page struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	BodyHTML string `json:"bodyHtml,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
}

// ServiceDoc 초기 스키마와의 하위 호환을 위해 유지되는 레거시 서비스 문서입니다.
type ServiceDoc struct {
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// TestimonialFields 후기 문서 생성에 필요한 입력 필드입니다.
type TestimonialFields struct {
	Name  string
	Email string
	Quote string
	Role  string
}
