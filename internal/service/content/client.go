package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/darkkaiser/storefront-server/internal/config"
	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/darkkaiser/storefront-server/internal/pkg/fetcher"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
	"github.com/tidwall/gjson"
)

// component 로그의 component 필드에 기록되는 식별자입니다.
const component = "content"

// GROQ 질의 문서 모음입니다.
const (
	homepageQuery = `*[_type == "homepage"][0]{
	  heroHeading,
	  heroSubheading,
	  "heroImageRef": heroImage.asset._ref,
	  testimonials[]{name, role, quote},
	  faqs[]{question, answer}
	}`

	pageBySlugQuery = `*[_type == "page" && slug.current == $slug][0]{
	  "slug": slug.current,
	  title,
	  bodyHtml
	}`

	serviceByHandleQuery = `*[_type == "service" && handle.current == $handle][0]{
	  "handle": handle.current,
	  title,
	  description
	}`
)

// ContentAPI 콘텐츠 조회/생성 기능을 제공하는 인터페이스입니다.
type ContentAPI interface {
	GetHomepage(ctx context.Context) *Homepage
	GetPageBySlug(ctx context.Context, slug string) *Page
	GetService(ctx context.Context, handle string) *ServiceDoc
	SubmitTestimonial(ctx context.Context, fields TestimonialFields) (string, error)
}

// Client 문서 질의 API 클라이언트입니다.
// 프로세스당 한 번 생성되어 요청 간에 재사용되며, 가변 상태를 갖지 않습니다.
type Client struct {
	fetcher    fetcher.Fetcher
	queryURL   string
	mutateURL  string
	projectID  string
	dataset    string
	writeToken string
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ ContentAPI = (*Client)(nil)

// NewClient 새로운 콘텐츠 클라이언트를 생성합니다.
func NewClient(cfg *config.ContentConfig, f fetcher.Fetcher) *Client {
	base := fmt.Sprintf("https://%s.api.sanity.io/v%s/data", cfg.ProjectID, cfg.APIVersion)

	return &Client{
		fetcher:    f,
		queryURL:   fmt.Sprintf("%s/query/%s", base, cfg.Dataset),
		mutateURL:  fmt.Sprintf("%s/mutate/%s", base, cfg.Dataset),
		projectID:  cfg.ProjectID,
		dataset:    cfg.Dataset,
		writeToken: cfg.WriteToken,
	}
}

// query GROQ 질의를 실행하고 응답의 result 노드를 반환합니다.
// params의 각 값은 JSON 인코딩되어 $name 질의 파라미터로 전달됩니다.
func (c *Client) query(ctx context.Context, groq string, params map[string]string) (gjson.Result, error) {
	values := url.Values{}
	values.Set("query", groq)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return gjson.Result{}, apperrors.Wrap(err, apperrors.Internal, "질의 파라미터 인코딩에 실패했습니다")
		}
		values.Set("$"+name, string(encoded))
	}

	var raw json.RawMessage
	requestURL := c.queryURL + "?" + values.Encode()
	if err := fetcher.FetchJSON(ctx, c.fetcher, http.MethodGet, requestURL, nil, nil, &raw); err != nil {
		return gjson.Result{}, err
	}

	return gjson.ParseBytes(raw).Get("result"), nil
}

// GetHomepage 홈페이지 콘텐츠 문서를 조회합니다.
// 조회 실패 시 에러를 로깅하고 nil을 반환합니다. 페이지는 대체 문구로 렌더링됩니다.
func (c *Client) GetHomepage(ctx context.Context) *Homepage {
	result, err := c.query(ctx, homepageQuery, nil)
	if err != nil {
		applog.WithComponent(component).WithError(err).Error("홈페이지 콘텐츠 조회 실패")
		return nil
	}
	if !result.Exists() || result.Type == gjson.Null {
		return nil
	}

	homepage := &Homepage{
		HeroHeading:    result.Get("heroHeading").String(),
		HeroSubheading: result.Get("heroSubheading").String(),
		HeroImageURL:   c.ImageURL(result.Get("heroImageRef").String(), 1600),
	}

	for _, node := range result.Get("testimonials").Array() {
		homepage.Testimonials = append(homepage.Testimonials, Testimonial{
			Name:  node.Get("name").String(),
			Role:  node.Get("role").String(),
			Quote: node.Get("quote").String(),
		})
	}
	for _, node := range result.Get("faqs").Array() {
		homepage.FAQs = append(homepage.FAQs, FAQItem{
			Question: node.Get("question").String(),
			Answer:   node.Get("answer").String(),
		})
	}

	return homepage
}

// GetPageBySlug 슬러그로 콘텐츠 페이지 문서를 조회합니다.
// 조회 실패 및 문서 부재 시 nil을 반환합니다.
func (c *Client) GetPageBySlug(ctx context.Context, slug string) *Page {
	result, err := c.query(ctx, pageBySlugQuery, map[string]string{"slug": slug})
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"slug": slug,
		}).WithError(err).Error("콘텐츠 페이지 조회 실패")
		return nil
	}
	if !result.Exists() || result.Type == gjson.Null {
		return nil
	}

	bodyHTML := result.Get("bodyHtml").String()

	return &Page{
		Slug:     result.Get("slug").String(),
		Title:    result.Get("title").String(),
		BodyHTML: bodyHTML,
		Excerpt:  Excerpt(bodyHTML, 200),
	}
}

// GetService 레거시 서비스 문서를 핸들로 조회합니다.
// 조회 실패 및 문서 부재 시 nil을 반환합니다.
func (c *Client) GetService(ctx context.Context, handle string) *ServiceDoc {
	result, err := c.query(ctx, serviceByHandleQuery, map[string]string{"handle": handle})
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"handle": handle,
		}).WithError(err).Error("레거시 서비스 문서 조회 실패")
		return nil
	}
	if !result.Exists() || result.Type == gjson.Null {
		return nil
	}

	return &ServiceDoc{
		Handle:      result.Get("handle").String(),
		Title:       result.Get("title").String(),
		Description: result.Get("description").String(),
	}
}

// SubmitTestimonial 후기 문서를 생성하고 생성된 문서 ID를 반환합니다.
//
// 쓰기 토큰이 설정되지 않은 배포에서는 Configuration 에러를 반환하며,
// 에러 메시지에 누락된 설정 키를 명시합니다.
func (c *Client) SubmitTestimonial(ctx context.Context, fields TestimonialFields) (string, error) {
	if c.writeToken == "" {
		return "", apperrors.New(apperrors.Configuration,
			"콘텐츠 쓰기 토큰이 설정되지 않아 후기를 제출할 수 없습니다. 'content.write_token' 설정을 확인하세요")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"mutations": []map[string]interface{}{
			{
				"create": map[string]interface{}{
					"_type": "testimonial",
					"name":  fields.Name,
					"email": fields.Email,
					"quote": fields.Quote,
					"role":  fields.Role,
				},
			},
		},
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.Internal, "후기 생성 요청 본문 생성에 실패했습니다")
	}

	header := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + c.writeToken,
	}

	var raw json.RawMessage
	requestURL := c.mutateURL + "?returnIds=true"
	if err := fetcher.FetchJSON(ctx, c.fetcher, http.MethodPost, requestURL, header, bytes.NewReader(payload), &raw); err != nil {
		return "", apperrors.Wrap(err, apperrors.ExecutionFailed, "후기 문서 생성에 실패했습니다")
	}

	documentID := gjson.ParseBytes(raw).Get("results.0.id").String()
	if documentID == "" {
		return "", apperrors.New(apperrors.ParsingFailed, "후기 생성 응답에 문서 ID가 없습니다")
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"document_id": documentID,
	}).Debug("후기 문서 생성 완료")

	return documentID, nil
}

// ImageURL 이미지 에셋 참조를 렌더링 가능한 CDN URL로 변환하는 순수 함수입니다.
//
// 참조 형식: image-<id>-<WxH>-<fmt> (예: image-abc123-1200x800-jpg)
// 형식이 올바르지 않으면 빈 문자열을 반환합니다.
func (c *Client) ImageURL(ref string, width int) string {
	if !strings.HasPrefix(ref, "image-") {
		return ""
	}

	parts := strings.Split(strings.TrimPrefix(ref, "image-"), "-")
	if len(parts) < 3 {
		return ""
	}

	format := parts[len(parts)-1]
	dims := parts[len(parts)-2]
	id := strings.Join(parts[:len(parts)-2], "-")
	if id == "" || format == "" || !strings.Contains(dims, "x") {
		return ""
	}

	imageURL := fmt.Sprintf("https://cdn.sanity.io/images/%s/%s/%s-%s.%s", c.projectID, c.dataset, id, dims, format)
	if width > 0 {
		imageURL += fmt.Sprintf("?w=%d&auto=format", width)
	}

	return imageURL
}
