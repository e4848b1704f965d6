package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/darkkaiser/storefront-server/internal/config"
	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/darkkaiser/storefront-server/internal/pkg/fetcher"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
	"github.com/tidwall/gjson"
)

// component 로그의 component 필드에 기록되는 식별자입니다.
const component = "commerce"

// accessTokenHeader Storefront API 공개 접근 토큰을 전달하는 요청 헤더입니다.
const accessTokenHeader = "X-Shopify-Storefront-Access-Token"

// ProductAPI 상품 카탈로그 조회 기능을 제공하는 인터페이스입니다.
type ProductAPI interface {
	// ListProducts 공개된 상품의 첫 페이지를 조회합니다. 상품이 없으면 빈 슬라이스를 반환합니다.
	ListProducts(ctx context.Context) ([]Product, error)

	// GetProductByHandle 핸들로 상품을 조회합니다. 핸들이 존재하지 않으면 (nil, nil)을 반환합니다.
	GetProductByHandle(ctx context.Context, handle string) (*Product, error)
}

// CartAPI 장바구니 생성/조회/변경 기능을 제공하는 인터페이스입니다.
//
// 모든 변경 조작은 갱신된 장바구니 전체를 반환하므로, 호출자는 로컬 미러를
// 부분 수정 없이 통째로 교체할 수 있습니다.
type CartAPI interface {
	// CreateCart 새 장바구니를 생성합니다.
	CreateCart(ctx context.Context) (*Cart, error)

	// GetCart 장바구니를 조회합니다. 백엔드에서 만료되었거나 존재하지 않으면 (nil, nil)을
	// 반환하며, 호출자는 이를 오래된 식별자를 폐기하라는 신호로 사용합니다.
	GetCart(ctx context.Context, id string) (*Cart, error)

	// AddLine 장바구니에 상품 변형을 추가합니다. quantity는 1 이상이어야 합니다.
	AddLine(ctx context.Context, cartID, variantID string, quantity int) (*Cart, error)

	// RemoveLines 장바구니에서 라인을 제거합니다. lineIDs는 비어있을 수 없습니다.
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*Cart, error)
}

// Client GraphQL Storefront API 클라이언트입니다.
// 프로세스당 한 번 생성되어 요청 간에 재사용되며, 가변 상태를 갖지 않습니다.
type Client struct {
	fetcher     fetcher.Fetcher
	endpoint    string
	accessToken string
	pageSize    int
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var (
	_ ProductAPI = (*Client)(nil)
	_ CartAPI    = (*Client)(nil)
)

// NewClient 새로운 커머스 클라이언트를 생성합니다.
func NewClient(cfg *config.CommerceConfig, f fetcher.Fetcher) *Client {
	return &Client{
		fetcher:     f,
		endpoint:    fmt.Sprintf("https://%s/api/%s/graphql.json", cfg.StoreDomain, cfg.APIVersion),
		accessToken: cfg.AccessToken,
		pageSize:    cfg.PageSize,
	}
}

// execute GraphQL 조작을 실행하고 응답의 data 노드를 반환합니다.
//
// 에러 매핑:
//   - HTTP 401: Unauthorized + 운영자 조치 안내 (잘못된 등급의 토큰)
//   - GraphQL errors 배열: ExecutionFailed (모든 메시지를 하나로 결합)
//   - 그 외 전송/파싱 실패: fetcher 계층의 분류를 그대로 전파
func (c *Client) execute(ctx context.Context, operationName, query string, variables map[string]interface{}) (gjson.Result, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return gjson.Result{}, apperrors.Wrap(err, apperrors.Internal, "GraphQL 요청 본문 생성에 실패했습니다")
	}

	header := map[string]string{
		"Content-Type":    "application/json",
		accessTokenHeader: c.accessToken,
	}

	var raw json.RawMessage
	if err := fetcher.FetchJSON(ctx, c.fetcher, http.MethodPost, c.endpoint, header, bytes.NewReader(payload), &raw); err != nil {
		if apperrors.Is(err, apperrors.Unauthorized) {
			return gjson.Result{}, apperrors.Wrap(err, apperrors.Unauthorized,
				"커머스 백엔드가 접근 토큰을 거부했습니다. Storefront API 공개 접근 토큰(Admin API 토큰 아님)이 설정되었는지 확인하세요")
		}
		return gjson.Result{}, err
	}

	doc := gjson.ParseBytes(raw)

	if errorsNode := doc.Get("errors"); errorsNode.Exists() && len(errorsNode.Array()) > 0 {
		messages := make([]string, 0, len(errorsNode.Array()))
		for _, e := range errorsNode.Array() {
			messages = append(messages, e.Get("message").String())
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"operation": operationName,
			"errors":    len(messages),
		}).Error("GraphQL 조작 실패")

		return gjson.Result{}, apperrors.New(apperrors.ExecutionFailed,
			fmt.Sprintf("커머스 백엔드 GraphQL 오류: %s", strings.Join(messages, "; ")))
	}

	return doc.Get("data"), nil
}

// checkUserErrors 뮤테이션 응답의 userErrors를 검사하여 하나의 InvalidInput 에러로 결합합니다.
func checkUserErrors(doc gjson.Result) error {
	userErrors := doc.Get("userErrors").Array()
	if len(userErrors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(userErrors))
	for _, e := range userErrors {
		messages = append(messages, e.Get("message").String())
	}

	return apperrors.New(apperrors.InvalidInput,
		fmt.Sprintf("커머스 백엔드가 입력을 거부했습니다: %s", strings.Join(messages, "; ")))
}

// ListProducts 공개된 상품의 첫 페이지를 조회합니다.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	data, err := c.execute(ctx, "ListProducts", listProductsQuery, map[string]interface{}{
		"first": c.pageSize,
	})
	if err != nil {
		return nil, err
	}

	products := []Product{}
	for _, edge := range data.Get("products.edges").Array() {
		products = append(products, parseProduct(edge.Get("node")))
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"count": len(products),
	}).Debug("상품 목록 조회 완료")

	return products, nil
}

// GetProductByHandle 핸들로 상품을 조회합니다.
func (c *Client) GetProductByHandle(ctx context.Context, handle string) (*Product, error) {
	data, err := c.execute(ctx, "ProductByHandle", productByHandleQuery, map[string]interface{}{
		"handle": handle,
	})
	if err != nil {
		return nil, err
	}

	node := data.Get("product")
	if !node.Exists() || node.Type == gjson.Null {
		return nil, nil
	}

	product := parseProduct(node)
	return &product, nil
}

// CreateCart 새 장바구니를 생성합니다.
func (c *Client) CreateCart(ctx context.Context) (*Cart, error) {
	data, err := c.execute(ctx, "CartCreate", cartCreateMutation, nil)
	if err != nil {
		return nil, err
	}

	result := data.Get("cartCreate")
	if err := checkUserErrors(result); err != nil {
		return nil, err
	}

	cart, err := parseCart(result.Get("cart"))
	if err != nil {
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"cart_id": cart.ID,
	}).Debug("장바구니 생성 완료")

	return cart, nil
}

// GetCart 장바구니를 조회합니다. 만료/부재 시 (nil, nil)을 반환합니다.
func (c *Client) GetCart(ctx context.Context, id string) (*Cart, error) {
	data, err := c.execute(ctx, "GetCart", getCartQuery, map[string]interface{}{
		"cartId": id,
	})
	if err != nil {
		return nil, err
	}

	node := data.Get("cart")
	if !node.Exists() || node.Type == gjson.Null {
		return nil, nil
	}

	return parseCart(node)
}

// AddLine 장바구니에 상품 변형을 추가하고 갱신된 장바구니 전체를 반환합니다.
func (c *Client) AddLine(ctx context.Context, cartID, variantID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, apperrors.New(apperrors.InvalidInput, fmt.Sprintf("수량은 1 이상이어야 합니다: '%d'", quantity))
	}

	data, err := c.execute(ctx, "CartLinesAdd", cartLinesAddMutation, map[string]interface{}{
		"cartId": cartID,
		"lines": []map[string]interface{}{
			{"merchandiseId": variantID, "quantity": quantity},
		},
	})
	if err != nil {
		return nil, err
	}

	result := data.Get("cartLinesAdd")
	if err := checkUserErrors(result); err != nil {
		return nil, err
	}

	node := result.Get("cart")
	if !node.Exists() || node.Type == gjson.Null {
		// userErrors 없이 cart가 비어있으면 백엔드에서 장바구니가 사라진 경우입니다.
		return nil, nil
	}

	return parseCart(node)
}

// RemoveLines 장바구니에서 라인을 제거하고 갱신된 장바구니 전체를 반환합니다.
func (c *Client) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*Cart, error) {
	if len(lineIDs) == 0 {
		return nil, apperrors.New(apperrors.InvalidInput, "제거할 라인 ID 목록은 비어있을 수 없습니다")
	}

	data, err := c.execute(ctx, "CartLinesRemove", cartLinesRemoveMutation, map[string]interface{}{
		"cartId":  cartID,
		"lineIds": lineIDs,
	})
	if err != nil {
		return nil, err
	}

	result := data.Get("cartLinesRemove")
	if err := checkUserErrors(result); err != nil {
		return nil, err
	}

	node := result.Get("cart")
	if !node.Exists() || node.Type == gjson.Null {
		return nil, nil
	}

	return parseCart(node)
}
