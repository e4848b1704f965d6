package commerce

import (
	"fmt"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/tidwall/gjson"
)

// 이 파일은 GraphQL 응답을 내부 타입으로 정규화하는 유일한 경계입니다.
// 호출별로 흩어진 파싱 대신 모든 형태 해석을 이곳에 모읍니다.

func parseMoney(doc gjson.Result) Money {
	return Money{
		Amount:       doc.Get("amount").String(),
		CurrencyCode: doc.Get("currencyCode").String(),
	}
}

func parseImage(doc gjson.Result) *Image {
	if !doc.Exists() || doc.Type == gjson.Null {
		return nil
	}
	url := doc.Get("url").String()
	if url == "" {
		return nil
	}
	return &Image{
		URL:     url,
		AltText: doc.Get("altText").String(),
	}
}

// parseProduct 상품 노드를 내부 Product 타입으로 변환합니다.
func parseProduct(doc gjson.Result) Product {
	product := Product{
		ID:            doc.Get("id").String(),
		Title:         doc.Get("title").String(),
		Handle:        doc.Get("handle").String(),
		Description:   doc.Get("description").String(),
		FeaturedImage: parseImage(doc.Get("featuredImage")),
		PriceRange: PriceRange{
			MinVariantPrice: parseMoney(doc.Get("priceRange.minVariantPrice")),
		},
	}

	for _, edge := range doc.Get("variants.edges").Array() {
		node := edge.Get("node")
		product.Variants = append(product.Variants, ProductVariant{
			ID:               node.Get("id").String(),
			Title:            node.Get("title").String(),
			Price:            parseMoney(node.Get("price")),
			AvailableForSale: node.Get("availableForSale").Bool(),
		})
	}

	return product
}

// parseCart 장바구니 노드를 내부 Cart 타입으로 변환합니다.
//
// 변환 후 TotalQuantity가 모든 라인 수량의 합과 일치하는지 검증하며,
// 불일치 시 손상된 상위 페이로드로 간주하여 ParsingFailed 에러를 반환합니다.
func parseCart(doc gjson.Result) (*Cart, error) {
	cart := &Cart{
		ID:            doc.Get("id").String(),
		CheckoutURL:   doc.Get("checkoutUrl").String(),
		TotalQuantity: int(doc.Get("totalQuantity").Int()),
		Cost: CartCost{
			TotalAmount: parseMoney(doc.Get("cost.totalAmount")),
		},
		Lines: []CartLine{},
	}

	if cart.ID == "" {
		return nil, apperrors.New(apperrors.ParsingFailed, "장바구니 응답에 ID가 누락되었습니다")
	}

	quantitySum := 0
	for _, edge := range doc.Get("lines.edges").Array() {
		node := edge.Get("node")
		merchandise := node.Get("merchandise")

		line := CartLine{
			ID:       node.Get("id").String(),
			Quantity: int(node.Get("quantity").Int()),
			Merchandise: Merchandise{
				VariantID:     merchandise.Get("id").String(),
				VariantTitle:  merchandise.Get("title").String(),
				ProductTitle:  merchandise.Get("product.title").String(),
				ProductHandle: merchandise.Get("product.handle").String(),
				Image:         parseImage(merchandise.Get("product.featuredImage")),
				Price:         parseMoney(merchandise.Get("price")),
			},
		}

		quantitySum += line.Quantity
		cart.Lines = append(cart.Lines, line)
	}

	if cart.TotalQuantity != quantitySum {
		return nil, apperrors.New(apperrors.ParsingFailed,
			fmt.Sprintf("장바구니 응답이 손상되었습니다: totalQuantity(%d)와 라인 수량 합계(%d)가 일치하지 않습니다", cart.TotalQuantity, quantitySum))
	}

	return cart, nil
}
