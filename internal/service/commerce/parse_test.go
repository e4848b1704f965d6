package commerce

import (
	"testing"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const validCartJSON = `{
  "id": "gid://shopify/Cart/abc123",
  "checkoutUrl": "https://demo-store.myshopify.com/checkout/abc123",
  "totalQuantity": 3,
  "cost": {"totalAmount": {"amount": "45.00", "currencyCode": "USD"}},
  "lines": {
    "edges": [
      {"node": {
        "id": "gid://shopify/CartLine/line-1",
        "quantity": 2,
        "merchandise": {
          "id": "gid://shopify/ProductVariant/v1",
          "title": "Small",
          "price": {"amount": "10.00", "currencyCode": "USD"},
          "product": {
            "title": "Aluminum Bottle",
            "handle": "aluminum-bottle",
            "featuredImage": {"url": "https://cdn.example.com/bottle.jpg", "altText": "bottle"}
          }
        }
      }},
      {"node": {
        "id": "gid://shopify/CartLine/line-2",
        "quantity": 1,
        "merchandise": {
          "id": "gid://shopify/ProductVariant/v2",
          "title": "Large",
          "price": {"amount": "25.00", "currencyCode": "USD"},
          "product": {"title": "Steel Tumbler", "handle": "steel-tumbler", "featuredImage": null}
        }
      }}
    ]
  }
}`

func TestParseCart(t *testing.T) {
	t.Parallel()

	t.Run("parses a full cart payload", func(t *testing.T) {
		t.Parallel()

		cart, err := parseCart(gjson.Parse(validCartJSON))

		require.NoError(t, err)
		assert.Equal(t, "gid://shopify/Cart/abc123", cart.ID)
		assert.Equal(t, 3, cart.TotalQuantity)
		assert.Equal(t, "45.00", cart.Cost.TotalAmount.Amount)
		require.Len(t, cart.Lines, 2)
		assert.Equal(t, "aluminum-bottle", cart.Lines[0].Merchandise.ProductHandle)
		assert.Equal(t, 2, cart.Lines[0].Quantity)
		require.NotNil(t, cart.Lines[0].Merchandise.Image)
		assert.Nil(t, cart.Lines[1].Merchandise.Image)
	})

	t.Run("quantity sum mismatch yields ParsingFailed", func(t *testing.T) {
		t.Parallel()

		doc := gjson.Parse(`{
		  "id": "gid://shopify/Cart/abc123",
		  "checkoutUrl": "https://example.com/checkout",
		  "totalQuantity": 99,
		  "cost": {"totalAmount": {"amount": "45.00", "currencyCode": "USD"}},
		  "lines": {"edges": [
		    {"node": {"id": "line-1", "quantity": 2, "merchandise": {}}}
		  ]}
		}`)

		_, parseErr := parseCart(doc)

		require.Error(t, parseErr)
		assert.True(t, apperrors.Is(parseErr, apperrors.ParsingFailed))
		assert.Contains(t, parseErr.Error(), "totalQuantity(99)")
	})

	t.Run("missing cart id yields ParsingFailed", func(t *testing.T) {
		t.Parallel()

		_, err := parseCart(gjson.Parse(`{"totalQuantity": 0}`))

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
	})

	t.Run("empty cart has an empty line slice", func(t *testing.T) {
		t.Parallel()

		cart, err := parseCart(gjson.Parse(`{"id": "cart-1", "totalQuantity": 0}`))

		require.NoError(t, err)
		assert.NotNil(t, cart.Lines)
		assert.Empty(t, cart.Lines)
	})
}

func TestParseProduct(t *testing.T) {
	t.Parallel()

	doc := gjson.Parse(`{
	  "id": "gid://shopify/Product/p1",
	  "title": "Aluminum Bottle",
	  "handle": "aluminum-bottle",
	  "description": "Keeps drinks cold.",
	  "featuredImage": {"url": "https://cdn.example.com/bottle.jpg", "altText": "bottle"},
	  "priceRange": {"minVariantPrice": {"amount": "10.00", "currencyCode": "USD"}},
	  "variants": {"edges": [
	    {"node": {"id": "v1", "title": "Small", "availableForSale": true, "price": {"amount": "10.00", "currencyCode": "USD"}}},
	    {"node": {"id": "v2", "title": "Large", "availableForSale": false, "price": {"amount": "25.00", "currencyCode": "USD"}}}
	  ]}
	}`)

	product := parseProduct(doc)

	assert.Equal(t, "aluminum-bottle", product.Handle)
	assert.Equal(t, "10.00", product.PriceRange.MinVariantPrice.Amount)
	require.Len(t, product.Variants, 2)
	assert.True(t, product.Variants[0].AvailableForSale)
	assert.False(t, product.Variants[1].AvailableForSale)
}
