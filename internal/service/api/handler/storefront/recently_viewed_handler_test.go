package storefront

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/darkkaiser/storefront-server/internal/service/api/model/request"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/response"
	"github.com/darkkaiser/storefront-server/internal/service/commerce"
	"github.com/darkkaiser/storefront-server/internal/service/recent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRecentlyViewedHandler(t *testing.T) {
	t.Run("returns handles and resolved products", func(t *testing.T) {
		products := &fakeProductAPI{products: map[string]*commerce.Product{
			"olive-oil": {Handle: "olive-oil", Title: "Olive Oil"},
			"honey":     {Handle: "honey", Title: "Honey"},
		}}
		h := newTestHandler(t, withProducts(products))

		rec, c := createTestRequest(t, http.MethodGet, "/api/recently-viewed", nil)
		c.Request().AddCookie(&http.Cookie{
			Name:  recent.CookieName,
			Value: url.QueryEscape("honey,olive-oil"),
		})

		require.NoError(t, h.GetRecentlyViewedHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body response.RecentlyViewedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, []string{"honey", "olive-oil"}, body.Handles)
		require.Len(t, body.Products, 2)
		assert.Equal(t, "honey", body.Products[0].Handle)
	})

	t.Run("keeps handles whose products can no longer be resolved", func(t *testing.T) {
		products := &fakeProductAPI{products: map[string]*commerce.Product{
			"olive-oil": {Handle: "olive-oil", Title: "Olive Oil"},
		}}
		h := newTestHandler(t, withProducts(products))

		rec, c := createTestRequest(t, http.MethodGet, "/api/recently-viewed", nil)
		c.Request().AddCookie(&http.Cookie{
			Name:  recent.CookieName,
			Value: url.QueryEscape("discontinued,olive-oil"),
		})

		require.NoError(t, h.GetRecentlyViewedHandler(c))

		var body response.RecentlyViewedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, []string{"discontinued", "olive-oil"}, body.Handles)
		require.Len(t, body.Products, 1)
		assert.Equal(t, "olive-oil", body.Products[0].Handle)
	})

	t.Run("corrupted cookie yields an empty list", func(t *testing.T) {
		h := newTestHandler(t)

		rec, c := createTestRequest(t, http.MethodGet, "/api/recently-viewed", nil)
		c.Request().AddCookie(&http.Cookie{Name: recent.CookieName, Value: "%zz"})

		require.NoError(t, h.GetRecentlyViewedHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body response.RecentlyViewedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Empty(t, body.Handles)
	})
}

func TestRecordRecentlyViewedHandler(t *testing.T) {
	t.Run("records a handle at the front of the list", func(t *testing.T) {
		h := newTestHandler(t)

		rec, c := createTestRequest(t, http.MethodPost, "/api/recently-viewed", request.RecentlyViewedRequest{Handle: "honey"})
		c.Request().AddCookie(&http.Cookie{
			Name:  recent.CookieName,
			Value: url.QueryEscape("olive-oil"),
		})

		require.NoError(t, h.RecordRecentlyViewedHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body response.RecentlyViewedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, []string{"honey", "olive-oil"}, body.Handles)

		cookie := responseCookie(t, rec, recent.CookieName)
		require.NotNil(t, cookie)
		assert.Equal(t, url.QueryEscape("honey,olive-oil"), cookie.Value)
	})

	t.Run("caps the list at three entries", func(t *testing.T) {
		h := newTestHandler(t)

		rec, c := createTestRequest(t, http.MethodPost, "/api/recently-viewed", request.RecentlyViewedRequest{Handle: "newest"})
		c.Request().AddCookie(&http.Cookie{
			Name:  recent.CookieName,
			Value: url.QueryEscape("first,second,third"),
		})

		require.NoError(t, h.RecordRecentlyViewedHandler(c))

		var body response.RecentlyViewedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, []string{"newest", "first", "second"}, body.Handles)
	})

	t.Run("missing handle returns 400", func(t *testing.T) {
		h := newTestHandler(t)

		_, c := createTestRequest(t, http.MethodPost, "/api/recently-viewed", request.RecentlyViewedRequest{})

		err := h.RecordRecentlyViewedHandler(c)
		requireHTTPError(t, err, http.StatusBadRequest)
	})
}
