package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/darkkaiser/storefront-server/internal/pkg/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL, writeToken string) *Client {
	return &Client{
		fetcher: fetcher.NewFromConfig(fetcher.Config{
			DisableLogging: true,
		}),
		queryURL:   serverURL + "/query",
		mutateURL:  serverURL + "/mutate",
		projectID:  "testproj",
		dataset:    "production",
		writeToken: writeToken,
	}
}

func newContentStub(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestClient_GetHomepage(t *testing.T) {
	t.Run("parses the homepage document", func(t *testing.T) {
		server := newContentStub(t, http.StatusOK, `{"result": {
		  "heroHeading": "Welcome",
		  "heroSubheading": "Shop the drop",
		  "heroImageRef": "image-abc123-1200x800-jpg",
		  "testimonials": [{"name": "Kim", "role": "Customer", "quote": "Great!"}],
		  "faqs": [{"question": "Shipping?", "answer": "Worldwide."}]
		}}`)

		homepage := newTestClient(server.URL, "").GetHomepage(context.Background())

		require.NotNil(t, homepage)
		assert.Equal(t, "Welcome", homepage.HeroHeading)
		assert.Contains(t, homepage.HeroImageURL, "cdn.sanity.io/images/testproj/production/abc123-1200x800.jpg")
		require.Len(t, homepage.Testimonials, 1)
		assert.Equal(t, "Kim", homepage.Testimonials[0].Name)
		require.Len(t, homepage.FAQs, 1)
	})

	t.Run("upstream 500 yields nil, not an error", func(t *testing.T) {
		server := newContentStub(t, http.StatusInternalServerError, `boom`)

		homepage := newTestClient(server.URL, "").GetHomepage(context.Background())

		assert.Nil(t, homepage)
	})
}

func TestClient_GetPageBySlug(t *testing.T) {
	t.Run("missing document yields nil", func(t *testing.T) {
		server := newContentStub(t, http.StatusOK, `{"result": null}`)

		page := newTestClient(server.URL, "").GetPageBySlug(context.Background(), "about")

		assert.Nil(t, page)
	})

	t.Run("builds an excerpt from the rich-text body", func(t *testing.T) {
		server := newContentStub(t, http.StatusOK, `{"result": {
		  "slug": "about",
		  "title": "About Us",
		  "bodyHtml": "<h1>Our   Story</h1><p>Started in a garage.</p>"
		}}`)

		page := newTestClient(server.URL, "").GetPageBySlug(context.Background(), "about")

		require.NotNil(t, page)
		assert.Equal(t, "About Us", page.Title)
		assert.Equal(t, "Our Story Started in a garage.", page.Excerpt)
	})

	t.Run("upstream 500 yields nil so the page renders fallback copy", func(t *testing.T) {
		server := newContentStub(t, http.StatusInternalServerError, `boom`)

		page := newTestClient(server.URL, "").GetPageBySlug(context.Background(), "about")

		assert.Nil(t, page)
	})
}

func TestClient_GetService(t *testing.T) {
	server := newContentStub(t, http.StatusOK, `{"result": {
	  "handle": "consulting",
	  "title": "Consulting",
	  "description": "Legacy offering."
	}}`)

	doc := newTestClient(server.URL, "").GetService(context.Background(), "consulting")

	require.NotNil(t, doc)
	assert.Equal(t, "consulting", doc.Handle)
}

func TestClient_SubmitTestimonial(t *testing.T) {
	fields := TestimonialFields{Name: "Kim", Email: "kim@example.com", Quote: "Great!"}

	t.Run("missing write token yields Configuration error", func(t *testing.T) {
		server := newContentStub(t, http.StatusOK, `{}`)

		_, err := newTestClient(server.URL, "").SubmitTestimonial(context.Background(), fields)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Configuration))
		assert.Contains(t, err.Error(), "content.write_token")
	})

	t.Run("returns the created document id", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"results": [{"id": "doc-123"}]}`))
		}))
		t.Cleanup(server.Close)

		id, err := newTestClient(server.URL, "secret-token").SubmitTestimonial(context.Background(), fields)

		require.NoError(t, err)
		assert.Equal(t, "doc-123", id)
		assert.Equal(t, "Bearer secret-token", gotAuth)
	})

	t.Run("mutation failure yields ExecutionFailed", func(t *testing.T) {
		server := newContentStub(t, http.StatusInternalServerError, `boom`)

		_, err := newTestClient(server.URL, "secret-token").SubmitTestimonial(context.Background(), fields)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))
	})
}

func TestClient_ImageURL(t *testing.T) {
	t.Parallel()

	c := &Client{projectID: "testproj", dataset: "production"}

	tests := []struct {
		name     string
		ref      string
		width    int
		expected string
	}{
		{
			name:     "valid reference",
			ref:      "image-abc123-1200x800-jpg",
			width:    600,
			expected: "https://cdn.sanity.io/images/testproj/production/abc123-1200x800.jpg?w=600&auto=format",
		},
		{
			name:     "id containing dashes",
			ref:      "image-ab-cd-ef-1200x800-png",
			width:    0,
			expected: "https://cdn.sanity.io/images/testproj/production/ab-cd-ef-1200x800.png",
		},
		{name: "missing prefix", ref: "file-abc123-1200x800-jpg", width: 600, expected: ""},
		{name: "too few segments", ref: "image-abc123", width: 600, expected: ""},
		{name: "malformed dimensions", ref: "image-abc123-large-jpg", width: 600, expected: ""},
		{name: "empty reference", ref: "", width: 600, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, c.ImageURL(tt.ref, tt.width))
		})
	}
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	t.Run("strips tags and collapses whitespace", func(t *testing.T) {
		t.Parallel()

		got := Excerpt("<p>Hello   <b>world</b></p>\n<p>again</p>", 100)

		assert.Equal(t, "Hello world again", got)
	})

	t.Run("truncates with ellipsis", func(t *testing.T) {
		t.Parallel()

		got := Excerpt("<p>abcdefghij</p>", 5)

		assert.Equal(t, "abcde…", got)
	})

	t.Run("empty input yields empty string", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, Excerpt("", 100))
		assert.Empty(t, Excerpt("<p>x</p>", 0))
	})
}
