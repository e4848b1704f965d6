package recent

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContextWithCookie(value string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: value})
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func encoded(handles ...string) string {
	return url.QueryEscape(strings.Join(handles, ","))
}

func TestList(t *testing.T) {
	t.Parallel()

	t.Run("missing cookie yields empty list", func(t *testing.T) {
		t.Parallel()

		c, _ := newContextWithCookie("")

		assert.Empty(t, List(c))
	})

	t.Run("reads handles most-recent-first", func(t *testing.T) {
		t.Parallel()

		c, _ := newContextWithCookie(encoded("a", "b", "c"))

		assert.Equal(t, []string{"a", "b", "c"}, List(c))
	})

	t.Run("corrupt encoding falls back silently to empty list", func(t *testing.T) {
		t.Parallel()

		c, _ := newContextWithCookie("%zz-broken")

		assert.Empty(t, List(c))
	})

	t.Run("oversized stored list is trimmed to the cap", func(t *testing.T) {
		t.Parallel()

		c, _ := newContextWithCookie(encoded("a", "b", "c", "d", "e"))

		assert.Equal(t, []string{"a", "b", "c"}, List(c))
	})
}

func TestRecord(t *testing.T) {
	t.Parallel()

	t.Run("a,b,c,a sequence yields a,c,b", func(t *testing.T) {
		t.Parallel()

		// Each Record writes a cookie the next request carries back.
		current := ""
		for _, handle := range []string{"a", "b", "c", "a"} {
			c, rec := newContextWithCookie(current)
			Record(c, handle, false)

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			current = cookies[0].Value
		}

		c, _ := newContextWithCookie(current)
		assert.Equal(t, []string{"a", "c", "b"}, List(c))
	})

	t.Run("returns the updated list", func(t *testing.T) {
		t.Parallel()

		c, _ := newContextWithCookie(encoded("x", "y"))

		got := Record(c, "z", false)

		assert.Equal(t, []string{"z", "x", "y"}, got)
	})

	t.Run("re-recording the front handle is a no-op reorder", func(t *testing.T) {
		t.Parallel()

		c, _ := newContextWithCookie(encoded("a", "b"))

		got := Record(c, "a", false)

		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("blank handle records nothing", func(t *testing.T) {
		t.Parallel()

		c, rec := newContextWithCookie(encoded("a"))

		got := Record(c, "  ", false)

		assert.Equal(t, []string{"a"}, got)
		assert.Empty(t, rec.Result().Cookies(), "no cookie write for a blank handle")
	})

	t.Run("cookie attributes", func(t *testing.T) {
		t.Parallel()

		c, rec := newContextWithCookie("")

		Record(c, "a", true)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, 30*24*60*60, cookie.MaxAge)
		assert.True(t, cookie.Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	})
}
