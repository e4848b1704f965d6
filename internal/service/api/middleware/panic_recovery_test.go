package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicRecovery(t *testing.T) {
	runWithPanic := func(t *testing.T, payload interface{}) (*httptest.ResponseRecorder, error) {
		t.Helper()

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := PanicRecovery()(func(c echo.Context) error {
			panic(payload)
		})

		var err error
		require.NotPanics(t, func() {
			err = handler(c)
		})

		return rec, err
	}

	t.Run("recovers from a string panic and responds with 500", func(t *testing.T) {
		rec, err := runWithPanic(t, "치명적인 오류 발생")

		assert.NoError(t, err, "복구된 패닉은 에러로 반환되지 않고 c.Error로 처리됩니다")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("recovers from an error panic", func(t *testing.T) {
		rec, err := runWithPanic(t, errors.New("데이터베이스 연결 실패"))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("wraps non-error payloads as an internal error", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var captured error
		e.HTTPErrorHandler = func(err error, c echo.Context) {
			captured = err
			_ = c.NoContent(http.StatusInternalServerError)
		}

		handler := PanicRecovery()(func(c echo.Context) error {
			panic(42)
		})
		require.NoError(t, handler(c))

		require.Error(t, captured)
		assert.True(t, apperrors.Is(captured, apperrors.Internal))
		assert.Contains(t, captured.Error(), "42")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("passes through normal requests untouched", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := PanicRecovery()(func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})

		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})
}
