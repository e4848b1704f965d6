package system

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/darkkaiser/storefront-server/internal/pkg/version"
	"github.com/darkkaiser/storefront-server/internal/service/api/constants"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/system"
	"github.com/darkkaiser/storefront-server/internal/service/cache"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationSender struct{}

func (f *fakeNotificationSender) NotifyDefault(_ string) error          { return nil }
func (f *fakeNotificationSender) NotifyDefaultWithError(_ string) error { return nil }

func createTestContext(t *testing.T, path string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()

	return rec, e.NewContext(req, rec)
}

func TestNewHandler(t *testing.T) {
	t.Run("panics when the notification sender is missing", func(t *testing.T) {
		assert.PanicsWithValue(t, constants.PanicMsgNotificationSenderRequired, func() {
			NewHandler(nil, cache.NewStore(), version.Info{})
		})
	})

	t.Run("creates a handler with all dependencies", func(t *testing.T) {
		assert.NotNil(t, NewHandler(&fakeNotificationSender{}, cache.NewStore(), version.Info{}))
	})
}

func TestHealthCheckHandler(t *testing.T) {
	t.Run("reports healthy when all dependencies are initialized", func(t *testing.T) {
		h := NewHandler(&fakeNotificationSender{}, cache.NewStore(), version.Info{})

		rec, c := createTestContext(t, "/health")

		require.NoError(t, h.HealthCheckHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body system.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

		assert.Equal(t, constants.HealthStatusHealthy, body.Status)
		assert.GreaterOrEqual(t, body.Uptime, int64(0))

		require.Contains(t, body.Dependencies, constants.DependencyNotificationService)
		require.Contains(t, body.Dependencies, constants.DependencyCacheStore)
		assert.Equal(t, constants.HealthStatusHealthy, body.Dependencies[constants.DependencyNotificationService].Status)
		assert.Equal(t, constants.HealthStatusHealthy, body.Dependencies[constants.DependencyCacheStore].Status)
	})

	t.Run("reports unhealthy when the cache store is missing", func(t *testing.T) {
		h := NewHandler(&fakeNotificationSender{}, nil, version.Info{})

		rec, c := createTestContext(t, "/health")

		require.NoError(t, h.HealthCheckHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body system.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

		assert.Equal(t, constants.HealthStatusUnhealthy, body.Status)
		assert.Equal(t, constants.HealthStatusUnhealthy, body.Dependencies[constants.DependencyCacheStore].Status)
	})
}

func TestVersionHandler(t *testing.T) {
	t.Run("returns build information", func(t *testing.T) {
		buildInfo := version.Info{
			Version:     "1.2.3",
			Commit:      "abc1234",
			BuildDate:   "2026-08-01T00:00:00Z",
			BuildNumber: "42",
		}
		h := NewHandler(&fakeNotificationSender{}, cache.NewStore(), buildInfo)

		rec, c := createTestContext(t, "/version")

		require.NoError(t, h.VersionHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body system.VersionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

		assert.Equal(t, "1.2.3", body.Version)
		assert.Equal(t, "abc1234", body.Commit)
		assert.Equal(t, "2026-08-01T00:00:00Z", body.BuildDate)
		assert.Equal(t, "42", body.BuildNumber)
		assert.Equal(t, runtime.Version(), body.GoVersion)
	})
}
