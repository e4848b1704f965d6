package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/storefront-server/internal/config"
	"github.com/darkkaiser/storefront-server/internal/pkg/fetcher"
	"github.com/darkkaiser/storefront-server/internal/pkg/version"
	"github.com/darkkaiser/storefront-server/internal/service/api/constants"
	"github.com/darkkaiser/storefront-server/internal/service/api/model/system"
	"github.com/darkkaiser/storefront-server/internal/service/cache"
	"github.com/darkkaiser/storefront-server/internal/service/chat"
	"github.com/darkkaiser/storefront-server/internal/service/commerce"
	"github.com/darkkaiser/storefront-server/internal/service/content"
	"github.com/darkkaiser/storefront-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Fakes
// =============================================================================

type stubProductAPI struct{}

func (stubProductAPI) ListProducts(_ context.Context) ([]commerce.Product, error) {
	return nil, nil
}

func (stubProductAPI) GetProductByHandle(_ context.Context, _ string) (*commerce.Product, error) {
	return nil, nil
}

type stubCartAPI struct{}

func (stubCartAPI) CreateCart(_ context.Context) (*commerce.Cart, error) { return nil, nil }
func (stubCartAPI) GetCart(_ context.Context, _ string) (*commerce.Cart, error) {
	return nil, nil
}
func (stubCartAPI) AddLine(_ context.Context, _, _ string, _ int) (*commerce.Cart, error) {
	return nil, nil
}
func (stubCartAPI) RemoveLines(_ context.Context, _ string, _ []string) (*commerce.Cart, error) {
	return nil, nil
}

type stubContentAPI struct{}

func (stubContentAPI) GetHomepage(_ context.Context) *content.Homepage         { return nil }
func (stubContentAPI) GetPageBySlug(_ context.Context, _ string) *content.Page { return nil }
func (stubContentAPI) GetService(_ context.Context, _ string) *content.ServiceDoc {
	return nil
}
func (stubContentAPI) SubmitTestimonial(_ context.Context, _ content.TestimonialFields) (string, error) {
	return "", nil
}

type stubNotificationSender struct {
	mu       sync.Mutex
	messages []string
}

func (s *stubNotificationSender) NotifyDefault(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

func (s *stubNotificationSender) NotifyDefaultWithError(message string) error {
	return s.NotifyDefault(message)
}

// =============================================================================
// Test Helpers
// =============================================================================

func newServiceTestConfig(t *testing.T) *config.AppConfig {
	t.Helper()

	port, err := testutil.GetFreePort()
	require.NoError(t, err, "사용 가능한 포트를 가져오는데 실패했습니다")

	appConfig := &config.AppConfig{Debug: true}
	appConfig.Cache.ProductTTL = "5m"
	appConfig.Cache.ContentTTL = "1h"
	appConfig.Storefront.WS.ListenPort = port
	appConfig.Storefront.WS.TLSServer = false
	appConfig.Storefront.CORS.AllowOrigins = []string{"*"}

	return appConfig
}

func newTestService(t *testing.T, appConfig *config.AppConfig) (*Service, *stubNotificationSender) {
	t.Helper()

	sender := &stubNotificationSender{}
	assistant := chat.NewAssistant(&config.AIConfig{
		APIKey:   "test-key",
		Model:    "test-model",
		Endpoint: "http://127.0.0.1:1",
	}, fetcher.NewFromConfig(fetcher.Config{DisableLogging: true}))

	service := NewService(appConfig, stubProductAPI{}, stubCartAPI{}, stubContentAPI{}, assistant, cache.NewStore(), sender, version.Info{
		Version:     "1.0.0",
		BuildDate:   "2026-01-01",
		BuildNumber: "100",
	})

	return service, sender
}

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewService(t *testing.T) {
	appConfig := newServiceTestConfig(t)

	t.Run("initializes all fields", func(t *testing.T) {
		service, sender := newTestService(t, appConfig)

		assert.NotNil(t, service)
		assert.Equal(t, appConfig, service.appConfig)
		assert.Equal(t, sender, service.notificationSender)
		assert.False(t, service.running, "초기 상태는 running=false여야 함")
	})

	t.Run("panics when a required dependency is missing", func(t *testing.T) {
		sender := &stubNotificationSender{}
		assistant := chat.NewAssistant(&config.AIConfig{}, fetcher.NewFromConfig(fetcher.Config{DisableLogging: true}))
		store := cache.NewStore()

		assert.PanicsWithValue(t, constants.PanicMsgAppConfigRequired, func() {
			NewService(nil, stubProductAPI{}, stubCartAPI{}, stubContentAPI{}, assistant, store, sender, version.Info{})
		})
		assert.PanicsWithValue(t, constants.PanicMsgCommerceClientRequired, func() {
			NewService(appConfig, nil, stubCartAPI{}, stubContentAPI{}, assistant, store, sender, version.Info{})
		})
		assert.PanicsWithValue(t, constants.PanicMsgContentClientRequired, func() {
			NewService(appConfig, stubProductAPI{}, stubCartAPI{}, nil, assistant, store, sender, version.Info{})
		})
		assert.PanicsWithValue(t, constants.PanicMsgNotificationSenderRequired, func() {
			NewService(appConfig, stubProductAPI{}, stubCartAPI{}, stubContentAPI{}, assistant, store, nil, version.Info{})
		})
	})
}

// =============================================================================
// Server Setup Tests
// =============================================================================

func TestService_setupServer(t *testing.T) {
	service, _ := newTestService(t, newServiceTestConfig(t))

	e := service.setupServer()

	require.NotNil(t, e)
	assert.True(t, e.Debug, "Config의 Debug가 true이면 Echo Debug도 true여야 함")

	routePaths := make(map[string]bool)
	for _, route := range e.Routes() {
		routePaths[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"GET /version",
		"POST /api/cart",
		"GET /api/cart",
		"POST /api/products/by-handles",
		"GET /api/content/homepage",
		"GET /api/content/pages/:slug",
		"GET /api/content/services/:handle",
		"POST /api/testimonials/submit",
		"POST /api/chat",
		"GET /api/recently-viewed",
		"POST /api/recently-viewed",
		"POST /api/revalidate",
	}
	for _, route := range expected {
		assert.True(t, routePaths[route], "라우트가 등록되어야 함: %s", route)
	}
}

// =============================================================================
// Lifecycle Tests
// =============================================================================

func TestService_Lifecycle(t *testing.T) {
	t.Run("starts, serves health checks and shuts down gracefully", func(t *testing.T) {
		appConfig := newServiceTestConfig(t)
		service, _ := newTestService(t, appConfig)

		ctx, cancel := context.WithCancel(context.Background())
		wg := &sync.WaitGroup{}

		wg.Add(1)
		require.NoError(t, service.Start(ctx, wg))

		port := appConfig.Storefront.WS.ListenPort
		require.NoError(t, testutil.WaitForServer(port, 5*time.Second))

		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/health", port))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body system.HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, constants.HealthStatusHealthy, body.Status)

		cancel()
		wg.Wait()

		service.runningMu.Lock()
		running := service.running
		service.runningMu.Unlock()
		assert.False(t, running, "종료 후에는 running=false여야 함")
	})

	t.Run("duplicate start is ignored with a warning", func(t *testing.T) {
		appConfig := newServiceTestConfig(t)
		service, _ := newTestService(t, appConfig)

		ctx, cancel := context.WithCancel(context.Background())
		wg := &sync.WaitGroup{}

		wg.Add(1)
		require.NoError(t, service.Start(ctx, wg))

		wg.Add(1)
		require.NoError(t, service.Start(ctx, wg), "중복 시작은 에러 없이 무시되어야 함")

		cancel()
		wg.Wait()
	})

	t.Run("port binding failure notifies the default channel", func(t *testing.T) {
		appConfig := newServiceTestConfig(t)
		blocker, _ := newTestService(t, appConfig)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		wg := &sync.WaitGroup{}

		wg.Add(1)
		require.NoError(t, blocker.Start(ctx, wg))
		require.NoError(t, testutil.WaitForServer(appConfig.Storefront.WS.ListenPort, 5*time.Second))

		// 같은 포트에 두 번째 서비스를 올려 바인딩 실패를 유도합니다.
		conflicting, sender := newTestService(t, appConfig)

		conflictCtx, conflictCancel := context.WithCancel(context.Background())
		defer conflictCancel()
		conflictWG := &sync.WaitGroup{}

		conflictWG.Add(1)
		require.NoError(t, conflicting.Start(conflictCtx, conflictWG))
		conflictWG.Wait()

		sender.mu.Lock()
		notified := len(sender.messages) > 0
		sender.mu.Unlock()
		assert.True(t, notified, "바인딩 실패 시 기본 채널로 알림이 전송되어야 함")

		cancel()
		wg.Wait()
	})
}
