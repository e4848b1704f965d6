package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Unit Tests: Validation Logic (AppConfig.validate)
// =============================================================================

func TestAppConfig_Validate_TableDriven(t *testing.T) {
	t.Parallel()

	// 1. Base Valid Configuration Factory
	baseConfig := func() *AppConfig {
		return &AppConfig{
			Debug: true,
			HTTPRetry: HTTPRetryConfig{
				MaxRetries: 3,
				RetryDelay: "2s",
			},
			Commerce: CommerceConfig{
				StoreDomain: "demo-store.myshopify.com",
				AccessToken: "shpat_test_token",
				APIVersion:  "2024-10",
				PageSize:    20,
			},
			Content: ContentConfig{
				ProjectID:  "abc123de",
				Dataset:    "production",
				APIVersion: "2024-01-01",
			},
			Cache: CacheConfig{
				ProductTTL:            "5m",
				ContentTTL:            "1h",
				RevalidateSpec:        "*/5 * * * *",
				FailureAlertThreshold: 3,
			},
			ABTests: []ABTestConfig{
				{Name: "HeroLayout", Variants: []string{"control", "variant-b"}},
			},
			Storefront: StorefrontConfig{
				WS:   WSConfig{ListenPort: 8080},
				CORS: CORSConfig{AllowOrigins: []string{"*"}},
			},
			Notifiers: NotifierConfig{
				Telegram: TelegramConfig{Enabled: false},
			},
		}
	}

	tests := []struct {
		name        string
		modifier    func(*AppConfig) // Config을 망가뜨리는 함수
		expectError bool
		errorMsg    string
	}{
		// Happy Path
		{
			name:        "Valid Configuration",
			modifier:    func(c *AppConfig) {},
			expectError: false,
		},
		// HTTP Retry
		{
			name:        "HTTPRetry: Invalid Delay Format",
			modifier:    func(c *AppConfig) { c.HTTPRetry.RetryDelay = "abc" },
			expectError: true,
			errorMsg:    "HTTP 재시도 대기 시간",
		},
		{
			name:        "HTTPRetry: Negative MaxRetries",
			modifier:    func(c *AppConfig) { c.HTTPRetry.MaxRetries = -1 },
			expectError: true,
			errorMsg:    "HTTP 최대 재시도 횟수",
		},
		// Commerce
		{
			name:        "Commerce: Missing Store Domain",
			modifier:    func(c *AppConfig) { c.Commerce.StoreDomain = "  " },
			expectError: true,
			errorMsg:    "commerce.store_domain",
		},
		{
			name:        "Commerce: Missing Access Token",
			modifier:    func(c *AppConfig) { c.Commerce.AccessToken = "" },
			expectError: true,
			errorMsg:    "commerce.access_token",
		},
		{
			name:        "Commerce: Page Size Out Of Range",
			modifier:    func(c *AppConfig) { c.Commerce.PageSize = 0 },
			expectError: true,
			errorMsg:    "commerce.page_size",
		},
		// Content
		{
			name:        "Content: Missing Project ID",
			modifier:    func(c *AppConfig) { c.Content.ProjectID = "" },
			expectError: true,
			errorMsg:    "content.project_id",
		},
		{
			name:        "Content: Missing Dataset",
			modifier:    func(c *AppConfig) { c.Content.Dataset = "" },
			expectError: true,
			errorMsg:    "content.dataset",
		},
		// Cache
		{
			name:        "Cache: Invalid Product TTL",
			modifier:    func(c *AppConfig) { c.Cache.ProductTTL = "5 minutes" },
			expectError: true,
			errorMsg:    "cache.product_ttl",
		},
		{
			name:        "Cache: Invalid Cron Spec",
			modifier:    func(c *AppConfig) { c.Cache.RevalidateSpec = "every 5 minutes" },
			expectError: true,
			errorMsg:    "cache.revalidate_spec",
		},
		{
			name:        "Cache: Zero Alert Threshold",
			modifier:    func(c *AppConfig) { c.Cache.FailureAlertThreshold = 0 },
			expectError: true,
			errorMsg:    "cache.failure_alert_threshold",
		},
		// A/B Tests
		{
			name: "ABTest: Duplicate Names",
			modifier: func(c *AppConfig) {
				c.ABTests = append(c.ABTests, ABTestConfig{Name: "HeroLayout", Variants: []string{"a", "b"}})
			},
			expectError: true,
			errorMsg:    "중복된 A/B 테스트 이름",
		},
		{
			name: "ABTest: Single Variant",
			modifier: func(c *AppConfig) {
				c.ABTests = []ABTestConfig{{Name: "Solo", Variants: []string{"only"}}}
			},
			expectError: true,
			errorMsg:    "최소 2개 이상",
		},
		{
			name: "ABTest: Missing Name",
			modifier: func(c *AppConfig) {
				c.ABTests = []ABTestConfig{{Variants: []string{"a", "b"}}}
			},
			expectError: true,
			errorMsg:    "A/B 테스트 이름",
		},
		// Web Server
		{
			name:        "WS: Invalid Listen Port",
			modifier:    func(c *AppConfig) { c.Storefront.WS.ListenPort = 70000 },
			expectError: true,
			errorMsg:    "listen_port",
		},
		{
			name:        "WS: TLS Enabled Without Cert",
			modifier:    func(c *AppConfig) { c.Storefront.WS.TLSServer = true },
			expectError: true,
			errorMsg:    "tls_cert_file",
		},
		// CORS
		{
			name:        "CORS: Empty Origins",
			modifier:    func(c *AppConfig) { c.Storefront.CORS.AllowOrigins = nil },
			expectError: true,
			errorMsg:    "allow_origins",
		},
		{
			name: "CORS: Wildcard Mixed With Domains",
			modifier: func(c *AppConfig) {
				c.Storefront.CORS.AllowOrigins = []string{"*", "https://example.com"}
			},
			expectError: true,
			errorMsg:    "와일드카드",
		},
		{
			name: "CORS: Invalid Origin Format",
			modifier: func(c *AppConfig) {
				c.Storefront.CORS.AllowOrigins = []string{"example.com"}
			},
			expectError: true,
			errorMsg:    "형식이어야 합니다",
		},
		// Telegram
		{
			name: "Telegram: Enabled Without Bot Token",
			modifier: func(c *AppConfig) {
				c.Notifiers.Telegram = TelegramConfig{Enabled: true, ChatID: 12345}
			},
			expectError: true,
			errorMsg:    "봇 토큰",
		},
		{
			name: "Telegram: Invalid Bot Token Format",
			modifier: func(c *AppConfig) {
				c.Notifiers.Telegram = TelegramConfig{Enabled: true, BotToken: "not-a-token", ChatID: 12345}
			},
			expectError: true,
			errorMsg:    "형식이 올바르지 않습니다",
		},
		{
			name: "Telegram: Disabled Skips Validation",
			modifier: func(c *AppConfig) {
				c.Notifiers.Telegram = TelegramConfig{Enabled: false, BotToken: "garbage"}
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := baseConfig()
			tt.modifier(cfg)

			err := cfg.validate()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCacheConfig_TTLDurations(t *testing.T) {
	t.Parallel()

	cfg := CacheConfig{ProductTTL: "5m", ContentTTL: "1h"}

	assert.Equal(t, 5*time.Minute, cfg.ProductTTLDuration())
	assert.Equal(t, time.Hour, cfg.ContentTTLDuration())
}

func TestAppConfig_VerifyRecommendations(t *testing.T) {
	t.Parallel()

	cfg := &AppConfig{
		Storefront: StorefrontConfig{WS: WSConfig{ListenPort: 443}},
	}

	warnings := cfg.VerifyRecommendations()

	require.Len(t, warnings, 4)
	assert.Contains(t, warnings[0], "시스템 예약 포트")
	assert.Contains(t, warnings[1], "content.write_token")
	assert.Contains(t, warnings[2], "ai.api_key")
	assert.Contains(t, warnings[3], "cache.purge_secret")
}

// =============================================================================
// Integration Tests: File Loading (LoadWithFile)
// =============================================================================

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfigJSON = `{
  "commerce": {
    "store_domain": "demo-store.myshopify.com",
    "access_token": "shpat_test_token"
  },
  "content": {
    "project_id": "abc123de",
    "dataset": "production"
  }
}`

func TestLoadWithFile(t *testing.T) {
	t.Run("minimal config file applies defaults", func(t *testing.T) {
		path := writeConfigFile(t, minimalConfigJSON)

		cfg, err := LoadWithFile(path)

		require.NoError(t, err)
		assert.Equal(t, "demo-store.myshopify.com", cfg.Commerce.StoreDomain)
		assert.Equal(t, DefaultCommerceAPIVersion, cfg.Commerce.APIVersion)
		assert.Equal(t, DefaultCommercePageSize, cfg.Commerce.PageSize)
		assert.Equal(t, DefaultContentAPIVersion, cfg.Content.APIVersion)
		assert.Equal(t, DefaultMaxRetries, cfg.HTTPRetry.MaxRetries)
		assert.Equal(t, 2*time.Second, cfg.HTTPRetry.RetryDelayDuration())
		assert.Equal(t, 5*time.Minute, cfg.Cache.ProductTTLDuration())
		assert.Equal(t, time.Hour, cfg.Cache.ContentTTLDuration())
		assert.Equal(t, DefaultListenPort, cfg.Storefront.WS.ListenPort)
		assert.Equal(t, []string{"*"}, cfg.Storefront.CORS.AllowOrigins)
		assert.Equal(t, DefaultAIModel, cfg.AI.Model)
		assert.False(t, cfg.Notifiers.Telegram.Enabled)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfigFile(t, `{
		  "debug": true,
		  "commerce": {
		    "store_domain": "demo-store.myshopify.com",
		    "access_token": "shpat_test_token",
		    "page_size": 50
		  },
		  "content": {
		    "project_id": "abc123de",
		    "dataset": "production"
		  },
		  "cache": {
		    "product_ttl": "10m",
		    "revalidate_spec": "0 * * * *"
		  },
		  "ab_tests": [
		    {"name": "HeroLayout", "variants": ["control", "variant-b"]}
		  ]
		}`)

		cfg, err := LoadWithFile(path)

		require.NoError(t, err)
		assert.True(t, cfg.Debug)
		assert.Equal(t, 50, cfg.Commerce.PageSize)
		assert.Equal(t, 10*time.Minute, cfg.Cache.ProductTTLDuration())
		assert.Equal(t, "0 * * * *", cfg.Cache.RevalidateSpec)
		require.Len(t, cfg.ABTests, 1)
		assert.Equal(t, "HeroLayout", cfg.ABTests[0].Name)
	})

	t.Run("missing file yields Configuration error", func(t *testing.T) {
		_, err := LoadWithFile(filepath.Join(t.TempDir(), "no-such-file.json"))

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Configuration))
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		path := writeConfigFile(t, `{
		  "commerce": {
		    "store_domain": "demo-store.myshopify.com",
		    "access_token": "shpat_test_token",
		    "shop_domain": "typo"
		  },
		  "content": {
		    "project_id": "abc123de",
		    "dataset": "production"
		  }
		}`)

		_, err := LoadWithFile(path)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.System))
	})

	t.Run("invalid config value yields InvalidInput error", func(t *testing.T) {
		path := writeConfigFile(t, `{
		  "commerce": {
		    "store_domain": "demo-store.myshopify.com",
		    "access_token": "shpat_test_token"
		  },
		  "content": {
		    "project_id": "abc123de",
		    "dataset": "production"
		  },
		  "cache": {
		    "revalidate_spec": "not-a-cron"
		  }
		}`)

		_, err := LoadWithFile(path)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("environment variables take precedence over file", func(t *testing.T) {
		// t.Setenv는 병렬 실행과 호환되지 않으므로 이 서브테스트는 순차 실행한다.
		t.Setenv("STOREFRONT_COMMERCE__ACCESS_TOKEN", "env_token_wins")
		t.Setenv("STOREFRONT_CACHE__PRODUCT_TTL", "30s")

		path := writeConfigFile(t, minimalConfigJSON)

		cfg, err := LoadWithFile(path)

		require.NoError(t, err)
		assert.Equal(t, "env_token_wins", cfg.Commerce.AccessToken)
		assert.Equal(t, 30*time.Second, cfg.Cache.ProductTTLDuration())
	})
}
