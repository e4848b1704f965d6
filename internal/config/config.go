// Package config 애플리케이션 설정의 로드와 검증을 담당합니다.
//
// 설정은 다음 우선순위로 병합됩니다 (뒤로 갈수록 높은 우선순위):
//
//	기본값(confmap) → JSON 설정 파일 → 환경 변수(STOREFRONT_)
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "storefront-server"

	// DefaultFilename 애플리케이션 초기화 시 참조하는 기본 설정 파일명입니다.
	// 실행 인자를 통해 명시적인 경로가 제공되지 않을 경우, 시스템은 이 파일을 탐색하여 구성을 로드합니다.
	DefaultFilename = AppName + ".json"

	// ------------------------------------------------------------------------------------------------
	// 기본값
	// ------------------------------------------------------------------------------------------------

	// DefaultMaxRetries HTTP 요청 실패 시 최대 재시도 횟수 기본값
	DefaultMaxRetries = 3

	// DefaultRetryDelay 재시도 사이의 대기 시간 기본값
	DefaultRetryDelay = "2s"

	// DefaultCommerceAPIVersion 커머스 Storefront API 버전 기본값
	DefaultCommerceAPIVersion = "2024-10"

	// DefaultCommercePageSize 상품 목록 조회 페이지 크기 기본값
	DefaultCommercePageSize = 20

	// DefaultContentAPIVersion 콘텐츠 질의 API 버전 기본값
	DefaultContentAPIVersion = "2024-01-01"

	// DefaultProductTTL 상품 데이터 캐시의 TTL 기본값 (분 단위 클래스)
	DefaultProductTTL = "5m"

	// DefaultContentTTL 콘텐츠 데이터 캐시의 TTL 기본값 (시간 단위 클래스)
	DefaultContentTTL = "1h"

	// DefaultRevalidateSpec 캐시 재검증 스케줄 기본값 (5분 주기)
	DefaultRevalidateSpec = "*/5 * * * *"

	// DefaultFailureAlertThreshold 캐시 재검증 연속 실패 알림 임계값 기본값
	DefaultFailureAlertThreshold = 3

	// DefaultAIModel AI 챗 어시스턴트의 모델 기본값
	DefaultAIModel = "gpt-4o-mini"

	// DefaultAIEndpoint AI 챗 완성 API 엔드포인트 기본값
	DefaultAIEndpoint = "https://api.openai.com/v1/chat/completions"

	// DefaultListenPort 웹 서버의 기본 수신 포트
	DefaultListenPort = 8080
)

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug      bool             `json:"debug"`
	HTTPRetry  HTTPRetryConfig  `json:"http_retry"`
	Commerce   CommerceConfig   `json:"commerce"`
	Content    ContentConfig    `json:"content"`
	AI         AIConfig         `json:"ai"`
	Cache      CacheConfig      `json:"cache"`
	ABTests    []ABTestConfig   `json:"ab_tests"`
	Storefront StorefrontConfig `json:"storefront"`
	Notifiers  NotifierConfig   `json:"notifiers"`
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate() error {
	if err := c.HTTPRetry.validate(); err != nil {
		return err
	}
	if err := c.Commerce.validate(); err != nil {
		return err
	}
	if err := c.Content.validate(); err != nil {
		return err
	}
	if err := c.Cache.validate(); err != nil {
		return err
	}
	if err := c.validateABTests(); err != nil {
		return err
	}
	if err := c.Storefront.validate(); err != nil {
		return err
	}
	if err := c.Notifiers.validate(); err != nil {
		return err
	}
	return nil
}

func (c *AppConfig) validateABTests() error {
	seen := make(map[string]struct{}, len(c.ABTests))

	for _, test := range c.ABTests {
		if err := validateStruct(test, fmt.Sprintf("ABTest['%s']", test.Name)); err != nil {
			return err
		}

		if _, exists := seen[test.Name]; exists {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("중복된 A/B 테스트 이름('%s')이 존재합니다", test.Name))
		}
		seen[test.Name] = struct{}{}
	}

	return nil
}

// VerifyRecommendations 서비스 운영의 안정성과 보안을 위해 권장되는 설정 준수 여부를 진단합니다.
// 강제적인 에러를 발생시키지는 않으나, 잠재적 위험 요소에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	warnings = append(warnings, c.Storefront.WS.VerifyRecommendations()...)

	if c.Content.WriteToken == "" {
		warnings = append(warnings, "콘텐츠 쓰기 토큰(content.write_token)이 설정되지 않았습니다. 후기(Testimonial) 제출 기능이 비활성화됩니다")
	}
	if c.AI.APIKey == "" {
		warnings = append(warnings, "AI API 키(ai.api_key)가 설정되지 않았습니다. 챗 어시스턴트 기능이 비활성화됩니다")
	}
	if c.Cache.PurgeSecret == "" {
		warnings = append(warnings, "캐시 퍼지 시크릿(cache.purge_secret)이 설정되지 않았습니다. /api/revalidate 엔드포인트가 비활성화됩니다")
	}

	return warnings
}

// HTTPRetryConfig HTTP 요청 실패 시 재시도 횟수와 대기 시간을 정의하는 설정 구조체
type HTTPRetryConfig struct {
	MaxRetries int    `json:"max_retries" validate:"min=0"`
	RetryDelay string `json:"retry_delay"`
}

func (c *HTTPRetryConfig) validate() error {
	if c.MaxRetries < 0 {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("HTTP 최대 재시도 횟수(max_retries)는 0 이상이어야 합니다: '%d'", c.MaxRetries))
	}
	if _, err := time.ParseDuration(c.RetryDelay); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("HTTP 재시도 대기 시간(retry_delay) 설정이 올바르지 않습니다: '%s' (예: 1s, 500ms)", c.RetryDelay))
	}
	return nil
}

// RetryDelayDuration 재시도 대기 시간을 time.Duration으로 반환합니다.
// validate()가 선행되었다고 가정하며, 파싱 실패 시 0을 반환합니다.
func (c *HTTPRetryConfig) RetryDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetryDelay)
	return d
}

// CommerceConfig 헤드리스 커머스 백엔드(GraphQL Storefront API) 연동 설정 구조체
type CommerceConfig struct {
	// StoreDomain 스토어 도메인 (예: my-store.myshopify.com)
	StoreDomain string `json:"store_domain" validate:"required"`
	// AccessToken Storefront API 공개 접근 토큰 (Admin API 토큰이 아님)
	AccessToken string `json:"access_token" validate:"required"`
	// APIVersion Storefront API 버전 (예: 2024-10)
	APIVersion string `json:"api_version" validate:"required"`
	// PageSize 상품 목록 조회 페이지 크기
	PageSize int `json:"page_size" validate:"min=1,max=250"`
}

func (c *CommerceConfig) validate() error {
	if strings.TrimSpace(c.StoreDomain) == "" {
		return apperrors.New(apperrors.Configuration, "커머스 스토어 도메인(commerce.store_domain)이 설정되지 않았습니다")
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		return apperrors.New(apperrors.Configuration, "커머스 접근 토큰(commerce.access_token)이 설정되지 않았습니다")
	}
	if strings.TrimSpace(c.APIVersion) == "" {
		return apperrors.New(apperrors.Configuration, "커머스 API 버전(commerce.api_version)이 설정되지 않았습니다")
	}
	if c.PageSize < 1 || c.PageSize > 250 {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("상품 목록 페이지 크기(commerce.page_size)는 1에서 250 사이의 값이어야 합니다: '%d'", c.PageSize))
	}
	return nil
}

// ContentConfig 헤드리스 콘텐츠 백엔드(문서 질의 API + 이미지 CDN) 연동 설정 구조체
type ContentConfig struct {
	// ProjectID 콘텐츠 프로젝트 식별자
	ProjectID string `json:"project_id" validate:"required"`
	// Dataset 데이터셋 이름 (예: production)
	Dataset string `json:"dataset" validate:"required"`
	// APIVersion 질의 API 버전 (예: 2024-01-01)
	APIVersion string `json:"api_version" validate:"required"`
	// WriteToken 문서 생성(뮤테이션)에 사용되는 쓰기 토큰 (선택, 없으면 쓰기 기능 비활성화)
	WriteToken string `json:"write_token"`
}

func (c *ContentConfig) validate() error {
	if strings.TrimSpace(c.ProjectID) == "" {
		return apperrors.New(apperrors.Configuration, "콘텐츠 프로젝트 ID(content.project_id)가 설정되지 않았습니다")
	}
	if strings.TrimSpace(c.Dataset) == "" {
		return apperrors.New(apperrors.Configuration, "콘텐츠 데이터셋(content.dataset)이 설정되지 않았습니다")
	}
	if strings.TrimSpace(c.APIVersion) == "" {
		return apperrors.New(apperrors.Configuration, "콘텐츠 API 버전(content.api_version)이 설정되지 않았습니다")
	}
	return nil
}

// AIConfig AI 챗 어시스턴트 연동 설정 구조체
//
// APIKey는 로드 시점에 검증하지 않습니다. 키가 없는 배포에서도 서버는 기동되어야 하며,
// 챗 기능의 첫 사용 시점에 Configuration 에러로 보고됩니다.
type AIConfig struct {
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
	Endpoint string `json:"endpoint"`
}

// CacheConfig 캐시 TTL 클래스 및 재검증 스케줄 설정 구조체
type CacheConfig struct {
	// ProductTTL 상품 데이터 캐시의 TTL (분 단위 클래스, 예: 5m)
	ProductTTL string `json:"product_ttl"`
	// ContentTTL 콘텐츠 데이터 캐시의 TTL (시간 단위 클래스, 예: 1h)
	ContentTTL string `json:"content_ttl"`
	// RevalidateSpec 백그라운드 재검증 크론 스케줄 (표준 5필드)
	RevalidateSpec string `json:"revalidate_spec"`
	// PurgeSecret /api/revalidate 엔드포인트 보호용 공유 시크릿 (없으면 엔드포인트 비활성화)
	PurgeSecret string `json:"purge_secret"`
	// FailureAlertThreshold 재검증 연속 실패 시 운영 알림을 발송할 임계값
	FailureAlertThreshold int `json:"failure_alert_threshold"`
}

func (c *CacheConfig) validate() error {
	if _, err := time.ParseDuration(c.ProductTTL); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("상품 캐시 TTL(cache.product_ttl) 설정이 올바르지 않습니다: '%s'", c.ProductTTL))
	}
	if _, err := time.ParseDuration(c.ContentTTL); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("콘텐츠 캐시 TTL(cache.content_ttl) 설정이 올바르지 않습니다: '%s'", c.ContentTTL))
	}
	if _, err := cron.ParseStandard(c.RevalidateSpec); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("캐시 재검증 스케줄(cache.revalidate_spec) 설정이 올바르지 않습니다: '%s'", c.RevalidateSpec))
	}
	if c.FailureAlertThreshold < 1 {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("재검증 실패 알림 임계값(cache.failure_alert_threshold)은 1 이상이어야 합니다: '%d'", c.FailureAlertThreshold))
	}
	return nil
}

// ProductTTLDuration 상품 캐시 TTL을 time.Duration으로 반환합니다.
func (c *CacheConfig) ProductTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.ProductTTL)
	return d
}

// ContentTTLDuration 콘텐츠 캐시 TTL을 time.Duration으로 반환합니다.
func (c *CacheConfig) ContentTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.ContentTTL)
	return d
}

// ABTestConfig 엣지 변형(Variant) 할당 대상 A/B 테스트를 정의하는 구조체
type ABTestConfig struct {
	// Name 테스트 이름 (쿠키/헤더 이름 생성에 사용, 예: HeroLayout)
	Name string `json:"name" validate:"required"`
	// Variants 할당 가능한 변형 목록 (최소 2개)
	Variants []string `json:"variants" validate:"min=2,dive,required"`
}

// StorefrontConfig 웹 서버 및 CORS 설정을 묶는 구조체
type StorefrontConfig struct {
	WS   WSConfig   `json:"ws"`
	CORS CORSConfig `json:"cors"`
}

func (c *StorefrontConfig) validate() error {
	if err := c.WS.validate(); err != nil {
		return err
	}
	return c.CORS.validate()
}

// WSConfig 웹 서버의 포트 및 TLS(HTTPS) 보안 설정을 정의하는 구조체
type WSConfig struct {
	TLSServer   bool   `json:"tls_server"`
	TLSCertFile string `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	ListenPort  int    `json:"listen_port" validate:"min=1,max=65535"`
}

func (c *WSConfig) validate() error {
	return validateStruct(*c, "웹 서버")
}

func (c *WSConfig) VerifyRecommendations() []string {
	var warnings []string

	// 시스템 예약 포트(1024 미만) 사용 경고
	if c.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.ListenPort))
	}

	return warnings
}

// CORSConfig 웹 브라우저의 교차 출처 리소스 공유(CORS) 정책을 설정하는 구조체
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"dive,cors_origin"`
}

func (c *CORSConfig) validate() error {
	if len(c.AllowOrigins) == 0 {
		return apperrors.New(apperrors.InvalidInput, "CORS 허용 도메인(allow_origins) 목록이 비어있습니다")
	}

	for _, origin := range c.AllowOrigins {
		if origin == "*" {
			if len(c.AllowOrigins) > 1 {
				return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
			}
			// 와일드카드만 있는 경우는 유효함 (validator skip)
			return nil
		}
	}

	return validateStruct(*c, "CORS")
}

// NotifierConfig 운영 알림 채널을 정의하는 설정 구조체
type NotifierConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

func (c *NotifierConfig) validate() error {
	return c.Telegram.validate()
}

// TelegramConfig 텔레그램 봇 토큰 및 채팅 ID 정보를 담는 설정 구조체
type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token" validate:"required_if=Enabled true,omitempty,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_if=Enabled true"`
}

func (c *TelegramConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	return validateStruct(*c, "텔레그램 알림 채널")
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	err := k.Load(confmap.Provider(map[string]interface{}{
		"http_retry.max_retries":        DefaultMaxRetries,
		"http_retry.retry_delay":        DefaultRetryDelay,
		"commerce.api_version":          DefaultCommerceAPIVersion,
		"commerce.page_size":            DefaultCommercePageSize,
		"content.api_version":           DefaultContentAPIVersion,
		"ai.model":                      DefaultAIModel,
		"ai.endpoint":                   DefaultAIEndpoint,
		"cache.product_ttl":             DefaultProductTTL,
		"cache.content_ttl":             DefaultContentTTL,
		"cache.revalidate_spec":         DefaultRevalidateSpec,
		"cache.failure_alert_threshold": DefaultFailureAlertThreshold,
		"storefront.ws.listen_port":     DefaultListenPort,
		"storefront.cors.allow_origins": []string{"*"},
	}, "."), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (기본값 덮어쓰기)
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.Configuration, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 로드 (최우선 순위, JSON 설정 덮어쓰기)
	// 접두사: STOREFRONT_
	// 구분자: 이중 언더스코어(__)를 점(.)으로 변환 (계층 구조 표현)
	// 예: STOREFRONT_COMMERCE__ACCESS_TOKEN -> commerce.access_token
	if err := k.Load(env.Provider("STOREFRONT_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "STOREFRONT_")
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링 (Strict Validation 적용)
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true, // 파일에 존재하지만 구조체에 없는 필드가 있을 경우 에러를 발생시킴
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사 수행 (정합성 체크)
	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}
