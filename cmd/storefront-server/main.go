package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/storefront-server/internal/config"
	"github.com/darkkaiser/storefront-server/internal/pkg/fetcher"
	"github.com/darkkaiser/storefront-server/internal/pkg/version"
	"github.com/darkkaiser/storefront-server/internal/service"
	"github.com/darkkaiser/storefront-server/internal/service/api"
	"github.com/darkkaiser/storefront-server/internal/service/cache"
	"github.com/darkkaiser/storefront-server/internal/service/chat"
	"github.com/darkkaiser/storefront-server/internal/service/commerce"
	"github.com/darkkaiser/storefront-server/internal/service/content"
	"github.com/darkkaiser/storefront-server/internal/service/notification"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
	log "github.com/sirupsen/logrus"
)

const (
	banner = `
  ____  _                     __                 _
 / ___|| |_  ___   _ __  ___ / _| _ __  ___  _ __  | |_
 \___ \| __|/ _ \ | '__|/ _ \ |_ | '__|/ _ \| '_ \ | __|
  ___) | |_| (_) || |  |  __/  _|| |  | (_) | | | || |_
 |____/ \__|\___/ |_|   \___|_|  |_|   \___/|_| |_| \__|
                                       Server %s
--------------------------------------------------------------------------------
`
)

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	configFile := config.DefaultFilename
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	appConfig, err := config.LoadWithFile(configFile)
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	// 3. 로그 레벨 최종 확정
	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()

	// 아스키아트 출력(폰트:standard)
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields("main", log.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	// 권장 설정 점검 (구동은 계속하되 경고만 남긴다)
	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(warning)
	}

	// 업스트림 공용 HTTP Fetcher (재시도 정책은 환경설정을 따른다)
	httpFetcher := fetcher.NewFromConfig(fetcher.Config{
		MaxRetries:    appConfig.HTTPRetry.MaxRetries,
		MinRetryDelay: appConfig.HTTPRetry.RetryDelayDuration(),
	})

	// 업스트림 클라이언트 생성 (프로세스당 한 번 생성되어 재사용된다)
	commerceClient := commerce.NewClient(&appConfig.Commerce, httpFetcher)
	contentClient := content.NewClient(&appConfig.Content, httpFetcher)

	// 챗 완성 스트림은 공용 Fetcher의 30초 타임아웃보다 오래 이어질 수 있으므로
	// 클라이언트 타임아웃이 없는 스트리밍 전용 Fetcher를 사용한다.
	assistant := chat.NewAssistant(&appConfig.AI, chat.NewStreamFetcher(fetcher.Config{
		MaxRetries:    appConfig.HTTPRetry.MaxRetries,
		MinRetryDelay: appConfig.HTTPRetry.RetryDelayDuration(),
	}))

	store := cache.NewStore()

	// 서비스를 생성하고 초기화한다.
	notificationService, err := notification.NewService(&appConfig.Notifiers)
	if err != nil {
		applog.WithComponentAndFields("main", log.Fields{
			"error": err,
		}).Error("알림 서비스 초기화 실패")

		log.Fatal("알림 서비스 초기화 실패로 프로그램을 종료합니다")
	}

	// 핵심 캐시 키는 백그라운드 재검증 대상으로 등록하여 항상 따뜻하게 유지한다.
	revalidator := cache.NewRevalidator(&appConfig.Cache, store, notificationService)
	revalidator.Register(cache.KeyProductList, appConfig.Cache.ProductTTLDuration(), []string{cache.TagProducts}, func(ctx context.Context) (interface{}, error) {
		return commerceClient.ListProducts(ctx)
	})
	revalidator.Register(cache.KeyHomepage, appConfig.Cache.ContentTTLDuration(), []string{cache.TagHomepage}, func(ctx context.Context) (interface{}, error) {
		homepage := contentClient.GetHomepage(ctx)
		if homepage == nil {
			return nil, fmt.Errorf("홈페이지 콘텐츠를 가져오지 못했습니다")
		}
		return homepage, nil
	})

	apiService := api.NewService(appConfig, commerceClient, commerceClient, contentClient, assistant, store, notificationService, buildInfo)

	// Set up cancellation context and waitgroup
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	// 서비스를 시작한다.
	services := []service.Service{notificationService, revalidator, apiService}
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", log.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()

			log.Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
		}
	}

	// Handle sigterm and await termC signal
	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC // Blocks here until interrupted

	// Handle shutdown
	applog.WithComponent("main").Info("Shutdown signal received")
	cancel()             // Signal cancellation to context.Context
	serviceStopWG.Wait() // Block here until are workers are done
}
