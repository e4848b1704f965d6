package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/darkkaiser/storefront-server/internal/config"
	"github.com/darkkaiser/storefront-server/internal/service/contract"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
	"github.com/robfig/cron/v3"
)

// revalidatorComponent 로그의 component 필드에 기록되는 식별자입니다.
const revalidatorComponent = "cache.revalidator"

// revalidateTimeout 등록 항목 하나의 갱신에 허용되는 최대 시간입니다.
const revalidateTimeout = 30 * time.Second

// registration 재검증 대상으로 등록된 캐시 항목입니다.
type registration struct {
	key    string
	ttl    time.Duration
	tags   []string
	loader Loader
}

// Revalidator 핫 태그의 캐시 항목을 Cron 스케줄에 맞춰 미리 갱신하여
// 만료(stale) 구간을 짧게 유지하는 서비스입니다.
//
// 갱신이 연속으로 실패하면 설정된 임계값에서 운영 알림을 한 번 발송하고,
// 다음 성공 시 복구 알림을 발송합니다.
type Revalidator struct {
	cacheConfig *config.CacheConfig

	store              *Store
	notificationSender contract.NotificationSender

	cron *cron.Cron

	registrations []registration

	failureStreak int
	alerted       bool

	running   bool
	runningMu sync.Mutex
}

// NewRevalidator 새로운 Revalidator 서비스 인스턴스를 생성합니다.
func NewRevalidator(cacheConfig *config.CacheConfig, store *Store, notificationSender contract.NotificationSender) *Revalidator {
	if store == nil {
		panic("Store는 필수입니다")
	}
	if notificationSender == nil {
		panic("NotificationSender는 필수입니다")
	}

	return &Revalidator{
		cacheConfig: cacheConfig,

		store:              store,
		notificationSender: notificationSender,
	}
}

// Register 재검증 대상 캐시 항목을 등록합니다. Start 호출 전에 등록해야 합니다.
func (r *Revalidator) Register(key string, ttl time.Duration, tags []string, loader Loader) {
	r.runningMu.Lock()
	defer r.runningMu.Unlock()

	r.registrations = append(r.registrations, registration{
		key:    key,
		ttl:    ttl,
		tags:   tags,
		loader: loader,
	})
}

// Start 재검증 서비스를 시작하고 Cron 스케줄을 등록합니다.
func (r *Revalidator) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	r.runningMu.Lock()
	defer r.runningMu.Unlock()

	applog.WithComponent(revalidatorComponent).Info("서비스 시작 진입: Revalidator 서비스 초기화 프로세스를 시작합니다")

	if r.running {
		serviceStopWG.Done()
		applog.WithComponent(revalidatorComponent).Warn("Revalidator 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// Recover: 갱신 도중 Panic이 발생해도 다음 스케줄에 영향을 주지 않음
	// SkipIfStillRunning: 이전 갱신이 끝나지 않았으면 다음 실행을 건너뜀
	r.cron = cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	if _, err := r.cron.AddFunc(r.cacheConfig.RevalidateSpec, r.revalidateAll); err != nil {
		serviceStopWG.Done()
		return err
	}

	r.cron.Start()
	r.running = true

	applog.WithComponentAndFields(revalidatorComponent, applog.Fields{
		"schedule":      r.cacheConfig.RevalidateSpec,
		"registrations": len(r.registrations),
	}).Info("서비스 시작 완료: Revalidator 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		r.Stop()
	}()

	return nil
}

// Stop 실행 중인 재검증 서비스를 안전하게 중지합니다.
func (r *Revalidator) Stop() {
	r.runningMu.Lock()
	defer r.runningMu.Unlock()

	if !r.running {
		return
	}

	applog.WithComponent(revalidatorComponent).Info("종료 절차 진입: Revalidator 서비스 중지 시그널을 수신했습니다")

	if r.cron != nil {
		ctx := r.cron.Stop()
		<-ctx.Done()
	}

	r.cron = nil
	r.running = false

	applog.WithComponent(revalidatorComponent).Info("Revalidator 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// revalidateAll 등록된 모든 캐시 항목의 로더를 실행하고 결과를 저장소에 반영합니다.
func (r *Revalidator) revalidateAll() {
	r.runningMu.Lock()
	registrations := r.registrations
	r.runningMu.Unlock()

	failed := 0
	for _, reg := range registrations {
		if err := r.revalidateOne(reg); err != nil {
			failed++

			applog.WithComponentAndFields(revalidatorComponent, applog.Fields{
				"key": reg.key,
			}).WithError(err).Error("캐시 항목 재검증 실패")
		}
	}

	r.trackFailureStreak(failed, len(registrations))
}

func (r *Revalidator) revalidateOne(reg registration) error {
	ctx, cancel := context.WithTimeout(context.Background(), revalidateTimeout)
	defer cancel()

	value, err := reg.loader(ctx)
	if err != nil {
		return err
	}

	r.store.Set(reg.key, value, reg.ttl, reg.tags)
	return nil
}

// trackFailureStreak 연속 실패 횟수를 추적하여 임계값 도달 시 운영 알림을 발송합니다.
// 알림은 임계값 도달 시점에 한 번만 발송되며, 복구 시 복구 알림을 발송합니다.
func (r *Revalidator) trackFailureStreak(failed, total int) {
	r.runningMu.Lock()
	defer r.runningMu.Unlock()

	if failed == 0 {
		if r.alerted {
			_ = r.notificationSender.NotifyDefault(
				fmt.Sprintf("캐시 재검증이 복구되었습니다 (등록 항목 %d개 모두 성공)", total))
		}
		r.failureStreak = 0
		r.alerted = false
		return
	}

	r.failureStreak++

	if !r.alerted && r.failureStreak >= r.cacheConfig.FailureAlertThreshold {
		r.alerted = true
		_ = r.notificationSender.NotifyDefaultWithError(
			fmt.Sprintf("캐시 재검증이 %d회 연속 실패했습니다 (마지막 실행: %d/%d개 항목 실패). 상위 백엔드 상태를 확인하세요",
				r.failureStreak, failed, total))
	}
}
