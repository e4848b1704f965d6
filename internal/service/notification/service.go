package notification

import (
	"context"
	"sync"

	"github.com/darkkaiser/storefront-server/internal/config"
	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/darkkaiser/storefront-server/internal/service/contract"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
)

// component 로그의 component 필드에 기록되는 식별자입니다.
const component = "notification.service"

// queueSize 발송 대기 큐의 크기입니다. 가득 차면 발송 요청이 거부됩니다.
const queueSize = 100

var (
	// ErrServiceStopped 서비스가 실행 중이 아닐 때 발송을 요청하면 반환되는 에러입니다.
	ErrServiceStopped = apperrors.New(apperrors.Unavailable, "알림 서비스가 실행 중이 아닙니다")

	// ErrQueueFull 발송 대기 큐가 가득 찼을 때 반환되는 에러입니다.
	ErrQueueFull = apperrors.New(apperrors.Unavailable, "알림 발송 큐가 가득 찼습니다")
)

// notifyRequest 발송 대기 큐에 쌓이는 요청입니다.
type notifyRequest struct {
	message       string
	errorOccurred bool
}

// Service 알림 발송 요청을 큐에 등록하고 백그라운드 워커가 순서대로 전송하는 서비스입니다.
//
// NotifyDefault 계열은 큐 등록 성공 여부만 반환하며, 실제 전송 결과는
// 워커가 로깅으로만 보고합니다. 호출 경로가 전송 지연에 블로킹되지 않도록 하기
// 위함입니다.
type Service struct {
	notifier notifier

	queue chan notifyRequest

	running   bool
	runningMu sync.Mutex
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ contract.NotificationSender = (*Service)(nil)

// NewService 새로운 알림 서비스 인스턴스를 생성합니다.
// 텔레그램 채널이 비활성화된 배포에서는 로그 전용 notifier로 대체됩니다.
func NewService(cfg *config.NotifierConfig) (*Service, error) {
	var n notifier = &logNotifier{}

	if cfg.Telegram.Enabled {
		telegram, err := newTelegramNotifier(cfg.Telegram)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.Configuration, "텔레그램 알림 채널 초기화에 실패했습니다")
		}
		n = telegram

		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": cfg.Telegram.ChatID,
		}).Info("텔레그램 알림 채널 활성화")
	}

	return &Service{
		notifier: n,
		queue:    make(chan notifyRequest, queueSize),
	}, nil
}

// Start 알림 서비스를 시작하고 발송 워커를 기동합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Notification 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Notification 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	s.running = true

	go s.runWorker(serviceStopCtx, serviceStopWG)

	applog.WithComponent(component).Info("서비스 시작 완료: Notification 서비스가 정상적으로 초기화되었습니다")

	return nil
}

// runWorker 큐의 발송 요청을 순서대로 처리하고, 종료 시그널 수신 시 잔여 큐를 비운 뒤 종료합니다.
func (s *Service) runWorker(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	for {
		select {
		case req := <-s.queue:
			s.deliver(req)

		case <-serviceStopCtx.Done():
			applog.WithComponent(component).Info("종료 절차 진입: Notification 서비스 중지 시그널을 수신했습니다")

			s.runningMu.Lock()
			s.running = false
			s.runningMu.Unlock()

			// 잔여 큐 비우기
			for {
				select {
				case req := <-s.queue:
					s.deliver(req)
				default:
					applog.WithComponent(component).Info("Notification 서비스 종료 완료: 모든 리소스가 정리되었습니다")
					return
				}
			}
		}
	}
}

func (s *Service) deliver(req notifyRequest) {
	if err := s.notifier.Send(req.message, req.errorOccurred); err != nil {
		applog.WithComponent(component).WithError(err).Error("알림 전송 실패")
	}
}

// NotifyDefault 기본 채널로 알림 메시지 발송을 요청합니다.
func (s *Service) NotifyDefault(message string) error {
	return s.enqueue(notifyRequest{message: message})
}

// NotifyDefaultWithError 기본 채널로 오류 성격의 알림 메시지 발송을 요청합니다.
func (s *Service) NotifyDefaultWithError(message string) error {
	return s.enqueue(notifyRequest{message: message, errorOccurred: true})
}

func (s *Service) enqueue(req notifyRequest) error {
	s.runningMu.Lock()
	running := s.running
	s.runningMu.Unlock()

	if !running {
		return ErrServiceStopped
	}

	select {
	case s.queue <- req:
		return nil
	default:
		return ErrQueueFull
	}
}
