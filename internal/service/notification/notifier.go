// Package notification 운영 알림을 큐에 쌓아 백그라운드 워커로 발송하는 서비스입니다.
// 재검증 실패 경보와 서버의 치명적 오류 경로에서 사용됩니다.
package notification

import (
	"fmt"

	"github.com/darkkaiser/storefront-server/internal/config"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// notifier 알림 메시지 하나를 실제 채널로 전송합니다.
type notifier interface {
	Send(message string, errorOccurred bool) error
}

// telegramNotifier 텔레그램 봇 API로 알림을 전송합니다.
type telegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func newTelegramNotifier(cfg config.TelegramConfig) (*telegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("텔레그램 봇 초기화 실패: %w", err)
	}

	return &telegramNotifier{
		bot:    bot,
		chatID: cfg.ChatID,
	}, nil
}

func (n *telegramNotifier) Send(message string, errorOccurred bool) error {
	text := fmt.Sprintf("[%s]", config.AppName)
	if errorOccurred {
		text += " 🚨"
	}
	text += "\n" + message

	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		return fmt.Errorf("텔레그램 메시지 전송 실패: %w", err)
	}

	return nil
}

// logNotifier 텔레그램 채널이 비활성화된 배포에서 알림을 로그로만 남깁니다.
type logNotifier struct{}

func (n *logNotifier) Send(message string, errorOccurred bool) error {
	entry := applog.WithComponentAndFields(component, applog.Fields{
		"delivery": "log-only",
	})

	if errorOccurred {
		entry.Error(message)
	} else {
		entry.Info(message)
	}

	return nil
}
