// Package chat OpenAI 호환 챗 완성 API를 스트리밍 모드로 호출하는
// AI 쇼핑 어시스턴트 클라이언트를 제공합니다.
//
// 카탈로그 시스템 프롬프트는 캐시된 상품 목록(분 단위 TTL 클래스)으로부터
// 생성되어 상담의 근거 데이터로 주입됩니다.
package chat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/darkkaiser/storefront-server/internal/config"
	apperrors "github.com/darkkaiser/storefront-server/internal/pkg/errors"
	"github.com/darkkaiser/storefront-server/internal/pkg/fetcher"
	"github.com/darkkaiser/storefront-server/internal/service/commerce"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
)

// component 로그의 component 필드에 기록되는 식별자입니다.
const component = "chat"

// Message 대화 이력의 한 메시지입니다.
type Message struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

// TokenFunc 스트리밍 중 토큰 하나가 도착할 때마다 호출됩니다.
// 에러를 반환하면 스트림 소비가 중단됩니다(클라이언트 연결 종료 등).
type TokenFunc func(token string) error

// Assistant OpenAI 호환 챗 완성 API 클라이언트입니다.
type Assistant struct {
	fetcher fetcher.Fetcher
	cfg     config.AIConfig
}

// NewAssistant 새로운 어시스턴트 클라이언트를 생성합니다.
// API 키 부재는 생성 시점이 아닌 첫 사용 시점에 Configuration 에러로 보고됩니다.
func NewAssistant(cfg *config.AIConfig, f fetcher.Fetcher) *Assistant {
	return &Assistant{
		fetcher: f,
		cfg:     *cfg,
	}
}

// NewStreamFetcher 완성 스트림 소비에 사용할 전용 Fetcher를 생성합니다.
//
// http.Client의 Timeout은 응답 본문 읽기까지 포함하므로, 일반 업스트림용
// 타임아웃을 그대로 쓰면 그보다 오래 이어지는 SSE 스트림이 중간에 끊어집니다.
// 스트림의 수명은 클라이언트 타임아웃이 아닌 요청 컨텍스트 취소에만 맡기며,
// 본문 크기 제한도 스트림에는 적용하지 않습니다.
func NewStreamFetcher(cfg fetcher.Config) fetcher.Fetcher {
	noTimeout := time.Duration(0)
	cfg.Timeout = &noTimeout
	cfg.MaxBytes = fetcher.NoLimit
	return fetcher.NewFromConfig(cfg)
}

// StreamCompletion 대화 이력으로 완성을 요청하고 도착하는 토큰을 onToken으로 전달합니다.
//
// systemPrompt가 비어있지 않으면 이력 맨 앞에 system 메시지로 삽입됩니다.
// 상위 요청이 종료되어 onToken이 에러를 반환하면 스트림 소비를 중단합니다.
// 이때 업스트림 요청의 취소는 ctx 전파에 맡기며 별도로 보장하지 않습니다.
func (a *Assistant) StreamCompletion(ctx context.Context, messages []Message, systemPrompt string, onToken TokenFunc) error {
	if a.cfg.APIKey == "" {
		return apperrors.New(apperrors.Configuration,
			"AI API 키가 설정되지 않아 챗 어시스턴트를 사용할 수 없습니다. 'ai.api_key' 설정을 확인하세요")
	}

	payload := make([]Message, 0, len(messages)+1)
	if systemPrompt != "" {
		payload = append(payload, Message{Role: "system", Content: systemPrompt})
	}
	payload = append(payload, messages...)

	body, err := json.Marshal(map[string]interface{}{
		"model":    a.cfg.Model,
		"stream":   true,
		"messages": payload,
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "챗 완성 요청 본문 생성에 실패했습니다")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "챗 완성 요청 생성에 실패했습니다")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := a.fetcher.Do(req)
	if err != nil {
		if apperrors.Is(err, apperrors.Unauthorized) {
			return apperrors.Wrap(err, apperrors.Unauthorized, "AI API가 자격 증명을 거부했습니다. 'ai.api_key' 설정을 확인하세요")
		}
		return apperrors.Wrap(err, apperrors.Unavailable, "AI API 호출에 실패했습니다")
	}
	defer resp.Body.Close()

	return consumeSSE(resp.Body, onToken)
}

// consumeSSE 이벤트 스트림에서 델타 토큰을 추출하여 onToken으로 전달합니다.
func consumeSSE(body io.Reader, onToken TokenFunc) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 512*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			return nil
		}

		token := extractDeltaContent(data)
		if token == "" {
			continue
		}

		if err := onToken(token); err != nil {
			applog.WithComponent(component).WithError(err).Debug("토큰 전달 중단 (클라이언트 연결 종료)")
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "AI 응답 스트림 읽기에 실패했습니다")
	}

	return nil
}

func extractDeltaContent(data string) string {
	var chunk struct {
		Choices []struct {
			Delta struct {
				Content string `json:"content"`
			} `json:"delta"`
		} `json:"choices"`
	}
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return ""
	}
	if len(chunk.Choices) == 0 {
		return ""
	}
	return chunk.Choices[0].Delta.Content
}

// CatalogPrompt 캐시된 상품 목록으로 카탈로그 시스템 프롬프트를 생성합니다.
func CatalogPrompt(products []commerce.Product) string {
	var b strings.Builder
	b.WriteString("You are a helpful shopping assistant for this store. ")
	b.WriteString("Answer only with information from the catalog below. ")
	b.WriteString("If asked about anything else, politely redirect to the products.\n\nCatalog:\n")

	for _, p := range products {
		price := p.PriceRange.MinVariantPrice
		fmt.Fprintf(&b, "- %s (handle: %s, from %s %s)", p.Title, p.Handle, price.Amount, price.CurrencyCode)
		if p.Description != "" {
			fmt.Fprintf(&b, ": %s", p.Description)
		}
		b.WriteString("\n")
	}

	if len(products) == 0 {
		b.WriteString("(catalog temporarily unavailable)\n")
	}

	return b.String()
}
