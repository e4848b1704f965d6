package request

import "github.com/darkkaiser/storefront-server/internal/service/chat"

// ChatRequest AI 챗 어시스턴트 대화 요청
type ChatRequest struct {
	// 대화 이력 (오래된 메시지부터 순서대로)
	Messages []chat.Message `json:"messages" validate:"required,min=1,max=50,dive" korean:"메시지 목록"`
}
