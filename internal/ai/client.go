package ai

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message — одна реплика диалога с моделью.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client отправляет полную историю диалога и возвращает текст ответа
// ассистента вместе с сырым телом ответа API.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, []byte, error)
}

const defaultMaxTokens = 4096

func resolveMaxTokens(value int) int {
	if value > 0 {
		return value
	}

	return defaultMaxTokens
}
