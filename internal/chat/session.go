package chat

import (
	"time"

	"github.com/google/uuid"

	"example.com/travomate/backend/internal/ai"
	"example.com/travomate/backend/internal/budget"
)

// Session — состояние одного диалога: упорядоченная история реплик,
// последняя вычисленная разбивка бюджета и флаг ожидания ручного ввода.
// Сессия не предполагает конкурентных изменений: один диалог — один клиент.
type Session struct {
	ID                  uuid.UUID
	Messages            []ai.Message
	LastBreakdown       *budget.Breakdown
	AwaitingManualEntry bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func newSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		Messages:  []ai.Message{{Role: ai.RoleSystem, Content: SystemPrompt}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset очищает историю до единственной системной реплики и сбрасывает
// вычисленную разбивку.
func (s *Session) Reset() {
	s.Messages = []ai.Message{{Role: ai.RoleSystem, Content: SystemPrompt}}
	s.LastBreakdown = nil
	s.AwaitingManualEntry = false
	s.UpdatedAt = time.Now().UTC()
}

// AppendUser добавляет реплику пользователя в историю.
func (s *Session) AppendUser(content string) {
	s.Messages = append(s.Messages, ai.Message{Role: ai.RoleUser, Content: content})
	s.UpdatedAt = time.Now().UTC()
}

// AppendAssistant добавляет реплику ассистента в историю.
func (s *Session) AppendAssistant(content string) {
	s.Messages = append(s.Messages, ai.Message{Role: ai.RoleAssistant, Content: content})
	s.UpdatedAt = time.Now().UTC()
}

// History возвращает копию полной истории, включая системную реплику.
func (s *Session) History() []ai.Message {
	history := make([]ai.Message, len(s.Messages))
	copy(history, s.Messages)
	return history
}

// Transcript возвращает историю без системной реплики: ее клиенту не показывают.
func (s *Session) Transcript() []ai.Message {
	transcript := make([]ai.Message, 0, len(s.Messages))
	for _, message := range s.Messages {
		if message.Role == ai.RoleSystem {
			continue
		}
		transcript = append(transcript, message)
	}
	return transcript
}
