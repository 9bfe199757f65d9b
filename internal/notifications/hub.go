package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	EventConnected      = "connected"
	EventBudgetComputed = "budget_computed"
	EventSessionReset   = "session_reset"
)

// Event — событие сессии, доставляемое по SSE.
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub раздает события по подписчикам сессии. У одной сессии может быть
// несколько открытых SSE-потоков (несколько вкладок).
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[chan Event]struct{}
}

// NewHub создает хаб SSE-подписок по сессиям.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[uuid.UUID]map[chan Event]struct{}),
	}
}

// Subscribe подписывает на события сессии и возвращает канал и функцию отписки.
func (h *Hub) Subscribe(sessionID uuid.UUID) (<-chan Event, func()) {
	ch := make(chan Event, 10)

	h.mu.Lock()
	defer h.mu.Unlock()

	sessionSubs, ok := h.subscribers[sessionID]
	if !ok {
		sessionSubs = make(map[chan Event]struct{})
		h.subscribers[sessionID] = sessionSubs
	}
	sessionSubs[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if subs, exists := h.subscribers[sessionID]; exists {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.subscribers, sessionID)
			}
		}
		close(ch)
	}
}

// Publish отправляет событие всем подписчикам сессии. Медленные подписчики
// пропускают события, а не блокируют отправителя.
func (h *Hub) Publish(sessionID uuid.UUID, event Event) {
	event.Timestamp = time.Now().UTC()

	h.mu.RLock()
	defer h.mu.RUnlock()

	subs, ok := h.subscribers[sessionID]
	if !ok {
		return
	}

	for ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}
