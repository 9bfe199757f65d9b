package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/travomate/backend/internal/auth"
	"example.com/travomate/backend/internal/notifications"
)

type EventsHandler struct {
	Hub *notifications.Hub
}

// NewEventsHandler создает SSE-обработчик событий сессии.
func NewEventsHandler(hub *notifications.Hub) *EventsHandler {
	return &EventsHandler{Hub: hub}
}

// Stream открывает SSE-поток событий для сессии.
func (h *EventsHandler) Stream(c echo.Context) error {
	sessionID, ok := auth.SessionIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	pathSessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid session id")
	}
	if pathSessionID != sessionID {
		return forbidden(c)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return serverError(c)
	}

	ch, unsubscribe := h.Hub.Subscribe(sessionID)
	defer unsubscribe()

	_ = writeSSE(c, notifications.Event{
		Type: notifications.EventConnected,
		Data: map[string]string{"session_id": sessionID.String()},
	})
	flusher.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if err := writeSSE(c, event); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}

func writeSSE(c echo.Context, event notifications.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := c.Response().Write([]byte("event: " + event.Type + "\n")); err != nil {
		return err
	}
	if _, err := c.Response().Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
		return err
	}

	return nil
}
