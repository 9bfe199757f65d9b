package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/travomate/backend/internal/auth"
	"example.com/travomate/backend/internal/budget"
	"example.com/travomate/backend/internal/chat"
	"example.com/travomate/backend/internal/notifications"
	"example.com/travomate/backend/internal/repository"
)

type ChatHandler struct {
	Service    *chat.Service
	Sessions   *chat.Store
	Tokens     *auth.TokenManager
	ChatLog    *repository.ChatLogRepository
	Breakdowns *repository.BreakdownRepository
	Notifier   *notifications.Hub
	Provider   string
	Model      string
}

// NewChatHandler создает обработчик диалоговых сессий.
func NewChatHandler(
	service *chat.Service,
	sessions *chat.Store,
	tokens *auth.TokenManager,
	chatLog *repository.ChatLogRepository,
	breakdowns *repository.BreakdownRepository,
	notifier *notifications.Hub,
	provider, model string,
) *ChatHandler {
	return &ChatHandler{
		Service:    service,
		Sessions:   sessions,
		Tokens:     tokens,
		ChatLog:    chatLog,
		Breakdowns: breakdowns,
		Notifier:   notifier,
		Provider:   provider,
		Model:      model,
	}
}

type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

type MessageTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type BreakdownResponse struct {
	Source         budget.Source  `json:"source"`
	Entries        []budget.Entry `json:"entries"`
	Total          int64          `json:"total"`
	FormattedTotal string         `json:"formatted_total"`
}

type TurnResponse struct {
	Reply              string             `json:"reply"`
	Breakdown          *BreakdownResponse `json:"breakdown,omitempty"`
	PieChart           *budget.PieChart   `json:"pie_chart,omitempty"`
	BarChart           *budget.BarChart   `json:"bar_chart,omitempty"`
	ManualEntryOffered bool               `json:"manual_entry_offered"`
}

type TranscriptResponse struct {
	SessionID           string        `json:"session_id"`
	Messages            []MessageTurn `json:"messages"`
	AwaitingManualEntry bool          `json:"awaiting_manual_entry"`
}

// ManualBudgetRequest — форма ручного ввода: до пяти неотрицательных сумм.
type ManualBudgetRequest struct {
	Accommodation int64 `json:"accommodation" validate:"gte=0"`
	Transport     int64 `json:"transport" validate:"gte=0"`
	Food          int64 `json:"food" validate:"gte=0"`
	Activities    int64 `json:"activities" validate:"gte=0"`
	Miscellaneous int64 `json:"miscellaneous" validate:"gte=0"`
}

type BreakdownHistoryResponse struct {
	SessionID  string               `json:"session_id"`
	Breakdowns []*BreakdownResponse `json:"breakdowns"`
}

type ManualBudgetResponse struct {
	Breakdown *BreakdownResponse `json:"breakdown"`
	PieChart  *budget.PieChart   `json:"pie_chart"`
	BarChart  *budget.BarChart   `json:"bar_chart"`
}

// CreateSession создает диалоговую сессию и выдает токен для нее.
func (h *ChatHandler) CreateSession(c echo.Context) error {
	session := h.Sessions.Create()

	token, expiresAt, err := h.Tokens.NewSessionToken(session.ID)
	if err != nil {
		h.Sessions.Delete(session.ID)
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, SessionResponse{
		SessionID: session.ID.String(),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// GetTranscript возвращает историю диалога без системной реплики.
func (h *ChatHandler) GetTranscript(c echo.Context) error {
	session, err := h.resolveSession(c)
	if session == nil {
		return err
	}

	transcript := session.Transcript()
	messages := make([]MessageTurn, 0, len(transcript))
	for _, message := range transcript {
		messages = append(messages, MessageTurn{Role: message.Role, Content: message.Content})
	}

	return c.JSON(http.StatusOK, TranscriptResponse{
		SessionID:           session.ID.String(),
		Messages:            messages,
		AwaitingManualEntry: session.AwaitingManualEntry,
	})
}

// SubmitMessage проводит один ход диалога: реплика пользователя, ответ
// модели, извлечение бюджета и диаграммы.
func (h *ChatHandler) SubmitMessage(c echo.Context) error {
	session, err := h.resolveSession(c)
	if session == nil {
		return err
	}

	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	ctx := c.Request().Context()
	result, raw, err := h.Service.Submit(ctx, session, req.Content)

	h.logTurn(ctx, session.ID, req.Content, result.Reply, raw, err)

	if err != nil {
		slog.Warn("model call failed",
			slog.String("session_id", session.ID.String()),
			slog.String("error", err.Error()),
		)
		// Состояние диалога не повреждено: реплика пользователя осталась,
		// повторная отправка — это новый ход.
		return badGateway(c, "assistant is unavailable, try rephrasing or check connectivity")
	}

	response := TurnResponse{
		Reply:              result.Reply,
		ManualEntryOffered: session.AwaitingManualEntry,
	}

	if result.Breakdown != nil {
		response.Breakdown = toBreakdownResponse(*result.Breakdown)
		response.PieChart = result.Pie
		response.BarChart = result.Bar

		h.archiveBreakdown(ctx, session.ID, *result.Breakdown)
		publishBudgetComputed(h.Notifier, session.ID, *result.Breakdown)
	}

	return c.JSON(http.StatusOK, response)
}

// SubmitManualBudget принимает ручной ввод разбивки, когда бюджет не был
// найден в диалоге.
func (h *ChatHandler) SubmitManualBudget(c echo.Context) error {
	session, err := h.resolveSession(c)
	if session == nil {
		return err
	}

	var req ManualBudgetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	result, ok := h.Service.SubmitManual(session, manualAmounts(req))
	if !ok {
		return badRequest(c, "at least one positive amount is required")
	}

	h.archiveBreakdown(c.Request().Context(), session.ID, *result.Breakdown)
	publishBudgetComputed(h.Notifier, session.ID, *result.Breakdown)

	return c.JSON(http.StatusOK, ManualBudgetResponse{
		Breakdown: toBreakdownResponse(*result.Breakdown),
		PieChart:  result.Pie,
		BarChart:  result.Bar,
	})
}

// ResetSession очищает историю до единственной системной реплики.
func (h *ChatHandler) ResetSession(c echo.Context) error {
	session, err := h.resolveSession(c)
	if session == nil {
		return err
	}

	session.Reset()

	h.Notifier.Publish(session.ID, notifications.Event{Type: notifications.EventSessionReset})
	return c.NoContent(http.StatusNoContent)
}

// GetLastBreakdown возвращает последнюю вычисленную разбивку сессии.
func (h *ChatHandler) GetLastBreakdown(c echo.Context) error {
	session, err := h.resolveSession(c)
	if session == nil {
		return err
	}

	if session.LastBreakdown == nil {
		return notFound(c, "no breakdown computed yet")
	}

	pie, bar := budget.BuildCharts(*session.LastBreakdown)
	return c.JSON(http.StatusOK, ManualBudgetResponse{
		Breakdown: toBreakdownResponse(*session.LastBreakdown),
		PieChart:  &pie,
		BarChart:  &bar,
	})
}

// GetBreakdownHistory возвращает архив разбивок сессии, новые первыми.
func (h *ChatHandler) GetBreakdownHistory(c echo.Context) error {
	session, err := h.resolveSession(c)
	if session == nil {
		return err
	}

	breakdowns, err := h.Breakdowns.ListBySession(c.Request().Context(), session.ID)
	if err != nil {
		return serverError(c)
	}

	history := make([]*BreakdownResponse, 0, len(breakdowns))
	for _, b := range breakdowns {
		history = append(history, toBreakdownResponse(b))
	}

	return c.JSON(http.StatusOK, BreakdownHistoryResponse{
		SessionID:  session.ID.String(),
		Breakdowns: history,
	})
}

// resolveSession сверяет сессию из пути с subject токена и находит ее в хранилище.
func (h *ChatHandler) resolveSession(c echo.Context) (*chat.Session, error) {
	tokenSessionID, ok := auth.SessionIDFromContext(c)
	if !ok {
		return nil, unauthorized(c)
	}

	pathSessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, badRequest(c, "invalid session id")
	}

	if pathSessionID != tokenSessionID {
		return nil, forbidden(c)
	}

	session, ok := h.Sessions.Get(pathSessionID)
	if !ok {
		return nil, notFound(c, "session not found")
	}

	return session, nil
}

func (h *ChatHandler) logTurn(ctx context.Context, sessionID uuid.UUID, userMessage, reply string, raw []byte, err error) {
	log := repository.ChatRequestLog{
		SessionID:   sessionID,
		Provider:    h.Provider,
		Model:       h.Model,
		UserMessage: userMessage,
		Reply:       reply,
		RawResponse: string(raw),
		Success:     err == nil,
	}
	if err != nil {
		errMsg := err.Error()
		log.ErrorMessage = &errMsg
	}

	if logErr := h.ChatLog.LogTurn(ctx, log); logErr != nil {
		slog.Warn("chat log write failed", slog.String("error", logErr.Error()))
	}
}

func (h *ChatHandler) archiveBreakdown(ctx context.Context, sessionID uuid.UUID, b budget.Breakdown) {
	if _, err := h.Breakdowns.Save(ctx, sessionID, b); err != nil {
		slog.Warn("breakdown archive failed",
			slog.String("session_id", sessionID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func manualAmounts(req ManualBudgetRequest) map[budget.Category]int64 {
	return map[budget.Category]int64{
		budget.CategoryAccommodation: req.Accommodation,
		budget.CategoryTransport:     req.Transport,
		budget.CategoryFood:          req.Food,
		budget.CategoryActivities:    req.Activities,
		budget.CategoryMiscellaneous: req.Miscellaneous,
	}
}

func toBreakdownResponse(b budget.Breakdown) *BreakdownResponse {
	return &BreakdownResponse{
		Source:         b.Source,
		Entries:        b.Entries,
		Total:          b.Total,
		FormattedTotal: budget.FormatAmount(b.Total),
	}
}

func publishBudgetComputed(hub *notifications.Hub, sessionID uuid.UUID, b budget.Breakdown) {
	if hub == nil {
		return
	}

	hub.Publish(sessionID, notifications.Event{
		Type: notifications.EventBudgetComputed,
		Data: map[string]interface{}{
			"source":     string(b.Source),
			"total":      b.Total,
			"categories": len(b.Entries),
		},
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
}

func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
}

func notFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": message})
}

func badGateway(c echo.Context, message string) error {
	return c.JSON(http.StatusBadGateway, map[string]string{"error": message})
}

func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
