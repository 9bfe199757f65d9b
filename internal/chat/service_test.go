package chat

import (
	"context"
	"errors"
	"testing"

	"example.com/travomate/backend/internal/ai"
	"example.com/travomate/backend/internal/budget"
)

type stubClient struct {
	reply string
	err   error
	seen  []ai.Message
}

func (c *stubClient) Chat(_ context.Context, messages []ai.Message) (string, []byte, error) {
	c.seen = messages
	if c.err != nil {
		return "", nil, c.err
	}
	return c.reply, []byte(`{"ok":true}`), nil
}

func newTestService(client ai.Client) *Service {
	return NewService(client, budget.NewParser(budget.DefaultMinAmount), budget.NewReconciler(budget.DefaultScaleTolerance, budget.DefaultAllocation))
}

// TestSubmitWithBreakdown проверяет полный ход: реплики добавлены, бюджет сведен.
func TestSubmitWithBreakdown(t *testing.T) {
	client := &stubClient{reply: "Plan: accommodation: ₹8,000, transport: ₹3,000, food: ₹4,000."}
	service := newTestService(client)
	session := NewStore().Create()

	result, _, err := service.Submit(context.Background(), session, "Trip to Goa for ₹15,000")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(session.Messages) != 3 {
		t.Fatalf("expected system+user+assistant, got %d messages", len(session.Messages))
	}
	if client.seen[0].Role != ai.RoleSystem {
		t.Fatalf("expected system turn first, got %s", client.seen[0].Role)
	}

	if result.Breakdown == nil {
		t.Fatal("expected breakdown")
	}
	// 15000 против 15000: отклонение 0%, разбивка как есть.
	if result.Breakdown.Source != budget.SourceSpecific {
		t.Fatalf("expected specific source, got %s", result.Breakdown.Source)
	}
	if result.Pie == nil || result.Bar == nil {
		t.Fatal("expected both charts")
	}
	if session.LastBreakdown == nil || session.AwaitingManualEntry {
		t.Fatal("expected session to hold the breakdown")
	}
}

// TestSubmitModelFailure проверяет, что при ошибке модели реплика ассистента
// не добавляется, а реплика пользователя остается.
func TestSubmitModelFailure(t *testing.T) {
	client := &stubClient{err: errors.New("upstream unavailable")}
	service := newTestService(client)
	session := NewStore().Create()

	_, _, err := service.Submit(context.Background(), session, "Trip to Goa")
	if err == nil {
		t.Fatal("expected error")
	}

	if len(session.Messages) != 2 {
		t.Fatalf("expected system+user only, got %d messages", len(session.Messages))
	}
	if session.Messages[1].Role != ai.RoleUser {
		t.Fatalf("expected user turn retained, got %s", session.Messages[1].Role)
	}
}

// TestSubmitManualEntryFallback проверяет флаг ручного ввода, когда бюджет не найден.
func TestSubmitManualEntryFallback(t *testing.T) {
	client := &stubClient{reply: "Goa has wonderful beaches, visit in winter."}
	service := newTestService(client)
	session := NewStore().Create()

	result, _, err := service.Submit(context.Background(), session, "Tell me about Goa")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Breakdown != nil {
		t.Fatal("expected no breakdown")
	}
	if !session.AwaitingManualEntry {
		t.Fatal("expected session to await manual entry")
	}
}

// TestSubmitManual проверяет ручной ввод разбивки.
func TestSubmitManual(t *testing.T) {
	service := newTestService(&stubClient{})
	session := NewStore().Create()
	session.AwaitingManualEntry = true

	result, ok := service.SubmitManual(session, map[budget.Category]int64{
		budget.CategoryAccommodation: 6000,
		budget.CategoryFood:          0,
	})
	if !ok {
		t.Fatal("expected breakdown")
	}
	if result.Breakdown.Source != budget.SourceSpecific {
		t.Fatalf("expected specific source, got %s", result.Breakdown.Source)
	}
	if session.AwaitingManualEntry {
		t.Fatal("expected manual entry flag cleared")
	}

	if _, ok := service.SubmitManual(session, map[budget.Category]int64{budget.CategoryFood: 0}); ok {
		t.Fatal("expected no breakdown for all-zero input")
	}
}
