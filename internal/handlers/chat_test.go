package handlers

import (
	"testing"

	"example.com/travomate/backend/internal/budget"
)

// TestManualAmounts проверяет перенос формы ручного ввода в карту категорий.
func TestManualAmounts(t *testing.T) {
	amounts := manualAmounts(ManualBudgetRequest{
		Accommodation: 7000,
		Transport:     5000,
		Food:          4000,
		Activities:    3000,
		Miscellaneous: 1000,
	})

	if len(amounts) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(amounts))
	}
	if amounts[budget.CategoryAccommodation] != 7000 {
		t.Fatalf("expected accommodation 7000, got %d", amounts[budget.CategoryAccommodation])
	}
	if amounts[budget.CategoryMiscellaneous] != 1000 {
		t.Fatalf("expected miscellaneous 1000, got %d", amounts[budget.CategoryMiscellaneous])
	}
}

// TestToBreakdownResponse проверяет формат ответа с разбивкой бюджета.
func TestToBreakdownResponse(t *testing.T) {
	breakdown, ok := budget.ManualBreakdown(map[budget.Category]int64{
		budget.CategoryAccommodation: 20000,
		budget.CategoryFood:          5000,
	})
	if !ok {
		t.Fatal("expected manual breakdown")
	}

	response := toBreakdownResponse(breakdown)

	if response.Source != budget.SourceSpecific {
		t.Fatalf("expected specific source, got %s", response.Source)
	}
	if response.Total != 25000 {
		t.Fatalf("expected total 25000, got %d", response.Total)
	}
	if response.FormattedTotal != "₹25,000" {
		t.Fatalf("expected formatted total ₹25,000, got %s", response.FormattedTotal)
	}
	if len(response.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(response.Entries))
	}
}
