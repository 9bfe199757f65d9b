package config

import (
	"reflect"
	"testing"

	"example.com/travomate/backend/internal/budget"
)

// TestParseAllocationEnv проверяет разбор типовых долей бюджета из ENV.
func TestParseAllocationEnv(t *testing.T) {
	t.Setenv("BUDGET_ALLOCATION", " accommodation:40, transport:30 ,food:30 ")

	got, err := parseAllocationEnv("BUDGET_ALLOCATION")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []budget.AllocationShare{
		{Category: budget.CategoryAccommodation, Percent: 40},
		{Category: budget.CategoryTransport, Percent: 30},
		{Category: budget.CategoryFood, Percent: 30},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestParseAllocationEnvMissing проверяет доли по умолчанию при отсутствии переменной.
func TestParseAllocationEnvMissing(t *testing.T) {
	got, err := parseAllocationEnv("MISSING_ENV")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !reflect.DeepEqual(got, budget.DefaultAllocation) {
		t.Fatalf("expected default allocation, got %v", got)
	}
}

// TestParseAllocationEnvBadSum проверяет ошибку, если доли не дают 100.
func TestParseAllocationEnvBadSum(t *testing.T) {
	t.Setenv("BUDGET_ALLOCATION", "accommodation:50,transport:30")

	if _, err := parseAllocationEnv("BUDGET_ALLOCATION"); err == nil {
		t.Fatal("expected error for sum != 100")
	}
}

// TestParseAllocationEnvUnknownCategory проверяет ошибку на незнакомой категории.
func TestParseAllocationEnvUnknownCategory(t *testing.T) {
	t.Setenv("BUDGET_ALLOCATION", "shopping:100")

	if _, err := parseAllocationEnv("BUDGET_ALLOCATION"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

// TestParseFloatEnv проверяет разбор дробного порога.
func TestParseFloatEnv(t *testing.T) {
	t.Setenv("BUDGET_SCALE_TOLERANCE", "0.25")

	got, err := parseFloatEnv("BUDGET_SCALE_TOLERANCE", 0.1)
	if err != nil || got != 0.25 {
		t.Fatalf("expected 0.25, got %v (err=%v)", got, err)
	}

	t.Setenv("BUDGET_SCALE_TOLERANCE", "lots")
	if _, err := parseFloatEnv("BUDGET_SCALE_TOLERANCE", 0.1); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}
