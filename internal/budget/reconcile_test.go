package budget

import (
	"reflect"
	"testing"
)

func newTestReconciler() *Reconciler {
	return NewReconciler(DefaultScaleTolerance, DefaultAllocation)
}

// TestReconcileScaled проверяет масштабирование при большом отклонении от бюджета.
func TestReconcileScaled(t *testing.T) {
	r := newTestReconciler()

	parsed := map[Category]int64{
		CategoryAccommodation: 4000,
		CategoryTransport:     2000,
	}

	// responseTotal=6000 против 10000: отклонение 40% > 10%.
	breakdown, ok := r.Reconcile(parsed, 10000)
	if !ok {
		t.Fatal("expected breakdown")
	}
	if breakdown.Source != SourceScaled {
		t.Fatalf("expected scaled source, got %s", breakdown.Source)
	}

	want := []Entry{
		{CategoryAccommodation, 6666},
		{CategoryTransport, 3333},
	}
	if !reflect.DeepEqual(breakdown.Entries, want) {
		t.Fatalf("expected %v, got %v", want, breakdown.Entries)
	}
	if breakdown.Total != 9999 {
		t.Fatalf("expected truncated total 9999, got %d", breakdown.Total)
	}
}

// TestReconcileSpecificPassthrough проверяет передачу разбивки как есть при малом отклонении.
func TestReconcileSpecificPassthrough(t *testing.T) {
	r := newTestReconciler()

	parsed := map[Category]int64{
		CategoryAccommodation: 5000,
		CategoryFood:          4800,
	}

	// responseTotal=9800 против 10000: отклонение 2% <= 10%.
	breakdown, ok := r.Reconcile(parsed, 10000)
	if !ok {
		t.Fatal("expected breakdown")
	}
	if breakdown.Source != SourceSpecific {
		t.Fatalf("expected specific source, got %s", breakdown.Source)
	}
	if breakdown.Total != 9800 {
		t.Fatalf("expected total 9800, got %d", breakdown.Total)
	}
}

// TestReconcileEstimated проверяет оценку по типовым долям без разбивки в ответе.
func TestReconcileEstimated(t *testing.T) {
	r := newTestReconciler()

	breakdown, ok := r.Reconcile(nil, 20000)
	if !ok {
		t.Fatal("expected breakdown")
	}
	if breakdown.Source != SourceEstimated {
		t.Fatalf("expected estimated source, got %s", breakdown.Source)
	}

	want := []Entry{
		{CategoryAccommodation, 7000},
		{CategoryTransport, 5000},
		{CategoryFood, 4000},
		{CategoryActivities, 3000},
		{CategoryMiscellaneous, 1000},
	}
	if !reflect.DeepEqual(breakdown.Entries, want) {
		t.Fatalf("expected %v, got %v", want, breakdown.Entries)
	}
	if breakdown.Total != 20000 {
		t.Fatalf("expected total 20000, got %d", breakdown.Total)
	}
}

// TestReconcileSpecificWithoutUserTotal проверяет использование разбивки без заявленного бюджета.
func TestReconcileSpecificWithoutUserTotal(t *testing.T) {
	r := newTestReconciler()

	parsed := map[Category]int64{CategoryFood: 3000, CategoryTransport: 2500}

	breakdown, ok := r.Reconcile(parsed, 0)
	if !ok {
		t.Fatal("expected breakdown")
	}
	if breakdown.Source != SourceSpecific {
		t.Fatalf("expected specific source, got %s", breakdown.Source)
	}
	if breakdown.Total != 5500 {
		t.Fatalf("expected total 5500, got %d", breakdown.Total)
	}
}

// TestReconcileAbsent проверяет отсутствие результата без бюджета и без разбивки.
func TestReconcileAbsent(t *testing.T) {
	r := newTestReconciler()

	if _, ok := r.Reconcile(nil, 0); ok {
		t.Fatal("expected no breakdown")
	}
	if _, ok := r.Reconcile(map[Category]int64{}, 0); ok {
		t.Fatal("expected no breakdown")
	}
}

// TestReconcileTotalInvariant проверяет, что итог всегда равен сумме статей.
func TestReconcileTotalInvariant(t *testing.T) {
	r := newTestReconciler()

	cases := []struct {
		name      string
		parsed    map[Category]int64
		userTotal int64
	}{
		{"specific", map[Category]int64{CategoryFood: 1200, CategoryActivities: 900}, 0},
		{"scaled", map[Category]int64{CategoryAccommodation: 7000, CategoryFood: 1000}, 30000},
		{"estimated", nil, 12345},
	}

	for _, tc := range cases {
		breakdown, ok := r.Reconcile(tc.parsed, tc.userTotal)
		if !ok {
			t.Fatalf("%s: expected breakdown", tc.name)
		}

		var sum int64
		for _, entry := range breakdown.Entries {
			if entry.Amount <= 0 {
				t.Fatalf("%s: non-positive amount %d", tc.name, entry.Amount)
			}
			sum += entry.Amount
		}
		if sum != breakdown.Total {
			t.Fatalf("%s: total %d != sum %d", tc.name, breakdown.Total, sum)
		}
	}
}

// TestReconcileEntriesOrder проверяет канонический порядок статей.
func TestReconcileEntriesOrder(t *testing.T) {
	r := newTestReconciler()

	parsed := map[Category]int64{
		CategoryMiscellaneous: 900,
		CategoryAccommodation: 5000,
		CategoryActivities:    1500,
	}

	breakdown, _ := r.Reconcile(parsed, 0)
	want := []Category{CategoryAccommodation, CategoryActivities, CategoryMiscellaneous}
	for i, entry := range breakdown.Entries {
		if entry.Category != want[i] {
			t.Fatalf("expected %s at position %d, got %s", want[i], i, entry.Category)
		}
	}
}

// TestManualBreakdown проверяет ручной ввод: нули отбрасываются.
func TestManualBreakdown(t *testing.T) {
	breakdown, ok := ManualBreakdown(map[Category]int64{
		CategoryAccommodation: 6000,
		CategoryFood:          0,
		CategoryTransport:     2000,
	})
	if !ok {
		t.Fatal("expected breakdown")
	}
	if breakdown.Source != SourceSpecific {
		t.Fatalf("expected specific source, got %s", breakdown.Source)
	}
	if len(breakdown.Entries) != 2 || breakdown.Total != 8000 {
		t.Fatalf("unexpected breakdown: %+v", breakdown)
	}

	if _, ok := ManualBreakdown(map[Category]int64{CategoryFood: 0}); ok {
		t.Fatal("expected no breakdown for all-zero input")
	}
}
