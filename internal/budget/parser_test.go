package budget

import (
	"reflect"
	"testing"
)

// TestParseBreakdownKeywordFirst проверяет семейство паттернов "категория, затем сумма".
func TestParseBreakdownKeywordFirst(t *testing.T) {
	parser := NewParser(DefaultMinAmount)

	reply := `Here is your plan:
- Accommodation: ₹8,000
- Transportation: ₹3,500
- Food: ₹4,000
- Sightseeing and activities: ₹2,500
- Miscellaneous: ₹1,000`

	got := parser.ParseBreakdown(reply)
	want := map[Category]int64{
		CategoryAccommodation: 8000,
		CategoryTransport:     3500,
		CategoryFood:          4000,
		CategoryActivities:    2500,
		CategoryMiscellaneous: 1000,
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestParseBreakdownContextKeywords проверяет семейство "сумма, затем контекстное слово".
func TestParseBreakdownContextKeywords(t *testing.T) {
	parser := NewParser(DefaultMinAmount)

	reply := "Budget ₹3,000 (train tickets both ways) and ₹1,200 entrance fees for the forts. Plan ₹5,000 for food."

	got := parser.ParseBreakdown(reply)
	want := map[Category]int64{
		CategoryTransport:  3000,
		CategoryActivities: 1200,
		CategoryFood:       5000,
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestParseBreakdownThreshold проверяет отсечение сумм ниже порога.
func TestParseBreakdownThreshold(t *testing.T) {
	parser := NewParser(DefaultMinAmount)

	reply := "Accommodation: ₹400 per night extra, food: ₹499, transport: ₹500"

	got := parser.ParseBreakdown(reply)
	want := map[Category]int64{CategoryTransport: 500}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestParseBreakdownMaxWins проверяет, что при нескольких совпадениях остается максимум.
func TestParseBreakdownMaxWins(t *testing.T) {
	parser := NewParser(DefaultMinAmount)

	reply := "Food: ₹2,000 on day one, food: ₹6,500 total, food - ₹1,500 street snacks"

	got := parser.ParseBreakdown(reply)
	if got[CategoryFood] != 6500 {
		t.Fatalf("expected max amount 6500, got %d", got[CategoryFood])
	}
}

// TestParseBreakdownIdempotent проверяет, что повторный разбор дает тот же результат.
func TestParseBreakdownIdempotent(t *testing.T) {
	parser := NewParser(DefaultMinAmount)
	reply := "Accommodation: ₹8,000, transport: ₹3,000"

	first := parser.ParseBreakdown(reply)
	second := parser.ParseBreakdown(reply)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
}

// TestParseBreakdownEmpty проверяет пустой результат без ошибки.
func TestParseBreakdownEmpty(t *testing.T) {
	parser := NewParser(DefaultMinAmount)

	got := parser.ParseBreakdown("Goa is lovely in December, pack light clothes.")
	if len(got) != 0 {
		t.Fatalf("expected empty breakdown, got %v", got)
	}
}

// TestParseUserTotal проверяет извлечение заявленного бюджета из сообщения пользователя.
func TestParseUserTotal(t *testing.T) {
	parser := NewParser(DefaultMinAmount)

	total, ok := parser.ParseUserTotal("Plan a 5-day trip to Goa for ₹25,000 for two people")
	if !ok || total != 25000 {
		t.Fatalf("expected 25000, got %d (ok=%v)", total, ok)
	}

	total, ok = parser.ParseUserTotal("Budget is ₹ 40,000 but ₹10,000 is for shopping")
	if !ok || total != 40000 {
		t.Fatalf("expected first match 40000, got %d (ok=%v)", total, ok)
	}

	if _, ok := parser.ParseUserTotal("Weekend getaway to Manali, no idea about money"); ok {
		t.Fatal("expected no user total")
	}
}
