package budget

import "github.com/shopspring/decimal"

// Source указывает происхождение разбивки бюджета.
type Source string

const (
	// SourceSpecific — суммы извлечены из ответа модели как есть.
	SourceSpecific Source = "specific"
	// SourceScaled — суммы из ответа пропорционально приведены к бюджету пользователя.
	SourceScaled Source = "scaled"
	// SourceEstimated — разбивка построена по типовым долям от бюджета пользователя.
	SourceEstimated Source = "estimated"
)

// DefaultScaleTolerance — допустимое относительное отклонение суммы ответа
// от заявленного бюджета, при превышении которого разбивка масштабируется.
const DefaultScaleTolerance = 0.10

// AllocationShare — доля категории в типовой разбивке бюджета.
type AllocationShare struct {
	Category Category
	Percent  int64
}

// DefaultAllocation — типовые доли расходов на поездку.
var DefaultAllocation = []AllocationShare{
	{CategoryAccommodation, 35},
	{CategoryTransport, 25},
	{CategoryFood, 20},
	{CategoryActivities, 15},
	{CategoryMiscellaneous, 5},
}

// Entry is a single breakdown line: category plus a strictly positive amount.
type Entry struct {
	Category Category `json:"category"`
	Amount   int64    `json:"amount"`
}

// Breakdown is the reconciled category-to-amount mapping. Entries follow the
// canonical category order; Total is always the exact sum of the entries.
type Breakdown struct {
	Entries []Entry `json:"entries"`
	Total   int64   `json:"total"`
	Source  Source  `json:"source"`
}

// Reconciler сводит распарсенную разбивку и заявленный бюджет пользователя
// в итоговую разбивку по одной из трех стратегий.
type Reconciler struct {
	tolerance  decimal.Decimal
	allocation []AllocationShare
}

// NewReconciler создает reconciler с допуском отклонения и типовыми долями.
func NewReconciler(tolerance float64, allocation []AllocationShare) *Reconciler {
	if tolerance <= 0 {
		tolerance = DefaultScaleTolerance
	}
	if len(allocation) == 0 {
		allocation = DefaultAllocation
	}
	return &Reconciler{
		tolerance:  decimal.NewFromFloat(tolerance),
		allocation: allocation,
	}
}

// Reconcile выбирает стратегию по наличию заявленного бюджета (userTotal <= 0
// означает отсутствие) и распарсенной разбивки. Возвращает false, когда нет
// ни того, ни другого: в этом случае предлагается ручной ввод.
func (r *Reconciler) Reconcile(parsed map[Category]int64, userTotal int64) (Breakdown, bool) {
	entries := orderedEntries(parsed)
	responseTotal := sumEntries(entries)

	switch {
	case userTotal > 0 && len(entries) > 0:
		if responseTotal == 0 {
			// Защита от деления на ноль: без положительных сумм
			// масштабировать нечего, переходим к оценке по долям.
			return r.estimate(userTotal), true
		}
		if r.deviationExceeded(responseTotal, userTotal) {
			return r.scale(entries, userTotal, responseTotal), true
		}
		return Breakdown{Entries: entries, Total: responseTotal, Source: SourceSpecific}, true
	case userTotal > 0:
		return r.estimate(userTotal), true
	case len(entries) > 0:
		return Breakdown{Entries: entries, Total: responseTotal, Source: SourceSpecific}, true
	default:
		return Breakdown{}, false
	}
}

// ManualBreakdown оборачивает введенные пользователем суммы в разбивку.
// Нулевые статьи отбрасываются; false, если не осталось ни одной.
func ManualBreakdown(amounts map[Category]int64) (Breakdown, bool) {
	entries := orderedEntries(amounts)
	if len(entries) == 0 {
		return Breakdown{}, false
	}
	return Breakdown{Entries: entries, Total: sumEntries(entries), Source: SourceSpecific}, true
}

func (r *Reconciler) deviationExceeded(responseTotal, userTotal int64) bool {
	diff := responseTotal - userTotal
	if diff < 0 {
		diff = -diff
	}
	limit := r.tolerance.Mul(decimal.NewFromInt(userTotal))
	return decimal.NewFromInt(diff).GreaterThan(limit)
}

// scale приводит каждую статью к бюджету пользователя с усечением до целого.
// Сумма усеченных статей может немного отличаться от заявленного бюджета;
// этот дрейф сохраняется намеренно.
func (r *Reconciler) scale(entries []Entry, userTotal, responseTotal int64) Breakdown {
	user := decimal.NewFromInt(userTotal)
	response := decimal.NewFromInt(responseTotal)

	scaled := make([]Entry, 0, len(entries))
	var total int64
	for _, entry := range entries {
		amount := decimal.NewFromInt(entry.Amount).Mul(user).Div(response).IntPart()
		if amount <= 0 {
			continue
		}
		scaled = append(scaled, Entry{Category: entry.Category, Amount: amount})
		total += amount
	}

	return Breakdown{Entries: scaled, Total: total, Source: SourceScaled}
}

func (r *Reconciler) estimate(userTotal int64) Breakdown {
	entries := make([]Entry, 0, len(r.allocation))
	var total int64
	for _, share := range r.allocation {
		amount := userTotal * share.Percent / 100
		if amount <= 0 {
			continue
		}
		entries = append(entries, Entry{Category: share.Category, Amount: amount})
		total += amount
	}

	return Breakdown{Entries: entries, Total: total, Source: SourceEstimated}
}

func orderedEntries(amounts map[Category]int64) []Entry {
	entries := make([]Entry, 0, len(amounts))
	for _, category := range Categories {
		if amount := amounts[category]; amount > 0 {
			entries = append(entries, Entry{Category: category, Amount: amount})
		}
	}
	return entries
}

func sumEntries(entries []Entry) int64 {
	var total int64
	for _, entry := range entries {
		total += entry.Amount
	}
	return total
}
