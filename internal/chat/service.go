package chat

import (
	"context"

	"example.com/travomate/backend/internal/ai"
	"example.com/travomate/backend/internal/budget"
)

// Service — оркестратор хода диалога: реплика пользователя, вызов модели,
// реплика ассистента, извлечение и сведение бюджета, построение диаграмм.
type Service struct {
	client     ai.Client
	parser     *budget.Parser
	reconciler *budget.Reconciler
}

// TurnResult — итог одного хода диалога.
type TurnResult struct {
	Reply     string
	Breakdown *budget.Breakdown
	Pie       *budget.PieChart
	Bar       *budget.BarChart
}

// NewService создает оркестратор диалога.
func NewService(client ai.Client, parser *budget.Parser, reconciler *budget.Reconciler) *Service {
	return &Service{client: client, parser: parser, reconciler: reconciler}
}

// Submit проводит один ход диалога. При ошибке модели реплика ассистента не
// добавляется, но реплика пользователя остается в истории: повтор — это
// новая отправка, а не переигрывание.
func (s *Service) Submit(ctx context.Context, session *Session, userText string) (TurnResult, []byte, error) {
	session.AppendUser(userText)

	reply, raw, err := s.client.Chat(ctx, session.History())
	if err != nil {
		return TurnResult{}, raw, err
	}

	session.AppendAssistant(reply)

	result := TurnResult{Reply: reply}
	parsed := s.parser.ParseBreakdown(reply)
	userTotal, _ := s.parser.ParseUserTotal(userText)

	breakdown, ok := s.reconciler.Reconcile(parsed, userTotal)
	if !ok {
		// Бюджет не найден: клиенту предлагается форма ручного ввода.
		session.AwaitingManualEntry = true
		return result, raw, nil
	}

	session.LastBreakdown = &breakdown
	session.AwaitingManualEntry = false

	pie, bar := budget.BuildCharts(breakdown)
	result.Breakdown = &breakdown
	result.Pie = &pie
	result.Bar = &bar

	return result, raw, nil
}

// SubmitManual принимает суммы ручного ввода и, если осталась хотя бы одна
// положительная статья, сохраняет разбивку и строит диаграммы.
func (s *Service) SubmitManual(session *Session, amounts map[budget.Category]int64) (TurnResult, bool) {
	breakdown, ok := budget.ManualBreakdown(amounts)
	if !ok {
		return TurnResult{}, false
	}

	session.LastBreakdown = &breakdown
	session.AwaitingManualEntry = false

	pie, bar := budget.BuildCharts(breakdown)
	return TurnResult{Breakdown: &breakdown, Pie: &pie, Bar: &bar}, true
}
