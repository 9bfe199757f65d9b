package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/travomate/backend/internal/budget"
	"example.com/travomate/backend/internal/repository"
)

type StatsHandler struct {
	Breakdowns *repository.BreakdownRepository
}

// NewStatsHandler создает обработчик статистики по архиву разбивок.
func NewStatsHandler(breakdowns *repository.BreakdownRepository) *StatsHandler {
	return &StatsHandler{Breakdowns: breakdowns}
}

type StatsOverviewResponse struct {
	TotalRequests        int64  `json:"total_requests"`
	SuccessfulRequests   int64  `json:"successful_requests"`
	TotalBreakdowns      int64  `json:"total_breakdowns"`
	TotalBudgetAmount    int64  `json:"total_budget_amount"`
	FormattedTotalBudget string `json:"formatted_total_budget"`
}

type CategoryTotalsResponse struct {
	Categories []CategoryTotalItem `json:"categories"`
}

type CategoryTotalItem struct {
	Category        string `json:"category"`
	Label           string `json:"label"`
	Amount          int64  `json:"amount"`
	FormattedAmount string `json:"formatted_amount"`
	Count           int64  `json:"count"`
}

// Overview возвращает сводную статистику по запросам и разбивкам.
func (h *StatsHandler) Overview(c echo.Context) error {
	stats, err := h.Breakdowns.Overview(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, StatsOverviewResponse{
		TotalRequests:        stats.TotalRequests,
		SuccessfulRequests:   stats.SuccessfulRequests,
		TotalBreakdowns:      stats.TotalBreakdowns,
		TotalBudgetAmount:    stats.TotalBudgetAmount,
		FormattedTotalBudget: budget.FormatAmount(stats.TotalBudgetAmount),
	})
}

// CategoryTotals возвращает суммы по категориям за все время, большие первыми.
func (h *StatsHandler) CategoryTotals(c echo.Context) error {
	totals, err := h.Breakdowns.CategoryTotals(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	categories := make([]CategoryTotalItem, 0, len(totals))
	for _, total := range totals {
		categories = append(categories, CategoryTotalItem{
			Category:        string(total.Category),
			Label:           total.Category.Label(),
			Amount:          total.Amount,
			FormattedAmount: budget.FormatAmount(total.Amount),
			Count:           total.Count,
		})
	}

	return c.JSON(http.StatusOK, CategoryTotalsResponse{Categories: categories})
}
