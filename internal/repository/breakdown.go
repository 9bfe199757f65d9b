package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/travomate/backend/internal/budget"
)

// BreakdownRepository архивирует итоговые разбивки бюджета по сессиям.
type BreakdownRepository struct {
	db *pgxpool.Pool
}

// OverviewStats — сводная статистика по архиву.
type OverviewStats struct {
	TotalRequests      int64
	SuccessfulRequests int64
	TotalBreakdowns    int64
	TotalBudgetAmount  int64
}

// CategoryTotal — агрегат по одной категории за все время.
type CategoryTotal struct {
	Category budget.Category
	Amount   int64
	Count    int64
}

// NewBreakdownRepository создает репозиторий архива разбивок.
func NewBreakdownRepository(db *pgxpool.Pool) *BreakdownRepository {
	return &BreakdownRepository{db: db}
}

// Save сохраняет разбивку вместе со статьями в одной транзакции.
func (r *BreakdownRepository) Save(ctx context.Context, sessionID uuid.UUID, b budget.Breakdown) (uuid.UUID, error) {
	if len(b.Entries) == 0 {
		return uuid.Nil, ErrInvalid
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var breakdownID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO budget_breakdowns (session_id, source, total_amount)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		sessionID, string(b.Source), b.Total,
	).Scan(&breakdownID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert breakdown: %w", err)
	}

	for _, entry := range b.Entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO budget_breakdown_items (breakdown_id, category, amount)
			 VALUES ($1, $2, $3)`,
			breakdownID, string(entry.Category), entry.Amount,
		); err != nil {
			return uuid.Nil, fmt.Errorf("insert breakdown item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}

	return breakdownID, nil
}

// Overview возвращает сводную статистику по журналу и архиву.
func (r *BreakdownRepository) Overview(ctx context.Context) (OverviewStats, error) {
	stats := OverviewStats{}

	err := r.db.QueryRow(ctx,
		`SELECT count(*), count(*) FILTER (WHERE success)
		 FROM chat_requests`,
	).Scan(&stats.TotalRequests, &stats.SuccessfulRequests)
	if err != nil {
		return stats, fmt.Errorf("chat requests overview: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT count(*), COALESCE(sum(total_amount), 0)
		 FROM budget_breakdowns`,
	).Scan(&stats.TotalBreakdowns, &stats.TotalBudgetAmount)
	if err != nil {
		return stats, fmt.Errorf("breakdowns overview: %w", err)
	}

	return stats, nil
}

// CategoryTotals возвращает суммы по категориям за все время, по убыванию.
func (r *BreakdownRepository) CategoryTotals(ctx context.Context) ([]CategoryTotal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT category, sum(amount), count(*)
		 FROM budget_breakdown_items
		 GROUP BY category
		 ORDER BY sum(amount) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	totals := make([]CategoryTotal, 0)
	for rows.Next() {
		var raw string
		var total CategoryTotal
		if err := rows.Scan(&raw, &total.Amount, &total.Count); err != nil {
			return nil, err
		}

		category, ok := budget.ParseCategory(raw)
		if !ok {
			// Чужие значения в архиве пропускаем, набор категорий закрыт.
			continue
		}
		total.Category = category
		totals = append(totals, total)
	}

	return totals, rows.Err()
}

// ListBySession возвращает разбивки сессии, новые первыми.
func (r *BreakdownRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]budget.Breakdown, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.source, b.total_amount, i.category, i.amount
		 FROM budget_breakdowns b
		 JOIN budget_breakdown_items i ON i.breakdown_id = b.id
		 WHERE b.session_id = $1
		 ORDER BY b.created_at DESC, b.id, i.id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list breakdowns: %w", err)
	}
	defer rows.Close()

	var breakdowns []budget.Breakdown
	var currentID uuid.UUID

	for rows.Next() {
		var id uuid.UUID
		var source string
		var total, amount int64
		var rawCategory string

		if err := rows.Scan(&id, &source, &total, &rawCategory, &amount); err != nil {
			return nil, err
		}

		if id != currentID {
			breakdowns = append(breakdowns, budget.Breakdown{
				Source: budget.Source(source),
				Total:  total,
			})
			currentID = id
		}

		category, ok := budget.ParseCategory(rawCategory)
		if !ok {
			continue
		}

		last := &breakdowns[len(breakdowns)-1]
		last.Entries = append(last.Entries, budget.Entry{Category: category, Amount: amount})
	}

	return breakdowns, rows.Err()
}
