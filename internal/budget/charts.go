package budget

import (
	"fmt"
	"strconv"
)

// Палитра диаграмм. Цвета назначаются по позиции статьи в разбивке и
// циклически повторяются, если статей больше, чем цветов.
var palette = []string{"#667eea", "#764ba2", "#f093fb", "#f5576c", "#4facfe", "#00f2fe"}

const (
	pieChartTitle = "Budget Breakdown"
	barChartTitle = "Category-wise Expenses"
)

// PieSlice — доля категории в общем бюджете.
type PieSlice struct {
	Label   string  `json:"label"`
	Amount  int64   `json:"amount"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
	Tooltip string  `json:"tooltip"`
}

// PieChart — пропорциональное представление разбивки.
type PieChart struct {
	Title  string     `json:"title"`
	Slices []PieSlice `json:"slices"`
	Total  int64      `json:"total"`
}

// Bar — абсолютная сумма по категории.
type Bar struct {
	Label   string `json:"label"`
	Amount  int64  `json:"amount"`
	Color   string `json:"color"`
	Tooltip string `json:"tooltip"`
}

// BarChart — сравнительное представление разбивки.
type BarChart struct {
	Title string `json:"title"`
	Bars  []Bar  `json:"bars"`
}

// BuildCharts строит обе спецификации диаграмм по итоговой разбивке.
// Функция чистая и детерминированная: порядок статей и цвета стабильны.
func BuildCharts(b Breakdown) (PieChart, BarChart) {
	pie := PieChart{
		Title:  pieChartTitle,
		Slices: make([]PieSlice, 0, len(b.Entries)),
		Total:  b.Total,
	}
	bar := BarChart{
		Title: barChartTitle,
		Bars:  make([]Bar, 0, len(b.Entries)),
	}

	for i, entry := range b.Entries {
		label := entry.Category.Label()
		color := palette[i%len(palette)]
		amount := FormatAmount(entry.Amount)

		var percent float64
		if b.Total > 0 {
			percent = float64(entry.Amount) / float64(b.Total) * 100
		}

		pie.Slices = append(pie.Slices, PieSlice{
			Label:   label,
			Amount:  entry.Amount,
			Percent: percent,
			Color:   color,
			Tooltip: fmt.Sprintf("%s: %s (%.1f%%)", label, amount, percent),
		})

		bar.Bars = append(bar.Bars, Bar{
			Label:   label,
			Amount:  entry.Amount,
			Color:   color,
			Tooltip: fmt.Sprintf("%s: %s", label, amount),
		})
	}

	return pie, bar
}

// FormatAmount отображает сумму с символом валюты и разделителями тысяч,
// например ₹25,000.
func FormatAmount(amount int64) string {
	digits := strconv.FormatInt(amount, 10)

	sign := ""
	if digits[0] == '-' {
		sign = "-"
		digits = digits[1:]
	}

	grouped := make([]byte, 0, len(digits)+len(digits)/3)
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}

	return sign + CurrencySymbol + string(grouped)
}
