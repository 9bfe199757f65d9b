package budget

import (
	"math"
	"testing"
)

func sampleBreakdown() Breakdown {
	return Breakdown{
		Entries: []Entry{
			{CategoryAccommodation, 7000},
			{CategoryTransport, 5000},
			{CategoryFood, 4000},
			{CategoryActivities, 3000},
			{CategoryMiscellaneous, 1000},
		},
		Total:  20000,
		Source: SourceEstimated,
	}
}

// TestBuildChartsCompleteness проверяет по одной записи на категорию в обеих диаграммах.
func TestBuildChartsCompleteness(t *testing.T) {
	breakdown := sampleBreakdown()

	pie, bar := BuildCharts(breakdown)

	if len(pie.Slices) != len(breakdown.Entries) {
		t.Fatalf("expected %d slices, got %d", len(breakdown.Entries), len(pie.Slices))
	}
	if len(bar.Bars) != len(breakdown.Entries) {
		t.Fatalf("expected %d bars, got %d", len(breakdown.Entries), len(bar.Bars))
	}
	if pie.Total != breakdown.Total {
		t.Fatalf("expected pie total %d, got %d", breakdown.Total, pie.Total)
	}
}

// TestBuildChartsPercentSum проверяет, что проценты в сумме дают 100.
func TestBuildChartsPercentSum(t *testing.T) {
	pie, _ := BuildCharts(sampleBreakdown())

	var sum float64
	for _, slice := range pie.Slices {
		sum += slice.Percent
	}
	if math.Abs(sum-100) > 0.01 {
		t.Fatalf("expected percents to sum to 100, got %f", sum)
	}
}

// TestBuildChartsDeterministicColors проверяет стабильность цветов по позиции.
func TestBuildChartsDeterministicColors(t *testing.T) {
	breakdown := sampleBreakdown()

	first, _ := BuildCharts(breakdown)
	second, _ := BuildCharts(breakdown)

	for i := range first.Slices {
		if first.Slices[i].Color != second.Slices[i].Color {
			t.Fatalf("expected stable color at position %d", i)
		}
		if first.Slices[i].Color != palette[i%len(palette)] {
			t.Fatalf("expected palette color at position %d, got %s", i, first.Slices[i].Color)
		}
	}
}

// TestBuildChartsLabels проверяет отображаемые названия категорий.
func TestBuildChartsLabels(t *testing.T) {
	pie, _ := BuildCharts(sampleBreakdown())

	if pie.Slices[0].Label != "Accommodation" {
		t.Fatalf("expected Accommodation, got %s", pie.Slices[0].Label)
	}
	if pie.Slices[4].Label != "Miscellaneous" {
		t.Fatalf("expected Miscellaneous, got %s", pie.Slices[4].Label)
	}
}

// TestFormatAmount проверяет формат суммы с разделителями тысяч.
func TestFormatAmount(t *testing.T) {
	cases := map[int64]string{
		0:       "₹0",
		500:     "₹500",
		25000:   "₹25,000",
		1234567: "₹1,234,567",
	}

	for amount, want := range cases {
		if got := FormatAmount(amount); got != want {
			t.Fatalf("expected %s for %d, got %s", want, amount, got)
		}
	}
}
