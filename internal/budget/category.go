package budget

import "strings"

// Category is one of the fixed travel spending categories. The set is
// closed: unrecognized spending concepts are dropped, never invented.
type Category string

const (
	CategoryAccommodation Category = "accommodation"
	CategoryTransport     Category = "transport"
	CategoryFood          Category = "food"
	CategoryActivities    Category = "activities"
	CategoryMiscellaneous Category = "miscellaneous"
)

// Categories перечисляет категории в каноническом порядке. Порядок
// фиксирован: от него зависят цвета диаграмм и порядок статей в разбивке.
var Categories = []Category{
	CategoryAccommodation,
	CategoryTransport,
	CategoryFood,
	CategoryActivities,
	CategoryMiscellaneous,
}

// ParseCategory возвращает категорию по строковому значению.
func ParseCategory(value string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(CategoryAccommodation):
		return CategoryAccommodation, true
	case string(CategoryTransport):
		return CategoryTransport, true
	case string(CategoryFood):
		return CategoryFood, true
	case string(CategoryActivities):
		return CategoryActivities, true
	case string(CategoryMiscellaneous):
		return CategoryMiscellaneous, true
	default:
		return "", false
	}
}

// Label возвращает отображаемое имя категории: каждое слово с заглавной буквы.
func (c Category) Label() string {
	words := strings.Fields(string(c))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
