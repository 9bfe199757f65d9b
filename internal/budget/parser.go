package budget

import (
	"regexp"
	"strconv"
	"strings"
)

// CurrencySymbol — единственная поддерживаемая валюта (индийская рупия).
const CurrencySymbol = "₹"

// DefaultMinAmount отсекает шумовые совпадения: числа меньше порога
// (размер группы, количество дней) не считаются суммами.
const DefaultMinAmount = 500

// categoryPatterns binds a category to its pattern families:
// keyword-before-amount and amount-before-context-keyword.
type categoryPatterns struct {
	category Category
	patterns []*regexp.Regexp
}

// Таблица паттернов по категориям. Текст ответа приводится к нижнему
// регистру до применения, поэтому ключевые слова записаны строчными.
var patternTable = []categoryPatterns{
	{
		category: CategoryAccommodation,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`accommodation[:\s-]*₹?\s*(\d+(?:,\d+)*)`),
			regexp.MustCompile(`₹\s*(\d+(?:,\d+)*)\s*(?:for|per|/)\s*accommodation`),
		},
	},
	{
		category: CategoryTransport,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`transport(?:ation)?[:\s-]*₹?\s*(\d+(?:,\d+)*)`),
			regexp.MustCompile(`₹\s*(\d+(?:,\d+)*)\s*\(?(?:bike|car|train|bus|flight)`),
		},
	},
	{
		category: CategoryFood,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`food[:\s-]*₹?\s*(\d+(?:,\d+)*)`),
			regexp.MustCompile(`₹\s*(\d+(?:,\d+)*)\s*(?:for|per|/)\s*food`),
		},
	},
	{
		category: CategoryActivities,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?:sightseeing and )?activities[:\s-]*₹?\s*(\d+(?:,\d+)*)`),
			regexp.MustCompile(`₹\s*(\d+(?:,\d+)*)\s*\(?(?:entrance|water sports|sightseeing)`),
		},
	},
	{
		category: CategoryMiscellaneous,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?:miscellaneous|misc|other)[:\s-]*₹?\s*(\d+(?:,\d+)*)`),
			regexp.MustCompile(`₹\s*(\d+(?:,\d+)*)\s*(?:for|per|/)\s*(?:misc|other)`),
		},
	},
}

var userTotalPattern = regexp.MustCompile(`₹\s*(\d+(?:,\d+)*)`)

// Parser извлекает денежные суммы из свободного текста ответа модели.
type Parser struct {
	minAmount int64
}

// NewParser создает парсер с порогом отсечения мелких сумм.
func NewParser(minAmount int64) *Parser {
	if minAmount <= 0 {
		minAmount = DefaultMinAmount
	}
	return &Parser{minAmount: minAmount}
}

// ParseBreakdown ищет суммы по категориям в тексте ответа. Для каждой
// категории среди прошедших порог совпадений остается максимальная сумма.
// Пустой результат — это отсутствие разбивки, а не ошибка.
func (p *Parser) ParseBreakdown(reply string) map[Category]int64 {
	lowered := strings.ToLower(reply)
	found := make(map[Category]int64)

	for _, entry := range patternTable {
		for _, pattern := range entry.patterns {
			for _, match := range pattern.FindAllStringSubmatch(lowered, -1) {
				amount, err := parseAmount(match[1])
				if err != nil {
					continue
				}
				if amount < p.minAmount {
					continue
				}
				if amount > found[entry.category] {
					found[entry.category] = amount
				}
			}
		}
	}

	return found
}

// ParseUserTotal извлекает первую сумму с символом валюты из сообщения
// пользователя. Это заявленный общий бюджет поездки.
func (p *Parser) ParseUserTotal(text string) (int64, bool) {
	match := userTotalPattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}

	amount, err := parseAmount(match[1])
	if err != nil {
		return 0, false
	}

	return amount, true
}

func parseAmount(digits string) (int64, error) {
	return strconv.ParseInt(strings.ReplaceAll(digits, ",", ""), 10, 64)
}
