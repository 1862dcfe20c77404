package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SearchCriteria - набор необязательных ограничений для поиска.
// Пустая строка или nil означает "без ограничения" по этому полю.
// Границы min/max друг с другом не сверяются: перевернутый диапазон просто ничего не найдет.
type SearchCriteria struct {
	Type        ListingType
	MinPrice    *float64
	MaxPrice    *float64
	MinBedrooms *int
	MaxBedrooms *int
	DateAdded   string
	Postcode    string
}

// IsEmpty сообщает, что ни одно ограничение не задано.
func (c SearchCriteria) IsEmpty() bool {
	return c.Type == "" &&
		c.MinPrice == nil && c.MaxPrice == nil &&
		c.MinBedrooms == nil && c.MaxBedrooms == nil &&
		c.DateAdded == "" &&
		normalizePostcode(c.Postcode) == ""
}

// Matches проверяет объект по всем заданным критериям (логическое И).
func (c SearchCriteria) Matches(l Listing) bool {
	if c.Type != "" && l.Type != c.Type {
		return false
	}

	// Границы цены и спален включительные
	if c.MinPrice != nil && l.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && l.Price > *c.MaxPrice {
		return false
	}
	if c.MinBedrooms != nil && l.Bedrooms < *c.MinBedrooms {
		return false
	}
	if c.MaxBedrooms != nil && l.Bedrooms > *c.MaxBedrooms {
		return false
	}

	// Дата - только точное текстовое совпадение
	if c.DateAdded != "" && l.DateAdded != c.DateAdded {
		return false
	}

	// Индекс - поиск подстроки без учета регистра и пробелов
	if needle := normalizePostcode(c.Postcode); needle != "" {
		if !strings.Contains(normalizePostcode(l.Postcode), needle) {
			return false
		}
	}

	return true
}

// FilterListings возвращает объекты, подходящие под критерии, в исходном порядке.
// Входной срез не изменяется.
func FilterListings(listings []Listing, criteria SearchCriteria) []Listing {
	result := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if criteria.Matches(l) {
			result = append(result, l)
		}
	}
	return result
}

// normalizePostcode убирает все пробельные символы и приводит строку к нижнему регистру.
func normalizePostcode(s string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if stripped == "" {
		return ""
	}
	// cases.Caser хранит состояние, поэтому создается на каждый вызов
	return cases.Lower(language.Und).String(stripped)
}
