// Package listview - общий конвейер отображения списков:
// фасеты фильтров, выбор значений, фильтрация, пагинация и таблица.
package listview

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"maintenance-portal/pkg/utils"
)

// Kind - тип фасета в панели фильтров.
type Kind int

const (
	KindSelect Kind = iota
	KindDate
	KindDateRange
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindDateRange:
		return "daterange"
	default:
		return "select"
	}
}

// Option - одно значение фасета.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Facet описывает один фильтр для коллекции T.
// Options может быть nil (например, для диапазона дат).
type Facet[T any] struct {
	ID      string
	Label   string
	Kind    Kind
	Options func(items []T) []Option
	Match   func(item T, value string) bool
}

// DateOptions собирает уникальные календарные дни коллекции.
// Время отбрасывается, пустые значения пропускаются, сортировка хронологическая.
func DateOptions[T any](items []T, key func(T) string) []Option {
	seen := make(map[string]struct{}, len(items))
	values := make([]string, 0, len(items))
	for _, item := range items {
		day := DateOnly(key(item))
		if day == "" {
			continue
		}
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		values = append(values, day)
	}
	// YYYY-MM-DD сортируется лексикографически так же, как хронологически
	sort.Strings(values)

	options := make([]Option, 0, len(values))
	for _, v := range values {
		options = append(options, Option{Label: utils.FormatDateFR(v), Value: v})
	}
	return options
}

// EnumOptions собирает уникальные значения перечисления.
// labels - необязательная карта "код → подпись"; без неё подпись равна коду.
func EnumOptions[T any](items []T, key func(T) string, labels map[string]string) []Option {
	byValue := make(map[string]Option, len(items))
	for _, item := range items {
		v := key(item)
		if v == "" {
			continue
		}
		if _, ok := byValue[v]; ok {
			continue
		}
		label := v
		if l, ok := labels[v]; ok && l != "" {
			label = l
		}
		byValue[v] = Option{Label: label, Value: v}
	}

	options := make([]Option, 0, len(byValue))
	for _, o := range byValue {
		options = append(options, o)
	}
	SortByLabel(options)
	return options
}

// SortByLabel сортирует подписи по правилам французского языка.
func SortByLabel(options []Option) {
	c := collate.New(language.French)
	sort.SliceStable(options, func(i, j int) bool {
		if r := c.CompareString(options[i].Label, options[j].Label); r != 0 {
			return r < 0
		}
		return options[i].Value < options[j].Value
	})
}

// DateFacet - фасет по календарному дню.
func DateFacet[T any](id, label string, key func(T) string) Facet[T] {
	return Facet[T]{
		ID:    id,
		Label: label,
		Kind:  KindDate,
		Options: func(items []T) []Option {
			return DateOptions(items, key)
		},
		Match: func(item T, value string) bool {
			return DateOnly(key(item)) == DateOnly(value)
		},
	}
}

// EnumFacet - фасет по точному значению поля.
func EnumFacet[T any](id, label string, key func(T) string, labels map[string]string) Facet[T] {
	return Facet[T]{
		ID:    id,
		Label: label,
		Kind:  KindSelect,
		Options: func(items []T) []Option {
			return EnumOptions(items, key, labels)
		},
		Match: func(item T, value string) bool {
			return key(item) == value
		},
	}
}

// DateRangeFacet - фасет "с ... по ..." (включительно, любой конец может быть открыт).
func DateRangeFacet[T any](id, label string, key func(T) string) Facet[T] {
	return Facet[T]{
		ID:    id,
		Label: label,
		Kind:  KindDateRange,
		Match: func(item T, value string) bool {
			r, ok := ParseRange(value)
			if !ok {
				return true
			}
			return r.Contains(key(item))
		},
	}
}
