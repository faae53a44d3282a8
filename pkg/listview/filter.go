package listview

import "strings"

// Selection - выбранное значение для каждого фасета; nil означает "без ограничения".
type Selection map[string]*string

// Set выбирает значение. Пустая строка сбрасывает фасет в nil.
func (s Selection) Set(id, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		s[id] = nil
		return
	}
	s[id] = &value
}

// Value возвращает выбранное значение, если оно есть.
func (s Selection) Value(id string) (string, bool) {
	v, ok := s[id]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Clear сбрасывает все фасеты в nil, сохраняя ключи.
func (s Selection) Clear() {
	for id := range s {
		s[id] = nil
	}
}

// Active - число фасетов с выбранным значением.
func (s Selection) Active() int {
	n := 0
	for _, v := range s {
		if v != nil {
			n++
		}
	}
	return n
}

// Apply возвращает элементы, для которых совпадают ВСЕ выбранные фасеты.
// Выбор для неизвестного фасета игнорируется.
func Apply[T any](items []T, facets []Facet[T], sel Selection) []T {
	active := make([]Facet[T], 0, len(facets))
	values := make([]string, 0, len(facets))
	for _, f := range facets {
		if v, ok := sel.Value(f.ID); ok && f.Match != nil {
			active = append(active, f)
			values = append(values, v)
		}
	}

	out := make([]T, 0, len(items))
	if len(active) == 0 {
		return append(out, items...)
	}

	for _, item := range items {
		matched := true
		for i, f := range active {
			if !f.Match(item, values[i]) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, item)
		}
	}
	return out
}
