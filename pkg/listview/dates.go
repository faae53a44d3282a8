package listview

import "strings"

const rangeSep = ".."

// DateOnly обрезает ISO-строку до "YYYY-MM-DD".
func DateOnly(iso string) string {
	iso = strings.TrimSpace(iso)
	if len(iso) > 10 {
		return iso[:10]
	}
	return iso
}

// Range - диапазон дат в формате YYYY-MM-DD, границы включительно.
type Range struct {
	From string
	To   string
}

// ParseRange разбирает значение вида "2024-05-01..2024-05-31".
// Любая из границ может быть пустой.
func ParseRange(value string) (Range, bool) {
	from, to, found := strings.Cut(value, rangeSep)
	if !found {
		return Range{}, false
	}
	r := Range{From: DateOnly(from), To: DateOnly(to)}
	if r.From == "" && r.To == "" {
		return Range{}, false
	}
	return r, true
}

func (r Range) String() string {
	return r.From + rangeSep + r.To
}

// Contains сравнивает только дату, без времени.
// Элемент без даты в диапазон не попадает.
func (r Range) Contains(iso string) bool {
	day := DateOnly(iso)
	if day == "" {
		return false
	}
	if r.From != "" && day < r.From {
		return false
	}
	if r.To != "" && day > r.To {
		return false
	}
	return true
}
