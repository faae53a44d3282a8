package listview

// DefaultPageSize - размер страницы во всех списках.
const DefaultPageSize = 6

// Pager хранит текущую страницу (с 1) для набора из Total элементов.
type Pager struct {
	Page  int
	Size  int
	Total int
}

func NewPager(total, size int) Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Pager{Page: 1, Size: size, Total: total}
}

// TotalPages никогда не меньше 1, даже для пустого набора.
func (p Pager) TotalPages() int {
	if p.Total <= 0 || p.Size <= 0 {
		return 1
	}
	return (p.Total + p.Size - 1) / p.Size
}

func (p Pager) HasPrev() bool { return p.Page > 1 }

func (p Pager) HasNext() bool { return p.Page < p.TotalPages() }

// Next и Prev ничего не делают на границах.
func (p *Pager) Next() {
	if p.HasNext() {
		p.Page++
	}
}

func (p *Pager) Prev() {
	if p.HasPrev() {
		p.Page--
	}
}

// Goto переходит на страницу n, ограничивая её допустимым диапазоном.
func (p *Pager) Goto(n int) {
	switch {
	case n < 1:
		p.Page = 1
	case n > p.TotalPages():
		p.Page = p.TotalPages()
	default:
		p.Page = n
	}
}

func (p *Pager) Reset() { p.Page = 1 }

// SetTotal меняет размер набора и поджимает текущую страницу.
func (p *Pager) SetTotal(total int) {
	p.Total = total
	p.Goto(p.Page)
}

// Slice возвращает элементы текущей страницы.
func Slice[T any](items []T, p Pager) []T {
	size := p.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	start := (p.Page - 1) * size
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
