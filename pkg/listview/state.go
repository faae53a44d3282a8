package listview

import (
	"net/url"
	"strconv"
)

// State - состояние одного списка на время запроса: коллекция, фасеты,
// выбранные значения и текущая страница.
type State[T any] struct {
	items    []T
	facets   []Facet[T]
	sel      Selection
	pager    Pager
	filtered []T
	onChange func(Selection)
}

func NewState[T any](items []T, facets []Facet[T], pageSize int) *State[T] {
	sel := make(Selection, len(facets))
	for _, f := range facets {
		sel[f.ID] = nil
	}
	s := &State[T]{
		items:  items,
		facets: facets,
		sel:    sel,
		pager:  NewPager(len(items), pageSize),
	}
	s.recompute()
	return s
}

// OnFiltersChange регистрирует обработчик изменения выбора.
func (s *State[T]) OnFiltersChange(fn func(Selection)) {
	s.onChange = fn
}

// SetFilter меняет значение фасета и возвращает пагинацию на первую страницу.
func (s *State[T]) SetFilter(id, value string) {
	if _, known := s.sel[id]; !known {
		return
	}
	s.sel.Set(id, value)
	s.pager.Reset()
	s.recompute()
	s.notify()
}

// Reset сбрасывает все фасеты и страницу.
func (s *State[T]) Reset() {
	s.sel.Clear()
	s.pager.Reset()
	s.recompute()
	s.notify()
}

func (s *State[T]) Next() { s.pager.Next() }

func (s *State[T]) Prev() { s.pager.Prev() }

func (s *State[T]) Goto(n int) { s.pager.Goto(n) }

func (s *State[T]) Pager() Pager { return s.pager }

func (s *State[T]) Selection() Selection {
	out := make(Selection, len(s.sel))
	for k, v := range s.sel {
		out[k] = v
	}
	return out
}

func (s *State[T]) Filtered() []T { return s.filtered }

func (s *State[T]) Page() []T { return Slice(s.filtered, s.pager) }

func (s *State[T]) recompute() {
	s.filtered = Apply(s.items, s.facets, s.sel)
	s.pager.SetTotal(len(s.filtered))
}

func (s *State[T]) notify() {
	if s.onChange != nil {
		s.onChange(s.Selection())
	}
}

// Bind применяет параметры запроса: reset=1, filter[<id>]=..., page=N.
// Фильтры применяются до номера страницы, поэтому page относится к уже
// отфильтрованному набору.
func (s *State[T]) Bind(q url.Values) {
	if q.Get("reset") == "1" {
		s.Reset()
		return
	}
	for _, f := range s.facets {
		if f.Kind == KindDateRange {
			from, to := q.Get("filter["+f.ID+"][from]"), q.Get("filter["+f.ID+"][to]")
			if from != "" || to != "" {
				s.SetFilter(f.ID, Range{From: from, To: to}.String())
				continue
			}
		}
		if v := q.Get("filter[" + f.ID + "]"); v != "" {
			s.SetFilter(f.ID, v)
		}
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil {
		s.Goto(p)
	}
}

// Query кодирует текущие фильтры (без страницы).
func (s *State[T]) Query() url.Values {
	q := url.Values{}
	for _, f := range s.facets {
		v, ok := s.sel.Value(f.ID)
		if !ok {
			continue
		}
		if f.Kind == KindDateRange {
			if r, ok := ParseRange(v); ok {
				if r.From != "" {
					q.Set("filter["+f.ID+"][from]", r.From)
				}
				if r.To != "" {
					q.Set("filter["+f.ID+"][to]", r.To)
				}
			}
			continue
		}
		q.Set("filter["+f.ID+"]", v)
	}
	return q
}

// Group - данные одного фасета для панели фильтров.
type Group struct {
	ID       string
	Label    string
	Kind     string
	Options  []Option
	Selected string
	From     string
	To       string
}

// Groups строит панель фильтров по всей (нефильтрованной) коллекции.
func (s *State[T]) Groups() []Group {
	groups := make([]Group, 0, len(s.facets))
	for _, f := range s.facets {
		g := Group{ID: f.ID, Label: f.Label, Kind: f.Kind.String()}
		if f.Options != nil {
			g.Options = f.Options(s.items)
		}
		if v, ok := s.sel.Value(f.ID); ok {
			g.Selected = v
			if r, ok := ParseRange(v); ok && f.Kind == KindDateRange {
				g.From, g.To = r.From, r.To
			}
		}
		groups = append(groups, g)
	}
	return groups
}

// View - всё, что нужно шаблону списка.
type View struct {
	Title      string
	BasePath   string
	NewURL     string
	ExportURL  string
	Groups     []Group
	Headers    []string
	Rows       []Row
	Page       int
	TotalPages int
	Total      int
	PrevURL    string
	NextURL    string
	ResetURL   string
	LoadError  string
}

// View собирает представление текущей страницы.
func (s *State[T]) View(title, basePath string, table Table[T]) View {
	v := View{
		Title:      title,
		BasePath:   basePath,
		Groups:     s.Groups(),
		Headers:    table.Headers(),
		Rows:       table.Rows(s.Page()),
		Page:       s.pager.Page,
		TotalPages: s.pager.TotalPages(),
		Total:      len(s.filtered),
		ResetURL:   basePath + "?reset=1",
	}
	if s.pager.HasPrev() {
		v.PrevURL = s.pageURL(basePath, s.pager.Page-1)
	}
	if s.pager.HasNext() {
		v.NextURL = s.pageURL(basePath, s.pager.Page+1)
	}
	return v
}

func (s *State[T]) pageURL(basePath string, page int) string {
	q := s.Query()
	q.Set("page", strconv.Itoa(page))
	return basePath + "?" + q.Encode()
}

// FilterQuery - строка фильтров для ссылок экспорта.
func (s *State[T]) FilterQuery() string {
	return s.Query().Encode()
}
