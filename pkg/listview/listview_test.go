package listview

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ticket struct {
	ID       int    `json:"id"`
	Status   string `json:"status"`
	Created  string `json:"date_creation"`
	Category string `json:"categorie"`
}

var statusLabels = map[string]string{"Termine": "Terminé", "enCours": "En cours"}

func ticketFacets() []Facet[ticket] {
	return []Facet[ticket]{
		DateFacet("date", "Date", func(t ticket) string { return t.Created }),
		EnumFacet("status", "Statut", func(t ticket) string { return t.Status }, statusLabels),
		EnumFacet("categorie", "Catégorie", func(t ticket) string { return t.Category }, nil),
		DateRangeFacet("periode", "Période", func(t ticket) string { return t.Created }),
	}
}

func sampleTickets(n int) []ticket {
	out := make([]ticket, n)
	for i := range out {
		out[i] = ticket{ID: i + 1, Status: "enCours", Created: "2024-05-01T08:00:00Z"}
	}
	return out
}

func TestDateOptions_DedupByCalendarDay(t *testing.T) {
	items := []ticket{
		{Created: "2024-05-01T08:00"},
		{Created: "2024-05-01T20:00"},
		{Created: ""},
		{Created: "2024-04-30T23:59:59Z"},
		{Created: "2024-05-02"},
	}

	opts := DateOptions(items, func(t ticket) string { return t.Created })

	require.Len(t, opts, 3)
	assert.Equal(t, Option{Label: "30 avril 2024", Value: "2024-04-30"}, opts[0])
	assert.Equal(t, Option{Label: "1 mai 2024", Value: "2024-05-01"}, opts[1])
	assert.Equal(t, "2024-05-02", opts[2].Value)
}

func TestEnumOptions_LabelsAndFrenchOrder(t *testing.T) {
	items := []ticket{
		{Category: "Écran"},
		{Category: "Clavier"},
		{Category: "Souris"},
		{Category: "Clavier"},
		{Category: ""},
		{Category: "écouteurs"},
	}

	opts := EnumOptions(items, func(t ticket) string { return t.Category }, nil)

	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
	}
	assert.Equal(t, []string{"Clavier", "écouteurs", "Écran", "Souris"}, labels)
}

func TestEnumOptions_UsesDisplayMapping(t *testing.T) {
	items := []ticket{{Status: "Termine"}, {Status: "enCours"}, {Status: "Termine"}, {Status: "Inconnu"}}

	opts := EnumOptions(items, func(t ticket) string { return t.Status }, statusLabels)

	assert.Equal(t, []Option{
		{Label: "En cours", Value: "enCours"},
		{Label: "Inconnu", Value: "Inconnu"},
		{Label: "Terminé", Value: "Termine"},
	}, opts)
}

func TestApply_AllNullReturnsEverything(t *testing.T) {
	items := []ticket{{ID: 1, Status: "a"}, {ID: 2, Status: "b"}}
	facets := ticketFacets()
	sel := Selection{"date": nil, "status": nil, "categorie": nil, "periode": nil}

	out := Apply(items, facets, sel)

	assert.Equal(t, items, out)
	out[0].ID = 99
	assert.Equal(t, 1, items[0].ID, "result must not alias the input")
}

func TestApply_SingleFacet(t *testing.T) {
	items := []ticket{
		{ID: 1, Status: "enCours", Created: "2024-05-01T08:00"},
		{ID: 2, Status: "Termine", Created: "2024-05-01T20:00"},
		{ID: 3, Status: "enCours", Created: "2024-05-03T10:00"},
	}
	facets := ticketFacets()

	sel := Selection{}
	sel.Set("date", "2024-05-01")
	assert.Equal(t, []int{1, 2}, ids(Apply(items, facets, sel)))

	sel = Selection{}
	sel.Set("status", "enCours")
	assert.Equal(t, []int{1, 3}, ids(Apply(items, facets, sel)))
}

func TestApply_AndCombination(t *testing.T) {
	items := []ticket{
		{ID: 1, Status: "enCours", Created: "2024-05-01T08:00"},
		{ID: 2, Status: "Termine", Created: "2024-05-01T20:00"},
		{ID: 3, Status: "enCours", Created: "2024-05-03T10:00"},
	}
	sel := Selection{}
	sel.Set("status", "enCours")
	sel.Set("date", "2024-05-01")

	assert.Equal(t, []int{1}, ids(Apply(items, ticketFacets(), sel)))
}

func TestApply_DateRange(t *testing.T) {
	items := []ticket{
		{ID: 1, Created: "2024-04-30T23:00"},
		{ID: 2, Created: "2024-05-01T00:10"},
		{ID: 3, Created: "2024-05-31T23:59"},
		{ID: 4, Created: "2024-06-01T00:00"},
		{ID: 5, Created: ""},
	}
	facets := ticketFacets()

	sel := Selection{}
	sel.Set("periode", "2024-05-01..2024-05-31")
	assert.Equal(t, []int{2, 3}, ids(Apply(items, facets, sel)))

	sel.Set("periode", "2024-05-01..")
	assert.Equal(t, []int{2, 3, 4}, ids(Apply(items, facets, sel)))

	sel.Set("periode", "..2024-04-30")
	assert.Equal(t, []int{1}, ids(Apply(items, facets, sel)))
}

func TestSelection_EmptyValueMeansNull(t *testing.T) {
	sel := Selection{"status": nil}
	sel.Set("status", "  ")

	_, ok := sel.Value("status")
	assert.False(t, ok)
	assert.Zero(t, sel.Active())
}

func TestPager_TotalPages(t *testing.T) {
	tests := []struct {
		total, want int
	}{
		{0, 1}, {1, 1}, {6, 1}, {7, 2}, {12, 2}, {13, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewPager(tt.total, DefaultPageSize).TotalPages(), "total=%d", tt.total)
	}
}

func TestPager_BoundsAreNoOps(t *testing.T) {
	p := NewPager(13, DefaultPageSize)

	p.Prev()
	assert.Equal(t, 1, p.Page)

	p.Next()
	p.Next()
	p.Next()
	assert.Equal(t, 3, p.Page)
	assert.False(t, p.HasNext())

	p.Goto(42)
	assert.Equal(t, 3, p.Page)
	p.Goto(-1)
	assert.Equal(t, 1, p.Page)
}

func TestSlice_IsIdempotent(t *testing.T) {
	items := sampleTickets(13)
	p := NewPager(len(items), DefaultPageSize)
	p.Goto(3)

	first := Slice(items, p)
	second := Slice(items, p)

	assert.Equal(t, first, second)
	assert.Equal(t, []int{13}, ids(first))
	assert.Empty(t, Slice([]ticket{}, NewPager(0, DefaultPageSize)))
}

func TestState_FilterChangeResetsPage(t *testing.T) {
	items := sampleTickets(13)
	items[12].Status = "Termine"
	s := NewState(items, ticketFacets(), DefaultPageSize)

	var notified []Selection
	s.OnFiltersChange(func(sel Selection) { notified = append(notified, sel) })

	s.Goto(3)
	require.Equal(t, 3, s.Pager().Page)

	s.SetFilter("status", "enCours")
	assert.Equal(t, 1, s.Pager().Page)
	assert.Len(t, s.Filtered(), 12)
	assert.Equal(t, 2, s.Pager().TotalPages())
	require.Len(t, notified, 1)
	v, _ := notified[0].Value("status")
	assert.Equal(t, "enCours", v)
}

func TestState_UnknownFacetIgnored(t *testing.T) {
	s := NewState(sampleTickets(3), ticketFacets(), DefaultPageSize)
	s.SetFilter("nope", "x")

	_, known := s.Selection()["nope"]
	assert.False(t, known)
	assert.Len(t, s.Filtered(), 3)
}

func TestState_Reset(t *testing.T) {
	items := sampleTickets(13)
	s := NewState(items, ticketFacets(), DefaultPageSize)
	s.SetFilter("status", "Termine")
	s.SetFilter("date", "2024-05-01")
	require.Empty(t, s.Filtered())

	s.Reset()

	for id, v := range s.Selection() {
		assert.Nil(t, v, "facet %s", id)
	}
	assert.Equal(t, 1, s.Pager().Page)
	assert.Equal(t, items, s.Filtered())
}

func TestState_BindAndQuery(t *testing.T) {
	items := sampleTickets(20)
	s := NewState(items, ticketFacets(), DefaultPageSize)

	q := url.Values{}
	q.Set("filter[status]", "enCours")
	q.Set("filter[periode][from]", "2024-05-01")
	q.Set("page", "3")
	s.Bind(q)

	assert.Equal(t, 3, s.Pager().Page)
	v, ok := s.Selection().Value("periode")
	require.True(t, ok)
	assert.Equal(t, "2024-05-01..", v)

	out := s.Query()
	assert.Equal(t, "enCours", out.Get("filter[status]"))
	assert.Equal(t, "2024-05-01", out.Get("filter[periode][from]"))
	assert.Empty(t, out.Get("filter[periode][to]"))
	assert.Empty(t, out.Get("page"))
}

func TestState_BindResetWins(t *testing.T) {
	s := NewState(sampleTickets(20), ticketFacets(), DefaultPageSize)
	s.SetFilter("status", "Termine")

	s.Bind(url.Values{"reset": {"1"}, "filter[status]": {"Termine"}, "page": {"2"}})

	assert.Zero(t, s.Selection().Active())
	assert.Equal(t, 1, s.Pager().Page)
	assert.Len(t, s.Filtered(), 20)
}

func TestState_BindClampsPage(t *testing.T) {
	s := NewState(sampleTickets(7), ticketFacets(), DefaultPageSize)
	s.Bind(url.Values{"page": {"99"}})
	assert.Equal(t, 2, s.Pager().Page)
}

func TestState_View(t *testing.T) {
	items := sampleTickets(8)
	s := NewState(items, ticketFacets(), DefaultPageSize)
	s.SetFilter("status", "enCours")
	s.Next()

	table := Table[ticket]{
		Columns: []Column[ticket]{{Header: "N°", Field: "ID"}},
		IDField: "id",
		BaseURL: "/tickets",
	}
	v := s.View("Tickets", "/tickets", table)

	assert.Equal(t, 2, v.Page)
	assert.Equal(t, 2, v.TotalPages)
	assert.Equal(t, 8, v.Total)
	assert.Empty(t, v.NextURL)
	assert.Equal(t, "/tickets?filter%5Bstatus%5D=enCours&page=1", v.PrevURL)
	assert.Equal(t, "/tickets?reset=1", v.ResetURL)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, "/tickets/7", v.Rows[0].Link)
	require.Len(t, v.Groups, 4)
	assert.Equal(t, "enCours", v.Groups[1].Selected)
	assert.Equal(t, "daterange", v.Groups[3].Kind)
}

func ids(items []ticket) []int {
	out := make([]int, len(items))
	for i, t := range items {
		out[i] = t.ID
	}
	return out
}
