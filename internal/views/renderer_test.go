package views_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-portal/internal/controllers"
	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/services"
	"maintenance-portal/internal/views"
	"maintenance-portal/pkg/constants"
	"maintenance-portal/pkg/formstate"
	"maintenance-portal/pkg/listview"
	"maintenance-portal/pkg/middleware"
	"maintenance-portal/pkg/utils"
)

func newRenderer(t *testing.T) *views.Renderer {
	t.Helper()
	r, err := views.New()
	require.NoError(t, err)
	return r
}

func staffContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(middleware.SessionKey, &dto.SessionDTO{
		ID: "s1", UserID: 1, Username: "admin", Email: "admin@example.fr", IsStaff: true,
		CreatedAt: time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC),
	})
	return c
}

func render(t *testing.T, r *views.Renderer, name string, data any, c echo.Context) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, data, c))
	return buf.String()
}

func TestAllPagesRegistered(t *testing.T) {
	r := newRenderer(t)
	for _, name := range []string{
		"error", "login", "faq", "profile", "dashboard", "list",
		"demande_new", "demande_detail", "intervention_detail",
		"composant_form", "equipement_form", "user_form",
	} {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("layout"))
}

func TestRender_UnknownTemplate(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, newRenderer(t).Render(&buf, "nope", nil, nil))
}

func TestRender_MenuDependsOnSession(t *testing.T) {
	r := newRenderer(t)

	anonymous := render(t, r, "error", utils.ErrorPage{Code: 404, Title: "Page introuvable", Message: "Rien ici."}, nil)
	assert.Contains(t, anonymous, `href="/login"`)
	assert.NotContains(t, anonymous, `href="/users"`)
	assert.Contains(t, anonymous, "404 · Page introuvable")

	staff := render(t, r, "profile", nil, staffContext())
	assert.Contains(t, staff, `href="/users"`)
	assert.Contains(t, staff, "Administrateur")
	assert.Contains(t, staff, "05/03/2024 08:30")
}

func TestRender_List(t *testing.T) {
	r := newRenderer(t)
	items := []entities.Demande{
		{ID: 1, Nom: "Diallo", Prenom: "Awa", Status: constants.DemandeNouvelle, TypeMateriel: "PC portable",
			DateCreation: null.StringFrom("2024-03-01T09:00:00Z")},
	}
	state := listview.NewState(items, services.DemandeFacets(), 10)
	page := controllers.ListPage{
		View:     state.View("Demandes", "/demandes", services.DemandeTable()),
		RetryURL: "/demandes",
	}
	page.LoadError = "Erreur de chargement des données."

	out := render(t, r, "list", page, staffContext())
	assert.Contains(t, out, "<h1>Demandes</h1>")
	assert.Contains(t, out, "Awa Diallo")
	assert.Contains(t, out, `href="/demandes/1"`)
	assert.Contains(t, out, "1 mars 2024")
	assert.Contains(t, out, "Réessayer")
	assert.Contains(t, out, "Page 1 / 1")

	empty := listview.NewState([]entities.Demande{}, services.DemandeFacets(), 10)
	out = render(t, r, "list", controllers.ListPage{View: empty.View("Demandes", "/demandes", services.DemandeTable())}, staffContext())
	assert.Contains(t, out, "Aucun élément.")
	assert.NotContains(t, out, "Réessayer")
}

func TestRender_DemandeDetail(t *testing.T) {
	r := newRenderer(t)
	d := &entities.Demande{
		ID: 7, Nom: "Martin", Email: "martin@example.fr", Status: constants.DemandeNouvelle,
		TypeMateriel: "Imprimante", PanneDeclaree: "Bourrage papier",
	}
	out := render(t, r, "demande_detail", controllers.DemandeDetailPage{
		Demande:    d,
		Priorities: []string{constants.PrioriteHaute, constants.PrioriteMoyenne, constants.PrioriteBasse},
	}, staffContext())
	assert.Contains(t, out, `action="/demandes/7/accept"`)
	assert.Contains(t, out, `action="/demandes/7/reject"`)
	assert.Contains(t, out, `action="/demandes/7/hold"`)
	assert.Contains(t, out, "Aucune intervention.")

	d.Status = constants.DemandeTerminee
	d.Interventions = []entities.Intervention{{ID: 3, Status: constants.InterventionTermine, Priorite: constants.PrioriteHaute}}
	out = render(t, r, "demande_detail", controllers.DemandeDetailPage{Demande: d, Message: "Cette demande a déjà été traitée."}, staffContext())
	assert.NotContains(t, out, "/accept")
	assert.NotContains(t, out, "/reject")
	assert.Contains(t, out, `href="/interventions/3"`)
	assert.Contains(t, out, "déjà été traitée")
}

func TestRender_InterventionDetail(t *testing.T) {
	r := newRenderer(t)
	it := &entities.Intervention{
		ID: 3, Status: constants.InterventionEnCours, Priorite: constants.PrioriteHaute,
		Demande: null.IntFrom(7), Technicien: null.IntFrom(4), ComposantsUtilises: []int{2},
	}
	form := formstate.New(dto.UpdateInterventionDTO{
		Priorite: it.Priorite, Technicien: it.Technicien, ComposantsUtilises: it.ComposantsUtilises,
	})
	out := render(t, r, "intervention_detail", controllers.InterventionDetailPage{
		Intervention: it,
		Form:         form,
		Composants:   []entities.Composant{{ID: 1, Nom: "RAM 8 Go", Quantite: 3}, {ID: 2, Nom: "SSD 256 Go", Quantite: 1}},
		Priorities:   []string{constants.PrioriteHaute, constants.PrioriteMoyenne, constants.PrioriteBasse},
	}, staffContext())
	assert.Contains(t, out, `href="/demandes/7"`)
	assert.Contains(t, out, `value="4"`)
	assert.Contains(t, out, `value="2" checked`)
	assert.NotContains(t, out, `value="1" checked`)
	assert.Contains(t, out, `action="/interventions/3/irreparable"`)

	it.Status = constants.InterventionIrreparable
	it.CauseIrreparable = null.StringFrom("Carte mère grillée")
	out = render(t, r, "intervention_detail", controllers.InterventionDetailPage{Intervention: it, Form: form}, staffContext())
	assert.Contains(t, out, "lecture seule")
	assert.Contains(t, out, "Carte mère grillée")
	assert.NotContains(t, out, "/terminate")
}

func TestRender_Forms(t *testing.T) {
	r := newRenderer(t)

	demande := formstate.New(dto.CreateDemandeDTO{})
	require.NoError(t, demande.Edit(dto.CreateDemandeDTO{Nom: "Diallo", Telephone: null.StringFrom("06")}))
	require.NoError(t, demande.Submit())
	require.NoError(t, demande.Fail("Le formulaire contient des erreurs.", map[string]string{"telephone": "Numéro de téléphone invalide."}))
	out := render(t, r, "demande_new", controllers.DemandeNewPage{Form: demande}, nil)
	assert.Contains(t, out, `value="Diallo"`)
	assert.Contains(t, out, "Numéro de téléphone invalide.")

	done := formstate.New(dto.CreateDemandeDTO{})
	require.NoError(t, done.Edit(dto.CreateDemandeDTO{Nom: "Diallo"}))
	require.NoError(t, done.Submit())
	require.NoError(t, done.Succeed("Votre demande n°12 a bien été enregistrée."))
	out = render(t, r, "demande_new", controllers.DemandeNewPage{Form: done}, nil)
	assert.Contains(t, out, "n°12 a bien été enregistrée")
	assert.NotContains(t, out, `name="nom"`)

	login := render(t, r, "login", controllers.LoginPage{Form: formstate.New(dto.LoginDTO{Username: "tech"}), Next: "/interventions"}, nil)
	assert.Contains(t, login, `value="/interventions"`)
	assert.Contains(t, login, `value="tech"`)

	composant := render(t, r, "composant_form", controllers.FormPage[dto.ComposantDTO]{
		Title: "Composant n°2", Action: "/composants/2", DeleteURL: "/composants/2/delete",
		Form: formstate.New(dto.ComposantDTO{Nom: "SSD", Type: constants.ComposantNouveau, Disponible: true}),
	}, staffContext())
	assert.Contains(t, composant, `value="Nouveau" selected`)
	assert.Contains(t, composant, `value="true" checked`)
	assert.Contains(t, composant, `action="/composants/2/delete"`)

	equipement := render(t, r, "equipement_form", controllers.FormPage[dto.EquipementDTO]{
		Title: "Nouvel équipement", Action: "/equipements/new",
		Form: formstate.New(dto.EquipementDTO{Designation: "Écran 24\""}),
	}, staffContext())
	assert.NotContains(t, equipement, "Supprimer")

	user := render(t, r, "user_form", controllers.FormPage[dto.UpdateUserDTO]{
		Title: "Utilisateur n°4", Action: "/users/4",
		Form: formstate.New(dto.UpdateUserDTO{Username: "tech", Email: "tech@example.fr", IsStaff: true}),
	}, staffContext())
	assert.Contains(t, user, `value="tech@example.fr"`)
}

func TestRender_DashboardAndFAQ(t *testing.T) {
	r := newRenderer(t)

	out := render(t, r, "dashboard", &entities.Dashboard{
		TotalDemandes:     3,
		DemandesParStatut: map[string]int{constants.DemandeAcceptee: 2},
		DernieresDemandes: []entities.Demande{{ID: 9, Nom: "Roux", Status: constants.DemandeAcceptee}},
	}, staffContext())
	assert.Contains(t, out, "Acceptée : 2")
	assert.Contains(t, out, `href="/demandes/9"`)

	faq := render(t, r, "faq", []controllers.FAQEntry{{Question: "Q ?", Answer: "R."}}, nil)
	assert.Contains(t, faq, "<summary>Q ?</summary>")
}
