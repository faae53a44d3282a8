// Package views - серверный рендеринг страниц (html/template, шаблоны встроены в бинарник).
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"maintenance-portal/internal/dto"
	"maintenance-portal/pkg/constants"
	"maintenance-portal/pkg/middleware"
	"maintenance-portal/pkg/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page - то, что получает каждый шаблон: данные страницы и общий контекст.
type Page struct {
	Data    any
	Session *dto.SessionDTO
	Flash   string
	Path    string
}

func (p Page) LoggedIn() bool { return p.Session != nil }

func (p Page) IsStaff() bool { return p.Session != nil && p.Session.IsStaff }

// Renderer реализует echo.Renderer. Каждая страница - отдельный набор
// "layout + страница", чтобы блоки title/content не конфликтовали.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(name).Funcs(Funcs()).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("views: analyse de %s: %w", file, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("views: modèle inconnu %q", name)
	}

	page := Page{Data: data}
	if c != nil {
		page.Path = c.Request().URL.Path
		page.Flash = utils.PopFlash(c)
		if s, ok := c.Get(middleware.SessionKey).(*dto.SessionDTO); ok {
			page.Session = s
		}
	}
	return tmpl.ExecuteTemplate(w, "layout", page)
}

// Has - для тестов и проверки при старте.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"dateFR":             utils.FormatDateFR,
		"dateTimeFR":         utils.FormatDateTimeFR,
		"demandeStatus":      constants.DemandeStatusLabel,
		"interventionStatus": constants.InterventionStatusLabel,
		"containsInt": func(list []int, v int) bool {
			for _, x := range list {
				if x == v {
					return true
				}
			}
			return false
		},
		"add": func(a, b int) int { return a + b },
	}
}
