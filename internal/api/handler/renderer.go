package handler

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/rachitkhandelwal41/hospital-portal/internal/api/middleware"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/navigation"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded portal templates.
type Renderer struct {
	t *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{t: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

// pageData is the view model shared by every template. Navbar fields are
// read from the live session store at render time, so a mutation is visible
// on the very next page without any refresh step.
type pageData struct {
	Title         string
	Authenticated bool
	UserName      string
	Role          domain.Role
	DashboardPath string

	Error   string
	Success string

	Departments []domain.Department
	Form        any
}

// newPageData snapshots the session-derived navbar state for one render.
func newPageData(c echo.Context, title string) pageData {
	data := pageData{Title: title}
	st := middleware.SessionFromContext(c)
	if st == nil {
		return data
	}
	data.Authenticated = st.Authenticated()
	data.UserName = st.UserName()
	data.Role = st.Role()
	data.DashboardPath = navigation.DefaultRouteFor(st.Role())
	return data
}
