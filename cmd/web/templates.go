package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/myrjola/spoonmap/internal/catalog"
	"github.com/myrjola/spoonmap/internal/contexthelpers"
	"github.com/myrjola/spoonmap/internal/errors"
	"github.com/myrjola/spoonmap/internal/itinerary"
	"github.com/myrjola/spoonmap/internal/navigation"
	"github.com/myrjola/spoonmap/internal/spoiler"
	"github.com/myrjola/spoonmap/internal/ssr"
	"github.com/myrjola/spoonmap/ui"
)

// BaseTemplateData is needed by the layout shared by every page: header search, spoiler toggle and trip sidebar.
type BaseTemplateData struct {
	CurrentPath    string
	View           navigation.View
	Search         searchTemplateData
	SpoilersHidden bool
	Trip           itinerary.Itinerary
	Stylesheets    []string
	Scripts        []string
	SignedInUserID string
}

func (app *application) newBaseTemplateData(r *http.Request, v *visitor) BaseTemplateData {
	ctx := r.Context()
	return BaseTemplateData{
		CurrentPath:    contexthelpers.CurrentPath(ctx),
		View:           v.navigation.Get().View,
		Search:         app.newSearchTemplateData(v),
		SpoilersHidden: v.spoilers.Get().Hidden(),
		Trip:           v.trip.Get(),
		Stylesheets:    app.mapHead.Stylesheets(),
		Scripts:        app.mapHead.Scripts(),
		SignedInUserID: contexthelpers.SignedInUserID(ctx),
	}
}

// chefCard is a chef in a roster or in the search results.
type chefCard struct {
	ID    string
	Name  string
	Image string
	Class catalog.ChefClass
	Rank  spoiler.Badge
}

func newChefCard(chef catalog.Chef, spoilers spoiler.State) chefCard {
	return chefCard{
		ID:    chef.ID,
		Name:  chef.DisplayName(),
		Image: chef.Image,
		Class: chef.Class,
		Rank:  spoilers.RankBadge(chef.Rank),
	}
}

// classVariant maps a chef class to its tag style, e.g. "Black Spoon" to "black-spoon". Unknown classes get the
// generic style.
func classVariant(class catalog.ChefClass) string {
	switch class {
	case catalog.ClassBlackSpoon, catalog.ClassWhiteSpoon, catalog.ClassJudge, catalog.ClassIronChef:
		return strings.ReplaceAll(strings.ToLower(string(class)), " ", "-")
	default:
		return "generic"
	}
}

var templateFuncs = template.FuncMap{ //nolint:gochecknoglobals // shared by all page templates
	// nonce and csrf are overridden per request in render.
	"nonce": func() template.HTMLAttr {
		panic("not implemented")
	},
	"csrf": func() template.HTML {
		panic("not implemented")
	},
	"classVariant": classVariant,
}

// parseTemplates parses one template set per directory in ui/templates/pages. Each set includes the base layout and
// the partials and must define a template named "page".
func parseTemplates() (map[string]*template.Template, error) {
	pages, err := fs.ReadDir(ui.Files, "templates/pages")
	if err != nil {
		return nil, errors.Wrap(err, "read page directories")
	}
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		if !page.IsDir() {
			continue
		}
		name := page.Name()
		var t *template.Template
		if t, err = template.New(name).Funcs(templateFuncs).ParseFS(ui.Files,
			"templates/base.gohtml",
			"templates/partials/*.gohtml",
			fmt.Sprintf("templates/pages/%s/*.gohtml", name),
		); err != nil {
			return nil, errors.Wrap(err, "parse page template", slog.String("page", name))
		}
		templates[name] = t
	}
	return templates, nil
}

// render writes the full page document.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	app.renderTemplate(w, r, status, page, "base", false, data)
}

// renderPartial writes the named template of page without the layout, for htmx requests.
func (app *application) renderPartial(w http.ResponseWriter, r *http.Request, page, name string, data any) {
	app.renderTemplate(w, r, http.StatusOK, page, name, true, data)
}

func (app *application) renderTemplate(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	page, name string,
	fragment bool,
	data any,
) {
	cached, ok := app.templates[page]
	if !ok {
		app.serverError(w, r, errors.New("page template not found", slog.String("page", page)))
		return
	}
	t, err := cached.Clone()
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "clone template", slog.String("page", page)))
		return
	}

	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=%q", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf(`<input type="hidden" name="csrf_token" value=%q/>`, contexthelpers.CSRFToken(ctx))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // the nonce is generated by the server
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // the token is generated by the server
		},
	})

	rendered := new(bytes.Buffer)
	if err = t.ExecuteTemplate(rendered, name, data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template", slog.String("page", page), slog.String("name", name)))
		return
	}
	expanded := new(bytes.Buffer)
	if err = ssr.Expand(expanded, rendered, fragment); err != nil {
		app.serverError(w, r, errors.Wrap(err, "expand custom elements", slog.String("page", page)))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = expanded.WriteTo(w)
}
