package main

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/myrjola/spoonmap/internal/errors"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	app.logger.LogAttrs(r.Context(), slog.LevelDebug, http.StatusText(status),
		slog.String("method", r.Method), slog.String("uri", r.URL.RequestURI()))
	http.Error(w, http.StatusText(status), status)
}

// notFound renders the not found page. Navigation state is left as it was.
func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	v := app.visitor(r)
	data := notFoundTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r, v),
	}
	app.render(w, r, http.StatusNotFound, "notfound", data)
}

// redirectBack sends the browser to the return_to form field after a form submission. Only local paths are
// accepted, anything else redirects home.
func (app *application) redirectBack(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, safeReturnPath(r.PostFormValue("return_to")), http.StatusSeeOther)
}

func safeReturnPath(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, `/\`) {
		return "/"
	}
	return path
}
