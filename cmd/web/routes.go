package main

import (
	"io/fs"
	"net/http"

	"github.com/justinas/alice"
	"github.com/myrjola/spoonmap/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /static/", cacheHeaders(http.StripPrefix("/static", http.FileServerFS(static))))
	mux.HandleFunc("GET /api/healthy", app.healthy)

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, app.signIn, commonContext)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("GET /shows/{showID}", session.ThenFunc(app.show))
	mux.Handle("GET /shows/{showID}/seasons/{season}", session.ThenFunc(app.seasonJump))
	mux.Handle("GET /chefs/{chefID}", session.ThenFunc(app.profile))
	mux.Handle("GET /back", session.ThenFunc(app.back))
	mux.Handle("GET /search", session.ThenFunc(app.search))
	mux.Handle("POST /trip/toggle", session.ThenFunc(app.tripToggle))
	mux.Handle("POST /trip/remove", session.ThenFunc(app.tripRemove))
	mux.Handle("POST /trip/panel", session.ThenFunc(app.tripPanel))
	mux.Handle("POST /spoilers/toggle", session.ThenFunc(app.spoilersToggle))
	mux.Handle("/", session.ThenFunc(app.notFound))

	common := alice.New(app.recoverPanic, app.logRequest, app.secureHeaders, timeout)
	return common.Then(mux)
}
