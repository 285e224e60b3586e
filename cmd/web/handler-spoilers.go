package main

import (
	"net/http"

	"github.com/myrjola/spoonmap/internal/spoiler"
)

func (app *application) spoilersToggle(w http.ResponseWriter, r *http.Request) {
	v := app.visitor(r)
	v.spoilers.Dispatch(spoiler.State.Toggle)
	app.redirectBack(w, r)
}
