package main

import (
	"net/http"

	"github.com/myrjola/spoonmap/internal/catalog"
	"github.com/myrjola/spoonmap/internal/navigation"
)

type homeTemplateData struct {
	BaseTemplateData
	Shows []catalog.Show
}

type notFoundTemplateData struct {
	BaseTemplateData
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	v := app.visitor(r)
	v.navigate(navigation.State.Home)
	data := homeTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r, v),
		Shows:            app.catalog.Shows(),
	}
	app.render(w, r, http.StatusOK, "home", data)
}
