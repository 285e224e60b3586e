package main

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status string `json:"status"`
	Shows  int    `json:"shows"`
	Chefs  int    `json:"chefs"`
}

// healthy reports that the server is up together with the size of the loaded catalog.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status: "ok",
		Shows:  len(app.catalog.Shows()),
		Chefs:  len(app.catalog.Chefs()),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		app.serverError(w, r, err)
	}
}
