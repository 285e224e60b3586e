package main

import (
	"testing"

	"github.com/myrjola/spoonmap/internal/catalog"
	"github.com/myrjola/spoonmap/internal/navigation"
	"github.com/stretchr/testify/assert"
)

func TestSafeReturnPath(t *testing.T) {
	tests := map[string]string{
		"/chefs/edward-lee":   "/chefs/edward-lee",
		"/shows/ccw?season=2": "/shows/ccw?season=2",
		"":                    "/",
		"https://example.com": "/",
		"//example.com":       "/",
		`/\example.com`:       "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeReturnPath(in), in)
	}
}

func TestClassVariant(t *testing.T) {
	assert.Equal(t, "black-spoon", classVariant(catalog.ClassBlackSpoon))
	assert.Equal(t, "iron-chef", classVariant(catalog.ClassIronChef))
	assert.Equal(t, "generic", classVariant("Guest Star"))
}

func TestViewPath(t *testing.T) {
	assert.Equal(t, "/", viewPath(navigation.Initial()))
	assert.Equal(t, "/shows/iron-chef?season=1",
		viewPath(navigation.State{View: navigation.ViewShow, ShowID: "iron-chef", Season: 1, ChefID: ""}))
	assert.Equal(t, "/chefs/edward-lee",
		viewPath(navigation.State{View: navigation.ViewProfile, ShowID: "", Season: 0, ChefID: "edward-lee"}))
}
