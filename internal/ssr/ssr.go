// Package ssr expands the custom elements used in page templates into plain HTML with the matching CSS classes.
//
// Templates write <button-primary> or <spoon-tag variant="black-spoon"> and the rendered document ships <button
// class="btn btn-primary"> and <span class="tag tag-black-spoon">. An existing element opts in with
// as="button-primary".
package ssr

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/spoonmap/internal/errors"
	"golang.org/x/net/html"
)

// Component is what a custom element expands to.
type Component struct {
	// Element is the HTML element name.
	Element string
	// Class is added to the element. A variant attribute adds Class + "-" + variant on top.
	Class string
}

// Components are the custom elements understood by Expand.
var Components = map[string]Component{ //nolint:gochecknoglobals // read-only registry
	"button-primary": {Element: "button", Class: "btn btn-primary"},
	"button-ghost":   {Element: "button", Class: "btn btn-ghost"},
	"spoon-tag":      {Element: "span", Class: "tag"},
	"rank-badge":     {Element: "span", Class: "badge"},
}

// Expand reads a HTML document from reader, expands the custom elements and writes the result to writer. When
// fragment is true, only the children of body are written, which suits htmx partials.
func Expand(writer io.Writer, reader io.Reader, fragment bool) error {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return errors.Wrap(err, "parse html")
	}

	for name, component := range Components {
		doc.Find(name).Each(func(_ int, s *goquery.Selection) {
			decorate(s, component)
			s.Nodes[0].Data = component.Element
		})
		doc.Find(`[as="` + name + `"]`).Each(func(_ int, s *goquery.Selection) {
			s.RemoveAttr("as")
			decorate(s, component)
		})
	}

	if !fragment {
		if err = html.Render(writer, doc.Nodes[0]); err != nil {
			return errors.Wrap(err, "render html")
		}
		return nil
	}
	body := doc.Find("body")
	if len(body.Nodes) == 0 {
		return nil
	}
	for c := body.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if err = html.Render(writer, c); err != nil {
			return errors.Wrap(err, "render html fragment")
		}
	}
	return nil
}

func decorate(s *goquery.Selection, component Component) {
	s.AddClass(component.Class)
	if variant, ok := s.Attr("variant"); ok {
		s.RemoveAttr("variant")
		variant = strings.TrimSpace(variant)
		if variant != "" {
			base := strings.Fields(component.Class)[0]
			s.AddClass(base + "-" + variant)
		}
	}
}
