package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/myrjola/spoonmap/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultDocument []byte

var (
	ErrInvalidCoordinate = errors.NewSentinel("coordinates must be a [lat, lng] pair")
	ErrDecode            = errors.NewSentinel("decode catalog document")
)

// document is the on-disk shape of a catalog.
type document struct {
	Shows []Show `yaml:"shows" json:"shows"`
	Chefs []Chef `yaml:"chefs" json:"chefs"`
}

// Parse decodes a YAML catalog document. Unknown fields are rejected so that typos in hand-authored data surface.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.Join(ErrDecode, err), "yaml decode")
	}
	return New(doc.Shows, doc.Chefs), nil
}

// Load reads and parses the catalog document at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog", slog.String("path", path))
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse catalog", slog.String("path", path))
	}
	return c, nil
}

// Default returns the catalog bundled with the application.
func Default() *Catalog {
	c, err := Parse(defaultDocument)
	if err != nil {
		// The bundled document is covered by tests.
		panic(err)
	}
	return c
}

// MarshalYAML encodes the catalog in the same document format [Parse] reads.
func (c *Catalog) MarshalYAML() (any, error) {
	return document{Shows: c.shows, Chefs: c.chefs}, nil
}

// MarshalJSON encodes the catalog as a JSON document with the same field names as the YAML format.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	out, err := json.Marshal(document{Shows: c.shows, Chefs: c.chefs})
	if err != nil {
		return nil, errors.Wrap(err, "json encode catalog")
	}
	return out, nil
}
