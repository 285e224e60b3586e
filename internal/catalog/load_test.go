package catalog_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/myrjola/spoonmap/internal/catalog"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	c := catalog.Default()
	require.Len(t, c.Shows(), 2)
	require.Len(t, c.Chefs(), 8)
	require.False(t, catalog.HasErrors(c.Validate()), "bundled catalog is valid: %v", c.Validate())

	chef, ok := c.FindChef("napoli-matfia")
	require.True(t, ok)
	restaurant, ok := chef.Restaurant("v1")
	require.True(t, ok)
	require.Equal(t, &catalog.Coordinate{Lat: 37.5326, Lng: 126.99}, restaurant.Coords)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name: "minimal",
			doc:  "shows: []\nchefs:\n  - id: a\n    real_name: A\n    restaurants:\n      - name: R\n",
		},
		{
			name:    "unknown field",
			doc:     "shows: []\nchefs:\n  - id: a\n    nickname: A\n",
			wantErr: catalog.ErrDecode,
		},
		{
			name:    "coordinate with three values",
			doc:     "chefs:\n  - id: a\n    restaurants:\n      - name: R\n        coords: [1, 2, 3]\n",
			wantErr: catalog.ErrInvalidCoordinate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.doc))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoad_roundTripsExport(t *testing.T) {
	c := catalog.Default()
	out, err := yaml.Marshal(c)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o600))
	loaded, err := catalog.Load(path)
	require.NoError(t, err)
	require.Equal(t, c.Shows(), loaded.Shows())
	require.Equal(t, c.Chefs(), loaded.Chefs())

	_, err = catalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestCatalog_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(catalog.Default())
	require.NoError(t, err)
	var doc struct {
		Shows []map[string]any `json:"shows"`
		Chefs []map[string]any `json:"chefs"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	require.Len(t, doc.Shows, 2)
	require.Equal(t, "napoli-matfia", doc.Chefs[0]["id"])
}

func TestCatalog_Validate(t *testing.T) {
	c := catalog.New(
		[]catalog.Show{
			{ID: "s", Seasons: []catalog.Season{{Number: 1, Chefs: []string{"ghost"}}, {Number: 1}}},
			{ID: "s"},
		},
		[]catalog.Chef{
			{ID: "a", Restaurants: []catalog.Restaurant{{Name: "R"}, {Name: "R"}},
				Appearances: []catalog.Appearance{{ShowID: "unknown", Season: 1}}},
		},
	)
	problems := c.Validate()
	require.True(t, catalog.HasErrors(problems))

	var messages []string
	for _, p := range problems {
		messages = append(messages, p.String())
	}
	require.Contains(t, messages, `error: duplicate show id "s"`)
	require.Contains(t, messages, `error: show "s" has duplicate season 1`)
	require.Contains(t, messages, `error: chef "a" has duplicate restaurant uid "R"`)
	require.Contains(t, messages, `warning: show "s" season 1 lists unknown chef "ghost"`)
	require.Contains(t, messages, `warning: chef "a" appears in unknown show "unknown"`)
}
