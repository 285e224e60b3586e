package catalogcmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/myrjola/spoonmap/cmd/cli/catalogcmd"
	"github.com/myrjola/spoonmap/internal/catalog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "spoonmap-cli", SilenceUsage: true, SilenceErrors: true}
	root.AddGroup(catalogcmd.Group)
	root.AddCommand(cmd)
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(append([]string{cmd.Name()}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeCatalog(t *testing.T, document string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))
	return path
}

func TestValidate(t *testing.T) {
	t.Run("bundled catalog", func(t *testing.T) {
		out, err := execute(t, catalogcmd.NewValidate())
		require.NoError(t, err)
		assert.Contains(t, out, "2 shows, 8 chefs")
	})

	t.Run("unresolved roster id", func(t *testing.T) {
		path := writeCatalog(t, `
shows:
  - id: ccw
    title: Culinary Class Wars
    seasons:
      - number: 1
        chefs: [edward-lee, ghost]
chefs:
  - id: edward-lee
    real_name: Edward Lee
    class: White Spoon
`)
		out, err := execute(t, catalogcmd.NewValidate(), "--catalog", path)
		require.NoError(t, err)
		assert.Contains(t, out, "warning:")
		assert.Contains(t, out, "ghost")
	})

	t.Run("duplicate chef id", func(t *testing.T) {
		path := writeCatalog(t, `
chefs:
  - id: edward-lee
    real_name: Edward Lee
  - id: edward-lee
    real_name: Edward Lee
`)
		out, err := execute(t, catalogcmd.NewValidate(), "--catalog", path)
		require.ErrorIs(t, err, catalogcmd.ErrInvalidCatalog)
		assert.Contains(t, out, "error:")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, catalogcmd.NewValidate(), "--catalog", filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestExport(t *testing.T) {
	t.Run("yaml round trips", func(t *testing.T) {
		out, err := execute(t, catalogcmd.NewExport())
		require.NoError(t, err)
		c, err := catalog.Parse([]byte(out))
		require.NoError(t, err)
		assert.Equal(t, catalog.Default().Chefs(), c.Chefs())
		assert.Equal(t, catalog.Default().Shows(), c.Shows())
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, catalogcmd.NewExport(), "--format", "json")
		require.NoError(t, err)
		var doc struct {
			Shows []catalog.Show `json:"shows"`
			Chefs []catalog.Chef `json:"chefs"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Len(t, doc.Shows, 2)
		assert.Equal(t, catalog.Default().Chefs(), doc.Chefs)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, catalogcmd.NewExport(), "--format", "toml")
		require.Error(t, err)
	})
}

func TestSearch(t *testing.T) {
	out, err := execute(t, catalogcmd.NewSearch(), "STONE")
	require.NoError(t, err)
	assert.Equal(t, "curtis-stone\tIron Chef Stone\tIron Chef\n", out)

	out, err = execute(t, catalogcmd.NewSearch(), "   ")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))

	_, err = execute(t, catalogcmd.NewSearch())
	require.Error(t, err, "the query is required")
}
