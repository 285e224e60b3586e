// Package catalogcmd holds the commands working on catalog documents.
package catalogcmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/myrjola/spoonmap/internal/catalog"
	"github.com/myrjola/spoonmap/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var Group = &cobra.Group{ //nolint:gochecknoglobals // cobra groups are shared by the commands
	ID:    "catalog",
	Title: "Catalog",
}

// ErrInvalidCatalog is returned by validate when the catalog breaks an invariant.
var ErrInvalidCatalog = errors.NewSentinel("catalog has errors")

const catalogFlag = "catalog"

func addCatalogFlag(cmd *cobra.Command) {
	cmd.Flags().String(catalogFlag, "", "path to a catalog document, the bundled catalog is used when empty")
}

func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, err := cmd.Flags().GetString(catalogFlag)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog flag")
	}
	if path == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}
	return c, nil
}

// NewValidate creates the command that lists the problems of a catalog. It fails only on errors, warnings are
// printed.
func NewValidate() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: Group.ID,
		Short:   "Check a catalog document",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			problems := c.Validate()
			for _, problem := range problems {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), problem.String())
			}
			if catalog.HasErrors(problems) {
				return errors.Wrap(ErrInvalidCatalog, "validate", slog.Int("problems", len(problems)))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d shows, %d chefs, %d warnings\n",
				len(c.Shows()), len(c.Chefs()), len(problems))
			return nil
		},
	}
	addCatalogFlag(cmd)
	return cmd
}

// NewExport creates the command that writes the catalog as YAML or JSON.
func NewExport() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export",
		GroupID: Group.ID,
		Short:   "Print the catalog document",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				encoder := yaml.NewEncoder(out)
				encoder.SetIndent(2) //nolint:mnd // matches the bundled document
				if err = encoder.Encode(c); err != nil {
					return errors.Wrap(err, "encode yaml")
				}
				return errors.Wrap(encoder.Close(), "close yaml encoder")
			case "json":
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return errors.Wrap(encoder.Encode(c), "encode json")
			default:
				return errors.New("unsupported format", slog.String("format", format))
			}
		},
	}
	addCatalogFlag(cmd)
	cmd.Flags().String("format", "yaml", "output format: yaml or json")
	return cmd
}

// NewSearch creates the command that runs the chef search of the web header.
func NewSearch() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search <query>",
		GroupID: Group.ID,
		Short:   "Search chefs by name or moniker",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			for _, chef := range c.SearchChefs(args[0]) {
				line := fmt.Sprintf("%s\t%s\t%s", chef.ID, chef.DisplayName(), chef.Class)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(line, "\t"))
			}
			return nil
		},
	}
	addCatalogFlag(cmd)
	return cmd
}
