package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/spoonmap/cmd/cli/catalogcmd"
	"github.com/myrjola/spoonmap/cmd/cli/tokencmd"
	"github.com/myrjola/spoonmap/internal/errors"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "spoonmap-cli",
		Long:          `Command line utilities for Spoonmap https://github.com/myrjola/spoonmap`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddGroup(catalogcmd.Group, tokencmd.Group)
	rootCmd.AddCommand(catalogcmd.NewValidate(), catalogcmd.NewExport(), catalogcmd.NewSearch())
	rootCmd.AddCommand(tokencmd.NewIssue(os.LookupEnv))
	return rootCmd
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
