// Package tokencmd issues the sign-in tokens accepted by the web server.
package tokencmd

import (
	"fmt"

	"github.com/myrjola/spoonmap/internal/errors"
	"github.com/myrjola/spoonmap/internal/identity"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{ //nolint:gochecknoglobals // cobra groups are shared by the commands
	ID:    "token",
	Title: "Identity",
}

// NewIssue creates the command that signs a token with SPOONMAP_TOKEN_SECRET. Set the token as
// SPOONMAP_INITIAL_AUTH_TOKEN to sign visitors in as the subject.
func NewIssue(lookupEnv func(string) (string, bool)) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issue-token <subject>",
		GroupID: Group.ID,
		Short:   "Issue a sign-in token",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, _ := lookupEnv("SPOONMAP_TOKEN_SECRET")
			name, _ := cmd.Flags().GetString("name")
			token, err := identity.IssueToken(secret, args[0], name)
			if err != nil {
				return errors.Wrap(err, "issue token")
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().String("name", "", "display name of the signed in user")
	return cmd
}
