package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dtop/internal/errors"
	"dtop/internal/update"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Download and install the latest dtop release",
	Long: `Check GitHub for a newer dtop release and, if one exists, download
and install it in place of the running binary.

Examples:
  dtop update`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u := update.NewGitHubUpdater()
		latest, err := u.Check(version)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrTransport,
				"Failed to check for updates", "Check your network connection and try again")
		}
		if latest == "" {
			fmt.Printf("dtop %s is already the latest version\n", formatVersion(version))
			return nil
		}

		fmt.Printf("Updating dtop %s -> %s\n", formatVersion(version), formatVersion(latest))
		if err := u.Apply(latest); err != nil {
			return err
		}
		fmt.Println("Update complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
