// Package cli defines the cobra command tree for property-service.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	flagDriver     string
	flagSQLitePath string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "property-service",
		Short:         "Property catalog and inquiry API",
		Long:          "Serves the property catalog, buyer inquiries and the admin API. Also seeds demo listings and creates admin accounts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagDriver, "driver", "", "storage driver (postgres|sqlite|mongo), overrides DB_DRIVER")
	root.PersistentFlags().StringVar(&flagSQLitePath, "sqlite-path", "", "SQLite database file, overrides SQLITE_PATH")

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
		newAdminCmd(),
	)

	return root
}
