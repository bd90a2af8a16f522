package commands

import (
	"github.com/spf13/cobra"
)

var (
	// dbPath is the path to the SQLite database.
	dbPath string
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "nowhere",
	Short: "Query the nowhere OSINT investigation store",
	Long: `nowhere is a read-only client over the nowhered daemon's SQLite
database. Use it to list claims under investigation and inspect the
artifacts gathered for each one.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&dbPath, "db", "./nowhere.db",
		"Path to the SQLite database written by nowhered",
	)

	rootCmd.AddCommand(claimsCmd)
	rootCmd.AddCommand(artifactsCmd)
}
