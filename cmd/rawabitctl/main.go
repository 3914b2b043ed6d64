// Command rawabitctl runs schema and data maintenance against the Rawabit database.
package main

import (
	"log"

	"rawabit/internal/config"
	"rawabit/internal/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:           "rawabitctl",
		Short:         "Maintenance tool for the Rawabit database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadConfig()
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			database.Close()
		},
	}
)

func main() {
	rootCmd.AddCommand(newMigrateCmd(), newSeedCmd())
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// connect opens the database without touching the schema.
func connect() (*gorm.DB, error) {
	return database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
}
