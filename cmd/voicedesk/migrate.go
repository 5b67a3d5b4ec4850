package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/voicedesk/internal/infra/sqlite"
)

func migrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			db, err := sqlite.OpenMigrated(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			v, err := sqlite.MigrationVersion(db)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "database %s at schema version %d\n", cfg.Database.Path, v)
			return err
		},
	}
}
