package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/voicedesk/internal/infra/sqlite"
)

var errDatabaseMissing = errors.New("database file not found")

var (
	colorTitle = color.New(color.Bold)
	colorTable = color.New(color.FgCyan, color.Bold)
	colorFaint = color.New(color.Faint)
	colorOK    = color.New(color.FgGreen)
	colorWarn  = color.New(color.FgYellow)
)

func checkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Show tables, columns and row counts of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			return checkDatabase(cmd, a.out, cfg.Database.Path)
		},
	}
}

func checkDatabase(cmd *cobra.Command, out io.Writer, path string) error {
	if path != sqlite.MemoryPath {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%w: %s", errDatabaseMissing, path)
		}
	}
	db, err := sqlite.NewDB(path)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	v, err := sqlite.MigrationVersion(db)
	if err != nil {
		return err
	}
	available, err := sqlite.Available()
	if err != nil {
		return err
	}
	tables, err := sqlite.Inspect(cmd.Context(), db)
	if err != nil {
		return err
	}

	colorTitle.Fprintf(out, "Database %s\n", path) //nolint:errcheck
	latest := 0
	if n := len(available); n > 0 {
		latest = available[n-1].Version
	}
	if v >= latest {
		colorOK.Fprintf(out, "schema version %d (up to date)\n", v) //nolint:errcheck
	} else {
		colorWarn.Fprintf(out, "schema version %d, %d available; run `voicedesk migrate`\n", v, latest) //nolint:errcheck
	}

	for _, t := range tables {
		fmt.Fprintln(out)                               //nolint:errcheck
		colorTable.Fprintf(out, "%s", t.Name)           //nolint:errcheck
		colorFaint.Fprintf(out, " (%d rows)\n", t.Rows) //nolint:errcheck
		for _, c := range t.Columns {
			flags := ""
			if c.PrimaryKey {
				flags += " PK"
			}
			if c.NotNull {
				flags += " NOT NULL"
			}
			fmt.Fprintf(out, "  %-16s %s", c.Name, c.Type) //nolint:errcheck
			colorFaint.Fprintln(out, flags)                //nolint:errcheck
		}
	}
	return nil
}
