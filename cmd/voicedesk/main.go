// voicedesk serves todo, reminder and calendar tools to a voice assistant.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/voicedesk/internal/infra/config"
	"github.com/matiasleandrokruk/voicedesk/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries what every subcommand needs: the --config flag and the writers.
type app struct {
	configPath string
	out        io.Writer
	errOut     io.Writer
}

func (a *app) loadConfig() (config.Config, error) {
	path := a.configPath
	if path == "" {
		path = os.Getenv("VOICEDESK_CONFIG")
	}
	return config.Load(path)
}

func run(args []string, out, errOut io.Writer) int {
	root := newRootCmd(&app{out: out, errOut: errOut})
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(errOut, "error:", err) //nolint:errcheck
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           version.Name,
		Short:         "Voice assistant tool-call backend for todos, reminders and calendar entries",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(version.String() + "\n")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file (env: VOICEDESK_CONFIG)")

	root.AddCommand(serveCmd(a))
	root.AddCommand(migrateCmd(a))
	root.AddCommand(checkCmd(a))
	root.AddCommand(tokenCmd(a))
	root.AddCommand(hashSecretCmd(a))
	root.AddCommand(versionCmd(a))
	return root
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(a.out, version.String())
			return err
		},
	}
}
