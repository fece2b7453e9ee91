package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var logJSON bool

var rootCmd = &cobra.Command{
	Use:     "pa_backend",
	Short:   "Building plan approval backend",
	Long:    `pa_backend routes building plans through the review chain, keeps the audit trail and notifies the people involved.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(logJSON))
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", true, "Emit JSON logs (text otherwise)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(transitionsCmd)
	rootCmd.AddCommand(createUserCmd)
}

func newLogger(json bool) *slog.Logger {
	if json {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
