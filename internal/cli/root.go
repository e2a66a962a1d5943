package cli

import (
	"github.com/alexanderramin/brdtrack/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "brdtrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath, dataDir, logLevel string

	root := &cobra.Command{
		Use:           "brdtrack",
		Short:         "BRD project tracker backed by an Excel workbook",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.Data.Dir = dataDir
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			app.Config = cfg
			if app.Bootstrap == nil {
				return nil
			}
			return app.Bootstrap(cfg)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./brdtrack.toml or $BRDTRACK_CONFIG)")
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the dataset, backups and journal")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")

	root.AddCommand(
		newServeCmd(app),
		newProjectCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newBackupCmd(app),
		newDashboardCmd(app),
		newTimelineCmd(app),
		newHistoryCmd(app),
	)
	return root
}
