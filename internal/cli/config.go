package cli

import (
	"intime-cli/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration (file + env + flags)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			path := app.ConfigPath
			if path == "" {
				if p, err := config.Path(); err == nil {
					path = p
				}
			}
			dataDir, _ := cfg.DataDir()
			logPath, _ := cfg.LogPath()

			out := *cfg
			if out.Redis.Password != "" {
				out.Redis.Password = "********"
			}
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{
					"path":    path,
					"dataDir": dataDir,
					"logFile": logPath,
				},
			})
		},
	}
}
