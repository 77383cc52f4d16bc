package cli

import (
	"errors"
	"os"

	"intime-cli/internal/config"
	"intime-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize local storage and write config.yaml if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ConfigPath
			if path == "" {
				p, err := config.Path()
				if err != nil {
					return writeErr(cmd, err)
				}
				path = p
			}

			// Write the file before flag overrides so --dir/--backend stay one-off.
			created := false
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				base, err := config.Load(path)
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := config.Save(path, base); err != nil {
					return writeErr(cmd, err)
				}
				created = true
			}

			cfg, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			opts, err := kvOptions(cfg)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := openStore(cmd.Context(), app, cfg)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			data := map[string]any{
				"configPath":    path,
				"configCreated": created,
				"backend":       opts.Backend,
				"dir":           opts.Dir,
			}
			switch opts.Backend {
			case store.BackendSQLite:
				data["sqlitePath"] = store.SQLitePath(opts.Dir)
			case store.BackendRedis:
				data["redisAddr"] = opts.Redis.Addr
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}
	return cmd
}
