package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"intime-cli/internal/config"
	"intime-cli/internal/format"
	"intime-cli/internal/logging"
	"intime-cli/internal/store"
	"intime-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Dir        string
	Backend    string
	ConfigPath string
	PrettyJSON bool
	Format     string

	now func() time.Time
	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{now: time.Now}

	cmd := &cobra.Command{
		Use:          "intime",
		Short:        "inTime: countdowns to the moments that matter (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  intime

  # Scriptable commands
  intime milestones list
  intime milestones add --title "Trip to Lisbon" --date 2026-09-14 --emoji ✈️ --category Travel

  # Ad-hoc arithmetic, nothing stored
  intime countdown 2027-01-01

  # Direct milestone lookup (shortcut for: intime milestones show <milestone-id>)
  intime birthday-milestone
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.log != nil {
			_ = app.log.Sync()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("INTIME_DIR", ""), "Path to the data dir for the sqlite/file backends (default: config dir)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("INTIME_BACKEND", ""), "Storage backend (sqlite|file|redis|memory)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("INTIME_CONFIG", ""), "Path to config.yaml (default: ~/.intime/config.yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("INTIME_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newOnboardingCmd(app))
	cmd.AddCommand(newBirthdayCmd(app))
	cmd.AddCommand(newMilestonesCmd(app))
	cmd.AddCommand(newCountdownCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newResetCmd(app))

	return cmd
}

func runTUI(ctx context.Context, app *App) error {
	cfg, err := loadConfig(app)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, app, cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return tui.Run(ctx, st, tui.Options{
		Profile: cfg.TUI.Profile,
		Log:     app.log,
	})
}

// loadConfig reads config.yaml and applies --dir/--backend on top.
func loadConfig(app *App) (*config.Config, error) {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(app.Backend) != "" {
		cfg.Backend = app.Backend
	}
	if strings.TrimSpace(app.Dir) != "" {
		cfg.Dir = app.Dir
	}
	return cfg, nil
}

func openLogger(app *App, cfg *config.Config) *zap.Logger {
	if app.log != nil {
		return app.log
	}
	path, err := cfg.LogPath()
	if err != nil {
		app.log = zap.NewNop()
		return app.log
	}
	l, err := logging.New(logging.Options{Level: cfg.Log.Level, Path: path})
	if err != nil {
		// A broken log setup should not block the command itself.
		fmt.Fprintf(os.Stderr, "intime: logging disabled: %v\n", err)
		l = zap.NewNop()
	}
	app.log = l
	return l
}

func kvOptions(cfg *config.Config) (store.KVOptions, error) {
	backend, err := store.ParseBackend(cfg.Backend)
	if err != nil {
		return store.KVOptions{}, err
	}
	dir, err := cfg.DataDir()
	if err != nil {
		return store.KVOptions{}, err
	}
	return store.KVOptions{
		Backend: backend,
		Dir:     dir,
		Redis: store.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		},
	}, nil
}

func openStore(ctx context.Context, app *App, cfg *config.Config) (*store.Store, error) {
	opts, err := kvOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := openLogger(app, cfg)
	kv, err := store.OpenKV(ctx, opts)
	if err != nil {
		log.Error("open store", zap.String("backend", string(opts.Backend)), zap.Error(err))
		return nil, fmt.Errorf("open %s store: %w", opts.Backend, err)
	}
	log.Debug("store opened", zap.String("backend", string(opts.Backend)), zap.String("dir", opts.Dir))
	return store.New(kv, log), nil
}

// loadStore is the common prologue for commands that touch stored data.
func loadStore(cmd *cobra.Command, app *App) (*store.Store, error) {
	cfg, err := loadConfig(app)
	if err != nil {
		return nil, err
	}
	return openStore(cmd.Context(), app, cfg)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
