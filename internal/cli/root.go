package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/listlist/internal/config"
	"github.com/idilsaglam/listlist/internal/importer"
	"github.com/idilsaglam/listlist/internal/liststore"
	"github.com/idilsaglam/listlist/internal/logging"
	"github.com/idilsaglam/listlist/internal/store"
	"github.com/idilsaglam/listlist/internal/store/jsonstore"
	"github.com/idilsaglam/listlist/internal/store/redisstore"
	"github.com/idilsaglam/listlist/internal/store/sqlitestore"
	"github.com/idilsaglam/listlist/internal/tui"
	"github.com/idilsaglam/listlist/internal/ui"
	"github.com/idilsaglam/listlist/internal/undo"
)

// App carries flag values and the lazily opened store for one invocation.
type App struct {
	ConfigPath string
	Backend    string
	DataDir    string
	Theme      string
	Import     string

	cfg      config.Config
	log      *slog.Logger
	closeLog func() error

	kv       store.KV
	list     *liststore.Store
	undoBuf  *undo.Buffer
	undoHook *store.Hook

	// Swapped out in tests.
	pick func(labels []string, prompt string) (int, error)
	copy func(string) error
}

func newApp() *App {
	return &App{
		log:      logging.Discard(),
		closeLog: func() error { return nil },
		pick:     fuzzyPick,
		copy:     clipboard.WriteAll,
	}
}

func NewRootCmd() *cobra.Command { return newRootCmd(newApp()) }

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "listlist",
		Short:         "List List: a checklist you can share as a link",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  listlist

  # Open a link someone shared with you
  listlist --import 'https://listlist.app/?import=TWFrZSB0...'

  # Scriptable commands
  listlist add "Buy milk"
  listlist ls
  listlist check 2
  listlist share --copy
`),
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}

	// Only reached when the command succeeded.
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.syncUndo(cmd.Context())
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config.yaml (default $LISTLIST_CONFIG or <data-dir>/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (file|sqlite|redis|memory)")
	cmd.PersistentFlags().StringVar(&app.DataDir, "data-dir", "", "Directory for the file and sqlite backends")
	cmd.PersistentFlags().StringVar(&app.Theme, "theme", "", "Color theme (classic|neon|mono)")
	cmd.Flags().StringVar(&app.Import, "import", "", "Share link or share string to import on start")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newClearCheckedCmd(app))
	cmd.AddCommand(newClearCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newUndoCmd(app))
	cmd.AddCommand(newShareCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newWatchCmd(app))

	return cmd
}

// setup resolves config (flags over env over file over defaults), the
// logger and the theme.
func (app *App) setup() error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	if app.Backend != "" {
		cfg.Backend = strings.ToLower(app.Backend)
	}
	if app.DataDir != "" {
		cfg.DataDir = app.DataDir
	}
	if app.Theme != "" {
		cfg.Theme = app.Theme
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	app.cfg = cfg

	log, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	app.log, app.closeLog = log, closeLog
	ui.SetTheme(cfg.Theme)
	return nil
}

// open connects the configured backend and loads the list and any undo
// snapshot left by a previous invocation.
func (app *App) open(ctx context.Context) (*liststore.Store, error) {
	if app.list != nil {
		return app.list, nil
	}
	kv, err := openKV(ctx, app.cfg)
	if err != nil {
		return nil, err
	}
	app.kv = kv

	app.undoHook = store.NewHook(kv, store.UndoKey)
	app.undoBuf = &undo.Buffer{}
	found, err := app.undoHook.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		snap, err := app.undoHook.Load(ctx)
		if err != nil {
			app.log.Warn("dropping unreadable undo snapshot", "err", err)
		} else {
			app.undoBuf.Capture(snap)
		}
	}

	list, err := liststore.Open(ctx, store.NewHook(kv, store.ListKey),
		liststore.WithLogger(app.log),
		liststore.WithUndo(app.undoBuf),
	)
	if err != nil {
		return nil, err
	}
	app.list = list
	app.log.Debug("store opened", "backend", app.cfg.Backend, "items", list.Len())
	return list, nil
}

func openKV(ctx context.Context, cfg config.Config) (store.KV, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return jsonstore.New(cfg.DataDir), nil
	case config.BackendSQLite:
		return sqlitestore.Open(ctx, cfg.SQLitePath())
	case config.BackendRedis:
		return redisstore.New(cfg.RedisURL, cfg.RedisPrefix)
	case config.BackendMemory:
		return store.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// syncUndo mirrors the in-memory undo snapshot to the backend, so the next
// invocation can still undo.
func (app *App) syncUndo(ctx context.Context) error {
	if app.undoBuf == nil {
		return nil
	}
	if snap, ok := app.undoBuf.Peek(); ok {
		return app.undoHook.Save(ctx, snap)
	}
	return app.undoHook.Clear(ctx)
}

func (app *App) close() {
	if app.kv != nil {
		if err := app.kv.Close(); err != nil {
			app.log.Warn("close store", "err", err)
		}
	}
	_ = app.closeLog()
}

func (app *App) shareLink() string {
	return app.list.ShareLink(app.cfg.ShareOrigin, app.cfg.SharePath)
}

func runTUI(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	list, err := app.open(ctx)
	if err != nil {
		return err
	}
	opt := tui.Options{
		Store:     list,
		ShareLink: app.shareLink,
		Copy:      app.copy,
		Log:       app.log,
	}
	if app.Import != "" {
		loc, err := importer.ParseLocation(app.Import)
		if err != nil {
			return usageError{err}
		}
		r := importer.New(list, loc, importer.WithLogger(app.log))
		if _, err := r.Check(ctx); err != nil {
			if r.State() != importer.Resolved {
				return err
			}
			app.log.Warn("import adopted but marker not cleared", "err", err)
		}
		opt.Reconciler = r
	}
	if err := tui.Run(ctx, opt); err != nil {
		return err
	}
	if opt.Reconciler != nil {
		return opt.Reconciler.ClearMarker()
	}
	return nil
}
