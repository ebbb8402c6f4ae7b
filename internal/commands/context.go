package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/store"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// contextKey is used to store appContext in context.Context.
type contextKey struct{}

// appContext holds the resolved configuration and collaborators shared by
// subcommands.
type appContext struct {
	Config *config.Config
	// ConfigPath is the explicit --config path or the default location.
	ConfigPath string
	Logger hclog.Logger
	Repo   *store.Repository
	env    *environment
}

func fromCommand(cmd *cobra.Command) *appContext {
	if ctx := cmd.Context(); ctx != nil {
		if app, ok := ctx.Value(contextKey{}).(*appContext); ok {
			return app
		}
	}
	return nil
}

func requireFromCommand(cmd *cobra.Command) (*appContext, error) {
	app := fromCommand(cmd)
	if app == nil {
		return nil, errors.New("formbuilder context not loaded")
	}
	return app, nil
}

// newSession returns a builder session that reports notifications on the
// command's streams.
func (a *appContext) newSession(cmd *cobra.Command) *session.Session {
	return session.New(a.Repo,
		session.WithLogger(a.Logger.Named("session")),
		session.WithNotifier(commandNotifier(cmd)),
	)
}

func commandNotifier(cmd *cobra.Command) session.Notifier {
	return session.NotifierFunc(func(level session.Level, message string) {
		switch level {
		case session.LevelError, session.LevelWarning:
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), message)
		default:
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)
		}
	})
}

type globalFlags struct {
	configPath string
	storeDir   string
	logLevel   string
}

// load resolves configuration, applies flag overrides and wires the store.
func load(cmd *cobra.Command, env *environment, flags *globalFlags) error {
	cfg, err := config.Resolve(env.fs, flags.configPath, env.getenv)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flags.storeDir != "" {
		cfg.StoreDir = config.ExpandHome(flags.storeDir, env.getenv("HOME"))
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(*cfg, cmd.ErrOrStderr())
	blobs := store.NewFileBlobStore(env.fs, cfg.StoreDir)
	repo := store.NewRepository(blobs,
		store.WithKey(cfg.BlobKey),
		store.WithLogger(logger.Named("store")),
	)
	logger.Debug("configuration loaded", "store_dir", cfg.StoreDir, "blob_key", cfg.BlobKey)

	configPath := flags.configPath
	if configPath == "" {
		configPath = filepath.Join(config.ExpandHome(config.DefaultStoreDir, env.getenv("HOME")), config.ConfigFileName)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	cmd.SetContext(context.WithValue(parent, contextKey{}, &appContext{
		Config:     cfg,
		ConfigPath: config.ExpandHome(configPath, env.getenv("HOME")),
		Logger:     logger,
		Repo:       repo,
		env:        env,
	}))
	return nil
}
