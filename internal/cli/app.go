package cli

import (
	"fmt"
	"os"

	"github.com/amterp/stacks/internal/controller"
	"github.com/amterp/stacks/internal/layout"
	"github.com/amterp/stacks/internal/logging"
	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/policy"
	"github.com/amterp/stacks/internal/prompt"
	"github.com/amterp/stacks/internal/store"
	"go.uber.org/zap"
)

// AppOptions carries the global flags into NewApp.
type AppOptions struct {
	Interactive bool
	Verbose     bool
}

// App holds all the dependencies for the CLI.
// Uses interfaces for testability.
type App struct {
	ConfigStore store.ConfigStore
	Config      *model.Config
	Policy      policy.Policy
	Renderer    *layout.Renderer
	Controller  *controller.Controller
	Prompter    prompt.Prompter
	Logger      *zap.Logger
}

// NewApp creates a new App with all dependencies wired up.
// If opts.Interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(opts AppOptions) (*App, error) {
	logger, err := logging.New(opts.Verbose)
	if err != nil {
		return nil, err
	}

	var prompter prompt.Prompter
	if opts.Interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	return newApp(store.NewConfigStore(), prompter, logger)
}

// newApp wires an App around an explicit store; tests use it with temp paths.
func newApp(cfgStore store.ConfigStore, prompter prompt.Prompter, logger *zap.Logger) (*App, error) {
	cfg, err := cfgStore.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", cfgStore.Path(), err)
	}

	pol := policy.FromConfig(cfg)
	if err := pol.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgStore.Path(), err)
	}

	renderer := layout.NewRenderer(pol)
	ctrl, err := controller.New(renderer, controller.LimitsFromConfig(cfg), cfg.DefaultNumber)
	if err != nil {
		return nil, fmt.Errorf("config %s: default_number: %w", cfgStore.Path(), err)
	}

	logger.Debug("Loaded config",
		zap.String("path", cfgStore.Path()),
		zap.Float64("base_cell_size", pol.BaseCellSize),
		zap.Int("default_number", cfg.DefaultNumber),
	)

	return &App{
		ConfigStore: cfgStore,
		Config:      cfg,
		Policy:      pol,
		Renderer:    renderer,
		Controller:  ctrl,
		Prompter:    prompter,
		Logger:      logger,
	}, nil
}

// Close flushes the logger.
func (a *App) Close() {
	_ = a.Logger.Sync()
}

// Fatal prints an error and exits.
func Fatal(err error) {
	PrintError("%v", err)
	os.Exit(1)
}
