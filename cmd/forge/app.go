// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"forge-cli/internal/analyzer"
	"forge-cli/internal/config"
	"forge-cli/internal/issue"
	"forge-cli/internal/nested"
	"forge-cli/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

type (
	// SelectorFactory builds the prompt used for pending candidates.
	SelectorFactory func(cfg tui.Config) nested.MultiSelector

	// App wires CLI services and shared dependencies. Cobra handlers receive
	// an App and read configuration, logging and prompting through it.
	App struct {
		Config   config.Provider
		Selector SelectorFactory
		Fs       afero.Fs
		stdout   io.Writer
		stderr   io.Writer

		verbose    bool
		configPath string

		cfg     *config.Config
		cfgPath string
		cfgErr  error
		logger  *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   config.Provider
		Selector SelectorFactory
		Fs       afero.Fs
		Stdout   io.Writer
		Stderr   io.Writer
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:   deps.Config,
		Selector: deps.Selector,
		Fs:       deps.Fs,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Selector == nil {
		app.Selector = func(cfg tui.Config) nested.MultiSelector { return tui.NewMultiSelector(cfg) }
	}
	if app.Fs == nil {
		app.Fs = afero.NewOsFs()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	app.cfg = config.DefaultConfig()
	app.logger = newLogger(app.stderr, false)
	return app
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// loadConfig loads the configuration and builds the logger. A broken config file
// is reported and replaced by defaults so the config subcommands stay usable.
func (app *App) loadConfig(ctx context.Context) error {
	cfg, path, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: app.configPath})
	if err != nil {
		app.cfgErr = err
		cfg = config.DefaultConfig()
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, app.verbose))
	}
	app.cfg = cfg
	app.cfgPath = path
	app.logger = newLogger(app.stderr, app.verbose || cfg.UI.Verbose)
	app.logger.Debug("configuration loaded", "path", path, "extensions", cfg.Allowlist())
	return nil
}

func (app *App) newResolver() *nested.Resolver {
	return nested.NewResolver(
		analyzer.New(analyzer.WithLogger(app.logger)),
		nested.WithAllowlist(app.cfg.Allowlist()),
		nested.WithExtractor(nested.NewExtractor(app.Fs, string(app.cfg.TempDir))),
		nested.WithLogger(app.logger),
	)
}

func (app *App) tuiConfig() tui.Config {
	cfg := tui.DefaultConfig()
	cfg.Theme = app.cfg.UI.Theme
	cfg.Accessible = cfg.Accessible || app.cfg.UI.Accessible
	cfg.Output = app.stderr
	return cfg
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors include their suggestions; verbose mode adds the chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// glamourStyle picks the issue rendering style for w.
func glamourStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}
