package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/grabr/internal/config"
	"github.com/handiism/grabr/internal/download"
	"github.com/handiism/grabr/internal/http"
	"github.com/handiism/grabr/internal/log"
	"github.com/handiism/grabr/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App describes one command-line tool.
type App struct {
	Name  string
	Short string
	Mode  config.Mode

	// Prompt is shown when --url is omitted.
	Prompt string

	// Run executes the pipeline for one page.
	Run func(ctx context.Context, m *download.Manager, pageURL string) (download.Summary, error)
}

// Images returns the grabr application.
func Images() App {
	return App{
		Name:   "grabr",
		Short:  "Download all images from a webpage",
		Mode:   config.ModeImages,
		Prompt: "Please enter the webpage URL:",
		Run: func(ctx context.Context, m *download.Manager, pageURL string) (download.Summary, error) {
			return m.RunImages(ctx, pageURL)
		},
	}
}

// Menu returns the menugrabr application.
func Menu() App {
	return App{
		Name:   "menugrabr",
		Short:  "Save the menu items (title, description, image) of a webpage",
		Mode:   config.ModeMenu,
		Prompt: "Please enter the menu page URL:",
		Run: func(ctx context.Context, m *download.Manager, pageURL string) (download.Summary, error) {
			return m.RunMenu(ctx, pageURL)
		},
	}
}

// NewCommand builds the root command of app.
//
// Settings are layered: defaults for the mode, then the file named by
// GRABR_CONFIG, then command-line flags.
func NewCommand(app App) *cobra.Command {
	var pageURL, outputDir string

	cmd := &cobra.Command{
		Use:   app.Name + " [--url <page>] [--output <dir>]",
		Short: app.Short,
		Long: app.Short + ".\n\nSettings are read from the JSON5 file named by the " +
			config.EnvConfigPath + " environment variable, if set. Flags take precedence.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadFromEnv(app.Mode)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			if cmd.Flags().Changed("output") {
				settings.OutputDir = outputDir
				if err := settings.Validate(); err != nil {
					return err
				}
			}

			logger, closer := log.New(settings.LogFile)
			defer closer.Close()
			defer logger.Sync()

			if pageURL == "" {
				pageURL, err = tui.Prompt(cmd.InOrStdin(), cmd.OutOrStdout(), app.Prompt)
				if err != nil {
					return fail(logger, err)
				}
			}

			summary, err := run(cmd.Context(), app, settings, logger, pageURL)
			if err != nil {
				return fail(logger, err)
			}

			logger.Debug("run finished",
				zap.String("url", pageURL),
				zap.Int("found", summary.Found),
				zap.Int("succeeded", summary.Succeeded),
				zap.Int("skipped", len(summary.Skipped)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "URL of the webpage (prompted for if omitted)")
	cmd.Flags().StringVar(&outputDir, "output", "./"+config.DefaultSettings(app.Mode).OutputDir, "Output directory")

	return cmd
}

func run(ctx context.Context, app App, settings *config.Settings, logger *zap.Logger, pageURL string) (download.Summary, error) {
	var view *tui.ProgressView
	if tui.IsTerminal(os.Stdout) {
		view = tui.NewProgressView(os.Stdout)
	}

	client := http.NewClient(settings.UserAgent, settings.Timeout())
	manager := download.NewManager(settings, client, func(event download.ProgressEvent) {
		if view != nil {
			view.Clear()
		}
		logEvent(logger, event)
	})
	if view != nil {
		manager.SetTransferCallback(view.Update)
	}

	logger.Debug("starting",
		zap.String("app", app.Name),
		zap.String("url", pageURL),
		zap.String("output", settings.OutputDir),
		zap.String("user_agent", client.UserAgent()),
	)
	return app.Run(ctx, manager, pageURL)
}

// loggedError marks an error that was already written to the log.
type loggedError struct {
	error
}

func (e loggedError) Unwrap() error {
	return e.error
}

func fail(logger *zap.Logger, err error) error {
	logger.Error("Program terminated with error", zap.Error(err))
	return loggedError{err}
}

// logEvent writes a progress event at the matching zap level.
func logEvent(logger *zap.Logger, event download.ProgressEvent) {
	switch event.Level {
	case download.LevelVerbose:
		logger.Debug(event.Message)
	case download.LevelWarning:
		logger.Warn(event.Message)
	case download.LevelError:
		logger.Error(event.Message)
	default:
		logger.Info(event.Message)
	}
}

// Execute runs app and exits with status 1 on error. SIGINT and SIGTERM
// cancel the run.
func Execute(app App) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCommand(app).ExecuteContext(ctx); err != nil {
		var logged loggedError
		if !errors.As(err, &logged) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
