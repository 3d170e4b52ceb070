package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"linkdeck/internal/collection"
	"linkdeck/internal/format"
	"linkdeck/internal/logging"
	"linkdeck/internal/store"
	"linkdeck/internal/submit"
	"linkdeck/internal/tui"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	LogLevel   string
	LogFile    string

	logger *logging.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "linkdeck",
		Short:        "Curate an ordered list of links (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  linkdeck

  # Print the configured initial links
  linkdeck links --format markdown

  # Replay an event script and print the result
  printf 'append Go https://go.dev\nmove 2 0\n' | linkdeck run -
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.logger.Close()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("LINKDECK_CONFIG_DIR", ""), "Config dir (default: ~/.linkdeck)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("LINKDECK_FORMAT", "json"), "Output format (json|edn|markdown)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("LINKDECK_LOG_LEVEL", "warn"), "Log level (trace|debug|info|warn|error|disabled)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("LINKDECK_LOG_FILE", ""), "Append logs to this file instead of stderr")

	cmd.AddCommand(newLinksCmd(app))
	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newSubmissionsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// log returns the command logger, building it on first use. Logs go to
// --log-file when set and to stderr otherwise.
func (app *App) log(cmd *cobra.Command) (zerolog.Logger, error) {
	if app.logger != nil {
		return app.logger.Logger, nil
	}
	l, err := logging.New().
		FromWriter(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		FromPath(app.LogFile).
		Level(app.LogLevel).
		Make()
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("logger: %w", err)
	}
	app.logger = l
	return l.Logger, nil
}

// tuiLog never writes to the terminal; without a log file it discards.
func (app *App) tuiLog(cfg *store.Config) (zerolog.Logger, error) {
	path := app.LogFile
	if path == "" && cfg.TUI != nil {
		path = cfg.TUI.LogFile
	}
	l, err := logging.New().FromPath(path).Level(app.LogLevel).Make()
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("logger: %w", err)
	}
	app.logger = l
	return l.Logger, nil
}

func loadConfig(app *App) (*store.Config, store.Store, error) {
	s, err := store.Open(app.Dir)
	if err != nil {
		return nil, store.Store{}, err
	}
	app.Dir = s.Dir
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, s, fmt.Errorf("load %s: %w", s.ConfigPath(), err)
	}
	return cfg, s, nil
}

// openSinks builds the sinks a confirmed submission goes to: the log, plus the
// SQLite submission log unless disabled. The returned func releases them.
func openSinks(ctx context.Context, s store.Store, cfg *store.Config, log zerolog.Logger, extra ...submit.Sink) (submit.Sink, func() error, error) {
	sinks := submit.Multi{submit.LogSink{Logger: log}}
	closeFn := func() error { return nil }
	if path := s.SubmissionsPath(cfg); path != "" {
		if err := s.Ensure(); err != nil {
			return nil, nil, err
		}
		sl, err := store.OpenSubmissionLog(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, sl)
		closeFn = sl.Close
	}
	sinks = append(sinks, extra...)
	return sinks, closeFn, nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	cfg, s, err := loadConfig(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	log, err := app.tuiLog(cfg)
	if err != nil {
		return writeErr(cmd, err)
	}
	ctx := cmd.Context()
	sink, closeSinks, err := openSinks(ctx, s, cfg, log)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = closeSinks() }()

	initial := cfg.InitialLinks()
	opts := tui.Options{
		Store:   collection.New(initial, collection.WithLogger(log)),
		Sink:    sink,
		Initial: initial,
		NewLink: cfg.NewLinkTemplate(),
		Logger:  log,
		Glyphs:  cfg.Glyphs(),
	}
	if cfg.TUI != nil {
		opts.Theme = cfg.TUI.Theme
	}
	return tui.Run(ctx, opts)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func isMarkdown(app *App) bool {
	switch strings.ToLower(strings.TrimSpace(app.Format)) {
	case "md", "markdown":
		return true
	}
	return false
}

// writeOut wraps v in a {"data": ...} envelope for json/edn; markdown renders v itself.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	if isMarkdown(app) {
		return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
	}
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
