package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"linkdeck/internal/collection"
	"linkdeck/internal/script"
	"linkdeck/internal/submit"

	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	var (
		submitAtEnd bool
		withIDs     bool
		showSteps   bool
		echo        bool
	)
	cmd := &cobra.Command{
		Use:   "run [file|-]",
		Short: "Apply an event script to the configured links and print the result",
		Long: strings.TrimSpace(`
Reads one event per line (from a file, or stdin when the argument is "-" or
omitted) and applies them in order to a collection seeded from config.json:

  append [title] [url]        prepend [title] [url]      insert <i> [title] [url]
  remove <i>                  move <from> <to>           swap <i> <j>
  replace [title url]...      update <i> field=value...  set links.<i>.<field> <value>
  drag-start <i>              candidate <id|#i>...       drag-end
  submit

Out-of-range indexes are no-ops. Submissions go to the log and the
submission database unless disabled in config.
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			var r io.Reader = cmd.InOrStdin()
			if src != "-" {
				f, err := os.Open(src)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				r = f
			}
			events, err := script.Parse(r)
			if err != nil {
				return writeErr(cmd, err)
			}

			cfg, s, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			log, err := app.log(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			var extra []submit.Sink
			if echo {
				extra = append(extra, submit.WriterSink{W: cmd.ErrOrStderr(), Format: app.Format, Pretty: app.PrettyJSON})
			}
			ctx := cmd.Context()
			sink, closeSinks, err := openSinks(ctx, s, cfg, log, extra...)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = closeSinks() }()

			coll := collection.New(cfg.InitialLinks(), collection.WithLogger(log))
			runner := script.NewRunner(coll, sink, cfg.NewLinkTemplate(), log)
			defer runner.Close()

			steps, runErr := runner.Run(ctx, events)
			if runErr == nil && submitAtEnd {
				if _, err := submit.Submit(ctx, coll, sink); err != nil {
					runErr = err
				}
			}

			var out any = snapshotOf(coll, withIDs)
			if showSteps {
				if isMarkdown(app) {
					return writeErr(cmd, errors.New("--steps is not available with markdown output"))
				}
				out = map[string]any{"links": out, "steps": steps}
			}
			if err := writeOut(cmd, app, out); err != nil {
				return writeErr(cmd, err)
			}
			if runErr != nil {
				return writeErr(cmd, fmt.Errorf("run %s: %w", src, runErr))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&submitAtEnd, "submit", false, "Submit the final collection after the script")
	cmd.Flags().BoolVar(&withIDs, "ids", false, "Include record ids in the output")
	cmd.Flags().BoolVar(&showSteps, "steps", false, "Also print what each event did")
	cmd.Flags().BoolVar(&echo, "echo", false, "Echo each submitted snapshot to stderr")
	return cmd
}
