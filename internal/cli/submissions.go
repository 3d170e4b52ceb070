package cli

import (
	"errors"

	"linkdeck/internal/store"

	"github.com/spf13/cobra"
)

func newSubmissionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "submissions",
		Aliases: []string{"subs"},
		Short:   "Inspect submitted snapshots",
	}
	cmd.AddCommand(newSubmissionsListCmd(app))
	cmd.AddCommand(newSubmissionsShowCmd(app))
	return cmd
}

func openSubmissionLog(cmd *cobra.Command, app *App) (*store.SubmissionLog, error) {
	cfg, s, err := loadConfig(app)
	if err != nil {
		return nil, err
	}
	path := s.SubmissionsPath(cfg)
	if path == "" {
		return nil, errors.New("submission log is disabled in config")
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return store.OpenSubmissionLog(cmd.Context(), path)
}

func newSubmissionsListCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sl, err := openSubmissionLog(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sl.Close()
			subs, err := sl.List(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, subs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of submissions (0 = all)")
	return cmd
}

func newSubmissionsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <submission-id>",
		Short: "Show one submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sl, err := openSubmissionLog(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sl.Close()
			sub, err := sl.Get(cmd.Context(), args[0])
			if errors.Is(err, store.ErrSubmissionNotFound) {
				return writeErr(cmd, errNotFound("submission", args[0]))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, sub)
		},
	}
}
