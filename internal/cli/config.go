package cli

import (
	"errors"
	"os"

	"linkdeck/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize config.json",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"dir":         s.Dir,
				"config":      s.ConfigPath(),
				"submissions": s.SubmissionsPath(nil),
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			newLink := cfg.NewLinkTemplate()
			return writeOut(cmd, app, map[string]any{
				"links":       cfg.InitialLinks(),
				"newLink":     newLink,
				"submissions": s.SubmissionsPath(cfg),
				"tui":         cfg.TUI,
			})
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config.json with the default links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(app.Dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := os.Stat(s.ConfigPath()); err == nil && !force {
				return writeErr(cmd, errors.New(s.ConfigPath()+" already exists (use --force to overwrite)"))
			}
			newLink := store.DefaultNewLink()
			cfg := &store.Config{
				Links:   store.DefaultLinks(),
				NewLink: &newLink,
			}
			if err := s.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"path": s.ConfigPath()})
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config.json")
	cmd.AddCommand(initCmd)
	return cmd
}
