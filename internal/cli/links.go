package cli

import (
	"linkdeck/internal/collection"
	"linkdeck/internal/model"

	"github.com/spf13/cobra"
)

func newLinksCmd(app *App) *cobra.Command {
	var withIDs bool
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Print the configured initial links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s := collection.New(cfg.InitialLinks())
			return writeOut(cmd, app, snapshotOf(s, withIDs))
		},
	}
	cmd.Flags().BoolVar(&withIDs, "ids", false, "Include record ids")
	return cmd
}

func snapshotOf(s *collection.Store, withIDs bool) any {
	if withIDs {
		return s.Links()
	}
	if out := s.Snapshot(); out != nil {
		return out
	}
	return []model.LinkValues{}
}
