package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabview/internal/session"
)

func newShowCmd() *cobra.Command {
	var f interactionFlags
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Load a tab-delimited file and render it",
		Long: `Show loads a tab-delimited file, one row per line, and renders it in the
saved sort direction. Loading a file clears the saved selection.

Example:
  tabview show data.tsv
  tabview show data.tsv --reverse
  tabview show data.tsv --select 0 --select 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			err = runStep(cmd, e, session.DropFile{Path: args[0]}, &f)
			return closeEnv(e, err)
		},
	}
	f.register(cmd)
	return cmd
}
