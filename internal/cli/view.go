package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tabview/internal/session"
)

func newSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Toggle the saved sort direction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			e.sess.Step(context.Background(), session.ToggleSort{})

			order := "ascending"
			if e.sess.View().Reversed() {
				order = "descending"
			}
			fmt.Fprintln(cmd.OutOrStdout(), "order:", order)
			return closeEnv(e, nil)
		},
	}
}

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the saved view state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(e.sess.View().Persisted())
			if err != nil {
				return fmt.Errorf("marshal view: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", e.store.Path(), data)
			return nil
		},
	}
}
