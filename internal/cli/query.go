package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabview/internal/session"
	"github.com/mesh-intelligence/tabview/pkg/types"
)

func newQueryCmd() *cobra.Command {
	var (
		f      interactionFlags
		driver string
		dsn    string
	)
	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a query against a relational source and render the result",
		Long: `Query runs a statement against the configured relational source and
renders the result. Integer, real, text, blob and NULL columns are shown;
blobs and NULLs appear as <blob> and <null>.

Drivers: sqlite, mysql, pgx, postgres.

Example:
  tabview query --dsn ./app.db "SELECT id, name FROM users"
  tabview query --driver pgx --dsn postgres://localhost/app "SELECT 1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("driver") {
				e.cfg.Driver = driver
			}
			if cmd.Flags().Changed("dsn") {
				e.cfg.DSN = dsn
			}
			if !types.KnownDriver(e.cfg.Driver) {
				return closeEnv(e, fmt.Errorf("%w %q (valid: sqlite, mysql, pgx, postgres)", types.ErrDriverUnknown, e.cfg.Driver))
			}

			load := session.RunQuery{Driver: e.cfg.Driver, DSN: e.cfg.DSN, Query: args[0]}
			err = runStep(cmd, e, load, &f)
			return closeEnv(e, err)
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "", "relational driver (default from config)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "data source name (default from config)")
	f.register(cmd)
	return cmd
}
