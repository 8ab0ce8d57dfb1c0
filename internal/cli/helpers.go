package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabview/internal/logging"
	"github.com/mesh-intelligence/tabview/internal/render"
	"github.com/mesh-intelligence/tabview/internal/session"
	"github.com/mesh-intelligence/tabview/internal/state"
	"github.com/mesh-intelligence/tabview/pkg/types"
)

// env is what every session command needs: resolved config, a logger and a
// session restored from the state file.
type env struct {
	cfg   types.Config
	log   *logrus.Logger
	store *state.FileStore
	sess  *session.Session
}

// openEnv resolves configuration and restores a session. The caller must
// call closeEnv to checkpoint.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logging.Setup(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	store := state.NewFileStore(cfg.StateFile)
	sess := session.New(store, log.WithField("state_file", cfg.StateFile))
	return &env{cfg: cfg, log: log, store: store, sess: sess}, nil
}

// closeEnv checkpoints the session. A checkpoint failure is returned only
// when the command itself succeeded.
func closeEnv(e *env, cmdErr error) error {
	if err := e.sess.Close(); err != nil {
		if cmdErr == nil {
			return err
		}
		e.log.WithError(err).Error("checkpoint failed")
	}
	return cmdErr
}

// interactionFlags are the per-step interactions shared by show and query.
type interactionFlags struct {
	reverse      bool
	selects      []int
	selectedOnly bool
}

func (f *interactionFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.reverse, "reverse", false, "toggle the sort direction before rendering")
	cmd.Flags().IntSliceVar(&f.selects, "select", nil, "toggle selection of displayed row N (repeatable, 0-based)")
	cmd.Flags().BoolVar(&f.selectedOnly, "selected-only", false, "render only selected rows")
}

// events turns the flags into the session events that follow a load.
func (f *interactionFlags) events() []session.Event {
	var evs []session.Event
	if f.reverse {
		evs = append(evs, session.ToggleSort{})
	}
	for _, logical := range f.selects {
		evs = append(evs, session.ClickRow{Logical: logical})
	}
	return evs
}

// runStep loads through load, applies the interactions and renders. A
// failed load renders nothing.
func runStep(cmd *cobra.Command, e *env, load session.Event, f *interactionFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// A failed load is printed once, by Execute.
	res := e.sess.Step(ctx, load)
	if !res.Loaded {
		return res.Err()
	}
	fmt.Fprintln(cmd.ErrOrStderr(), res.Message)

	step := e.sess.Step(ctx, f.events()...)
	opts := render.Options{
		Plain:        usePlain(e.cfg, cmd.OutOrStdout()),
		SelectedOnly: f.selectedOnly,
	}
	if err := render.Render(cmd.OutOrStdout(), e.sess.Frame(), opts); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return step.Err()
}

// usePlain decides between grid and tab-separated output. Flags win; then
// config; otherwise a grid is drawn only for terminals.
func usePlain(cfg types.Config, out io.Writer) bool {
	if flags.grid {
		return false
	}
	if cfg.Plain {
		return true
	}
	f, ok := out.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}
