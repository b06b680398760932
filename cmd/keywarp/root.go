package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/keywarp/internal/app"
	"github.com/dshills/keywarp/internal/input/mode"
	"github.com/dshills/keywarp/internal/platform/terminal"
	"github.com/dshills/keywarp/internal/xdg"
)

var errUsage = errors.New("usage")

// flags holds the session flags of the root command.
type flags struct {
	hint, hint2, grid, normal, screen, history, query bool

	oneshot    bool
	record     bool
	drag       bool
	foreground bool
	click      int
	move       string

	listKeys    bool
	listOptions bool
}

// modeFlags maps each mode flag to the session mode it starts.
func (f *flags) modeFlags() []struct {
	set  bool
	mode mode.Mode
} {
	return []struct {
		set  bool
		mode mode.Mode
	}{
		{f.hint, mode.Hint},
		{f.hint2, mode.Hint2},
		{f.grid, mode.Grid},
		{f.normal, mode.Normal},
		{f.screen, mode.Screen},
		{f.history, mode.History},
	}
}

// request builds the single session request the flags describe. ok is
// false when no session was requested and the daemon should run.
func (f *flags) request() (req app.Request, ok bool, err error) {
	req = app.Request{
		Oneshot: f.oneshot,
		Record:  f.record,
		Drag:    f.drag,
		Click:   f.click,
	}
	for _, m := range f.modeFlags() {
		if m.set {
			req.Mode = m.mode
			ok = true
		}
	}
	if f.move != "" {
		req.X, req.Y, err = parseMove(f.move)
		if err != nil {
			return req, false, err
		}
		req.Move = true
		ok = true
	}
	if f.click < 0 {
		return req, false, fmt.Errorf("%w: --click %d", errUsage, f.click)
	}
	if !ok && (f.oneshot || f.drag || f.click != 0) {
		return req, false, fmt.Errorf("%w: --oneshot, --drag and --click need a mode", errUsage)
	}
	return req, ok, nil
}

// parseMove parses the "x y" argument of --move.
func parseMove(s string) (x, y int, err error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: --move wants \"<x> <y>\", got %q", errUsage, s)
	}
	if x, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("%w: --move x: %v", errUsage, err)
	}
	if y, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: --move y: %v", errUsage, err)
	}
	return x, y, nil
}

// formatResult renders a session result for stdout: "x y", followed by
// the button that ended the session or the chosen hint label. Sessions
// that chose nothing print nothing.
func formatResult(res mode.Result) string {
	switch {
	case res.Button != 0:
		return fmt.Sprintf("%d %d %d\n", res.X, res.Y, res.Button)
	case !res.Selected:
		return ""
	case res.Label != "":
		return fmt.Sprintf("%d %d %s\n", res.X, res.Y, res.Label)
	default:
		return fmt.Sprintf("%d %d\n", res.X, res.Y)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "keywarp",
		Short: "Keyboard driven pointer control",
		Long: `keywarp moves, clicks and drags the pointer from the keyboard.

Without a mode flag it runs as a daemon and starts a session whenever an
activation key is pressed. With a mode flag it runs one session and
prints the final pointer position.`,
		Example: `  keywarp                      Run the daemon
  keywarp --hint --click 1     Pick a hint and left click it
  keywarp --move "100 200"     Move the pointer
  printf 'a 10 10\nb 50 50\n' | keywarp -q`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := app.LoadOptions(cmd.Flags())
			if err != nil {
				return err
			}

			switch {
			case f.listKeys:
				return listKeys(stdout)
			case f.listOptions:
				pattern, _ := cmd.Flags().GetString("filter")
				return listOptions(stdout, opts, pattern)
			}

			req, session, err := f.request()
			if err != nil {
				return err
			}
			if f.query && session {
				return fmt.Errorf("%w: --query cannot be combined with a mode", errUsage)
			}
			if f.query {
				if file, ok := stdin.(*os.File); ok && app.IsTerminal(file) {
					return fmt.Errorf("%w: --query reads hints from stdin, which is a terminal", errUsage)
				}
			}

			term, err := terminal.New(terminal.WithPointerColor("#ff4500"))
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			logOut, closeLog, err := logOutput(opts, stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			log := app.NewLogger(opts.LogConfig(logOut))
			opts.Output = stdout
			if err := term.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			application, err := app.New(opts, term, log)
			if err != nil {
				term.Shutdown()
				return err
			}

			ctx := cmd.Context()
			var res mode.Result
			switch {
			case f.query:
				res, err = application.Query(ctx, stdin)
			case session:
				res, err = application.RunOnce(ctx, req)
			default:
				err = application.RunDaemon(ctx)
			}
			term.Shutdown()
			if err != nil {
				return err
			}
			if f.query || session {
				_, err = io.WriteString(stdout, formatResult(res))
			}
			return err
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fs := cmd.Flags()
	app.RegisterFlags(cmd.PersistentFlags())
	fs.BoolVar(&f.hint, "hint", false, "run a hint session")
	fs.BoolVar(&f.hint2, "hint2", false, "run a two pass hint session")
	fs.BoolVar(&f.grid, "grid", false, "run a grid session")
	fs.BoolVar(&f.normal, "normal", false, "run a normal mode session")
	fs.BoolVar(&f.screen, "screen", false, "run a screen selection session")
	fs.BoolVar(&f.history, "history", false, "run a history session")
	fs.BoolVarP(&f.query, "query", "q", false, "select one of the \"label x y\" hints read from stdin")
	fs.BoolVar(&f.oneshot, "oneshot", false, "end the session after the first selection")
	fs.BoolVar(&f.record, "record", false, "save the selected position to the history file")
	fs.BoolVar(&f.drag, "drag", false, "hold the drag button for the whole session")
	fs.IntVar(&f.click, "click", 0, "click this button after the session")
	fs.StringVar(&f.move, "move", "", "move the pointer to \"<x> <y>\" and exit")
	fs.BoolVarP(&f.foreground, "foreground", "f", false, "run the daemon in the foreground (always the case)")
	fs.BoolVarP(&f.listKeys, "list-keys", "l", false, "print the valid key names")
	fs.BoolVar(&f.listOptions, "list-options", false, "print the config options and their values")
	fs.String("filter", "", "fuzzy filter for --list-options")
	cmd.MarkFlagsMutuallyExclusive("hint", "hint2", "grid", "normal", "screen", "history", "query", "move")
	cmd.MarkFlagsMutuallyExclusive("list-keys", "list-options")

	cmd.AddCommand(newPreviewCmd(stdout))
	return cmd
}

// logOutput picks the log destination. The terminal backend owns the
// screen, so a log that would land on it goes to the data directory
// instead.
func logOutput(opts app.Options, stderr io.Writer) (io.Writer, func(), error) {
	path := opts.LogFile
	if path == "" {
		file, ok := stderr.(*os.File)
		if !ok || !app.IsTerminal(file) {
			return stderr, func() {}, nil
		}
		dir, err := xdg.DataDir()
		if err != nil {
			return nil, nil, err
		}
		if err := xdg.Ensure(dir); err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, "keywarp.log")
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// quietLogger is used by commands that never touch the screen.
func quietLogger(opts app.Options, stderr io.Writer) zerolog.Logger {
	return app.NewLogger(opts.LogConfig(stderr))
}
