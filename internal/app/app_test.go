package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dshills/keywarp/internal/daemon"
	"github.com/dshills/keywarp/internal/engine/hint"
	"github.com/dshills/keywarp/internal/engine/history"
	"github.com/dshills/keywarp/internal/input/key"
	"github.com/dshills/keywarp/internal/input/mode"
	"github.com/dshills/keywarp/internal/platform/fake"
)

type testEnv struct {
	ctx  context.Context
	p    *fake.Platform
	opts Options
}

func newTestEnv(t *testing.T, script func(*fake.Script)) *testEnv {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	s := fake.NewScript(key.USKeymap())
	if script != nil {
		script(s)
	}
	dir := t.TempDir()
	return &testEnv{
		ctx: ctx,
		p:   fake.New(fake.WithScript(s.Steps()), fake.WithPointer(500, 500), fake.WithIdleCancel(20, cancel)),
		opts: Options{
			ConfigPath:  filepath.Join(dir, "config"),
			HistoryPath: filepath.Join(dir, "history"),
			LockDir:     filepath.Join(dir, "run"),
		},
	}
}

func (e *testEnv) newApp(t *testing.T) *Application {
	t.Helper()
	app, err := New(e.opts, e.p, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app
}

func TestNewWithoutConfigFile(t *testing.T) {
	env := newTestEnv(t, nil)
	app := env.newApp(t)

	if app.Registry() == nil {
		t.Fatal("expected registry to be initialized")
	}
	if app.Engine() == nil {
		t.Fatal("expected engine to be initialized")
	}
	if got := app.History().Path(); got != env.opts.HistoryPath {
		t.Errorf("history path = %q, want %q", got, env.opts.HistoryPath)
	}
	if app.IsRunning() {
		t.Error("expected IsRunning() to be false before RunDaemon()")
	}
}

func TestNewInvalidConfig(t *testing.T) {
	env := newTestEnv(t, nil)
	if err := os.WriteFile(env.opts.ConfigPath, []byte("speed: fast\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := New(env.opts, env.p, zerolog.Nop())
	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected InitError, got %v", err)
	}
	if initErr.Component != "config" {
		t.Errorf("component = %q, want config", initErr.Component)
	}
}

func TestRunOnceMoveAndClick(t *testing.T) {
	env := newTestEnv(t, nil)
	app := env.newApp(t)

	res, err := app.RunOnce(env.ctx, Request{Move: true, X: 100, Y: 200, Click: 1, Record: true})
	if err != nil {
		t.Fatalf("RunOnce() failed: %v", err)
	}
	if res.X != 100 || res.Y != 200 || res.Button != 1 {
		t.Errorf("result = %+v", res)
	}
	if !slices.Equal(env.p.Clicks, []int{1}) {
		t.Errorf("clicks = %v", env.p.Clicks)
	}

	entries, err := app.History().Entries()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(entries, []history.Position{{X: 100, Y: 200}}) {
		t.Errorf("history = %v", entries)
	}
}

func TestRunOnceDrag(t *testing.T) {
	env := newTestEnv(t, func(s *fake.Script) { s.Tap("esc") })
	app := env.newApp(t)

	if _, err := app.RunOnce(env.ctx, Request{Mode: mode.Normal, Drag: true}); err != nil {
		t.Fatalf("RunOnce() failed: %v", err)
	}
	down := slices.Index(env.p.Log, "down 1")
	up := slices.Index(env.p.Log, "up 1")
	if down < 0 || up < down {
		t.Errorf("log = %v", env.p.Log)
	}
}

func TestRunOnceCancelled(t *testing.T) {
	env := newTestEnv(t, nil)
	app := env.newApp(t)

	_, err := app.RunOnce(env.ctx, Request{Mode: mode.Normal})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Target != "normal" {
		t.Errorf("expected OperationError for normal, got %v", err)
	}
}

func TestQuery(t *testing.T) {
	env := newTestEnv(t, func(s *fake.Script) { s.Tap("b") })
	app := env.newApp(t)

	res, err := app.Query(env.ctx, strings.NewReader("a 100 100\nb 700 300\n"))
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if res.Label != "b" || res.X != 700 || res.Y != 300 || !res.Selected {
		t.Errorf("result = %+v", res)
	}
}

func TestQueryRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"malformed", "a 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			app := env.newApp(t)

			_, err := app.Query(env.ctx, strings.NewReader(tt.input))
			if !errors.Is(err, hint.ErrBadSpec) {
				t.Errorf("expected ErrBadSpec, got %v", err)
			}
		})
	}
}

func TestRunDaemon(t *testing.T) {
	env := newTestEnv(t, func(s *fake.Script) { s.Tap("A-M-c", "esc") })
	app := env.newApp(t)

	if err := app.RunDaemon(env.ctx); err != nil {
		t.Fatalf("RunDaemon() failed: %v", err)
	}

	snap := app.Metrics().Snapshot()
	if snap.Sessions != 1 || snap.ByMode["normal"] != 1 {
		t.Errorf("metrics = %+v", snap)
	}
	if _, err := os.Stat(daemon.LockPath(env.opts.LockDir)); !os.IsNotExist(err) {
		t.Errorf("expected lock file to be removed, stat err = %v", err)
	}
	if app.IsRunning() {
		t.Error("expected IsRunning() to be false after RunDaemon()")
	}
}

func TestRunDaemonSecondInstance(t *testing.T) {
	env := newTestEnv(t, nil)
	app := env.newApp(t)

	if err := os.MkdirAll(env.opts.LockDir, 0o700); err != nil {
		t.Fatal(err)
	}
	lock, err := daemon.AcquireLock(daemon.LockPath(env.opts.LockDir))
	if err != nil {
		t.Fatal(err)
	}
	defer lock.Release()

	err = app.RunDaemon(env.ctx)
	if !errors.Is(err, daemon.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}
