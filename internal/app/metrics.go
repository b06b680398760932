package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/keywarp/internal/input/mode"
	"github.com/dshills/keywarp/internal/platform"
)

// Metrics tracks session counts and durations for the life of a daemon.
type Metrics struct {
	mu     sync.Mutex
	byMode map[mode.Mode]uint64

	sessions  atomic.Uint64
	selected  atomic.Uint64
	cancelled atomic.Uint64
	failed    atomic.Uint64

	totalNs atomic.Int64
	minNs   atomic.Int64
	maxNs   atomic.Int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{byMode: make(map[mode.Mode]uint64)}
	// Initialize min to max int64 so the first session will be smaller
	m.minNs.Store(1<<63 - 1)
	return m
}

// RecordSession records one finished session.
func (m *Metrics) RecordSession(initial mode.Mode, d time.Duration, res mode.Result, err error) {
	m.sessions.Add(1)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		m.cancelled.Add(1)
	case err != nil:
		m.failed.Add(1)
	case res.Selected:
		m.selected.Add(1)
	}

	ns := d.Nanoseconds()
	m.totalNs.Add(ns)
	for {
		old := m.minNs.Load()
		if ns >= old || m.minNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.maxNs.Load()
		if ns <= old || m.maxNs.CompareAndSwap(old, ns) {
			break
		}
	}

	m.mu.Lock()
	m.byMode[initial]++
	m.mu.Unlock()
}

// MetricsSnapshot is a point-in-time copy of the metrics.
type MetricsSnapshot struct {
	Sessions  uint64
	Selected  uint64
	Cancelled uint64
	Failed    uint64

	MinDuration time.Duration
	MaxDuration time.Duration
	AvgDuration time.Duration

	ByMode map[string]uint64
}

// Snapshot returns the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Sessions:    m.sessions.Load(),
		Selected:    m.selected.Load(),
		Cancelled:   m.cancelled.Load(),
		Failed:      m.failed.Load(),
		MaxDuration: time.Duration(m.maxNs.Load()),
		ByMode:      make(map[string]uint64),
	}
	if s.Sessions > 0 {
		s.MinDuration = time.Duration(m.minNs.Load())
		s.AvgDuration = time.Duration(m.totalNs.Load() / int64(s.Sessions))
	}

	m.mu.Lock()
	for md, n := range m.byMode {
		s.ByMode[md.String()] = n
	}
	m.mu.Unlock()
	return s
}

// MarshalZerologObject writes the snapshot as log fields.
func (s MetricsSnapshot) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("sessions", s.Sessions).
		Uint64("selected", s.Selected).
		Uint64("cancelled", s.Cancelled).
		Uint64("failed", s.Failed).
		Dur("min", s.MinDuration).
		Dur("max", s.MaxDuration).
		Dur("avg", s.AvgDuration)
	d := zerolog.Dict()
	for name, n := range s.ByMode {
		d.Uint64(name, n)
	}
	e.Dict("modes", d)
}

// meteredRunner times sessions on the platform clock.
type meteredRunner struct {
	engine  *mode.Engine
	clock   platform.Clock
	metrics *Metrics
}

func (r meteredRunner) Run(ctx context.Context, initial mode.Mode, opts mode.Options) (mode.Result, error) {
	start := r.clock.Now()
	res, err := r.engine.Run(ctx, initial, opts)
	r.metrics.RecordSession(initial, r.clock.Now()-start, res, err)
	return res, err
}
