// Package engine drives a generation run one step per tick, standing in for a
// game loop that yields between steps.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/talgya/hexgalaxy/internal/generation"
)

// Stepper is a resumable unit of work; *generation.Context satisfies it.
type Stepper interface {
	Step() error
	IsComplete() bool
	Phase() generation.Phase
	Progress() (done, total int)
}

// Engine steps a Stepper until it completes or is cancelled.
type Engine struct {
	Tick           uint64  // Steps taken by the last Run
	StepsPerSecond float64 // 0 = as fast as possible
	ProgressEvery  int     // Report progress every N steps; 0 disables

	// Callbacks, populated during setup.
	OnStep     func(tick uint64)
	OnPhase    func(from, to generation.Phase)
	OnProgress func(done, total int)

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewEngine creates an unthrottled engine reporting every thousand steps.
func NewEngine() *Engine {
	return &Engine{ProgressEvery: 1000}
}

// Run steps gen until it is complete. Cancelling ctx, or calling Stop,
// abandons the run and returns the context's error.
func (e *Engine) Run(ctx context.Context, gen Stepper) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()

	var limiter *rate.Limiter
	if e.StepsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(e.StepsPerSecond), 1)
	}

	e.Tick = 0
	start := time.Now()
	slog.Info("generation engine started", "phase", gen.Phase().String(), "steps_per_second", e.StepsPerSecond)

	for !gen.IsComplete() {
		if err := ctx.Err(); err != nil {
			slog.Info("generation engine stopped", "tick", e.Tick, "phase", gen.Phase().String())
			return err
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				return fmt.Errorf("pacing step %d: %w", e.Tick+1, err)
			}
		}

		before := gen.Phase()
		if err := gen.Step(); err != nil {
			return fmt.Errorf("step %d in phase %s: %w", e.Tick+1, before, err)
		}
		e.Tick++

		if e.OnStep != nil {
			e.OnStep(e.Tick)
		}
		if after := gen.Phase(); after != before {
			slog.Debug("generation phase changed", "from", before.String(), "to", after.String(), "tick", e.Tick)
			if e.OnPhase != nil {
				e.OnPhase(before, after)
			}
		}
		if e.ProgressEvery > 0 && e.Tick%uint64(e.ProgressEvery) == 0 {
			done, total := gen.Progress()
			slog.Info("generation progress", "progress", ProgressString(done, total))
			if e.OnProgress != nil {
				e.OnProgress(done, total)
			}
		}
	}

	slog.Info("generation engine finished",
		"steps", humanize.Comma(int64(e.Tick)),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// Stop cancels a Run in progress.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}

// ProgressString renders progress like "1,204 / 30,306 (3%)".
func ProgressString(done, total int) string {
	pct := 0
	if total > 0 {
		pct = done * 100 / total
	}
	return fmt.Sprintf("%s / %s (%d%%)", humanize.Comma(int64(done)), humanize.Comma(int64(total)), pct)
}
