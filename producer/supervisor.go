package producer

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Runner is a producer's tick loop, driven to completion or cancellation.
type Runner interface {
	Run(ctx context.Context) error
}

// Supervisor fans out a fixed set of producers under one cancellation
// context: the first hard failure cancels every other runner. This is the
// corpus's errgroup-shaped concurrent-task idiom, used in place of a bare
// thread list plus a polled boolean.
type Supervisor struct {
	runners []Runner
}

// NewSupervisor builds a Supervisor over the given producers.
func NewSupervisor(runners ...Runner) *Supervisor {
	return &Supervisor{runners: runners}
}

// Run starts every producer and blocks until all have returned or ctx is
// cancelled. It returns the first non-nil error from any runner.
func (s *Supervisor) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range s.runners {
		r := r
		g.Go(func() error {
			return r.Run(ctx)
		})
	}
	return g.Wait()
}
