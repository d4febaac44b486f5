package producer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mmcho/nmea-ecdis-sim/producer"
)

type stubRunner struct {
	err            error
	blockUntilDone bool
	started        chan struct{}
}

func (s *stubRunner) Run(ctx context.Context) error {
	if s.started != nil {
		close(s.started)
	}
	if s.blockUntilDone {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.err
}

func TestSupervisor_ReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	failing := &stubRunner{err: boom}
	blocking := &stubRunner{blockUntilDone: true, started: make(chan struct{})}

	sup := producer.NewSupervisor(failing, blocking)

	err := sup.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSupervisor_CancelsRemainingOnFailure(t *testing.T) {
	boom := errors.New("boom")
	failing := &stubRunner{err: boom}
	started := make(chan struct{})
	blocking := &stubRunner{blockUntilDone: true, started: started}

	sup := producer.NewSupervisor(blocking, failing)

	done := make(chan error, 1)
	go func() { done <- sup.Run(context.Background()) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not cancel remaining runners after a failure")
	}
}
