package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type countingCloser struct {
	calls atomic.Int32
	err   error
}

func (c *countingCloser) CloseExpiredRegistrations(context.Context) (int64, error) {
	c.calls.Add(1)
	return 2, c.err
}

func TestRegistrationDeadlineJob_Run(t *testing.T) {
	closer := &countingCloser{}
	job := NewRegistrationDeadlineJob(closer, "@every 1h")
	job.Run()
	if closer.calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", closer.calls.Load())
	}

	closer.err = errors.New("db down")
	job.Run()
	if closer.calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", closer.calls.Load())
	}
}

func TestRegistrationDeadlineJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewRegistrationDeadlineJob(&countingCloser{}, "every now and then")
	if err := job.Start(); err == nil {
		t.Fatal("expected invalid schedule error")
	}
}
