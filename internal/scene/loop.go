package scene

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/time/rate"
)

// Pacer blocks until the next frame is due. *rate.Limiter satisfies it.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewPacer paces frames at fps; fps <= 0 runs unthrottled.
func NewPacer(fps int) *rate.Limiter {
	if fps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(fps), 1)
}

// Loop calls a frame function once per pacer tick until stopped, the pacer
// fails, or the frame function returns an error.
type Loop struct {
	pacer Pacer
	frame func(ctx context.Context) error

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func NewLoop(p Pacer, frame func(ctx context.Context) error) *Loop {
	return &Loop{pacer: p, frame: frame}
}

// Run blocks until ctx is cancelled or a frame fails. A cancelled context
// ends the loop with ErrStopped.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return ErrStopped
		}
		if err := l.pacer.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return ErrStopped
			}
			return err
		}
		if err := l.frame(ctx); err != nil {
			return err
		}
	}
}

// Start runs the loop on its own goroutine. Calling Start on a running loop
// does nothing.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.cancel = cancel
	l.done = done
	l.err = nil

	go func() {
		defer close(done)
		err := l.Run(ctx)
		l.mu.Lock()
		l.err = err
		l.mu.Unlock()
	}()
}

// Stop cancels a started loop and waits for the running frame to finish.
// It returns the error that ended the loop, nil for a plain stop.
func (l *Loop) Stop() error {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.mu.Unlock()
	if done == nil {
		return nil
	}
	cancel()
	<-done

	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.err
	l.cancel, l.done = nil, nil
	if errors.Is(err, ErrStopped) {
		return nil
	}
	return err
}

// Done is closed when a started loop exits.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}
