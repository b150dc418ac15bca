package visitor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/mikesterific/parallel-instances/pkg/instance"
)

const (
	DefaultRetries    = 3
	DefaultRetryDelay = 1000 * time.Millisecond
)

// ErrRetriesExhausted is reported by Result.Err when every attempt returned a
// failing status.
var ErrRetriesExhausted = errors.New("visit retries exhausted")

// PageLoader loads a URL and reports the main document status code.
// Status failures must not be returned as errors.
type PageLoader interface {
	Goto(ctx context.Context, url string) (int, error)
}

type PageLoaderFunc func(ctx context.Context, url string) (int, error)

func (f PageLoaderFunc) Goto(ctx context.Context, url string) (int, error) {
	return f(ctx, url)
}

type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// TimerSleeper waits on a real timer and returns early when ctx is done.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type options struct {
	retries    int
	retryDelay time.Duration
}

type Option func(*options)

// WithRetries sets the retry budget: the number of attempts after the first.
// Negative values are treated as zero.
func WithRetries(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.retries = n
	}
}

func WithRetryDelay(d time.Duration) Option {
	return func(o *options) {
		if d < 0 {
			d = 0
		}
		o.retryDelay = d
	}
}

type Result struct {
	URL       string
	Status    int
	Attempts  int
	Exhausted bool
}

func (r Result) OK() bool {
	return r.Status > 0 && r.Status < http.StatusBadRequest
}

// Err returns ErrRetriesExhausted when the retry budget ran out on a failing
// status and nil otherwise.
func (r Result) Err() error {
	if r.Exhausted {
		return fmt.Errorf("%w: %s answered %d after %d attempts", ErrRetriesExhausted, r.URL, r.Status, r.Attempts)
	}
	return nil
}

type Visitor struct {
	loader  PageLoader
	sleeper Sleeper
}

func New(loader PageLoader, sleeper Sleeper) *Visitor {
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}
	return &Visitor{loader: loader, sleeper: sleeper}
}

// VisitWithRetry loads path relative to baseURL. A status >= 400 is retried
// after a fixed delay until the retry budget is spent. Running out of retries
// is not an error; inspect Result.Exhausted or Result.Err.
func (v *Visitor) VisitWithRetry(ctx context.Context, baseURL, path string, opts ...Option) (Result, error) {
	o := options{retries: DefaultRetries, retryDelay: DefaultRetryDelay}
	for _, opt := range opts {
		opt(&o)
	}

	log := zap.S().Named("visitor")
	target := instance.JoinURL(baseURL, path)
	delay := backoff.NewConstantBackOff(o.retryDelay)
	result := Result{URL: target}

	for left := o.retries; ; left-- {
		status, err := v.loader.Goto(ctx, target)
		result.Attempts++
		if err != nil {
			return result, fmt.Errorf("failed to visit %s: %w", target, err)
		}
		result.Status = status

		if status < http.StatusBadRequest {
			return result, nil
		}
		if left <= 0 {
			result.Exhausted = true
			log.Debugw("retry budget exhausted", "url", target, "status", status, "attempts", result.Attempts)
			return result, nil
		}

		if err := v.sleeper.Sleep(ctx, delay.NextBackOff()); err != nil {
			return result, err
		}
		log.Infof("Retrying visit... (%d attempts left)", left)
	}
}
