package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/mikesterific/parallel-instances/internal/config"
	"github.com/mikesterific/parallel-instances/internal/models"
	"github.com/mikesterific/parallel-instances/pkg/visitor"
)

const launchAttempts = 3

// Page is a single browser tab bound to one instance. Goto reports the main
// document status and only fails on transport errors, so a Page is usable
// as a visitor.PageLoader.
type Page interface {
	visitor.PageLoader

	URL() string
	Title(ctx context.Context) (string, error)
	BodyVisible(ctx context.Context) (bool, error)
	DocumentLoaded(ctx context.Context) (bool, error)
	Timing(ctx context.Context) (models.NavigationTiming, error)
	Resources(ctx context.Context) ([]models.ResourceTiming, error)
	Screenshot(ctx context.Context, path string) error
	Close() error
}

type Driver interface {
	Name() string
	NewPage(ctx context.Context, opts PageOptions) (Page, error)
	Close() error
}

type PageOptions struct {
	CommandTimeout  time.Duration
	PageLoadTimeout time.Duration
	// VideoDir enables recording into the folder when the driver supports it.
	VideoDir string
	// OnPageError receives uncaught page exceptions. They never fail a test.
	OnPageError func(err error)
}

func (o PageOptions) pageError(err error) {
	if o.OnPageError != nil {
		o.OnPageError(err)
	}
}

// Open starts the configured driver. Browser launches are retried with an
// exponential backoff since the first start may still be downloading or
// unpacking the browser.
func Open(ctx context.Context, cfg config.Browser) (Driver, error) {
	log := zap.S().Named("browser")

	var launch func() (Driver, error)
	switch cfg.Driver {
	case config.DriverPlaywright:
		launch = func() (Driver, error) {
			d, err := newPlaywrightDriver(cfg.Headless)
			if err != nil {
				return nil, err
			}
			return d, nil
		}
	case config.DriverRod:
		launch = func() (Driver, error) {
			d, err := newRodDriver(cfg.Headless)
			if err != nil {
				return nil, err
			}
			return d, nil
		}
	case config.DriverHTTP:
		return NewHTTPDriver(nil), nil
	default:
		return nil, fmt.Errorf("unknown browser driver %q", cfg.Driver)
	}

	d, err := backoff.Retry(ctx, launch,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(launchAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warnw("browser launch failed, retrying", "driver", cfg.Driver, "error", err, "next", next)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s driver: %w", cfg.Driver, err)
	}

	log.Infow("browser launched", "driver", d.Name(), "headless", cfg.Headless)
	return d, nil
}

func millis(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
