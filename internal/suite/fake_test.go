package suite_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikesterific/parallel-instances/internal/browser"
	"github.com/mikesterific/parallel-instances/internal/models"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
)

// fakePage serves scripted statuses per URL. Unknown URLs answer 200.
type fakePage struct {
	mu          sync.Mutex
	statuses    map[string][]int
	gotoErr     error
	url         string
	title       string
	hiddenBody  bool
	resources   []models.ResourceTiming
	noResources bool
	timing      models.NavigationTiming
	visits      []string
	screenshots []string
	closed      bool
	opts        browser.PageOptions
}

func (p *fakePage) Goto(_ context.Context, url string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visits = append(p.visits, url)
	if p.gotoErr != nil {
		return 0, p.gotoErr
	}
	p.url = url
	scripted := p.statuses[url]
	if len(scripted) == 0 {
		return 200, nil
	}
	status := scripted[0]
	if len(scripted) > 1 {
		p.statuses[url] = scripted[1:]
	}
	return status, nil
}

func (p *fakePage) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *fakePage) Title(context.Context) (string, error) { return p.title, nil }

func (p *fakePage) BodyVisible(context.Context) (bool, error) { return !p.hiddenBody, nil }

func (p *fakePage) DocumentLoaded(context.Context) (bool, error) { return p.url != "", nil }

func (p *fakePage) Timing(context.Context) (models.NavigationTiming, error) { return p.timing, nil }

func (p *fakePage) Resources(context.Context) ([]models.ResourceTiming, error) {
	if p.noResources {
		return nil, fmt.Errorf("resource timing: %w", srvErrors.ErrUnsupported)
	}
	return p.resources, nil
}

func (p *fakePage) Screenshot(_ context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.screenshots = append(p.screenshots, path)
	return nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

type fakeDriver struct {
	mu    sync.Mutex
	pages []*fakePage
	setup func(p *fakePage)
}

func (d *fakeDriver) Name() string { return "fake" }

func (d *fakeDriver) NewPage(_ context.Context, opts browser.PageOptions) (browser.Page, error) {
	p := &fakePage{title: "Home", statuses: map[string][]int{}, opts: opts}
	if d.setup != nil {
		d.setup(p)
	}
	d.mu.Lock()
	d.pages = append(d.pages, p)
	d.mu.Unlock()
	return p, nil
}

func (d *fakeDriver) Close() error { return nil }

// instantSleeper records waits without sleeping.
type instantSleeper struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (s *instantSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waits = append(s.waits, d)
	return nil
}
