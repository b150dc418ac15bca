package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/mikesterific/parallel-instances/internal/config"
	"github.com/mikesterific/parallel-instances/internal/models"
)

type playwrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func newPlaywrightDriver(headless bool) (*playwrightDriver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	return &playwrightDriver{pw: pw, browser: browser}, nil
}

func (d *playwrightDriver) Name() string { return config.DriverPlaywright }

// NewPage opens a fresh browser context per page so that every instance gets
// its own cookies, storage and video file.
func (d *playwrightDriver) NewPage(_ context.Context, opts PageOptions) (Page, error) {
	ctxOpts := playwright.BrowserNewContextOptions{}
	if opts.VideoDir != "" {
		ctxOpts.RecordVideo = &playwright.RecordVideo{Dir: opts.VideoDir}
	}

	bctx, err := d.browser.NewContext(ctxOpts)
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	if opts.CommandTimeout > 0 {
		bctx.SetDefaultTimeout(millis(opts.CommandTimeout))
	}
	if opts.PageLoadTimeout > 0 {
		bctx.SetDefaultNavigationTimeout(millis(opts.PageLoadTimeout))
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	page.OnPageError(opts.pageError)

	return &playwrightPage{bctx: bctx, page: page, opts: opts}, nil
}

func (d *playwrightDriver) Close() error {
	var errs []error
	if err := d.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
	}
	if err := d.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
	}
	return errors.Join(errs...)
}

type playwrightPage struct {
	bctx playwright.BrowserContext
	page playwright.Page
	opts PageOptions
}

func (p *playwrightPage) Goto(ctx context.Context, url string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	gotoOpts := playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateLoad}
	if p.opts.PageLoadTimeout > 0 {
		gotoOpts.Timeout = playwright.Float(millis(p.opts.PageLoadTimeout))
	}

	resp, err := p.page.Goto(url, gotoOpts)
	if err != nil {
		return 0, err
	}
	// same document navigations (hash changes) have no response
	if resp == nil {
		return 200, nil
	}
	return resp.Status(), nil
}

func (p *playwrightPage) URL() string {
	return p.page.URL()
}

func (p *playwrightPage) Title(_ context.Context) (string, error) {
	return p.page.Title()
}

func (p *playwrightPage) BodyVisible(_ context.Context) (bool, error) {
	return p.page.Locator("body").IsVisible()
}

func (p *playwrightPage) DocumentLoaded(_ context.Context) (bool, error) {
	v, err := p.page.Evaluate(documentLoadedScript)
	if err != nil {
		return false, err
	}
	loaded, _ := v.(bool)
	return loaded, nil
}

func (p *playwrightPage) Timing(_ context.Context) (models.NavigationTiming, error) {
	raw, err := p.evalString(navigationTimingScript)
	if err != nil {
		return models.NavigationTiming{}, err
	}
	return decodeNavigationTiming(raw)
}

func (p *playwrightPage) Resources(_ context.Context) ([]models.ResourceTiming, error) {
	raw, err := p.evalString(resourceTimingScript)
	if err != nil {
		return nil, err
	}
	return decodeResourceTiming(raw)
}

func (p *playwrightPage) Screenshot(_ context.Context, path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func (p *playwrightPage) Close() error {
	var errs []error
	if err := p.page.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close page: %w", err))
	}
	// closing the context flushes the video file
	if err := p.bctx.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close browser context: %w", err))
	}
	return errors.Join(errs...)
}

func (p *playwrightPage) evalString(script string) (string, error) {
	v, err := p.page.Evaluate(script)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("unexpected script result %T", v)
	}
	return s, nil
}
