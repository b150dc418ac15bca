package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/mikesterific/parallel-instances/internal/config"
	"github.com/mikesterific/parallel-instances/internal/models"
)

// rodDriver drives Chrome over the DevTools protocol.
type rodDriver struct {
	browser *rod.Browser
}

func newRodDriver(headless bool) (*rodDriver, error) {
	l := launcher.New().
		Headless(headless).
		Set("no-sandbox").
		Set("disable-gpu")

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	return &rodDriver{browser: browser}, nil
}

func (d *rodDriver) Name() string { return config.DriverRod }

func (d *rodDriver) NewPage(ctx context.Context, opts PageOptions) (Page, error) {
	if opts.VideoDir != "" {
		zap.S().Named("browser").Debugw("video recording is not supported by the rod driver", "folder", opts.VideoDir)
	}

	page, err := d.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	pageCtx, cancel := context.WithCancel(ctx)
	page = page.Context(pageCtx)

	go page.EachEvent(func(e *proto.RuntimeExceptionThrown) {
		msg := e.ExceptionDetails.Text
		if e.ExceptionDetails.Exception != nil && e.ExceptionDetails.Exception.Description != "" {
			msg = e.ExceptionDetails.Exception.Description
		}
		opts.pageError(errors.New(msg))
	})()

	return &rodPage{page: page, cancel: cancel, opts: opts}, nil
}

func (d *rodDriver) Close() error {
	return d.browser.Close()
}

type rodPage struct {
	page   *rod.Page
	cancel context.CancelFunc
	opts   PageOptions
}

func (p *rodPage) Goto(ctx context.Context, url string) (int, error) {
	page := p.page.Context(ctx)
	if p.opts.PageLoadTimeout > 0 {
		page = page.Timeout(p.opts.PageLoadTimeout)
		defer page.CancelTimeout()
	}

	var status atomic.Int64
	waitResponse := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status.Store(int64(e.Response.Status))
		return true
	})

	if err := page.Navigate(url); err != nil {
		return 0, err
	}
	waitResponse()
	if err := page.WaitLoad(); err != nil {
		return 0, err
	}

	return int(status.Load()), nil
}

func (p *rodPage) URL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (p *rodPage) Title(ctx context.Context) (string, error) {
	info, err := p.command(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

func (p *rodPage) BodyVisible(ctx context.Context) (bool, error) {
	el, err := p.command(ctx).Element("body")
	if err != nil {
		return false, err
	}
	return el.Visible()
}

func (p *rodPage) DocumentLoaded(ctx context.Context) (bool, error) {
	res, err := p.command(ctx).Eval(documentLoadedScript)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (p *rodPage) Timing(ctx context.Context) (models.NavigationTiming, error) {
	res, err := p.command(ctx).Eval(navigationTimingScript)
	if err != nil {
		return models.NavigationTiming{}, err
	}
	return decodeNavigationTiming(res.Value.Str())
}

func (p *rodPage) Resources(ctx context.Context) ([]models.ResourceTiming, error) {
	res, err := p.command(ctx).Eval(resourceTimingScript)
	if err != nil {
		return nil, err
	}
	return decodeResourceTiming(res.Value.Str())
}

func (p *rodPage) Screenshot(ctx context.Context, path string) error {
	data, err := p.command(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (p *rodPage) Close() error {
	defer p.cancel()
	return p.page.Close()
}

func (p *rodPage) command(ctx context.Context) *rod.Page {
	page := p.page.Context(ctx)
	if p.opts.CommandTimeout > 0 {
		return page.Timeout(p.opts.CommandTimeout)
	}
	return page
}
