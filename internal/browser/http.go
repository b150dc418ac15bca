package browser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/mikesterific/parallel-instances/internal/config"
	"github.com/mikesterific/parallel-instances/internal/models"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
)

const maxDocumentSize = 10 << 20

// HTTPDriver loads documents without a browser. It runs no scripts, so page
// exceptions never fire and resource timing and screenshots are unsupported.
type HTTPDriver struct {
	client *http.Client
}

func NewHTTPDriver(client *http.Client) *HTTPDriver {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPDriver{client: client}
}

func (d *HTTPDriver) Name() string { return config.DriverHTTP }

func (d *HTTPDriver) NewPage(_ context.Context, opts PageOptions) (Page, error) {
	return &httpPage{client: d.client, opts: opts}, nil
}

func (d *HTTPDriver) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

type httpPage struct {
	client *http.Client
	opts   PageOptions

	mu     sync.Mutex
	url    string
	doc    *html.Node
	timing models.NavigationTiming
}

func (p *httpPage) Goto(ctx context.Context, url string) (int, error) {
	if p.opts.PageLoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.PageLoadTimeout)
		defer cancel()
	}

	var (
		start                  = time.Now()
		dnsStart, connectStart time.Time
		timing                 models.NavigationTiming
		requestWritten         time.Time
	)
	trace := &httptrace.ClientTrace{
		DNSStart:     func(httptrace.DNSStartInfo) { dnsStart = time.Now() },
		DNSDone:      func(httptrace.DNSDoneInfo) { timing.DNS = time.Since(dnsStart) },
		ConnectStart: func(string, string) { connectStart = time.Now() },
		ConnectDone: func(string, string, error) {
			timing.TCP = time.Since(connectStart)
		},
		WroteRequest:         func(httptrace.WroteRequestInfo) { requestWritten = time.Now() },
		GotFirstResponseByte: func() { timing.TTFB = time.Since(requestWritten) },
	}

	req, err := http.NewRequestWithContext(httptrace.WithClientTrace(ctx, trace), http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	doc, err := html.Parse(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return 0, fmt.Errorf("failed to parse document: %w", err)
	}
	if timing.TTFB == 0 {
		timing.TTFB = time.Since(start)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = resp.Request.URL.String()
	p.doc = doc
	p.timing = timing

	return resp.StatusCode, nil
}

func (p *httpPage) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *httpPage) Title(_ context.Context) (string, error) {
	n, err := p.find("title")
	if err != nil || n == nil {
		return "", err
	}
	return strings.TrimSpace(textContent(n)), nil
}

// BodyVisible reports whether the document has a body with content that is
// not hidden through the hidden attribute or an inline display:none.
func (p *httpPage) BodyVisible(_ context.Context) (bool, error) {
	body, err := p.find("body")
	if err != nil || body == nil {
		return false, err
	}
	for _, a := range body.Attr {
		switch a.Key {
		case "hidden":
			return false, nil
		case "style":
			if strings.Contains(strings.ReplaceAll(a.Val, " ", ""), "display:none") {
				return false, nil
			}
		}
	}
	return body.FirstChild != nil, nil
}

func (p *httpPage) DocumentLoaded(_ context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc != nil, nil
}

func (p *httpPage) Timing(_ context.Context) (models.NavigationTiming, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return models.NavigationTiming{}, fmt.Errorf("no document loaded")
	}
	return p.timing, nil
}

func (p *httpPage) Resources(_ context.Context) ([]models.ResourceTiming, error) {
	return nil, fmt.Errorf("resource timing: %w", srvErrors.ErrUnsupported)
}

func (p *httpPage) Screenshot(_ context.Context, _ string) error {
	return fmt.Errorf("screenshot: %w", srvErrors.ErrUnsupported)
}

func (p *httpPage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc = nil
	return nil
}

func (p *httpPage) find(tag string) (*html.Node, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	return findElement(p.doc, tag), nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
