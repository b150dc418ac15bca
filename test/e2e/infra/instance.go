package infra

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const pageTemplate = `<!doctype html>
<html>
<head><title>%s</title></head>
<body>
  <nav><a href="/">Home</a> <a href="/about">About</a></nav>
  <main><h1>%s</h1></main>
</body>
</html>`

// InstanceServer is an in-process instance serving the same page on every
// path.
type InstanceServer struct {
	server   *http.Server
	spec     InstanceSpec
	baseURL  string
	requests atomic.Int64
}

// NewInstanceServer starts an instance on addr (":0" picks a free port).
func NewInstanceServer(addr string, spec InstanceSpec) (*InstanceServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}

	actualAddr := listener.Addr().String()
	s := &InstanceServer{
		spec:    spec,
		baseURL: fmt.Sprintf("http://%s/%s", actualAddr, spec.Name),
	}
	s.server = &http.Server{
		Handler:           http.HandlerFunc(s.handle),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zap.S().Infof("instance %s started on %s", spec.Name, actualAddr)
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			zap.S().Errorf("instance %s error: %v", spec.Name, err)
		}
	}()

	return s, nil
}

func (s *InstanceServer) handle(w http.ResponseWriter, _ *http.Request) {
	n := s.requests.Add(1)

	status := s.spec.Status
	if n <= int64(s.spec.FailFirst) {
		status = http.StatusServiceUnavailable
	}
	if status == 0 {
		status = http.StatusOK
	}

	title := s.spec.Title
	if title == "" {
		title = s.spec.Name
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, pageTemplate, title, title)
}

func (s *InstanceServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *InstanceServer) BaseURL() string {
	return s.baseURL
}

func (s *InstanceServer) Requests() int64 {
	return s.requests.Load()
}
