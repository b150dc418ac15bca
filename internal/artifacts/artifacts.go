// Package artifacts lays out the per-instance files a run produces:
// screenshots, videos and performance metrics.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mikesterific/parallel-instances/internal/config"
	"github.com/mikesterific/parallel-instances/internal/models"
	"github.com/mikesterific/parallel-instances/pkg/instance"
)

// MetricsFile is the JSON document written to the metrics folder.
type MetricsFile struct {
	Instance  string        `json:"instance"`
	Timestamp time.Time     `json:"timestamp"`
	Metrics   MetricsValues `json:"metrics"`
}

// MetricsValues are expressed in milliseconds.
type MetricsValues struct {
	LoadTime  int64 `json:"loadTime"`
	DNS       int64 `json:"dns"`
	TCP       int64 `json:"tcp"`
	TTFB      int64 `json:"ttfb"`
	Resources int   `json:"resources"`
}

type Writer struct {
	cfg config.Artifacts
}

func NewWriter(cfg config.Artifacts) *Writer {
	return &Writer{cfg: cfg}
}

// Prepare creates the artifact folders.
func (w *Writer) Prepare() error {
	folders := []string{w.cfg.ScreenshotsFolder, w.cfg.MetricsFolder}
	if w.cfg.Video {
		folders = append(folders, w.cfg.VideosFolder)
	}
	for _, f := range folders {
		if f == "" {
			continue
		}
		if err := os.MkdirAll(f, 0o755); err != nil {
			return fmt.Errorf("failed to create artifact folder %s: %w", f, err)
		}
	}
	return nil
}

// ScreenshotPath returns <screenshotsFolder>/<instance name>-<name>.png.
func (w *Writer) ScreenshotPath(baseURL, name string) string {
	return filepath.Join(w.cfg.ScreenshotsFolder, fmt.Sprintf("%s-%s.png", instance.Name(baseURL), name))
}

// FailureScreenshotPath names the screenshot taken when a test fails.
func (w *Writer) FailureScreenshotPath(baseURL, suite, test string) string {
	return w.ScreenshotPath(baseURL, instance.FileName(suite+" "+test)+"-failed")
}

// ScreenshotOnFailure reports whether failing tests should be captured.
func (w *Writer) ScreenshotOnFailure() bool {
	return w.cfg.ScreenshotOnRunFailure
}

// VideoDir returns the per-instance video folder, or "" when recording is off.
func (w *Writer) VideoDir(baseURL string) string {
	if !w.cfg.Video {
		return ""
	}
	return filepath.Join(w.cfg.VideosFolder, instance.Name(baseURL))
}

func (w *Writer) MetricsPath(baseURL string) string {
	return filepath.Join(w.cfg.MetricsFolder, instance.FileName(baseURL)+".json")
}

// WriteMetrics stores m as <metricsFolder>/<sanitized base url>.json,
// replacing the file of a previous run.
func (w *Writer) WriteMetrics(m models.Metrics) (string, error) {
	ts := m.RecordedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	doc := MetricsFile{
		Instance:  m.Instance,
		Timestamp: ts.UTC(),
		Metrics: MetricsValues{
			LoadTime:  m.LoadTime.Milliseconds(),
			DNS:       m.DNS.Milliseconds(),
			TCP:       m.TCP.Milliseconds(),
			TTFB:      m.TTFB.Milliseconds(),
			Resources: m.Resources,
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	path := w.MetricsPath(m.Instance)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create metrics folder: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write metrics: %w", err)
	}
	return path, nil
}

// ReadMetrics loads a metrics file written by WriteMetrics.
func ReadMetrics(path string) (*MetricsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc MetricsFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode metrics file %s: %w", path, err)
	}
	return &doc, nil
}
