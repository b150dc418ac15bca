package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	v1 "github.com/mikesterific/parallel-instances/api/v1"
)

const (
	apiV1RunsPath    = "/api/v1/runs"
	apiV1RunnerPath  = "/api/v1/runner"
	apiV1MetricsPath = "/api/v1/metrics"
)

// TokenGenerator mints a bearer token for subject.
type TokenGenerator func(subject string) (string, error)

// ReportSvc is an HTTP client for the report API.
type ReportSvc struct {
	baseURL  string
	token    string
	client   *http.Client
	tokenGen TokenGenerator
}

func NewReportService(baseURL string, tokenGen TokenGenerator) *ReportSvc {
	return &ReportSvc{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 30 * time.Second},
		tokenGen: tokenGen,
	}
}

// WithSubject returns a client sending a token minted for subject.
func (s *ReportSvc) WithSubject(subject string) *ReportSvc {
	if s.tokenGen == nil {
		zap.S().Warn("WithSubject called without a token generator; requests will have no auth token")
		return s
	}
	token, err := s.tokenGen(subject)
	if err != nil {
		zap.S().Errorf("WithSubject: failed to generate token: %v", err)
		return s
	}
	return &ReportSvc{baseURL: s.baseURL, token: token, client: s.client, tokenGen: s.tokenGen}
}

// StatusError is returned for non 2xx answers.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func (s *ReportSvc) StartRun(ctx context.Context, mode v1.RunMode) (*v1.RunnerStatus, error) {
	var status v1.RunnerStatus
	err := s.do(ctx, http.MethodPost, apiV1RunsPath, v1.StartRunRequest{Mode: &mode}, &status)
	return &status, err
}

func (s *ReportSvc) RunnerStatus(ctx context.Context) (*v1.RunnerStatus, error) {
	var status v1.RunnerStatus
	err := s.do(ctx, http.MethodGet, apiV1RunnerPath, nil, &status)
	return &status, err
}

func (s *ReportSvc) ListRuns(ctx context.Context) ([]v1.Run, error) {
	var resp v1.RunListResponse
	err := s.do(ctx, http.MethodGet, apiV1RunsPath, nil, &resp)
	return resp.Runs, err
}

func (s *ReportSvc) GetRun(ctx context.Context, id string) (*v1.Run, error) {
	var run v1.Run
	err := s.do(ctx, http.MethodGet, apiV1RunsPath+"/"+url.PathEscape(id), nil, &run)
	return &run, err
}

func (s *ReportSvc) Compare(ctx context.Context, id string) (*v1.CompareResponse, error) {
	var resp v1.CompareResponse
	err := s.do(ctx, http.MethodGet, apiV1RunsPath+"/"+url.PathEscape(id)+"/compare", nil, &resp)
	return &resp, err
}

func (s *ReportSvc) Results(ctx context.Context, id string, query url.Values) (*v1.TestResultListResponse, error) {
	var resp v1.TestResultListResponse
	path := apiV1RunsPath + "/" + url.PathEscape(id) + "/results"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	err := s.do(ctx, http.MethodGet, path, nil, &resp)
	return &resp, err
}

func (s *ReportSvc) Metrics(ctx context.Context, runID string) ([]v1.Metrics, error) {
	var resp v1.MetricsListResponse
	err := s.do(ctx, http.MethodGet, apiV1MetricsPath+"?runId="+url.QueryEscape(runID), nil, &resp)
	return resp.Metrics, err
}

func (s *ReportSvc) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
