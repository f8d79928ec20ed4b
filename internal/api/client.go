package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"

	"repopush/internal/domain"
)

const (
	basePath = "/api"

	// cap on error bodies read for message extraction
	maxErrorBody = 1 << 20
)

// Service is the backend surface the orchestrator depends on
type Service interface {
	GetPatStatus(ctx context.Context) (domain.PatStatus, error)
	UpdatePat(ctx context.Context, pat string) (domain.PatStatus, error)
	ListRepos(ctx context.Context) ([]domain.RepoSummary, error)
	AddRepo(ctx context.Context, req domain.CreateRepoRequest) (domain.RepoSummary, error)
	CommitAndPush(ctx context.Context, id, message string) (domain.CommitResponse, error)
}

// Config holds the settings needed to create a Client
type Config struct {
	// BaseURL is the backend origin, e.g. "http://localhost:8080".
	// The "/api" prefix is appended by the client.
	BaseURL string
	// Timeout bounds each request; zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the pooled client built from Timeout.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the repository backend. It holds no state beyond its
// configuration; every method is a single request/response.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// errorPayload is the JSON error body produced by the backend
type errorPayload struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// NewClient validates cfg and returns a Client
func NewClient(cfg Config) (*Client, error) {
	const errCtx = "creating api client"

	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, fmt.Errorf("%s: base url must be set", errCtx)
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%s: unsupported scheme %q", errCtx, parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("%s: base url %q has no host", errCtx, base)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
		httpClient.Timeout = cfg.Timeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		endpoint:   strings.TrimRight(parsed.String(), "/") + basePath,
		httpClient: httpClient,
		logger:     logger.Named("api"),
	}, nil
}

// GetPatStatus reads the current PAT configuration
func (c *Client) GetPatStatus(ctx context.Context) (domain.PatStatus, error) {
	var status domain.PatStatus
	err := c.do(ctx, http.MethodGet, "/pat", nil, &status)
	return status, err
}

// UpdatePat stores or replaces the PAT; the response carries only the masked form
func (c *Client) UpdatePat(ctx context.Context, pat string) (domain.PatStatus, error) {
	var status domain.PatStatus
	err := c.do(ctx, http.MethodPost, "/pat", domain.SetPatRequest{Pat: pat}, &status)
	return status, err
}

// ListRepos returns the tracked repositories in server order
func (c *Client) ListRepos(ctx context.Context) ([]domain.RepoSummary, error) {
	var repos []domain.RepoSummary
	if err := c.do(ctx, http.MethodGet, "/repos", nil, &repos); err != nil {
		return nil, err
	}
	if repos == nil {
		repos = []domain.RepoSummary{}
	}
	return repos, nil
}

// AddRepo registers a repository
func (c *Client) AddRepo(ctx context.Context, req domain.CreateRepoRequest) (domain.RepoSummary, error) {
	var repo domain.RepoSummary
	err := c.do(ctx, http.MethodPost, "/repos", req, &repo)
	return repo, err
}

// CommitAndPush commits local changes of repository id and pushes them
func (c *Client) CommitAndPush(ctx context.Context, id, message string) (domain.CommitResponse, error) {
	var resp domain.CommitResponse
	path := "/repos/" + url.PathEscape(id) + "/commit-and-push"
	err := c.do(ctx, http.MethodPost, path, domain.CommitRequest{Message: message}, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return &TransportError{Status: resp.StatusCode, Err: errors.New("empty response body")}
		}
		return &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// decodeError maps a non-2xx response onto the error taxonomy
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload errorPayload
	if len(bytes.TrimSpace(raw)) > 0 {
		// A body that is not JSON simply yields no message
		_ = json.Unmarshal(raw, &payload)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Message: payload.Message}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ValidationError{
			Status:  resp.StatusCode,
			Message: payload.Message,
			Fields:  payload.Errors,
		}
	default:
		return &TransportError{Status: resp.StatusCode, Message: payload.Message}
	}
}
