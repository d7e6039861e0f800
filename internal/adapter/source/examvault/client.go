package examvault

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/mmcdole/examvault/internal/adapter"
	"github.com/mmcdole/examvault/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "ExamVault/1.0"
)

// Options tunes the HTTP transport
type Options struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client implements domain.PageSource for the ExamVault file server
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new ExamVault API client
func NewClient(baseURL string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RetryWaitMin <= 0 {
		opts.RetryWaitMin = 500 * time.Millisecond
	}
	if opts.RetryWaitMax <= 0 {
		opts.RetryWaitMax = 5 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{Timeout: opts.Timeout}
	retryClient.RetryMax = opts.RetryMax
	retryClient.RetryWaitMin = opts.RetryWaitMin
	retryClient.RetryWaitMax = opts.RetryWaitMax
	retryClient.Logger = adapter.LeveledLogger{Logger: logger}
	// Surface the last response so a 5xx reads as a status error, not offline
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: retryClient.StandardClient(),
		logger:     logger,
	}
}

// doRequest performs an HTTP request and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("examvault request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("examvault request failed", "error", err)
		return nil, fmt.Errorf("%w: %w: %w", domain.ErrNetworkFailure, domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrNetworkFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("examvault request error", "status", resp.StatusCode, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrNetworkFailure, resp.StatusCode)
	}

	return body, nil
}

// FetchPage returns one page of the file listing
func (c *Client) FetchPage(ctx context.Context, page, limit int) (domain.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	body, err := c.doRequest(ctx, http.MethodGet, "/files", query)
	if err != nil {
		return domain.Page{}, err
	}

	var resp FilesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return domain.Page{}, fmt.Errorf("%w: failed to parse response: %v", domain.ErrNetworkFailure, err)
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "server reported failure"
		}
		return domain.Page{}, fmt.Errorf("%w: %s", domain.ErrNetworkFailure, msg)
	}

	return domain.Page{
		Number: page,
		Items:  MapDocuments(resp.Files, c.baseURL),
	}, nil
}
