package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/mmcdole/examvault/internal/domain"
)

const (
	defaultProbeTimeout = 15 * time.Second
	defaultUserAgent    = "Mozilla/5.0 (compatible; FileSizeBot/1.0)"
)

// HTTPProber implements domain.SizeProber with a HEAD request
type HTTPProber struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// NewHTTPProber creates a prober. Zero values select defaults.
func NewHTTPProber(timeout time.Duration, userAgent string, logger *slog.Logger) *HTTPProber {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &HTTPProber{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		logger:     logger,
	}
}

// ProbeSize returns the Content-Length of url in bytes
func (p *HTTPProber) ProbeSize(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrProbeFailure, err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	p.logger.Debug("probing size", "url", url)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrProbeFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: status %d", domain.ErrProbeFailure, resp.StatusCode)
	}

	header := resp.Header.Get("Content-Length")
	if header == "" {
		return 0, fmt.Errorf("%w: content-length header not found", domain.ErrProbeFailure)
	}
	size, err := strconv.ParseInt(header, 10, 64)
	if err != nil || size <= 0 {
		return 0, fmt.Errorf("%w: invalid content length %q", domain.ErrProbeFailure, header)
	}
	return size, nil
}

// ToKB converts bytes to kilobytes rounded to one decimal place
func ToKB(bytes int64) float64 {
	return math.Round(float64(bytes)/1024*10) / 10
}

// Label renders a size index lookup for display. Absent and Unknown entries
// both read "unavailable".
func Label(entry domain.SizeEntry, ok bool) string {
	if !ok || !entry.Known {
		return "unavailable"
	}
	return strconv.FormatFloat(entry.KB, 'f', -1, 64) + " KB"
}
