package source

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/examvault/internal/adapter"
	"github.com/mmcdole/examvault/internal/adapter/source/examvault"
	"github.com/mmcdole/examvault/internal/domain"
)

// SourceConfig contains the configuration needed to create a PageSource
type SourceConfig struct {
	Type     adapter.SourceType
	URL      string
	Timeout  time.Duration
	RetryMax int
}

// NewClient creates a new PageSource based on the server type.
func NewClient(cfg *SourceConfig, logger *slog.Logger) (domain.PageSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("server URL is required")
	}

	switch cfg.Type {
	case adapter.SourceTypeExamVault, "":
		return examvault.NewClient(cfg.URL, examvault.Options{
			Timeout:  cfg.Timeout,
			RetryMax: cfg.RetryMax,
		}, logger), nil

	default:
		return nil, fmt.Errorf("unknown server type: %s", cfg.Type)
	}
}

// NewClientFromConfig creates a PageSource from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (domain.PageSource, error) {
	return NewClient(&SourceConfig{
		Type:     cfg.Server.Type,
		URL:      cfg.Server.URL,
		Timeout:  cfg.Server.Timeout,
		RetryMax: cfg.Server.RetryMax,
	}, logger)
}
