package providers

import (
	"context"
	"errors"

	"github.com/samber/do/v2"

	"github.com/readnextapp/readnext-server/internal/config"
	"github.com/readnextapp/readnext-server/internal/imagegen"
	"github.com/readnextapp/readnext-server/internal/logger"
	"github.com/readnextapp/readnext-server/internal/service"
)

// CoverGeneratorHandle wraps the cover generator chosen at startup.
type CoverGeneratorHandle struct {
	service.CoverGenerator
}

// disabledCoverGenerator rejects every request. Used when no API key is
// configured so the rest of the server still runs.
type disabledCoverGenerator struct{}

func (disabledCoverGenerator) GenerateCover(_ context.Context, _, _ string) (string, error) {
	return "", errors.New("cover generation is not configured")
}

// ProvideCoverGenerator provides the outbound image generation client.
func ProvideCoverGenerator(i do.Injector) (*CoverGeneratorHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Covers.APIKey == "" {
		log.Warn("No cover generation API key configured, cover requests will fail")
		return &CoverGeneratorHandle{CoverGenerator: disabledCoverGenerator{}}, nil
	}

	client := imagegen.NewClient(imagegen.Options{
		BaseURL:        cfg.Covers.BaseURL,
		APIKey:         cfg.Covers.APIKey,
		RatePerMinute:  cfg.Covers.RatePerMinute,
		RequestTimeout: cfg.Covers.RequestTimeout,
	}, log.Logger)

	log.Info("Cover generation client ready",
		"base_url", cfg.Covers.BaseURL,
		"rate_per_minute", cfg.Covers.RatePerMinute,
	)

	return &CoverGeneratorHandle{CoverGenerator: client}, nil
}
