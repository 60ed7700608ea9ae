package cmd

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jimezsa/creatorleads/internal/config"
	"github.com/jimezsa/creatorleads/internal/extract"
	"github.com/jimezsa/creatorleads/internal/network"
	"github.com/jimezsa/creatorleads/internal/pipeline"
	"github.com/jimezsa/creatorleads/internal/ui"
)

// proxyBanDuration is how long a proxy sits out after a 403 or 429.
const proxyBanDuration = 10 * time.Minute

// GeneratorFactory builds the model client. Tests swap it for a fake.
type GeneratorFactory func(ctx context.Context, cfg config.Config, client *http.Client, logger zerolog.Logger) (extract.Generator, error)

type Context struct {
	Out          io.Writer
	Err          io.Writer
	UI           *ui.UI
	Config       config.Config
	ConfigDir    string
	Logger       zerolog.Logger
	Verbose      bool
	JSONOutput   bool
	PlainText    bool
	Version      string
	ColorMode    ui.ColorMode
	NewGenerator GeneratorFactory
}

func NewGemini(ctx context.Context, cfg config.Config, client *http.Client, logger zerolog.Logger) (extract.Generator, error) {
	return extract.NewGemini(ctx, extract.GeminiConfig{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		HTTPClient: client,
	}, logger)
}

// searchService wires the configured generator behind the proxy-aware client.
func (c *Context) searchService(ctx context.Context, proxyFlag string, strict bool) (*pipeline.Service, error) {
	proxies, err := config.LoadProxies(proxyFlag)
	if err != nil {
		return nil, err
	}
	rotator, err := network.NewRotator(proxies, proxyBanDuration)
	if err != nil {
		return nil, err
	}
	if rotator.Len() > 0 {
		c.Logger.Debug().Int("proxies", rotator.Len()).Msg("rotating proxies enabled")
	}

	factory := c.NewGenerator
	if factory == nil {
		factory = NewGemini
	}
	generator, err := factory(ctx, c.Config, network.NewHTTPClient(rotator, 0), c.Logger)
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{
		Strict:               strict || c.Config.StrictSchema,
		EnforceFollowerFloor: c.Config.EnforceFollowerFloor,
		EnforceCity:          c.Config.EnforceCity,
	}
	return pipeline.New(generator, opts, c.Logger), nil
}
