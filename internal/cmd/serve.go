package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jimezsa/creatorleads/internal/server"
)

type ServeCmd struct {
	Addr    string `help:"Listen address (default from config, :3000)."`
	Proxies string `help:"Comma-separated proxy URLs." env:"CREATORLEADS_PROXIES"`
	Strict  bool   `help:"Ask the model for schema-constrained JSON."`
}

func (s *ServeCmd) Run(ctx *Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := ctx.searchService(runCtx, s.Proxies, s.Strict)
	if err != nil {
		return err
	}

	cfg := server.DefaultConfig()
	cfg.Addr = firstNonEmpty(s.Addr, ctx.Config.ListenAddr, cfg.Addr)
	cfg.AllowedOrigins = ctx.Config.AllowedOrigins

	ctx.UI.Noticef("Listening on %s", cfg.Addr)
	return server.New(svc, cfg, ctx.Logger).ListenAndServe(runCtx)
}
