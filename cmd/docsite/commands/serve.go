package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docsite/internal/daemon"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr  string `help:"Listen address (overrides server.addr)"`
	Watch bool   `help:"Invalidate cached documents when content files change"`
}

func (s *ServeCmd) Run(g *Global) error {
	cfg, err := g.Config()
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}
	if s.Watch {
		cfg.Server.Watch = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	d, err := daemon.New(cfg, g.Logger)
	if err != nil {
		return err
	}
	return d.Run(ctx)
}
