package commands

import (
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// Global is shared by every subcommand; AfterApply fills it in.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer

	cfg    *config.Config
	cfgErr error
}

// Config returns the configuration loaded for this invocation.
func (g *Global) Config() (*config.Config, error) {
	return g.cfg, g.cfgErr
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsite.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve   ServeCmd   `cmd:"" help:"Serve the documentation API"`
	Render  RenderCmd  `cmd:"" help:"Print the assembled view of a page"`
	TOC     TOCCmd     `cmd:"" name:"toc" help:"Print the table of contents of a Markdown file"`
	Resolve ResolveCmd `cmd:"" help:"Show which locale a language preference resolves to"`
	Audit   AuditCmd   `cmd:"" help:"Report documents missing from each translation"`
	Init    InitCmd    `cmd:"" help:"Write a default configuration file"`
}

// AfterApply runs after flag parsing: it loads the configuration once and
// installs the process logger it describes.
func (c *CLI) AfterApply(g *Global) error {
	g.cfg, g.cfgErr = loadConfig(c.Config)

	logging := config.Default().Monitoring.Logging
	if g.cfg != nil {
		logging = g.cfg.Monitoring.Logging
	}
	g.Logger = logging.NewLogger(os.Stderr, c.Verbose)
	slog.SetDefault(g.Logger)
	if g.Out == nil {
		g.Out = os.Stdout
	}
	return nil
}

// loadConfig reads path; a missing file at the default path yields the
// built-in configuration so the binary runs from a checkout without setup.
func loadConfig(path string) (*config.Config, error) {
	if path == config.DefaultConfigPath {
		if _, err := os.Stat(path); stderrors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}
