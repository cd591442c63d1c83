package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/cmd/docsite/commands"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/version"
)

func main() {
	cli := &commands.CLI{}
	globals := &commands.Global{}
	parser := kong.Parse(cli,
		kong.Name("docsite"),
		kong.Description("Multilingual documentation content service"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(globals, cli),
	)
	err := parser.Run()
	errors.NewCLIErrorAdapter(cli.Verbose, globals.Logger).HandleError(err)
}
