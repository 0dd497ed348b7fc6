package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/changelogbuilder/cmd/changelogbuilder/commands"
	"git.home.luguber.info/inful/changelogbuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("changelogbuilder"),
		kong.Description("Release documentation automation: changelog assembly, docfx invocation and redirect stubs."),
		kong.Vars{"version": version.Version},
	)

	global := &commands.Global{Logger: slog.Default()}
	ctx.FatalIfErrorf(ctx.Run(global, cli))
}
