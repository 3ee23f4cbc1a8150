package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/articlegen/cmd/articlegen/commands"
	"git.home.luguber.info/inful/articlegen/internal/logfields"
)

var version = "dev"

func main() {
	// Optional .env for default-path overrides; a missing file is fine.
	_ = godotenv.Load()

	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("articlegen"),
		kong.Description("Generate HTML article pages from reviews and images"),
		kong.Vars{"version": version},
	)

	global := &commands.Global{Logger: slog.Default()}
	if err := ctx.Run(global); err != nil {
		slog.Error("command failed", logfields.Error(err))
		os.Exit(1)
	}
}
