package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/articlegen/internal/generator"
	"git.home.luguber.info/inful/articlegen/internal/watch"
)

// WatchCmd implements the 'watch' command: rerun generation on every change
// to the input file until interrupted.
type WatchCmd struct {
	Input      string        `short:"i" required:"" help:"Path to YAML/JSON file with article data" type:"existingfile"`
	ImagesRoot string        `name:"images-root" required:"" help:"Root directory of images" type:"existingdir"`
	Out        string        `short:"o" required:"" help:"Output directory"`
	Templates  string        `help:"Templates directory" default:"./templates" env:"ARTICLEGEN_TEMPLATES"`
	Assets     string        `help:"Assets directory" default:"./assets" env:"ARTICLEGEN_ASSETS"`
	Index      bool          `help:"Also generate/update index.html on each rebuild"`
	Debounce   time.Duration `help:"Delay before rebuilding after a change" default:"500ms"`
}

func (w *WatchCmd) Run(global *Global) error {
	pipeline := generator.New(global.Logger)
	opts := generator.Options{
		Input:        w.Input,
		TemplatesDir: w.Templates,
		AssetsDir:    w.Assets,
		ImagesRoot:   w.ImagesRoot,
		OutDir:       w.Out,
		Index:        w.Index,
	}

	watcher, err := watch.New(w.Input, w.Debounce, global.Logger, func() error {
		_, err := pipeline.Generate(opts)
		return err
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return watcher.Run(ctx)
}
