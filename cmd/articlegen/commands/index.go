package commands

import (
	"fmt"

	"git.home.luguber.info/inful/articlegen/internal/generator"
)

// IndexCmd implements the 'index' command: rebuild only index.html from the
// manifest (or its sidecar fallback) in the output directory.
type IndexCmd struct {
	Out       string `short:"o" required:"" help:"Output directory"`
	Templates string `help:"Templates directory" default:"./templates" env:"ARTICLEGEN_TEMPLATES"`
	Assets    string `help:"Assets directory" default:"./assets" env:"ARTICLEGEN_ASSETS"`
}

func (i *IndexCmd) Run(global *Global) error {
	pipeline := generator.New(global.Logger)
	indexPath, err := pipeline.GenerateIndex(generator.Options{
		TemplatesDir: i.Templates,
		AssetsDir:    i.Assets,
		OutDir:       i.Out,
	})
	if err != nil {
		return err
	}

	fmt.Println(indexPath)
	return nil
}
