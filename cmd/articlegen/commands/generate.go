package commands

import (
	"fmt"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/articlegen/internal/generator"
	"git.home.luguber.info/inful/articlegen/internal/logfields"
)

// GenerateCmd implements the 'generate' command: one full pipeline run for a
// single input file.
type GenerateCmd struct {
	Input      string `short:"i" required:"" help:"Path to YAML/JSON file with article data" type:"existingfile"`
	ImagesRoot string `name:"images-root" required:"" help:"Root directory of images" type:"existingdir"`
	Out        string `short:"o" required:"" help:"Output directory"`
	Templates  string `help:"Templates directory" default:"./templates" env:"ARTICLEGEN_TEMPLATES"`
	Assets     string `help:"Assets directory" default:"./assets" env:"ARTICLEGEN_ASSETS"`
	Index      bool   `help:"Also generate/update index.html"`
}

func (g *GenerateCmd) Run(global *Global) error {
	global.Logger.Debug("starting generation run", logfields.RunID(uuid.NewString()))

	pipeline := generator.New(global.Logger)
	outPath, err := pipeline.Generate(generator.Options{
		Input:        g.Input,
		TemplatesDir: g.Templates,
		AssetsDir:    g.Assets,
		ImagesRoot:   g.ImagesRoot,
		OutDir:       g.Out,
		Index:        g.Index,
	})
	if err != nil {
		return err
	}

	fmt.Println(outPath)
	return nil
}
