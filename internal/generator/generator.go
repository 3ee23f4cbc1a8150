// Package generator sequences the article pipeline: load, resolve images,
// render, write, and update the manifest. Every run is a fresh load of all
// inputs; nothing is cached between invocations.
package generator

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"git.home.luguber.info/inful/articlegen/internal/article"
	apperrors "git.home.luguber.info/inful/articlegen/internal/errors"
	"git.home.luguber.info/inful/articlegen/internal/images"
	"git.home.luguber.info/inful/articlegen/internal/logfields"
	"git.home.luguber.info/inful/articlegen/internal/manifest"
	"git.home.luguber.info/inful/articlegen/internal/render"
)

// Options carries the fully-resolved paths for one pipeline run.
type Options struct {
	Input        string
	TemplatesDir string
	AssetsDir    string
	ImagesRoot   string
	OutDir       string
	Index        bool
}

// Pipeline runs article and index generation.
type Pipeline struct {
	logger *slog.Logger
}

// New returns a Pipeline. A nil logger falls back to the process default.
func New(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger}
}

// Generate runs the full pipeline for one input file and returns the path of
// the written article page. When opts.Index is set the index page is
// regenerated afterwards from the updated manifest.
func (p *Pipeline) Generate(opts Options) (string, error) {
	start := time.Now()

	if err := os.MkdirAll(opts.OutDir, 0o750); err != nil {
		return "", apperrors.OutputError("create output directory", err)
	}

	data, err := article.Load(opts.Input)
	if err != nil {
		return "", err
	}
	p.logger.Debug("article loaded",
		logfields.Stage("load"), logfields.Slug(data.Article.Slug), logfields.Path(opts.Input))

	engine, err := render.NewEngine(opts.TemplatesDir, opts.AssetsDir, p.logger)
	if err != nil {
		return "", err
	}

	resolver := images.NewResolver(opts.ImagesRoot, p.logger)
	hero := resolver.Resolve(data.Article.HeroImage)
	gallery := resolver.ResolveGallery(data.GalleryDir)
	resolver.FilterReviewImages(data.Reviews)

	html, err := engine.RenderArticle(data, hero, gallery)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(opts.OutDir, data.Article.Slug+".html")
	if err := atomic.WriteFile(outPath, strings.NewReader(html)); err != nil {
		return "", apperrors.OutputError("write article page", err)
	}

	store := manifest.NewStore(opts.OutDir, p.logger)
	if err := store.Write(data.Article); err != nil {
		return "", err
	}

	if opts.Index {
		if _, err := p.writeIndex(engine, store, opts.OutDir); err != nil {
			return "", err
		}
	}

	p.logger.Info("article generated",
		logfields.Slug(data.Article.Slug),
		logfields.Path(outPath),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return outPath, nil
}

// GenerateIndex rebuilds only the index page from the stored manifest (or
// its sidecar fallback) and returns the path written.
func (p *Pipeline) GenerateIndex(opts Options) (string, error) {
	if err := os.MkdirAll(opts.OutDir, 0o750); err != nil {
		return "", apperrors.OutputError("create output directory", err)
	}

	engine, err := render.NewEngine(opts.TemplatesDir, opts.AssetsDir, p.logger)
	if err != nil {
		return "", err
	}

	store := manifest.NewStore(opts.OutDir, p.logger)
	return p.writeIndex(engine, store, opts.OutDir)
}

func (p *Pipeline) writeIndex(engine *render.Engine, store *manifest.Store, outDir string) (string, error) {
	metas, err := store.ReadForIndex()
	if err != nil {
		return "", err
	}

	html, err := engine.RenderIndex(metas)
	if err != nil {
		return "", err
	}

	indexPath := filepath.Join(outDir, "index.html")
	if err := atomic.WriteFile(indexPath, strings.NewReader(html)); err != nil {
		return "", apperrors.OutputError("write index page", err)
	}

	p.logger.Info("index updated", logfields.Path(indexPath), slog.Int("articles", len(metas)))
	return indexPath, nil
}
