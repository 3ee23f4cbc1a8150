// Package render builds HTML pages from normalized article data through
// html/template, with markdown bodies converted by goldmark.
package render

import (
	"bytes"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/articlegen/internal/article"
	apperrors "git.home.luguber.info/inful/articlegen/internal/errors"
	"git.home.luguber.info/inful/articlegen/internal/logfields"
)

// Template file names expected inside the templates directory. A missing
// template is a fatal configuration error at engine construction.
const (
	ArticleTemplate = "article.html.tmpl"
	IndexTemplate   = "index.html.tmpl"
)

// StylesAsset is the stylesheet loaded from the assets directory and inlined
// into every page. A missing file yields an empty style block.
const StylesAsset = "styles.css"

// Engine renders article and index pages. It holds no mutable state after
// construction; rendering the same inputs twice produces identical output.
type Engine struct {
	article *template.Template
	index   *template.Template
	styles  template.CSS
	md      goldmark.Markdown
	logger  *slog.Logger
}

// ArticleContext is the data handed to the article template.
type ArticleContext struct {
	Styles        template.CSS
	Article       MetaView
	HeroImage     string
	GalleryImages []string
	Reviews       []ReviewView
}

// IndexContext is the data handed to the index template.
type IndexContext struct {
	Styles   template.CSS
	Articles []MetaView
}

// MetaView is the template-facing projection of article.Meta. Description is
// pre-rendered from markdown.
type MetaView struct {
	Title       string
	Slug        string
	Description template.HTML
	Date        string
	Tags        []string
	CoverCredit string
}

// ReviewView is the template-facing projection of article.Review. Content is
// pre-rendered from markdown; Images are already resolved root-relative paths.
type ReviewView struct {
	Author  string
	Rating  *float64
	Date    string
	Content template.HTML
	Pros    []string
	Cons    []string
	Images  []string
}

// NewEngine parses both templates from templatesDir and loads the stylesheet
// from assetsDir once. A nil logger falls back to the process default.
func NewEngine(templatesDir, assetsDir string, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	articleTmpl, err := parseTemplate(templatesDir, ArticleTemplate, logger)
	if err != nil {
		return nil, err
	}
	indexTmpl, err := parseTemplate(templatesDir, IndexTemplate, logger)
	if err != nil {
		return nil, err
	}

	return &Engine{
		article: articleTmpl,
		index:   indexTmpl,
		styles:  loadStyles(assetsDir, logger),
		md:      goldmark.New(),
		logger:  logger,
	}, nil
}

func parseTemplate(dir, name string, logger *slog.Logger) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").ParseFiles(filepath.Join(dir, name))
	if err != nil {
		return nil, apperrors.TemplateError(name, err)
	}
	logger.Debug("template parsed", logfields.Template(name))
	return tmpl, nil
}

func loadStyles(assetsDir string, logger *slog.Logger) template.CSS {
	content, err := os.ReadFile(filepath.Join(assetsDir, StylesAsset))
	if err != nil {
		logger.Debug("no stylesheet found, pages render unstyled", logfields.Path(filepath.Join(assetsDir, StylesAsset)))
		return ""
	}
	return template.CSS(content)
}

// RenderArticle produces the HTML page for one article. Hero and gallery
// paths and review image lists must already be resolved.
func (e *Engine) RenderArticle(data *article.Data, heroImage string, galleryImages []string) (string, error) {
	reviews := make([]ReviewView, 0, len(data.Reviews))
	for _, r := range data.Reviews {
		content, err := e.markdown(r.Content)
		if err != nil {
			return "", err
		}
		reviews = append(reviews, ReviewView{
			Author:  r.Author,
			Rating:  r.Rating,
			Date:    r.Date,
			Content: content,
			Pros:    r.Pros,
			Cons:    r.Cons,
			Images:  r.Images,
		})
	}

	meta, err := e.metaView(data.Article)
	if err != nil {
		return "", err
	}

	ctx := ArticleContext{
		Styles:        e.styles,
		Article:       meta,
		HeroImage:     heroImage,
		GalleryImages: galleryImages,
		Reviews:       reviews,
	}

	var buf bytes.Buffer
	if err := e.article.Execute(&buf, ctx); err != nil {
		return "", apperrors.RenderError(ArticleTemplate, err)
	}
	return buf.String(), nil
}

// RenderIndex produces the HTML index page from an ordered list of article
// summaries.
func (e *Engine) RenderIndex(metas []article.Meta) (string, error) {
	views := make([]MetaView, 0, len(metas))
	for _, m := range metas {
		view, err := e.metaView(m)
		if err != nil {
			return "", err
		}
		views = append(views, view)
	}

	var buf bytes.Buffer
	if err := e.index.Execute(&buf, IndexContext{Styles: e.styles, Articles: views}); err != nil {
		return "", apperrors.RenderError(IndexTemplate, err)
	}
	return buf.String(), nil
}

func (e *Engine) metaView(m article.Meta) (MetaView, error) {
	description, err := e.markdown(m.Description)
	if err != nil {
		return MetaView{}, err
	}
	return MetaView{
		Title:       m.Title,
		Slug:        m.Slug,
		Description: description,
		Date:        m.Date,
		Tags:        m.Tags,
		CoverCredit: m.CoverCredit,
	}, nil
}

func (e *Engine) markdown(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := e.md.Convert([]byte(src), &buf); err != nil {
		return "", apperrors.Wrap(err, apperrors.CategoryTemplate, apperrors.SeverityFatal, "markdown conversion failed")
	}
	return template.HTML(buf.String()), nil
}
