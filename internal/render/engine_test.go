package render

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/articlegen/internal/article"
	apperrors "git.home.luguber.info/inful/articlegen/internal/errors"
)

const testArticleTemplate = `<html><head><style>{{ .Styles }}</style><title>{{ .Article.Title }}</title></head>
<body>
{{ if .HeroImage }}<img class="hero" src="/images/{{ .HeroImage }}">{{ end }}
{{ .Article.Description }}
{{ range .Reviews }}<section><h2>{{ .Author }}</h2>{{ .Content }}{{ range .Images }}<img src="/images/{{ . }}">{{ end }}</section>{{ end }}
{{ range .GalleryImages }}<img class="gallery" src="/images/{{ . }}">{{ end }}
</body></html>`

const testIndexTemplate = `<html><head><style>{{ .Styles }}</style></head><body>
{{ range .Articles }}<a href="{{ .Slug }}.html">{{ .Title }}</a>{{ end }}
</body></html>`

func writeTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ArticleTemplate), []byte(testArticleTemplate), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexTemplate), []byte(testIndexTemplate), 0o600))
	return dir
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEngine_MissingTemplate_Fatal(t *testing.T) {
	_, err := NewEngine(t.TempDir(), t.TempDir(), testLogger())
	require.Error(t, err)
	require.True(t, apperrors.IsCategory(err, apperrors.CategoryTemplate))
}

func TestNewEngine_LogsParsedTemplates(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewEngine(writeTemplates(t), t.TempDir(), logger)
	require.NoError(t, err)
	require.Contains(t, logs.String(), "template="+ArticleTemplate)
	require.Contains(t, logs.String(), "template="+IndexTemplate)
}

func TestNewEngine_MissingStyles_EmptyStyleBlock(t *testing.T) {
	engine, err := NewEngine(writeTemplates(t), t.TempDir(), testLogger())
	require.NoError(t, err)

	html, err := engine.RenderArticle(&article.Data{Article: article.Meta{Title: "T", Slug: "t"}}, "", nil)
	require.NoError(t, err)
	require.Contains(t, html, "<style></style>")
}

func TestRenderArticle_IncludesStylesHeroAndGallery(t *testing.T) {
	assets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assets, StylesAsset), []byte("body{margin:0}"), 0o600))

	engine, err := NewEngine(writeTemplates(t), assets, testLogger())
	require.NoError(t, err)

	data := &article.Data{Article: article.Meta{Title: "Grinders", Slug: "grinders"}}
	html, err := engine.RenderArticle(data, "hero.jpg", []string{"g/a.jpg", "g/b.png"})
	require.NoError(t, err)
	require.Contains(t, html, "body{margin:0}")
	require.Contains(t, html, `<title>Grinders</title>`)
	require.Contains(t, html, `src="/images/hero.jpg"`)
	require.Contains(t, html, `src="/images/g/a.jpg"`)
	require.Contains(t, html, `src="/images/g/b.png"`)
}

func TestRenderArticle_ReviewMarkdownConverted(t *testing.T) {
	engine, err := NewEngine(writeTemplates(t), t.TempDir(), testLogger())
	require.NoError(t, err)

	data := &article.Data{
		Article: article.Meta{Title: "Grinders", Slug: "grinders"},
		Reviews: []article.Review{{Author: "Ada", Content: "Really **solid** burrs."}},
	}
	html, err := engine.RenderArticle(data, "", nil)
	require.NoError(t, err)
	require.Contains(t, html, "<h2>Ada</h2>")
	require.Contains(t, html, "<strong>solid</strong>")
}

func TestRenderArticle_Idempotent(t *testing.T) {
	engine, err := NewEngine(writeTemplates(t), t.TempDir(), testLogger())
	require.NoError(t, err)

	data := &article.Data{
		Article: article.Meta{Title: "Grinders", Slug: "grinders", Description: "A *quick* roundup."},
		Reviews: []article.Review{{Author: "Ada", Images: []string{"a.jpg"}}},
	}
	first, err := engine.RenderArticle(data, "hero.jpg", []string{"g/a.jpg"})
	require.NoError(t, err)
	second, err := engine.RenderArticle(data, "hero.jpg", []string{"g/a.jpg"})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRenderIndex_ListsArticles(t *testing.T) {
	engine, err := NewEngine(writeTemplates(t), t.TempDir(), testLogger())
	require.NoError(t, err)

	html, err := engine.RenderIndex([]article.Meta{
		{Title: "Grinders", Slug: "grinders"},
		{Title: "Kettles", Slug: "kettles"},
	})
	require.NoError(t, err)
	require.Contains(t, html, `<a href="grinders.html">Grinders</a>`)
	require.Contains(t, html, `<a href="kettles.html">Kettles</a>`)
}
