package article

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "git.home.luguber.info/inful/articlegen/internal/errors"
	"git.home.luguber.info/inful/articlegen/internal/logfields"
)

// Load reads and normalizes an article input file. The parser is chosen by
// file extension: .yaml/.yml or .json; anything else is rejected.
//
// Normalization is field-by-field with explicit defaulting: dates become
// ISO-8601 strings, list elements are coerced to strings, and a rating that
// fails numeric coercion is stored as absent rather than raising. Unknown
// keys in the input are ignored.
func Load(path string) (*Data, error) {
	tree, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	artRaw, ok := tree["article"].(map[string]any)
	if !ok {
		return nil, apperrors.MissingField("article")
	}

	meta := Meta{
		Title:       stringField(artRaw, "title"),
		Slug:        stringField(artRaw, "slug"),
		Description: stringField(artRaw, "description"),
		Date:        dateField(artRaw, "date"),
		Tags:        stringList(artRaw, "tags"),
		HeroImage:   stringField(artRaw, "hero_image"),
		CoverCredit: stringField(artRaw, "cover_credit"),
	}
	if meta.Title == "" {
		return nil, apperrors.MissingField("article.title")
	}
	if meta.Slug == "" {
		return nil, apperrors.MissingField("article.slug")
	}

	var reviews []Review
	if rawReviews, ok := tree["reviews"].([]any); ok {
		for i, item := range rawReviews {
			m, ok := item.(map[string]any)
			if !ok {
				slog.Warn("skipping review entry that is not a mapping", slog.Int("index", i), logfields.Path(path))
				continue
			}
			review := Review{
				Author:  stringField(m, "author"),
				Rating:  ratingField(m, "rating"),
				Date:    dateField(m, "date"),
				Content: stringField(m, "content"),
				Pros:    stringList(m, "pros"),
				Cons:    stringList(m, "cons"),
				Images:  stringList(m, "images"),
			}
			if review.Author == "" {
				return nil, apperrors.MissingField(fmt.Sprintf("reviews[%d].author", i))
			}
			reviews = append(reviews, review)
		}
	}

	return &Data{
		Article:    meta,
		Reviews:    reviews,
		GalleryDir: stringField(tree, "gallery_dir"),
	}, nil
}

func parseFile(path string) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, apperrors.UnsupportedFormat(path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryFileSystem, apperrors.SeverityFatal, "read input file").
			WithContext("path", path)
	}

	var tree map[string]any
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(content, &tree)
	} else {
		err = yaml.Unmarshal(content, &tree)
	}
	if err != nil {
		return nil, apperrors.ParseFailed(path, err)
	}
	return tree, nil
}

// stringField coerces a scalar value to string; absent or null yields "".
func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// dateField normalizes native date values (yaml.v3 decodes ISO-looking
// scalars into time.Time) to ISO-8601 strings; plain strings pass through.
func dateField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch d := v.(type) {
	case time.Time:
		if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 && d.Nanosecond() == 0 {
			return d.Format("2006-01-02")
		}
		return d.Format(time.RFC3339)
	case string:
		return d
	default:
		return fmt.Sprint(v)
	}
}

// stringList coerces every element of a list value to string; an absent or
// non-list value yields an empty slice, never nil lookups downstream.
func stringList(m map[string]any, key string) []string {
	out := []string{}
	items, ok := m[key].([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}

// ratingField attempts numeric coercion of a rating value. Anything that
// does not parse is stored as absent; lenient by policy, never an error.
func ratingField(m map[string]any, key string) *float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case uint64:
		f := float64(n)
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
