// Package images resolves article image references against an images root.
//
// Resolution is advisory: a reference that does not exist on disk is dropped
// with a warning, never a hard failure. Rendered output therefore only ever
// links images that were present at generation time.
package images

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/articlegen/internal/article"
	"git.home.luguber.info/inful/articlegen/internal/logfields"
)

// galleryExtensions is the fixed set of file extensions treated as images
// during gallery enumeration. Matching is case-insensitive.
var galleryExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Resolver validates image paths against a single root directory.
type Resolver struct {
	Root   string
	Logger *slog.Logger
}

// NewResolver returns a Resolver rooted at root. A nil logger falls back to
// the process default.
func NewResolver(root string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{Root: root, Logger: logger}
}

// Resolve checks that rel exists under the root and returns it normalized to
// a root-relative path. Inputs that already carry the root prefix are
// re-relativized. Missing or empty references yield "" and a warning.
func (r *Resolver) Resolve(rel string) string {
	if rel == "" {
		return ""
	}

	// Input data sometimes carries full paths under the root; rebase those
	// instead of joining them a second time.
	if filepath.IsAbs(rel) {
		rebased, err := filepath.Rel(r.Root, rel)
		if err != nil || strings.HasPrefix(rebased, "..") {
			r.Logger.Warn("image path outside root, dropping reference", logfields.Path(rel))
			return ""
		}
		rel = rebased
	}

	full := filepath.Join(r.Root, rel)
	if _, err := os.Stat(full); err != nil {
		r.Logger.Warn("missing image, dropping reference", logfields.Path(full))
		return ""
	}

	normalized, err := filepath.Rel(r.Root, full)
	if err != nil {
		r.Logger.Warn("image path outside root, dropping reference", logfields.Path(full))
		return ""
	}
	return filepath.ToSlash(normalized)
}

// ResolveGallery lists the images in root/dir in lexicographic order,
// returning root-relative paths. A missing or empty directory yields nil.
func (r *Resolver) ResolveGallery(dir string) []string {
	if dir == "" {
		return nil
	}

	full := filepath.Join(r.Root, dir)
	info, err := os.Stat(full)
	if err != nil || !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(full)
	if err != nil {
		r.Logger.Warn("gallery directory unreadable", logfields.Path(full), logfields.Error(err))
		return nil
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := galleryExtensions[ext]; !ok {
			continue
		}
		images = append(images, filepath.ToSlash(filepath.Join(dir, entry.Name())))
	}
	sort.Strings(images)
	return images
}

// FilterReviewImages narrows each review's declared image list to the
// references that resolve, preserving declaration order. Reviews are
// modified in place.
func (r *Resolver) FilterReviewImages(reviews []article.Review) {
	for i := range reviews {
		kept := reviews[i].Images[:0]
		for _, img := range reviews[i].Images {
			if resolved := r.Resolve(img); resolved != "" {
				kept = append(kept, resolved)
			}
		}
		reviews[i].Images = kept
	}
}
