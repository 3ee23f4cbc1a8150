// Package manifest maintains the cross-article manifest used for index
// generation: a pretty-printed JSON array in the output directory, upserted
// by slug, plus a per-article sidecar file mirroring each entry.
//
// The manifest is read-modify-written without locking. Concurrent runs
// against the same output directory may lose updates; the atomic replace
// only guarantees the file is never observed half-written.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"git.home.luguber.info/inful/articlegen/internal/article"
	apperrors "git.home.luguber.info/inful/articlegen/internal/errors"
	"git.home.luguber.info/inful/articlegen/internal/logfields"
)

// FileName is the manifest file inside the output directory.
const FileName = "manifest.json"

// SidecarSuffix names the per-article sidecar files, keyed by slug.
const SidecarSuffix = ".meta.json"

// Entry is the persisted projection of article.Meta. Reviews, hero image and
// gallery are deliberately not part of it.
type Entry struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
}

// Project reduces full article metadata to its manifest entry.
func Project(meta article.Meta) Entry {
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}
	return Entry{
		Title:       meta.Title,
		Slug:        meta.Slug,
		Description: meta.Description,
		Date:        meta.Date,
		Tags:        tags,
	}
}

// Meta expands a manifest entry back into article metadata. Only the
// projected subset round-trips.
func (e Entry) Meta() article.Meta {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return article.Meta{
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		Date:        e.Date,
		Tags:        tags,
	}
}

func (e Entry) valid() bool {
	return e.Title != "" && e.Slug != ""
}

// Store reads and writes the manifest of one output directory.
type Store struct {
	Dir    string
	Logger *slog.Logger
}

// NewStore returns a Store for the given output directory. A nil logger
// falls back to the process default.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{Dir: dir, Logger: logger}
}

func (s *Store) manifestPath() string {
	return filepath.Join(s.Dir, FileName)
}

// Write upserts the entry for meta's slug into the manifest and rewrites the
// slug's sidecar file. An existing entry with the same slug is removed first,
// so an updated article moves to the end of the list.
func (s *Store) Write(meta article.Meta) error {
	entries := s.readEntries()

	kept := make([]Entry, 0, len(entries)+1)
	for _, e := range entries {
		if e.Slug != meta.Slug {
			kept = append(kept, e)
		}
	}
	kept = append(kept, Project(meta))

	if err := s.writeJSON(s.manifestPath(), kept); err != nil {
		return apperrors.OutputError("write manifest", err)
	}

	sidecar := filepath.Join(s.Dir, meta.Slug+SidecarSuffix)
	if err := s.writeJSON(sidecar, Project(meta)); err != nil {
		return apperrors.OutputError("write sidecar", err)
	}
	return nil
}

// ReadForIndex reconstructs article metadata for index generation. The
// manifest is the source of truth; individually malformed entries are
// skipped. If the manifest is absent or yields nothing, the output directory
// is scanned for sidecar files instead.
func (s *Store) ReadForIndex() ([]article.Meta, error) {
	var metas []article.Meta
	for _, e := range s.readEntries() {
		if !e.valid() {
			s.Logger.Warn("skipping malformed manifest entry", logfields.Slug(e.Slug))
			continue
		}
		metas = append(metas, e.Meta())
	}
	if len(metas) > 0 {
		return metas, nil
	}
	return s.readSidecars()
}

// readEntries loads the manifest array. A missing or corrupt manifest is
// treated as an empty starting list, never an error.
func (s *Store) readEntries() []Entry {
	content, err := os.ReadFile(s.manifestPath())
	if err != nil {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		s.Logger.Warn("manifest unreadable, starting from empty list",
			logfields.Path(s.manifestPath()), logfields.Error(err))
		return nil
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal(item, &e); err != nil {
			s.Logger.Warn("skipping malformed manifest entry", logfields.Error(err))
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func (s *Store) readSidecars() ([]article.Meta, error) {
	dirEntries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan output directory: %w", err)
	}

	var metas []article.Meta
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), SidecarSuffix) {
			continue
		}
		content, err := os.ReadFile(filepath.Join(s.Dir, de.Name()))
		if err != nil {
			s.Logger.Warn("sidecar unreadable, skipping", logfields.Path(de.Name()), logfields.Error(err))
			continue
		}
		var e Entry
		if err := json.Unmarshal(content, &e); err != nil || !e.valid() {
			s.Logger.Warn("sidecar malformed, skipping", logfields.Path(de.Name()))
			continue
		}
		metas = append(metas, e.Meta())
	}
	return metas, nil
}

func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return atomic.WriteFile(path, bytes.NewReader(data))
}
