// Package artifact persists screenshot binaries and mints stable URLs for
// them (spec.md §4.1, component C1).
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"decision-analysis/internal/model"
)

// Store is a scoped, directory-backed binary store. The zero value is not
// usable; construct with New.
type Store struct {
	dir           string
	publicBaseURL string
	seq           int64
}

// New acquires a writable directory at the given path (creating it if
// necessary) and returns a Store bound to it. It is a fatal startup error
// if the directory cannot be created or is not writable, matching the
// teacher's fail-fast-on-unusable-collaborator convention.
func New(dir, publicBaseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("artifact store: cannot create directory %s: %w", dir, err)
	}
	probe := filepath.Join(dir, ".write-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return nil, fmt.Errorf("artifact store: directory %s is not writable: %w", dir, err)
	}
	_ = os.Remove(probe)

	log.Info().Str("dir", dir).Msg("artifact store ready")
	return &Store{dir: dir, publicBaseURL: publicBaseURL}, nil
}

// Put writes bytes atomically (temp file + rename) and returns a handle.
// Filename is `{kind}_{viewport}_{epoch_ms}_{seq}.png`, where seq is a
// per-Store counter, so two Puts in the same millisecond still get distinct,
// immutable names. On any write failure, the returned handle has URL and DataURI
// both empty and Error populated; Put never returns a Go error across the
// component boundary (spec.md §4.1 contract).
func (s *Store) Put(data []byte, kind, viewport string, width, height int) model.ArtifactRef {
	seq := atomic.AddInt64(&s.seq, 1)
	filename := fmt.Sprintf("%s_%s_%d_%d.png", kind, viewport, time.Now().UnixMilli(), seq)
	path := filepath.Join(s.dir, filename)

	if err := s.writeAtomic(path, data); err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("artifact write failed")
		return model.ArtifactRef{
			Width:  width,
			Height: height,
			Error:  "artifact_write_failed",
		}
	}

	return model.ArtifactRef{
		Filename: filename,
		URL:      s.urlFor(filename),
		Width:    width,
		Height:   height,
	}
}

// PutWithDataURI is Put, but additionally returns an inline base64 data URI
// as a fallback the caller may embed when it cannot rely on the artifact
// URL being reachable (e.g. local/offline previews).
func (s *Store) PutWithDataURI(data []byte, kind, viewport string, width, height int, dataURI string) model.ArtifactRef {
	ref := s.Put(data, kind, viewport, width, height)
	if ref.Error == "" {
		ref.DataURI = dataURI
	} else if dataURI != "" {
		// Write failed but we can still hand back an inline fallback.
		ref.DataURI = dataURI
		ref.Error = ""
	}
	return ref
}

func (s *Store) writeAtomic(path string, data []byte) error {
	tmp := path + fmt.Sprintf(".tmp-%d", time.Now().UnixNano())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (s *Store) urlFor(filename string) string {
	base := s.publicBaseURL
	if base == "" {
		return "/api/artifacts/" + filename
	}
	return base + "/api/artifacts/" + filename
}

// Get reads a previously stored artifact. The bool is false if the file
// does not exist.
func (s *Store) Get(filename string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Health reports the store's directory state for the /api/artifacts/_health
// probe. It is O(n) in directory size and is only invoked by explicit
// probes (spec.md §5).
func (s *Store) Health() model.ArtifactHealth {
	info, err := os.Stat(s.dir)
	health := model.ArtifactHealth{Path: s.dir}
	if err != nil {
		return health
	}
	health.Exists = true
	health.IsDir = info.IsDir()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return health
	}
	for _, e := range entries {
		if len(health.SampleFiles) >= 5 {
			break
		}
		if e.IsDir() || e.Name() == ".write-probe" {
			continue
		}
		health.SampleFiles = append(health.SampleFiles, e.Name())
	}
	return health
}
