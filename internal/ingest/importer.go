package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/store"
)

// Extraction is the parsed content of one activity file.
type Extraction struct {
	Filename string
	Date     time.Time
	Metrics  store.Metrics
}

// Extractor parses an activity file into metrics. ok is false when the
// file is readable but not a running activity.
type Extractor interface {
	Extract(path string) (ext *Extraction, ok bool, err error)
}

// Store is the subset of the activity store the importer needs.
type Store interface {
	Exists(hash string) (bool, error)
	Upsert(a *store.Activity) error
}

// Progress reports how far through a batch the importer is.
type Progress struct {
	Processed int
	Total     int
	File      string
}

// Result summarizes one import batch. Total is the number of candidate
// files found, so a caller can tell "nothing to import" (Total 0) from
// "everything was already imported" (New 0, Total > 0).
type Result struct {
	SessionID  int64
	Total      int
	New        int
	Duplicates int
	Skipped    int
	Errors     []error
}

// Importer brings activity files into the store, deduplicating by file
// content.
type Importer struct {
	store     Store
	extractor Extractor
}

func NewImporter(s Store, e Extractor) *Importer {
	return &Importer{store: s, extractor: e}
}

// ImportDir imports every .fit file directly inside dir.
func (im *Importer) ImportDir(ctx context.Context, dir string, progress func(Progress)) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading import directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".fit") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	return im.ImportFiles(ctx, paths, progress)
}

// ImportFiles imports the given files as one batch. All rows written
// by the batch share a session ID so they can be queried as "last
// import". Per-file failures are recorded in the result and never
// abort the batch; only cancellation stops it early.
func (im *Importer) ImportFiles(ctx context.Context, paths []string, progress func(Progress)) (*Result, error) {
	result := &Result{
		SessionID: time.Now().Unix(),
		Total:     len(paths),
	}

	for i, path := range paths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if progress != nil {
			progress(Progress{Processed: i, Total: len(paths), File: filepath.Base(path)})
		}

		if err := im.importOne(path, result); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", filepath.Base(path), err))
		}
	}

	if progress != nil {
		progress(Progress{Processed: len(paths), Total: len(paths)})
	}
	return result, nil
}

func (im *Importer) importOne(path string, result *Result) error {
	hash, err := hashFile(path)
	if err != nil {
		return err
	}

	// Content hash is the identity, so a renamed copy of an imported
	// file is still a duplicate.
	exists, err := im.store.Exists(hash)
	if err != nil {
		return err
	}
	if exists {
		result.Duplicates++
		return nil
	}

	ext, ok, err := im.extractor.Extract(path)
	if err != nil {
		return err
	}
	if !ok {
		result.Skipped++
		return nil
	}

	activity := &store.Activity{
		Hash:      hash,
		Filename:  ext.Filename,
		Date:      ext.Date,
		SessionID: result.SessionID,
		Metrics:   ext.Metrics,
	}
	if err := im.store.Upsert(activity); err != nil {
		return err
	}
	result.New++
	return nil
}

// hashFile computes the hex SHA-256 of a file, streaming in 64KB
// chunks so large files never load into memory.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, 64*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hashing file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
