// Package artifact persists layout bundles as pretty, minified and
// compressed JSON files.
package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/icon-lists/app/layout"
)

const (
	PrettyExt   = ".json"
	MinifiedExt = ".min.json"
)

type View string

const (
	ViewFull         View = "full"
	ViewPopularity   View = "popularity"
	ViewAlphabetical View = "alphabetical"
)

var ErrPersist = errors.New("persist error")

type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() []error {
	return []error{ErrPersist, e.Err}
}

// ParseView maps a view name to a View. An empty name is the full view.
func ParseView(name string) (View, bool) {
	switch View(name) {
	case "", ViewFull:
		return ViewFull, true
	case ViewPopularity, ViewAlphabetical:
		return View(name), true
	}
	return "", false
}

// BaseName returns the file name of a view without extension.
func BaseName(output string, view View) string {
	switch view {
	case ViewFull:
		return output + "-full"
	case ViewAlphabetical:
		return output + "-a"
	default:
		return output
	}
}

func Path(dir, output string, view View, minified bool) string {
	ext := PrettyExt
	if minified {
		ext = MinifiedExt
	}
	return filepath.Join(dir, BaseName(output, view)+ext)
}

type Writer struct {
	dir        string
	compressor Compressor
}

func NewWriter(dir string, compressor Compressor) *Writer {
	return &Writer{
		dir:        dir,
		compressor: compressor,
	}
}

func (w *Writer) Dir() string {
	return w.dir
}

// EnsureDir creates the output directory if it does not exist.
func (w *Writer) EnsureDir() error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return &PersistError{Path: w.dir, Err: err}
	}
	return nil
}

// Write persists every view of bundle concurrently and returns the written
// paths. The popularity view is skipped when the bundle has no popularity
// order. Any failed view fails the whole write.
func (w *Writer) Write(ctx context.Context, output string, bundle *layout.Bundle) ([]string, error) {
	if err := w.EnsureDir(); err != nil {
		return nil, err
	}

	type job struct {
		view View
		data any
	}
	jobs := []job{{view: ViewFull, data: bundle.Full}}
	if bundle.ByPopularity != nil {
		jobs = append(jobs, job{view: ViewPopularity, data: bundle.ByPopularity})
	}
	jobs = append(jobs, job{view: ViewAlphabetical, data: bundle.Alphabetical})

	written := make([][]string, len(jobs))
	g, gctx := errgroup.WithContext(ctx)

	for i, j := range jobs {
		g.Go(func() error {
			paths, err := w.writeView(gctx, output, j.view, j.data)
			written[i] = paths
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var paths []string
	for _, p := range written {
		paths = append(paths, p...)
	}

	slog.Debug("Artifacts written", "output", output, "files", len(paths))
	return paths, nil
}

func (w *Writer) writeView(ctx context.Context, output string, view View, data any) ([]string, error) {
	prettyPath := Path(w.dir, output, view, false)
	minifiedPath := Path(w.dir, output, view, true)

	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, &PersistError{Path: prettyPath, Err: err}
	}
	if err := os.WriteFile(prettyPath, pretty, 0644); err != nil {
		return nil, &PersistError{Path: prettyPath, Err: err}
	}

	minified, err := json.Marshal(data)
	if err != nil {
		return nil, &PersistError{Path: minifiedPath, Err: err}
	}
	if err := os.WriteFile(minifiedPath, minified, 0644); err != nil {
		return nil, &PersistError{Path: minifiedPath, Err: err}
	}

	if err := w.compressor.Compress(ctx, minifiedPath); err != nil {
		return nil, &PersistError{Path: minifiedPath + CompressedExt, Err: err}
	}

	return []string{prettyPath, minifiedPath, minifiedPath + CompressedExt}, nil
}
