// Package export materializes a partitioned dataset on disk, one
// subdirectory per split.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cocoset/pkg/core"

	"github.com/google/uuid"
)

// DirExporter writes each split into <dir>/<split>/: images copied under
// data/ and one labels.json annotation index per split, plus a top-level
// export.json run manifest.
type DirExporter struct {
	// CopyMedia controls whether image files are copied next to the
	// annotation index. Samples without a readable image path fail the
	// export when set.
	CopyMedia bool
}

type splitManifest struct {
	Split      string       `json:"split"`
	LabelField string       `json:"label_field"`
	Images     []imageEntry `json:"images"`
}

type imageEntry struct {
	ID      string              `json:"id"`
	File    string              `json:"file,omitempty"`
	License string              `json:"license,omitempty"`
	Labels  map[string][]string `json:"labels,omitempty"`
}

type runManifest struct {
	RunID      string         `json:"run_id"`
	CreatedAt  time.Time      `json:"created_at"`
	LabelField string         `json:"label_field"`
	Counts     map[string]int `json:"counts"`
}

func (e DirExporter) Export(ctx context.Context, ds *core.PartitionedDataset, dir, labelField string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	counts := map[string]int{}
	for _, split := range core.Splits() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.exportSplit(ctx, ds.Samples(split), filepath.Join(dir, string(split)), string(split), labelField); err != nil {
			return fmt.Errorf("split %s: %w", split, err)
		}
		counts[string(split)] = ds.Len(split)
	}

	run := runManifest{
		RunID:      uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		LabelField: labelField,
		Counts:     counts,
	}
	return writeJSON(filepath.Join(dir, "export.json"), run)
}

func (e DirExporter) exportSplit(ctx context.Context, samples []core.Sample, dir, split, labelField string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	dataDir := filepath.Join(dir, "data")
	if e.CopyMedia {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return err
		}
	}

	manifest := splitManifest{
		Split:      split,
		LabelField: labelField,
		Images:     make([]imageEntry, 0, len(samples)),
	}
	for _, sample := range samples {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry := imageEntry{
			ID:      sample.ID,
			License: sample.License,
		}
		if len(sample.Classes) > 0 {
			entry.Labels = map[string][]string{labelField: sample.Classes}
		}
		if e.CopyMedia {
			name := sample.ID + filepath.Ext(sample.ImagePath)
			if err := copyFile(sample.ImagePath, filepath.Join(dataDir, name)); err != nil {
				return fmt.Errorf("sample %s: %w", sample.ID, err)
			}
			entry.File = filepath.Join("data", name)
		}
		manifest.Images = append(manifest.Images, entry)
	}

	return writeJSON(filepath.Join(dir, "labels.json"), manifest)
}

// writeJSON writes atomically: encode to a temp file in the destination
// directory, then rename into place.
func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "tmp-*.json")
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	if err := os.Rename(f.Name(), path); err != nil {
		os.Remove(f.Name())
		return err
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
