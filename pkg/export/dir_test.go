package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cocoset/pkg/core"

	"github.com/stretchr/testify/require"
)

func partitioned(t *testing.T, imageDir string) *core.PartitionedDataset {
	t.Helper()
	samples := make(chan core.Sample, 3)
	for _, id := range []string{"a", "b", "c"} {
		path := ""
		if imageDir != "" {
			path = filepath.Join(imageDir, id+".jpg")
			require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes-"+id), 0o600))
		}
		samples <- core.Sample{
			ID:        id,
			ImagePath: path,
			License:   "Attribution License",
			Classes:   []string{"keyboard"},
		}
	}
	close(samples)
	plan := core.SplitPlan{TrainPositives: 2, ValPositives: 1}
	return core.Assign(plan, samples, nil)
}

func TestDirExporterLayout(t *testing.T) {
	imageDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "mydataset")
	ds := partitioned(t, imageDir)

	exp := DirExporter{CopyMedia: true}
	require.NoError(t, exp.Export(context.Background(), ds, outDir, "segmentations"))

	for _, split := range core.Splits() {
		_, err := os.Stat(filepath.Join(outDir, string(split), "labels.json"))
		require.NoError(t, err, split)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "train", "labels.json"))
	require.NoError(t, err)
	var manifest splitManifest
	require.NoError(t, json.Unmarshal(data, &manifest))
	require.Equal(t, "train", manifest.Split)
	require.Equal(t, "segmentations", manifest.LabelField)
	require.Len(t, manifest.Images, 2)
	require.Equal(t, "a", manifest.Images[0].ID)
	require.Equal(t, []string{"keyboard"}, manifest.Images[0].Labels["segmentations"])

	copied, err := os.ReadFile(filepath.Join(outDir, "train", manifest.Images[0].File))
	require.NoError(t, err)
	require.Equal(t, "jpeg-bytes-a", string(copied))
}

func TestDirExporterRunManifest(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	ds := partitioned(t, "")

	exp := DirExporter{}
	require.NoError(t, exp.Export(context.Background(), ds, outDir, "detections"))

	data, err := os.ReadFile(filepath.Join(outDir, "export.json"))
	require.NoError(t, err)
	var run runManifest
	require.NoError(t, json.Unmarshal(data, &run))
	require.NotEmpty(t, run.RunID)
	require.Equal(t, "detections", run.LabelField)
	require.Equal(t, 2, run.Counts["train"])
	require.Equal(t, 1, run.Counts["validation"])
	require.Zero(t, run.Counts["test"])
}

func TestDirExporterMissingImageFails(t *testing.T) {
	samples := make(chan core.Sample, 1)
	samples <- core.Sample{ID: "ghost", ImagePath: "/nonexistent/ghost.jpg"}
	close(samples)
	ds := core.Assign(core.SplitPlan{TrainPositives: 1}, samples, nil)

	exp := DirExporter{CopyMedia: true}
	err := exp.Export(context.Background(), ds, t.TempDir(), "detections")
	require.Error(t, err)
	require.Contains(t, err.Error(), "ghost")
}
