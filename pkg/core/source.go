package core

import "context"

// Query describes one retrieval request against a sample source.
type Query struct {
	// Classes restricts results to samples tagged with at least one of
	// these classes. Empty means no class filter.
	Classes []string
	// LabelKind restricts results to samples carrying this annotation type.
	LabelKind LabelKind
	// Pool names the upstream corpus split to draw from (e.g. "train").
	Pool string
	// MaxSamples caps the number of samples yielded. Zero means no cap.
	MaxSamples int
	// Shuffle asks the source to randomize sample order before yielding.
	Shuffle bool
}

// Source yields corpus samples matching a query. Implementations stream
// samples on the first channel and report at most one failure on the
// second; both channels are closed when the stream ends.
type Source interface {
	Name() string
	Retrieve(ctx context.Context, q Query) (<-chan Sample, <-chan error)
}

// Exporter writes a partitioned dataset to disk, one subdirectory per
// split, with annotations stored under the given label field.
type Exporter interface {
	Export(ctx context.Context, ds *PartitionedDataset, dir string, labelField string) error
}
