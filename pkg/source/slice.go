package source

import (
	"context"

	"cocoset/pkg/core"
)

// SliceSource serves in-memory entries. Useful in tests and for composing
// pre-filtered pools.
type SliceSource struct {
	NameHint string
	Items    []Entry
	Seed     int64
}

func NewSliceSource(items []Entry, name string) *SliceSource {
	if name == "" {
		name = "slice"
	}
	return &SliceSource{NameHint: name, Items: items}
}

func (s *SliceSource) Name() string {
	return s.NameHint
}

func (s *SliceSource) Retrieve(ctx context.Context, q core.Query) (<-chan core.Sample, <-chan error) {
	sampleCh := make(chan core.Sample)
	errCh := make(chan error, 1)
	go func() {
		defer close(sampleCh)
		defer close(errCh)
		ms := ManifestSource{NameHint: s.NameHint, Seed: s.Seed}
		if err := ms.emit(ctx, s.Items, q, sampleCh); err != nil {
			errCh <- err
		}
	}()
	return sampleCh, errCh
}
