package core

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// Curator runs the full curation pipeline: plan the splits, retrieve the
// positive and negative streams from the source, assign them into buckets
// and hand the result to the exporter.
type Curator struct {
	Source   Source
	Exporter Exporter
	Logger   *zap.Logger
	Progress func(assigned, planned int)

	// PositivePool and NegativePool name the upstream corpus splits the
	// two streams are drawn from. Positives come from the larger train
	// pool and negatives from the validation pool so the two never
	// overlap.
	PositivePool string
	NegativePool string
}

// Run curates one dataset. Retrieval and export failures propagate and
// abort the run; no partial-state cleanup is attempted.
func (c *Curator) Run(ctx context.Context, req DatasetRequest, destDir string) (*PartitionedDataset, error) {
	if c.Source == nil {
		return nil, errors.New("curator: source is required")
	}

	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	plan, err := Plan(req.TotalImages, req.TrainFraction, req.ValFraction, req.TestFraction, req.Ratio)
	if err != nil {
		return nil, err
	}
	logger.Info("split plan computed",
		zap.Int("train_positives", plan.TrainPositives),
		zap.Int("train_negatives", plan.TrainNegatives),
		zap.Int("val_positives", plan.ValPositives),
		zap.Int("val_negatives", plan.ValNegatives),
		zap.Int("test_positives", plan.TestPositives),
		zap.Int("test_negatives", plan.TestNegatives),
	)

	positivePool := c.PositivePool
	if positivePool == "" {
		positivePool = "train"
	}
	negativePool := c.NegativePool
	if negativePool == "" {
		negativePool = "validation"
	}

	var (
		assigned atomic.Int64
		planned  = plan.Total()
		posCh    <-chan Sample
		posErrCh <-chan error
		negCh    <-chan Sample
		negErrCh <-chan error
	)

	if req.Ratio.Positive != 0 {
		posCh, posErrCh = c.Source.Retrieve(ctx, Query{
			Classes:    req.Classes,
			LabelKind:  req.LabelKind,
			Pool:       positivePool,
			MaxSamples: plan.Positives(),
			Shuffle:    true,
		})
	}
	if req.Ratio.Negative != 0 {
		negCh, negErrCh = c.Source.Retrieve(ctx, Query{
			LabelKind:  req.LabelKind,
			Pool:       negativePool,
			MaxSamples: plan.Negatives(),
			Shuffle:    true,
		})
	}

	ds := Assign(plan, c.counted(posCh, &assigned, planned), c.counted(negCh, &assigned, planned))

	if err := drainErrors(posErrCh); err != nil {
		return nil, fmt.Errorf("retrieve positives: %w", err)
	}
	if err := drainErrors(negErrCh); err != nil {
		return nil, fmt.Errorf("retrieve negatives: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, split := range Splits() {
		logger.Info("split populated", zap.String("split", string(split)), zap.Int("samples", ds.Len(split)))
	}

	if c.Exporter != nil && destDir != "" {
		if err := c.Exporter.Export(ctx, ds, destDir, string(req.LabelKind)); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		logger.Info("dataset exported", zap.String("dir", destDir))
	}

	return ds, nil
}

// counted passes a stream through while reporting assignment progress.
func (c *Curator) counted(in <-chan Sample, assigned *atomic.Int64, planned int) <-chan Sample {
	if in == nil || c.Progress == nil {
		return in
	}
	out := make(chan Sample)
	go func() {
		defer close(out)
		for sample := range in {
			out <- sample
			n := assigned.Add(1)
			c.Progress(int(n), planned)
		}
	}()
	return out
}

func drainErrors(errCh <-chan error) error {
	if errCh == nil {
		return nil
	}
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}
