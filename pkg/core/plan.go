package core

import (
	"errors"
	"math"
)

// ErrZeroRatio is returned by Plan when the pos:neg ratio has no parts.
var ErrZeroRatio = errors.New("plan: pos:neg ratio sums to zero")

// SplitPlan is the per-split, per-class-presence image budget derived from
// a DatasetRequest. All six counts are non-negative.
type SplitPlan struct {
	TrainPositives int `json:"train_positives"`
	TrainNegatives int `json:"train_negatives"`
	ValPositives   int `json:"val_positives"`
	ValNegatives   int `json:"val_negatives"`
	TestPositives  int `json:"test_positives"`
	TestNegatives  int `json:"test_negatives"`
}

// Positives returns the total positive-sample budget across splits.
func (p SplitPlan) Positives() int {
	return p.TrainPositives + p.ValPositives + p.TestPositives
}

// Negatives returns the total negative-sample budget across splits.
func (p SplitPlan) Negatives() int {
	return p.TrainNegatives + p.ValNegatives + p.TestNegatives
}

// Total returns the number of images the plan will actually materialize.
// Each split size is rounded independently, so this may differ from the
// requested total by rounding drift.
func (p SplitPlan) Total() int {
	return p.Positives() + p.Negatives()
}

// Plan converts a total image count, three split fractions and a pos:neg
// ratio into the six per-split counts.
//
// Every rounding uses math.Round (half away from zero). For each split,
// size = round(total*frac) and negatives = round(size/ratioTotal)*neg; when
// that product would exceed the split size it is clamped to the split size,
// so positives = size - negatives is never negative and
// positives+negatives == round(total*frac) always holds.
//
// Fraction-sum validation is the caller's responsibility (see
// NewDatasetRequest); Plan only rejects a zero-part ratio.
func Plan(total int, trainFrac, valFrac, testFrac float64, ratio Ratio) (SplitPlan, error) {
	ratioTotal := ratio.Total()
	if ratioTotal == 0 {
		return SplitPlan{}, ErrZeroRatio
	}

	var plan SplitPlan
	plan.TrainPositives, plan.TrainNegatives = splitCounts(total, trainFrac, ratioTotal, ratio.Negative)
	plan.ValPositives, plan.ValNegatives = splitCounts(total, valFrac, ratioTotal, ratio.Negative)
	plan.TestPositives, plan.TestNegatives = splitCounts(total, testFrac, ratioTotal, ratio.Negative)
	return plan, nil
}

func splitCounts(total int, frac float64, ratioTotal, ratioNeg int) (positives, negatives int) {
	images := int(math.Round(float64(total) * frac))
	negatives = int(math.Round(float64(images)/float64(ratioTotal))) * ratioNeg
	if negatives > images {
		negatives = images
	}
	positives = images - negatives
	return positives, negatives
}
