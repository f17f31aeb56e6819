package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LabelKind is the annotation type requested for the curated dataset.
type LabelKind string

const (
	LabelDetections    LabelKind = "detections"
	LabelSegmentations LabelKind = "segmentations"
)

// ParseLabelKind maps user input to a LabelKind.
func ParseLabelKind(s string) (LabelKind, error) {
	switch LabelKind(strings.ToLower(strings.TrimSpace(s))) {
	case LabelDetections:
		return LabelDetections, nil
	case LabelSegmentations:
		return LabelSegmentations, nil
	default:
		return "", fmt.Errorf("unknown label kind: %q (want detections or segmentations)", s)
	}
}

// Ratio is the desired proportion of positive samples (images containing a
// requested class) to negative samples (images containing none).
type Ratio struct {
	Positive int `json:"positive" validate:"min=0"`
	Negative int `json:"negative" validate:"min=0"`
}

// Total returns the number of ratio parts.
func (r Ratio) Total() int {
	return r.Positive + r.Negative
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.Positive, r.Negative)
}

// ParseRatio parses a "pos:neg" string into a Ratio.
func ParseRatio(s string) (Ratio, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Ratio{}, fmt.Errorf("ratio %q: want two integers separated by a colon", s)
	}
	pos, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Ratio{}, fmt.Errorf("ratio %q: %w", s, err)
	}
	neg, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Ratio{}, fmt.Errorf("ratio %q: %w", s, err)
	}
	if pos < 0 || neg < 0 {
		return Ratio{}, fmt.Errorf("ratio %q: parts must be non-negative", s)
	}
	return Ratio{Positive: pos, Negative: neg}, nil
}

// fractionTolerance is how far the three split fractions may drift from
// summing to exactly 1.0 before the request is rejected.
const fractionTolerance = 0.001

// DatasetRequest is the validated curation configuration. Construct it with
// NewDatasetRequest or DefaultRequest; it is immutable afterwards.
type DatasetRequest struct {
	TotalImages   int       `json:"total_images" validate:"min=0"`
	TrainFraction float64   `json:"train_fraction" validate:"min=0,max=1"`
	ValFraction   float64   `json:"val_fraction" validate:"min=0,max=1"`
	TestFraction  float64   `json:"test_fraction" validate:"min=0,max=1"`
	Ratio         Ratio     `json:"pos_neg_ratio"`
	Classes       []string  `json:"classes" validate:"min=1,dive,required"`
	LabelKind     LabelKind `json:"label_kind" validate:"oneof=detections segmentations"`
}

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// NewDatasetRequest builds and validates a DatasetRequest.
func NewDatasetRequest(total int, trainFrac, valFrac, testFrac float64, ratio Ratio, classes []string, kind LabelKind) (DatasetRequest, error) {
	req := DatasetRequest{
		TotalImages:   total,
		TrainFraction: trainFrac,
		ValFraction:   valFrac,
		TestFraction:  testFrac,
		Ratio:         ratio,
		Classes:       classes,
		LabelKind:     kind,
	}
	if err := requestValidator.Struct(req); err != nil {
		return DatasetRequest{}, fmt.Errorf("dataset request: %w", err)
	}
	sum := trainFrac + valFrac + testFrac
	if math.Abs(sum-1.0) > fractionTolerance {
		return DatasetRequest{}, fmt.Errorf("dataset request: split fractions sum to %.3f, want 1.0", sum)
	}
	if ratio.Total() == 0 {
		return DatasetRequest{}, fmt.Errorf("dataset request: pos:neg ratio must not be 0:0")
	}
	return req, nil
}

// DefaultRequest returns the stock configuration: 300 images, a 70/20/10
// split, keyboard segmentations, ten positives per negative.
func DefaultRequest() DatasetRequest {
	return DatasetRequest{
		TotalImages:   300,
		TrainFraction: 0.70,
		ValFraction:   0.20,
		TestFraction:  0.10,
		Ratio:         Ratio{Positive: 10, Negative: 1},
		Classes:       []string{"keyboard"},
		LabelKind:     LabelSegmentations,
	}
}
