package core_test

import (
	"testing"

	"cocoset/pkg/core"

	"github.com/stretchr/testify/require"
)

func TestNewDatasetRequest(t *testing.T) {
	req, err := core.NewDatasetRequest(100, 0.8, 0.1, 0.1,
		core.Ratio{Positive: 4, Negative: 1}, []string{"cat", "dog"}, core.LabelDetections)
	require.NoError(t, err)
	require.Equal(t, 100, req.TotalImages)
	require.Equal(t, []string{"cat", "dog"}, req.Classes)
}

func TestNewDatasetRequestRejectsBadFractionSum(t *testing.T) {
	_, err := core.NewDatasetRequest(100, 0.8, 0.1, 0.2,
		core.Ratio{Positive: 1, Negative: 1}, []string{"cat"}, core.LabelDetections)
	require.Error(t, err)
	require.Contains(t, err.Error(), "sum")
}

func TestNewDatasetRequestFractionTolerance(t *testing.T) {
	_, err := core.NewDatasetRequest(100, 0.333, 0.333, 0.334,
		core.Ratio{Positive: 1, Negative: 1}, []string{"cat"}, core.LabelSegmentations)
	require.NoError(t, err)
}

func TestNewDatasetRequestRejectsZeroRatio(t *testing.T) {
	_, err := core.NewDatasetRequest(100, 0.7, 0.2, 0.1,
		core.Ratio{}, []string{"cat"}, core.LabelDetections)
	require.Error(t, err)
}

func TestNewDatasetRequestRejectsEmptyClasses(t *testing.T) {
	_, err := core.NewDatasetRequest(100, 0.7, 0.2, 0.1,
		core.Ratio{Positive: 1, Negative: 1}, nil, core.LabelDetections)
	require.Error(t, err)
}

func TestNewDatasetRequestRejectsUnknownLabelKind(t *testing.T) {
	_, err := core.NewDatasetRequest(100, 0.7, 0.2, 0.1,
		core.Ratio{Positive: 1, Negative: 1}, []string{"cat"}, core.LabelKind("boxes"))
	require.Error(t, err)
}

func TestDefaultRequestIsValid(t *testing.T) {
	def := core.DefaultRequest()
	req, err := core.NewDatasetRequest(def.TotalImages, def.TrainFraction, def.ValFraction,
		def.TestFraction, def.Ratio, def.Classes, def.LabelKind)
	require.NoError(t, err)
	require.Equal(t, def, req)
}

func TestParseRatio(t *testing.T) {
	cases := []struct {
		in      string
		want    core.Ratio
		wantErr bool
	}{
		{in: "10:1", want: core.Ratio{Positive: 10, Negative: 1}},
		{in: " 4 : 1 ", want: core.Ratio{Positive: 4, Negative: 1}},
		{in: "0:1", want: core.Ratio{Positive: 0, Negative: 1}},
		{in: "10", wantErr: true},
		{in: "1:2:3", wantErr: true},
		{in: "a:b", wantErr: true},
		{in: "-1:2", wantErr: true},
	}
	for _, tc := range cases {
		got, err := core.ParseRatio(tc.in)
		if tc.wantErr {
			require.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseLabelKind(t *testing.T) {
	kind, err := core.ParseLabelKind(" Segmentations ")
	require.NoError(t, err)
	require.Equal(t, core.LabelSegmentations, kind)

	kind, err = core.ParseLabelKind("detections")
	require.NoError(t, err)
	require.Equal(t, core.LabelDetections, kind)

	_, err = core.ParseLabelKind("masks")
	require.Error(t, err)
}
