package license_test

import (
	"testing"

	"cocoset/pkg/core"
	"cocoset/pkg/license"

	"github.com/stretchr/testify/require"
)

func TestFromName(t *testing.T) {
	require.Equal(t, license.CCBY, license.FromName("Attribution License"))
	require.Equal(t, license.CCBYNCSA, license.FromName("Attribution-NonCommercial-ShareAlike License"))
	require.Equal(t, license.Other, license.FromName("No known copyright restrictions"))
	require.Equal(t, license.CC0, license.FromName("United States Government Work"))

	// Unknown and missing tags fall back to CC0.
	require.Equal(t, license.CC0, license.FromName("unknown-string"))
	require.Equal(t, license.CC0, license.FromName(""))
}

func TestCategoriesAreStable(t *testing.T) {
	cats := license.Categories()
	require.Len(t, cats, 8)
	require.Equal(t, license.CCBY, cats[0])
	require.Equal(t, license.CC0, cats[7])
	for _, c := range cats {
		require.NotEmpty(t, c.Name())
		require.NotEmpty(t, c.URL())
	}
}

func TestTally(t *testing.T) {
	plan := core.SplitPlan{TrainPositives: 3, ValPositives: 1}
	positives := make(chan core.Sample, 4)
	positives <- core.Sample{ID: "1", License: "Attribution License"}
	positives <- core.Sample{ID: "2", License: "Attribution License"}
	positives <- core.Sample{ID: "3", License: "unknown-string"}
	positives <- core.Sample{ID: "4", License: "No known copyright restrictions"}
	close(positives)

	ds := core.Assign(plan, positives, nil)
	summary := license.Tally(ds)
	require.Len(t, summary.Splits, 3)

	train := summary.Splits[0]
	require.Equal(t, core.SplitTrain, train.Split)
	require.Equal(t, 3, train.Total)
	require.Equal(t, 2, train.Counts[license.CCBY])
	require.Equal(t, 1, train.Counts[license.CC0])
	require.Zero(t, train.Counts[license.Other])
	require.Zero(t, train.Counts[license.CCBYSA])

	val := summary.Splits[1]
	require.Equal(t, 1, val.Total)
	require.Equal(t, 1, val.Counts[license.Other])

	test := summary.Splits[2]
	require.Zero(t, test.Total)
	require.Len(t, test.Counts, 8)
}
