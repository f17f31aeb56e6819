package license

import "cocoset/pkg/core"

// SplitTally is the license breakdown for one split.
type SplitTally struct {
	Split  core.Split       `json:"split"`
	Total  int              `json:"total"`
	Counts map[Category]int `json:"-"`
	ByName map[string]int   `json:"by_license"`
}

// Summary is the per-split license breakdown of a partitioned dataset,
// in canonical split order.
type Summary struct {
	Splits []SplitTally `json:"splits"`
}

// Tally counts samples per license category for every split.
func Tally(ds *core.PartitionedDataset) Summary {
	summary := Summary{}
	for _, split := range core.Splits() {
		tally := SplitTally{
			Split:  split,
			Counts: map[Category]int{},
			ByName: map[string]int{},
		}
		for _, c := range Categories() {
			tally.Counts[c] = 0
		}
		for _, sample := range ds.Samples(split) {
			tally.Counts[FromName(sample.License)]++
			tally.Total++
		}
		for _, c := range Categories() {
			tally.ByName[c.Name()] = tally.Counts[c]
		}
		summary.Splits = append(summary.Splits, tally)
	}
	return summary
}
