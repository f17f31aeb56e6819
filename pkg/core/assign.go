package core

// Split names one partition of the curated dataset.
type Split string

const (
	SplitTrain      Split = "train"
	SplitValidation Split = "validation"
	SplitTest       Split = "test"
)

// Splits returns all splits in their canonical order.
func Splits() []Split {
	return []Split{SplitTrain, SplitValidation, SplitTest}
}

// PartitionedDataset holds the curated samples grouped by split. It is
// populated once by Assign and read-only afterwards; every sample belongs
// to exactly one split, in stream order.
type PartitionedDataset struct {
	samples map[Split][]Sample
}

// NewPartitionedDataset returns an empty partitioned dataset.
func NewPartitionedDataset() *PartitionedDataset {
	return &PartitionedDataset{samples: map[Split][]Sample{}}
}

func (d *PartitionedDataset) add(split Split, s Sample) {
	d.samples[split] = append(d.samples[split], s)
}

// Samples returns the samples assigned to a split, in assignment order.
func (d *PartitionedDataset) Samples(split Split) []Sample {
	return d.samples[split]
}

// Len returns the number of samples in a split.
func (d *PartitionedDataset) Len(split Split) int {
	return len(d.samples[split])
}

// Total returns the number of samples across all splits.
func (d *PartitionedDataset) Total() int {
	n := 0
	for _, split := range Splits() {
		n += len(d.samples[split])
	}
	return n
}

// Assign distributes two sample streams into train, validation and test
// buckets according to the plan. The positive stream is consumed first:
// the first plan.TrainPositives samples land in train, the next
// plan.ValPositives in validation, the next plan.TestPositives in test.
// The negative stream then runs through the same cursor against the
// negative quotas.
//
// Samples beyond a stream's combined quota are drained and dropped. A
// stream shorter than its quota under-fills the later buckets (train
// fills first, then validation) and is not an error; callers that need
// strict quotas must check the resulting split sizes themselves.
func Assign(plan SplitPlan, positives, negatives <-chan Sample) *PartitionedDataset {
	ds := NewPartitionedDataset()
	fill(ds, positives, plan.TrainPositives, plan.ValPositives, plan.TestPositives)
	fill(ds, negatives, plan.TrainNegatives, plan.ValNegatives, plan.TestNegatives)
	return ds
}

func fill(ds *PartitionedDataset, stream <-chan Sample, train, val, test int) {
	if stream == nil {
		return
	}
	count := 0
	for sample := range stream {
		switch {
		case count < train:
			ds.add(SplitTrain, sample)
		case count < train+val:
			ds.add(SplitValidation, sample)
		case count < train+val+test:
			ds.add(SplitTest, sample)
		}
		count++
	}
}
