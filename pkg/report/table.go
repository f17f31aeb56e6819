package report

import (
	"fmt"
	"io"

	"cocoset/pkg/license"

	"github.com/olekukonko/tablewriter"
)

// TableReporter renders one table per split.
type TableReporter struct {
	Writer io.Writer
}

func (r TableReporter) Report(summary license.Summary) error {
	for _, tally := range summary.Splits {
		table := tablewriter.NewWriter(r.Writer)
		table.Header([]string{fmt.Sprintf("%s license", tally.Split), "Images"})
		for _, c := range license.Categories() {
			table.Append([]string{c.Name(), fmt.Sprintf("%d", tally.Counts[c])})
		}
		table.Append([]string{"Total", fmt.Sprintf("%d", tally.Total)})
		table.Render()
	}
	return nil
}
