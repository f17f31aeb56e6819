package report

import (
	"fmt"
	"io"

	"cocoset/pkg/license"
)

// TextReporter writes the flat license_info.txt layout: per split a
// header, the total image count and one line per license category.
type TextReporter struct {
	Writer io.Writer
}

func (r TextReporter) Report(summary license.Summary) error {
	for _, tally := range summary.Splits {
		if _, err := fmt.Fprintf(r.Writer, "\nLicense information for %s dataset:\n", tally.Split); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(r.Writer, "Total images: %d\n", tally.Total); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(r.Writer, "Total images with license:"); err != nil {
			return err
		}
		for _, c := range license.Categories() {
			if _, err := fmt.Fprintf(r.Writer, "%s: %d\n", c.Name(), tally.Counts[c]); err != nil {
				return err
			}
		}
	}
	return nil
}
