package report

import "cocoset/pkg/license"

// Reporter writes a license summary.
type Reporter interface {
	Report(summary license.Summary) error
}

const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)
