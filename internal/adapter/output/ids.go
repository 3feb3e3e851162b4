package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/panelo/internal/model"
)

// IDsFormatter outputs just the IDs, one per line.
// Useful for piping to other commands (e.g., xargs panelo box remove).
type IDsFormatter struct {
	opts FormatterOptions
}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter(opts FormatterOptions) *IDsFormatter {
	return &IDsFormatter{opts: opts}
}

// Format writes dashboard IDs, or box IDs when BoxesOnly is set.
func (f *IDsFormatter) Format(w io.Writer, dashboards []model.Dashboard) error {
	for _, d := range dashboards {
		if !f.opts.BoxesOnly {
			if _, err := fmt.Fprintln(w, d.ID); err != nil {
				return err
			}
			continue
		}
		for _, b := range d.Boxes {
			if _, err := fmt.Fprintln(w, b.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
