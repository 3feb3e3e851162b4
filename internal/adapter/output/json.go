package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/panelo/internal/model"
)

// JSONFormatter formats dashboards as JSON, in the persisted snapshot shape.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes dashboards as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, dashboards []model.Dashboard) error {
	if dashboards == nil {
		dashboards = []model.Dashboard{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dashboards)
}

// FormatBox writes a single box as JSON.
func (f *JSONFormatter) FormatBox(w io.Writer, b *model.Box) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(b)
}
