package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/panelo/internal/model"
)

// YAMLFormatter formats dashboards as a YAML sequence.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes dashboards as YAML.
func (f *YAMLFormatter) Format(w io.Writer, dashboards []model.Dashboard) error {
	if dashboards == nil {
		dashboards = []model.Dashboard{}
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(dashboards); err != nil {
		return err
	}
	return encoder.Close()
}
