package input

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/panelo/internal/layout"
)

// ReadLayout decodes grid items from YAML or JSON (JSON is valid YAML).
// Every item needs an id and a positive size.
func ReadLayout(r io.Reader) ([]layout.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &AdapterError{Source: "layout", Message: "failed to read layout", Err: err}
	}

	var items []layout.Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, &AdapterError{Source: "layout", Message: "invalid layout", Err: err}
	}

	for i, it := range items {
		if it.I == "" {
			return nil, &AdapterError{Source: "layout", Message: fmt.Sprintf("entry %d has no id", i+1)}
		}
		if it.W <= 0 || it.H <= 0 || it.X < 0 || it.Y < 0 {
			return nil, &AdapterError{Source: "layout", Message: fmt.Sprintf("entry %s has invalid geometry", it.I)}
		}
	}
	return items, nil
}
