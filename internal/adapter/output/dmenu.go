package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/panelo/internal/model"
)

// DmenuFormatter writes one line per box for dmenu/rofi/fuzzel pickers.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	f := &DmenuFormatter{opts: opts}
	if tmpl, err := parseTemplate("dmenu", opts.Template); err == nil {
		f.template = tmpl
	}
	return f
}

// Format writes every box of every dashboard, numbered across dashboards.
func (f *DmenuFormatter) Format(w io.Writer, dashboards []model.Dashboard) error {
	index := 0
	for i := range dashboards {
		d := &dashboards[i]
		for j := range d.Boxes {
			index++
			line := f.formatLine(index, d, &d.Boxes[j])
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *DmenuFormatter) formatLine(index int, d *model.Dashboard, b *model.Box) string {
	if f.template != nil {
		var buf strings.Builder
		data := templateData{Index: index, Dashboard: d, Box: b, Active: d.ID == f.opts.ActiveID}
		if err := f.template.Execute(&buf, data); err == nil {
			return buf.String()
		}
	}

	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	var parts []string
	if f.opts.ShowIndex {
		parts = append(parts, fmt.Sprintf("%d", index))
	}
	parts = append(parts, d.Name, truncate(b.DisplayTitle(), f.opts.TitleMaxLen), b.URL)
	return strings.Join(parts, sep)
}
