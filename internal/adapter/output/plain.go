package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/panelo/internal/model"
)

// PlainFormatter formats dashboards as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
// An invalid custom template falls back to the default layout.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}
	if tmpl, err := parseTemplate("plain", opts.Template); err == nil {
		f.template = tmpl
	}
	return f
}

// Format writes dashboards as plain text.
func (f *PlainFormatter) Format(w io.Writer, dashboards []model.Dashboard) error {
	for i := range dashboards {
		if err := f.formatDashboard(w, i+1, &dashboards[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatDashboard(w io.Writer, index int, d *model.Dashboard) error {
	active := d.ID == f.opts.ActiveID

	if f.template != nil {
		data := templateData{Index: index, Dashboard: d, Active: active}
		return f.template.Execute(w, data)
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}
	sb.WriteString(d.Name)
	sb.WriteString(fmt.Sprintf(" (%d/%d)", len(d.Boxes), model.MaxBoxes))
	if active {
		sb.WriteString(" *")
	}
	sb.WriteString("\n")

	if f.opts.ShowBoxes {
		for i := range d.Boxes {
			b := &d.Boxes[i]
			sb.WriteString(fmt.Sprintf("    %d. %s  %s  [%s]\n",
				i+1, truncate(b.DisplayTitle(), f.opts.TitleMaxLen), b.URL, position(b)))
		}
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}

// FormatField outputs a specific field from a box.
func FormatField(b *model.Box, field string) string {
	switch strings.ToLower(field) {
	case "id":
		return b.ID
	case "url":
		return b.URL
	case "title":
		return b.DisplayTitle()
	case "position", "pos":
		return position(b)
	case "all", "full":
		return fmt.Sprintf("%s\n%s", b.DisplayTitle(), b.URL)
	default:
		return b.URL
	}
}
