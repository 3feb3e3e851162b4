// Package output provides output formatters for dashboards.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/panelo/internal/core"
	"github.com/jmylchreest/panelo/internal/model"
)

// Formatter formats dashboards for output.
type Formatter interface {
	// Format writes formatted dashboards to the writer.
	Format(w io.Writer, dashboards []model.Dashboard) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatIDs   FormatType = "ids"
	FormatDmenu FormatType = "dmenu"
)

// ParseFormat validates a format name. Empty means plain.
func ParseFormat(s string) (FormatType, error) {
	switch f := FormatType(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPlain, nil
	case FormatPlain, FormatJSON, FormatYAML, FormatIDs, FormatDmenu:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (use plain, json, yaml, ids, or dmenu)", s)
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatIDs:
		return NewIDsFormatter(opts)
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template    string // Custom template, executed once per dashboard (plain) or box (dmenu)
	ActiveID    string // Dashboard to mark as active
	ShowIndex   bool   // Show 1-based index prefix
	ShowBoxes   bool   // List boxes under each dashboard
	BoxesOnly   bool   // ids: emit box IDs instead of dashboard IDs
	TitleMaxLen int    // Maximum title length (0 = unlimited)
	Separator   string // Field separator for dmenu format
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:   true,
		ShowBoxes:   true,
		TitleMaxLen: 60,
		Separator:   " | ",
	}
}

// templateData provides data for custom templates.
type templateData struct {
	Index     int
	Dashboard *model.Dashboard
	Box       *model.Box
	Active    bool
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": truncate,
		"host":     core.Host,
		"title": func(b *model.Box) string {
			if b == nil {
				return ""
			}
			return b.DisplayTitle()
		},
		"pos": position,
	}
}

// parseTemplate compiles a user template, returning nil when empty.
func parseTemplate(name, text string) (*template.Template, error) {
	if text == "" {
		return nil, nil
	}
	return template.New(name).Funcs(templateFuncs()).Parse(text)
}

// ValidateTemplate reports whether a custom template parses.
func ValidateTemplate(text string) error {
	_, err := parseTemplate("check", text)
	return err
}

// position renders a box's grid geometry as "x,y wxh".
func position(b *model.Box) string {
	if b == nil {
		return ""
	}
	y := "end"
	if b.Y == nil || *b.Y != model.AppendRow {
		y = fmt.Sprintf("%d", model.IntOr(b.Y, 0))
	}
	return fmt.Sprintf("%d,%s %dx%d",
		model.IntOr(b.X, 0), y,
		model.IntOr(b.Width, model.DefaultWidth),
		model.IntOr(b.Height, model.DefaultHeight))
}

// truncate shortens s to maxLen runes, marking the cut with "...".
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
