package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/panelo/internal/core"
	"github.com/jmylchreest/panelo/internal/layout"
	"github.com/jmylchreest/panelo/internal/model"
)

// cellKind selects how a grid cell is styled.
type cellKind int

const (
	cellBlank cellKind = iota
	cellBorder
	cellFocused
	cellTitle
	cellText
	cellDim
)

var cellStyles = map[cellKind]lipgloss.Style{
	cellBlank:   lipgloss.NewStyle(),
	cellBorder:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	cellFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	cellTitle:   lipgloss.NewStyle().Bold(true),
	cellText:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	cellDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),
}

// canvas is a fixed-size character grid.
type canvas struct {
	runes [][]rune
	kinds [][]cellKind
}

func newCanvas(width, height int) *canvas {
	c := &canvas{
		runes: make([][]rune, height),
		kinds: make([][]cellKind, height),
	}
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", width))
		c.kinds[y] = make([]cellKind, width)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, k cellKind) {
	if y < 0 || y >= len(c.runes) || x < 0 || x >= len(c.runes[y]) {
		return
	}
	c.runes[y][x] = r
	c.kinds[y][x] = k
}

// text writes s starting at (x, y), clipped to maxLen cells.
func (c *canvas) text(x, y int, s string, maxLen int, k cellKind) {
	if maxLen <= 0 {
		return
	}
	r := []rune(s)
	if len(r) > maxLen {
		if maxLen > 1 {
			r = append(r[:maxLen-1:maxLen-1], '…')
		} else {
			r = r[:maxLen]
		}
	}
	for i, ch := range r {
		c.set(x+i, y, ch, k)
	}
}

// rect draws a border with its top-left corner at (x, y).
func (c *canvas) rect(x, y, w, h int, k cellKind) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1
	for i := x + 1; i < right; i++ {
		c.set(i, y, '─', k)
		c.set(i, bottom, '─', k)
	}
	for j := y + 1; j < bottom; j++ {
		c.set(x, j, '│', k)
		c.set(right, j, '│', k)
	}
	c.set(x, y, '┌', k)
	c.set(right, y, '┐', k)
	c.set(x, bottom, '└', k)
	c.set(right, bottom, '┘', k)
}

// String renders the canvas, styling runs of equal kind together.
func (c *canvas) String() string {
	var sb strings.Builder
	for y := range c.runes {
		if y > 0 {
			sb.WriteByte('\n')
		}
		row, kinds := c.runes[y], c.kinds[y]
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && kinds[x] == kinds[start] {
				continue
			}
			sb.WriteString(cellStyles[kinds[start]].Render(string(row[start:x])))
			start = x
		}
	}
	return sb.String()
}

// gridView holds what is needed to draw one dashboard.
type gridView struct {
	items     []layout.Item
	boxes     map[string]model.Box
	focusID   string
	matches   map[string]bool // nil means every box matches
	width     int
	rowHeight int
}

// render draws every item as a bordered panel on a 12-column grid.
func (g gridView) render() string {
	if len(g.items) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8")).
			Render("No boxes yet. Press a to add a website.")
	}

	rowH := max(1, g.rowHeight)
	colW := max(3, g.width/model.GridColumns)
	c := newCanvas(colW*model.GridColumns, layout.Bottom(g.items)*rowH)

	for _, it := range g.items {
		x, y := it.X*colW, it.Y*rowH
		w, h := it.W*colW-1, it.H*rowH

		dim := g.matches != nil && !g.matches[it.I]
		border, title, text := cellBorder, cellTitle, cellText
		switch {
		case dim:
			border, title, text = cellDim, cellDim, cellDim
		case it.I == g.focusID:
			border = cellFocused
		}
		c.rect(x, y, w, h, border)

		b := g.boxes[it.I]
		inner := w - 4
		lines := []struct {
			s string
			k cellKind
		}{
			{b.DisplayTitle(), title},
			{core.Host(b.URL), text},
			{b.URL, text},
		}
		for i, l := range lines {
			if 1+i >= h-1 {
				break
			}
			c.text(x+2, y+1+i, l.s, inner, l.k)
		}
	}

	return c.String()
}

// focusOrder returns item IDs in grid reading order.
func focusOrder(boxes []model.Box, items []layout.Item) []string {
	placed := layout.Apply(boxes, items)
	core.SortBoxes(placed, core.SortOptions{Field: core.SortByPosition, Order: core.SortAsc})
	ids := make([]string, len(placed))
	for i, b := range placed {
		ids[i] = b.ID
	}
	return ids
}

// matchBoxes returns the IDs of boxes matching a search query, or nil for
// an empty query. Filter expressions such as "host=github.com" are
// evaluated as filters; anything else is a substring search.
func matchBoxes(boxes []model.Box, query string) map[string]bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var hits []model.Box
	if isFilterExpression(query) {
		expr, _ := core.ParseFilter(query)
		hits = core.FilterBoxes(boxes, expr)
	} else {
		hits = core.SearchBoxes(boxes, query)
	}

	matches := make(map[string]bool, len(hits))
	for _, b := range hits {
		matches[b.ID] = true
	}
	return matches
}

// isFilterExpression reports whether query parses as a filter expression.
func isFilterExpression(query string) bool {
	expr, err := core.ParseFilter(query)
	return err == nil && len(expr.Conditions) > 0
}
