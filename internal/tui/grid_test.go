package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/panelo/internal/layout"
	"github.com/jmylchreest/panelo/internal/model"
)

func gridBoxes() []model.Box {
	return []model.Box{
		{ID: "b1", URL: "https://github.com/jmylchreest", Title: "GitHub", X: model.Int(4), Y: model.Int(0), Width: model.Int(4), Height: model.Int(4)},
		{ID: "b2", URL: "https://news.ycombinator.com", Title: "Hacker News", X: model.Int(0), Y: model.Int(0), Width: model.Int(4), Height: model.Int(4)},
		{ID: "b3", URL: "https://www.example.com", X: model.Int(0), Y: model.Int(4), Width: model.Int(4), Height: model.Int(4)},
	}
}

func TestGridView_Render(t *testing.T) {
	boxes := gridBoxes()
	byID := make(map[string]model.Box, len(boxes))
	for _, b := range boxes {
		byID[b.ID] = b
	}

	g := gridView{
		items:     layout.FromBoxes(boxes),
		boxes:     byID,
		focusID:   "b1",
		width:     120,
		rowHeight: 2,
	}
	out := g.render()

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 16, "8 rows of height 2")
	assert.Contains(t, out, "GitHub")
	assert.Contains(t, out, "Hacker News")
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "┘")
}

func TestGridView_RenderEmpty(t *testing.T) {
	out := gridView{width: 80, rowHeight: 3}.render()
	assert.Contains(t, out, "No boxes yet")
}

func TestGridView_RenderTruncatesLongTitles(t *testing.T) {
	b := model.Box{ID: "b1", URL: "https://example.com", Title: strings.Repeat("x", 200)}
	g := gridView{
		items:     layout.FromBoxes([]model.Box{b}),
		boxes:     map[string]model.Box{"b1": b},
		width:     60,
		rowHeight: 2,
	}
	out := g.render()
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, strings.Repeat("x", 200))
}

func TestCanvas_Clipping(t *testing.T) {
	c := newCanvas(4, 2)
	c.set(-1, 0, 'a', cellText)
	c.set(10, 1, 'b', cellText)
	c.text(2, 0, "hello", 10, cellText)

	assert.Equal(t, "  he\n    ", c.String())
}

func TestFocusOrder(t *testing.T) {
	boxes := gridBoxes()
	order := focusOrder(boxes, layout.FromBoxes(boxes))
	assert.Equal(t, []string{"b2", "b1", "b3"}, order)
}

func TestFocusOrder_Empty(t *testing.T) {
	assert.Empty(t, focusOrder(nil, nil))
}

func TestMatchBoxes(t *testing.T) {
	boxes := gridBoxes()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"substring_title", "hacker", []string{"b2"}},
		{"substring_url", "example", []string{"b3"}},
		{"filter_host", "host=github.com", []string{"b1"}},
		{"filter_www_stripped", "host=example.com", []string{"b3"}},
		{"filter_numeric", "y>=4", []string{"b3"}},
		{"no_match", "nothing-here", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchBoxes(boxes, tt.query)
			require.NotNil(t, got)
			assert.Len(t, got, len(tt.want))
			for _, id := range tt.want {
				assert.True(t, got[id], "expected %s to match", id)
			}
		})
	}
}

func TestMatchBoxes_EmptyQuery(t *testing.T) {
	assert.Nil(t, matchBoxes(gridBoxes(), "  "))
}
