// Package layout maps dashboard boxes onto a 12-column grid and back.
//
// FromBoxes and Apply are the synchronizer: a pure translation between
// stored box coordinates and grid records. Compact, Move and Resize form
// the grid engine that the TUI uses in place of a browser grid library.
package layout

import (
	"github.com/jmylchreest/panelo/internal/model"
)

// Item is the grid engine's positional record for one box.
type Item struct {
	I    string `json:"i" yaml:"i"`
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
	W    int    `json:"w" yaml:"w"`
	H    int    `json:"h" yaml:"h"`
	MinW int    `json:"minW,omitempty" yaml:"minW,omitempty"`
	MinH int    `json:"minH,omitempty" yaml:"minH,omitempty"`
}

// FromBoxes converts boxes to grid items.
// Missing x/y default to 0 and missing width/height to the default size.
func FromBoxes(boxes []model.Box) []Item {
	items := make([]Item, len(boxes))
	for i, b := range boxes {
		items[i] = Item{
			I:    b.ID,
			X:    model.IntOr(b.X, 0),
			Y:    model.IntOr(b.Y, 0),
			W:    sizeOr(b.Width, model.DefaultWidth),
			H:    sizeOr(b.Height, model.DefaultHeight),
			MinW: model.MinWidth,
			MinH: model.MinHeight,
		}
	}
	return items
}

// sizeOr treats zero like unset, matching how the grid reads a falsy size.
func sizeOr(p *int, def int) int {
	if p == nil || *p == 0 {
		return def
	}
	return *p
}

// Apply copies grid coordinates back onto boxes with a matching item.
// Boxes without an item keep their coordinates. The input is not modified.
func Apply(boxes []model.Box, items []Item) []model.Box {
	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[it.I] = it
	}

	out := make([]model.Box, len(boxes))
	for i, b := range boxes {
		out[i] = b.Clone()
		it, ok := byID[b.ID]
		if !ok {
			continue
		}
		out[i].X = model.Int(it.X)
		out[i].Y = model.Int(it.Y)
		out[i].Width = model.Int(it.W)
		out[i].Height = model.Int(it.H)
	}
	return out
}

// Find returns the index of the item with the given id, or -1.
func Find(items []Item, id string) int {
	for i := range items {
		if items[i].I == id {
			return i
		}
	}
	return -1
}
