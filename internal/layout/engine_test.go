package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/panelo/internal/model"
)

func item(id string, x, y, w, h int) Item {
	return Item{I: id, X: x, Y: y, W: w, H: h, MinW: 2, MinH: 2}
}

func TestCollides(t *testing.T) {
	tests := []struct {
		name string
		a, b Item
		want bool
	}{
		{"overlap", item("a", 0, 0, 4, 4), item("b", 2, 2, 4, 4), true},
		{"side by side", item("a", 0, 0, 4, 4), item("b", 4, 0, 4, 4), false},
		{"stacked", item("a", 0, 0, 4, 4), item("b", 0, 4, 4, 4), false},
		{"same id", item("a", 0, 0, 4, 4), item("a", 0, 0, 4, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collides(tt.a, tt.b))
		})
	}
}

func TestCompact_FloatsUp(t *testing.T) {
	items := []Item{
		item("a", 0, 10, 4, 4),
		item("b", 4, 3, 4, 4),
	}

	out := Compact(items, model.GridColumns)
	assert.Equal(t, 0, out[0].Y)
	assert.Equal(t, 0, out[1].Y)
}

func TestCompact_AppendRowGoesToBottom(t *testing.T) {
	items := []Item{
		item("a", 0, 0, 4, 4),
		item("b", 0, 4, 4, 2),
		item("c", 2, model.AppendRow, 4, 4),
	}

	out := Compact(items, model.GridColumns)
	assert.Equal(t, 0, out[0].Y)
	assert.Equal(t, 4, out[1].Y)
	assert.Equal(t, 6, out[2].Y)
}

func TestCompact_StaggeredAppends(t *testing.T) {
	// Boxes added one after another land at x = 0, 2, 4 with y = AppendRow.
	var items []Item
	for i, id := range []string{"a", "b", "c"} {
		items = append(items, item(id, (i*2)%model.GridColumns, model.AppendRow, 4, 4))
		items = Compact(items, model.GridColumns)
	}

	assert.Equal(t, 0, items[0].Y)
	assert.Equal(t, 4, items[1].Y)
	assert.Equal(t, 8, items[2].Y)
	for i := range items {
		for j := range items {
			assert.False(t, Collides(items[i], items[j]), "%s overlaps %s", items[i].I, items[j].I)
		}
	}
}

func TestCompact_ResolvesOverlap(t *testing.T) {
	items := []Item{
		item("a", 0, 0, 4, 4),
		item("b", 2, 0, 4, 4),
	}

	out := Compact(items, model.GridColumns)
	assert.Equal(t, 0, out[0].Y)
	assert.Equal(t, 4, out[1].Y)
}

func TestCompact_ClampsToGrid(t *testing.T) {
	out := Compact([]Item{item("a", 10, 0, 4, 1)}, model.GridColumns)
	assert.Equal(t, 8, out[0].X)
	assert.Equal(t, 2, out[0].H)
}

func TestMove_UpSwapsWithItemAbove(t *testing.T) {
	items := []Item{
		item("a", 0, 0, 4, 4),
		item("b", 0, 4, 4, 4),
	}

	out := Move(items, "b", 0, -1, model.GridColumns)
	assert.Equal(t, 4, out[0].Y)
	assert.Equal(t, 0, out[1].Y)
}

func TestMove_DownSwapsWithItemBelow(t *testing.T) {
	items := []Item{
		item("a", 0, 0, 4, 4),
		item("b", 0, 4, 4, 4),
	}

	out := Move(items, "a", 0, 1, model.GridColumns)
	assert.Equal(t, 4, out[0].Y)
	assert.Equal(t, 0, out[1].Y)
}

func TestMove_Horizontal(t *testing.T) {
	items := []Item{item("a", 0, 0, 4, 4)}

	out := Move(items, "a", 3, 0, model.GridColumns)
	assert.Equal(t, 3, out[0].X)

	out = Move(out, "a", 20, 0, model.GridColumns)
	assert.Equal(t, 8, out[0].X, "clamped to the right edge")

	out = Move(out, "a", -20, 0, model.GridColumns)
	assert.Equal(t, 0, out[0].X, "clamped to the left edge")
}

func TestMove_PushesCollidingItemDown(t *testing.T) {
	items := []Item{
		item("a", 0, 0, 4, 4),
		item("b", 4, 0, 4, 4),
	}

	out := Move(items, "a", 2, 0, model.GridColumns)
	assert.Equal(t, 2, out[0].X)
	assert.Equal(t, 0, out[0].Y)
	assert.Equal(t, 4, out[1].Y)
}

func TestMove_UnknownID(t *testing.T) {
	items := []Item{item("a", 0, 0, 4, 4)}
	assert.Equal(t, items, Move(items, "zzz", 1, 1, model.GridColumns))
}

func TestResize(t *testing.T) {
	items := []Item{
		item("a", 0, 0, 4, 4),
		item("b", 0, 4, 4, 4),
	}

	t.Run("grow pushes neighbours", func(t *testing.T) {
		out := Resize(items, "a", 2, 2, model.GridColumns)
		require.Len(t, out, 2)
		assert.Equal(t, 6, out[0].W)
		assert.Equal(t, 6, out[0].H)
		assert.Equal(t, 6, out[1].Y)
	})

	t.Run("respects minimum size", func(t *testing.T) {
		out := Resize(items, "a", -10, -10, model.GridColumns)
		assert.Equal(t, 2, out[0].W)
		assert.Equal(t, 2, out[0].H)
		assert.Equal(t, 2, out[1].Y)
	})

	t.Run("respects grid width", func(t *testing.T) {
		out := Resize(items, "a", 50, 0, model.GridColumns)
		assert.Equal(t, 12, out[0].W)
	})
}

func TestBottom(t *testing.T) {
	assert.Equal(t, 0, Bottom(nil))
	assert.Equal(t, 7, Bottom([]Item{item("a", 0, 0, 4, 4), item("b", 4, 2, 4, 5)}))
}
