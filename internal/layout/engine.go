package layout

import (
	"sort"

	"github.com/jmylchreest/panelo/internal/model"
)

// Bottom returns the first row below every item.
func Bottom(items []Item) int {
	bottom := 0
	for _, it := range items {
		if it.Y+it.H > bottom {
			bottom = it.Y + it.H
		}
	}
	return bottom
}

// Collides reports whether two distinct items overlap.
func Collides(a, b Item) bool {
	if a.I == b.I {
		return false
	}
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// Compact packs items upward so no row is left empty above an item.
// Items are processed top to bottom, left to right; the result keeps the
// input order.
func Compact(items []Item, cols int) []Item {
	return compact(items, cols, "")
}

// Move shifts an item by whole grid cells and re-compacts.
// Moving up jumps above the nearest item overhead, moving down jumps below
// the nearest item underneath, so a single step always changes the order.
func Move(items []Item, id string, dx, dy, cols int) []Item {
	cols = columns(cols)
	out := clampAll(items, cols)
	idx := Find(out, id)
	if idx < 0 {
		return out
	}
	it := out[idx]

	it.X = clamp(it.X+dx, 0, cols-it.W)
	switch {
	case dy < 0:
		if above := nearest(out, it, true); above >= 0 {
			it.Y = out[above].Y
		} else {
			it.Y = max(0, it.Y+dy)
		}
	case dy > 0:
		if below := nearest(out, it, false); below >= 0 {
			it.Y = out[below].Y + out[below].H
		} else {
			it.Y += dy
		}
	}
	out[idx] = it

	pushDown(out, idx)
	return compact(out, cols, id)
}

// Resize grows or shrinks an item, respecting minimum size and grid width.
func Resize(items []Item, id string, dw, dh, cols int) []Item {
	cols = columns(cols)
	out := clampAll(items, cols)
	idx := Find(out, id)
	if idx < 0 {
		return out
	}
	it := out[idx]
	it.W = clamp(it.W+dw, minW(it), cols-it.X)
	it.H = max(minH(it), it.H+dh)
	out[idx] = it

	pushDown(out, idx)
	return compact(out, cols, id)
}

// nearest finds the closest horizontally overlapping item above or below.
func nearest(items []Item, it Item, above bool) int {
	best := -1
	for i, o := range items {
		if o.I == it.I || o.X >= it.X+it.W || o.X+o.W <= it.X {
			continue
		}
		if above {
			if o.Y < it.Y && (best < 0 || o.Y > items[best].Y) {
				best = i
			}
		} else {
			if o.Y > it.Y && (best < 0 || o.Y < items[best].Y) {
				best = i
			}
		}
	}
	return best
}

// pushDown moves every item overlapping items[idx] to just below it.
func pushDown(items []Item, idx int) {
	moved := items[idx]
	for i := range items {
		if i != idx && Collides(items[i], moved) {
			items[i].Y = moved.Y + moved.H
		}
	}
}

func compact(items []Item, cols int, first string) []Item {
	out := clampAll(items, cols)

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := out[order[a]], out[order[b]]
		if ia.Y != ib.Y {
			return ia.Y < ib.Y
		}
		if ia.I == first || ib.I == first {
			return ia.I == first
		}
		return ia.X < ib.X
	})

	placed := make([]Item, 0, len(out))
	for _, idx := range order {
		it := out[idx]

		if b := Bottom(placed); it.Y > b {
			it.Y = b
		}
		for it.Y > 0 {
			up := it
			up.Y--
			if collision(placed, up) >= 0 {
				break
			}
			it.Y--
		}
		for c := collision(placed, it); c >= 0; c = collision(placed, it) {
			it.Y = placed[c].Y + placed[c].H
		}

		placed = append(placed, it)
		out[idx] = it
	}
	return out
}

func collision(placed []Item, it Item) int {
	for i := range placed {
		if Collides(placed[i], it) {
			return i
		}
	}
	return -1
}

func columns(cols int) int {
	if cols <= 0 {
		return model.GridColumns
	}
	return cols
}

func clampAll(items []Item, cols int) []Item {
	cols = columns(cols)
	out := make([]Item, len(items))
	for i, it := range items {
		it.W = clamp(it.W, minW(it), cols)
		it.H = max(minH(it), it.H)
		it.X = clamp(it.X, 0, cols-it.W)
		it.Y = max(0, it.Y)
		out[i] = it
	}
	return out
}

func minW(it Item) int {
	return max(1, it.MinW)
}

func minH(it Item) int {
	return max(1, it.MinH)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}
