// Package core provides lookup, filtering and sorting over dashboards and boxes.
package core

import (
	"strconv"
	"strings"

	"github.com/jmylchreest/panelo/internal/model"
)

// LookupDashboard resolves a user reference to a dashboard.
// The reference is tried as an exact ID, then a 1-based index, then a
// case-insensitive name. Returns nil if nothing matches.
func LookupDashboard(dashboards []model.Dashboard, ref string) *model.Dashboard {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}

	for i := range dashboards {
		if dashboards[i].ID == ref {
			return &dashboards[i]
		}
	}

	if idx, err := strconv.Atoi(ref); err == nil {
		if d := lookupByIndex(dashboards, idx); d != nil {
			return d
		}
	}

	for i := range dashboards {
		if strings.EqualFold(dashboards[i].Name, ref) {
			return &dashboards[i]
		}
	}
	return nil
}

// LookupBox resolves a user reference to a box by ID, then 1-based index.
// Returns nil if nothing matches.
func LookupBox(boxes []model.Box, ref string) *model.Box {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}

	for i := range boxes {
		if boxes[i].ID == ref {
			return &boxes[i]
		}
	}

	if idx, err := strconv.Atoi(ref); err == nil {
		return lookupByIndex(boxes, idx)
	}
	return nil
}

// lookupByIndex returns the element at a 1-based index, or nil if out of bounds.
func lookupByIndex[T any](items []T, index int) *T {
	idx := index - 1
	if idx < 0 || idx >= len(items) {
		return nil
	}
	return &items[idx]
}

// SearchBoxes finds boxes whose URL or title contains term.
// Case-insensitive substring match.
func SearchBoxes(boxes []model.Box, term string) []model.Box {
	if term == "" {
		return boxes
	}

	term = strings.ToLower(term)
	var result []model.Box

	for _, b := range boxes {
		if strings.Contains(strings.ToLower(b.URL), term) ||
			strings.Contains(strings.ToLower(b.Title), term) {
			result = append(result, b)
		}
	}

	return result
}

// TotalBoxes returns the number of boxes across all dashboards.
func TotalBoxes(dashboards []model.Dashboard) int {
	n := 0
	for _, d := range dashboards {
		n += len(d.Boxes)
	}
	return n
}
