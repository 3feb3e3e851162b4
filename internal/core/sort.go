package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmylchreest/panelo/internal/model"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByOrder    SortField = "order"    // insertion order
	SortByPosition SortField = "position" // grid reading order: row, then column
	SortByTitle    SortField = "title"
	SortByURL      SortField = "url"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField
	Order SortOrder
}

// DefaultSortOptions keeps boxes in the order they were added.
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByOrder,
		Order: SortAsc,
	}
}

// SortBoxes sorts boxes in place. The sort is stable.
func SortBoxes(boxes []model.Box, opts SortOptions) {
	if len(boxes) == 0 {
		return
	}
	if opts.Field == SortByOrder || opts.Field == "" {
		if opts.Order == SortDesc {
			for i, j := 0, len(boxes)-1; i < j; i, j = i+1, j-1 {
				boxes[i], boxes[j] = boxes[j], boxes[i]
			}
		}
		return
	}

	sort.SliceStable(boxes, func(i, j int) bool {
		a, b := &boxes[i], &boxes[j]
		var less, equal bool

		switch opts.Field {
		case SortByPosition:
			ay, by := model.IntOr(a.Y, 0), model.IntOr(b.Y, 0)
			ax, bx := model.IntOr(a.X, 0), model.IntOr(b.X, 0)
			if ay != by {
				less = ay < by
			} else {
				less, equal = ax < bx, ax == bx
			}
		case SortByTitle:
			at, bt := strings.ToLower(a.DisplayTitle()), strings.ToLower(b.DisplayTitle())
			less, equal = at < bt, at == bt
		case SortByURL:
			au, bu := strings.ToLower(a.URL), strings.ToLower(b.URL)
			less, equal = au < bu, au == bu
		}

		if opts.Order == SortDesc {
			return !less && !equal
		}
		return less
	})
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "order", "added", "o":
		return SortByOrder, nil
	case "position", "pos", "p", "grid":
		return SortByPosition, nil
	case "title", "t":
		return SortByTitle, nil
	case "url", "u":
		return SortByURL, nil
	default:
		return "", fmt.Errorf("invalid sort field: %s (use order, position, title, or url)", s)
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending", "a":
		return SortAsc, nil
	case "desc", "descending", "d":
		return SortDesc, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (use asc or desc)", s)
	}
}
