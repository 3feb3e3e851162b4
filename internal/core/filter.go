package core

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmylchreest/panelo/internal/model"
)

// FilterOp represents a comparison operator.
type FilterOp string

const (
	FilterOpEqual     FilterOp = "="  // Exact match
	FilterOpNotEqual  FilterOp = "!=" // Not equal
	FilterOpContains  FilterOp = "~"  // Contains substring
	FilterOpRegex     FilterOp = "~=" // Regex match
	FilterOpGreater   FilterOp = ">"  // Greater than
	FilterOpLess      FilterOp = "<"  // Less than
	FilterOpGreaterEq FilterOp = ">=" // Greater than or equal
	FilterOpLessEq    FilterOp = "<=" // Less than or equal
)

// FilterCondition represents a single filter condition.
type FilterCondition struct {
	Field    string   // Field name: id, url, host, title, x, y, width, height
	Operator FilterOp // Comparison operator
	Value    string   // Value to compare against

	regex  *regexp.Regexp // Compiled regex for ~= operator
	intVal int            // Parsed value for numeric fields
}

// FilterExpr represents a compound filter expression.
// Multiple conditions are ANDed together.
type FilterExpr struct {
	Conditions []FilterCondition
}

// ParseFilter parses a filter expression string into a FilterExpr.
// Format: "field=value,field2~value2,field3>value3"
// Multiple conditions are comma-separated and ANDed together.
//
// Supported fields: id, url, host, title, x, y, width (w), height (h)
// Supported operators: = (equal), != (not equal), ~ (contains), ~= (regex), >, <, >=, <=
//
// Examples:
//   - "host=github.com" - boxes pointing at github.com
//   - "title~news" - title contains "news"
//   - "width>=6" - wide boxes
//   - "url~=^http://" - boxes still on plain http
func ParseFilter(expr string) (*FilterExpr, error) {
	if expr == "" {
		return &FilterExpr{}, nil
	}

	filter := &FilterExpr{
		Conditions: make([]FilterCondition, 0),
	}

	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		cond, err := parseCondition(part)
		if err != nil {
			return nil, err
		}
		filter.Conditions = append(filter.Conditions, cond)
	}

	return filter, nil
}

// parseCondition parses a single condition like "host=github.com".
func parseCondition(s string) (FilterCondition, error) {
	// Longest operators first so "!=" is not read as "="
	operators := []FilterOp{
		FilterOpNotEqual,
		FilterOpGreaterEq,
		FilterOpLessEq,
		FilterOpRegex,
		FilterOpEqual,
		FilterOpContains,
		FilterOpGreater,
		FilterOpLess,
	}

	for _, op := range operators {
		idx := strings.Index(s, string(op))
		if idx > 0 {
			cond := FilterCondition{
				Field:    strings.ToLower(strings.TrimSpace(s[:idx])),
				Operator: op,
				Value:    strings.TrimSpace(s[idx+len(op):]),
			}

			if err := cond.init(); err != nil {
				return FilterCondition{}, err
			}
			return cond, nil
		}
	}

	return FilterCondition{}, fmt.Errorf("invalid filter condition: %s (missing operator)", s)
}

// init normalizes the field and pre-parses the value.
func (c *FilterCondition) init() error {
	numeric := false
	switch c.Field {
	case "id":
	case "url", "link":
		c.Field = "url"
	case "host", "domain":
		c.Field = "host"
	case "title", "name":
		c.Field = "title"
	case "x", "col", "column":
		c.Field, numeric = "x", true
	case "y", "row":
		c.Field, numeric = "y", true
	case "width", "w":
		c.Field, numeric = "width", true
	case "height", "h":
		c.Field, numeric = "height", true
	default:
		return fmt.Errorf("unknown filter field: %s", c.Field)
	}

	if numeric {
		if c.Operator == FilterOpContains || c.Operator == FilterOpRegex {
			return fmt.Errorf("operator %s not supported for %s", c.Operator, c.Field)
		}
		v, err := strconv.Atoi(c.Value)
		if err != nil {
			return fmt.Errorf("invalid %s value: %s", c.Field, c.Value)
		}
		c.intVal = v
		return nil
	}

	switch c.Operator {
	case FilterOpGreater, FilterOpLess, FilterOpGreaterEq, FilterOpLessEq:
		return fmt.Errorf("operator %s not supported for %s", c.Operator, c.Field)
	case FilterOpRegex:
		re, err := regexp.Compile(c.Value)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		c.regex = re
	}

	return nil
}

// Match tests if a box matches the filter expression.
// All conditions must match (AND logic).
func (f *FilterExpr) Match(b model.Box) bool {
	for _, cond := range f.Conditions {
		if !cond.Match(b) {
			return false
		}
	}
	return true
}

// Match tests if a box matches this single condition.
// Unset coordinates compare as their grid defaults.
func (c *FilterCondition) Match(b model.Box) bool {
	switch c.Field {
	case "id":
		return c.matchString(b.ID)
	case "url":
		return c.matchString(b.URL)
	case "host":
		return c.matchString(Host(b.URL))
	case "title":
		return c.matchString(b.Title)
	case "x":
		return c.matchInt(model.IntOr(b.X, 0))
	case "y":
		return c.matchInt(model.IntOr(b.Y, 0))
	case "width":
		return c.matchInt(model.IntOr(b.Width, model.DefaultWidth))
	case "height":
		return c.matchInt(model.IntOr(b.Height, model.DefaultHeight))
	default:
		return false
	}
}

func (c *FilterCondition) matchString(fieldValue string) bool {
	switch c.Operator {
	case FilterOpEqual:
		return strings.EqualFold(fieldValue, c.Value)
	case FilterOpNotEqual:
		return !strings.EqualFold(fieldValue, c.Value)
	case FilterOpContains:
		return strings.Contains(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case FilterOpRegex:
		return c.regex != nil && c.regex.MatchString(fieldValue)
	default:
		return false
	}
}

func (c *FilterCondition) matchInt(fieldValue int) bool {
	switch c.Operator {
	case FilterOpEqual:
		return fieldValue == c.intVal
	case FilterOpNotEqual:
		return fieldValue != c.intVal
	case FilterOpGreater:
		return fieldValue > c.intVal
	case FilterOpLess:
		return fieldValue < c.intVal
	case FilterOpGreaterEq:
		return fieldValue >= c.intVal
	case FilterOpLessEq:
		return fieldValue <= c.intVal
	default:
		return false
	}
}

// FilterBoxes returns the boxes matching expr.
func FilterBoxes(boxes []model.Box, expr *FilterExpr) []model.Box {
	if expr == nil || len(expr.Conditions) == 0 {
		return boxes
	}

	result := make([]model.Box, 0, len(boxes))
	for _, b := range boxes {
		if expr.Match(b) {
			result = append(result, b)
		}
	}
	return result
}

// Host returns the lowercased host of a URL without a leading "www.".
func Host(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
