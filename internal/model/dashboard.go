// Package model defines the core data structures for panelo.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Grid and capacity limits.
const (
	MaxBoxes      = 15
	GridColumns   = 12
	DefaultWidth  = 4
	DefaultHeight = 4
	MinWidth      = 2
	MinHeight     = 2
)

// AppendRow is the row sentinel for "below all existing content".
// Vertical compaction resolves it to the first free row.
const AppendRow = math.MaxInt32

// Default dashboard identity used for first runs and legacy migration.
const (
	DefaultDashboardID   = "default"
	DefaultDashboardName = "Main Dashboard"
	PlaceholderName      = "My Dashboard"
)

// Box is a single embedded website panel.
// Coordinates are in grid units and are nil until first placed.
type Box struct {
	ID     string `json:"id" yaml:"id"`
	URL    string `json:"url" yaml:"url"`
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	X      *int   `json:"x,omitempty" yaml:"x,omitempty"`
	Y      *int   `json:"y,omitempty" yaml:"y,omitempty"`
	Width  *int   `json:"width,omitempty" yaml:"width,omitempty"`
	Height *int   `json:"height,omitempty" yaml:"height,omitempty"`
}

// Dashboard is a named, ordered collection of boxes.
type Dashboard struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Boxes []Box  `json:"boxes" yaml:"boxes"`
}

// Validation errors.
var (
	ErrEmptyID      = errors.New("id cannot be empty")
	ErrEmptyURL     = errors.New("url cannot be empty")
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrTooManyBoxes = fmt.Errorf("dashboard cannot hold more than %d boxes", MaxBoxes)
	ErrDuplicateID  = errors.New("duplicate id")
)

// NewID returns a fresh ULID string.
func NewID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}

// NewDashboard creates an empty dashboard with a generated ID.
func NewDashboard(name string) (*Dashboard, error) {
	id, err := NewID()
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		ID:    id,
		Name:  name,
		Boxes: []Box{},
	}, nil
}

// DefaultDashboard returns the empty dashboard used when nothing is stored.
func DefaultDashboard() Dashboard {
	return Dashboard{
		ID:    DefaultDashboardID,
		Name:  DefaultDashboardName,
		Boxes: []Box{},
	}
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

// IntOr dereferences p, returning def when p is nil.
func IntOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// DisplayTitle returns the title, falling back to the URL.
func (b *Box) DisplayTitle() string {
	if t := strings.TrimSpace(b.Title); t != "" {
		return t
	}
	return b.URL
}

// Validate checks that the box has the required fields.
func (b *Box) Validate() error {
	if b.ID == "" {
		return ErrEmptyID
	}
	if b.URL == "" {
		return ErrEmptyURL
	}
	return nil
}

// Clone creates a deep copy of the box.
func (b Box) Clone() Box {
	clone := b
	clone.X = clonePtr(b.X)
	clone.Y = clonePtr(b.Y)
	clone.Width = clonePtr(b.Width)
	clone.Height = clonePtr(b.Height)
	return clone
}

func clonePtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Validate checks the dashboard and all of its boxes.
func (d *Dashboard) Validate() error {
	if d.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if len(d.Boxes) > MaxBoxes {
		return ErrTooManyBoxes
	}
	seen := make(map[string]bool, len(d.Boxes))
	for i := range d.Boxes {
		if err := d.Boxes[i].Validate(); err != nil {
			return fmt.Errorf("box %d: %w", i+1, err)
		}
		if seen[d.Boxes[i].ID] {
			return fmt.Errorf("box %s: %w", d.Boxes[i].ID, ErrDuplicateID)
		}
		seen[d.Boxes[i].ID] = true
	}
	return nil
}

// Clone creates a deep copy of the dashboard.
func (d Dashboard) Clone() Dashboard {
	clone := d
	clone.Boxes = make([]Box, len(d.Boxes))
	for i, b := range d.Boxes {
		clone.Boxes[i] = b.Clone()
	}
	return clone
}

// FindBox returns the index of the box with the given ID, or -1.
func (d *Dashboard) FindBox(id string) int {
	for i := range d.Boxes {
		if d.Boxes[i].ID == id {
			return i
		}
	}
	return -1
}

// IsFull reports whether the dashboard is at the box ceiling.
func (d *Dashboard) IsFull() bool {
	return len(d.Boxes) >= MaxBoxes
}

// CloneAll deep-copies a dashboard sequence.
func CloneAll(ds []Dashboard) []Dashboard {
	if ds == nil {
		return nil
	}
	out := make([]Dashboard, len(ds))
	for i, d := range ds {
		out[i] = d.Clone()
	}
	return out
}
