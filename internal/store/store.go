// Package store provides the dashboard state manager and its persistence.
package store

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jmylchreest/panelo/internal/layout"
	"github.com/jmylchreest/panelo/internal/model"
	"github.com/jmylchreest/panelo/internal/title"
)

// DefaultTitleTimeout bounds a single title lookup in AddBox.
const DefaultTitleTimeout = 5 * time.Second

// ChangeType indicates the type of store change.
type ChangeType int

const (
	// ChangeTypeHydrate indicates the store was reloaded from persistence.
	ChangeTypeHydrate ChangeType = iota
	// ChangeTypeCreate indicates a dashboard was created.
	ChangeTypeCreate
	// ChangeTypeDelete indicates a dashboard was deleted or replaced.
	ChangeTypeDelete
	// ChangeTypeRename indicates a dashboard was renamed.
	ChangeTypeRename
	// ChangeTypeReorder indicates the dashboard order changed.
	ChangeTypeReorder
	// ChangeTypeSelect indicates the active selection changed.
	ChangeTypeSelect
	// ChangeTypeBoxAdd indicates a box was added.
	ChangeTypeBoxAdd
	// ChangeTypeBoxRemove indicates a box was removed.
	ChangeTypeBoxRemove
	// ChangeTypeBoxMove indicates a box moved to another dashboard.
	ChangeTypeBoxMove
	// ChangeTypeLayout indicates box coordinates were updated.
	ChangeTypeLayout
	// ChangeTypePersistFailed indicates a snapshot could not be saved.
	ChangeTypePersistFailed
)

// String returns a short name for the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeTypeHydrate:
		return "hydrate"
	case ChangeTypeCreate:
		return "create"
	case ChangeTypeDelete:
		return "delete"
	case ChangeTypeRename:
		return "rename"
	case ChangeTypeReorder:
		return "reorder"
	case ChangeTypeSelect:
		return "select"
	case ChangeTypeBoxAdd:
		return "box-add"
	case ChangeTypeBoxRemove:
		return "box-remove"
	case ChangeTypeBoxMove:
		return "box-move"
	case ChangeTypeLayout:
		return "layout"
	case ChangeTypePersistFailed:
		return "persist-failed"
	default:
		return "unknown"
	}
}

// ChangeEvent signals store content changes.
type ChangeEvent struct {
	Type        ChangeType
	DashboardID string
	BoxID       string
	Err         error
}

// Store manages dashboards and the active selection with thread-safe operations.
// Every mutation is followed by a save of the full snapshot.
type Store struct {
	mu         sync.RWMutex
	dashboards []model.Dashboard
	activeID   string // empty means home
	hydrated   bool

	persistence  Persistence
	resolver     title.Resolver
	titleTimeout time.Duration

	subscribers []chan ChangeEvent
	closed      bool
}

// NewStore creates a new Store holding the default dashboard.
// persistence and resolver may be nil.
func NewStore(persistence Persistence, resolver title.Resolver) *Store {
	return &Store{
		dashboards:   []model.Dashboard{model.DefaultDashboard()},
		persistence:  persistence,
		resolver:     resolver,
		titleTimeout: DefaultTitleTimeout,
		subscribers:  make([]chan ChangeEvent, 0),
	}
}

// SetTitleTimeout sets the per-lookup title timeout. Zero disables it.
func (s *Store) SetTitleTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titleTimeout = d
}

// SetResolver replaces the title resolver used by AddBox.
func (s *Store) SetResolver(r title.Resolver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver = r
}

// Hydrate loads dashboards from persistence.
// The active selection survives when its dashboard still exists; the first
// hydrate selects the first dashboard.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	ds := []model.Dashboard{model.DefaultDashboard()}
	if s.persistence != nil {
		loaded, err := s.persistence.Load(ctx)
		if err != nil {
			return err
		}
		if len(loaded) > 0 {
			ds = loaded
		}
	}

	s.dashboards = ds
	switch {
	case !s.hydrated:
		s.activeID = ds[0].ID
	case s.indexOf(s.activeID) < 0:
		s.activeID = ""
	}
	s.hydrated = true

	s.notifyChange(ChangeEvent{Type: ChangeTypeHydrate, DashboardID: s.activeID})
	return nil
}

// Dashboards returns a deep copy of all dashboards in display order.
func (s *Store) Dashboards() []model.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneAll(s.dashboards)
}

// Dashboard returns a copy of the dashboard with the given ID.
func (s *Store) Dashboard(id string) (model.Dashboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Dashboard{}, false
	}
	return s.dashboards[idx].Clone(), true
}

// Active returns a copy of the active dashboard, or false when at home.
func (s *Store) Active() (model.Dashboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(s.activeID)
	if idx < 0 {
		return model.Dashboard{}, false
	}
	return s.dashboards[idx].Clone(), true
}

// ActiveID returns the active dashboard ID, or "" when at home.
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Count returns the number of dashboards.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dashboards)
}

// CreateDashboard appends a new empty dashboard and makes it active.
// A name that trims to empty is ignored.
func (s *Store) CreateDashboard(name string) (model.Dashboard, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Dashboard{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return model.Dashboard{}, false
	}

	d, err := model.NewDashboard(name)
	if err != nil {
		slog.Warn("failed to create dashboard", "error", err)
		return model.Dashboard{}, false
	}

	s.dashboards = append(s.dashboards, *d)
	s.activeID = d.ID

	s.notifyChange(ChangeEvent{Type: ChangeTypeCreate, DashboardID: d.ID})
	s.persistLocked()
	return d.Clone(), true
}

// DeleteDashboard removes a dashboard and clears the selection if it was active.
// The sole remaining dashboard is replaced by a fresh empty one and the
// selection returns home.
func (s *Store) DeleteDashboard(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}

	if len(s.dashboards) == 1 {
		repl, err := model.NewDashboard(model.PlaceholderName)
		if err != nil {
			slog.Warn("failed to create replacement dashboard", "error", err)
			return false
		}
		s.dashboards = []model.Dashboard{*repl}
		s.activeID = ""
	} else {
		s.dashboards = append(s.dashboards[:idx:idx], s.dashboards[idx+1:]...)
		if s.activeID == id {
			s.activeID = ""
		}
	}

	s.notifyChange(ChangeEvent{Type: ChangeTypeDelete, DashboardID: id})
	s.persistLocked()
	return true
}

// RenameDashboard replaces a dashboard's name in place.
// A name that trims to empty is ignored.
func (s *Store) RenameDashboard(id, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.dashboards[idx].Name = name

	s.notifyChange(ChangeEvent{Type: ChangeTypeRename, DashboardID: id})
	s.persistLocked()
	return true
}

// ReorderDashboards moves the dragged dashboard to the target's position,
// shifting everything in between by one slot.
func (s *Store) ReorderDashboards(draggedID, targetID string) bool {
	if draggedID == targetID {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	from := s.indexOf(draggedID)
	to := s.indexOf(targetID)
	if from < 0 || to < 0 {
		return false
	}

	dragged := s.dashboards[from]
	rest := make([]model.Dashboard, 0, len(s.dashboards))
	rest = append(rest, s.dashboards[:from]...)
	rest = append(rest, s.dashboards[from+1:]...)

	out := make([]model.Dashboard, 0, len(s.dashboards))
	out = append(out, rest[:to]...)
	out = append(out, dragged)
	out = append(out, rest[to:]...)
	s.dashboards = out

	s.notifyChange(ChangeEvent{Type: ChangeTypeReorder, DashboardID: draggedID})
	s.persistLocked()
	return true
}

// SelectDashboard makes a dashboard active. Unknown IDs are ignored.
func (s *Store) SelectDashboard(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.indexOf(id) < 0 {
		return false
	}
	if s.activeID != id {
		s.activeID = id
		s.notifyChange(ChangeEvent{Type: ChangeTypeSelect, DashboardID: id})
	}
	return true
}

// GoHome clears the active selection.
func (s *Store) GoHome() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.activeID == "" {
		return
	}
	s.activeID = ""
	s.notifyChange(ChangeEvent{Type: ChangeTypeSelect})
}

// AddBox appends a box for url to the active dashboard.
//
// The title is resolved without holding the lock; on failure the title
// argument is used. Capacity is checked on entry and again at append time,
// and the box is staggered by the count at append time.
func (s *Store) AddBox(ctx context.Context, url, fallbackTitle string) (model.Box, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return model.Box{}, ErrStoreClosed
	}
	dashID := s.activeID
	idx := s.indexOf(dashID)
	if idx < 0 {
		s.mu.RUnlock()
		return model.Box{}, ErrNoActiveDashboard
	}
	if s.dashboards[idx].IsFull() {
		s.mu.RUnlock()
		return model.Box{}, ErrCapacityExceeded
	}
	resolver := s.resolver
	timeout := s.titleTimeout
	s.mu.RUnlock()

	boxTitle := resolveTitle(ctx, resolver, timeout, url, fallbackTitle)

	id, err := model.NewID()
	if err != nil {
		return model.Box{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return model.Box{}, ErrStoreClosed
	}
	idx = s.indexOf(dashID)
	if idx < 0 {
		return model.Box{}, ErrDashboardNotFound
	}
	d := &s.dashboards[idx]
	if d.IsFull() {
		return model.Box{}, ErrCapacityExceeded
	}

	box := model.Box{
		ID:     id,
		URL:    url,
		Title:  boxTitle,
		X:      model.Int((len(d.Boxes) * 2) % model.GridColumns),
		Y:      model.Int(model.AppendRow),
		Width:  model.Int(model.DefaultWidth),
		Height: model.Int(model.DefaultHeight),
	}
	d.Boxes = append(d.Boxes, box)

	s.notifyChange(ChangeEvent{Type: ChangeTypeBoxAdd, DashboardID: dashID, BoxID: id})
	s.persistLocked()
	return box.Clone(), nil
}

// resolveTitle looks up the page title, returning fallback on any failure.
func resolveTitle(ctx context.Context, r title.Resolver, timeout time.Duration, url, fallback string) string {
	if r == nil {
		return fallback
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t, err := r.Resolve(ctx, url)
	if err != nil {
		slog.Debug("title lookup failed, using fallback", "url", url, "error", err)
		return fallback
	}
	if strings.TrimSpace(t) == "" {
		return fallback
	}
	return t
}

// RemoveBox removes a box from the active dashboard. Unknown IDs are ignored.
func (s *Store) RemoveBox(boxID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	idx := s.indexOf(s.activeID)
	if idx < 0 {
		return false
	}
	d := &s.dashboards[idx]
	bi := d.FindBox(boxID)
	if bi < 0 {
		return false
	}
	d.Boxes = append(d.Boxes[:bi:bi], d.Boxes[bi+1:]...)

	s.notifyChange(ChangeEvent{Type: ChangeTypeBoxRemove, DashboardID: d.ID, BoxID: boxID})
	s.persistLocked()
	return true
}

// ApplyLayout copies grid coordinates onto matching boxes of the active
// dashboard. Boxes without a matching item keep their coordinates.
func (s *Store) ApplyLayout(items []layout.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	idx := s.indexOf(s.activeID)
	if idx < 0 {
		return
	}
	d := &s.dashboards[idx]
	d.Boxes = layout.Apply(d.Boxes, items)

	s.notifyChange(ChangeEvent{Type: ChangeTypeLayout, DashboardID: d.ID})
	s.persistLocked()
}

// MoveBox moves a box from whichever dashboard holds it to the end of the
// target dashboard, subject to the target's capacity.
func (s *Store) MoveBox(boxID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	ti := s.indexOf(targetID)
	if ti < 0 {
		return ErrDashboardNotFound
	}

	si, bi := -1, -1
	for i := range s.dashboards {
		if j := s.dashboards[i].FindBox(boxID); j >= 0 {
			si, bi = i, j
			break
		}
	}
	if si < 0 {
		return ErrBoxNotFound
	}
	if si == ti {
		return nil
	}

	target := &s.dashboards[ti]
	if target.IsFull() {
		return ErrCapacityExceeded
	}

	src := &s.dashboards[si]
	box := src.Boxes[bi]
	src.Boxes = append(src.Boxes[:bi:bi], src.Boxes[bi+1:]...)

	box.X = model.Int((len(target.Boxes) * 2) % model.GridColumns)
	box.Y = model.Int(model.AppendRow)
	target.Boxes = append(target.Boxes, box)

	s.notifyChange(ChangeEvent{Type: ChangeTypeBoxMove, DashboardID: targetID, BoxID: boxID})
	s.persistLocked()
	return nil
}

// Subscribe returns a channel that receives change events.
func (s *Store) Subscribe() <-chan ChangeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan ChangeEvent, 16)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Unsubscribe removes and closes a subscription channel.
func (s *Store) Unsubscribe(ch <-chan ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close closes subscriber channels and the persistence backend.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for _, ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = nil

	if s.persistence != nil {
		return s.persistence.Close()
	}
	return nil
}

// indexOf returns the position of the dashboard with the given ID, or -1.
// Caller must hold the lock.
func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.dashboards {
		if s.dashboards[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked saves the current snapshot. Failures leave in-memory state
// as is and are reported to subscribers. Caller must hold the write lock.
func (s *Store) persistLocked() {
	if s.persistence == nil {
		return
	}
	if err := s.persistence.Save(context.Background(), model.CloneAll(s.dashboards)); err != nil {
		slog.Warn("failed to save dashboards", "error", err)
		s.notifyChange(ChangeEvent{Type: ChangeTypePersistFailed, DashboardID: s.activeID, Err: err})
	}
}

// notifyChange sends a change event to all subscribers (non-blocking).
// Caller must hold the lock.
func (s *Store) notifyChange(event ChangeEvent) {
	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip
		}
	}
}

// Errors
var (
	ErrStoreClosed       = storeError("store is closed")
	ErrCapacityExceeded  = storeError("maximum of 15 boxes reached")
	ErrNoActiveDashboard = storeError("no dashboard selected")
	ErrDashboardNotFound = storeError("dashboard not found")
	ErrBoxNotFound       = storeError("box not found")
)

type storeError string

func (e storeError) Error() string {
	return string(e)
}
