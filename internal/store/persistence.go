package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/panelo/internal/model"
)

// Storage keys.
const (
	// DashboardsKey holds the ordered dashboard array.
	DashboardsKey = "dashboards_data"
	// LegacyBoxesKey holds the single-dashboard box array of older versions.
	LegacyBoxesKey = "dashboard_boxes"
)

// Persistence defines the interface for dashboard storage.
type Persistence interface {
	// Load reads the stored dashboards, migrating older formats.
	// It never returns an empty slice without an error.
	Load(ctx context.Context) ([]model.Dashboard, error)

	// Save replaces the stored dashboards with a full snapshot.
	Save(ctx context.Context, ds []model.Dashboard) error

	// Close releases backend resources.
	Close() error
}

// KVPersistence implements Persistence on top of a KV backend.
type KVPersistence struct {
	kv KV
}

// NewKVPersistence creates a KVPersistence over kv.
func NewKVPersistence(kv KV) *KVPersistence {
	return &KVPersistence{kv: kv}
}

// Backend returns the underlying KV.
func (p *KVPersistence) Backend() KV {
	return p.kv
}

// Load returns the stored dashboards.
//
// The current key wins. Otherwise legacy boxes are wrapped into the default
// dashboard and written back under the current key, leaving the legacy key
// in place. With neither present a single empty default dashboard is
// returned without writing anything.
func (p *KVPersistence) Load(ctx context.Context) ([]model.Dashboard, error) {
	raw, ok, err := p.kv.Get(ctx, DashboardsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", DashboardsKey, err)
	}
	if ok {
		var ds []model.Dashboard
		if err := json.Unmarshal(raw, &ds); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", DashboardsKey, err)
		}
		if len(ds) > 0 {
			return normalize(ds), nil
		}
	}

	raw, ok, err = p.kv.Get(ctx, LegacyBoxesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", LegacyBoxesKey, err)
	}
	if ok {
		var boxes []model.Box
		if err := json.Unmarshal(raw, &boxes); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", LegacyBoxesKey, err)
		}
		if boxes != nil {
			slog.Info("migrating single dashboard to multi-dashboard format", "boxes", len(boxes))
			d := model.DefaultDashboard()
			d.Boxes = boxes
			ds := []model.Dashboard{d}
			if err := p.Save(ctx, ds); err != nil {
				slog.Warn("failed to save migrated dashboards", "error", err)
			}
			return normalize(ds), nil
		}
	}

	return []model.Dashboard{model.DefaultDashboard()}, nil
}

// Save writes the full dashboard snapshot under the current key.
func (p *KVPersistence) Save(ctx context.Context, ds []model.Dashboard) error {
	data, err := json.Marshal(normalize(model.CloneAll(ds)))
	if err != nil {
		return fmt.Errorf("failed to encode dashboards: %w", err)
	}
	if err := p.kv.Set(ctx, DashboardsKey, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", DashboardsKey, err)
	}
	return nil
}

// Close closes the backend.
func (p *KVPersistence) Close() error {
	return p.kv.Close()
}

// normalize replaces nil box slices so dashboards encode as "boxes": [].
func normalize(ds []model.Dashboard) []model.Dashboard {
	for i := range ds {
		if ds[i].Boxes == nil {
			ds[i].Boxes = []model.Box{}
		}
	}
	return ds
}
