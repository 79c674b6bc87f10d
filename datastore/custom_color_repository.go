package datastore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/resistor-color/api/models"
)

const (
	CustomColorsKey        = "custom_colors"
	customColorSnapshotKey = "custom_colors:snapshot:"
)

type CustomColorRepository interface {
	GetAll(ctx context.Context) ([]models.CustomColor, error)
	// Learn upserts color, matching an existing entry by exact RGB. It reports whether an entry was replaced.
	Learn(ctx context.Context, color models.CustomColor) (models.CustomColor, bool, error)
	Snapshot(ctx context.Context, date time.Time) (int, error)
}

// CustomColorDatabase keeps the whole custom-color list as one JSON document.
// A nil store behaves as an always-empty list that cannot be written.
type CustomColorDatabase struct {
	store KVStore
}

func NewCustomColorDatabase(store KVStore) (CustomColorDatabase, error) {
	var customColorDB CustomColorDatabase
	customColorDB.store = store
	return customColorDB, nil
}

// GetAll retrieves every learned color; a missing document is an empty list
func (ccdb CustomColorDatabase) GetAll(ctx context.Context) ([]models.CustomColor, error) {
	if ccdb.store == nil {
		return []models.CustomColor{}, nil
	}

	raw, err := ccdb.store.Get(ctx, CustomColorsKey)
	if IsNotFound(err) {
		return []models.CustomColor{}, nil
	}
	if err != nil {
		return nil, err
	}

	colors := []models.CustomColor{}
	if len(raw) == 0 {
		return colors, nil
	}
	if err := json.Unmarshal(raw, &colors); err != nil {
		return nil, fmt.Errorf("error parsing json for custom colors %v", err)
	}
	return colors, nil
}

// Learn stores a correction. Concurrent learns on the same RGB are last-write-wins.
func (ccdb CustomColorDatabase) Learn(ctx context.Context, color models.CustomColor) (models.CustomColor, bool, error) {
	if ccdb.store == nil {
		return models.CustomColor{}, false, ErrNoStore
	}

	color.Name = strings.TrimSpace(color.Name)
	if color.Name == "" {
		return models.CustomColor{}, false, fmt.Errorf("custom color name is required")
	}
	if !color.RGB.Valid() {
		return models.CustomColor{}, false, fmt.Errorf("custom color %v out of range", color.RGB)
	}

	colors, err := ccdb.GetAll(ctx)
	if err != nil {
		return models.CustomColor{}, false, err
	}

	updated := false
	for i := range colors {
		if colors[i].RGB == color.RGB {
			colors[i].Name = color.Name
			updated = true
			break
		}
	}
	if !updated {
		colors = append(colors, color)
	}

	if err := ccdb.put(ctx, CustomColorsKey, colors); err != nil {
		return models.CustomColor{}, false, err
	}
	return color, updated, nil
}

// Snapshot copies the current list under a dated key and returns how many colors it holds
func (ccdb CustomColorDatabase) Snapshot(ctx context.Context, date time.Time) (int, error) {
	if ccdb.store == nil {
		return 0, ErrNoStore
	}
	colors, err := ccdb.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := ccdb.put(ctx, SnapshotKey(date), colors); err != nil {
		return 0, err
	}
	return len(colors), nil
}

// SnapshotKey is the key a day's snapshot is stored under
func SnapshotKey(date time.Time) string {
	return customColorSnapshotKey + date.Format("2006-01-02")
}

func (ccdb CustomColorDatabase) put(ctx context.Context, key string, colors []models.CustomColor) error {
	raw, err := json.Marshal(colors)
	if err != nil {
		return fmt.Errorf("error serializing custom colors %v", err)
	}
	return ccdb.store.Put(ctx, key, raw)
}
