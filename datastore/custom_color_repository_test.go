package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/resistor-color/api/models"
)

type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingKV) Put(ctx context.Context, key string, value []byte) error {
	return errors.New("connection refused")
}

func TestGetAllEmpty(t *testing.T) {
	repo, _ := NewCustomColorDatabase(NewMemoryKV())
	colors, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(colors) != 0 {
		t.Errorf("want empty list, got %v", colors)
	}
}

func TestLearnUpsertsByRGB(t *testing.T) {
	ctx := context.Background()
	repo, _ := NewCustomColorDatabase(NewMemoryKV())

	rgb := models.RGB{R: 120, G: 60, B: 40}
	if _, updated, err := repo.Learn(ctx, models.CustomColor{Name: "Red", RGB: rgb}); err != nil || updated {
		t.Fatalf("first learn: updated=%v err=%v", updated, err)
	}
	if _, _, err := repo.Learn(ctx, models.CustomColor{Name: "Gold", RGB: models.RGB{R: 200, G: 170, B: 60}}); err != nil {
		t.Fatal(err)
	}
	if _, updated, err := repo.Learn(ctx, models.CustomColor{Name: " Brown ", RGB: rgb}); err != nil || !updated {
		t.Fatalf("relearn: updated=%v err=%v", updated, err)
	}

	colors, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(colors) != 2 {
		t.Fatalf("want 2 colors, got %v", colors)
	}
	if colors[0].Name != "Brown" || colors[0].RGB != rgb {
		t.Errorf("first entry = %+v, want Brown at %v", colors[0], rgb)
	}
}

func TestLearnValidation(t *testing.T) {
	repo, _ := NewCustomColorDatabase(NewMemoryKV())
	ctx := context.Background()
	if _, _, err := repo.Learn(ctx, models.CustomColor{Name: "", RGB: models.RGB{}}); err == nil {
		t.Errorf("want error for empty name")
	}
	if _, _, err := repo.Learn(ctx, models.CustomColor{Name: "Red", RGB: models.RGB{R: 300}}); err == nil {
		t.Errorf("want error for out of range rgb")
	}
}

func TestNoStore(t *testing.T) {
	repo, _ := NewCustomColorDatabase(nil)
	ctx := context.Background()

	colors, err := repo.GetAll(ctx)
	if err != nil || len(colors) != 0 {
		t.Errorf("GetAll without store = %v, %v", colors, err)
	}
	if _, _, err := repo.Learn(ctx, models.CustomColor{Name: "Red"}); !errors.Is(err, ErrNoStore) {
		t.Errorf("Learn without store: %v", err)
	}
	if _, err := repo.Snapshot(ctx, time.Now()); !errors.Is(err, ErrNoStore) {
		t.Errorf("Snapshot without store: %v", err)
	}
}

func TestStoreFailure(t *testing.T) {
	repo, _ := NewCustomColorDatabase(failingKV{})
	if _, err := repo.GetAll(context.Background()); err == nil {
		t.Errorf("want store error")
	}
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo, _ := NewCustomColorDatabase(kv)
	repo.Learn(ctx, models.CustomColor{Name: "Red", RGB: models.RGB{R: 1, G: 2, B: 3}})

	day := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	n, err := repo.Snapshot(ctx, day)
	if err != nil || n != 1 {
		t.Fatalf("Snapshot = %d, %v", n, err)
	}

	raw, err := kv.Get(ctx, "custom_colors:snapshot:2026-10-14")
	if err != nil {
		t.Fatal(err)
	}
	var saved []models.CustomColor
	if err := json.Unmarshal(raw, &saved); err != nil {
		t.Fatal(err)
	}
	if len(saved) != 1 || saved[0].Name != "Red" {
		t.Errorf("snapshot = %+v", saved)
	}
}

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	if _, err := kv.Get(ctx, "missing"); !IsNotFound(err) {
		t.Errorf("missing key error = %v", err)
	}

	value := []byte(`{"a":1}`)
	if err := kv.Put(ctx, "k", value); err != nil {
		t.Fatal(err)
	}
	value[0] = 'x'
	got, err := kv.Get(ctx, "k")
	if err != nil || string(got) != `{"a":1}` {
		t.Errorf("Get = %q, %v", got, err)
	}
}

func TestCustomColorJSONShape(t *testing.T) {
	raw, err := json.Marshal(models.CustomColor{Name: "Gold", RGB: models.RGB{R: 1, G: 2, B: 3}})
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"name":"Gold","r":1,"g":2,"b":3}` {
		t.Errorf("json = %s", raw)
	}
}
