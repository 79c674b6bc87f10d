package migrations

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestReadMigrationsSorted(t *testing.T) {
	fsys := fstest.MapFS{
		"002_add_index.sql":    {Data: []byte("CREATE INDEX ...")},
		"001_create_kv.sql":    {Data: []byte("CREATE TABLE ...")},
		"README.md":            {Data: []byte("docs")},
		"notes_no_version.sql": {Data: []byte("SELECT 1")},
	}
	migrations, err := readMigrations(fsys)
	if err != nil {
		t.Fatal(err)
	}
	if len(migrations) != 2 {
		t.Fatalf("want 2 migrations, got %+v", migrations)
	}
	if migrations[0].Version != 1 || migrations[0].Name != "create_kv" || migrations[1].Version != 2 {
		t.Errorf("unexpected order %+v", migrations)
	}
}

func TestReadMigrationsDuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"001_a.sql": {Data: []byte("SELECT 1")},
		"001_b.sql": {Data: []byte("SELECT 2")},
	}
	if _, err := readMigrations(fsys); err == nil {
		t.Errorf("want duplicate version error")
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := readMigrations(embedded)
	if err != nil {
		t.Fatal(err)
	}
	if len(migrations) == 0 || !strings.Contains(migrations[0].SQL, "kv_store") {
		t.Errorf("embedded migrations missing kv_store: %+v", migrations)
	}
}

func TestPending(t *testing.T) {
	all := []Migration{{Version: 1}, {Version: 2}, {Version: 3}}
	got := pending(all, map[int]bool{1: true, 3: true})
	if len(got) != 1 || got[0].Version != 2 {
		t.Errorf("pending = %+v", got)
	}
}
