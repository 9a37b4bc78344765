package persistence

import (
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/talgya/hexgalaxy/internal/cartographer"
	"github.com/talgya/hexgalaxy/internal/errors"
	"github.com/talgya/hexgalaxy/internal/faction"
	"github.com/talgya/hexgalaxy/internal/generation"
	"github.com/talgya/hexgalaxy/internal/hex"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func generatedWorld(t *testing.T, seed uint64) *cartographer.World {
	t.Helper()
	cfg := generation.SmallTestConfig()
	cfg.Seed = seed
	res, err := generation.Run(cfg)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	layout := hex.Layout{Orientation: hex.Flat, Origin: hex.Point{X: 3, Y: -2}, Size: hex.Point{X: 2, Y: 2}}
	w, err := cartographer.FromResult(res, layout)
	if err != nil {
		t.Fatalf("FromResult failed: %v", err)
	}
	return w
}

func TestWorldRoundTrip(t *testing.T) {
	db := openTestDB(t)
	// High bit set: seeds survive SQLite's signed integers.
	orig := generatedWorld(t, 1<<63|77)

	id, err := db.SaveWorld(orig)
	if err != nil {
		t.Fatalf("SaveWorld failed: %v", err)
	}
	loaded, err := db.LoadWorld(id)
	if err != nil {
		t.Fatalf("LoadWorld failed: %v", err)
	}

	if loaded.Config() != orig.Config() {
		t.Errorf("Config changed: %+v vs %+v", loaded.Config(), orig.Config())
	}
	if loaded.Layout() != orig.Layout() {
		t.Errorf("Layout changed: %+v vs %+v", loaded.Layout(), orig.Layout())
	}
	if !reflect.DeepEqual(loaded.Sectors(), orig.Sectors()) {
		t.Errorf("Sectors differ after round trip")
	}
	if !reflect.DeepEqual(loaded.Orbitals(), orig.Orbitals()) {
		t.Errorf("Orbitals differ after round trip")
	}
	if !reflect.DeepEqual(loaded.Clusters(), orig.Clusters()) {
		t.Errorf("Clusters differ after round trip")
	}

	of, lf := orig.Factions(), loaded.Factions()
	if len(of) != len(lf) {
		t.Fatalf("Expected %d factions, got %d", len(of), len(lf))
	}
	for i := range of {
		if !reflect.DeepEqual(of[i], lf[i]) {
			t.Errorf("Faction %d differs: %+v vs %+v", i, of[i], lf[i])
		}
	}
	if _, ok := loaded.FactionByLabel(faction.PlayerLabel); !ok {
		t.Errorf("Player faction missing after load")
	}

	// The rebuilt spatial index answers the same queries.
	for _, pt := range []hex.Point{{X: 3, Y: -2}, {X: 10, Y: 4}, {X: -7, Y: -9}} {
		a, _ := orig.SectorsNear(pt, 6)
		b, _ := loaded.SectorsNear(pt, 6)
		if !slices.Equal(a, b) {
			t.Errorf("SectorsNear(%v) differs: %v vs %v", pt, a, b)
		}
	}
}

func TestListAndDeleteUniverses(t *testing.T) {
	db := openTestDB(t)

	first, err := db.SaveWorld(generatedWorld(t, 1))
	if err != nil {
		t.Fatalf("SaveWorld failed: %v", err)
	}
	second, err := db.SaveWorld(generatedWorld(t, 2))
	if err != nil {
		t.Fatalf("SaveWorld failed: %v", err)
	}

	list, err := db.ListUniverses()
	if err != nil {
		t.Fatalf("ListUniverses failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 universes, got %d", len(list))
	}
	ids := []uuid.UUID{list[0].ID, list[1].ID}
	if !slices.Contains(ids, first) || !slices.Contains(ids, second) {
		t.Errorf("Expected both saved ids, got %v", ids)
	}
	want := hex.CellCount(generation.SmallTestConfig().UniverseRadius)
	for _, u := range list {
		if u.Sectors != want || u.Radius != generation.SmallTestConfig().UniverseRadius {
			t.Errorf("Unexpected summary %+v", u)
		}
		if u.CreatedAt.IsZero() {
			t.Errorf("Summary %s has no creation time", u.ID)
		}
	}

	if err := db.DeleteUniverse(first); err != nil {
		t.Fatalf("DeleteUniverse failed: %v", err)
	}
	if _, err := db.LoadWorld(first); !errors.Is(err, errors.KindNotFound) {
		t.Errorf("Expected deleted universe to be gone, got %v", err)
	}
	if err := db.DeleteUniverse(first); !errors.Is(err, errors.KindNotFound) {
		t.Errorf("Expected second delete to report not_found, got %v", err)
	}
	if _, err := db.LoadWorld(second); err != nil {
		t.Errorf("Remaining universe failed to load: %v", err)
	}
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.GetMeta("last_universe"); !errors.Is(err, errors.KindNotFound) {
		t.Errorf("Expected not_found for missing key, got %v", err)
	}
	if err := db.SaveMeta("last_universe", "abc"); err != nil {
		t.Fatalf("SaveMeta failed: %v", err)
	}
	if err := db.SaveMeta("last_universe", "def"); err != nil {
		t.Fatalf("SaveMeta overwrite failed: %v", err)
	}
	v, err := db.GetMeta("last_universe")
	if err != nil || v != "def" {
		t.Errorf("Expected def, got %q, %v", v, err)
	}
}

func TestDriver(t *testing.T) {
	cases := []struct{ dsn, want string }{
		{"data/galaxy.db", "sqlite"},
		{"/tmp/a.db", "sqlite"},
		{"postgres://u:p@localhost/galaxy?sslmode=disable", "postgres"},
		{"postgresql://localhost/galaxy", "postgres"},
	}
	for _, tc := range cases {
		if got := Driver(tc.dsn); got != tc.want {
			t.Errorf("Driver(%q) = %s, want %s", tc.dsn, got, tc.want)
		}
	}
}
