// Package persistence archives generated universes in SQLite, or in PostgreSQL
// when given a postgres:// URL.
package persistence

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexgalaxy/internal/errors"
)

// timeFormat sorts lexically in chronological order.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// DB wraps a SQLite connection for universe storage.
type DB struct {
	conn *sqlx.DB
	log  *slog.Logger
}

// Driver names the database/sql driver that serves dsn.
func Driver(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

// Open opens or creates the archive at dsn: a SQLite file path, or a
// PostgreSQL connection URL.
func Open(dsn string) (*DB, error) {
	driver := Driver(dsn)
	source := dsn
	if driver == "sqlite" {
		source += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	conn, err := sqlx.Open(driver, source)
	if err != nil {
		return nil, errors.WrapStorage("open db", err)
	}

	db := &DB{conn: conn, log: slog.With("component", "persistence", "driver", driver)}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, errors.WrapStorage("migrate", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// The schema sticks to types both drivers accept; SQLite maps BIGINT and
// DOUBLE PRECISION onto its INTEGER and REAL affinities.
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS universes (
		id TEXT PRIMARY KEY,
		seed BIGINT NOT NULL,
		radius INTEGER NOT NULL,
		cluster_density DOUBLE PRECISION NOT NULL,
		cluster_size_min INTEGER NOT NULL,
		cluster_size_max INTEGER NOT NULL,
		orientation INTEGER NOT NULL,
		origin_x DOUBLE PRECISION NOT NULL,
		origin_y DOUBLE PRECISION NOT NULL,
		size_x DOUBLE PRECISION NOT NULL,
		size_y DOUBLE PRECISION NOT NULL,
		sector_count INTEGER NOT NULL,
		orbital_count INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS factions (
		universe_id TEXT NOT NULL REFERENCES universes(id) ON DELETE CASCADE,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		kind INTEGER NOT NULL,
		economic DOUBLE PRECISION NOT NULL,
		civil DOUBLE PRECISION NOT NULL,
		social DOUBLE PRECISION NOT NULL,
		diplomatic DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (universe_id, id)
	);

	CREATE TABLE IF NOT EXISTS faction_relations (
		universe_id TEXT NOT NULL REFERENCES universes(id) ON DELETE CASCADE,
		faction_a INTEGER NOT NULL,
		faction_b INTEGER NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (universe_id, faction_a, faction_b)
	);

	CREATE TABLE IF NOT EXISTS clusters (
		universe_id TEXT NOT NULL REFERENCES universes(id) ON DELETE CASCADE,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		center_q INTEGER NOT NULL,
		center_r INTEGER NOT NULL,
		radius INTEGER NOT NULL,
		size INTEGER NOT NULL,
		government INTEGER NOT NULL,
		PRIMARY KEY (universe_id, id)
	);

	CREATE TABLE IF NOT EXISTS sectors (
		universe_id TEXT NOT NULL REFERENCES universes(id) ON DELETE CASCADE,
		id INTEGER NOT NULL,
		name TEXT NOT NULL,
		pos_q INTEGER NOT NULL,
		pos_r INTEGER NOT NULL,
		cluster_id INTEGER,
		anchor_id INTEGER,
		density DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (universe_id, id)
	);

	CREATE TABLE IF NOT EXISTS orbitals (
		universe_id TEXT NOT NULL REFERENCES universes(id) ON DELETE CASCADE,
		id INTEGER NOT NULL,
		sector_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		kind INTEGER NOT NULL,
		class TEXT NOT NULL,
		mass DOUBLE PRECISION NOT NULL,
		radius DOUBLE PRECISION NOT NULL,
		rotational_period DOUBLE PRECISION NOT NULL,
		orbital_distance DOUBLE PRECISION NOT NULL,
		orbital_period DOUBLE PRECISION NOT NULL,
		parent_id INTEGER,
		PRIMARY KEY (universe_id, id)
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_orbitals_sector ON orbitals(universe_id, sector_id);
	CREATE INDEX IF NOT EXISTS idx_universes_created ON universes(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveMeta stores a key-value pair in archive metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(db.conn.Rebind(
		"INSERT INTO world_meta (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value"),
		key, value,
	)
	if err != nil {
		return errors.WrapStorage(fmt.Sprintf("save meta %q", key), err)
	}
	return nil
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, db.conn.Rebind("SELECT value FROM world_meta WHERE key = ?"), key)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", errors.NotFoundf("meta key %q", key)
	}
	if err != nil {
		return "", errors.WrapStorage(fmt.Sprintf("get meta %q", key), err)
	}
	return value, nil
}

// UniverseSummary describes one archived universe.
type UniverseSummary struct {
	ID        uuid.UUID
	Seed      uint64
	Radius    int
	Sectors   int
	Orbitals  int
	CreatedAt time.Time
}

type universeRow struct {
	ID             string  `db:"id"`
	Seed           int64   `db:"seed"`
	Radius         int     `db:"radius"`
	ClusterDensity float64 `db:"cluster_density"`
	ClusterSizeMin int     `db:"cluster_size_min"`
	ClusterSizeMax int     `db:"cluster_size_max"`
	Orientation    uint8   `db:"orientation"`
	OriginX        float64 `db:"origin_x"`
	OriginY        float64 `db:"origin_y"`
	SizeX          float64 `db:"size_x"`
	SizeY          float64 `db:"size_y"`
	SectorCount    int     `db:"sector_count"`
	OrbitalCount   int     `db:"orbital_count"`
	CreatedAt      string  `db:"created_at"`
}

func (r *universeRow) summary() (UniverseSummary, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return UniverseSummary{}, fmt.Errorf("universe id %q: %w", r.ID, err)
	}
	created, err := time.Parse(timeFormat, r.CreatedAt)
	if err != nil {
		return UniverseSummary{}, fmt.Errorf("universe %s created_at: %w", r.ID, err)
	}
	return UniverseSummary{
		ID:        id,
		Seed:      uint64(r.Seed),
		Radius:    r.Radius,
		Sectors:   r.SectorCount,
		Orbitals:  r.OrbitalCount,
		CreatedAt: created,
	}, nil
}

// ListUniverses returns every archived universe, newest first.
func (db *DB) ListUniverses() ([]UniverseSummary, error) {
	var rows []universeRow
	if err := db.conn.Select(&rows, "SELECT * FROM universes ORDER BY created_at DESC, id"); err != nil {
		return nil, errors.WrapStorage("list universes", err)
	}
	out := make([]UniverseSummary, 0, len(rows))
	for i := range rows {
		s, err := rows[i].summary()
		if err != nil {
			return nil, errors.WrapStorage("list universes", err)
		}
		out = append(out, s)
	}
	return out, nil
}

// DeleteUniverse removes a universe and everything in it.
func (db *DB) DeleteUniverse(id uuid.UUID) error {
	res, err := db.conn.Exec(db.conn.Rebind("DELETE FROM universes WHERE id = ?"), id.String())
	if err != nil {
		return errors.WrapStorage("delete universe", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFoundf("universe %s", id)
	}
	return nil
}
