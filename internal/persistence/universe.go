package persistence

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/talgya/hexgalaxy/internal/cartographer"
	"github.com/talgya/hexgalaxy/internal/errors"
	"github.com/talgya/hexgalaxy/internal/faction"
	"github.com/talgya/hexgalaxy/internal/generation"
	"github.com/talgya/hexgalaxy/internal/hex"
)

// SaveWorld writes a complete universe in one transaction and returns its id.
func (db *DB) SaveWorld(w *cartographer.World) (uuid.UUID, error) {
	id := uuid.New()
	db.log.Info("saving universe",
		"universe", id,
		"sectors", len(w.Sectors()),
		"orbitals", len(w.Orbitals()),
		"factions", len(w.Factions()),
	)

	tx, err := db.conn.Beginx()
	if err != nil {
		return uuid.Nil, errors.WrapStorage("begin save", err)
	}
	defer tx.Rollback()

	steps := []struct {
		name string
		fn   func(*sqlx.Tx, string, *cartographer.World) error
	}{
		{"universe", saveUniverse},
		{"factions", saveFactions},
		{"clusters", saveClusters},
		{"sectors", saveSectors},
		{"orbitals", saveOrbitals},
	}
	for _, s := range steps {
		if err := s.fn(tx, id.String(), w); err != nil {
			return uuid.Nil, errors.WrapStorage("save "+s.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, errors.WrapStorage("commit save", err)
	}
	db.log.Info("universe saved", "universe", id)
	return id, nil
}

func saveUniverse(tx *sqlx.Tx, id string, w *cartographer.World) error {
	cfg := w.Config()
	layout := w.Layout()
	_, err := tx.Exec(tx.Rebind(`INSERT INTO universes
		(id, seed, radius, cluster_density, cluster_size_min, cluster_size_max,
		 orientation, origin_x, origin_y, size_x, size_y, sector_count, orbital_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		id, int64(cfg.Seed), cfg.UniverseRadius, cfg.ClusterDensity,
		cfg.ClusterSize.Min, cfg.ClusterSize.Max,
		uint8(layout.Orientation), layout.Origin.X, layout.Origin.Y, layout.Size.X, layout.Size.Y,
		len(w.Sectors()), len(w.Orbitals()), time.Now().UTC().Format(timeFormat),
	)
	return err
}

func saveFactions(tx *sqlx.Tx, id string, w *cartographer.World) error {
	stmt, err := tx.Preparex(tx.Rebind(`INSERT INTO factions
		(universe_id, id, name, kind, economic, civil, social, diplomatic)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	rel, err := tx.Preparex(tx.Rebind(`INSERT INTO faction_relations
		(universe_id, faction_a, faction_b, value) VALUES (?, ?, ?, ?)`))
	if err != nil {
		return err
	}
	defer rel.Close()

	for _, f := range w.Factions() {
		p := f.Politics
		if _, err := stmt.Exec(id, f.ID, f.Name, uint8(f.Kind), p.Economic, p.Civil, p.Social, p.Diplomatic); err != nil {
			return fmt.Errorf("insert faction %d: %w", f.ID, err)
		}
		// Relations are symmetric; store each pair once.
		for other, v := range f.Relations {
			if other <= f.ID {
				continue
			}
			if _, err := rel.Exec(id, f.ID, other, v); err != nil {
				return fmt.Errorf("insert relation %d-%d: %w", f.ID, other, err)
			}
		}
	}
	return nil
}

func saveClusters(tx *sqlx.Tx, id string, w *cartographer.World) error {
	stmt, err := tx.Preparex(tx.Rebind(`INSERT INTO clusters
		(universe_id, id, name, center_q, center_r, radius, size, government)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range w.Clusters() {
		if _, err := stmt.Exec(id, c.ID, c.Name, c.Center.Q, c.Center.R, c.Radius, c.Size, c.Government); err != nil {
			return fmt.Errorf("insert cluster %d: %w", c.ID, err)
		}
	}
	return nil
}

func saveSectors(tx *sqlx.Tx, id string, w *cartographer.World) error {
	stmt, err := tx.Preparex(tx.Rebind(`INSERT INTO sectors
		(universe_id, id, name, pos_q, pos_r, cluster_id, anchor_id, density)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range w.Sectors() {
		if _, err := stmt.Exec(id, s.ID, s.Name, s.Location.Q, s.Location.R,
			nullable(s.Cluster), nullable(s.Anchor), s.Density); err != nil {
			return fmt.Errorf("insert sector %d: %w", s.ID, err)
		}
	}
	return nil
}

func saveOrbitals(tx *sqlx.Tx, id string, w *cartographer.World) error {
	stmt, err := tx.Preparex(tx.Rebind(`INSERT INTO orbitals
		(universe_id, id, sector_id, name, kind, class, mass, radius,
		 rotational_period, orbital_distance, orbital_period, parent_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range w.Orbitals() {
		if _, err := stmt.Exec(id, o.ID, o.Sector, o.Name, uint8(o.Kind), o.Class, o.Mass, o.Radius,
			o.RotationalPeriod, o.OrbitalDistance, o.OrbitalPeriod, nullable(o.Parent)); err != nil {
			return fmt.Errorf("insert orbital %d: %w", o.ID, err)
		}
	}
	return nil
}

type factionRow struct {
	ID         int     `db:"id"`
	Name       string  `db:"name"`
	Kind       uint8   `db:"kind"`
	Economic   float64 `db:"economic"`
	Civil      float64 `db:"civil"`
	Social     float64 `db:"social"`
	Diplomatic float64 `db:"diplomatic"`
}

type relationRow struct {
	A     int     `db:"faction_a"`
	B     int     `db:"faction_b"`
	Value float64 `db:"value"`
}

type clusterRow struct {
	ID         int    `db:"id"`
	Name       string `db:"name"`
	CenterQ    int    `db:"center_q"`
	CenterR    int    `db:"center_r"`
	Radius     int    `db:"radius"`
	Size       int    `db:"size"`
	Government int    `db:"government"`
}

type sectorRow struct {
	ID      int           `db:"id"`
	Name    string        `db:"name"`
	Q       int           `db:"pos_q"`
	R       int           `db:"pos_r"`
	Cluster sql.NullInt64 `db:"cluster_id"`
	Anchor  sql.NullInt64 `db:"anchor_id"`
	Density float64       `db:"density"`
}

type orbitalRow struct {
	ID               int           `db:"id"`
	Sector           int           `db:"sector_id"`
	Name             string        `db:"name"`
	Kind             uint8         `db:"kind"`
	Class            string        `db:"class"`
	Mass             float64       `db:"mass"`
	Radius           float64       `db:"radius"`
	RotationalPeriod float64       `db:"rotational_period"`
	OrbitalDistance  float64       `db:"orbital_distance"`
	OrbitalPeriod    float64       `db:"orbital_period"`
	Parent           sql.NullInt64 `db:"parent_id"`
}

// LoadWorld reads an archived universe and rebuilds its World, spatial index
// included.
func (db *DB) LoadWorld(id uuid.UUID) (*cartographer.World, error) {
	key := id.String()

	var u universeRow
	err := db.conn.Get(&u, db.conn.Rebind("SELECT * FROM universes WHERE id = ?"), key)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("universe %s", id)
	}
	if err != nil {
		return nil, errors.WrapStorage("load universe", err)
	}

	factions, err := db.loadFactions(key)
	if err != nil {
		return nil, errors.WrapStorage("load factions", err)
	}

	var clusterRows []clusterRow
	if err := db.conn.Select(&clusterRows, db.conn.Rebind(`SELECT id, name, center_q, center_r, radius, size, government
		FROM clusters WHERE universe_id = ? ORDER BY id`), key); err != nil {
		return nil, errors.WrapStorage("load clusters", err)
	}
	clusters := make([]generation.ProtoCluster, len(clusterRows))
	for i, r := range clusterRows {
		clusters[i] = generation.ProtoCluster{
			ID:         generation.ClusterID(r.ID),
			Name:       r.Name,
			Center:     hex.Axial(r.CenterQ, r.CenterR),
			Radius:     r.Radius,
			Size:       r.Size,
			Government: faction.FactionID(r.Government),
		}
	}

	var sectorRows []sectorRow
	if err := db.conn.Select(&sectorRows, db.conn.Rebind(`SELECT id, name, pos_q, pos_r, cluster_id, anchor_id, density
		FROM sectors WHERE universe_id = ? ORDER BY id`), key); err != nil {
		return nil, errors.WrapStorage("load sectors", err)
	}
	sectors := make([]generation.ProtoSector, len(sectorRows))
	for i, r := range sectorRows {
		sectors[i] = generation.ProtoSector{
			ID:       generation.SectorID(r.ID),
			Name:     r.Name,
			Location: hex.Axial(r.Q, r.R),
			Cluster:  idFrom[generation.ClusterID](r.Cluster),
			Anchor:   idFrom[generation.OrbitalID](r.Anchor),
			Density:  r.Density,
		}
	}

	var orbitalRows []orbitalRow
	if err := db.conn.Select(&orbitalRows, db.conn.Rebind(`SELECT id, sector_id, name, kind, class, mass, radius,
		rotational_period, orbital_distance, orbital_period, parent_id
		FROM orbitals WHERE universe_id = ? ORDER BY id`), key); err != nil {
		return nil, errors.WrapStorage("load orbitals", err)
	}
	orbitals := make([]generation.ProtoOrbital, len(orbitalRows))
	for i, r := range orbitalRows {
		orbitals[i] = generation.ProtoOrbital{
			ID:               generation.OrbitalID(r.ID),
			Sector:           generation.SectorID(r.Sector),
			Name:             r.Name,
			Kind:             generation.OrbitalKind(r.Kind),
			Class:            r.Class,
			Mass:             r.Mass,
			Radius:           r.Radius,
			RotationalPeriod: r.RotationalPeriod,
			OrbitalDistance:  r.OrbitalDistance,
			OrbitalPeriod:    r.OrbitalPeriod,
			Parent:           idFrom[generation.OrbitalID](r.Parent),
		}
	}

	w, err := cartographer.New(cartographer.Input{
		Config: generation.Config{
			Seed:           uint64(u.Seed),
			UniverseRadius: u.Radius,
			ClusterDensity: u.ClusterDensity,
			ClusterSize:    generation.SizeRange{Min: u.ClusterSizeMin, Max: u.ClusterSizeMax},
		},
		Layout: hex.Layout{
			Orientation: hex.Orientation(u.Orientation),
			Origin:      hex.Point{X: u.OriginX, Y: u.OriginY},
			Size:        hex.Point{X: u.SizeX, Y: u.SizeY},
		},
		Factions: factions,
		Clusters: clusters,
		Sectors:  sectors,
		Orbitals: orbitals,
	})
	if err != nil {
		return nil, fmt.Errorf("rebuild universe %s: %w", id, err)
	}
	db.log.Info("universe loaded", "universe", id, "sectors", len(sectors), "orbitals", len(orbitals))
	return w, nil
}

func (db *DB) loadFactions(key string) (*faction.Registry, error) {
	var rows []factionRow
	if err := db.conn.Select(&rows, db.conn.Rebind(`SELECT id, name, kind, economic, civil, social, diplomatic
		FROM factions WHERE universe_id = ? ORDER BY id`), key); err != nil {
		return nil, err
	}

	reg := faction.NewRegistry()
	for _, r := range rows {
		got, err := reg.Create(r.Name, faction.Kind(r.Kind), faction.PoliticalAxis{
			Economic:   r.Economic,
			Civil:      r.Civil,
			Social:     r.Social,
			Diplomatic: r.Diplomatic,
		})
		if err != nil {
			return nil, err
		}
		if int(got) != r.ID {
			return nil, fmt.Errorf("faction ids not dense: stored %d, rebuilt %d", r.ID, got)
		}
	}

	var rels []relationRow
	if err := db.conn.Select(&rels, db.conn.Rebind(`SELECT faction_a, faction_b, value
		FROM faction_relations WHERE universe_id = ?`), key); err != nil {
		return nil, err
	}
	for _, r := range rels {
		if err := reg.SetRelation(faction.FactionID(r.A), faction.FactionID(r.B), r.Value); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func nullable[T ~int](id *T) any {
	if id == nil {
		return nil
	}
	return int64(*id)
}

func idFrom[T ~int](v sql.NullInt64) *T {
	if !v.Valid {
		return nil
	}
	id := T(v.Int64)
	return &id
}
