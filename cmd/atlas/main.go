// Command atlas inspects universes archived by galaxygen.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/hexgalaxy/internal/cartographer"
	"github.com/talgya/hexgalaxy/internal/config"
	"github.com/talgya/hexgalaxy/internal/faction"
	"github.com/talgya/hexgalaxy/internal/hex"
	"github.com/talgya/hexgalaxy/internal/logger"
	"github.com/talgya/hexgalaxy/internal/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging)

	dbPath := flag.String("db", cfg.Database.Path, "Archive file (defaults to DB_PATH)")
	list := flag.Bool("list", false, "List archived universes and exit")
	idStr := flag.String("id", "last", "Universe id, or \"last\" for the most recent galaxygen run")
	x := flag.Float64("x", 0, "Query point X")
	y := flag.Float64("y", 0, "Query point Y")
	radius := flag.Float64("radius", 5, "Query radius in plane units")
	del := flag.Bool("delete", false, "Delete the selected universe")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "no archive: pass -db or set DB_PATH")
		os.Exit(2)
	}

	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open archive", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if *list {
		if err := listUniverses(db); err != nil {
			slog.Error("failed to list universes", "error", err)
			os.Exit(1)
		}
		return
	}

	id, err := resolveID(db, *idStr)
	if err != nil {
		slog.Error("unknown universe", "id", *idStr, "error", err)
		os.Exit(1)
	}

	if *del {
		if err := db.DeleteUniverse(id); err != nil {
			slog.Error("failed to delete universe", "id", id, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %s\n", id)
		return
	}

	world, err := db.LoadWorld(id)
	if err != nil {
		slog.Error("failed to load universe", "id", id, "error", err)
		os.Exit(1)
	}
	if err := describe(world, hex.Point{X: *x, Y: *y}, *radius); err != nil {
		slog.Error("query failed", "error", err)
		os.Exit(1)
	}
}

func listUniverses(db *persistence.DB) error {
	universes, err := db.ListUniverses()
	if err != nil {
		return err
	}
	if len(universes) == 0 {
		fmt.Println("Archive is empty.")
		return nil
	}
	for _, u := range universes {
		fmt.Printf("%s  seed=%-20d radius=%-4d sectors=%-8s orbitals=%-8s %s\n",
			u.ID, u.Seed, u.Radius,
			humanize.Comma(int64(u.Sectors)), humanize.Comma(int64(u.Orbitals)),
			humanize.Time(u.CreatedAt))
	}
	return nil
}

func resolveID(db *persistence.DB, s string) (uuid.UUID, error) {
	if s == "last" {
		v, err := db.GetMeta("last_universe")
		if err != nil {
			return uuid.Nil, err
		}
		s = v
	}
	return uuid.Parse(s)
}

func describe(w *cartographer.World, at hex.Point, radius float64) error {
	cfg := w.Config()
	fmt.Printf("Universe seed %d, radius %d, %s sectors, %s orbitals, %d clusters\n",
		cfg.Seed, cfg.UniverseRadius,
		humanize.Comma(int64(len(w.Sectors()))), humanize.Comma(int64(len(w.Orbitals()))),
		len(w.Clusters()))

	if p, ok := w.FactionByLabel(faction.PlayerLabel); ok {
		fmt.Printf("Player faction #%d (%s)\n", p.ID, p.Kind)
	}

	ids, err := w.SectorsNear(at, radius)
	if err != nil {
		return err
	}
	fmt.Printf("\n%d sectors within %g of %s:\n", len(ids), radius, at)
	for _, id := range ids {
		s, err := w.Sector(id)
		if err != nil {
			return err
		}
		owner := "unclaimed"
		if s.Cluster != nil {
			cl, err := w.Cluster(*s.Cluster)
			if err != nil {
				return err
			}
			owner = cl.Name
			if f, err := w.Faction(cl.Government); err == nil {
				owner = fmt.Sprintf("%s, %s", cl.Name, f.Name)
			}
		}

		orbitals, err := w.OrbitalsIn(id)
		if err != nil {
			return err
		}
		star := "empty"
		if s.Anchor != nil {
			o, err := w.Orbital(*s.Anchor)
			if err != nil {
				return err
			}
			star = fmt.Sprintf("%s (%s)", o.Name, o.Class)
		}
		fmt.Printf("  %-16s %-10s density=%.2f  %-24s %2d bodies  [%s]\n",
			s.Name, s.Location, s.Density, star, len(orbitals), owner)
	}
	return nil
}
