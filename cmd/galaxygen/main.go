// Command galaxygen generates a hex universe step by step and optionally
// archives it.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexgalaxy/internal/cartographer"
	"github.com/talgya/hexgalaxy/internal/config"
	"github.com/talgya/hexgalaxy/internal/engine"
	"github.com/talgya/hexgalaxy/internal/faction"
	"github.com/talgya/hexgalaxy/internal/generation"
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

	gcfg := cfg.Generation()
	gen, err := generation.New(gcfg)
	if err != nil {
		slog.Error("invalid generation config", "error", err)
		os.Exit(1)
	}
	_, total := gen.Progress()
	slog.Info("generating universe",
		"seed", gcfg.Seed,
		"radius", gcfg.UniverseRadius,
		"steps", humanize.Comma(int64(total)),
		"layout", cfg.Galaxy.Layout.String(),
	)

	// ── Generation ────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng := engine.NewEngine()
	eng.StepsPerSecond = cfg.Engine.StepsPerSecond
	eng.ProgressEvery = cfg.Engine.ProgressEvery
	eng.OnPhase = func(from, to generation.Phase) {
		slog.Info("phase", "from", from.String(), "to", to.String())
	}

	if err := eng.Run(ctx, gen); err != nil {
		if stderrors.Is(err, context.Canceled) {
			fmt.Println("Generation interrupted; nothing was saved.")
			os.Exit(130)
		}
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}

	stats := gen.Stats()
	world, err := cartographer.Build(gen, cfg.Layout())
	if err != nil {
		slog.Error("failed to build world model", "error", err)
		os.Exit(1)
	}

	// ── Summary ───────────────────────────────────────────────────────
	slog.Info("universe ready",
		"clusters", stats.Clusters,
		"sectors", humanize.Comma(int64(stats.Sectors)),
		"empty_sectors", humanize.Comma(int64(stats.EmptySectors)),
		"stars", humanize.Comma(int64(stats.Stars)),
		"planets", humanize.Comma(int64(stats.Planets)),
		"moons", humanize.Comma(int64(stats.Moons)),
		"belts", humanize.Comma(int64(stats.Belts)),
		"factions", stats.Factions,
	)
	for _, cl := range world.Clusters() {
		gov := "none"
		if f, err := world.Faction(cl.Government); err == nil {
			gov = f.Name
		}
		slog.Debug("cluster", "name", cl.Name, "center", cl.Center.String(), "radius", cl.Radius, "government", gov)
	}
	if p, ok := world.FactionByLabel(faction.PlayerLabel); ok {
		slog.Debug("player faction", "id", p.ID, "kind", p.Kind.String())
	}

	// ── Archive ───────────────────────────────────────────────────────
	if cfg.Database.Path == "" {
		fmt.Printf("\nGenerated %s sectors holding %s orbitals (not archived; set DB_PATH to keep it).\n",
			humanize.Comma(int64(stats.Sectors)), humanize.Comma(int64(stats.Orbitals)))
		return
	}

	if dir := filepath.Dir(cfg.Database.Path); persistence.Driver(cfg.Database.Path) == "sqlite" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			slog.Error("failed to create archive directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}
	db, err := persistence.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open archive", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	id, err := db.SaveWorld(world)
	if err != nil {
		slog.Error("failed to archive universe", "error", err)
		os.Exit(1)
	}
	if err := db.SaveMeta("last_universe", id.String()); err != nil {
		slog.Warn("failed to record last universe", "error", err)
	}

	fmt.Printf("\nGenerated %s sectors holding %s orbitals.\nArchived as %s in %s\n",
		humanize.Comma(int64(stats.Sectors)), humanize.Comma(int64(stats.Orbitals)), id, cfg.Database.Path)
}
