package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kamenice-rp/factionmap/internal/admin"
	"github.com/kamenice-rp/factionmap/internal/config"
	"github.com/kamenice-rp/factionmap/internal/faction"
	"github.com/kamenice-rp/factionmap/internal/ui"
)

func main() {
	tilesDir := flag.String("tiles", "", "override the tile atlas directory")
	fragment := flag.String("link", "", "pasted page link; '#admin=<token>' unlocks the editor")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	if *debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	if *tilesDir != "" {
		cfg.TilesDir = *tilesDir
	}

	// Old builds persisted factions on disk. That data must never override
	// a fresh session, so it is deleted unread.
	if config.CleanupLegacyState() {
		logger.Info("removed legacy faction state")
	}

	// The link may also arrive as a bare argument, the way people paste it.
	link := *fragment
	if link == "" && flag.NArg() > 0 {
		link = flag.Arg(0)
	}
	isAdmin := admin.IsAdmin(link)

	store := faction.NewStore()
	app := ui.New(logger, cfg, store, isAdmin)

	logger.Info("starting",
		zap.String("tiles", cfg.TilesDir),
		zap.Bool("admin", isAdmin))

	ebiten.SetWindowTitle("Mapa frakcí")
	ebiten.SetWindowSize(cfg.WindowW, cfg.WindowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app); err != nil {
		logger.Fatal("window closed with error", zap.Error(err))
	}

	// Window geometry and the tiles dir carry over to the next launch.
	// Faction data does not; the store is gone with the window.
	cfg.WindowW, cfg.WindowH = ebiten.WindowSize()
	if err := cfg.Save(); err != nil {
		logger.Warn("saving config", zap.Error(err))
	}
}
