// Arena runs two local players on one keyboard against scripted enemies.
// No external assets are required; textures are generated at startup.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arena"
	"github.com/phanxgames/arena/audio"
	"github.com/phanxgames/arena/ecs"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "TOML config file (defaults when empty)")
	tablesPath := flag.String("tables", "", "YAML data tables, watched for changes (embedded when empty)")
	debug := flag.Bool("debug", false, "log per-frame stats at debug level")
	flag.Parse()

	cfg := arena.DefaultConfig()
	if *configPath != "" {
		loaded, err := arena.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *tablesPath == "" {
		*tablesPath = cfg.World.TablesPath
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	tables := arena.DefaultTables()
	if *tablesPath != "" {
		if tables, err = arena.LoadTables(*tablesPath); err != nil {
			return err
		}
	}

	player := audio.NewPlayer(cfg.Audio, tables, log.Named("audio"))
	if cfg.Audio.Enabled {
		if err := player.Init(); err != nil {
			log.Warn("audio disabled", zap.Error(err))
		}
	}
	defer player.Close()

	ecsWorld := donburi.NewWorld()
	opts := []arena.Option{
		arena.WithLogger(log),
		arena.WithTables(tables),
		arena.WithAudio(player),
		arena.WithNetwork(ecs.NewSink(ecsWorld)),
	}
	if *debug {
		opts = append(opts, arena.WithDebug())
	}
	world := arena.NewWorld(*cfg, opts...)
	addEnemies(world)

	g := newGame(cfg, world, ecsWorld, player, log)

	if *tablesPath != "" {
		w, err := NewWatcher(filepath.Dir(*tablesPath))
		if err != nil {
			log.Warn("tables hot reload disabled", zap.Error(err))
		} else {
			defer func() { _ = w.Close() }()
			g.watch(w, *tablesPath)
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)
	log.Info("arena starting",
		zap.Float64("width", cfg.World.Width),
		zap.Float64("height", cfg.World.Height),
		zap.Int("pickup_slots", cfg.Pickups.Slots))
	return ebiten.RunGame(g)
}

// addEnemies schedules the scripted enemy waves above the start position.
func addEnemies(w *arena.World) {
	w.AddEnemy(arena.AvatarRaptor, 0, 500)
	w.AddEnemy(arena.AvatarRaptor, -300, 900)
	w.AddEnemy(arena.AvatarRaptor, 300, 900)
	w.AddEnemy(arena.AvatarAvenger, -500, 1400)
	w.AddEnemy(arena.AvatarAvenger, 500, 1400)
	w.AddEnemy(arena.AvatarRaptor, 0, 1800)
	w.SortEnemies()
}

func newLogger(cfg arena.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
