package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arena"
	"github.com/phanxgames/arena/audio"
	"github.com/phanxgames/arena/ecs"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

type game struct {
	cfg      *arena.Config
	world    *arena.World
	ecsWorld donburi.World
	player   *audio.Player
	log      *zap.Logger

	textures *textures
	sink     *arena.EbitenSink
	hud      *hud
	bindings []binding

	watcher    *Watcher
	tablesPath string
	over       bool
}

func newGame(cfg *arena.Config, world *arena.World, ecsWorld donburi.World, player *audio.Player, log *zap.Logger) *game {
	g := &game{
		cfg:      cfg,
		world:    world,
		ecsWorld: ecsWorld,
		player:   player,
		log:      log,
		textures: newTextures(world.Tables(), cfg.World),
		hud:      newHUD(),
		bindings: defaultBindings(),
	}
	g.sink = arena.NewEbitenSink(nil, g.textures)

	ecs.GameActionEventType.Subscribe(ecsWorld, g.onGameAction)

	world.AddAvatar(1, arena.TeamA)
	world.AddAvatar(2, arena.TeamB)
	world.StartGame()
	return g
}

func (g *game) watch(w *Watcher, tablesPath string) {
	g.watcher = w
	g.tablesPath = tablesPath
}

func (g *game) Update() error {
	g.pollWatcher()

	if !g.over {
		publishInput(g.ecsWorld, g.bindings)
		g.world.Update(1 / float64(ebiten.TPS()))
		ecs.GameActionEventType.ProcessEvents(g.ecsWorld)
	}

	switch {
	case g.over:
	case !g.world.HasAlivePlayer():
		g.over = true
		g.log.Info("game over", zap.String("result", "all players down"))
	case g.world.HasPlayerReachedEnd():
		g.over = true
		g.log.Info("game over", zap.String("result", "finish line reached"))
	}

	g.hud.update(g.world, g.over)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.sink.Target = screen
	g.world.Draw(g.sink)
	g.hud.draw(screen, g.world)
}

func (g *game) Layout(_, _ int) (int, int) {
	return int(g.cfg.World.ViewWidth), int(g.cfg.World.ViewHeight)
}

func (g *game) onGameAction(_ donburi.World, a arena.GameAction) {
	g.log.Debug("game action",
		zap.Uint8("kind", uint8(a.Kind)),
		zap.Float64("x", a.Position.X),
		zap.Float64("y", a.Position.Y))
}

// pollWatcher reloads the data tables when the watched file changes. A file
// that fails to parse keeps the current tables.
func (g *game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path := <-g.watcher.Events:
			if !sameFile(path, g.tablesPath) {
				continue
			}
			tables, err := arena.LoadTables(g.tablesPath)
			if err != nil {
				g.log.Warn("tables reload failed", zap.String("path", path), zap.Error(err))
				continue
			}
			g.world.SetTables(tables)
			g.player.SetTables(tables)
			g.textures.rebuild(tables, g.cfg.World)
			g.log.Info("tables reloaded", zap.String("path", path))
		case err := <-g.watcher.Errors:
			g.log.Warn("tables watcher", zap.Error(err))
		default:
			return
		}
	}
}
