package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/arena"
	"github.com/phanxgames/arena/ecs"
	"github.com/yohamta/donburi"
)

// binding maps a key to a player action. Held bindings fire every tick,
// the others only on the tick the key goes down.
type binding struct {
	key    ebiten.Key
	player int
	kind   arena.PlayerActionKind
	held   bool
}

func defaultBindings() []binding {
	return []binding{
		{ebiten.KeyA, 1, arena.PlayerMoveLeft, true},
		{ebiten.KeyD, 1, arena.PlayerMoveRight, true},
		{ebiten.KeyW, 1, arena.PlayerMoveUp, true},
		{ebiten.KeyS, 1, arena.PlayerMoveDown, true},
		{ebiten.KeySpace, 1, arena.PlayerFire, false},
		{ebiten.KeyQ, 1, arena.PlayerLaunchMissile, false},

		{ebiten.KeyArrowLeft, 2, arena.PlayerMoveLeft, true},
		{ebiten.KeyArrowRight, 2, arena.PlayerMoveRight, true},
		{ebiten.KeyArrowUp, 2, arena.PlayerMoveUp, true},
		{ebiten.KeyArrowDown, 2, arena.PlayerMoveDown, true},
		{ebiten.KeyEnter, 2, arena.PlayerFire, false},
		{ebiten.KeyShiftRight, 2, arena.PlayerLaunchMissile, false},
	}
}

// publishInput turns the current keyboard state into player action events.
func publishInput(world donburi.World, bindings []binding) {
	for _, b := range bindings {
		pressed := inpututil.IsKeyJustPressed(b.key)
		if b.held {
			pressed = ebiten.IsKeyPressed(b.key)
		}
		if pressed {
			ecs.PublishPlayerAction(world, arena.PlayerAction{Identifier: b.player, Kind: b.kind})
		}
	}
}
