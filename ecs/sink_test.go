package ecs

import (
	"testing"

	"github.com/phanxgames/arena"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewSink(world) == nil {
		t.Fatal("NewSink returned nil")
	}
}

func TestSink_ImplementsNetworkSink(t *testing.T) {
	var _ arena.NetworkSink = NewSink(donburi.NewWorld())
}

func TestSink_NotifyGameAction(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewSink(world)

	var received []arena.GameAction
	GameActionEventType.Subscribe(world, func(w donburi.World, a arena.GameAction) {
		received = append(received, a)
	})

	sink.NotifyGameAction(arena.GameAction{Kind: arena.GameActionEnemyExplode, Position: arena.Vec2{X: 10, Y: 20}})

	// Events are queued until processed.
	GameActionEventType.ProcessEvents(world)

	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	if received[0].Position != (arena.Vec2{X: 10, Y: 20}) {
		t.Errorf("position = %v, want (10,20)", received[0].Position)
	}
}

func TestSink_PollActionOrder(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewSink(world)

	if _, ok := sink.PollAction(); ok {
		t.Fatal("PollAction on empty sink should report false")
	}

	PublishPlayerAction(world, arena.PlayerAction{Identifier: 1, Kind: arena.PlayerFire})
	PublishPlayerAction(world, arena.PlayerAction{Identifier: 2, Kind: arena.PlayerMoveUp})

	a, ok := sink.PollAction()
	if !ok || a.Identifier != 1 || a.Kind != arena.PlayerFire {
		t.Errorf("first = %+v, %v; want id 1 fire", a, ok)
	}
	a, ok = sink.PollAction()
	if !ok || a.Identifier != 2 || a.Kind != arena.PlayerMoveUp {
		t.Errorf("second = %+v, %v; want id 2 move up", a, ok)
	}
	if _, ok := sink.PollAction(); ok {
		t.Error("sink should be drained")
	}
}

func TestSink_ProcessAllEventsFillsInbox(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewSink(world)

	PublishPlayerAction(world, arena.PlayerAction{Identifier: 7, Kind: arena.PlayerLaunchMissile})
	events.ProcessAllEvents(world)

	a, ok := sink.PollAction()
	if !ok || a.Identifier != 7 {
		t.Errorf("PollAction = %+v, %v; want id 7", a, ok)
	}
}

func TestSink_DrivesWorld(t *testing.T) {
	ecsWorld := donburi.NewWorld()
	sink := NewSink(ecsWorld)
	w := arena.NewWorld(*arena.DefaultConfig(), arena.WithNetwork(sink))
	n := w.AddAvatar(1, arena.TeamA)
	start := n.Position()

	PublishPlayerAction(ecsWorld, arena.PlayerAction{Identifier: 1, Kind: arena.PlayerMoveUp})
	w.Update(0.1)

	if got := n.Position(); got.Y >= start.Y {
		t.Errorf("avatar y = %v, want less than %v", got.Y, start.Y)
	}
}
