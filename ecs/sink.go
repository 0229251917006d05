package ecs

import (
	"github.com/phanxgames/arena"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GameActionEventType carries outbound game actions. Subscribe to it to
// forward them to remote peers.
var GameActionEventType = events.NewEventType[arena.GameAction]()

// PlayerActionEventType carries inbound player actions for the arena world.
var PlayerActionEventType = events.NewEventType[arena.PlayerAction]()

// Sink is an arena.NetworkSink backed by Donburi events.
type Sink struct {
	world donburi.World
	inbox []arena.PlayerAction
}

// NewSink creates a sink bound to world and subscribes it to
// PlayerActionEventType.
func NewSink(world donburi.World) *Sink {
	s := &Sink{world: world}
	PlayerActionEventType.Subscribe(world, s.receive)
	return s
}

func (s *Sink) receive(_ donburi.World, a arena.PlayerAction) {
	s.inbox = append(s.inbox, a)
}

// NotifyGameAction publishes action to GameActionEventType. Subscribers see
// it when the event type is processed.
func (s *Sink) NotifyGameAction(action arena.GameAction) {
	GameActionEventType.Publish(s.world, action)
}

// PollAction returns the oldest pending player action. Queued
// PlayerActionEventType events are processed first when the inbox is empty.
func (s *Sink) PollAction() (arena.PlayerAction, bool) {
	if len(s.inbox) == 0 {
		PlayerActionEventType.ProcessEvents(s.world)
	}
	if len(s.inbox) == 0 {
		return arena.PlayerAction{}, false
	}
	a := s.inbox[0]
	s.inbox = s.inbox[1:]
	return a, true
}

// PublishPlayerAction queues a player action for every sink bound to world.
func PublishPlayerAction(world donburi.World, a arena.PlayerAction) {
	PlayerActionEventType.Publish(world, a)
}
