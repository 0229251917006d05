// Package ecs connects an arena world to a [Donburi] world.
//
// [NewSink] returns an [arena.NetworkSink] that publishes outbound game
// actions as [GameActionEventType] events and feeds the world with
// [PlayerActionEventType] events published by input or network systems.
//
// Usage:
//
//	ecsWorld := donburi.NewWorld()
//	world := arena.NewWorld(cfg, arena.WithNetwork(ecs.NewSink(ecsWorld)))
//	ecs.PublishPlayerAction(ecsWorld, arena.PlayerAction{Identifier: 1, Kind: arena.PlayerFire})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
