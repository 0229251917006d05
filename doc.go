// Package arena is the simulation core of a two-team top-down arena game on
// [Ebitengine].
//
// The scene is a tree of [Node] values owned by a [Graph]. Nodes address each
// other by [Handle], so removing a node releases its whole subtree and any
// handle still pointing into it simply stops resolving.
//
// # Quick start
//
// A [World] builds the scene, runs the per-frame pipeline and emits draw
// calls:
//
//	w := arena.NewWorld(*arena.DefaultConfig(), arena.WithLogger(log))
//	w.AddAvatar(1, arena.TeamA)
//	w.AddAvatar(2, arena.TeamB)
//	w.StartGame()
//
//	// each tick
//	w.HandlePlayerAction(arena.PlayerAction{Identifier: 1, Kind: arena.PlayerFire})
//	w.Update(1.0 / 60)
//	w.Draw(arena.NewEbitenSink(screen, textures))
//
// # Commands
//
// Gameplay code never walks the tree looking for nodes of a given kind.
// It pushes a [Command] tagged with a [Category] mask onto the
// [CommandQueue]; the world drains the queue once per frame and runs each
// command on every node whose category shares a bit with the mask.
//
// # Collaborators
//
// Sound and networking are reached through the [AudioSink] and [NetworkSink]
// interfaces. The audio subpackage synthesizes positional tones with beep and
// the ecs subpackage bridges player and game actions onto Donburi events.
//
// Entity stats live in YAML data tables ([Tables]) and world settings in a
// TOML file ([Config]).
//
// [Ebitengine]: https://ebitengine.org
package arena
