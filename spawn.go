package arena

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
)

// SpawnPoint is a scripted enemy waiting to enter the battlefield.
type SpawnPoint struct {
	Type AvatarType
	X, Y float64
}

// AddEnemy schedules an enemy relative to the spawn origin: relX to the
// right, relY upward. Call SortEnemies after adding a batch. Panics for the
// player avatar types.
func (w *World) AddEnemy(typ AvatarType, relX, relY float64) {
	if typ == AvatarTeamA || typ == AvatarTeamB || typ >= avatarTypeCount {
		panic(fmt.Sprintf("arena: %v is not an enemy avatar type", typ))
	}
	w.enemySpawns = append(w.enemySpawns, SpawnPoint{
		Type: typ,
		X:    w.spawnPosition.X + relX,
		Y:    w.spawnPosition.Y - relY,
	})
}

// SortEnemies orders the pending spawn points by y so the lowest ones are
// checked first.
func (w *World) SortEnemies() {
	sort.SliceStable(w.enemySpawns, func(i, j int) bool {
		return w.enemySpawns[i].Y < w.enemySpawns[j].Y
	})
}

// PendingEnemies returns the number of spawn points not yet spawned.
func (w *World) PendingEnemies() int {
	return len(w.enemySpawns)
}

// spawnEnemies spawns every pending enemy below the battlefield top.
func (w *World) spawnEnemies() {
	top := w.BattlefieldBounds().Y
	for len(w.enemySpawns) > 0 && w.enemySpawns[len(w.enemySpawns)-1].Y > top {
		last := len(w.enemySpawns) - 1
		sp := w.enemySpawns[last]
		w.enemySpawns = w.enemySpawns[:last]

		n := w.graph.NewEntity(AvatarKind(sp.Type), w.tables)
		n.SetPosition(sp.X, sp.Y)
		n.SetRotation(math.Pi)
		w.layers[LayerUpperAir].AttachChild(n)
		w.log.Debug("enemy spawned",
			zap.Stringer("type", sp.Type),
			zap.Float64("x", sp.X),
			zap.Float64("y", sp.Y))
	}
}

// --- Pickups ---

// SlotPosition returns the world position of a pickup slot.
func (w *World) SlotPosition(slot int) Vec2 {
	return Vec2{
		w.worldBounds.X + w.worldBounds.Width/2,
		w.worldBounds.Y + w.worldBounds.Height/6*float64(slot),
	}
}

// CreatePickup places a free-floating pickup at pos. It does not occupy a
// slot and is never respawned.
func (w *World) CreatePickup(typ PickupType, pos Vec2) *Node {
	n := w.graph.NewEntity(PickupKind(typ), w.tables)
	n.SetPosition(pos.X, pos.Y)
	n.SetScale(2, 2)
	w.layers[LayerUpperAir].AttachChild(n)
	return n
}

// CreatePickupAt places a ball in the given slot. A slot holds at most one
// pickup: if it is already occupied nothing is created and nil is returned.
// A queued slot is taken out of the respawn queue. Panics if slot is out of
// range.
func (w *World) CreatePickupAt(slot int) *Node {
	if slot < 1 || slot >= len(w.slots) {
		panic(fmt.Sprintf("arena: pickup slot %d out of range", slot))
	}
	if w.slots[slot] == slotLive {
		w.log.Debug("pickup slot occupied", zap.Int("slot", slot))
		return nil
	}
	w.dequeueSlot(slot)
	w.slots[slot] = slotLive

	pos := w.SlotPosition(slot)
	n := w.graph.NewEntity(PickupKind(PickupBall), w.tables)
	n.Pickup.Slot = slot
	n.SetPosition(pos.X, pos.Y)
	n.SetScale(2, 2)
	w.layers[LayerUpperAir].AttachChild(n)
	w.log.Debug("pickup spawned", zap.Int("slot", slot))
	return n
}

// PendingRespawns returns a copy of the respawn queue in drain order.
func (w *World) PendingRespawns() []int {
	return append([]int(nil), w.respawnQueue...)
}

// releaseSlot returns a consumed pickup's slot to the respawn queue. Slot 0
// and slots that are already queued are ignored.
func (w *World) releaseSlot(slot int) {
	if slot < 1 || slot >= len(w.slots) {
		return
	}
	if w.slots[slot] != slotLive {
		w.log.Debug("pickup slot already queued", zap.Int("slot", slot))
		return
	}
	w.slots[slot] = slotQueued
	w.respawnQueue = append(w.respawnQueue, slot)
}

func (w *World) dequeueSlot(slot int) {
	for i, s := range w.respawnQueue {
		if s == slot {
			w.respawnQueue = append(w.respawnQueue[:i], w.respawnQueue[i+1:]...)
			return
		}
	}
}

// checkRespawn refills every queued slot once per respawn interval of game
// time. The timer only runs after StartGame.
func (w *World) checkRespawn(dt float64) {
	if !w.gameStarted {
		return
	}
	w.respawnTimer += dt
	if w.respawnTimer < w.cfg.Pickups.RespawnInterval.Seconds() {
		return
	}
	w.respawnTimer = 0
	for len(w.respawnQueue) > 0 {
		slot := w.respawnQueue[0]
		w.respawnQueue = w.respawnQueue[1:]
		w.CreatePickupAt(slot)
	}
}
