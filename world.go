package arena

import (
	"fmt"
	"math"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Option configures a World.
type Option func(*World)

// WithLogger sets the world's logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) { w.log = l }
}

// WithTables sets the entity data tables. The default is DefaultTables().
func WithTables(t *Tables) Option {
	return func(w *World) { w.tables = t }
}

// WithAudio sets the sink sound effects are played through.
func WithAudio(a AudioSink) Option {
	return func(w *World) { w.audio = a }
}

// WithNetwork sets the sink that receives outbound game actions and supplies
// inbound player actions.
func WithNetwork(n NetworkSink) Option {
	return func(w *World) { w.network = n }
}

// WithDebug enables per-frame stats and tree shape warnings, logged through
// the world logger.
func WithDebug() Option {
	return func(w *World) { w.debug = true }
}

type slotState uint8

const (
	slotQueued slotState = iota // waiting in the respawn queue
	slotLive                    // owned by a pickup in the scene
)

// World owns the scene graph and runs the per-frame simulation pipeline.
type World struct {
	cfg     Config
	log     *zap.Logger
	tables  *Tables
	audio   AudioSink
	network NetworkSink
	debug   bool

	graph       *Graph
	layers      [layerCount]*Node
	particles   [particleTypeCount]*Node
	networkNode *Node
	camera      *Camera
	queue       CommandQueue
	render      renderer

	worldBounds   Rect
	spawnPosition Vec2
	listener      Vec2

	// avatars holds non-owning handles to player avatars for identifier
	// lookup. Stale handles are dropped every frame.
	avatars     []Handle
	enemySpawns []SpawnPoint

	slots        []slotState // index 0 is unused
	respawnQueue []int
	respawnTimer float64
	gameStarted  bool

	// OnAvatarEnemyCollision is called for every overlapping player avatar
	// and enemy avatar. Nil means no effect.
	OnAvatarEnemyCollision func(avatar, enemy *Node)
	// OnAvatarAvatarCollision is called for every overlapping pair of player
	// avatars. Nil means no effect.
	OnAvatarAvatarCollision func(a, b *Node)
}

// NewWorld builds the scene for cfg: the three layers, background sprites,
// particle systems and the sound and network nodes. Every pickup slot starts
// in the respawn queue.
func NewWorld(cfg Config, opts ...Option) *World {
	w := &World{
		cfg:   cfg,
		log:   zap.NewNop(),
		graph: NewGraph(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.tables == nil {
		w.tables = DefaultTables()
	}
	if w.audio == nil {
		w.audio = nopAudio{}
	}
	if w.network == nil {
		w.network = nopNetwork{}
	}

	wc := cfg.World
	w.worldBounds = Rect{Width: wc.Width, Height: wc.Height}
	w.camera = NewCamera(wc.ViewWidth, wc.ViewHeight)
	w.spawnPosition = Vec2{wc.ViewWidth / 2, wc.Height - wc.ViewHeight/2}
	w.camera.SetCenter(w.spawnPosition.X, w.spawnPosition.Y)
	w.listener = w.camera.Center()

	w.buildScene()

	w.slots = make([]slotState, cfg.Pickups.Slots+1)
	for i := 1; i <= cfg.Pickups.Slots; i++ {
		w.respawnQueue = append(w.respawnQueue, i)
	}
	return w
}

func (w *World) buildScene() {
	root := w.graph.Root()
	for i := range w.layers {
		category := CategoryNone
		if Layer(i) == LayerLowerAir {
			category = CategoryScene
		}
		w.layers[i] = w.graph.NewContainer(fmt.Sprintf("layer%d", i), category)
		root.AttachChild(w.layers[i])
	}

	// The court covers the world plus one view of overscroll.
	courtH := w.worldBounds.Height + w.camera.Height
	court := w.graph.NewSprite("court", TextureCourt, Rect{Width: w.worldBounds.Width, Height: courtH})
	court.SetPosition(w.worldBounds.X+w.worldBounds.Width/2, w.worldBounds.Y+courtH/2)
	w.layers[LayerBackground].AttachChild(court)

	finish := w.graph.NewSprite("finish", TextureFinishLine, Rect{Width: w.worldBounds.Width, Height: 76})
	finish.SetPosition(w.worldBounds.Width/2, -38)
	w.layers[LayerBackground].AttachChild(finish)

	for i := range w.particles {
		w.particles[i] = w.graph.NewParticleSystem(ParticleType(i), w.tables)
		w.layers[LayerLowerAir].AttachChild(w.particles[i])
	}

	root.AttachChild(w.graph.NewSoundNode(w.audio))
	w.networkNode = w.graph.NewNetworkNode(w.network)
	root.AttachChild(w.networkNode)
}

// Graph returns the scene graph.
func (w *World) Graph() *Graph { return w.graph }

// Camera returns the world camera.
func (w *World) Camera() *Camera { return w.camera }

// Layer returns the container node of a scene layer.
func (w *World) Layer(l Layer) *Node { return w.layers[l] }

// CommandQueue returns the queue drained at the start of the next update.
func (w *World) CommandQueue() *CommandQueue { return &w.queue }

// Tables returns the entity data tables in use.
func (w *World) Tables() *Tables { return w.tables }

// SetTables swaps the data tables. Entities created afterwards use the new
// rows; live avatars keep their stats but fire projectiles from the new
// tables.
func (w *World) SetTables(t *Tables) {
	if t == nil {
		panic("arena: nil tables")
	}
	w.tables = t
	for _, n := range w.liveAvatars() {
		n.Avatar.tables = t
	}
	for i, n := range w.particles {
		n.Particles.setData(t.Particle(ParticleType(i)))
	}
	w.log.Info("tables replaced")
}

// --- Avatars ---

// AddAvatar creates a player avatar for team at the camera center and starts
// tracking it under id. An id that is already tracked returns the existing
// avatar. Panics if team is TeamNone.
func (w *World) AddAvatar(id int, team Team) *Node {
	if team == TeamNone {
		panic("arena: player avatars need a team")
	}
	if n, ok := w.Avatar(id); ok {
		w.log.Warn("avatar already exists", zap.Int("id", id))
		return n
	}
	typ, scale := AvatarTeamA, w.cfg.World.AvatarScale
	sx := scale
	if team == TeamB {
		typ, sx = AvatarTeamB, -scale
	}
	n := w.graph.NewEntity(AvatarKind(typ), w.tables)
	n.Avatar.Identifier = id
	n.SetScale(sx, scale)
	c := w.camera.Center()
	n.SetPosition(c.X, c.Y)
	w.layers[LayerUpperAir].AttachChild(n)
	w.avatars = append(w.avatars, n.ID())
	w.log.Info("avatar added", zap.Int("id", id), zap.Stringer("team", team))
	return n
}

// RemoveAvatar removes the avatar with the given id without a terminal
// effect. Unknown ids are ignored.
func (w *World) RemoveAvatar(id int) {
	for i, h := range w.avatars {
		n := w.graph.lookup(h)
		if n == nil || n.Avatar.Identifier != id {
			continue
		}
		n.Entity.Remove()
		w.avatars = append(w.avatars[:i], w.avatars[i+1:]...)
		w.log.Info("avatar removed", zap.Int("id", id))
		return
	}
}

// Avatar returns the tracked avatar with the given id.
func (w *World) Avatar(id int) (*Node, bool) {
	for _, h := range w.avatars {
		if n := w.graph.lookup(h); n != nil && n.Avatar.Identifier == id {
			return n, true
		}
	}
	return nil, false
}

// liveAvatars resolves the tracked avatars. The slice is rebuilt on every
// call.
func (w *World) liveAvatars() []*Node {
	out := make([]*Node, 0, len(w.avatars))
	for _, h := range w.avatars {
		if n := w.graph.lookup(h); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// HasAlivePlayer reports whether any tracked avatar is not destroyed.
func (w *World) HasAlivePlayer() bool {
	for _, n := range w.liveAvatars() {
		if !n.IsDestroyed() {
			return true
		}
	}
	return false
}

// HasPlayerReachedEnd reports whether a tracked avatar has left the world
// bounds.
func (w *World) HasPlayerReachedEnd() bool {
	for _, n := range w.liveAvatars() {
		p := n.Position()
		if !w.worldBounds.Contains(p.X, p.Y) {
			return true
		}
	}
	return false
}

// HandlePlayerAction queues the command for an inbound player action.
func (w *World) HandlePlayerAction(a PlayerAction) {
	w.queue.Push(playerActionCommand(a))
}

func playerActionCommand(a PlayerAction) Command {
	return Command{
		Category: CategoryPlayerAvatar,
		Action: AvatarAction(func(n *Node, av *Avatar, _ float64) {
			if av.Identifier != a.Identifier {
				return
			}
			switch a.Kind {
			case PlayerMoveLeft:
				n.Entity.Accelerate(Vec2{-av.MaxSpeed(), 0})
			case PlayerMoveRight:
				n.Entity.Accelerate(Vec2{av.MaxSpeed(), 0})
			case PlayerMoveUp:
				n.Entity.Accelerate(Vec2{0, -av.MaxSpeed()})
			case PlayerMoveDown:
				n.Entity.Accelerate(Vec2{0, av.MaxSpeed()})
			case PlayerFire:
				av.Fire()
			case PlayerLaunchMissile:
				av.LaunchMissile()
			}
		}),
	}
}

// --- Game state ---

// StartGame enables pickup respawning and scrolling. The respawn timer
// restarts.
func (w *World) StartGame() {
	w.gameStarted = true
	w.respawnTimer = 0
	w.log.Info("game started")
}

// HasGameStarted reports whether StartGame was called.
func (w *World) HasGameStarted() bool {
	return w.gameStarted
}

// PollGameAction removes and returns the oldest outbound game action.
func (w *World) PollGameAction() (GameAction, bool) {
	return w.networkNode.Network.Poll()
}

// ListenerPosition returns the audio listener position of the last update.
func (w *World) ListenerPosition() Vec2 {
	return w.listener
}

// --- View ---

// ViewBounds returns the world rectangle the camera shows.
func (w *World) ViewBounds() Rect {
	return w.camera.ViewBounds()
}

// BattlefieldBounds returns the view bounds extended upward by the spawn
// margin, where enemies spawn before becoming visible.
func (w *World) BattlefieldBounds() Rect {
	b := w.ViewBounds()
	b.Y -= w.cfg.World.SpawnMargin
	b.Height += w.cfg.World.SpawnMargin
	return b
}

// WorldBounds returns the rectangle of the whole battlefield.
func (w *World) WorldBounds() Rect {
	return w.worldBounds
}

// SetWorldHeight changes the height of the world bounds.
func (w *World) SetWorldHeight(height float64) {
	w.worldBounds.Height = height
}

// SetCurrentBattlefieldPosition places the camera so its center sits half a
// view above lineY, and moves the enemy spawn origin to the bottom of the
// world.
func (w *World) SetCurrentBattlefieldPosition(lineY float64) {
	c := w.camera.Center()
	w.camera.SetCenter(c.X, lineY-w.camera.Height/2)
	w.spawnPosition.Y = w.worldBounds.Height
}

// ScrollTo animates the camera center to (x, y) over duration seconds.
func (w *World) ScrollTo(x, y float64, duration float32) {
	w.camera.ScrollTo(x, y, duration, ease.InOutQuad)
}

// --- Frame ---

// Update advances the simulation by dt seconds.
func (w *World) Update(dt float64) {
	var stats debugStats
	var mark time.Time
	if w.debug {
		mark = time.Now()
	}

	w.pollPlayerActions()

	// A ScrollTo animation owns the camera until it lands.
	scrolling := w.camera.IsScrolling()
	w.camera.update(float32(dt))
	if w.gameStarted && w.cfg.World.ScrollSpeed != 0 && !scrolling {
		w.camera.Move(0, w.cfg.World.ScrollSpeed*dt)
	}

	for _, n := range w.liveAvatars() {
		n.Entity.SetVelocity(0, 0)
	}

	w.destroyEntitiesOutsideView()
	w.guideMissiles()

	root := w.graph.Root()
	stats.commandCount = w.queue.Len()
	for !w.queue.IsEmpty() {
		root.OnCommand(w.queue.Pop(), dt)
	}
	w.adaptPlayerVelocity()

	if w.debug {
		now := time.Now()
		stats.dispatchTime, mark = now.Sub(mark), now
	}
	stats.collisionPairs = w.handleCollisions()

	w.pruneAvatars()
	root.RemoveDestroyed()
	if w.debug {
		now := time.Now()
		stats.collisionTime, mark = now.Sub(mark), now
	}

	w.spawnEnemies()

	root.Update(dt, &w.queue)
	w.adaptPlayerPosition()

	w.updateListener()
	w.checkRespawn(dt)

	if w.debug {
		stats.updateTime = time.Since(mark)
		stats.nodeCount = w.graph.Len()
		w.debugCheckTree(root, 0)
		w.debugLog(stats)
	}
}

// Draw emits the frame's render commands to sink, back to front.
func (w *World) Draw(sink RenderSink) {
	start := time.Now()
	cmds := w.render.build(w.layers[:], w.camera.viewMatrix(), w.camera.ViewBounds())
	if w.debug {
		w.debugDrawLog(time.Since(start), cmds)
	}
	for i := range cmds {
		sink.Draw(cmds[i])
	}
}

func (w *World) pollPlayerActions() {
	for {
		a, ok := w.network.PollAction()
		if !ok {
			return
		}
		w.HandlePlayerAction(a)
	}
}

// destroyEntitiesOutsideView removes enemies and projectiles that left the
// battlefield.
func (w *World) destroyEntitiesOutsideView() {
	w.queue.Push(Command{
		Category: CategoryEnemyAvatar | CategoryProjectile,
		Action: EntityAction(func(n *Node, e *Entity, _ float64) {
			if !w.BattlefieldBounds().Intersects(n.BoundingRect()) {
				e.Remove()
			}
		}),
	})
}

// missileGuidance is the per-frame target snapshot shared by the two
// guidance commands. The first fills it, the second only reads it.
type missileGuidance struct {
	targets []Vec2
}

// nearest returns the target closest to pos. Ties keep the target collected
// first.
func (g *missileGuidance) nearest(pos Vec2) (Vec2, bool) {
	best, found := Vec2{}, false
	minDist := math.Inf(1)
	for _, t := range g.targets {
		if d := Distance(pos, t); d < minDist {
			best, minDist, found = t, d, true
		}
	}
	return best, found
}

func (w *World) guideMissiles() {
	g := &missileGuidance{}
	w.queue.Push(Command{
		Category: CategoryEnemyAvatar,
		Action: AvatarAction(func(n *Node, _ *Avatar, _ float64) {
			if !n.IsDestroyed() {
				g.targets = append(g.targets, n.WorldPosition())
			}
		}),
	})
	w.queue.Push(Command{
		Category: CategoryPlayerProjectile,
		Action: ProjectileAction(func(n *Node, p *Projectile, dt float64) {
			if !p.IsGuided() {
				return
			}
			if t, ok := g.nearest(n.WorldPosition()); ok {
				p.GuideTowards(n, t, dt)
			}
		}),
	})
}

// adaptPlayerVelocity keeps diagonal movement at axial speed.
func (w *World) adaptPlayerVelocity() {
	for _, n := range w.liveAvatars() {
		v := n.Entity.Velocity
		if v.X != 0 && v.Y != 0 {
			n.Entity.Velocity = v.Scale(1 / math.Sqrt2)
		}
	}
}

// handleCollisions resolves every overlapping pair and returns the number of
// pairs found.
func (w *World) handleCollisions() int {
	pairs := CollectCollisionPairs(w.graph.Root())
	for i := range pairs {
		pair := &pairs[i]
		switch {
		case MatchesCategories(pair, CategoryPlayerAvatar, CategoryEnemyAvatar):
			if w.OnAvatarEnemyCollision != nil {
				w.OnAvatarEnemyCollision(pair.First, pair.Second)
			}
		case MatchesCategories(pair, CategoryPlayerAvatar, CategoryPlayerAvatar):
			if w.OnAvatarAvatarCollision != nil {
				w.OnAvatarAvatarCollision(pair.First, pair.Second)
			}
		case MatchesCategories(pair, CategoryPlayerAvatar, CategoryPickup):
			w.consumePickup(pair.First, pair.Second)
		case MatchesCategories(pair, CategoryPlayerAvatar, CategoryProjectile):
			w.hitAvatar(pair.First, pair.Second)
		}
	}
	return len(pairs)
}

// consumePickup hands a pickup to an avatar that lacks the ball. The pickup's
// slot goes back to the respawn queue.
func (w *World) consumePickup(avatar, pickup *Node) {
	if pickup.IsDestroyed() || avatar.Avatar.HasBall() {
		return
	}
	pk := pickup.Pickup
	w.releaseSlot(pk.Slot)
	pk.Apply(avatar)
	pickup.Entity.Destroy()
	playLocalSound(avatar, &w.queue, SoundCollectPickup)
	avatar.Avatar.PickUpBall()
	w.log.Debug("pickup consumed",
		zap.Int("avatar", avatar.Avatar.Identifier),
		zap.Stringer("type", pk.Type),
		zap.Int("slot", pk.Slot))
}

// hitAvatar applies a projectile hit unless the projectile belongs to the
// avatar's team.
func (w *World) hitAvatar(avatar, projectile *Node) {
	if projectile.IsDestroyed() || avatar.IsDestroyed() {
		return
	}
	if projectile.Projectile.Team == avatar.Avatar.Team {
		return
	}
	avatar.Entity.Damage(projectile.Projectile.Damage())
	projectile.Entity.Destroy()
	if avatar.IsDestroyed() {
		w.log.Info("avatar destroyed", zap.Int("id", avatar.Avatar.Identifier))
	}
}

// pruneAvatars drops avatars that the coming prune pass will release.
func (w *World) pruneAvatars() {
	kept := w.avatars[:0]
	for _, h := range w.avatars {
		if n := w.graph.lookup(h); n != nil && !n.IsMarkedForRemoval() {
			kept = append(kept, h)
		}
	}
	w.avatars = kept
}

// adaptPlayerPosition keeps avatars inside the view, at least the border
// distance from its edges, and on their team's half of the world.
func (w *World) adaptPlayerPosition() {
	vb := w.ViewBounds()
	border := w.cfg.World.BorderDistance
	mid := w.worldBounds.X + w.worldBounds.Width/2
	for _, n := range w.liveAvatars() {
		x := math.Min(math.Max(n.X, vb.X+border), vb.X+vb.Width-border)
		y := math.Min(math.Max(n.Y, vb.Y+border), vb.Y+vb.Height-border)
		switch n.Avatar.Team {
		case TeamA:
			x = math.Min(x, mid)
		case TeamB:
			x = math.Max(x, mid)
		}
		n.SetPosition(x, y)
	}
}

// updateListener moves the audio listener to the mean avatar position, or to
// the camera center when there are no avatars.
func (w *World) updateListener() {
	avatars := w.liveAvatars()
	if len(avatars) == 0 {
		w.listener = w.camera.Center()
	} else {
		var sum Vec2
		for _, n := range avatars {
			sum = sum.Add(n.WorldPosition())
		}
		w.listener = sum.Scale(1 / float64(len(avatars)))
	}
	w.audio.SetListenerPosition(w.listener)
}
