package arena

// SoundEffect identifies a one-shot sound.
type SoundEffect uint8

const (
	SoundAlliedGunfire SoundEffect = iota
	SoundEnemyGunfire
	SoundExplosion1
	SoundExplosion2
	SoundLaunchMissile
	SoundCollectPickup
	soundEffectCount
)

var soundEffectNames = [soundEffectCount]string{
	"allied_gunfire", "enemy_gunfire", "explosion1", "explosion2", "launch_missile", "collect_pickup",
}

func (e SoundEffect) String() string { return enumName(soundEffectNames[:], int(e)) }

// AudioSink plays positional sounds. Positions are world coordinates.
type AudioSink interface {
	Play(effect SoundEffect, pos Vec2)
	SetListenerPosition(pos Vec2)
}

type nopAudio struct{}

func (nopAudio) Play(SoundEffect, Vec2)    {}
func (nopAudio) SetListenerPosition(Vec2) {}

// SoundNode is the payload of a sound node. It forwards play requests that
// reach it through commands to its AudioSink.
type SoundNode struct {
	sink AudioSink
}

// NewSoundNode creates a sound node that plays through sink. A nil sink
// discards every request.
func (g *Graph) NewSoundNode(sink AudioSink) *Node {
	if sink == nil {
		sink = nopAudio{}
	}
	n := g.newNode("sound", NodeTypeSound, CategorySoundEffect)
	n.Sound = &SoundNode{sink: sink}
	return n
}

// Play forwards effect at pos to the sink.
func (s *SoundNode) Play(effect SoundEffect, pos Vec2) {
	s.sink.Play(effect, pos)
}

// playLocalSound pushes a command that plays effect at the world position of
// n as it is now.
func playLocalSound(n *Node, queue *CommandQueue, effect SoundEffect) {
	pos := n.WorldPosition()
	queue.Push(Command{
		Category: CategorySoundEffect,
		Action: func(s *Node, _ float64) {
			if s.Sound != nil {
				s.Sound.Play(effect, pos)
			}
		},
	})
}
