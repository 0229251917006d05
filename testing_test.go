package arena

import (
	"math"
	"testing"

	"go.uber.org/zap/zaptest"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

// testWorld returns a world built from the default config. The game is not
// started, so no pickups spawn and the camera stays put.
func testWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	cfg := DefaultConfig()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	return NewWorld(*cfg, opts...)
}

// recordingAudio records every play request and listener move.
type recordingAudio struct {
	played   []SoundEffect
	listener []Vec2
}

func (r *recordingAudio) Play(effect SoundEffect, _ Vec2) {
	r.played = append(r.played, effect)
}

func (r *recordingAudio) SetListenerPosition(pos Vec2) {
	r.listener = append(r.listener, pos)
}

// scriptedNetwork replays inbound actions and records outbound ones.
type scriptedNetwork struct {
	inbound  []PlayerAction
	outbound []GameAction
}

func (s *scriptedNetwork) NotifyGameAction(a GameAction) {
	s.outbound = append(s.outbound, a)
}

func (s *scriptedNetwork) PollAction() (PlayerAction, bool) {
	if len(s.inbound) == 0 {
		return PlayerAction{}, false
	}
	a := s.inbound[0]
	s.inbound = s.inbound[1:]
	return a, true
}
