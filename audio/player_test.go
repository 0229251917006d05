package audio

import (
	"math"
	"testing"

	"github.com/phanxgames/arena"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestPlayer() *Player {
	cfg := arena.DefaultConfig().Audio
	return NewPlayer(cfg, arena.DefaultTables(), nil)
}

func TestPlayer_ImplementsAudioSink(t *testing.T) {
	var _ arena.AudioSink = newTestPlayer()
}

func TestPlayer_PlayBeforeInitIsNoop(t *testing.T) {
	p := newTestPlayer()
	p.Play(arena.SoundExplosion1, arena.Vec2{})
	if n := p.mixer.Len(); n != 0 {
		t.Errorf("mixer.Len() = %d, want 0", n)
	}
}

func TestPlayer_StreamerLength(t *testing.T) {
	p := newTestPlayer()
	s, err := p.streamer(arena.SoundCollectPickup, arena.Vec2{})
	if err != nil {
		t.Fatalf("streamer: %v", err)
	}
	want := p.rate.N(p.tables.Sound(arena.SoundCollectPickup).Duration)

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
}

func TestPlayer_SamplesInRange(t *testing.T) {
	p := newTestPlayer()
	s, err := p.streamer(arena.SoundAlliedGunfire, arena.Vec2{})
	if err != nil {
		t.Fatalf("streamer: %v", err)
	}
	buf := make([][2]float64, 256)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if math.Abs(buf[i][0]) > 1 || math.Abs(buf[i][1]) > 1 {
			t.Fatalf("sample %d out of range: %v", i, buf[i])
		}
	}
}

func TestPlayer_Attenuation(t *testing.T) {
	p := newTestPlayer()
	p.SetListenerPosition(arena.Vec2{X: 100, Y: 100})

	if got := p.attenuation(arena.Vec2{X: 100, Y: 100}); got != 0 {
		t.Errorf("attenuation at listener = %v, want 0", got)
	}
	near := p.attenuation(arena.Vec2{X: 200, Y: 100})
	far := p.attenuation(arena.Vec2{X: 900, Y: 100})
	if near >= far {
		t.Errorf("attenuation near = %v, far = %v; want near < far", near, far)
	}
}

func TestPlayer_PanClamped(t *testing.T) {
	p := newTestPlayer()
	if got := p.pan(arena.Vec2{X: 1e6}); got != 1 {
		t.Errorf("pan far right = %v, want 1", got)
	}
	if got := p.pan(arena.Vec2{X: -1e6}); got != -1 {
		t.Errorf("pan far left = %v, want -1", got)
	}
	if got := p.pan(arena.Vec2{}); got != 0 {
		t.Errorf("pan at listener = %v, want 0", got)
	}
}

func TestPlayer_PlayLogsBadSound(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	tables := arena.DefaultTables()
	// Above the Nyquist limit of the sample rate.
	tables.Sounds[arena.SoundExplosion1].Frequency = 1e6
	p := NewPlayer(arena.DefaultConfig().Audio, tables, zap.New(core))
	// Skip the speaker; the failing tone is rejected before it is touched.
	p.initialized = true

	p.Play(arena.SoundExplosion1, arena.Vec2{})
	if n := p.mixer.Len(); n != 0 {
		t.Errorf("mixer.Len() = %d, want 0", n)
	}
	entries := logs.FilterMessage("sound skipped").All()
	if len(entries) != 1 {
		t.Fatalf("sound skipped entries = %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["effect"]; got != arena.SoundExplosion1.String() {
		t.Errorf("effect field = %v, want %v", got, arena.SoundExplosion1)
	}
}
