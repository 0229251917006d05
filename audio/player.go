// Package audio plays arena sound effects as synthesized tones through the
// system speaker.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/phanxgames/arena"
	"go.uber.org/zap"
)

// Player is an arena.AudioSink. Sounds are quieter and panned further the
// farther they are from the listener. Play is a no-op until Init succeeds.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	cfg         arena.AudioConfig
	tables      *arena.Tables
	log         *zap.Logger
	mixer       *beep.Mixer
	listener    arena.Vec2
	initialized bool
}

// NewPlayer creates a player using the sound rows of tables. A nil log
// discards the warnings about sounds that cannot be built.
func NewPlayer(cfg arena.AudioConfig, tables *arena.Tables, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	if cfg.Falloff <= 0 {
		cfg.Falloff = 400
	}
	return &Player{
		rate:   beep.SampleRate(rate),
		cfg:    cfg,
		tables: tables,
		log:    log,
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops every sound and closes the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// SetTables swaps the sound rows, used after a tables reload.
func (p *Player) SetTables(t *arena.Tables) {
	p.mu.Lock()
	p.tables = t
	p.mu.Unlock()
}

// SetListenerPosition moves the listener.
func (p *Player) SetListenerPosition(pos arena.Vec2) {
	p.mu.Lock()
	p.listener = pos
	p.mu.Unlock()
}

// Play starts effect as heard from the listener position.
func (p *Player) Play(effect arena.SoundEffect, pos arena.Vec2) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := p.streamer(effect, pos)
	if err != nil {
		p.log.Warn("sound skipped", zap.Stringer("effect", effect), zap.Error(err))
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// streamer builds the tone for effect: a sine at the table frequency, cut
// to the table duration, attenuated and panned for pos.
func (p *Player) streamer(effect arena.SoundEffect, pos arena.Vec2) (beep.Streamer, error) {
	data := p.tables.Sound(effect)
	tone, err := generators.SineTone(p.rate, data.Frequency)
	if err != nil {
		return nil, fmt.Errorf("sound %v: %w", effect, err)
	}
	take := beep.Take(p.rate.N(data.Duration), tone)
	vol := &effects.Volume{
		Streamer: take,
		Base:     2,
		Volume:   p.cfg.Volume + data.Volume - p.attenuation(pos),
		Silent:   !p.cfg.Enabled,
	}
	return &effects.Pan{Streamer: vol, Pan: p.pan(pos)}, nil
}

// attenuation is the volume drop, in base-2 steps, for a sound at pos.
func (p *Player) attenuation(pos arena.Vec2) float64 {
	return arena.Distance(p.listener, pos) / p.cfg.Falloff
}

// pan maps the horizontal offset from the listener to [-1, 1].
func (p *Player) pan(pos arena.Vec2) float64 {
	d := (pos.X - p.listener.X) / p.cfg.Falloff
	return math.Max(-1, math.Min(1, d))
}
