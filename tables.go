package arena

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed data/tables.yaml
var defaultTablesYAML []byte

// AvatarType enumerates the avatar variants built by the entity factory.
type AvatarType uint8

const (
	AvatarTeamA AvatarType = iota
	AvatarTeamB
	AvatarRaptor
	AvatarAvenger
	avatarTypeCount
)

var avatarTypeNames = [avatarTypeCount]string{"team_a", "team_b", "raptor", "avenger"}

func (t AvatarType) String() string { return enumName(avatarTypeNames[:], int(t)) }

// ProjectileType enumerates the projectile variants.
type ProjectileType uint8

const (
	ProjectileAlliedBullet ProjectileType = iota
	ProjectileEnemyBullet
	ProjectileMissile
	projectileTypeCount
)

var projectileTypeNames = [projectileTypeCount]string{"allied_bullet", "enemy_bullet", "missile"}

func (t ProjectileType) String() string { return enumName(projectileTypeNames[:], int(t)) }

// PickupType enumerates the pickup variants.
type PickupType uint8

const (
	PickupBall PickupType = iota
	PickupHealthRefill
	PickupMissileRefill
	PickupFireSpread
	PickupFireRate
	pickupTypeCount
)

var pickupTypeNames = [pickupTypeCount]string{"ball", "health_refill", "missile_refill", "fire_spread", "fire_rate"}

func (t PickupType) String() string { return enumName(pickupTypeNames[:], int(t)) }

// ParticleType enumerates the particle pools.
type ParticleType uint8

const (
	ParticleSmoke ParticleType = iota
	ParticlePropellant
	particleTypeCount
)

var particleTypeNames = [particleTypeCount]string{"smoke", "propellant"}

func (t ParticleType) String() string { return enumName(particleTypeNames[:], int(t)) }

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

// Direction is one leg of an AI movement pattern: travel Distance pixels
// heading Angle degrees.
type Direction struct {
	Angle    float64 `yaml:"angle"`
	Distance float64 `yaml:"distance"`
}

// AvatarData holds the per-type avatar constants.
type AvatarData struct {
	Hitpoints      int           `yaml:"hitpoints"`
	Speed          float64       `yaml:"speed"`
	Texture        TextureID     `yaml:"texture"`
	Source         Rect          `yaml:"source"`
	Size           Vec2          `yaml:"size"`
	FireInterval   time.Duration `yaml:"fire_interval"`
	EffectDuration time.Duration `yaml:"effect_duration"`
	Directions     []Direction   `yaml:"directions"`
}

// ProjectileData holds the per-type projectile constants.
type ProjectileData struct {
	Damage  int       `yaml:"damage"`
	Speed   float64   `yaml:"speed"`
	Guided  bool      `yaml:"guided"`
	Texture TextureID `yaml:"texture"`
	Source  Rect      `yaml:"source"`
	Size    Vec2      `yaml:"size"`
}

// PickupData holds the per-type pickup constants.
type PickupData struct {
	Amount  int       `yaml:"amount"`
	Texture TextureID `yaml:"texture"`
	Source  Rect      `yaml:"source"`
	Size    Vec2      `yaml:"size"`
}

// ParticleData holds the per-type particle constants.
type ParticleData struct {
	Color    Color         `yaml:"color"`
	Lifetime time.Duration `yaml:"lifetime"`
}

// SoundData describes the synthesized tone played for a sound effect.
type SoundData struct {
	Frequency float64       `yaml:"frequency"`
	Duration  time.Duration `yaml:"duration"`
	Volume    float64       `yaml:"volume"`
}

// Tables holds every entity data table, indexed by variant.
type Tables struct {
	Avatars     [avatarTypeCount]AvatarData
	Projectiles [projectileTypeCount]ProjectileData
	Pickups     [pickupTypeCount]PickupData
	Particles   [particleTypeCount]ParticleData
	Sounds      [soundEffectCount]SoundData
}

type tablesFile struct {
	Avatars     map[string]AvatarData     `yaml:"avatars"`
	Projectiles map[string]ProjectileData `yaml:"projectiles"`
	Pickups     map[string]PickupData     `yaml:"pickups"`
	Particles   map[string]ParticleData   `yaml:"particles"`
	Sounds      map[string]SoundData      `yaml:"sounds"`
}

// Avatar returns the data row for t.
func (tb *Tables) Avatar(t AvatarType) AvatarData { return tb.Avatars[t] }

// Projectile returns the data row for t.
func (tb *Tables) Projectile(t ProjectileType) ProjectileData { return tb.Projectiles[t] }

// Pickup returns the data row for t.
func (tb *Tables) Pickup(t PickupType) PickupData { return tb.Pickups[t] }

// Particle returns the data row for t.
func (tb *Tables) Particle(t ParticleType) ParticleData { return tb.Particles[t] }

// Sound returns the data row for e.
func (tb *Tables) Sound(e SoundEffect) SoundData { return tb.Sounds[e] }

// DefaultTables parses the embedded data tables. It panics if they are
// malformed, which only happens when the embedded file is broken.
func DefaultTables() *Tables {
	t, err := ParseTables(defaultTablesYAML)
	if err != nil {
		panic(fmt.Sprintf("arena: embedded tables: %v", err))
	}
	return t
}

// LoadTables loads entity data tables from a YAML file.
func LoadTables(path string) (*Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables %s: %w", path, err)
	}
	t, err := ParseTables(raw)
	if err != nil {
		return nil, fmt.Errorf("parse tables %s: %w", path, err)
	}
	return t, nil
}

// ParseTables decodes YAML data tables. Every variant must have a row.
func ParseTables(raw []byte) (*Tables, error) {
	var f tablesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	t := &Tables{}
	for i, name := range avatarTypeNames {
		row, ok := f.Avatars[name]
		if !ok {
			return nil, fmt.Errorf("missing avatar %q", name)
		}
		if row.Hitpoints <= 0 {
			return nil, fmt.Errorf("avatar %q: hitpoints must be positive", name)
		}
		t.Avatars[i] = row
	}
	for i, name := range projectileTypeNames {
		row, ok := f.Projectiles[name]
		if !ok {
			return nil, fmt.Errorf("missing projectile %q", name)
		}
		t.Projectiles[i] = row
	}
	for i, name := range pickupTypeNames {
		row, ok := f.Pickups[name]
		if !ok {
			return nil, fmt.Errorf("missing pickup %q", name)
		}
		t.Pickups[i] = row
	}
	for i, name := range particleTypeNames {
		row, ok := f.Particles[name]
		if !ok {
			return nil, fmt.Errorf("missing particle %q", name)
		}
		t.Particles[i] = row
	}
	for i, name := range soundEffectNames {
		row, ok := f.Sounds[name]
		if !ok {
			return nil, fmt.Errorf("missing sound %q", name)
		}
		if row.Frequency <= 0 {
			return nil, fmt.Errorf("sound %q: frequency must be positive", name)
		}
		t.Sounds[i] = row
	}
	return t, nil
}

var textureNames = map[string]TextureID{
	"none":        TextureNone,
	"entities":    TextureEntities,
	"court":       TextureCourt,
	"splatter":    TextureSplatter,
	"particle":    TextureParticle,
	"finish_line": TextureFinishLine,
}

// UnmarshalYAML decodes a texture name such as "entities".
func (id *TextureID) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	t, ok := textureNames[name]
	if !ok {
		return fmt.Errorf("line %d: unknown texture %q", value.Line, name)
	}
	*id = t
	return nil
}
