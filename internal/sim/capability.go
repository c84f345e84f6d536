package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/Garsondee/Ink-Wars/internal/config"
)

// StructureType identifies a kind of building.
type StructureType uint8

const (
	StructureBasic StructureType = iota
	StructureSprinkler
	StructurePump
	StructureSniper
	StructureMortar
	StructureHQ
	StructureSpawner
	structureTypeCount
)

var structureTypeNames = [structureTypeCount]string{
	StructureBasic:     "basic",
	StructureSprinkler: "sprinkler",
	StructurePump:      "pump",
	StructureSniper:    "sniper",
	StructureMortar:    "mortar",
	StructureHQ:        "hq",
	StructureSpawner:   "spawner",
}

func (t StructureType) String() string {
	if t < structureTypeCount {
		return structureTypeNames[t]
	}
	return "unknown"
}

// ParseStructureType maps a rules name to its type.
func ParseStructureType(name string) (StructureType, bool) {
	for i, n := range structureTypeNames {
		if n == name {
			return StructureType(i), true
		}
	}
	return 0, false
}

// BuildableTypes lists the types a player may buy, in menu order.
var BuildableTypes = []StructureType{
	StructureBasic, StructureSprinkler, StructurePump,
	StructureSniper, StructureMortar, StructureSpawner,
}

// FireMode is the activation strategy of a structure type.
type FireMode uint8

const (
	FireNone     FireMode = iota // passive (pump, hq)
	FireTargeted                 // one projectile at a selected cell
	FireScatter                  // several droplets at random cells around itself
	FireSpawn                    // produces roaming actors instead of projectiles
)

var fireModeNames = map[string]FireMode{
	"none":     FireNone,
	"targeted": FireTargeted,
	"scatter":  FireScatter,
	"spawn":    FireSpawn,
}

// ProjectileKind is the visual/behavioural family of a projectile.
type ProjectileKind uint8

const (
	ProjectileBullet ProjectileKind = iota
	ProjectileDroplet
	ProjectileSniper
	ProjectileMortar
)

var projectileKindNames = map[string]ProjectileKind{
	"":        ProjectileBullet,
	"bullet":  ProjectileBullet,
	"droplet": ProjectileDroplet,
	"sniper":  ProjectileSniper,
	"mortar":  ProjectileMortar,
}

func (k ProjectileKind) String() string {
	switch k {
	case ProjectileBullet:
		return "bullet"
	case ProjectileDroplet:
		return "droplet"
	case ProjectileSniper:
		return "sniper"
	case ProjectileMortar:
		return "mortar"
	default:
		return "unknown"
	}
}

// ScatterSpec scales a scatter shot relative to the structure's own row.
type ScatterSpec struct {
	Count       int
	DamageScale float64
	PaintScale  float64
	RadiusScale float64
}

// StructureSpec is one capability row: everything the engine needs to know
// about a structure type.
type StructureSpec struct {
	Type             StructureType
	Cost             int
	MaxHP            float64
	Range            int
	Shots            int // activations per battle
	Damage           float64
	Paint            float64
	AoE              int // radius in cells, 0 = single cell
	BlockedByWalls   bool
	TurretOnly       bool
	Indirect         bool
	Spread           float64 // cells of target jitter
	ProjectileSpeed  float64
	ProjectileRadius float64
	Fire             FireMode
	Projectile       ProjectileKind
	Arc              bool
	Scatter          ScatterSpec
	Income           int // funds per turn while alive
	Fixed            bool
	Sound            SoundID
	Glyph            rune
}

// Buildable reports whether players may buy this type.
func (s *StructureSpec) Buildable() bool { return !s.Fixed }

// Capturable reports whether destroying this type hands it to the attacker.
func (s *StructureSpec) Capturable() bool { return !s.Fixed }

// SpecTable holds the capability row of every structure type.
type SpecTable struct {
	rows    [structureTypeCount]StructureSpec
	present [structureTypeCount]bool
}

// NewSpecTable builds the table from rules. Every structure type must have a
// row.
func NewSpecTable(r *config.Rules) (*SpecTable, error) {
	t := &SpecTable{}
	var errs []error
	for _, row := range r.Structures {
		if err := t.Register(row); err != nil {
			errs = append(errs, err)
		}
	}
	for i := StructureType(0); i < structureTypeCount; i++ {
		if !t.present[i] {
			errs = append(errs, fmt.Errorf("no capability row for %s", i))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return t, nil
}

// Register adds or replaces the row for row.Type.
func (t *SpecTable) Register(row config.StructureRules) error {
	typ, ok := ParseStructureType(row.Type)
	if !ok {
		return fmt.Errorf("unknown structure type %q", row.Type)
	}
	fire, ok := fireModeNames[row.Fire]
	if !ok {
		return fmt.Errorf("%s: unknown fire mode %q", row.Type, row.Fire)
	}
	proj, ok := projectileKindNames[row.Projectile]
	if !ok {
		return fmt.Errorf("%s: unknown projectile %q", row.Type, row.Projectile)
	}
	sound, ok := ParseSoundID(row.Sound)
	if !ok {
		return fmt.Errorf("%s: unknown sound %q", row.Type, row.Sound)
	}
	glyph := '?'
	for _, r := range row.Glyph {
		glyph = r
		break
	}
	t.rows[typ] = StructureSpec{
		Type:             typ,
		Cost:             row.Cost,
		MaxHP:            row.MaxHP,
		Range:            row.Range,
		Shots:            row.Shots,
		Damage:           row.Damage,
		Paint:            row.Paint,
		AoE:              row.AoE,
		BlockedByWalls:   row.BlockedByWalls,
		TurretOnly:       row.TurretOnly,
		Indirect:         row.Indirect,
		Spread:           row.Spread,
		ProjectileSpeed:  row.ProjectileSpeed,
		ProjectileRadius: row.ProjectileRadius,
		Fire:             fire,
		Projectile:       proj,
		Arc:              row.Arc,
		Scatter: ScatterSpec{
			Count:       row.Scatter.Count,
			DamageScale: row.Scatter.DamageScale,
			PaintScale:  row.Scatter.PaintScale,
			RadiusScale: row.Scatter.RadiusScale,
		},
		Income: row.Income,
		Fixed:  row.Fixed,
		Sound:  sound,
		Glyph:  glyph,
	}
	t.present[typ] = true
	return nil
}

// Spec returns the row for typ.
func (t *SpecTable) Spec(typ StructureType) *StructureSpec {
	return &t.rows[typ]
}

// neverFires is the schedule of a structure with nothing to activate.
var neverFires = math.Inf(1)
