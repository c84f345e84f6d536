// Package config loads the rules document that drives the battle simulation:
// the structure capability rows, actor profiles, economy tuning and the stage
// layout. A default document is embedded in the binary.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultRules []byte

// Rules is the full rules document.
type Rules struct {
	Board      BoardRules       `yaml:"board"`
	Battle     BattleRules      `yaml:"battle"`
	Economy    EconomyRules     `yaml:"economy"`
	AI         AIRules          `yaml:"ai"`
	Structures []StructureRules `yaml:"structures"`
	Player     ActorRules       `yaml:"player"`
	Enemy      ActorRules       `yaml:"enemy"`
	Stage      StageRules       `yaml:"stage"`
}

// BoardRules sizes the grid.
type BoardRules struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	TileSize float64 `yaml:"tileSize"` // world units per cell
}

// BattleRules times the Simulating phase.
type BattleRules struct {
	Duration        float64 `yaml:"duration"`        // seconds
	ProjectileLife  float64 `yaml:"projectileLife"`  // seconds
	SpawnerInterval float64 `yaml:"spawnerInterval"` // seconds between agent launches
}

// FundsRule gives a side's starting funds as base + perStage*(stage-1).
type FundsRule struct {
	Base     int `yaml:"base"`
	PerStage int `yaml:"perStage"`
}

// EconomyRules tunes end-of-turn income.
type EconomyRules struct {
	IncomePerTile int `yaml:"incomePerTile"`
	FundsCap      int `yaml:"fundsCap"`
	StartFunds    struct {
		A FundsRule `yaml:"a"`
		B FundsRule `yaml:"b"`
	} `yaml:"startFunds"`
}

// BagEntry is one candidate in the AI placement bag.
// Chance 0 means the entry is always offered when affordable.
type BagEntry struct {
	Type     string  `yaml:"type"`
	Chance   float64 `yaml:"chance"`
	MinStage int     `yaml:"minStage"`
}

// AIRules tunes the automatic placement pass.
type AIRules struct {
	Tries        int        `yaml:"tries"`
	CellAttempts int        `yaml:"cellAttempts"`
	Bag          []BagEntry `yaml:"bag"`
}

// ScatterRules configures multi-droplet fire.
type ScatterRules struct {
	Count       int     `yaml:"count"`
	DamageScale float64 `yaml:"damageScale"`
	PaintScale  float64 `yaml:"paintScale"`
	RadiusScale float64 `yaml:"radiusScale"`
}

// StructureRules is one capability row.
type StructureRules struct {
	Type             string       `yaml:"type"`
	Cost             int          `yaml:"cost"`
	MaxHP            float64      `yaml:"maxHP"`
	Range            int          `yaml:"range"`
	Shots            int          `yaml:"shots"`
	Damage           float64      `yaml:"damage"`
	Paint            float64      `yaml:"paint"`
	AoE              int          `yaml:"aoe"`
	BlockedByWalls   bool         `yaml:"blockedByWalls"`
	TurretOnly       bool         `yaml:"turretOnly"`
	Indirect         bool         `yaml:"indirect"`
	Spread           float64      `yaml:"spread"`
	ProjectileSpeed  float64      `yaml:"projectileSpeed"`
	ProjectileRadius float64      `yaml:"projectileRadius"`
	Fire             string       `yaml:"fire"`       // none, targeted, scatter, spawn
	Projectile       string       `yaml:"projectile"` // bullet, droplet, sniper, mortar
	Arc              bool         `yaml:"arc"`
	Scatter          ScatterRules `yaml:"scatter"`
	Income           int          `yaml:"income"`
	Fixed            bool         `yaml:"fixed"` // cannot be bought or captured
	Sound            string       `yaml:"sound"`
	Glyph            string       `yaml:"glyph"`
}

// ExplosionRules describes an actor's contact explosion.
type ExplosionRules struct {
	Radius        int     `yaml:"radius"`
	Damage        float64 `yaml:"damage"`
	Paint         float64 `yaml:"paint"`
	ShakePower    float64 `yaml:"shakePower"`
	ShakeDuration float64 `yaml:"shakeDuration"`
	HitStop       float64 `yaml:"hitStop"`
}

// ActorRules is a roaming unit profile.
type ActorRules struct {
	HP         float64        `yaml:"hp"`
	Speed      float64        `yaml:"speed"`  // world units per second
	Radius     float64        `yaml:"radius"` // world units
	Life       float64        `yaml:"life"`   // seconds
	TrailPaint float64        `yaml:"trailPaint"`
	Explosion  ExplosionRules `yaml:"explosion"`
}

// Placement is a pre-built structure for side B.
type Placement struct {
	Type     string `yaml:"type"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	MinStage int    `yaml:"minStage"`
}

// StageRules holds the map layout and the scripted opening structures.
type StageRules struct {
	Layout  []string    `yaml:"layout"`
	Initial []Placement `yaml:"initial"`
}

var (
	fireModes       = []string{"none", "targeted", "scatter", "spawn"}
	projectileKinds = []string{"", "bullet", "droplet", "sniper", "mortar"}
)

// Default returns a fresh copy of the embedded rules.
func Default() (*Rules, error) {
	r, err := Parse(defaultRules)
	if err != nil {
		return nil, fmt.Errorf("embedded rules: %w", err)
	}
	return r, nil
}

// Load reads a rules document from disk.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules %s: %w", path, err)
	}
	return r, nil
}

// LoadOrDefault loads path, or the embedded rules when path is empty.
func LoadOrDefault(path string) (*Rules, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes, defaults and validates a rules document.
func Parse(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	r.applyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Rules) applyDefaults() {
	if r.Board.TileSize <= 0 {
		r.Board.TileSize = 32
	}
	if r.Battle.ProjectileLife <= 0 {
		r.Battle.ProjectileLife = 3
	}
	if r.Economy.FundsCap <= 0 {
		r.Economy.FundsCap = 9999
	}
	if r.AI.Tries <= 0 {
		r.AI.Tries = 18
	}
	if r.AI.CellAttempts <= 0 {
		r.AI.CellAttempts = 100
	}
	for i := range r.Structures {
		s := &r.Structures[i]
		s.Type = strings.ToLower(strings.TrimSpace(s.Type))
		if s.Fire == "" {
			s.Fire = "none"
		}
		if s.Fire == "scatter" && s.Scatter.Count <= 0 {
			s.Scatter.Count = 1
		}
	}
	// Short layout rows are floor on the right.
	for i, row := range r.Stage.Layout {
		if len(row) < r.Board.Width {
			r.Stage.Layout[i] = row + strings.Repeat(".", r.Board.Width-len(row))
		}
	}
	for i := range r.Stage.Initial {
		if r.Stage.Initial[i].MinStage <= 0 {
			r.Stage.Initial[i].MinStage = 1
		}
	}
}

// Validate checks the document for values the simulation cannot run with.
func (r *Rules) Validate() error {
	var errs []error
	if r.Board.Width <= 0 || r.Board.Height <= 0 {
		errs = append(errs, fmt.Errorf("board size %dx%d must be positive", r.Board.Width, r.Board.Height))
	}
	if r.Battle.Duration <= 0 {
		errs = append(errs, errors.New("battle duration must be positive"))
	}
	if r.Battle.SpawnerInterval <= 0 {
		errs = append(errs, errors.New("spawner interval must be positive"))
	}

	seen := make(map[string]bool, len(r.Structures))
	for _, s := range r.Structures {
		if s.Type == "" {
			errs = append(errs, errors.New("structure row without a type"))
			continue
		}
		if seen[s.Type] {
			errs = append(errs, fmt.Errorf("structure %q defined twice", s.Type))
		}
		seen[s.Type] = true
		if s.MaxHP <= 0 {
			errs = append(errs, fmt.Errorf("structure %q: maxHP must be positive", s.Type))
		}
		if s.Cost < 0 || s.Range < 0 || s.Shots < 0 || s.AoE < 0 {
			errs = append(errs, fmt.Errorf("structure %q: negative cost, range, shots or aoe", s.Type))
		}
		if !slices.Contains(fireModes, s.Fire) {
			errs = append(errs, fmt.Errorf("structure %q: unknown fire mode %q", s.Type, s.Fire))
		}
		if !slices.Contains(projectileKinds, s.Projectile) {
			errs = append(errs, fmt.Errorf("structure %q: unknown projectile %q", s.Type, s.Projectile))
		}
		if (s.Fire == "targeted" || s.Fire == "scatter") && s.ProjectileSpeed <= 0 {
			errs = append(errs, fmt.Errorf("structure %q: firing structures need a projectile speed", s.Type))
		}
	}
	for _, e := range r.AI.Bag {
		if !seen[e.Type] {
			errs = append(errs, fmt.Errorf("ai bag: unknown structure %q", e.Type))
		}
	}
	for _, p := range r.Stage.Initial {
		if !seen[p.Type] {
			errs = append(errs, fmt.Errorf("stage: unknown structure %q", p.Type))
		}
	}

	if err := r.validateLayout(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (r *Rules) validateLayout() error {
	if len(r.Stage.Layout) != r.Board.Height {
		return fmt.Errorf("stage layout has %d rows, board height is %d", len(r.Stage.Layout), r.Board.Height)
	}
	hqA, hqB := 0, 0
	for y, row := range r.Stage.Layout {
		if len(row) != r.Board.Width {
			return fmt.Errorf("stage layout row %d has %d columns, board width is %d", y, len(row), r.Board.Width)
		}
		for x, ch := range row {
			switch ch {
			case '.', '0':
			case 'P':
				hqA++
			case 'E':
				hqB++
			default:
				return fmt.Errorf("stage layout (%d,%d): unknown tile %q", x, y, ch)
			}
		}
	}
	if hqA != 1 || hqB != 1 {
		return fmt.Errorf("stage layout needs exactly one P and one E, found %d and %d", hqA, hqB)
	}
	return nil
}

// Structure returns the capability row named t.
func (r *Rules) Structure(t string) (StructureRules, bool) {
	for _, s := range r.Structures {
		if s.Type == t {
			return s, true
		}
	}
	return StructureRules{}, false
}

// StartFunds returns both sides' funds at the start of stage n.
func (r *Rules) StartFunds(stage int) (a, b int) {
	n := stage - 1
	if n < 0 {
		n = 0
	}
	a = r.Economy.StartFunds.A.Base + r.Economy.StartFunds.A.PerStage*n
	b = r.Economy.StartFunds.B.Base + r.Economy.StartFunds.B.PerStage*n
	return a, b
}
