package sand

import (
	"strconv"

	"mad-sand/internal/core"
)

// Scene names accepted by Config.Scene.
const (
	SceneEmpty = "empty"
	SceneDunes = "dunes"
)

// Params holds the tunable lifetimes, budgets and probabilities of the rules.
type Params struct {
	FireLifeMin     int
	FireLifeMax     int
	FireStarveDecay int

	AcidBudgetMin int
	AcidBudgetMax int

	LiquidSpread int
	LavaSpread   int
	GasSpread    int

	WoodIgniteChance  float64
	PlantIgniteChance float64
	OilIgniteChance   float64
	GasIgniteChance   float64
	DustIgniteChance  float64

	FungusSpreadChance float64
	WoodRotTicks       int
	PlantGrowChance    float64

	IceFreezeChance float64
	IceMeltChance   float64

	MiteFeedChance float64
	MiteIceWeight  float64
	MiteDustWeight float64

	ClonerEmitChance  float64
	RocketBlastRadius int

	StoneLoadThreshold int
	StoneCrumbleChance float64
}

// Config controls the sand simulation dimensions and rules.
type Config struct {
	Width  int
	Height int

	Seed  int64
	Scene string

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  256,
		Height: 256,
		Seed:   1337,
		Scene:  SceneEmpty,
		Params: DefaultParams(),
	}
}

// DefaultParams returns the standard rule tunables.
func DefaultParams() Params {
	return Params{
		FireLifeMin:     12,
		FireLifeMax:     40,
		FireStarveDecay: 1,

		AcidBudgetMin: 2,
		AcidBudgetMax: 5,

		LiquidSpread: 3,
		LavaSpread:   1,
		GasSpread:    2,

		WoodIgniteChance:  0.05,
		PlantIgniteChance: 0.1,
		OilIgniteChance:   0.4,
		GasIgniteChance:   1,
		DustIgniteChance:  1,

		FungusSpreadChance: 0.02,
		WoodRotTicks:       60,
		PlantGrowChance:    0.03,

		IceFreezeChance: 0.01,
		IceMeltChance:   0.1,

		MiteFeedChance: 0.2,
		MiteIceWeight:  4,
		MiteDustWeight: 3,

		ClonerEmitChance:  0.5,
		RocketBlastRadius: 4,

		StoneLoadThreshold: 12,
		StoneCrumbleChance: 0.05,
	}
}

type tunable struct {
	key   string
	label string
	group string
	kind  core.ParamType

	intField   func(*Params) *int
	floatField func(*Params) *float64

	step     float64
	min, max float64
}

func intTunable(group, key, label string, f func(*Params) *int, min, max float64) tunable {
	return tunable{key: key, label: label, group: group, kind: core.ParamTypeInt, intField: f, step: 1, min: min, max: max}
}

func chanceTunable(group, key, label string, f func(*Params) *float64, step float64) tunable {
	return tunable{key: key, label: label, group: group, kind: core.ParamTypeFloat, floatField: f, step: step, min: 0, max: 1}
}

var tunables = []tunable{
	intTunable("Fire", "fire_life_min", "Fire life min", func(p *Params) *int { return &p.FireLifeMin }, 1, 255),
	intTunable("Fire", "fire_life_max", "Fire life max", func(p *Params) *int { return &p.FireLifeMax }, 1, 255),
	intTunable("Fire", "fire_starve_decay", "Fire starve decay", func(p *Params) *int { return &p.FireStarveDecay }, 0, 32),
	chanceTunable("Fire", "wood_ignite_chance", "Wood ignite chance", func(p *Params) *float64 { return &p.WoodIgniteChance }, 0.01),
	chanceTunable("Fire", "plant_ignite_chance", "Plant ignite chance", func(p *Params) *float64 { return &p.PlantIgniteChance }, 0.01),
	chanceTunable("Fire", "oil_ignite_chance", "Oil ignite chance", func(p *Params) *float64 { return &p.OilIgniteChance }, 0.05),
	chanceTunable("Fire", "gas_ignite_chance", "Gas ignite chance", func(p *Params) *float64 { return &p.GasIgniteChance }, 0.05),
	chanceTunable("Fire", "dust_ignite_chance", "Dust ignite chance", func(p *Params) *float64 { return &p.DustIgniteChance }, 0.05),

	intTunable("Acid", "acid_budget_min", "Acid budget min", func(p *Params) *int { return &p.AcidBudgetMin }, 1, 255),
	intTunable("Acid", "acid_budget_max", "Acid budget max", func(p *Params) *int { return &p.AcidBudgetMax }, 1, 255),

	intTunable("Flow", "liquid_spread", "Liquid spread", func(p *Params) *int { return &p.LiquidSpread }, 0, 16),
	intTunable("Flow", "lava_spread", "Lava spread", func(p *Params) *int { return &p.LavaSpread }, 0, 16),
	intTunable("Flow", "gas_spread", "Gas spread", func(p *Params) *int { return &p.GasSpread }, 0, 16),

	chanceTunable("Growth", "fungus_spread_chance", "Fungus spread chance", func(p *Params) *float64 { return &p.FungusSpreadChance }, 0.005),
	intTunable("Growth", "wood_rot_ticks", "Wood rot ticks", func(p *Params) *int { return &p.WoodRotTicks }, 1, 255),
	chanceTunable("Growth", "plant_grow_chance", "Plant grow chance", func(p *Params) *float64 { return &p.PlantGrowChance }, 0.005),
	chanceTunable("Growth", "ice_freeze_chance", "Ice freeze chance", func(p *Params) *float64 { return &p.IceFreezeChance }, 0.005),
	chanceTunable("Growth", "ice_melt_chance", "Ice melt chance", func(p *Params) *float64 { return &p.IceMeltChance }, 0.01),

	chanceTunable("Creatures", "mite_feed_chance", "Mite feed chance", func(p *Params) *float64 { return &p.MiteFeedChance }, 0.05),
	{key: "mite_ice_weight", label: "Mite ice weight", group: "Creatures", kind: core.ParamTypeFloat,
		floatField: func(p *Params) *float64 { return &p.MiteIceWeight }, step: 0.5, min: 0, max: 32},
	{key: "mite_dust_weight", label: "Mite dust weight", group: "Creatures", kind: core.ParamTypeFloat,
		floatField: func(p *Params) *float64 { return &p.MiteDustWeight }, step: 0.5, min: 0, max: 32},
	chanceTunable("Creatures", "cloner_emit_chance", "Cloner emit chance", func(p *Params) *float64 { return &p.ClonerEmitChance }, 0.05),
	intTunable("Creatures", "rocket_blast_radius", "Rocket blast radius", func(p *Params) *int { return &p.RocketBlastRadius }, 0, 32),

	intTunable("Stone", "stone_load_threshold", "Stone load threshold", func(p *Params) *int { return &p.StoneLoadThreshold }, 1, 255),
	chanceTunable("Stone", "stone_crumble_chance", "Stone crumble chance", func(p *Params) *float64 { return &p.StoneCrumbleChance }, 0.01),
}

func lookupTunable(key string) (tunable, bool) {
	for _, t := range tunables {
		if t.key == key {
			return t, true
		}
	}
	return tunable{}, false
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Values that fail to parse or fall outside a tunable's range are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["scene"]; ok && (v == SceneEmpty || v == SceneDunes) {
		c.Scene = v
	}
	for _, t := range tunables {
		v, ok := cfg[t.key]
		if !ok {
			continue
		}
		t.parseInto(&c.Params, v)
	}
	c.Params.normalize()
	return c
}

func (t tunable) parseInto(p *Params, v string) bool {
	switch t.kind {
	case core.ParamTypeInt:
		parsed, err := strconv.Atoi(v)
		if err != nil || float64(parsed) < t.min || float64(parsed) > t.max {
			return false
		}
		*t.intField(p) = parsed
	case core.ParamTypeFloat:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < t.min || parsed > t.max {
			return false
		}
		*t.floatField(p) = parsed
	default:
		return false
	}
	return true
}

// normalize keeps min/max pairs ordered.
func (p *Params) normalize() {
	if p.FireLifeMax < p.FireLifeMin {
		p.FireLifeMax = p.FireLifeMin
	}
	if p.AcidBudgetMax < p.AcidBudgetMin {
		p.AcidBudgetMax = p.AcidBudgetMin
	}
}
