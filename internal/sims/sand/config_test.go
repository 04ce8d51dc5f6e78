package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-sand/internal/core"
)

func TestFromMapParsesWorldAndTunables(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":                   "120",
		"h":                   "80",
		"seed":                "-5",
		"scene":               SceneDunes,
		"fire_life_min":       "20",
		"fire_life_max":       "30",
		"oil_ignite_chance":   "0.75",
		"mite_ice_weight":     "8",
		"rocket_blast_radius": "6",
	})

	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, 80, cfg.Height)
	assert.Equal(t, int64(-5), cfg.Seed)
	assert.Equal(t, SceneDunes, cfg.Scene)
	assert.Equal(t, 20, cfg.Params.FireLifeMin)
	assert.Equal(t, 30, cfg.Params.FireLifeMax)
	assert.InDelta(t, 0.75, cfg.Params.OilIgniteChance, 1e-9)
	assert.InDelta(t, 8, cfg.Params.MiteIceWeight, 1e-9)
	assert.Equal(t, 6, cfg.Params.RocketBlastRadius)
}

func TestFromMapIgnoresBadValues(t *testing.T) {
	def := DefaultConfig()
	cfg := FromMap(map[string]string{
		"w":                 "-3",
		"h":                 "tall",
		"seed":              "1.5",
		"scene":             "volcano",
		"oil_ignite_chance": "2",
		"liquid_spread":     "99",
		"acid_budget_min":   "x",
	})
	assert.Equal(t, def, cfg)
	assert.Equal(t, def, FromMap(nil))
}

func TestFromMapOrdersRanges(t *testing.T) {
	cfg := FromMap(map[string]string{"fire_life_min": "50", "fire_life_max": "10"})
	assert.Equal(t, 50, cfg.Params.FireLifeMin)
	assert.GreaterOrEqual(t, cfg.Params.FireLifeMax, cfg.Params.FireLifeMin)
}

func TestConfigSet(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Set("gas_spread", "5"))
	assert.Equal(t, 5, cfg.Params.GasSpread)

	err := cfg.Set("gravity", "1")
	require.ErrorIs(t, err, ErrUnknownParameter)

	err = cfg.Set("ice_melt_chance", "1.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ice_melt_chance")
	assert.InDelta(t, DefaultParams().IceMeltChance, cfg.Params.IceMeltChance, 1e-9)
}

func TestTunableKeysAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, tn := range tunables {
		require.False(t, seen[tn.key], "duplicate tunable %q", tn.key)
		seen[tn.key] = true
		def := DefaultParams()
		switch tn.kind {
		case core.ParamTypeInt:
			require.NotNil(t, tn.intField, tn.key)
			v := float64(*tn.intField(&def))
			assert.True(t, v >= tn.min && v <= tn.max, "default %s=%v outside range", tn.key, v)
		case core.ParamTypeFloat:
			require.NotNil(t, tn.floatField, tn.key)
			v := *tn.floatField(&def)
			assert.True(t, v >= tn.min && v <= tn.max, "default %s=%v outside range", tn.key, v)
		default:
			t.Fatalf("tunable %s has unexpected kind %v", tn.key, tn.kind)
		}
	}
}

func TestParametersSnapshot(t *testing.T) {
	u := newTestUniverse(t, 32, 24, nil)
	snap := u.Parameters()

	require.NotEmpty(t, snap.Groups)
	assert.Equal(t, "World", snap.Groups[0].Name)

	w, ok := snap.Lookup("w")
	require.True(t, ok)
	assert.Equal(t, "32", w.Value)

	scene, ok := snap.Lookup("scene")
	require.True(t, ok)
	assert.Equal(t, core.ParamTypeString, scene.Type)

	for _, tn := range tunables {
		_, ok := snap.Lookup(tn.key)
		assert.True(t, ok, "snapshot missing %s", tn.key)
	}
	assert.Len(t, u.ParameterControls(), len(tunables))
}

func TestSetParametersClampAndScale(t *testing.T) {
	u := newTestUniverse(t, 8, 8, nil)

	require.True(t, u.SetFloatParameter("plant_grow_chance", 50))
	assert.InDelta(t, 0.5, u.Config().Params.PlantGrowChance, 1e-9)

	require.True(t, u.SetFloatParameter("plant_grow_chance", 150))
	assert.InDelta(t, 1, u.Config().Params.PlantGrowChance, 1e-9)

	require.True(t, u.SetFloatParameter("mite_dust_weight", 12))
	assert.InDelta(t, 12, u.Config().Params.MiteDustWeight, 1e-9)

	require.True(t, u.SetIntParameter("liquid_spread", 400))
	assert.Equal(t, 16, u.Config().Params.LiquidSpread)

	assert.False(t, u.SetIntParameter("plant_grow_chance", 1))
	assert.False(t, u.SetFloatParameter("liquid_spread", 1))
	assert.False(t, u.SetIntParameter("nope", 1))
}

func TestParseSpecies(t *testing.T) {
	s, err := ParseSpecies("  wAtEr ")
	require.NoError(t, err)
	assert.Equal(t, Water, s)

	_, err = ParseSpecies("plasma")
	require.ErrorIs(t, err, ErrUnknownSpecies)
}

func TestSpeciesProperties(t *testing.T) {
	assert.True(t, Water.Fluid())
	assert.True(t, Gas.Fluid())
	assert.False(t, Sand.Fluid())
	assert.Less(t, Oil.Density(), Water.Density())
	assert.Less(t, Water.Density(), Sand.Density())
	assert.False(t, Wall.Corrodible())
	assert.False(t, Acid.Corrodible())
	assert.True(t, Wood.Corrodible())
	assert.True(t, Lava.Hot())
	assert.False(t, Species(200).Valid())
	assert.Equal(t, "Species(200)", Species(200).String())
	assert.Len(t, Catalog(), int(speciesCount))
}
