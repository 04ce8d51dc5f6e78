package sand

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"mad-sand/internal/core"
)

// ErrUnknownParameter is returned by Config.Set for keys that name no tunable.
var ErrUnknownParameter = errors.New("sand: unknown parameter")

// Parameters reports every tunable grouped for the HUD.
func (u *Universe) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{{
		Name: "World",
		Params: []core.Parameter{
			intParam("w", "Width", u.cfg.Width),
			intParam("h", "Height", u.cfg.Height),
			int64Param("seed", "Seed", u.cfg.Seed),
			{Key: "scene", Label: "Scene", Type: core.ParamTypeString, Value: u.cfg.Scene},
		},
	}}
	index := map[string]int{}
	for _, t := range tunables {
		gi, ok := index[t.group]
		if !ok {
			groups = append(groups, core.ParameterGroup{Name: t.group})
			gi = len(groups) - 1
			index[t.group] = gi
		}
		groups[gi].Params = append(groups[gi].Params, t.snapshot(&u.cfg.Params))
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable tunables.
func (u *Universe) ParameterControls() []core.ParameterControl {
	out := make([]core.ParameterControl, 0, len(tunables))
	for _, t := range tunables {
		out = append(out, t.control())
	}
	return out
}

// SetIntParameter updates an integer tunable, clamping to its range.
func (u *Universe) SetIntParameter(key string, value int) bool {
	t, ok := lookupTunable(key)
	if !ok || t.kind != core.ParamTypeInt {
		return false
	}
	*t.intField(&u.cfg.Params) = int(math.Round(t.control().Clamp(float64(value))))
	u.cfg.Params.normalize()
	return true
}

// SetFloatParameter updates a floating point tunable. Chances may be given
// either as a fraction or as a percentage; the result is clamped to range.
func (u *Universe) SetFloatParameter(key string, value float64) bool {
	t, ok := lookupTunable(key)
	if !ok || t.kind != core.ParamTypeFloat {
		return false
	}
	if t.max == 1 && value > 1 {
		value /= 100
	}
	*t.floatField(&u.cfg.Params) = t.control().Clamp(value)
	return true
}

// Set parses value into the tunable named key.
func (c *Config) Set(key, value string) error {
	t, ok := lookupTunable(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
	if !t.parseInto(&c.Params, value) {
		return fmt.Errorf("sand: invalid value %q for %s (range %g..%g)", value, key, t.min, t.max)
	}
	c.Params.normalize()
	return nil
}

func (t tunable) control() core.ParameterControl {
	return core.ParameterControl{
		Key:    t.key,
		Label:  t.label,
		Type:   t.kind,
		Step:   t.step,
		Min:    t.min,
		Max:    t.max,
		HasMin: true,
		HasMax: true,
	}
}

func (t tunable) snapshot(p *Params) core.Parameter {
	if t.kind == core.ParamTypeInt {
		return intParam(t.key, t.label, *t.intField(p))
	}
	return floatParam(t.key, t.label, *t.floatField(p))
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
