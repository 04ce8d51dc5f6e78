package app

import (
	"flag"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	Width    int
	Height   int
	Scene    string
	Radius   int
	HUDWidth int
	LogLevel string

	// Overrides holds key=value pairs forwarded to the simulation factory.
	Overrides KeyValues
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:       "sand",
		Scale:     3,
		TPS:       60,
		Seed:      42,
		Width:     256,
		Height:    256,
		Scene:     "dunes",
		Radius:    3,
		HUDWidth:  260,
		LogLevel:  "info",
		Overrides: KeyValues{},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.StringVar(&c.Scene, "scene", c.Scene, "initial scene (empty or dunes)")
	fs.IntVar(&c.Radius, "radius", c.Radius, "initial brush radius")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.StringVar(&c.LogLevel, "log", c.LogLevel, "log level (debug, info, warn, error)")
	fs.Var(&c.Overrides, "set", "simulation parameter override key=value (repeatable)")
}

// SimConfig builds the factory configuration map. Explicit overrides win over
// the dedicated flags.
func (c *Config) SimConfig() map[string]string {
	out := map[string]string{
		"w":     strconv.Itoa(c.Width),
		"h":     strconv.Itoa(c.Height),
		"seed":  strconv.FormatInt(c.Seed, 10),
		"scene": c.Scene,
	}
	for k, v := range c.Overrides {
		out[k] = v
	}
	return out
}

// KeyValues is a repeatable key=value flag.
type KeyValues map[string]string

// String renders the pairs sorted by key.
func (kv KeyValues) String() string {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + kv[k]
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair.
func (kv *KeyValues) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	if *kv == nil {
		*kv = KeyValues{}
	}
	(*kv)[key] = strings.TrimSpace(value)
	return nil
}
