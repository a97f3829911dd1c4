package config

import "sort"

// Presets are named starting points layered over DefaultConfig.
var Presets = map[string]func(*Config){
	"venus": func(c *Config) {
		c.Mode, c.View = "venus", "top-down"
	},
	"venus-sky": func(c *Config) {
		c.Mode, c.View = "venus", "from-earth"
	},
	"mars-retrograde": func(c *Config) {
		c.Mode, c.View, c.Speed = "mars", "top-down", 2.0
	},
	"mars-sky": func(c *Config) {
		c.Mode, c.View, c.Speed = "mars", "from-earth", 2.0
		c.TrailLength = 1500
	},
	"ptolemy": func(c *Config) {
		c.Mode, c.Speed = "ptolemaic", 1.5
	},
	"classroom": func(c *Config) {
		c.Speed = 0.5
		c.ResetScope = "all"
	},
}

func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
