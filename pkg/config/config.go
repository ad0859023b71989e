package config

// Config is the validated waylandify configuration.
type Config struct {
	// Backup copies an existing launcher aside before it is overwritten.
	Backup   bool               `koanf:"backup" toml:"backup"`
	FlagSets map[string]FlagSet `koanf:"flag_sets" toml:"flag_sets,omitempty" validate:"dive"`
	Programs []Program          `koanf:"programs" toml:"programs" validate:"min=1,dive"`
}

// FlagSet is a named, reusable list of flags.
type FlagSet struct {
	Flags []string `koanf:"flags" toml:"flags" validate:"min=1,dive,required"`
}

// Program describes one target application.
type Program struct {
	Name string `koanf:"name" toml:"name" validate:"required"`

	// Executables are candidate binary names, tried in order.
	Executables []string `koanf:"executables" toml:"executables" validate:"min=1,dive,required"`

	Flags    []string `koanf:"flags" toml:"flags,omitempty" validate:"dive,required"`
	FlagSets []string `koanf:"flag_sets" toml:"flag_sets,omitempty" validate:"dive,required"`
}

// EffectiveFlags returns the flags to inject for p: the flags of each
// referenced flag set in reference order, then the program's own flags.
// Duplicates keep their first position. Unknown flag sets contribute nothing.
func (c *Config) EffectiveFlags(p Program) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(flags []string) {
		for _, f := range flags {
			if seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}

	for _, name := range p.FlagSets {
		if set, ok := c.FlagSets[name]; ok {
			add(set.Flags)
		}
	}
	add(p.Flags)

	return out
}

// Program returns the program with the given name.
func (c *Config) Program(name string) (Program, bool) {
	for _, p := range c.Programs {
		if p.Name == name {
			return p, true
		}
	}
	return Program{}, false
}
