// Package config holds the tunable parameters of a conversion.
package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/jsphweid/scoreroll/constants"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Instrument maps every part whose name matches one of Patterns to Name.
// Patterns are case-insensitive regular expressions.
type Instrument struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`

	compiled []*regexp.Regexp
}

type Config struct {
	Resolution   int          `yaml:"resolution"`
	Pitches      int          `yaml:"pitches"`
	DiscardGrace bool         `yaml:"discard_grace"`
	Instruments  []Instrument `yaml:"instruments"`
}

func Default() *Config {
	return &Config{
		Resolution: constants.DefaultResolution,
		Pitches:    constants.NumberOfPitches,
	}
}

// Parse reads a YAML document. Missing values keep their defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrap(err, "could not parse config")
	}
	if err := cfg.compile(); err != nil {
		return nil, err
	}
	if cfg.Resolution <= 0 {
		return nil, errors.Errorf("resolution must be positive, got %d", cfg.Resolution)
	}
	if cfg.Pitches <= 0 {
		return nil, errors.Errorf("pitches must be positive, got %d", cfg.Pitches)
	}
	return cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

func (c *Config) compile() error {
	for i := range c.Instruments {
		inst := &c.Instruments[i]
		inst.compiled = nil
		for _, p := range inst.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return errors.Wrapf(err, "instrument %v", inst.Name)
			}
			inst.compiled = append(inst.compiled, re)
		}
	}
	return nil
}

// InstrumentName returns the instrument a part belongs to. Parts that match
// no instrument keep their own name.
func (c *Config) InstrumentName(partName string) string {
	for i := range c.Instruments {
		inst := &c.Instruments[i]
		if inst.compiled == nil && len(inst.Patterns) > 0 {
			if err := c.compile(); err != nil {
				break
			}
		}
		for _, re := range inst.compiled {
			if re.MatchString(partName) {
				return inst.Name
			}
		}
	}
	return strings.TrimSpace(partName)
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
