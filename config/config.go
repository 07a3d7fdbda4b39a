// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Population PopulationConfig `yaml:"population"`
	Tradeoff   TradeoffConfig   `yaml:"tradeoff"`
	Mortality  MortalityConfig  `yaml:"mortality"`
	Virus      VirusConfig      `yaml:"virus"`
	Infection  InfectionConfig  `yaml:"infection"`
	Resource   ResourceConfig   `yaml:"resource"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// GridConfig holds the toroidal lattice dimensions.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds initial agent counts.
type PopulationConfig struct {
	Bacteria int `yaml:"bacteria"`
	Viruses  int `yaml:"viruses"`
	Groups   int `yaml:"groups"` // trait groups shared by both populations
}

// TradeoffConfig holds the growth/resistance trade-off coefficients.
// growth_rate = Base + Slope * (1 - group/groups); resistance = 1 - growth_rate.
type TradeoffConfig struct {
	Base  float64 `yaml:"base"`
	Slope float64 `yaml:"slope"`
}

// MortalityConfig holds bacterial natural death coefficients.
// Per-step death probability is Linear + Quadratic * biomass.
type MortalityConfig struct {
	Linear    float64 `yaml:"linear"`
	Quadratic float64 `yaml:"quadratic"`
}

// VirusConfig holds virion lifecycle parameters.
type VirusConfig struct {
	DecayRate    float64 `yaml:"decay_rate"`    // per-step removal probability
	BurstSize    int     `yaml:"burst_size"`    // virions spawned per lysis
	InfectionLag int     `yaml:"infection_lag"` // ticks between infection and lysis
}

// InfectionConfig holds the infection draw semantics.
// CorrectedDraw=false keeps the historical comparison (draw < resistance
// infects); true makes resistance reduce infection probability instead.
type InfectionConfig struct {
	CorrectedDraw bool `yaml:"corrected_draw"`
}

// ResourceConfig holds DOM field parameters.
type ResourceConfig struct {
	InitialDOM float64 `yaml:"initial_dom"` // starting concentration in every cell
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"`
}

// ValidationError collects configuration issues so callers see all of them at once.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid configuration"
	}
	return "invalid configuration: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) add(issue string) {
	e.Issues = append(e.Issues, issue)
}

// Validate checks the configuration and returns a *ValidationError listing
// every problem found, or nil if the configuration is usable.
func (c *Config) Validate() error {
	err := &ValidationError{}

	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		err.add(fmt.Sprintf("grid dimensions must be positive, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Population.Bacteria < 0 {
		err.add(fmt.Sprintf("bacteria count must be non-negative, got %d", c.Population.Bacteria))
	}
	if c.Population.Viruses < 0 {
		err.add(fmt.Sprintf("virus count must be non-negative, got %d", c.Population.Viruses))
	}
	if c.Population.Groups <= 0 {
		err.add(fmt.Sprintf("group count must be positive, got %d", c.Population.Groups))
	}
	if c.Tradeoff.Base <= 0 || c.Tradeoff.Base+c.Tradeoff.Slope > 1 {
		err.add(fmt.Sprintf("trade-off must keep growth rates in (0,1], got base=%g slope=%g", c.Tradeoff.Base, c.Tradeoff.Slope))
	}
	if c.Mortality.Linear < 0 || c.Mortality.Quadratic < 0 {
		err.add("mortality coefficients must be non-negative")
	}
	if c.Virus.DecayRate < 0 || c.Virus.DecayRate > 1 {
		err.add(fmt.Sprintf("decay rate must be in [0,1], got %g", c.Virus.DecayRate))
	}
	if c.Virus.BurstSize < 0 {
		err.add(fmt.Sprintf("burst size must be non-negative, got %d", c.Virus.BurstSize))
	}
	if c.Virus.InfectionLag < 0 {
		err.add(fmt.Sprintf("infection lag must be non-negative, got %d", c.Virus.InfectionLag))
	}
	if c.Resource.InitialDOM < 0 {
		err.add(fmt.Sprintf("initial DOM concentration must be non-negative, got %g", c.Resource.InitialDOM))
	}

	if len(err.Issues) > 0 {
		return err
	}
	return nil
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
