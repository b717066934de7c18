package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skm-lab/zetadyn/internal/spectral"
)

const (
	DefaultOrder          = 12
	DefaultRootTolerance  = 1e-10
	DefaultMergeTolerance = 1e-6
	DefaultMaxIterations  = 200000
	DefaultSupport        = 16
	DefaultSigma          = 0.5
)

type Config struct {
	System         string        `yaml:"system"`
	Kind           string        `yaml:"kind"`
	Params         ParamsConfig  `yaml:"params"`
	Order          int           `yaml:"truncation_order"`
	UseSymmetry    bool          `yaml:"use_symmetry"`
	RootTolerance  float64       `yaml:"root_tolerance"`
	MergeTolerance float64       `yaml:"merge_tolerance"`
	MaxIterations  int           `yaml:"max_iterations"`
	Workers        int           `yaml:"workers"`
	Domain         DomainConfig  `yaml:"domain"`
	Weights        WeightsConfig `yaml:"weights"`
}

type ParamsConfig struct {
	Width    float64 `yaml:"width"`
	OuterLen float64 `yaml:"outer_len"`
	InnerLen float64 `yaml:"inner_len"`
	Angle    float64 `yaml:"angle"`
	Twist    float64 `yaml:"twist"`
	Funnels  int     `yaml:"funnels"`
	Branches int     `yaml:"branches"`
	Rotated  bool    `yaml:"rotated"`
}

type DomainConfig struct {
	ReMin float64 `yaml:"re_min"`
	ReMax float64 `yaml:"re_max"`
	ImMin float64 `yaml:"im_min"`
	ImMax float64 `yaml:"im_max"`
}

type WeightsConfig struct {
	Enabled bool    `yaml:"enabled"`
	Support int     `yaml:"support"`
	Sigma   float64 `yaml:"sigma"`
}

func DefaultConfig() *Config {
	return &Config{
		System:         "cylinder",
		Kind:           "selberg",
		Params:         ParamsConfig{Width: 5.0, Rotated: true},
		Order:          DefaultOrder,
		RootTolerance:  DefaultRootTolerance,
		MergeTolerance: DefaultMergeTolerance,
		MaxIterations:  DefaultMaxIterations,
		Domain:         DomainConfig{ReMin: -1, ReMax: 1, ImMin: -2, ImMax: 2},
		Weights:        WeightsConfig{Support: DefaultSupport, Sigma: DefaultSigma},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) GetDomain() spectral.Rect {
	return spectral.Rect{
		ReMin: c.Domain.ReMin,
		ReMax: c.Domain.ReMax,
		ImMin: c.Domain.ImMin,
		ImMax: c.Domain.ImMax,
	}
}

func (c *Config) GetSearchOptions() spectral.Options {
	opts := spectral.DefaultOptions()
	if c.RootTolerance > 0 {
		opts.RootTolerance = c.RootTolerance
	}
	if c.MergeTolerance > 0 {
		opts.MergeTolerance = c.MergeTolerance
	}
	if c.MaxIterations > 0 {
		opts.MaxIterations = c.MaxIterations
	}
	opts.Workers = c.Workers
	return opts
}
