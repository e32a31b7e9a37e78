package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultComponents = 2
	DefaultTol        = 1e-6
	DefaultMaxIter    = 500
	DefaultRestarts   = 10
	DefaultSamples    = 300
	DefaultTemp       = 1.0
	DefaultAlpha      = 0.99
	DefaultSigma      = 10.0
	DefaultGridSize   = 100
)

type Config struct {
	Kind    string        `yaml:"kind"`
	Seed    int64         `yaml:"seed"`
	Dataset DatasetConfig `yaml:"dataset"`
	Mixture MixtureConfig `yaml:"mixture"`
	Anneal  AnnealConfig  `yaml:"anneal"`
}

type DatasetConfig struct {
	Path        string `yaml:"path"`
	Standardize bool   `yaml:"standardize"`
}

type MixtureConfig struct {
	Components int     `yaml:"components"`
	Tol        float64 `yaml:"tol"`
	MaxIter    int     `yaml:"max_iter"`
	Init       string  `yaml:"init"`
	Restarts   int     `yaml:"restarts"`
}

type AnnealConfig struct {
	Proposal string  `yaml:"proposal"`
	Sigma    float64 `yaml:"sigma"`
	Samples  int     `yaml:"samples"`
	Temp     float64 `yaml:"temp"`
	Alpha    float64 `yaml:"alpha"`
	GridSize int     `yaml:"grid_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Kind: "fit",
		Mixture: MixtureConfig{
			Components: DefaultComponents,
			Tol:        DefaultTol,
			MaxIter:    DefaultMaxIter,
			Init:       "random",
			Restarts:   DefaultRestarts,
		},
		Anneal: AnnealConfig{
			Proposal: "gaussian",
			Sigma:    DefaultSigma,
			Samples:  DefaultSamples,
			Temp:     DefaultTemp,
			Alpha:    DefaultAlpha,
			GridSize: DefaultGridSize,
		},
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
