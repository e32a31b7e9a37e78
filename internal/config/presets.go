package config

var Presets = map[string]map[string]*Config{
	"fit": {
		"quick": {
			Kind: "fit", Seed: 442,
			Mixture: MixtureConfig{Components: 2, Tol: 1e-5, MaxIter: 200, Init: "random"},
		},
		"precise": {
			Kind: "fit", Seed: 442,
			Mixture: MixtureConfig{Components: 2, Tol: 1e-8, MaxIter: 1000, Init: "random"},
		},
		"kmeans-start": {
			Kind: "fit", Seed: 40,
			Mixture: MixtureConfig{Components: 2, Tol: 1e-6, MaxIter: 500, Init: "kmeans", Restarts: 10},
		},
	},
	"anneal": {
		"gaussian": {
			Kind: "anneal", Seed: 25,
			Anneal: AnnealConfig{Proposal: "gaussian", Sigma: 10, Samples: 300, Temp: 1.0, Alpha: 0.99, GridSize: 100},
		},
		"uniform": {
			Kind: "anneal", Seed: 25,
			Anneal: AnnealConfig{Proposal: "uniform", Samples: 300, Temp: 1.0, Alpha: 0.99, GridSize: 100},
		},
		"slow-cool": {
			Kind: "anneal", Seed: 25,
			Anneal: AnnealConfig{Proposal: "gaussian", Sigma: 5, Samples: 1000, Temp: 2.0, Alpha: 0.999, GridSize: 100},
		},
		"hot-start": {
			Kind: "anneal", Seed: 25,
			Anneal: AnnealConfig{Proposal: "gaussian", Sigma: 10, Samples: 500, Temp: 16.0, Alpha: 0.98, GridSize: 100},
		},
	},
}

func GetPreset(kind, preset string) *Config {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg, ok := kindPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	return names
}
