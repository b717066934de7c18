package config

var Presets = map[string]map[string]*Config{
	"cylinder": {
		"narrow": {
			System: "cylinder", Kind: "selberg", Order: 12,
			Params: ParamsConfig{Width: 2.0, Rotated: true},
			Domain: DomainConfig{ReMin: -1, ReMax: 0.5, ImMin: -4, ImMax: 4},
		},
		"wide": {
			System: "cylinder", Kind: "selberg", Order: 12,
			Params: ParamsConfig{Width: 5.0, Rotated: true},
			Domain: DomainConfig{ReMin: -1, ReMax: 0.5, ImMin: -2, ImMax: 2},
		},
		"flow": {
			System: "cylinder", Kind: "flow", Order: 8,
			Params: ParamsConfig{Width: 5.0, Rotated: true},
			Domain: DomainConfig{ReMin: -0.5, ReMax: 0.5, ImMin: -2, ImMax: 2},
		},
	},
	"funnel_torus": {
		"standard": {
			System: "funnel_torus", Kind: "selberg", Order: 10,
			Params: ParamsConfig{OuterLen: 6.0, InnerLen: 6.0, Angle: 1.5707963267948966},
			Domain: DomainConfig{ReMin: 0, ReMax: 0.5, ImMin: -1, ImMax: 1},
		},
		"twisted": {
			System: "geometric_torus", Kind: "selberg", Order: 10,
			Params: ParamsConfig{OuterLen: 6.0, Width: 4.0, Twist: 0.5},
			Domain: DomainConfig{ReMin: 0, ReMax: 0.5, ImMin: -1, ImMax: 1},
		},
	},
	"n_funnel": {
		"three": {
			System: "n_funnel", Kind: "selberg", Order: 8, UseSymmetry: true,
			Params: ParamsConfig{Funnels: 3, Width: 6.0},
			Domain: DomainConfig{ReMin: 0, ReMax: 0.5, ImMin: -1, ImMax: 1},
		},
		"five": {
			System: "n_funnel", Kind: "selberg", Order: 6, UseSymmetry: true,
			Params: ParamsConfig{Funnels: 5, Width: 8.0},
			Domain: DomainConfig{ReMin: 0, ReMax: 0.5, ImMin: -1, ImMax: 1},
		},
	},
	"gauss": {
		"digits2": {
			System: "gauss", Kind: "selberg", Order: 12,
			Params: ParamsConfig{Branches: 2},
			Domain: DomainConfig{ReMin: 0.3, ReMax: 0.8, ImMin: -0.3, ImMax: 0.3},
		},
		"digits3": {
			System: "gauss", Kind: "selberg", Order: 12,
			Params: ParamsConfig{Branches: 3},
			Domain: DomainConfig{ReMin: 0.4, ReMax: 0.9, ImMin: -0.3, ImMax: 0.3},
		},
	},
}

func GetPreset(system, preset string) *Config {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	cfg, ok := systemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(system string) []string {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(systemPresets))
	for name := range systemPresets {
		names = append(names, name)
	}
	return names
}
