// Package registry wires configuration names to function system
// constructors.
package registry

import (
	"fmt"
	"sort"

	"github.com/skm-lab/zetadyn/internal/config"
	"github.com/skm-lab/zetadyn/internal/ifs"
	"github.com/skm-lab/zetadyn/internal/symmetry"
	"github.com/skm-lab/zetadyn/internal/zeta"
)

// Instance is a constructed system together with its symmetry group and,
// when the system supports bounded fundamental intervals, its map view
// for orbit weights.
type Instance struct {
	System ifs.System
	Map    ifs.MapSystem
	Group  symmetry.Group
}

type Registry struct {
	systems map[string]func(*config.Config) (*Instance, error)
	kinds   map[string]zeta.Kind
}

func NewRegistry() *Registry {
	r := &Registry{
		systems: make(map[string]func(*config.Config) (*Instance, error)),
		kinds:   map[string]zeta.Kind{"selberg": zeta.Selberg, "flow": zeta.Flow},
	}

	r.systems["cylinder"] = func(cfg *config.Config) (*Instance, error) {
		sys, err := ifs.NewHyperbolicCylinder(cfg.Params.Width, cfg.Params.Rotated)
		if err != nil {
			return nil, err
		}
		return &Instance{System: sys, Map: sys, Group: symmetry.Trivial{}}, nil
	}
	r.systems["funnel_torus"] = func(cfg *config.Config) (*Instance, error) {
		sys, err := ifs.NewFunnelTorus(cfg.Params.OuterLen, cfg.Params.InnerLen, cfg.Params.Angle)
		if err != nil {
			return nil, err
		}
		return &Instance{System: sys, Map: sys, Group: symmetry.Trivial{}}, nil
	}
	r.systems["geometric_torus"] = func(cfg *config.Config) (*Instance, error) {
		sys, err := ifs.NewGeometricFunnelTorus(cfg.Params.OuterLen, cfg.Params.Width, cfg.Params.Twist)
		if err != nil {
			return nil, err
		}
		return &Instance{System: sys, Map: sys, Group: symmetry.Trivial{}}, nil
	}
	r.systems["n_funnel"] = func(cfg *config.Config) (*Instance, error) {
		sys, err := ifs.NewNFunnel(cfg.Params.Funnels, cfg.Params.Width)
		if err != nil {
			return nil, err
		}
		inst := &Instance{System: sys, Map: sys, Group: symmetry.Trivial{}}
		if cfg.UseSymmetry {
			rot, err := sys.RotationSymmetry()
			if err != nil {
				return nil, err
			}
			inst.Group = rot
		}
		return inst, nil
	}
	r.systems["gauss"] = func(cfg *config.Config) (*Instance, error) {
		sys, err := ifs.NewGauss(cfg.Params.Branches)
		if err != nil {
			return nil, err
		}
		return &Instance{System: sys, Map: sys, Group: symmetry.Trivial{}}, nil
	}

	return r
}

func (r *Registry) GetSystem(cfg *config.Config) (*Instance, error) {
	fn, ok := r.systems[cfg.System]
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", cfg.System)
	}
	return fn(cfg)
}

func (r *Registry) GetKind(name string) (zeta.Kind, error) {
	k, ok := r.kinds[name]
	if !ok {
		return 0, fmt.Errorf("unknown zeta kind: %s", name)
	}
	return k, nil
}

func (r *Registry) ListSystems() []string {
	names := make([]string, 0, len(r.systems))
	for name := range r.systems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
