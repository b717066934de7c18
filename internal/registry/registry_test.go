package registry

import (
	"testing"

	"github.com/skm-lab/zetadyn/internal/config"
	"github.com/skm-lab/zetadyn/internal/zeta"
)

func TestGetSystemPresets(t *testing.T) {
	r := NewRegistry()
	for system, presets := range config.Presets {
		for name, cfg := range presets {
			inst, err := r.GetSystem(cfg)
			if err != nil {
				t.Errorf("%s/%s: %v", system, name, err)
				continue
			}
			if inst.System == nil || inst.Group == nil {
				t.Errorf("%s/%s: incomplete instance", system, name)
			}
		}
	}
}

func TestGetSystem_Unknown(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	cfg.System = "nonexistent"
	if _, err := r.GetSystem(cfg); err == nil {
		t.Error("expected error for unknown system")
	}
}

func TestSymmetryWiring(t *testing.T) {
	r := NewRegistry()
	cfg := config.GetPreset("n_funnel", "three")
	inst, err := r.GetSystem(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if inst.Group.Order() != 3 {
		t.Errorf("expected symmetry order 3, got %d", inst.Group.Order())
	}

	plain := *cfg
	plain.UseSymmetry = false
	inst2, err := r.GetSystem(&plain)
	if err != nil {
		t.Fatal(err)
	}
	if inst2.Group.Order() != 1 {
		t.Errorf("expected trivial group, got order %d", inst2.Group.Order())
	}
}

func TestGetKind(t *testing.T) {
	r := NewRegistry()
	if k, err := r.GetKind("selberg"); err != nil || k != zeta.Selberg {
		t.Errorf("selberg: %v %v", k, err)
	}
	if k, err := r.GetKind("flow"); err != nil || k != zeta.Flow {
		t.Errorf("flow: %v %v", k, err)
	}
	if _, err := r.GetKind("other"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestListSystems(t *testing.T) {
	names := NewRegistry().ListSystems()
	if len(names) < 5 {
		t.Errorf("expected at least 5 systems, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}
