package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.System != "cylinder" {
		t.Errorf("expected system cylinder, got %s", cfg.System)
	}
	if cfg.Order <= 0 {
		t.Error("truncation order should be positive")
	}
	if cfg.RootTolerance <= 0 || cfg.MergeTolerance <= 0 {
		t.Error("tolerances should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("gauss", "digits2")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params.Branches != 2 {
		t.Errorf("expected 2 branches, got %d", cfg.Params.Branches)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("cylinder", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "wide"); cfg != nil {
		t.Error("expected nil for nonexistent system")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("cylinder"); len(presets) == 0 {
		t.Error("expected presets for cylinder")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent system")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.System = "n_funnel"
	cfg.Params.Funnels = 3
	cfg.UseSymmetry = true

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.System != "n_funnel" || got.Params.Funnels != 3 || !got.UseSymmetry {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.Order != DefaultOrder {
		t.Errorf("expected default order %d, got %d", DefaultOrder, got.Order)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("system: gauss\nparams:\n  branches: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.System != "gauss" || cfg.Params.Branches != 3 {
		t.Errorf("partial load: %+v", cfg)
	}
	if cfg.RootTolerance != DefaultRootTolerance {
		t.Errorf("expected default root tolerance, got %v", cfg.RootTolerance)
	}
}

func TestGetSearchOptions(t *testing.T) {
	cfg := GetPreset("cylinder", "wide")
	opts := cfg.GetSearchOptions()
	// presets leave tolerances zero, so the search defaults apply
	if opts.RootTolerance <= 0 || opts.MergeTolerance <= 0 || opts.MaxIterations <= 0 {
		t.Errorf("search options not defaulted: %+v", opts)
	}

	cfg2 := DefaultConfig()
	cfg2.RootTolerance = 1e-8
	cfg2.Workers = 4
	opts2 := cfg2.GetSearchOptions()
	if opts2.RootTolerance != 1e-8 || opts2.Workers != 4 {
		t.Errorf("search options not carried over: %+v", opts2)
	}
}
