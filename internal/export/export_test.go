package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/skm-lab/zetadyn/internal/spectral"
)

func sampleSet() *ResonanceSet {
	res := &spectral.Result{
		Resonances: []spectral.Resonance{
			{S: complex(0.53, 0), Multiplicity: 1},
			{S: complex(0, 1.2566), Multiplicity: 2},
		},
		Warnings: []spectral.PartialResultWarning{
			{Domain: spectral.Rect{ReMin: -1, ReMax: -0.5, ImMin: 0, ImMax: 0.5}, Reason: "evaluation budget spent"},
		},
	}
	domain := spectral.Rect{ReMin: -1, ReMax: 1, ImMin: -2, ImMax: 2}
	return NewResonanceSet("gauss", "selberg", 12, domain, res)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleSet()); err != nil {
		t.Fatal(err)
	}
	var got ResonanceSet
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.System != "gauss" || got.Order != 12 {
		t.Errorf("lost context: %+v", got)
	}
	if len(got.Resonances) != 2 || got.Resonances[1].Multiplicity != 2 {
		t.Errorf("lost resonances: %+v", got.Resonances)
	}
	if len(got.Warnings) != 1 {
		t.Errorf("lost warnings: %+v", got.Warnings)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleSet()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "re,im,multiplicity" {
		t.Errorf("bad header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0.53,") {
		t.Errorf("bad first row: %s", lines[1])
	}
}

func TestScatterSVG(t *testing.T) {
	svg := ScatterSVG(sampleSet(), 800, 600)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("malformed svg envelope")
	}
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 dots, got %d", strings.Count(svg, "<circle"))
	}
	// both axes cross the sample domain
	if strings.Count(svg, "<line") != 2 {
		t.Errorf("expected 2 axes, got %d", strings.Count(svg, "<line"))
	}
}

func TestTraceSVG(t *testing.T) {
	xs := []float64{0, 0.25, 0.5, 0.75, 1}
	vals := []float64{1, 0.5, 0.1, 0.4, 0.9}
	svg := TraceSVG(xs, vals, 640, 200)
	if !strings.Contains(svg, "<path") {
		t.Error("missing path element")
	}
	if TraceSVG(xs[:1], vals[:1], 640, 200) != "" {
		t.Error("expected empty output for a single point")
	}
}
