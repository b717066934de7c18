// Package export serializes resonance sets to JSON, CSV and SVG.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/skm-lab/zetadyn/internal/spectral"
)

type Point struct {
	Re           float64 `json:"re"`
	Im           float64 `json:"im"`
	Multiplicity int     `json:"multiplicity"`
}

// ResonanceSet is a search run's output with enough context to reproduce
// it.
type ResonanceSet struct {
	System     string   `json:"system"`
	Kind       string   `json:"kind"`
	Order      int      `json:"truncation_order"`
	Domain     Domain   `json:"domain"`
	Resonances []Point  `json:"resonances"`
	Warnings   []string `json:"warnings,omitempty"`
}

// NewResonanceSet packages a search result.
func NewResonanceSet(system, kind string, order int, domain spectral.Rect, res *spectral.Result) *ResonanceSet {
	set := &ResonanceSet{
		System: system,
		Kind:   kind,
		Order:  order,
		Domain: DomainFromRect(domain),
	}
	for _, r := range res.Resonances {
		set.Resonances = append(set.Resonances, Point{
			Re:           real(r.S),
			Im:           imag(r.S),
			Multiplicity: r.Multiplicity,
		})
	}
	for _, w := range res.Warnings {
		set.Warnings = append(set.Warnings, w.String())
	}
	return set
}

func WriteJSON(w io.Writer, set *ResonanceSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(set)
}

func WriteCSV(w io.Writer, set *ResonanceSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"re", "im", "multiplicity"}); err != nil {
		return err
	}
	for _, p := range set.Resonances {
		rec := []string{
			strconv.FormatFloat(p.Re, 'g', 17, 64),
			strconv.FormatFloat(p.Im, 'g', 17, 64),
			strconv.Itoa(p.Multiplicity),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
