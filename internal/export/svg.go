package export

import (
	"fmt"
	"strings"

	"github.com/skm-lab/zetadyn/internal/spectral"
)

// ScatterSVG renders the resonance set as a scatter plot in the search
// domain, dot radius scaling with multiplicity.
func ScatterSVG(set *ResonanceSet, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	dom := set.Domain
	rangeRe := dom.ReMax - dom.ReMin
	rangeIm := dom.ImMax - dom.ImMin
	if rangeRe <= 0 {
		rangeRe = 1
	}
	if rangeIm <= 0 {
		rangeIm = 1
	}

	// axes through Re s = 0 and Im s = 0 when they cross the domain
	if dom.ReMin < 0 && dom.ReMax > 0 {
		x := (0 - dom.ReMin) / rangeRe * float64(width)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="#333344" stroke-width="1"/>
`, x, x, height))
	}
	if dom.ImMin < 0 && dom.ImMax > 0 {
		y := float64(height) - (0-dom.ImMin)/rangeIm*float64(height)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#333344" stroke-width="1"/>
`, y, width, y))
	}

	sb.WriteString("<g fill=\"#00ff00\">\n")
	for _, r := range set.Resonances {
		x := (r.Re - dom.ReMin) / rangeRe * float64(width)
		y := float64(height) - (r.Im-dom.ImMin)/rangeIm*float64(height)
		radius := 2.5 + 1.5*float64(r.Multiplicity-1)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, x, y, radius))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TraceSVG plots the determinant modulus along the real axis.
func TraceSVG(xs, values []float64, width, height int) string {
	if len(xs) < 2 || len(xs) != len(values) {
		return ""
	}
	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}
	rangeX := xs[len(xs)-1] - xs[0]
	if rangeX == 0 {
		rangeX = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#00ccff" stroke-width="1.5" d="M`,
		width, height, width, height))
	for i := range xs {
		x := (xs[i] - xs[0]) / rangeX * float64(width)
		y := float64(height) - (values[i]-minV)/rangeV*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// Domain is the plotted rectangle, mirrored from the search options.
type Domain struct {
	ReMin float64 `json:"re_min"`
	ReMax float64 `json:"re_max"`
	ImMin float64 `json:"im_min"`
	ImMax float64 `json:"im_max"`
}

func DomainFromRect(r spectral.Rect) Domain {
	return Domain{ReMin: r.ReMin, ReMax: r.ReMax, ImMin: r.ImMin, ImMax: r.ImMax}
}
