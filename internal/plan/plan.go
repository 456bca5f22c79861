// Package plan holds the structured construction plan: its shape, the
// acceptance contract, the tolerant parser, and the deterministic fallback.
package plan

import (
	"fmt"
	"math"
)

// Allowed building categories.
const (
	TypeOffice      = "office"
	TypePark        = "park"
	TypeResidential = "residential"
	TypeCommercial  = "commercial"
)

// PhaseCounts is the exact per-phase building count an accepted plan must
// have, in phase order. The sum is 50.
var PhaseCounts = [5]int{10, 12, 12, 10, 6}

// PhaseNames are the canonical phase labels, in phase order.
var PhaseNames = [5]string{
	"Public Infrastructure",
	"Commercial District",
	"Residential Area",
	"Office District",
	"Public Facilities",
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Building is an in-memory description of a structure awaiting
// materialization.
type Building struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Size     Size     `json:"size"`
	Color    string   `json:"color"`
}

// Phase is one ordered construction stage.
type Phase struct {
	Phase     int        `json:"phase"`
	Name      string     `json:"name"`
	Buildings []Building `json:"buildings"`
}

// Plan is the transient tree produced by one orchestration run. It is never
// persisted; only its materialized buildings are.
type Plan struct {
	Analysis string  `json:"analysis"`
	Phases   []Phase `json:"phases"`
}

// TotalBuildings is the authoritative progress denominator: the sum of
// per-phase building counts.
func (p Plan) TotalBuildings() int {
	n := 0
	for _, ph := range p.Phases {
		n += len(ph.Buildings)
	}
	return n
}

func validType(t string) bool {
	switch t {
	case TypeOffice, TypePark, TypeResidential, TypeCommercial:
		return true
	}
	return false
}

// Validate checks the acceptance contract: exactly 5 phases with the exact
// per-phase counts, allowed types, positive sizes. A failing plan is
// discarded wholesale in favor of the fallback; there is no partial
// acceptance or padding.
func (p Plan) Validate() error {
	if len(p.Phases) != len(PhaseCounts) {
		return fmt.Errorf("plan has %d phases, want %d", len(p.Phases), len(PhaseCounts))
	}
	for i, ph := range p.Phases {
		if got, want := len(ph.Buildings), PhaseCounts[i]; got != want {
			return fmt.Errorf("phase %d has %d buildings, want %d", i+1, got, want)
		}
		for _, b := range ph.Buildings {
			if !validType(b.Type) {
				return fmt.Errorf("phase %d: building %q has invalid type %q", i+1, b.Name, b.Type)
			}
			if b.Size.Width < 0 || b.Size.Height < 0 || b.Size.Depth < 0 {
				return fmt.Errorf("phase %d: building %q has negative size", i+1, b.Name)
			}
		}
	}
	return nil
}

// SpatialReport summarizes how a plan distributes buildings on the grid.
// The checks are advisory: the architect prompt demands them, but a
// violating plan is still accepted.
type SpatialReport struct {
	Total        int
	CenterZone   int    // |x| <= 10 and |z| <= 10; at most 8 wanted
	EdgeCount    int    // |x| > 15 or |z| > 15; at least 15 wanted
	CornerCount  int    // |x| > 20 and |z| > 20; at least 8 wanted
	Quadrants    [4]int // ++, -+, --, +-; 10..15 each wanted
	MinSpacing   float64
	SpacingPairs int // pairs closer than 4 units center to center
}

const (
	maxCenterZone  = 8
	minEdgeCount   = 15
	minCornerCount = 8
	minQuadrant    = 10
	maxQuadrant    = 15
	minSpacing     = 4.0
)

// CheckSpatial computes the spatial report for a plan.
func CheckSpatial(p Plan) SpatialReport {
	var all []Position
	for _, ph := range p.Phases {
		for _, b := range ph.Buildings {
			all = append(all, b.Position)
		}
	}
	rep := SpatialReport{Total: len(all), MinSpacing: math.Inf(1)}
	for _, pos := range all {
		ax, az := math.Abs(pos.X), math.Abs(pos.Z)
		if ax <= 10 && az <= 10 {
			rep.CenterZone++
		}
		if ax > 15 || az > 15 {
			rep.EdgeCount++
		}
		if ax > 20 && az > 20 {
			rep.CornerCount++
		}
		switch {
		case pos.X >= 0 && pos.Z >= 0:
			rep.Quadrants[0]++
		case pos.X < 0 && pos.Z >= 0:
			rep.Quadrants[1]++
		case pos.X < 0 && pos.Z < 0:
			rep.Quadrants[2]++
		default:
			rep.Quadrants[3]++
		}
	}
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			d := math.Hypot(all[i].X-all[j].X, all[i].Z-all[j].Z)
			if d < rep.MinSpacing {
				rep.MinSpacing = d
			}
			if d < minSpacing {
				rep.SpacingPairs++
			}
		}
	}
	if len(all) < 2 {
		rep.MinSpacing = 0
	}
	return rep
}

// Violations lists the advisory rules the plan breaks, in a stable order.
func (r SpatialReport) Violations() []string {
	var out []string
	if r.CenterZone > maxCenterZone {
		out = append(out, fmt.Sprintf("center zone holds %d buildings, want at most %d", r.CenterZone, maxCenterZone))
	}
	if r.EdgeCount < minEdgeCount {
		out = append(out, fmt.Sprintf("only %d buildings near the edge, want at least %d", r.EdgeCount, minEdgeCount))
	}
	if r.CornerCount < minCornerCount {
		out = append(out, fmt.Sprintf("only %d buildings in corners, want at least %d", r.CornerCount, minCornerCount))
	}
	for i, n := range r.Quadrants {
		if n < minQuadrant || n > maxQuadrant {
			out = append(out, fmt.Sprintf("quadrant %d holds %d buildings, want %d-%d", i+1, n, minQuadrant, maxQuadrant))
		}
	}
	if r.SpacingPairs > 0 {
		out = append(out, fmt.Sprintf("%d building pairs closer than %.0f units", r.SpacingPairs, minSpacing))
	}
	return out
}
