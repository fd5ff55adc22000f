// Package zone computes per-zone probe activity splits and mining
// yields from slider policies and static zone parameters.
package zone

import "math"

// Policy is the player-set slider state for one zone. Sliders are
// percentages in [0,100]; out-of-range values are clamped at the point
// of use.
type Policy struct {
	MiningSlider          float64
	ReplicationSlider     float64
	ConstructionSlider    float64 // legacy mirror, derived from the other two
	DysonAllocationSlider float64 // only meaningful in the Dyson zone
}

// DefaultPolicy mines everything and replicates nothing
func DefaultPolicy() Policy {
	return Policy{MiningSlider: 100, ReplicationSlider: 0}
}

func clampPct(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// Activities is the derived probe headcount per activity for one zone.
// Counts are fractional; conversions to whole probes happen only when
// probes actually move.
type Activities struct {
	Harvest   float64
	Replicate float64
	Construct float64
	Dyson     float64
}

// Total sums the split back to the zone's probe count
func (a Activities) Total() float64 {
	return a.Harvest + a.Replicate + a.Construct + a.Dyson
}

// Split recomputes the activity headcounts from the policy sliders.
// Regular zones run two sequential binary splits: the mining slider
// divides mine vs build, then the replication slider divides the build
// pool into replicate vs construct. The Dyson zone replaces the mining
// split with a Dyson-construction split and never mines.
func Split(probes float64, p Policy, isDysonZone bool) Activities {
	if probes <= 0 {
		return Activities{}
	}
	var out Activities
	buildPool := probes
	if isDysonZone {
		out.Dyson = probes * clampPct(p.DysonAllocationSlider) / 100
		buildPool = probes - out.Dyson
	} else {
		out.Harvest = probes * clampPct(p.MiningSlider) / 100
		buildPool = probes - out.Harvest
	}
	out.Replicate = buildPool * clampPct(p.ReplicationSlider) / 100
	out.Construct = buildPool - out.Replicate
	return out
}
