package transfer

import (
	"math"

	"github.com/brachisto/brachisto-go/internal/domain/research"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
)

// basePair returns the reference route the 90-day constant is calibrated
// against: the Dyson construction zone and the closest ordinary zone.
// Falls back to fixed radii when the data set defines neither.
func (s *System) basePair() (rA, rB float64) {
	const fallbackDyson, fallbackPlanet = 0.29, 0.39

	rA, rB = 0, math.Inf(1)
	for _, z := range s.provider.Zones() {
		r := z.RadiusAU
		if r <= 0 {
			r = statics.DefaultZoneRadiusAU
		}
		if z.IsDysonZone {
			rA = r
		} else if r < rB {
			rB = r
		}
	}
	if rA <= 0 {
		rA = fallbackDyson
	}
	if math.IsInf(rB, 1) {
		rB = fallbackPlanet
	}
	if rA == rB {
		rB = rA * (fallbackPlanet / fallbackDyson)
	}
	return rA, rB
}

func radiusOf(z statics.ZoneDef) float64 {
	if z.RadiusAU > 0 {
		return z.RadiusAU
	}
	return statics.DefaultZoneRadiusAU
}

// pairDeltaV is the relative delta-v cost of a route, proportional to
// the square root of the orbital radius ratio between its endpoints
func pairDeltaV(rFrom, rTo float64) float64 {
	hi, lo := math.Max(rFrom, rTo), math.Min(rFrom, rTo)
	if lo <= 0 {
		return 1
	}
	return math.Sqrt(hi / lo)
}

// TransitDays computes the one-way transit time of a route. The base
// pair takes 90 days; other routes scale by distance and delta-v ratio,
// then shrink with propulsion research and transport structures in the
// source zone.
func (s *System) TransitDays(from, to shared.ZoneID, sourceStructures map[shared.BuildingID]int, now float64) float64 {
	zFrom := statics.ZoneOrDefault(s.provider, from)
	zTo := statics.ZoneOrDefault(s.provider, to)
	rFrom, rTo := radiusOf(zFrom), radiusOf(zTo)

	baseA, baseB := s.basePair()
	baseDistance := math.Abs(baseA - baseB)
	if baseDistance <= 0 {
		baseDistance = 0.1
	}
	distance := math.Abs(rFrom - rTo)
	if distance <= 0 {
		distance = baseDistance
	}

	days := shared.BaseTransferDays *
		(distance / baseDistance) *
		(pairDeltaV(rFrom, rTo) / pairDeltaV(baseA, baseB))

	// Propulsion research: specific impulse and drive efficiency add up
	days /= 1 + s.research.Bonus(research.TreePropulsionSystems, now) +
		s.research.Bonus(research.TreeLocomotionSystems, now)

	unmodified := days
	wormhole := false
	speedFactor := 1.0
	for id, count := range sourceStructures {
		if count <= 0 {
			continue
		}
		def := statics.BuildingOrDefault(s.provider, id)
		if def.Effects.WormholeNetwork {
			wormhole = true
		}
		if def.Effects.TransferTimeReduction > 0 {
			// reduction = 1-(1-base)^count per type, stacked
			// multiplicatively across types
			speedFactor *= math.Pow(1-def.Effects.TransferTimeReduction, float64(count))
		}
	}
	days *= speedFactor

	if wormhole {
		return unmodified * shared.WormholeTimeFactor
	}
	floor := unmodified * shared.TransferTimeFloor
	if days < floor {
		days = floor
	}
	return days
}
