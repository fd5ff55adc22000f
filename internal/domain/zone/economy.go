package zone

import (
	"math"

	"github.com/brachisto/brachisto-go/internal/domain/research"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
)

// Probe count scaling: each doubling of a zone's probe count costs some
// efficiency, with the per-doubling penalty shrinking as compute skill
// grows toward the threshold.
const (
	basePenaltyPerDoubling = 0.40
	minPenaltyPerDoubling  = 0.01
	computeSkillThreshold  = 3.18
)

// Economy derives per-zone production rates from probe headcounts,
// policies and research state. It is a pure calculator; all mutation
// stays with the tick loop.
type Economy struct {
	provider statics.Provider
	research *research.Model
}

func NewEconomy(provider statics.Provider, research *research.Model) *Economy {
	return &Economy{provider: provider, research: research}
}

// CountScalingPenalty returns the coordination efficiency of a zone
// holding the given probe count, in (0,1]
func (e *Economy) CountScalingPenalty(probeCount, now float64) float64 {
	if probeCount <= 1 {
		return 1.0
	}
	compute := e.research.ComputePower(now)
	normalized := math.Min(1, math.Max(0, (compute-1)/(computeSkillThreshold-1)))
	perDoubling := basePenaltyPerDoubling - (basePenaltyPerDoubling-minPenaltyPerDoubling)*normalized

	efficiency := math.Pow(1-perDoubling, math.Log2(probeCount))
	return math.Max(shared.CountPenaltyFloor, efficiency)
}

// ReplicationPenalty throttles fleet growth once the global population
// passes the soft cap: output halves per order of magnitude above it,
// down to a hard floor
func ReplicationPenalty(totalProbes float64) float64 {
	if totalProbes <= shared.ReplicationPenaltyProbes {
		return 1.0
	}
	ordersAbove := math.Log10(totalProbes / shared.ReplicationPenaltyProbes)
	return math.Max(shared.ReplicationPenaltyFloor, math.Pow(0.5, ordersAbove))
}

// Dexterity is the aggregate manipulation capacity of a probe group in
// kg/day equivalents, after the count scaling penalty
func (e *Economy) Dexterity(probe statics.ProbeDef, probes, zoneProbes, now float64) float64 {
	if probes <= 0 {
		return 0
	}
	return probes * probe.BaseDexterity * e.research.BuildSkill(now) * e.CountScalingPenalty(zoneProbes, now)
}

// MineRate is the nominal extraction profile of a zone for one day,
// before energy throttling and before capping against remaining stock
type MineRate struct {
	MetalPerDay float64 // kg of metal extracted
	MassPerDay  float64 // total kg removed from the body
	SlagPerDay  float64 // non-metal complement of the mined mass
}

// Mine computes the nominal extraction rate for harvestProbes working a
// zone. Dyson zones never mine. Structure production is handled by the
// caller since it does not scale with probes.
func (e *Economy) Mine(z statics.ZoneDef, probe statics.ProbeDef, harvestProbes, zoneProbes, now float64) MineRate {
	if z.IsDysonZone || harvestProbes <= 0 {
		return MineRate{}
	}
	zoneMult := z.MiningRateMultiplier
	if zoneMult <= 0 {
		zoneMult = statics.DefaultMiningMultiplier
	}
	harvestMult := probe.HarvestMultiplier
	if harvestMult <= 0 {
		harvestMult = statics.DefaultProbeHarvestMult
	}

	perProbe := shared.ProbeHarvestRateKgPerDay * probe.BaseDexterity * harvestMult * zoneMult * e.research.MiningSkill(now)
	massPerDay := perProbe * harvestProbes * e.CountScalingPenalty(zoneProbes, now)

	pct := z.MetalPercentage
	if pct <= 0 || pct > 1 {
		pct = statics.DefaultMetalPercentage
	}
	metal := massPerDay * pct
	return MineRate{
		MetalPerDay: metal,
		MassPerDay:  massPerDay,
		SlagPerDay:  massPerDay - metal,
	}
}

// StructureMetalPerDay sums the flat metal production of a zone's
// mining structures, with each structure's efficiency bonuses applied
func (e *Economy) StructureMetalPerDay(structures map[shared.BuildingID]int, now float64) float64 {
	total := 0.0
	for id, count := range structures {
		if count <= 0 {
			continue
		}
		def := statics.BuildingOrDefault(e.provider, id)
		if def.Effects.MetalProductionPerDay <= 0 {
			continue
		}
		perStructure := def.Effects.MetalProductionPerDay * (1 + def.Effects.MetalEfficiencyBonus)
		total += perStructure * float64(count)
	}
	return total * e.research.Skill(research.TreeProductionEfficiency, now)
}

// HarvestEnergyDemandW is the power cost of moving massPerDay kg/day of
// material out of a gravity well. Deeper wells (higher delta-v penalty)
// cost quadratically more.
func HarvestEnergyDemandW(massPerDay, deltaVPenalty float64) float64 {
	if massPerDay <= 0 {
		return 0
	}
	scale := 1 + deltaVPenalty
	return massPerDay * shared.HarvestEnergyPerKgDayW * scale * scale
}
