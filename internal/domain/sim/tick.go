package sim

import (
	"math"
	"sort"

	"github.com/brachisto/brachisto-go/internal/domain/construction"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
	"github.com/brachisto/brachisto-go/internal/domain/throttle"
)

// Tick advances the simulation by deltaDays. The whole tick is computed
// synchronously; non-finite or non-positive steps are ignored so a bad
// caller can never corrupt the state.
func (e *Engine) Tick(deltaDays float64) {
	if deltaDays <= 0 || math.IsNaN(deltaDays) || math.IsInf(deltaDays, 0) {
		return
	}
	s := e.state
	now := s.TimeDays
	r := e.computeRates(now)

	// Energy pass. Stored energy is spendable this tick, so it counts
	// toward the available budget at its per-day discharge rate.
	totalAvailableW := r.productionW - r.structureDrawW + s.EnergyStored/deltaDays

	computeDemandW := 0.0
	if e.research.EligibleCount() > 0 {
		// Computer research makes the hardware draw fewer watts per FLOPS
		computeDemandW = r.theoreticalFlops * shared.ComputeDrawWPerFlops / e.research.ComputePower(now)
	}
	ef := throttle.Energy(totalAvailableW, r.miningEnergyW, r.buildEnergyW, computeDemandW)

	effectiveFlops := r.theoreticalFlops
	if computeDemandW > totalAvailableW && computeDemandW > 0 {
		effectiveFlops *= math.Max(0, totalAvailableW) / computeDemandW
	}

	// Metal pass: effective income vs throttled demand
	metalIncomePerDay := r.metalPerDay * ef.Mining
	dysonDemand := r.dysonKgPerDay * ef.Build * shared.DysonMetalPerKg
	otherDemand := (r.replicateKgPerDay+r.constructKgPerDay)*ef.Build + r.factoryMetalPerDay
	mf := throttle.Metal(metalIncomePerDay, dysonDemand, otherDemand, s.Metal)

	e.commitMining(r, ef.Mining, deltaDays)
	e.commitDyson(r, ef.Build*mf.Dyson, deltaDays, now)
	e.commitReplication(r, ef.Build*mf.Other, deltaDays)
	e.commitStructures(r, ef.Build*mf.Other, deltaDays)
	e.commitFactories(r, ef.Build*mf.Other, deltaDays)

	if e.research.EligibleCount() > 0 {
		e.research.Accrue(now, deltaDays, effectiveFlops*e.activityModifier(ModifierResearch))
	}

	endOfTick := now + deltaDays
	e.transfers.Tick(endOfTick, deltaDays, s.Probes, s.Structures)

	e.convertSlag(r, ef.Build, deltaDays)

	// Energy ledger: whatever was not consumed charges storage; deficits
	// discharge it first
	computeUsedW := math.Min(computeDemandW, math.Max(0, totalAvailableW))
	consumedW := computeUsedW + r.miningEnergyW*ef.Mining + r.buildEnergyW*ef.Build + r.structureDrawW
	netW := r.productionW - consumedW

	var deficitW float64
	s.EnergyStored, deficitW = throttle.Storage(s.EnergyStored, r.storageCapacity, netW, deltaDays)
	s.EnergyLimited = ef.Limited || deficitW > 0
	s.MetalLimited = mf.Limited

	s.TimeDays = endOfTick
	s.Tick++
}

// commitMining moves mass out of zone bodies into the global stockpiles,
// capped by what each body still holds
func (e *Engine) commitMining(r *tickRates, miningFactor, deltaDays float64) {
	s := e.state
	for _, zr := range r.zones {
		id := zr.def.ID

		// Probe extraction removes whole mass; the metal fraction goes
		// to the stockpile and the rest becomes slag
		massMined := zr.mine.MassPerDay * miningFactor * deltaDays
		if remaining := s.MassRemaining[id]; massMined > remaining {
			massMined = remaining
		}
		if massMined > 0 && zr.mine.MassPerDay > 0 {
			metal := massMined * (zr.mine.MetalPerDay / zr.mine.MassPerDay)
			if cap := s.MetalRemaining[id]; metal > cap {
				metal = cap
			}
			slag := massMined - metal

			s.MassRemaining[id] -= massMined
			s.MetalRemaining[id] -= metal
			s.Metal += metal
			s.Slag += slag
			s.SlagProduced[id] += slag
		}

		// Structure extraction is pure metal, also zone-capped
		structMetal := zr.structureMetal * miningFactor * deltaDays
		if cap := s.MetalRemaining[id]; structMetal > cap {
			structMetal = cap
		}
		if structMetal > 0 {
			s.MetalRemaining[id] -= structMetal
			s.MassRemaining[id] = math.Max(0, s.MassRemaining[id]-structMetal)
			s.Metal += structMetal
		}
	}
}

func (e *Engine) commitDyson(r *tickRates, factor, deltaDays, now float64) {
	s := e.state
	res := e.dyson.Advance(s.DysonMass, r.dysonKgPerDay*factor, s.Metal, deltaDays, now)
	s.DysonMass += res.MassAdded
	s.Metal -= res.MetalConsumed
}

// commitReplication feeds the global assembly pool and converts whole
// probes, distributing them weighted-randomly across replicating zones
func (e *Engine) commitReplication(r *tickRates, factor, deltaDays float64) {
	s := e.state
	wantKg := r.replicateKgPerDay * factor * deltaDays
	if wantKg <= 0 {
		return
	}
	consumed := math.Min(wantKg, s.Metal)
	if consumed <= 0 {
		return
	}
	s.Metal -= consumed

	cost := e.builder.ProbeCost(e.probeDef(), r.factoryRuns)
	var completed int
	s.ReplicationKg, completed = construction.Advance(s.ReplicationKg, consumed, cost)
	if completed == 0 {
		return
	}

	weights := make(map[shared.ZoneID]float64)
	for _, zr := range r.zones {
		if zr.activities.Replicate > 0 {
			weights[zr.def.ID] = zr.activities.Replicate
		}
	}
	for id, n := range e.builder.Distribute(weights, completed) {
		s.Probes[id] += n
	}
}

// commitStructures splits each zone's construction budget equally among
// its enabled build sites. Sites referencing unknown or zero-cost
// buildings are garbage-collected.
func (e *Engine) commitStructures(r *tickRates, factor, deltaDays float64) {
	s := e.state

	byZone := make(map[shared.ZoneID][]shared.ConstructionKey)
	for key, enabled := range s.EnabledConstruction {
		if !enabled {
			continue
		}
		def := statics.BuildingOrDefault(e.provider, key.Building)
		if def.CostMetal <= 0 {
			delete(s.EnabledConstruction, key)
			delete(s.StructureProgress, key)
			continue
		}
		byZone[key.Zone] = append(byZone[key.Zone], key)
	}

	zoneIDs := make([]shared.ZoneID, 0, len(byZone))
	for id := range byZone {
		zoneIDs = append(zoneIDs, id)
	}
	sort.Slice(zoneIDs, func(i, j int) bool { return zoneIDs[i] < zoneIDs[j] })

	for _, zoneID := range zoneIDs {
		keys := byZone[zoneID]
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

		zr := r.zoneIndex[zoneID]
		if zr == nil {
			continue
		}
		budget := zr.constructKg * factor * deltaDays
		if budget <= 0 {
			continue
		}
		share := budget / float64(len(keys))

		for _, key := range keys {
			spend := math.Min(share, s.Metal)
			if spend <= 0 {
				break
			}
			s.Metal -= spend
			def := statics.BuildingOrDefault(e.provider, key.Building)
			progress, completed := construction.Advance(s.StructureProgress[key], spend, def.CostMetal)
			s.StructureProgress[key] = progress
			if completed > 0 {
				e.state.ZoneStructures(zoneID)[key.Building] += completed
			}
		}
	}
}

// commitFactories accrues fractional probes per zone and completes them
// when the metal is there
func (e *Engine) commitFactories(r *tickRates, factor, deltaDays float64) {
	s := e.state
	probeCost := e.builder.ProbeCost(e.probeDef(), r.factoryRuns)

	for _, run := range r.factoryRuns {
		s.FactoryProgress[run.Zone] += run.ProbesPerDay * factor * deltaDays
	}

	zoneIDs := make([]shared.ZoneID, 0, len(s.FactoryProgress))
	for id := range s.FactoryProgress {
		zoneIDs = append(zoneIDs, id)
	}
	sort.Slice(zoneIDs, func(i, j int) bool { return zoneIDs[i] < zoneIDs[j] })

	for _, id := range zoneIDs {
		whole := int(math.Floor(s.FactoryProgress[id]))
		if whole <= 0 {
			continue
		}
		if probeCost > 0 {
			affordable := int(math.Floor(s.Metal / probeCost))
			if whole > affordable {
				whole = affordable
			}
		}
		if whole <= 0 {
			continue
		}
		s.FactoryProgress[id] -= float64(whole)
		s.Metal -= float64(whole) * probeCost
		s.Probes[id] += whole
	}
}

// convertSlag runs the slag converter structures against the global
// slag pool
func (e *Engine) convertSlag(r *tickRates, buildFactor, deltaDays float64) {
	s := e.state
	if r.slagConvertKgPerDay <= 0 || s.Slag <= 0 {
		return
	}
	converted := math.Min(r.slagConvertKgPerDay*buildFactor*deltaDays, s.Slag)
	if converted <= 0 {
		return
	}
	s.Slag -= converted
	s.Metal += converted * r.slagEfficiency
}
