package sim

import (
	"sort"

	"github.com/brachisto/brachisto-go/internal/domain/construction"
	"github.com/brachisto/brachisto-go/internal/domain/research"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
	"github.com/brachisto/brachisto-go/internal/domain/zone"
)

// Names accepted by set_activity_modifier
const (
	ModifierMining      = "mining"
	ModifierReplication = "replication"
	ModifierConstruct   = "construction"
	ModifierDyson       = "dyson"
	ModifierResearch    = "research"
)

// zoneRates is the nominal (pre-throttle) production profile of one
// zone for the current tick
type zoneRates struct {
	def            statics.ZoneDef
	activities     zone.Activities
	mine           zone.MineRate
	structureMetal float64 // kg/day from mining structures
	replicateKg    float64 // kg/day of probe assembly
	constructKg    float64 // kg/day of structure assembly
	dysonKg        float64 // kg/day of swarm assembly
}

// tickRates aggregates everything the throttle pass needs
type tickRates struct {
	zones     []*zoneRates
	zoneIndex map[shared.ZoneID]*zoneRates

	metalPerDay   float64 // probes + structures, nominal
	miningEnergyW float64

	replicateKgPerDay float64
	constructKgPerDay float64
	dysonKgPerDay     float64
	buildEnergyW      float64

	factoryRuns        []construction.FactoryRun
	factoryMetalPerDay float64

	slagConvertKgPerDay float64
	slagConvertEnergyW  float64
	slagEfficiency      float64

	productionW     float64
	structureDrawW  float64
	storageCapacity float64 // watt-days

	theoreticalFlops float64
	economyFromDyson float64
}

// computeRates derives the nominal rate profile from current state.
// It never mutates state.
func (e *Engine) computeRates(now float64) *tickRates {
	s := e.state
	probe := e.probeDef()
	r := &tickRates{zoneIndex: make(map[shared.ZoneID]*zoneRates)}

	zones := append([]statics.ZoneDef(nil), e.provider.Zones()...)
	sort.Slice(zones, func(i, j int) bool { return zones[i].ID < zones[j].ID })

	miningMod := e.activityModifier(ModifierMining)
	replicationMod := e.activityModifier(ModifierReplication)
	constructMod := e.activityModifier(ModifierConstruct)
	dysonMod := e.activityModifier(ModifierDyson)

	dysonSkill := e.research.Skill(research.TreeDysonConstruction, now)

	for _, def := range zones {
		probes := float64(s.Probes[def.ID])
		zr := &zoneRates{
			def:        def,
			activities: zone.Split(probes, s.Policy(def.ID), def.IsDysonZone),
		}
		penalty := e.economy.CountScalingPenalty(probes, now)

		if !def.IsDysonZone && !s.Depleted(def.ID) {
			zr.mine = e.economy.Mine(def, probe, zr.activities.Harvest, probes, now)
			zr.mine.MetalPerDay *= miningMod
			zr.mine.MassPerDay *= miningMod
			zr.mine.SlagPerDay *= miningMod
		}
		zr.structureMetal = e.economy.StructureMetalPerDay(s.Structures[def.ID], now)

		zr.replicateKg = e.builder.BuildRate(zr.activities.Replicate, now) * penalty * replicationMod
		zr.constructKg = e.builder.BuildRate(zr.activities.Construct, now) * penalty * constructMod
		zr.dysonKg = e.builder.BuildRate(zr.activities.Dyson, now) * penalty * dysonSkill * dysonMod

		r.zones = append(r.zones, zr)
		r.zoneIndex[def.ID] = zr

		r.metalPerDay += zr.mine.MetalPerDay + zr.structureMetal
		r.miningEnergyW += zone.HarvestEnergyDemandW(zr.mine.MassPerDay, def.DeltaVPenalty)
		r.replicateKgPerDay += zr.replicateKg
		r.constructKgPerDay += zr.constructKg
		r.dysonKgPerDay += zr.dysonKg
	}

	// Fleet-wide replication slowdown applies to probe assembly only
	r.replicateKgPerDay *= zone.ReplicationPenalty(float64(s.TotalProbes()))

	// Idle draw is a fixed per-probe cost, never throttled
	r.structureDrawW += probe.IdleDrawW * float64(s.TotalProbes())

	r.factoryRuns = e.builder.FactoryRuns(s.Structures, s.FactoryProduction, now)
	probeCost := e.builder.ProbeCost(probe, r.factoryRuns)
	for _, run := range r.factoryRuns {
		cost := run.MetalPerProbe
		if cost <= 0 {
			cost = probeCost
		}
		r.factoryMetalPerDay += run.ProbesPerDay * cost
	}

	e.accumulateStructureEffects(r, now)

	buildKg := r.replicateKgPerDay + r.constructKgPerDay + r.dysonKgPerDay
	r.buildEnergyW = construction.BuildEnergyDemandW(buildKg) + r.slagConvertEnergyW

	// Dyson output split feeds both sides of the energy economy
	split := e.dyson.SplitPower(e.dyson.OutputW(s.DysonMass, now), s.DysonPowerAllocation)
	r.economyFromDyson = split.EconomyW
	r.theoreticalFlops += split.ComputeFlops

	r.productionW += shared.ConstantSupplyW + split.EconomyW
	return r
}

// accumulateStructureEffects folds per-structure contributions into the
// tick totals: power output and draw, compute, storage capacity and
// slag conversion. Solar collectors scale with the inverse square of
// their zone's orbital radius.
func (e *Engine) accumulateStructureEffects(r *tickRates, now float64) {
	s := e.state
	storageSkill := e.research.Skill(research.TreeEnergyStorage, now)
	r.slagEfficiency = e.research.RecyclingEfficiency(now)

	for _, zr := range r.zones {
		radius := zr.def.RadiusAU
		if radius <= 0 {
			radius = statics.DefaultZoneRadiusAU
		}
		solarScale := 1 / (radius * radius)

		ids := make([]shared.BuildingID, 0, len(s.Structures[zr.def.ID]))
		for id := range s.Structures[zr.def.ID] {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, id := range ids {
			count := float64(s.Structures[zr.def.ID][id])
			if count <= 0 {
				continue
			}
			def := statics.BuildingOrDefault(e.provider, id)
			eff := def.Effects

			output := eff.PowerOutputW
			if eff.UsesSolar {
				output *= solarScale
			}
			r.productionW += output * count
			r.structureDrawW += eff.PowerConsumptionW * count
			r.storageCapacity += eff.EnergyStorageWattDays * count * storageSkill
			r.theoreticalFlops += eff.ComputeFlops * count

			if eff.SlagConversionKgPerDay > 0 {
				r.slagConvertKgPerDay += eff.SlagConversionKgPerDay * count
				r.slagConvertEnergyW += eff.SlagConversionKgPerDay * count * eff.SlagConversionEnergyPerKg
				if eff.SlagConversionEfficiency > 0 {
					r.slagEfficiency = eff.SlagConversionEfficiency
				}
			}
		}
	}
}
