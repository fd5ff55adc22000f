package sim

import (
	"math"
	"sort"

	"github.com/brachisto/brachisto-go/internal/domain/research"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/throttle"
	"github.com/brachisto/brachisto-go/internal/domain/transfer"
	"github.com/brachisto/brachisto-go/internal/domain/zone"
)

// SnapshotVersion is bumped whenever the save format changes shape
const SnapshotVersion = 2

// PolicySnapshot mirrors one zone's sliders
type PolicySnapshot struct {
	MiningSlider          float64 `json:"mining_slider"`
	ReplicationSlider     float64 `json:"replication_slider"`
	ConstructionSlider    float64 `json:"construction_slider"`
	DysonAllocationSlider float64 `json:"dyson_allocation_slider"`
}

// AllocationSnapshot is the derived per-zone activity headcount
type AllocationSnapshot struct {
	Harvest   float64 `json:"harvest"`
	Replicate float64 `json:"replicate"`
	Construct float64 `json:"construct"`
	Dyson     float64 `json:"dyson"`
}

// ResearchSnapshot mirrors one tier's progress
type ResearchSnapshot struct {
	TranchesCompleted int      `json:"tranches_completed"`
	MaxTranches       int      `json:"max_tranches"`
	Enabled           bool     `json:"enabled"`
	StartTime         *float64 `json:"start_time"`
	CompletionTime    *float64 `json:"completion_time"`
	Fractional        float64  `json:"fractional_progress"`
}

// BatchSnapshot mirrors one in-flight probe batch
type BatchSnapshot struct {
	Count       int     `json:"count"`
	Destination string  `json:"destination"`
	Departure   float64 `json:"departure_time"`
	Arrival     float64 `json:"arrival_time"`
}

// TransferSnapshot mirrors one configured transfer
type TransferSnapshot struct {
	ID             string          `json:"id"`
	From           string          `json:"from"`
	To             string          `json:"to"`
	Kind           string          `json:"type"`
	Paused         bool            `json:"paused"`
	RatePercentage float64         `json:"rate_percentage,omitempty"`
	Fractional     float64         `json:"fractional,omitempty"`
	Created        float64         `json:"created"`
	InTransit      []BatchSnapshot `json:"in_transit"`
}

// RatesSnapshot carries derived display rates; recomputed on demand,
// never stored back
type RatesSnapshot struct {
	MetalPerDay         float64 `json:"metal_per_day"`
	EnergyProductionW   float64 `json:"energy_production_w"`
	EnergyConsumptionW  float64 `json:"energy_consumption_w"`
	NetEnergyW          float64 `json:"net_energy_w"`
	StorageCapacity     float64 `json:"energy_storage_capacity"`
	ComputeFlops        float64 `json:"compute_flops"`
	DysonKgPerDay       float64 `json:"dyson_kg_per_day"`
	ReplicationKgPerDay float64 `json:"replication_kg_per_day"`
	MiningThrottle      float64 `json:"mining_throttle"`
	BuildThrottle       float64 `json:"build_throttle"`
	IdleProbes          float64 `json:"idle_probes"`
}

// Snapshot is the flat, fully JSON-serializable view of a simulation
type Snapshot struct {
	Version  int     `json:"version"`
	Tick     int64   `json:"tick"`
	TimeDays float64 `json:"time_days"`

	Metal        float64 `json:"metal"`
	Slag         float64 `json:"slag"`
	EnergyStored float64 `json:"energy_stored"`

	DysonMass       float64 `json:"dyson_sphere_mass"`
	DysonTargetMass float64 `json:"dyson_sphere_target_mass"`

	Probes         map[string]int     `json:"probes_by_zone"`
	MetalRemaining map[string]float64 `json:"zone_metal_remaining"`
	MassRemaining  map[string]float64 `json:"zone_mass_remaining"`
	SlagProduced   map[string]float64 `json:"zone_slag_produced"`
	Depleted       map[string]bool    `json:"zone_depleted"`

	Policies    map[string]PolicySnapshot     `json:"zone_policies"`
	MinProbes   map[string]int                `json:"zone_min_probes"`
	Allocations map[string]AllocationSnapshot `json:"zone_allocations"`

	// Legacy global allocation mirror: per-activity totals
	GlobalAllocations map[string]float64 `json:"probe_allocations"`

	Structures          map[string]map[string]int     `json:"structures_by_zone"`
	EnabledConstruction []string                      `json:"enabled_construction"`
	StructureProgress   map[string]float64            `json:"structure_construction_progress"`
	ReplicationKg       float64                       `json:"replication_progress_kg"`
	FactoryProduction   map[string]map[string]float64 `json:"factory_production"`
	FactoryProgress     map[string]float64            `json:"factory_progress"`

	Research  map[string]map[string]ResearchSnapshot `json:"research"`
	Transfers []TransferSnapshot                     `json:"transfers"`

	EconomySlider        float64            `json:"economy_slider"`
	MineBuildSlider      float64            `json:"mine_build_slider"`
	BuildAllocation      float64            `json:"build_allocation"`
	DysonPowerAllocation float64            `json:"dyson_power_allocation"`
	HarvestZone          string             `json:"harvest_zone"`
	ActivityModifiers    map[string]float64 `json:"activity_modifiers,omitempty"`

	EnergyLimited bool `json:"is_energy_limited"`
	MetalLimited  bool `json:"is_metal_limited"`

	Rates RatesSnapshot `json:"rates"`

	// Pre-zone save formats: global probe and structure counts
	LegacyProbes     map[string]int `json:"probes,omitempty"`
	LegacyStructures map[string]int `json:"structures,omitempty"`
}

// Snapshot renders the full state plus derived display rates. It has no
// side effects and never exposes internal maps.
func (e *Engine) Snapshot() *Snapshot {
	s := e.state
	now := s.TimeDays
	r := e.computeRates(now)

	snap := &Snapshot{
		Version:              SnapshotVersion,
		Tick:                 s.Tick,
		TimeDays:             s.TimeDays,
		Metal:                s.Metal,
		Slag:                 s.Slag,
		EnergyStored:         s.EnergyStored,
		DysonMass:            s.DysonMass,
		DysonTargetMass:      e.dyson.TargetMass(now),
		Probes:               make(map[string]int),
		MetalRemaining:       make(map[string]float64),
		MassRemaining:        make(map[string]float64),
		SlagProduced:         make(map[string]float64),
		Depleted:             make(map[string]bool),
		Policies:             make(map[string]PolicySnapshot),
		MinProbes:            make(map[string]int),
		Allocations:          make(map[string]AllocationSnapshot),
		GlobalAllocations:    make(map[string]float64),
		Structures:           make(map[string]map[string]int),
		StructureProgress:    make(map[string]float64),
		ReplicationKg:        s.ReplicationKg,
		FactoryProduction:    make(map[string]map[string]float64),
		FactoryProgress:      make(map[string]float64),
		Research:             make(map[string]map[string]ResearchSnapshot),
		EconomySlider:        s.EconomySlider,
		MineBuildSlider:      s.MineBuildSlider,
		BuildAllocation:      s.BuildAllocation,
		DysonPowerAllocation: s.DysonPowerAllocation,
		HarvestZone:          string(s.HarvestZone),
		EnergyLimited:        s.EnergyLimited,
		MetalLimited:         s.MetalLimited,
	}

	for id, n := range s.Probes {
		snap.Probes[string(id)] = n
	}
	for id, v := range s.MetalRemaining {
		snap.MetalRemaining[string(id)] = v
	}
	for id, v := range s.MassRemaining {
		snap.MassRemaining[string(id)] = v
	}
	for id, v := range s.SlagProduced {
		snap.SlagProduced[string(id)] = v
	}
	for _, z := range e.provider.Zones() {
		snap.Depleted[string(z.ID)] = s.Depleted(z.ID)
	}
	for id, p := range s.Policies {
		snap.Policies[string(id)] = PolicySnapshot{
			MiningSlider:          p.MiningSlider,
			ReplicationSlider:     p.ReplicationSlider,
			ConstructionSlider:    p.ConstructionSlider,
			DysonAllocationSlider: p.DysonAllocationSlider,
		}
	}
	for id, n := range s.MinProbes {
		snap.MinProbes[string(id)] = n
	}
	for _, zr := range r.zones {
		a := zr.activities
		snap.Allocations[string(zr.def.ID)] = AllocationSnapshot{
			Harvest:   a.Harvest,
			Replicate: a.Replicate,
			Construct: a.Construct,
			Dyson:     a.Dyson,
		}
		snap.GlobalAllocations["harvest"] += a.Harvest
		snap.GlobalAllocations["replicate"] += a.Replicate
		snap.GlobalAllocations["construct"] += a.Construct
		snap.GlobalAllocations["dyson"] += a.Dyson
	}
	for id, byBuilding := range s.Structures {
		out := make(map[string]int, len(byBuilding))
		for b, n := range byBuilding {
			out[string(b)] = n
		}
		snap.Structures[string(id)] = out
	}
	for key, enabled := range s.EnabledConstruction {
		if enabled {
			snap.EnabledConstruction = append(snap.EnabledConstruction, key.String())
		}
	}
	sort.Strings(snap.EnabledConstruction)
	for key, v := range s.StructureProgress {
		snap.StructureProgress[key.String()] = v
	}
	for id, byBuilding := range s.FactoryProduction {
		out := make(map[string]float64, len(byBuilding))
		for b, v := range byBuilding {
			out[string(b)] = v
		}
		snap.FactoryProduction[string(id)] = out
	}
	for id, v := range s.FactoryProgress {
		snap.FactoryProgress[string(id)] = v
	}
	if len(s.ActivityModifiers) > 0 {
		snap.ActivityModifiers = make(map[string]float64, len(s.ActivityModifiers))
		for k, v := range s.ActivityModifiers {
			snap.ActivityModifiers[k] = v
		}
	}

	for treeID, byTier := range e.research.Snapshot() {
		out := make(map[string]ResearchSnapshot, len(byTier))
		for tierID, p := range byTier {
			out[string(tierID)] = ResearchSnapshot{
				TranchesCompleted: p.TranchesCompleted,
				MaxTranches:       p.MaxTranches,
				Enabled:           p.Enabled,
				StartTime:         p.StartTime,
				CompletionTime:    p.CompletionTime,
				Fractional:        p.Fractional,
			}
		}
		snap.Research[string(treeID)] = out
	}

	for _, t := range e.transfers.Snapshot() {
		ts := TransferSnapshot{
			ID:             t.ID,
			From:           string(t.From),
			To:             string(t.To),
			Kind:           string(t.Kind),
			Paused:         t.Paused,
			RatePercentage: t.RatePercentage,
			Fractional:     t.Fractional,
			Created:        t.Created,
		}
		for _, b := range t.InTransit {
			ts.InTransit = append(ts.InTransit, BatchSnapshot{
				Count:       b.Count,
				Destination: string(b.Destination),
				Departure:   b.Departure,
				Arrival:     b.Arrival,
			})
		}
		snap.Transfers = append(snap.Transfers, ts)
	}

	snap.Rates = e.displayRates(r, now)
	return snap
}

// displayRates reruns the throttle pass without mutating anything so
// the UI sees the effective rates a nominal one-day step would apply.
// The step length is the caller's choice at Tick time, so the stored
// bank counts at its one-day discharge rate here; a shorter real step
// discharges faster and can throttle less than shown.
func (e *Engine) displayRates(r *tickRates, now float64) RatesSnapshot {
	s := e.state
	totalAvailableW := r.productionW - r.structureDrawW + s.EnergyStored

	computeDemandW := 0.0
	if e.research.EligibleCount() > 0 {
		computeDemandW = r.theoreticalFlops * shared.ComputeDrawWPerFlops / e.research.ComputePower(now)
	}
	ef := throttle.Energy(totalAvailableW, r.miningEnergyW, r.buildEnergyW, computeDemandW)

	metalIncome := r.metalPerDay * ef.Mining
	dysonDemand := r.dysonKgPerDay * ef.Build * shared.DysonMetalPerKg
	otherDemand := (r.replicateKgPerDay+r.constructKgPerDay)*ef.Build + r.factoryMetalPerDay
	mf := throttle.Metal(metalIncome, dysonDemand, otherDemand, s.Metal)

	consumedW := math.Min(computeDemandW, math.Max(0, totalAvailableW)) +
		r.miningEnergyW*ef.Mining + r.buildEnergyW*ef.Build + r.structureDrawW

	idle := 0.0
	for _, zr := range r.zones {
		idle += zr.activities.Harvest * (1 - ef.Mining)
		buildProbes := zr.activities.Replicate + zr.activities.Construct + zr.activities.Dyson
		idle += buildProbes * (1 - ef.Build*mf.Other)
	}

	return RatesSnapshot{
		MetalPerDay:         metalIncome - dysonDemand*mf.Dyson - otherDemand*mf.Other,
		EnergyProductionW:   r.productionW,
		EnergyConsumptionW:  consumedW,
		NetEnergyW:          r.productionW - consumedW,
		StorageCapacity:     r.storageCapacity,
		ComputeFlops:        r.theoreticalFlops,
		DysonKgPerDay:       r.dysonKgPerDay * ef.Build * mf.Dyson,
		ReplicationKgPerDay: r.replicateKgPerDay * ef.Build * mf.Other,
		MiningThrottle:      ef.Mining,
		BuildThrottle:       ef.Build,
		IdleProbes:          idle,
	}
}

// Restore loads a snapshot into the engine, tolerating missing fields
// and migrating pre-zone save formats
func (e *Engine) Restore(snap *Snapshot) {
	if snap == nil {
		return
	}
	s := e.state
	s.Tick = snap.Tick
	s.TimeDays = math.Max(0, snap.TimeDays)
	s.Metal = math.Max(0, snap.Metal)
	s.Slag = math.Max(0, snap.Slag)
	s.EnergyStored = math.Max(0, snap.EnergyStored)
	s.DysonMass = math.Max(0, snap.DysonMass)
	s.EconomySlider = clampPct(snap.EconomySlider)
	s.MineBuildSlider = clampPct(snap.MineBuildSlider)
	s.BuildAllocation = clampPct(snap.BuildAllocation)
	s.DysonPowerAllocation = clampPct(snap.DysonPowerAllocation)
	s.EnergyLimited = snap.EnergyLimited
	s.MetalLimited = snap.MetalLimited
	s.ReplicationKg = math.Max(0, snap.ReplicationKg)

	if snap.HarvestZone != "" {
		s.HarvestZone = shared.ZoneID(snap.HarvestZone)
	}

	for id, n := range snap.Probes {
		if n >= 0 {
			s.Probes[shared.ZoneID(id)] = n
		}
	}
	// Legacy saves kept a single global probe pool keyed by probe type
	if len(snap.Probes) == 0 && len(snap.LegacyProbes) > 0 {
		total := 0
		for _, n := range snap.LegacyProbes {
			if n > 0 {
				total += n
			}
		}
		s.Probes[s.HarvestZone] += total
	}

	for id, v := range snap.MetalRemaining {
		s.MetalRemaining[shared.ZoneID(id)] = math.Max(0, v)
	}
	for id, v := range snap.MassRemaining {
		s.MassRemaining[shared.ZoneID(id)] = math.Max(0, v)
	}
	for id, v := range snap.SlagProduced {
		s.SlagProduced[shared.ZoneID(id)] = math.Max(0, v)
	}
	for id, p := range snap.Policies {
		s.Policies[shared.ZoneID(id)] = zonePolicyFromSnapshot(p)
	}
	for id, n := range snap.MinProbes {
		if n >= 0 {
			s.MinProbes[shared.ZoneID(id)] = n
		}
	}

	for id, byBuilding := range snap.Structures {
		target := s.ZoneStructures(shared.ZoneID(id))
		for b, n := range byBuilding {
			if n > 0 {
				target[shared.BuildingID(b)] = n
			}
		}
	}
	// Legacy saves kept structures in one global map; park them in the
	// harvest zone
	if len(snap.Structures) == 0 && len(snap.LegacyStructures) > 0 {
		target := s.ZoneStructures(s.HarvestZone)
		for b, n := range snap.LegacyStructures {
			if n > 0 {
				target[shared.BuildingID(b)] = n
			}
		}
	}

	for _, keyStr := range snap.EnabledConstruction {
		if key, err := shared.ParseConstructionKey(keyStr); err == nil {
			s.EnabledConstruction[key] = true
		}
	}
	for keyStr, v := range snap.StructureProgress {
		if key, err := shared.ParseConstructionKey(keyStr); err == nil && v >= 0 {
			s.StructureProgress[key] = v
		}
	}
	for id, byBuilding := range snap.FactoryProduction {
		target := make(map[shared.BuildingID]float64, len(byBuilding))
		for b, v := range byBuilding {
			target[shared.BuildingID(b)] = clampPct(v)
		}
		s.FactoryProduction[shared.ZoneID(id)] = target
	}
	for id, v := range snap.FactoryProgress {
		if v >= 0 {
			s.FactoryProgress[shared.ZoneID(id)] = v
		}
	}
	for k, v := range snap.ActivityModifiers {
		if v >= 0 {
			s.ActivityModifiers[k] = v
		}
	}

	for treeID, byTier := range snap.Research {
		for tierID, rs := range byTier {
			e.research.Restore(shared.TreeID(treeID), shared.TierID(tierID), research.Progress{
				TranchesCompleted: rs.TranchesCompleted,
				MaxTranches:       rs.MaxTranches,
				Enabled:           rs.Enabled,
				StartTime:         rs.StartTime,
				CompletionTime:    rs.CompletionTime,
				Fractional:        rs.Fractional,
			})
		}
	}

	transfers := make([]transfer.Transfer, 0, len(snap.Transfers))
	for _, ts := range snap.Transfers {
		t := transfer.Transfer{
			ID:             ts.ID,
			From:           shared.ZoneID(ts.From),
			To:             shared.ZoneID(ts.To),
			Kind:           transfer.Kind(ts.Kind),
			Paused:         ts.Paused,
			RatePercentage: ts.RatePercentage,
			Fractional:     ts.Fractional,
			Created:        ts.Created,
		}
		for _, b := range ts.InTransit {
			t.InTransit = append(t.InTransit, transfer.Batch{
				Count:       b.Count,
				Destination: shared.ZoneID(b.Destination),
				Departure:   b.Departure,
				Arrival:     b.Arrival,
			})
		}
		transfers = append(transfers, t)
	}
	e.transfers.Restore(transfers)
}

func zonePolicyFromSnapshot(p PolicySnapshot) zone.Policy {
	return zone.Policy{
		MiningSlider:          clampPct(p.MiningSlider),
		ReplicationSlider:     clampPct(p.ReplicationSlider),
		ConstructionSlider:    clampPct(p.ConstructionSlider),
		DysonAllocationSlider: clampPct(p.DysonAllocationSlider),
	}
}
