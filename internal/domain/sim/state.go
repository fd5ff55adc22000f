// Package sim owns the mutable simulation state and the fixed-timestep
// tick loop that advances it.
package sim

import (
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
	"github.com/brachisto/brachisto-go/internal/domain/zone"
)

// State is the root simulation state. It is exclusively owned by the
// tick loop; external readers get copies through snapshots.
type State struct {
	Tick     int64
	TimeDays float64

	// Global fungible stockpiles
	Metal float64
	Slag  float64

	// Energy bank, in watt-days
	EnergyStored float64

	DysonMass float64

	// Per-zone population and body state
	Probes         map[shared.ZoneID]int
	MetalRemaining map[shared.ZoneID]float64
	MassRemaining  map[shared.ZoneID]float64
	SlagProduced   map[shared.ZoneID]float64
	Policies       map[shared.ZoneID]zone.Policy
	MinProbes      map[shared.ZoneID]int

	// Structures built and under construction
	Structures          map[shared.ZoneID]map[shared.BuildingID]int
	EnabledConstruction map[shared.ConstructionKey]bool
	StructureProgress   map[shared.ConstructionKey]float64

	// Manual probe replication progress, a single global pool in kg
	ReplicationKg float64

	// Factory output percentage per zone and factory type, 0-100, and
	// fractional probes accrued per zone
	FactoryProduction map[shared.ZoneID]map[shared.BuildingID]float64
	FactoryProgress   map[shared.ZoneID]float64

	// Global control sliders
	EconomySlider        float64
	MineBuildSlider      float64
	BuildAllocation      float64
	DysonPowerAllocation float64
	HarvestZone          shared.ZoneID
	ActivityModifiers    map[string]float64

	// Scarcity flags from the last tick, for display
	EnergyLimited bool
	MetalLimited  bool
}

// NewState initializes a fresh game against the provider's zone set
func NewState(provider statics.Provider, initialProbes int, initialMetal float64, startZone shared.ZoneID) *State {
	s := &State{
		Metal:               initialMetal,
		Probes:              make(map[shared.ZoneID]int),
		MetalRemaining:      make(map[shared.ZoneID]float64),
		MassRemaining:       make(map[shared.ZoneID]float64),
		SlagProduced:        make(map[shared.ZoneID]float64),
		Policies:            make(map[shared.ZoneID]zone.Policy),
		MinProbes:           make(map[shared.ZoneID]int),
		Structures:          make(map[shared.ZoneID]map[shared.BuildingID]int),
		EnabledConstruction: make(map[shared.ConstructionKey]bool),
		StructureProgress:   make(map[shared.ConstructionKey]float64),
		FactoryProduction:   make(map[shared.ZoneID]map[shared.BuildingID]float64),
		FactoryProgress:     make(map[shared.ZoneID]float64),
		ActivityModifiers:   make(map[string]float64),
		MineBuildSlider:     100,
	}
	for _, z := range provider.Zones() {
		pct := z.MetalPercentage
		if pct <= 0 || pct > 1 {
			pct = statics.DefaultMetalPercentage
		}
		s.MassRemaining[z.ID] = z.TotalMassKg
		s.MetalRemaining[z.ID] = z.TotalMassKg * pct
		s.Policies[z.ID] = zone.DefaultPolicy()
	}
	if startZone != "" {
		s.Probes[startZone] = initialProbes
		s.HarvestZone = startZone
	}
	return s
}

// Depleted reports whether a zone has no extractable metal left. It is
// derived, never stored, so replenished zones clear automatically.
func (s *State) Depleted(id shared.ZoneID) bool {
	return s.MetalRemaining[id] <= 0
}

// TotalProbes counts probes settled in zones. In-transit probes are
// tracked by the transfer system.
func (s *State) TotalProbes() int {
	total := 0
	for _, n := range s.Probes {
		total += n
	}
	return total
}

// ZoneStructures returns the structure map for a zone, allocating on
// first write
func (s *State) ZoneStructures(id shared.ZoneID) map[shared.BuildingID]int {
	if s.Structures[id] == nil {
		s.Structures[id] = make(map[shared.BuildingID]int)
	}
	return s.Structures[id]
}

// Policy returns the zone's slider policy, falling back to the default
func (s *State) Policy(id shared.ZoneID) zone.Policy {
	if p, ok := s.Policies[id]; ok {
		return p
	}
	return zone.DefaultPolicy()
}
