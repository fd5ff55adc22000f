package sim

import (
	"math"

	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
	"github.com/brachisto/brachisto-go/internal/domain/transfer"
	"github.com/brachisto/brachisto-go/internal/domain/zone"
)

func clampPct(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// hasStructure reports whether at least one structure of the given type
// exists in any zone; used for prerequisite checks
func (e *Engine) hasStructure(id shared.BuildingID) bool {
	for _, byBuilding := range e.state.Structures {
		if byBuilding[id] > 0 {
			return true
		}
	}
	return false
}

// PurchaseStructure toggles progressive construction of a building in a
// zone. Passing nil for enabled flips the current state. Mining
// buildings can never target the Dyson zone.
func (e *Engine) PurchaseStructure(zoneID shared.ZoneID, buildingID shared.BuildingID, enabled *bool) (bool, error) {
	def, ok := e.provider.Building(buildingID)
	if !ok {
		return false, shared.NewInvalidBuildingError(buildingID)
	}
	zdef, ok := e.provider.Zone(zoneID)
	if !ok {
		return false, shared.NewInvalidZoneError(zoneID)
	}
	if zdef.IsDysonZone {
		if def.Category == "mining" {
			return false, shared.NewBuildingNotAllowedError(buildingID, zoneID)
		}
	} else if !def.AllowedIn(zoneID) {
		return false, shared.NewBuildingNotAllowedError(buildingID, zoneID)
	}
	for _, prereq := range def.Prerequisites {
		if !e.hasStructure(prereq) {
			return false, shared.NewDomainError("prerequisite not met: " + string(prereq))
		}
	}

	key := shared.NewConstructionKey(zoneID, buildingID)
	next := !e.state.EnabledConstruction[key]
	if enabled != nil {
		next = *enabled
	}
	if next {
		e.state.EnabledConstruction[key] = true
		if _, ok := e.state.StructureProgress[key]; !ok {
			e.state.StructureProgress[key] = 0
		}
	} else {
		delete(e.state.EnabledConstruction, key)
		// in-flight progress is kept so re-enabling resumes
	}
	return next, nil
}

// PurchaseProbe buys one probe for metal and lands it in the given
// zone, defaulting to the current harvest zone
func (e *Engine) PurchaseProbe(probeType shared.ProbeTypeID, zoneID shared.ZoneID) error {
	def, ok := e.provider.Probe(probeType)
	if !ok {
		return shared.NewInvalidParameterError("probe_type", "unknown probe type "+string(probeType))
	}
	for _, prereq := range def.Prerequisites {
		if !e.hasStructure(prereq) {
			return shared.NewDomainError("prerequisite not met: " + string(prereq))
		}
	}
	if zoneID == "" {
		zoneID = e.state.HarvestZone
	}
	if _, ok := e.provider.Zone(zoneID); !ok {
		return shared.NewInvalidZoneError(zoneID)
	}

	cost := def.BaseCostMetal
	if cost <= 0 {
		cost = statics.DefaultProbeCostMetal
	}
	if e.state.Metal < cost {
		return shared.NewInsufficientResourceError("metal", cost, e.state.Metal)
	}
	e.state.Metal -= cost
	e.state.Probes[zoneID]++
	return nil
}

// ZonePolicyUpdate carries the optional slider changes for one zone;
// nil fields keep their current value
type ZonePolicyUpdate struct {
	MiningSlider          *float64
	ReplicationSlider     *float64
	DysonAllocationSlider *float64
	MinProbes             *int
}

// AllocateProbes updates a zone's activity policy. Allocations are
// derived from sliders every tick, so this is the only mutation needed.
func (e *Engine) AllocateProbes(zoneID shared.ZoneID, update ZonePolicyUpdate) (zone.Policy, error) {
	if _, ok := e.provider.Zone(zoneID); !ok {
		return zone.Policy{}, shared.NewInvalidZoneError(zoneID)
	}
	p := e.state.Policy(zoneID)
	if update.MiningSlider != nil {
		p.MiningSlider = clampPct(*update.MiningSlider)
	}
	if update.ReplicationSlider != nil {
		p.ReplicationSlider = clampPct(*update.ReplicationSlider)
	}
	if update.DysonAllocationSlider != nil {
		p.DysonAllocationSlider = clampPct(*update.DysonAllocationSlider)
	}
	p.ConstructionSlider = 100 - p.ReplicationSlider
	e.state.Policies[zoneID] = p
	if update.MinProbes != nil && *update.MinProbes >= 0 {
		e.state.MinProbes[zoneID] = *update.MinProbes
	}
	return p, nil
}

// AllocateResearch toggles one research tier
func (e *Engine) AllocateResearch(tree shared.TreeID, tier shared.TierID, enabled bool) error {
	return e.research.EnableTier(tree, tier, enabled)
}

// ToggleResearchCategory flips every tier in a category and reports how
// many changed
func (e *Engine) ToggleResearchCategory(category string, enabled bool) (int, error) {
	return e.research.EnableCategory(category, enabled)
}

// SetFactoryProduction sets a factory type's output percentage. An
// empty zone applies the setting everywhere the factory exists.
func (e *Engine) SetFactoryProduction(zoneID shared.ZoneID, buildingID shared.BuildingID, production float64) error {
	if _, ok := e.provider.Building(buildingID); !ok {
		return shared.NewInvalidBuildingError(buildingID)
	}
	production = clampPct(production)

	apply := func(id shared.ZoneID) {
		if e.state.FactoryProduction[id] == nil {
			e.state.FactoryProduction[id] = make(map[shared.BuildingID]float64)
		}
		e.state.FactoryProduction[id][buildingID] = production
	}

	if zoneID != "" {
		if _, ok := e.provider.Zone(zoneID); !ok {
			return shared.NewInvalidZoneError(zoneID)
		}
		apply(zoneID)
		return nil
	}
	for id, byBuilding := range e.state.Structures {
		if byBuilding[buildingID] > 0 {
			apply(id)
		}
	}
	return nil
}

// SetEconomySlider stores the legacy global Dyson/economy split and
// mirrors it onto the Dyson zone's allocation slider (0 = all Dyson)
func (e *Engine) SetEconomySlider(value float64) {
	e.state.EconomySlider = clampPct(value)
	for _, z := range e.provider.Zones() {
		if z.IsDysonZone {
			p := e.state.Policy(z.ID)
			p.DysonAllocationSlider = 100 - e.state.EconomySlider
			e.state.Policies[z.ID] = p
		}
	}
}

// SetMineBuildSlider stores the legacy harvest/build split (0 = all
// mine) and mirrors it onto every regular zone's mining slider
func (e *Engine) SetMineBuildSlider(value float64) {
	e.state.MineBuildSlider = clampPct(value)
	for _, z := range e.provider.Zones() {
		if z.IsDysonZone {
			continue
		}
		p := e.state.Policy(z.ID)
		p.MiningSlider = 100 - e.state.MineBuildSlider
		e.state.Policies[z.ID] = p
	}
}

// SetBuildAllocation stores the legacy structures/probes split (100 =
// all probes) and mirrors it onto every zone's replication slider
func (e *Engine) SetBuildAllocation(value float64) {
	e.state.BuildAllocation = clampPct(value)
	for _, z := range e.provider.Zones() {
		p := e.state.Policy(z.ID)
		p.ReplicationSlider = e.state.BuildAllocation
		p.ConstructionSlider = 100 - p.ReplicationSlider
		e.state.Policies[z.ID] = p
	}
}

// SetDysonPowerAllocation sets the swarm output split slider
func (e *Engine) SetDysonPowerAllocation(value float64) {
	e.state.DysonPowerAllocation = clampPct(value)
}

// SetHarvestZone selects the preferred mining zone
func (e *Engine) SetHarvestZone(zoneID shared.ZoneID) error {
	if _, ok := e.provider.Zone(zoneID); !ok {
		return shared.NewInvalidZoneError(zoneID)
	}
	e.state.HarvestZone = zoneID
	return nil
}

// CreateTransfer starts a one-time or continuous probe transfer and
// returns its id
func (e *Engine) CreateTransfer(kind transfer.Kind, from, to shared.ZoneID, count int, ratePct float64) (string, error) {
	switch kind {
	case transfer.OneTime:
		t, err := e.transfers.CreateOneTime(from, to, count, e.state.TimeDays, e.state.Probes, e.state.Structures)
		if err != nil {
			return "", err
		}
		return t.ID, nil
	case transfer.Continuous:
		t, err := e.transfers.CreateContinuous(from, to, ratePct, e.state.TimeDays)
		if err != nil {
			return "", err
		}
		return t.ID, nil
	default:
		return "", shared.NewInvalidTransferError("unknown transfer type " + string(kind))
	}
}

// UpdateTransfer changes a continuous transfer's rate
func (e *Engine) UpdateTransfer(id string, ratePct float64) error {
	return e.transfers.UpdateRate(id, ratePct)
}

// PauseTransfer pauses or resumes a transfer
func (e *Engine) PauseTransfer(id string, paused bool) error {
	return e.transfers.SetPaused(id, paused)
}

// ReverseTransfer swaps a transfer's endpoints
func (e *Engine) ReverseTransfer(id string) error {
	return e.transfers.Reverse(id)
}

// DeleteTransfer removes a transfer, returning in-flight probes to the
// source zone
func (e *Engine) DeleteTransfer(id string) error {
	return e.transfers.Delete(id, e.state.Probes)
}

// RecycleFactory tears down one structure in a zone for salvage
func (e *Engine) RecycleFactory(zoneID shared.ZoneID, buildingID shared.BuildingID) (metalReturned, slagProduced float64, err error) {
	if _, ok := e.provider.Zone(zoneID); !ok {
		return 0, 0, shared.NewInvalidZoneError(zoneID)
	}
	byBuilding := e.state.Structures[zoneID]
	if byBuilding[buildingID] <= 0 {
		return 0, 0, shared.NewInvalidBuildingError(buildingID)
	}

	metal, slag := e.builder.Recycle(buildingID, e.state.TimeDays)
	byBuilding[buildingID]--
	if byBuilding[buildingID] <= 0 {
		delete(byBuilding, buildingID)
	}
	e.state.Metal += metal
	e.state.Slag += slag
	return metal, slag, nil
}

// SetActivityModifier adjusts a named global rate multiplier
func (e *Engine) SetActivityModifier(name string, value float64) error {
	switch name {
	case ModifierMining, ModifierReplication, ModifierConstruct, ModifierDyson, ModifierResearch:
	default:
		return shared.NewInvalidParameterError("activity", "unknown activity "+name)
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return shared.NewInvalidParameterError("value", "modifier must be a finite non-negative number")
	}
	e.state.ActivityModifiers[name] = value
	return nil
}
