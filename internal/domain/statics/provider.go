package statics

import "github.com/brachisto/brachisto-go/internal/domain/shared"

// Provider is the read-only port for static game data. Implementations
// live in the adapters layer; the simulation only ever queries by id.
type Provider interface {
	Zones() []ZoneDef
	Zone(id shared.ZoneID) (ZoneDef, bool)
	Probes() []ProbeDef
	Probe(id shared.ProbeTypeID) (ProbeDef, bool)
	Buildings() []BuildingDef
	Building(id shared.BuildingID) (BuildingDef, bool)
	ResearchTrees() []ResearchTreeDef
	ResearchTree(id shared.TreeID) (ResearchTreeDef, bool)
}

// Fallback values used when a referenced id is missing from the data
// set. Lookups degrade to these instead of failing the tick.
const (
	DefaultMetalPercentage  = 0.32
	DefaultMiningMultiplier = 1.0
	DefaultZoneRadiusAU     = 1.0
	DefaultProbeDexterity   = 1.0
	DefaultProbeCostMetal   = shared.ProbeMassKg
	DefaultProbeHarvestMult = 1.0
)

// ZoneOrDefault returns the zone definition, or a neutral placeholder
// carrying the fallback parameters when the id is unknown
func ZoneOrDefault(p Provider, id shared.ZoneID) ZoneDef {
	if z, ok := p.Zone(id); ok {
		return z
	}
	return ZoneDef{
		ID:                   id,
		Name:                 string(id),
		RadiusAU:             DefaultZoneRadiusAU,
		MetalPercentage:      DefaultMetalPercentage,
		MiningRateMultiplier: DefaultMiningMultiplier,
	}
}

// ProbeOrDefault returns the probe definition, or the baseline probe
// stats when the id is unknown
func ProbeOrDefault(p Provider, id shared.ProbeTypeID) ProbeDef {
	if d, ok := p.Probe(id); ok {
		return d
	}
	return ProbeDef{
		ID:                id,
		Name:              string(id),
		BaseCostMetal:     DefaultProbeCostMetal,
		BaseDexterity:     DefaultProbeDexterity,
		HarvestMultiplier: DefaultProbeHarvestMult,
	}
}

// BuildingOrDefault returns the building definition, or an inert
// placeholder with no effects when the id is unknown
func BuildingOrDefault(p Provider, id shared.BuildingID) BuildingDef {
	if d, ok := p.Building(id); ok {
		return d
	}
	return BuildingDef{ID: id, Name: string(id)}
}
