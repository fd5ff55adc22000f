package statics

import "github.com/brachisto/brachisto-go/internal/domain/shared"

// ZoneDef describes an orbital zone's fixed physical parameters
type ZoneDef struct {
	ID                   shared.ZoneID
	Name                 string
	RadiusAU             float64
	MetalPercentage      float64
	TotalMassKg          float64
	DeltaVPenalty        float64
	MiningRateMultiplier float64
	IsDysonZone          bool
}

// ProbeDef describes a probe design
type ProbeDef struct {
	ID                shared.ProbeTypeID
	Name              string
	BaseCostMetal     float64
	BaseDexterity     float64
	HarvestMultiplier float64
	IdleDrawW         float64
	Prerequisites     []shared.BuildingID
}

// BuildingEffects carries the per-structure contributions a building
// makes each tick. Zero values mean the building has no such effect.
type BuildingEffects struct {
	MetalProductionPerDay     float64
	MetalEfficiencyBonus      float64
	ProbeProductionPerDay     float64
	MetalPerProbe             float64
	EnergyStorageWattDays     float64
	PowerOutputW              float64
	PowerConsumptionW         float64
	UsesSolar                 bool
	ComputeFlops              float64
	TransferTimeReduction     float64
	WormholeNetwork           bool
	SlagConversionKgPerDay    float64
	SlagConversionEfficiency  float64
	SlagConversionEnergyPerKg float64
}

// BuildingDef describes a structure type
type BuildingDef struct {
	ID            shared.BuildingID
	Name          string
	Category      string
	CostMetal     float64
	Effects       BuildingEffects
	AllowedZones  []shared.ZoneID
	Prerequisites []shared.BuildingID
}

// AllowedIn reports whether the building may be placed in the zone.
// An empty AllowedZones list means any zone.
func (b BuildingDef) AllowedIn(zone shared.ZoneID) bool {
	if len(b.AllowedZones) == 0 {
		return true
	}
	for _, z := range b.AllowedZones {
		if z == zone {
			return true
		}
	}
	return false
}

// ResearchTierDef describes one tier (subcategory) of a research tree
type ResearchTierDef struct {
	ID         shared.TierID
	Name       string
	Tranches   int
	TotalBonus float64
	Effects    map[string]float64
}

// ResearchTreeDef describes a research tree and its ordered tiers
type ResearchTreeDef struct {
	ID       shared.TreeID
	Name     string
	Category string
	Tiers    []ResearchTierDef
}

// Tier looks up a tier by id
func (t ResearchTreeDef) Tier(id shared.TierID) (ResearchTierDef, bool) {
	for _, tier := range t.Tiers {
		if tier.ID == id {
			return tier, true
		}
	}
	return ResearchTierDef{}, false
}
