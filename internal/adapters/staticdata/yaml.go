package staticdata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
)

// File mirrors the on-disk YAML schema. Omitted numeric fields fall
// back to the same defaults the domain lookups use, so a minimal file
// with just ids still produces a playable dataset.
type File struct {
	Zones         []zoneYAML     `yaml:"zones"`
	Probes        []probeYAML    `yaml:"probes"`
	Buildings     []buildingYAML `yaml:"buildings"`
	ResearchTrees []treeYAML     `yaml:"research_trees"`
}

type zoneYAML struct {
	ID                   string   `yaml:"id"`
	Name                 string   `yaml:"name"`
	RadiusAU             *float64 `yaml:"radius_au"`
	MetalPercentage      *float64 `yaml:"metal_percentage"`
	TotalMassKg          float64  `yaml:"total_mass_kg"`
	DeltaVPenalty        float64  `yaml:"delta_v_penalty"`
	MiningRateMultiplier *float64 `yaml:"mining_rate_multiplier"`
	IsDysonZone          bool     `yaml:"is_dyson_zone"`
}

type probeYAML struct {
	ID                string   `yaml:"id"`
	Name              string   `yaml:"name"`
	BaseCostMetal     *float64 `yaml:"base_cost_metal"`
	BaseDexterity     *float64 `yaml:"base_dexterity"`
	HarvestMultiplier *float64 `yaml:"harvest_multiplier"`
	IdleDrawW         float64  `yaml:"idle_draw_w"`
	Prerequisites     []string `yaml:"prerequisites"`
}

type buildingYAML struct {
	ID            string      `yaml:"id"`
	Name          string      `yaml:"name"`
	Category      string      `yaml:"category"`
	CostMetal     float64     `yaml:"cost_metal"`
	Effects       effectsYAML `yaml:"effects"`
	AllowedZones  []string    `yaml:"allowed_zones"`
	Prerequisites []string    `yaml:"prerequisites"`
}

type effectsYAML struct {
	MetalProductionPerDay     float64 `yaml:"metal_production_per_day"`
	MetalEfficiencyBonus      float64 `yaml:"metal_efficiency_bonus"`
	ProbeProductionPerDay     float64 `yaml:"probe_production_per_day"`
	MetalPerProbe             float64 `yaml:"metal_per_probe"`
	EnergyStorageWattDays     float64 `yaml:"energy_storage_watt_days"`
	PowerOutputW              float64 `yaml:"power_output_w"`
	PowerConsumptionW         float64 `yaml:"power_consumption_w"`
	UsesSolar                 bool    `yaml:"uses_solar"`
	ComputeFlops              float64 `yaml:"compute_flops"`
	TransferTimeReduction     float64 `yaml:"transfer_time_reduction"`
	WormholeNetwork           bool    `yaml:"wormhole_network"`
	SlagConversionKgPerDay    float64 `yaml:"slag_conversion_kg_per_day"`
	SlagConversionEfficiency  float64 `yaml:"slag_conversion_efficiency"`
	SlagConversionEnergyPerKg float64 `yaml:"slag_conversion_energy_per_kg"`
}

type treeYAML struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Category string     `yaml:"category"`
	Tiers    []tierYAML `yaml:"tiers"`
}

type tierYAML struct {
	ID         string             `yaml:"id"`
	Name       string             `yaml:"name"`
	Tranches   int                `yaml:"tranches"`
	TotalBonus float64            `yaml:"total_bonus"`
	Effects    map[string]float64 `yaml:"effects"`
}

// LoadFile reads a YAML dataset from disk
func LoadFile(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading static data: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML dataset from memory
func Parse(raw []byte) (*Dataset, error) {
	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing static data: %w", err)
	}
	return file.Dataset()
}

// Dataset converts the decoded file into an immutable provider
func (f *File) Dataset() (*Dataset, error) {
	zones := make([]statics.ZoneDef, 0, len(f.Zones))
	for _, z := range f.Zones {
		if z.ID == "" {
			return nil, fmt.Errorf("zone with empty id")
		}
		zones = append(zones, statics.ZoneDef{
			ID:                   shared.ZoneID(z.ID),
			Name:                 nameOr(z.Name, z.ID),
			RadiusAU:             floatOr(z.RadiusAU, statics.DefaultZoneRadiusAU),
			MetalPercentage:      floatOr(z.MetalPercentage, statics.DefaultMetalPercentage),
			TotalMassKg:          z.TotalMassKg,
			DeltaVPenalty:        z.DeltaVPenalty,
			MiningRateMultiplier: floatOr(z.MiningRateMultiplier, statics.DefaultMiningMultiplier),
			IsDysonZone:          z.IsDysonZone,
		})
	}

	probes := make([]statics.ProbeDef, 0, len(f.Probes))
	for _, p := range f.Probes {
		if p.ID == "" {
			return nil, fmt.Errorf("probe with empty id")
		}
		probes = append(probes, statics.ProbeDef{
			ID:                shared.ProbeTypeID(p.ID),
			Name:              nameOr(p.Name, p.ID),
			BaseCostMetal:     floatOr(p.BaseCostMetal, statics.DefaultProbeCostMetal),
			BaseDexterity:     floatOr(p.BaseDexterity, statics.DefaultProbeDexterity),
			HarvestMultiplier: floatOr(p.HarvestMultiplier, statics.DefaultProbeHarvestMult),
			IdleDrawW:         p.IdleDrawW,
			Prerequisites:     buildingIDs(p.Prerequisites),
		})
	}

	buildings := make([]statics.BuildingDef, 0, len(f.Buildings))
	for _, b := range f.Buildings {
		if b.ID == "" {
			return nil, fmt.Errorf("building with empty id")
		}
		buildings = append(buildings, statics.BuildingDef{
			ID:        shared.BuildingID(b.ID),
			Name:      nameOr(b.Name, b.ID),
			Category:  b.Category,
			CostMetal: b.CostMetal,
			Effects: statics.BuildingEffects{
				MetalProductionPerDay:     b.Effects.MetalProductionPerDay,
				MetalEfficiencyBonus:      b.Effects.MetalEfficiencyBonus,
				ProbeProductionPerDay:     b.Effects.ProbeProductionPerDay,
				MetalPerProbe:             b.Effects.MetalPerProbe,
				EnergyStorageWattDays:     b.Effects.EnergyStorageWattDays,
				PowerOutputW:              b.Effects.PowerOutputW,
				PowerConsumptionW:         b.Effects.PowerConsumptionW,
				UsesSolar:                 b.Effects.UsesSolar,
				ComputeFlops:              b.Effects.ComputeFlops,
				TransferTimeReduction:     b.Effects.TransferTimeReduction,
				WormholeNetwork:           b.Effects.WormholeNetwork,
				SlagConversionKgPerDay:    b.Effects.SlagConversionKgPerDay,
				SlagConversionEfficiency:  b.Effects.SlagConversionEfficiency,
				SlagConversionEnergyPerKg: b.Effects.SlagConversionEnergyPerKg,
			},
			AllowedZones:  zoneIDs(b.AllowedZones),
			Prerequisites: buildingIDs(b.Prerequisites),
		})
	}

	trees := make([]statics.ResearchTreeDef, 0, len(f.ResearchTrees))
	for _, t := range f.ResearchTrees {
		if t.ID == "" {
			return nil, fmt.Errorf("research tree with empty id")
		}
		tiers := make([]statics.ResearchTierDef, 0, len(t.Tiers))
		for _, tier := range t.Tiers {
			if tier.ID == "" {
				return nil, fmt.Errorf("research tree %s: tier with empty id", t.ID)
			}
			tiers = append(tiers, statics.ResearchTierDef{
				ID:         shared.TierID(tier.ID),
				Name:       nameOr(tier.Name, tier.ID),
				Tranches:   tier.Tranches,
				TotalBonus: tier.TotalBonus,
				Effects:    tier.Effects,
			})
		}
		trees = append(trees, statics.ResearchTreeDef{
			ID:       shared.TreeID(t.ID),
			Name:     nameOr(t.Name, t.ID),
			Category: t.Category,
			Tiers:    tiers,
		})
	}

	return NewDataset(zones, probes, buildings, trees), nil
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}

func floatOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}

func zoneIDs(raw []string) []shared.ZoneID {
	if len(raw) == 0 {
		return nil
	}
	out := make([]shared.ZoneID, len(raw))
	for i, s := range raw {
		out[i] = shared.ZoneID(s)
	}
	return out
}

func buildingIDs(raw []string) []shared.BuildingID {
	if len(raw) == 0 {
		return nil
	}
	out := make([]shared.BuildingID, len(raw))
	for i, s := range raw {
		out[i] = shared.BuildingID(s)
	}
	return out
}
