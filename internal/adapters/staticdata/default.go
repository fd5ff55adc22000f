package staticdata

import (
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
)

// Default returns the built-in solar system dataset. It mirrors the
// shipped game data: ten mineable orbits plus the swarm assembly zone
// close to the sun. Planetary masses are the real values.
func Default() *Dataset {
	return NewDataset(defaultZones(), defaultProbes(), defaultBuildings(), defaultTrees())
}

func defaultZones() []statics.ZoneDef {
	return []statics.ZoneDef{
		{ID: "mercury", Name: "Mercury", RadiusAU: 0.39, MetalPercentage: 0.42, TotalMassKg: 3.3011e23, DeltaVPenalty: 0.8, MiningRateMultiplier: 1.0},
		{ID: "venus", Name: "Venus", RadiusAU: 0.72, MetalPercentage: 0.32, TotalMassKg: 4.8675e24, DeltaVPenalty: 0.6, MiningRateMultiplier: 0.8},
		{ID: "earth", Name: "Earth", RadiusAU: 1.0, MetalPercentage: 0.32, TotalMassKg: 5.9724e24, DeltaVPenalty: 0.0, MiningRateMultiplier: 1.0},
		{ID: "mars", Name: "Mars", RadiusAU: 1.52, MetalPercentage: 0.36, TotalMassKg: 6.4171e23, DeltaVPenalty: 0.3, MiningRateMultiplier: 1.2},
		{ID: "asteroid_belt", Name: "Asteroid Belt", RadiusAU: 2.7, MetalPercentage: 0.55, TotalMassKg: 3e21, DeltaVPenalty: 0.5, MiningRateMultiplier: 2.0},
		{ID: "jupiter", Name: "Jupiter", RadiusAU: 5.2, MetalPercentage: 0.05, TotalMassKg: 1.8982e27, DeltaVPenalty: 1.5, MiningRateMultiplier: 0.4},
		{ID: "saturn", Name: "Saturn", RadiusAU: 9.54, MetalPercentage: 0.04, TotalMassKg: 5.6834e26, DeltaVPenalty: 1.8, MiningRateMultiplier: 0.4},
		{ID: "uranus", Name: "Uranus", RadiusAU: 19.2, MetalPercentage: 0.08, TotalMassKg: 8.681e25, DeltaVPenalty: 2.2, MiningRateMultiplier: 0.3},
		{ID: "neptune", Name: "Neptune", RadiusAU: 30.1, MetalPercentage: 0.08, TotalMassKg: 1.02413e26, DeltaVPenalty: 2.5, MiningRateMultiplier: 0.3},
		{ID: "kuiper_belt", Name: "Kuiper Belt", RadiusAU: 39.5, MetalPercentage: 0.25, TotalMassKg: 5.97e23, DeltaVPenalty: 3.0, MiningRateMultiplier: 0.6},
		{ID: "dyson_forge", Name: "Dyson Forge", RadiusAU: 0.29, MetalPercentage: 0, TotalMassKg: 0, DeltaVPenalty: 0.9, MiningRateMultiplier: 0, IsDysonZone: true},
	}
}

func defaultProbes() []statics.ProbeDef {
	return []statics.ProbeDef{
		{
			ID:                "probe",
			Name:              "Von Neumann Probe",
			BaseCostMetal:     shared.ProbeMassKg,
			BaseDexterity:     1.0,
			HarvestMultiplier: 1.0,
		},
		{
			ID:                "heavy_miner",
			Name:              "Heavy Mining Probe",
			BaseCostMetal:     4 * shared.ProbeMassKg,
			BaseDexterity:     0.6,
			HarvestMultiplier: 5.0,
			IdleDrawW:         shared.ProbeMiningDrawW,
			Prerequisites:     []shared.BuildingID{"probe_factory"},
		},
	}
}

func defaultBuildings() []statics.BuildingDef {
	return []statics.BuildingDef{
		{
			ID: "auto_miner", Name: "Automated Miner", Category: "mining", CostMetal: 5_000,
			Effects: statics.BuildingEffects{
				MetalProductionPerDay: 1_000,
				PowerConsumptionW:     50_000,
			},
		},
		{
			ID: "ore_refinery", Name: "Ore Refinery", Category: "mining", CostMetal: 20_000,
			Effects: statics.BuildingEffects{
				MetalProductionPerDay: 3_000,
				MetalEfficiencyBonus:  0.15,
				PowerConsumptionW:     200_000,
			},
			Prerequisites: []shared.BuildingID{"auto_miner"},
		},
		{
			ID: "probe_factory", Name: "Probe Factory", Category: "production", CostMetal: 10_000,
			Effects: statics.BuildingEffects{
				ProbeProductionPerDay: 10,
				MetalPerProbe:         shared.ProbeMassKg,
				PowerConsumptionW:     100_000,
			},
		},
		{
			ID: "solar_collector", Name: "Solar Collector", Category: "energy", CostMetal: 2_000,
			Effects: statics.BuildingEffects{
				PowerOutputW: 250_000,
				UsesSolar:    true,
			},
		},
		{
			ID: "fusion_plant", Name: "Fusion Plant", Category: "energy", CostMetal: 50_000,
			Effects: statics.BuildingEffects{
				PowerOutputW: 2_000_000,
			},
			Prerequisites: []shared.BuildingID{"solar_collector"},
		},
		{
			ID: "battery_bank", Name: "Battery Bank", Category: "energy", CostMetal: 3_000,
			Effects: statics.BuildingEffects{
				EnergyStorageWattDays: 5_000_000,
			},
		},
		{
			ID: "compute_cluster", Name: "Compute Cluster", Category: "intelligence", CostMetal: 15_000,
			Effects: statics.BuildingEffects{
				ComputeFlops:      1e15,
				PowerConsumptionW: 300_000,
			},
		},
		{
			ID: "slag_converter", Name: "Slag Converter", Category: "recycling", CostMetal: 25_000,
			Effects: statics.BuildingEffects{
				SlagConversionKgPerDay:    2_000,
				SlagConversionEfficiency:  0.4,
				SlagConversionEnergyPerKg: 10,
			},
		},
		{
			ID: "mass_driver", Name: "Mass Driver", Category: "logistics", CostMetal: 30_000,
			Effects: statics.BuildingEffects{
				TransferTimeReduction: 0.25,
				PowerConsumptionW:     500_000,
			},
		},
		{
			ID: "wormhole_gate", Name: "Wormhole Gate", Category: "logistics", CostMetal: 5_000_000,
			Effects: statics.BuildingEffects{
				WormholeNetwork:   true,
				PowerConsumptionW: 10_000_000,
			},
			Prerequisites: []shared.BuildingID{"mass_driver"},
		},
	}
}

// tier builds the arithmetic progression the shipped trees use: each
// tier carries ten tranches and a bonus that grows with depth
func tier(idx int, bonus float64) statics.ResearchTierDef {
	names := []string{"I", "II", "III", "IV"}
	return statics.ResearchTierDef{
		ID:         shared.TierID(names[idx]),
		Name:       "Tier " + names[idx],
		Tranches:   10,
		TotalBonus: bonus,
	}
}

func tree(id shared.TreeID, name, category string, bonuses ...float64) statics.ResearchTreeDef {
	tiers := make([]statics.ResearchTierDef, len(bonuses))
	for i, b := range bonuses {
		tiers[i] = tier(i, b)
	}
	return statics.ResearchTreeDef{ID: id, Name: name, Category: category, Tiers: tiers}
}

func defaultTrees() []statics.ResearchTreeDef {
	return []statics.ResearchTreeDef{
		tree("robotic_systems", "Robotic Systems", "dexterity", 0.10, 0.15, 0.20, 0.25),
		tree("locomotion_systems", "Locomotion Systems", "dexterity", 0.10, 0.15, 0.20, 0.25),
		tree("acds", "Attitude Control & Docking", "dexterity", 0.08, 0.12, 0.18, 0.22),
		tree("propulsion_systems", "Propulsion Systems", "dexterity", 0.10, 0.15, 0.20, 0.25),
		tree("production_efficiency", "Production Efficiency", "dexterity", 0.12, 0.18, 0.24, 0.30),
		tree("recycling_efficiency", "Recycling Efficiency", "dexterity", 0.05, 0.08, 0.10, 0.12),
		tree("energy_collection", "Energy Collection", "energy", 0.10, 0.15, 0.20, 0.25),
		tree("solar_concentrators", "Solar Concentrators", "energy", 0.10, 0.15, 0.20, 0.25),
		tree("energy_storage", "Energy Storage", "energy", 0.10, 0.15, 0.20, 0.25),
		tree("dyson_swarm_construction", "Dyson Swarm Construction", "energy", 0.12, 0.18, 0.24, 0.30),
		tree("computer_processing", "Computer Processing", "intelligence", 0.10, 0.15, 0.20, 0.25),
		tree("computer_gpu", "GPU Architecture", "intelligence", 0.10, 0.15, 0.20, 0.25),
		tree("computer_interconnect", "Interconnect Fabric", "intelligence", 0.10, 0.15, 0.20, 0.25),
		tree("computer_interface", "Neural Interface", "intelligence", 0.10, 0.15, 0.20, 0.25),
	}
}
