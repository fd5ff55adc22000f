package helpers

import (
	"github.com/brachisto/brachisto-go/internal/adapters/staticdata"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
)

// Zone and building ids used by the test dataset
const (
	TestZoneInner shared.ZoneID = "inner"
	TestZoneOuter shared.ZoneID = "outer"
	TestZoneForge shared.ZoneID = "forge"

	TestProbe shared.ProbeTypeID = "probe"

	TestAutoMiner     shared.BuildingID = "auto_miner"
	TestSolar         shared.BuildingID = "solar_collector"
	TestFusion        shared.BuildingID = "fusion_plant"
	TestBattery       shared.BuildingID = "battery_bank"
	TestCluster       shared.BuildingID = "compute_cluster"
	TestFactory       shared.BuildingID = "probe_factory"
	TestAdvLab        shared.BuildingID = "advanced_lab"
	TestSlagConverter shared.BuildingID = "slag_converter"
	TestMassDriver    shared.BuildingID = "mass_driver"
	TestWormholeGate  shared.BuildingID = "wormhole_gate"
)

// TestDataset builds a compact three-zone solar system with one building
// of every effect class, enough to exercise every production path
// without the full default data set.
func TestDataset() *staticdata.Dataset {
	zones := []statics.ZoneDef{
		{ID: TestZoneInner, Name: "Inner", RadiusAU: 0.5, MetalPercentage: 0.5, TotalMassKg: 1e12, DeltaVPenalty: 0, MiningRateMultiplier: 1},
		{ID: TestZoneOuter, Name: "Outer", RadiusAU: 2.0, MetalPercentage: 0.25, TotalMassKg: 1e12, DeltaVPenalty: 1.0, MiningRateMultiplier: 1},
		{ID: TestZoneForge, Name: "Forge", RadiusAU: 0.29, MetalPercentage: 0.32, IsDysonZone: true},
	}

	probes := []statics.ProbeDef{
		{ID: TestProbe, Name: "Probe", BaseCostMetal: 100, BaseDexterity: 1, HarvestMultiplier: 1},
	}

	buildings := []statics.BuildingDef{
		{ID: TestAutoMiner, Name: "Auto-Miner", Category: "mining", CostMetal: 1000,
			Effects: statics.BuildingEffects{MetalProductionPerDay: 500}},
		{ID: TestSolar, Name: "Solar Collector", Category: "energy", CostMetal: 500,
			Effects: statics.BuildingEffects{PowerOutputW: 1e6, UsesSolar: true}},
		{ID: TestFusion, Name: "Fusion Plant", Category: "energy", CostMetal: 2000,
			Effects: statics.BuildingEffects{PowerOutputW: 5e6}},
		{ID: TestBattery, Name: "Battery Bank", Category: "energy", CostMetal: 300,
			Effects: statics.BuildingEffects{EnergyStorageWattDays: 1e6}},
		{ID: TestCluster, Name: "Compute Cluster", Category: "compute", CostMetal: 5000,
			Effects: statics.BuildingEffects{ComputeFlops: 1e15}},
		{ID: TestFactory, Name: "Probe Factory", Category: "production", CostMetal: 4000,
			Effects: statics.BuildingEffects{ProbeProductionPerDay: 10, MetalPerProbe: 100}},
		{ID: TestAdvLab, Name: "Advanced Lab", Category: "production", CostMetal: 8000,
			Prerequisites: []shared.BuildingID{TestFactory},
			Effects:       statics.BuildingEffects{ComputeFlops: 5e15}},
		{ID: TestSlagConverter, Name: "Slag Converter", Category: "recycling", CostMetal: 800,
			Effects: statics.BuildingEffects{SlagConversionKgPerDay: 2000, SlagConversionEfficiency: 0.5, SlagConversionEnergyPerKg: 10}},
		{ID: TestMassDriver, Name: "Mass Driver", Category: "transport", CostMetal: 1500,
			Effects: statics.BuildingEffects{TransferTimeReduction: 0.25}},
		{ID: TestWormholeGate, Name: "Wormhole Gate", Category: "transport", CostMetal: 10000,
			Effects: statics.BuildingEffects{WormholeNetwork: true}},
	}

	trees := []statics.ResearchTreeDef{
		testTree("robotic_systems", "dexterity"),
		testTree("locomotion_systems", "dexterity"),
		testTree("acds", "dexterity"),
		testTree("propulsion_systems", "dexterity"),
		testTree("production_efficiency", "dexterity"),
		testTree("recycling_efficiency", "dexterity"),
		testTree("energy_collection", "energy"),
		testTree("solar_concentrators", "energy"),
		testTree("energy_storage", "energy"),
		testTree("dyson_swarm_construction", "energy"),
		testTree("computer_processing", "intelligence"),
		testTree("computer_gpu", "intelligence"),
		testTree("computer_interconnect", "intelligence"),
		testTree("computer_interface", "intelligence"),
	}

	return staticdata.NewDataset(zones, probes, buildings, trees)
}

func testTree(id shared.TreeID, category string) statics.ResearchTreeDef {
	return statics.ResearchTreeDef{
		ID:       id,
		Name:     string(id),
		Category: category,
		Tiers: []statics.ResearchTierDef{
			{ID: "tier_i", Name: "Tier I", Tranches: 10, TotalBonus: 0.25},
			{ID: "tier_ii", Name: "Tier II", Tranches: 10, TotalBonus: 0.5},
		},
	}
}
