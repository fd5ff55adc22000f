package sim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brachisto/brachisto-go/internal/domain/research"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/sim"
	"github.com/brachisto/brachisto-go/internal/domain/transfer"
	"github.com/brachisto/brachisto-go/test/helpers"
)

func newEngine(t *testing.T, probes int, metal float64) *sim.Engine {
	t.Helper()
	return sim.NewEngine(helpers.TestDataset(), sim.Config{
		InitialProbes: probes,
		InitialMetal:  metal,
		StartZone:     helpers.TestZoneInner,
		ProbeType:     helpers.TestProbe,
		Seed:          1,
	})
}

func floatPtr(v float64) *float64 { return &v }

func TestNewEngine_UnknownStartZoneFallsBack(t *testing.T) {
	eng := sim.NewEngine(helpers.TestDataset(), sim.Config{
		InitialProbes: 5,
		StartZone:     "atlantis",
		ProbeType:     helpers.TestProbe,
		Seed:          1,
	})

	// First regular zone in the data set hosts the initial fleet
	assert.Equal(t, 5, eng.State().Probes[helpers.TestZoneInner])
	assert.Equal(t, helpers.TestZoneInner, eng.State().HarvestZone)
}

func TestTick_IgnoresBadSteps(t *testing.T) {
	eng := newEngine(t, 10, 1000)

	eng.Tick(0)
	eng.Tick(-1)
	eng.Tick(math.NaN())
	eng.Tick(math.Inf(1))

	assert.Zero(t, eng.State().Tick)
	assert.Zero(t, eng.State().TimeDays)
}

func TestTick_MiningConservesMass(t *testing.T) {
	eng := newEngine(t, 10, 1000)
	s := eng.State()
	massBefore := s.MassRemaining[helpers.TestZoneInner]

	eng.Tick(1)

	assert.Equal(t, int64(1), s.Tick)
	assert.Equal(t, 1.0, s.TimeDays)

	metalGained := s.Metal - 1000
	assert.Greater(t, metalGained, 0.0)

	// Mass leaving the body equals stockpiled metal plus slag
	massRemoved := massBefore - s.MassRemaining[helpers.TestZoneInner]
	assert.InDelta(t, massRemoved, metalGained+s.Slag, 1e-6)
	assert.InDelta(t, s.Slag, s.SlagProduced[helpers.TestZoneInner], 1e-9)
	assert.False(t, s.EnergyLimited)
}

func TestTick_SingleProbeHarvestRates(t *testing.T) {
	eng := newEngine(t, 1, 0)
	s := eng.State()
	metalBefore := s.MetalRemaining[helpers.TestZoneInner]

	eng.Tick(1)

	// One probe at full mining: 100 kg/day at 50% metal content
	assert.InDelta(t, 50.0, metalBefore-s.MetalRemaining[helpers.TestZoneInner], 1e-6)
	assert.InDelta(t, 50.0, s.Metal, 1e-6)
	assert.InDelta(t, 50.0, s.Slag, 1e-6)
}

func TestTick_DepletionClampsAtZero(t *testing.T) {
	eng := newEngine(t, 10, 0)
	s := eng.State()
	s.MassRemaining[helpers.TestZoneInner] = 50
	s.MetalRemaining[helpers.TestZoneInner] = 25

	eng.Tick(1)

	assert.GreaterOrEqual(t, s.MassRemaining[helpers.TestZoneInner], 0.0)
	assert.Equal(t, 0.0, s.MetalRemaining[helpers.TestZoneInner])
	assert.True(t, s.Depleted(helpers.TestZoneInner))
	assert.InDelta(t, 25.0, s.Metal, 1e-6)

	// A depleted zone mines nothing further
	metal := s.Metal
	eng.Tick(1)
	assert.Equal(t, metal, s.Metal)
}

func TestPurchaseProbe(t *testing.T) {
	eng := newEngine(t, 10, 1000)

	require.NoError(t, eng.PurchaseProbe(helpers.TestProbe, helpers.TestZoneOuter))
	assert.Equal(t, 1, eng.State().Probes[helpers.TestZoneOuter])
	assert.Equal(t, 900.0, eng.State().Metal)

	// Empty zone defaults to the harvest zone
	require.NoError(t, eng.PurchaseProbe(helpers.TestProbe, ""))
	assert.Equal(t, 11, eng.State().Probes[helpers.TestZoneInner])

	assert.Error(t, eng.PurchaseProbe("no_such_probe", helpers.TestZoneInner))
	assert.Error(t, eng.PurchaseProbe(helpers.TestProbe, "atlantis"))

	eng.State().Metal = 10
	var insufficient *shared.InsufficientResourceError
	assert.ErrorAs(t, eng.PurchaseProbe(helpers.TestProbe, helpers.TestZoneInner), &insufficient)
}

func TestPurchaseStructure_TogglesConstruction(t *testing.T) {
	eng := newEngine(t, 10, 1000)
	key := shared.NewConstructionKey(helpers.TestZoneInner, helpers.TestSolar)

	enabled, err := eng.PurchaseStructure(helpers.TestZoneInner, helpers.TestSolar, nil)
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.True(t, eng.State().EnabledConstruction[key])

	// nil flips, explicit value pins
	enabled, err = eng.PurchaseStructure(helpers.TestZoneInner, helpers.TestSolar, nil)
	require.NoError(t, err)
	assert.False(t, enabled)

	on := true
	enabled, err = eng.PurchaseStructure(helpers.TestZoneInner, helpers.TestSolar, &on)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestPurchaseStructure_Validation(t *testing.T) {
	eng := newEngine(t, 10, 1000)

	_, err := eng.PurchaseStructure("atlantis", helpers.TestSolar, nil)
	var invalidZone *shared.InvalidZoneError
	assert.ErrorAs(t, err, &invalidZone)

	_, err = eng.PurchaseStructure(helpers.TestZoneInner, "no_such_building", nil)
	var invalidBuilding *shared.InvalidBuildingError
	assert.ErrorAs(t, err, &invalidBuilding)

	// Mining structures can never target the Dyson construction zone
	_, err = eng.PurchaseStructure(helpers.TestZoneForge, helpers.TestAutoMiner, nil)
	var notAllowed *shared.BuildingNotAllowedError
	assert.ErrorAs(t, err, &notAllowed)

	// Failed purchases leave the build state untouched
	assert.Empty(t, eng.State().EnabledConstruction)
	assert.Empty(t, eng.State().Structures)
}

func TestPurchaseStructure_Prerequisites(t *testing.T) {
	eng := newEngine(t, 10, 1000)

	_, err := eng.PurchaseStructure(helpers.TestZoneInner, helpers.TestAdvLab, nil)
	assert.Error(t, err)

	eng.State().ZoneStructures(helpers.TestZoneInner)[helpers.TestFactory] = 1
	_, err = eng.PurchaseStructure(helpers.TestZoneInner, helpers.TestAdvLab, nil)
	assert.NoError(t, err)
}

func TestTick_StructureConstructionCompletes(t *testing.T) {
	eng := newEngine(t, 10, 1000)
	_, err := eng.AllocateProbes(helpers.TestZoneInner, sim.ZonePolicyUpdate{
		MiningSlider:      floatPtr(0),
		ReplicationSlider: floatPtr(0),
	})
	require.NoError(t, err)
	_, err = eng.PurchaseStructure(helpers.TestZoneInner, helpers.TestSolar, nil)
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		eng.Tick(1)
	}

	s := eng.State()
	assert.GreaterOrEqual(t, s.Structures[helpers.TestZoneInner][helpers.TestSolar], 1)
	assert.Less(t, s.Metal, 1000.0)
}

func TestTick_ReplicationGrowsFleet(t *testing.T) {
	eng := newEngine(t, 10, 10_000)
	_, err := eng.AllocateProbes(helpers.TestZoneInner, sim.ZonePolicyUpdate{
		MiningSlider:      floatPtr(0),
		ReplicationSlider: floatPtr(100),
	})
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		eng.Tick(1)
	}

	s := eng.State()
	assert.Greater(t, s.Probes[helpers.TestZoneInner], 10)
	assert.Less(t, s.Metal, 10_000.0)
}

func TestTick_FactoryProducesProbes(t *testing.T) {
	eng := newEngine(t, 10, 10_000)
	eng.State().ZoneStructures(helpers.TestZoneInner)[helpers.TestFactory] = 1

	eng.Tick(1)

	s := eng.State()
	// Ten probes a day at 100 kg of metal each
	assert.Equal(t, 20, s.Probes[helpers.TestZoneInner])
	assert.Less(t, s.Metal, 10_000.0-900)
}

func TestTick_DysonConstruction(t *testing.T) {
	eng := newEngine(t, 0, 10_000)
	eng.State().Probes[helpers.TestZoneForge] = 10
	_, err := eng.AllocateProbes(helpers.TestZoneForge, sim.ZonePolicyUpdate{
		DysonAllocationSlider: floatPtr(100),
	})
	require.NoError(t, err)

	eng.Tick(1)

	s := eng.State()
	assert.Greater(t, s.DysonMass, 0.0)
	// Swarm mass costs metal at the fixed ratio
	assert.InDelta(t, s.DysonMass*shared.DysonMetalPerKg, 10_000-s.Metal, 1e-6)
}

func TestTick_SlagConversion(t *testing.T) {
	eng := newEngine(t, 0, 1000)
	s := eng.State()
	s.Slag = 1000
	s.ZoneStructures(helpers.TestZoneInner)[helpers.TestSlagConverter] = 1

	eng.Tick(1)

	assert.Equal(t, 0.0, s.Slag)
	assert.InDelta(t, 1500.0, s.Metal, 1e-6)
}

func TestTick_EnergyThrottlingUnderLoad(t *testing.T) {
	eng := newEngine(t, 10, 0)
	// A deep-well zone with a huge fleet outstrips the flat base supply
	eng.State().Probes[helpers.TestZoneOuter] = 10_000_000

	eng.Tick(1)

	snap := eng.Snapshot()
	assert.True(t, snap.EnergyLimited)
	assert.Less(t, snap.Rates.MiningThrottle, 1.0)
	assert.GreaterOrEqual(t, snap.Rates.MiningThrottle, 0.0)
}

func TestTick_ResearchAccrues(t *testing.T) {
	eng := newEngine(t, 0, 1000)
	eng.State().ZoneStructures(helpers.TestZoneInner)[helpers.TestCluster] = 1
	require.NoError(t, eng.AllocateResearch(research.TreeRoboticSystems, "tier_i", true))

	eng.Tick(1)

	snap := eng.Snapshot()
	tier := snap.Research[string(research.TreeRoboticSystems)]["tier_i"]
	assert.InDelta(t, 1e-6, tier.Fractional, 1e-9)
	require.NotNil(t, tier.StartTime)
	assert.True(t, tier.Enabled)

	// Accrual is monotone tick over tick
	eng.Tick(1)
	next := eng.Snapshot().Research[string(research.TreeRoboticSystems)]["tier_i"]
	assert.Greater(t, next.Fractional, tier.Fractional)
}

func TestTick_ComputeResearchCutsComputeDraw(t *testing.T) {
	build := func(clusters int, researched bool) *sim.Engine {
		eng := newEngine(t, 0, 0)
		eng.State().ZoneStructures(helpers.TestZoneInner)[helpers.TestCluster] = clusters
		if researched {
			eng.Restore(&sim.Snapshot{
				Version: sim.SnapshotVersion,
				Research: map[string]map[string]sim.ResearchSnapshot{
					string(research.TreeComputerProcessing): {"tier_i": {
						TranchesCompleted: 10,
						MaxTranches:       10,
						Enabled:           true,
						StartTime:         floatPtr(0),
						CompletionTime:    floatPtr(0),
					}},
				},
			})
		}
		require.NoError(t, eng.AllocateResearch(research.TreeRoboticSystems, "tier_i", true))
		return eng
	}

	// With power to spare, faster hardware runs the same theoretical
	// FLOPS on fewer watts
	baseline := build(1, false).Snapshot().Rates.EnergyConsumptionW
	tuned := build(1, true).Snapshot().Rates.EnergyConsumptionW
	assert.Less(t, tuned, baseline)
	assert.Greater(t, tuned, 0.0)

	// When compute demand outstrips supply, the lower draw converts the
	// same budget into more effective FLOPS and faster accrual
	frac := func(eng *sim.Engine) float64 {
		eng.Tick(1)
		return eng.Snapshot().Research[string(research.TreeRoboticSystems)]["tier_i"].Fractional
	}
	assert.Greater(t, frac(build(200, true)), frac(build(200, false)))
}

func TestAllocateProbes(t *testing.T) {
	eng := newEngine(t, 10, 1000)

	p, err := eng.AllocateProbes(helpers.TestZoneInner, sim.ZonePolicyUpdate{
		MiningSlider: floatPtr(250),
		MinProbes:    intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.MiningSlider)
	assert.Equal(t, 5, eng.State().MinProbes[helpers.TestZoneInner])

	// Partial updates keep the untouched sliders
	p, err = eng.AllocateProbes(helpers.TestZoneInner, sim.ZonePolicyUpdate{
		ReplicationSlider: floatPtr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.MiningSlider)
	assert.Equal(t, 30.0, p.ReplicationSlider)
	assert.Equal(t, 70.0, p.ConstructionSlider)

	// Same update twice is a no-op
	again, err := eng.AllocateProbes(helpers.TestZoneInner, sim.ZonePolicyUpdate{
		ReplicationSlider: floatPtr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, p, again)

	_, err = eng.AllocateProbes("atlantis", sim.ZonePolicyUpdate{})
	assert.Error(t, err)
}

func TestGlobalSliders(t *testing.T) {
	eng := newEngine(t, 10, 1000)
	s := eng.State()

	eng.SetMineBuildSlider(100)
	assert.Equal(t, 0.0, s.Policy(helpers.TestZoneInner).MiningSlider)
	assert.Equal(t, 0.0, s.Policy(helpers.TestZoneOuter).MiningSlider)

	eng.SetEconomySlider(0)
	assert.Equal(t, 100.0, s.Policy(helpers.TestZoneForge).DysonAllocationSlider)

	eng.SetBuildAllocation(40)
	assert.Equal(t, 40.0, s.Policy(helpers.TestZoneInner).ReplicationSlider)
	assert.Equal(t, 60.0, s.Policy(helpers.TestZoneInner).ConstructionSlider)

	eng.SetDysonPowerAllocation(170)
	assert.Equal(t, 100.0, s.DysonPowerAllocation)
}

func TestRecycleFactory(t *testing.T) {
	eng := newEngine(t, 10, 0)
	eng.State().ZoneStructures(helpers.TestZoneInner)[helpers.TestAutoMiner] = 2

	metal, slag, err := eng.RecycleFactory(helpers.TestZoneInner, helpers.TestAutoMiner)
	require.NoError(t, err)
	assert.InDelta(t, 750.0, metal, 1e-9)
	assert.InDelta(t, 250.0, slag, 1e-9)
	assert.Equal(t, 1, eng.State().Structures[helpers.TestZoneInner][helpers.TestAutoMiner])
	assert.InDelta(t, 750.0, eng.State().Metal, 1e-9)

	_, _, err = eng.RecycleFactory(helpers.TestZoneInner, helpers.TestSolar)
	assert.Error(t, err)
	_, _, err = eng.RecycleFactory("atlantis", helpers.TestAutoMiner)
	assert.Error(t, err)
}

func TestSetActivityModifier(t *testing.T) {
	eng := newEngine(t, 10, 1000)

	require.NoError(t, eng.SetActivityModifier("mining", 0))
	eng.Tick(1)
	assert.Equal(t, 1000.0, eng.State().Metal)

	assert.Error(t, eng.SetActivityModifier("gardening", 1))
	assert.Error(t, eng.SetActivityModifier("mining", -1))
	assert.Error(t, eng.SetActivityModifier("mining", math.NaN()))
}

func TestCreateTransfer_KindsAndErrors(t *testing.T) {
	eng := newEngine(t, 10, 1000)

	id, err := eng.CreateTransfer(transfer.OneTime, helpers.TestZoneInner, helpers.TestZoneOuter, 5, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 5, eng.State().Probes[helpers.TestZoneInner])

	contID, err := eng.CreateTransfer(transfer.Continuous, helpers.TestZoneInner, helpers.TestZoneOuter, 0, 10)
	require.NoError(t, err)
	require.NoError(t, eng.UpdateTransfer(contID, 20))
	require.NoError(t, eng.PauseTransfer(contID, true))
	require.NoError(t, eng.ReverseTransfer(contID))
	require.NoError(t, eng.DeleteTransfer(contID))

	_, err = eng.CreateTransfer("teleport", helpers.TestZoneInner, helpers.TestZoneOuter, 5, 0)
	assert.Error(t, err)
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	eng := newEngine(t, 10, 5000)
	eng.State().ZoneStructures(helpers.TestZoneInner)[helpers.TestSolar] = 2
	_, err := eng.PurchaseStructure(helpers.TestZoneInner, helpers.TestBattery, nil)
	require.NoError(t, err)
	require.NoError(t, eng.AllocateResearch(research.TreeRoboticSystems, "tier_i", true))
	require.NoError(t, eng.SetHarvestZone(helpers.TestZoneOuter))
	require.NoError(t, eng.SetActivityModifier("research", 2))
	eng.SetDysonPowerAllocation(30)
	_, err = eng.AllocateProbes(helpers.TestZoneInner, sim.ZonePolicyUpdate{
		ReplicationSlider: floatPtr(25),
		MinProbes:         intPtr(3),
	})
	require.NoError(t, err)
	_, err = eng.CreateTransfer(transfer.OneTime, helpers.TestZoneInner, helpers.TestZoneOuter, 4, 0)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		eng.Tick(0.5)
	}

	snap := eng.Snapshot()

	restored := newEngine(t, 10, 5000)
	restored.Restore(snap)

	assert.Equal(t, snap, restored.Snapshot())
}

func TestRestore_LegacySaveMigration(t *testing.T) {
	eng := newEngine(t, 0, 0)

	eng.Restore(&sim.Snapshot{
		HarvestZone:      string(helpers.TestZoneInner),
		LegacyProbes:     map[string]int{"probe": 30, "scout": 20},
		LegacyStructures: map[string]int{string(helpers.TestSolar): 2},
		Metal:            500,
	})

	s := eng.State()
	// Global pools park in the harvest zone, aggregate counts preserved
	assert.Equal(t, 50, s.Probes[helpers.TestZoneInner])
	assert.Equal(t, 2, s.Structures[helpers.TestZoneInner][helpers.TestSolar])
	assert.Equal(t, 500.0, s.Metal)
}

func TestRestore_SanitizesBadValues(t *testing.T) {
	eng := newEngine(t, 0, 0)

	eng.Restore(&sim.Snapshot{
		TimeDays:        -5,
		Metal:           -100,
		EconomySlider:   400,
		Probes:          map[string]int{string(helpers.TestZoneInner): -3},
		FactoryProgress: map[string]float64{string(helpers.TestZoneInner): -1},
	})

	s := eng.State()
	assert.Equal(t, 0.0, s.TimeDays)
	assert.Equal(t, 0.0, s.Metal)
	assert.Equal(t, 100.0, s.EconomySlider)
	assert.Zero(t, s.Probes[helpers.TestZoneInner])
	assert.Zero(t, s.FactoryProgress[helpers.TestZoneInner])
}

func intPtr(v int) *int { return &v }
