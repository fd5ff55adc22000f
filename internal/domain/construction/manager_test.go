package construction_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brachisto/brachisto-go/internal/domain/construction"
	"github.com/brachisto/brachisto-go/internal/domain/research"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
	"github.com/brachisto/brachisto-go/test/helpers"
)

func newManager(t *testing.T, seed int64) *construction.Manager {
	t.Helper()
	provider := helpers.TestDataset()
	res := research.NewModel(provider)
	chooser := shared.NewWeightedChooser(rand.New(rand.NewSource(seed)))
	return construction.NewManager(provider, res, chooser)
}

func TestAdvance(t *testing.T) {
	// Partial progress carries
	progress, completed := construction.Advance(0, 30, 100)
	assert.Equal(t, 30.0, progress)
	assert.Zero(t, completed)

	// Whole completions convert atomically, remainder carries
	progress, completed = construction.Advance(90, 230, 100)
	assert.InDelta(t, 20.0, progress, 1e-9)
	assert.Equal(t, 3, completed)

	// A non-positive cost resets instead of dividing by zero
	progress, completed = construction.Advance(50, 10, 0)
	assert.Zero(t, progress)
	assert.Zero(t, completed)
}

func TestBuildRate(t *testing.T) {
	m := newManager(t, 1)

	assert.Equal(t, 0.0, m.BuildRate(0, 0))
	assert.InDelta(t, 10*shared.ProbeBuildRateKgPerDay, m.BuildRate(10, 0), 1e-9)
}

func TestBuildEnergyDemandW(t *testing.T) {
	assert.Equal(t, 0.0, construction.BuildEnergyDemandW(0))
	assert.InDelta(t, 100*shared.BuildEnergyPerKgDayW, construction.BuildEnergyDemandW(100), 1e-9)
}

func TestProbeCost_ManualBaseWithoutFactories(t *testing.T) {
	m := newManager(t, 1)
	probe := statics.ProbeDef{ID: "probe", BaseCostMetal: 100}

	assert.Equal(t, 100.0, m.ProbeCost(probe, nil))
}

func TestProbeCost_FactoryWeightedAverage(t *testing.T) {
	m := newManager(t, 1)
	probe := statics.ProbeDef{ID: "probe", BaseCostMetal: 100}

	runs := []construction.FactoryRun{
		{Zone: helpers.TestZoneInner, Building: helpers.TestFactory, ProbesPerDay: 10, MetalPerProbe: 50},
		{Zone: helpers.TestZoneOuter, Building: helpers.TestFactory, ProbesPerDay: 30, MetalPerProbe: 150},
	}
	assert.InDelta(t, 125.0, m.ProbeCost(probe, runs), 1e-9)
}

func TestProbeCost_ZeroCostRunFallsBackToBase(t *testing.T) {
	m := newManager(t, 1)
	probe := statics.ProbeDef{ID: "probe", BaseCostMetal: 80}

	runs := []construction.FactoryRun{
		{Zone: helpers.TestZoneInner, Building: helpers.TestFactory, ProbesPerDay: 5},
	}
	assert.Equal(t, 80.0, m.ProbeCost(probe, runs))
}

func TestDistribute_AllProbesPlaced(t *testing.T) {
	m := newManager(t, 1)

	weights := map[shared.ZoneID]float64{
		helpers.TestZoneInner: 3,
		helpers.TestZoneOuter: 1,
	}
	placed := m.Distribute(weights, 200)

	total := 0
	for _, n := range placed {
		total += n
	}
	assert.Equal(t, 200, total)
	// With a 3:1 weight ratio over 200 draws both zones get probes
	assert.Greater(t, placed[helpers.TestZoneInner], placed[helpers.TestZoneOuter])
	assert.Greater(t, placed[helpers.TestZoneOuter], 0)
}

func TestDistribute_DeterministicForEqualSeeds(t *testing.T) {
	weights := map[shared.ZoneID]float64{
		helpers.TestZoneInner: 1,
		helpers.TestZoneOuter: 2,
	}

	first := newManager(t, 42).Distribute(weights, 50)
	second := newManager(t, 42).Distribute(weights, 50)
	assert.Equal(t, first, second)
}

func TestDistribute_EmptyWeightsPlacesNothing(t *testing.T) {
	m := newManager(t, 1)

	assert.Empty(t, m.Distribute(nil, 10))
	assert.Empty(t, m.Distribute(map[shared.ZoneID]float64{helpers.TestZoneInner: 1}, 0))
}

func TestRecycle_SplitsCostBySalvageRate(t *testing.T) {
	m := newManager(t, 1)

	// auto_miner costs 1000; base salvage rate is 75%
	metal, slag := m.Recycle(helpers.TestAutoMiner, 0)
	assert.InDelta(t, 750.0, metal, 1e-9)
	assert.InDelta(t, 250.0, slag, 1e-9)

	// Unknown buildings have no cost and no salvage
	metal, slag = m.Recycle("no_such_building", 0)
	assert.Zero(t, metal)
	assert.Zero(t, slag)
}

func TestFactoryRuns(t *testing.T) {
	m := newManager(t, 1)

	structures := map[shared.ZoneID]map[shared.BuildingID]int{
		helpers.TestZoneInner: {helpers.TestFactory: 2, helpers.TestSolar: 1},
		helpers.TestZoneOuter: {helpers.TestFactory: 1},
	}
	production := map[shared.ZoneID]map[shared.BuildingID]float64{
		helpers.TestZoneInner: {helpers.TestFactory: 50},
	}

	runs := m.FactoryRuns(structures, production, 0)
	require.Len(t, runs, 2)

	byZone := make(map[shared.ZoneID]construction.FactoryRun)
	for _, r := range runs {
		byZone[r.Zone] = r
	}
	// 10/day per factory, two factories at half production
	assert.InDelta(t, 10.0, byZone[helpers.TestZoneInner].ProbesPerDay, 1e-9)
	// Default production is full
	assert.InDelta(t, 10.0, byZone[helpers.TestZoneOuter].ProbesPerDay, 1e-9)
	assert.Equal(t, 100.0, byZone[helpers.TestZoneInner].MetalPerProbe)
}

func TestFactoryRuns_ZeroProductionExcluded(t *testing.T) {
	m := newManager(t, 1)

	structures := map[shared.ZoneID]map[shared.BuildingID]int{
		helpers.TestZoneInner: {helpers.TestFactory: 1},
	}
	production := map[shared.ZoneID]map[shared.BuildingID]float64{
		helpers.TestZoneInner: {helpers.TestFactory: 0},
	}
	assert.Empty(t, m.FactoryRuns(structures, production, 0))
}
