package research_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brachisto/brachisto-go/internal/domain/research"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/test/helpers"
)

func newModel(t *testing.T) *research.Model {
	t.Helper()
	return research.NewModel(helpers.TestDataset())
}

func floatPtr(v float64) *float64 { return &v }

func TestNewModel_StartsDisabledWithNullTimes(t *testing.T) {
	m := newModel(t)

	state, ok := m.Tier(research.TreeRoboticSystems, "tier_i")
	require.True(t, ok)
	assert.False(t, state.Enabled)
	assert.Zero(t, state.TranchesCompleted)
	assert.Equal(t, 10, state.MaxTranches)
	assert.Nil(t, state.StartTime)
	assert.Nil(t, state.CompletionTime)
}

func TestEnableTier_UnknownTierFails(t *testing.T) {
	m := newModel(t)

	err := m.EnableTier("no_such_tree", "tier_i", true)
	var invalid *shared.InvalidResearchError
	assert.ErrorAs(t, err, &invalid)

	assert.NoError(t, m.EnableTier(research.TreeRoboticSystems, "tier_i", true))
}

func TestEnableCategory(t *testing.T) {
	m := newModel(t)

	count, err := m.EnableCategory("intelligence", true)
	require.NoError(t, err)
	// four computer trees, two tiers each
	assert.Equal(t, 8, count)

	state, _ := m.Tier(research.TreeComputerGPU, "tier_ii")
	assert.True(t, state.Enabled)

	_, err = m.EnableCategory("botany", true)
	assert.Error(t, err)
}

func TestEligibleCount_PrerequisiteGating(t *testing.T) {
	m := newModel(t)
	assert.Zero(t, m.EligibleCount())

	// Tier II alone is gated behind its incomplete tier I
	require.NoError(t, m.EnableTier(research.TreeRoboticSystems, "tier_ii", true))
	assert.Zero(t, m.EligibleCount())

	require.NoError(t, m.EnableTier(research.TreeRoboticSystems, "tier_i", true))
	assert.Equal(t, 1, m.EligibleCount())

	// Completing tier I unlocks tier II
	m.Restore(research.TreeRoboticSystems, "tier_i", research.Progress{
		TranchesCompleted: 10, MaxTranches: 10, Enabled: true,
		StartTime: floatPtr(0), CompletionTime: floatPtr(5),
	})
	assert.Equal(t, 1, m.EligibleCount())

	state, _ := m.Tier(research.TreeRoboticSystems, "tier_ii")
	assert.False(t, state.Complete())
}

func TestAccrue_ProgressFromBudget(t *testing.T) {
	m := newModel(t)
	require.NoError(t, m.EnableTier(research.TreeRoboticSystems, "tier_i", true))

	// 1e16 FLOPS for a day against the 1e22 base cost: 1e-6 of the tier,
	// times 10 tranches
	m.Accrue(0, 1, 1e16)

	state, _ := m.Tier(research.TreeRoboticSystems, "tier_i")
	assert.InDelta(t, 1e-5, state.Fractional, 1e-12)
	require.NotNil(t, state.StartTime)
	assert.Equal(t, 0.0, *state.StartTime)
}

func TestAccrue_DailyCapLimitsProgress(t *testing.T) {
	m := newModel(t)
	require.NoError(t, m.EnableTier(research.TreeRoboticSystems, "tier_i", true))

	// An absurd compute surplus still cannot beat the daily cap
	m.Accrue(0, 1, 1e40)

	state, _ := m.Tier(research.TreeRoboticSystems, "tier_i")
	assert.InDelta(t, shared.ResearchDailyProgressCap*10, state.Fractional, 1e-12)
}

func TestAccrue_BudgetSplitsAcrossProjects(t *testing.T) {
	m := newModel(t)
	require.NoError(t, m.EnableTier(research.TreeRoboticSystems, "tier_i", true))
	require.NoError(t, m.EnableTier(research.TreeACDS, "tier_i", true))

	m.Accrue(0, 1, 2e16)

	a, _ := m.Tier(research.TreeRoboticSystems, "tier_i")
	b, _ := m.Tier(research.TreeACDS, "tier_i")
	assert.InDelta(t, a.Fractional, b.Fractional, 1e-15)
	assert.InDelta(t, 1e-5, a.Fractional, 1e-12)
}

func TestAccrue_MonotonicAndCompletesOnce(t *testing.T) {
	m := newModel(t)
	require.NoError(t, m.EnableTier(research.TreeRoboticSystems, "tier_i", true))

	// Park the tier just short of done, then push it over
	m.Restore(research.TreeRoboticSystems, "tier_i", research.Progress{
		TranchesCompleted: 9, MaxTranches: 10, Enabled: true,
		StartTime: floatPtr(0), Fractional: 0.9995,
	})
	m.Accrue(100, 10, 1e40)

	state, _ := m.Tier(research.TreeRoboticSystems, "tier_i")
	assert.True(t, state.Complete())
	assert.Equal(t, 10, state.TranchesCompleted)
	assert.Equal(t, 0.0, state.Fractional)
	require.NotNil(t, state.CompletionTime)
	completedAt := *state.CompletionTime

	// Further accrual never moves a finished tier
	m.Accrue(200, 10, 1e40)
	state, _ = m.Tier(research.TreeRoboticSystems, "tier_i")
	assert.Equal(t, 10, state.TranchesCompleted)
	assert.Equal(t, completedAt, *state.CompletionTime)
}

func TestBonus_CompoundsFromStart(t *testing.T) {
	m := newModel(t)
	m.Restore(research.TreeRoboticSystems, "tier_i", research.Progress{
		MaxTranches: 10, Enabled: true, StartTime: floatPtr(0),
	})

	// In-progress: base bonus compounding continuously at 20%/day
	assert.InDelta(t, 0.25, m.Bonus(research.TreeRoboticSystems, 0), 1e-9)
	assert.InDelta(t, 0.25*math.Exp(1), m.Bonus(research.TreeRoboticSystems, 5), 1e-9)

	// Monotone in time
	prev := 0.0
	for _, now := range []float64{0, 1, 5, 20, 100} {
		b := m.Bonus(research.TreeRoboticSystems, now)
		assert.Greater(t, b, prev)
		prev = b
	}
}

func TestBonus_DoublesOnCompletion(t *testing.T) {
	m := newModel(t)
	m.Restore(research.TreeRoboticSystems, "tier_i", research.Progress{
		TranchesCompleted: 10, MaxTranches: 10, Enabled: true,
		StartTime: floatPtr(0), CompletionTime: floatPtr(5),
	})

	// Compounding restarts from the completion time on a doubled principal
	assert.InDelta(t, 0.5, m.Bonus(research.TreeRoboticSystems, 5), 1e-9)
	assert.InDelta(t, 0.5*math.Exp(1), m.Bonus(research.TreeRoboticSystems, 10), 1e-9)
}

func TestBonus_TiersCompoundMultiplicatively(t *testing.T) {
	m := newModel(t)
	m.Restore(research.TreeRoboticSystems, "tier_i", research.Progress{
		MaxTranches: 10, Enabled: true, StartTime: floatPtr(0),
	})
	m.Restore(research.TreeRoboticSystems, "tier_ii", research.Progress{
		MaxTranches: 10, Enabled: true, StartTime: floatPtr(0),
	})

	// (1+0.25)(1+0.5) - 1 at time zero
	assert.InDelta(t, 0.875, m.Bonus(research.TreeRoboticSystems, 0), 1e-9)
}

func TestBonus_StaysFiniteOnLongRuns(t *testing.T) {
	m := newModel(t)
	m.Restore(research.TreeRoboticSystems, "tier_i", research.Progress{
		MaxTranches: 10, Enabled: true, StartTime: floatPtr(0),
	})

	b := m.Bonus(research.TreeRoboticSystems, 1e9)
	assert.False(t, math.IsInf(b, 0))
	assert.False(t, math.IsNaN(b))
}

func TestSkills_FreshModelIsNeutral(t *testing.T) {
	m := newModel(t)

	assert.Equal(t, 1.0, m.BuildSkill(0))
	assert.Equal(t, 1.0, m.MiningSkill(0))
	assert.Equal(t, 1.0, m.ComputePower(0))
	assert.Equal(t, shared.RecyclingBaseEfficiency, m.RecyclingEfficiency(0))
}

func TestRecyclingEfficiency_Ceiling(t *testing.T) {
	m := newModel(t)
	m.Restore(research.TreeRecyclingEfficiency, "tier_i", research.Progress{
		TranchesCompleted: 10, MaxTranches: 10, Enabled: true,
		StartTime: floatPtr(0), CompletionTime: floatPtr(0),
	})

	assert.Equal(t, shared.RecyclingMaxEfficiency, m.RecyclingEfficiency(1e6))
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	m := newModel(t)
	require.NoError(t, m.EnableTier(research.TreeEnergyStorage, "tier_i", true))
	m.Accrue(3, 1, 1e16)

	snap := m.Snapshot()

	restored := newModel(t)
	for treeID, byTier := range snap {
		for tierID, p := range byTier {
			restored.Restore(treeID, tierID, p)
		}
	}

	orig, _ := m.Tier(research.TreeEnergyStorage, "tier_i")
	copied, _ := restored.Tier(research.TreeEnergyStorage, "tier_i")
	assert.Equal(t, orig.Enabled, copied.Enabled)
	assert.Equal(t, orig.Fractional, copied.Fractional)
	require.NotNil(t, copied.StartTime)
	assert.Equal(t, *orig.StartTime, *copied.StartTime)
}

func TestRestore_IgnoresUnknownTiers(t *testing.T) {
	m := newModel(t)
	m.Restore("deleted_tree", "tier_i", research.Progress{TranchesCompleted: 5})

	_, ok := m.Tier("deleted_tree", "tier_i")
	assert.False(t, ok)
}
