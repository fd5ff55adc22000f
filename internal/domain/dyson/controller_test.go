package dyson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brachisto/brachisto-go/internal/domain/dyson"
	"github.com/brachisto/brachisto-go/internal/domain/research"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/test/helpers"
)

func newController(t *testing.T) (*dyson.Controller, *research.Model) {
	t.Helper()
	res := research.NewModel(helpers.TestDataset())
	return dyson.NewController(res), res
}

func floatPtr(v float64) *float64 { return &v }

func TestTargetMass_BaseWithoutResearch(t *testing.T) {
	c, _ := newController(t)
	assert.Equal(t, shared.DysonBaseTargetKg, c.TargetMass(0))
}

func TestTargetMass_ResearchShavesAtMostHalf(t *testing.T) {
	c, res := newController(t)
	// A long-finished construction tier compounds into an enormous bonus;
	// the target still bottoms out at half the base mass
	res.Restore(research.TreeDysonConstruction, "tier_i", research.Progress{
		TranchesCompleted: 10, MaxTranches: 10, Enabled: true,
		StartTime: floatPtr(0), CompletionTime: floatPtr(0),
	})

	target := c.TargetMass(10_000)
	assert.Equal(t, shared.DysonBaseTargetKg*(1-shared.DysonTargetFloorCut), target)
}

func TestOutputW(t *testing.T) {
	c, _ := newController(t)

	assert.Equal(t, 0.0, c.OutputW(0, 0))
	assert.InDelta(t, 1e6*shared.DysonPowerPerKgW, c.OutputW(1e6, 0), 1e-3)

	// At or past target the swarm captures the star's full output
	assert.Equal(t, shared.SunTotalOutputW, c.OutputW(c.TargetMass(0), 0))
	assert.Equal(t, shared.SunTotalOutputW, c.OutputW(1e30, 0))
}

func TestSplitPower(t *testing.T) {
	c, _ := newController(t)
	const outputW = 1e9

	all := c.SplitPower(outputW, 0)
	assert.Equal(t, outputW, all.EconomyW)
	assert.Equal(t, 0.0, all.ComputeFlops)

	half := c.SplitPower(outputW, 25)
	assert.InDelta(t, outputW/2, half.EconomyW, 1e-3)
	assert.InDelta(t, outputW/2*shared.FlopsPerWatt, half.ComputeFlops, 1)

	pivot := c.SplitPower(outputW, 50)
	assert.Equal(t, 0.0, pivot.EconomyW)
	assert.InDelta(t, outputW*shared.FlopsPerWatt, pivot.ComputeFlops, 1)

	// Past the midpoint the overclock curve adds up to +50% at full slider
	maxed := c.SplitPower(outputW, 100)
	assert.Equal(t, 0.0, maxed.EconomyW)
	assert.InDelta(t, 1.5*outputW*shared.FlopsPerWatt, maxed.ComputeFlops, 1)

	// Out-of-range sliders clamp
	assert.Equal(t, c.SplitPower(outputW, 0), c.SplitPower(outputW, -10))
	assert.Equal(t, c.SplitPower(outputW, 100), c.SplitPower(outputW, 400))

	assert.Equal(t, dyson.PowerSplit{}, c.SplitPower(0, 50))
}

func TestAdvance_ConsumesMetalAtFixedRatio(t *testing.T) {
	c, _ := newController(t)

	res := c.Advance(0, 1000, 1e9, 1, 0)
	assert.InDelta(t, 1000.0, res.MassAdded, 1e-9)
	assert.InDelta(t, 1000*shared.DysonMetalPerKg, res.MetalConsumed, 1e-9)
	assert.Equal(t, 0.0, res.IdleFraction)
}

func TestAdvance_MetalScarcityScalesDown(t *testing.T) {
	c, _ := newController(t)

	// Wants 500 kg of metal but only 100 is available
	res := c.Advance(0, 1000, 100, 1, 0)
	assert.InDelta(t, 200.0, res.MassAdded, 1e-9)
	assert.InDelta(t, 100.0, res.MetalConsumed, 1e-9)
	assert.InDelta(t, 0.8, res.IdleFraction, 1e-9)

	// No metal at all: nothing built, fully idle
	res = c.Advance(0, 1000, 0, 1, 0)
	assert.Equal(t, 0.0, res.MassAdded)
	assert.Equal(t, 1.0, res.IdleFraction)
}

func TestAdvance_NeverOvershootsTarget(t *testing.T) {
	c, _ := newController(t)
	target := c.TargetMass(0)

	res := c.Advance(target-100, 1e30, 1e30, 1e6, 0)
	assert.InDelta(t, 100.0, res.MassAdded, 1e-6)

	// At target construction stops entirely
	res = c.Advance(target, 1e30, 1e30, 1, 0)
	assert.Equal(t, dyson.AdvanceResult{}, res)
}

func TestAdvance_IgnoresBadInputs(t *testing.T) {
	c, _ := newController(t)

	assert.Equal(t, dyson.AdvanceResult{}, c.Advance(0, 0, 1e9, 1, 0))
	assert.Equal(t, dyson.AdvanceResult{}, c.Advance(0, 1000, 1e9, 0, 0))
}
