package throttle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brachisto/brachisto-go/internal/domain/throttle"
)

func TestEnergy_AmpleSupply(t *testing.T) {
	f := throttle.Energy(1000, 300, 300, 100)

	assert.Equal(t, 1.0, f.Mining)
	assert.Equal(t, 1.0, f.Build)
	assert.False(t, f.Limited)
}

func TestEnergy_MiningShortfallStarvesBuild(t *testing.T) {
	f := throttle.Energy(50, 100, 50, 0)

	assert.InDelta(t, 0.5, f.Mining, 1e-12)
	assert.Equal(t, 0.0, f.Build)
	assert.True(t, f.Limited)
}

func TestEnergy_BuildGetsRemainder(t *testing.T) {
	f := throttle.Energy(150, 100, 100, 0)

	assert.Equal(t, 1.0, f.Mining)
	assert.InDelta(t, 0.5, f.Build, 1e-12)
	assert.True(t, f.Limited)
}

func TestEnergy_ComputeComesOffTheTop(t *testing.T) {
	f := throttle.Energy(100, 50, 0, 60)

	assert.InDelta(t, 0.8, f.Mining, 1e-12)
	assert.True(t, f.Limited)
}

func TestEnergy_NegativeRemainderClampsToZero(t *testing.T) {
	f := throttle.Energy(10, 100, 100, 50)

	assert.Equal(t, 0.0, f.Mining)
	assert.Equal(t, 0.0, f.Build)
	assert.True(t, f.Limited)
}

func TestEnergy_Monotonicity(t *testing.T) {
	// More available energy never lowers either factor
	prevMining, prevBuild := 0.0, 0.0
	for _, available := range []float64{0, 50, 100, 150, 200, 300, 500} {
		f := throttle.Energy(available, 100, 100, 20)
		assert.GreaterOrEqual(t, f.Mining, prevMining)
		assert.GreaterOrEqual(t, f.Build, prevBuild)
		assert.LessOrEqual(t, f.Mining, 1.0)
		assert.LessOrEqual(t, f.Build, 1.0)
		prevMining, prevBuild = f.Mining, f.Build
	}
}

func TestMetal_StockpileBuffersDeficit(t *testing.T) {
	f := throttle.Metal(10, 50, 50, 1)

	assert.Equal(t, 1.0, f.Dyson)
	assert.Equal(t, 1.0, f.Other)
	assert.False(t, f.Limited)
}

func TestMetal_IncomeCoversDemand(t *testing.T) {
	f := throttle.Metal(100, 40, 60, 0)

	assert.Equal(t, 1.0, f.Dyson)
	assert.Equal(t, 1.0, f.Other)
	assert.False(t, f.Limited)
}

func TestMetal_DysonOutranksOther(t *testing.T) {
	f := throttle.Metal(10, 20, 5, 0)

	assert.InDelta(t, 0.5, f.Dyson, 1e-12)
	assert.Equal(t, 0.0, f.Other)
	assert.True(t, f.Limited)
}

func TestMetal_OtherGetsRemainder(t *testing.T) {
	f := throttle.Metal(10, 4, 12, 0)

	assert.Equal(t, 1.0, f.Dyson)
	assert.InDelta(t, 0.5, f.Other, 1e-12)
	assert.True(t, f.Limited)
}

func TestMetal_NoDemandNoThrottle(t *testing.T) {
	f := throttle.Metal(0, 0, 0, 0)

	assert.Equal(t, 1.0, f.Dyson)
	assert.Equal(t, 1.0, f.Other)
	assert.False(t, f.Limited)
}

func TestStorage_ChargeClampsAtCapacity(t *testing.T) {
	stored, deficit := throttle.Storage(900, 1000, 500, 1)

	assert.Equal(t, 1000.0, stored)
	assert.Equal(t, 0.0, deficit)
}

func TestStorage_DischargeReportsUncoveredDeficit(t *testing.T) {
	stored, deficit := throttle.Storage(100, 1000, -300, 1)

	assert.Equal(t, 0.0, stored)
	assert.InDelta(t, 200.0, deficit, 1e-9)
}

func TestStorage_CoveredDischarge(t *testing.T) {
	stored, deficit := throttle.Storage(500, 1000, -300, 1)

	assert.InDelta(t, 200.0, stored, 1e-9)
	assert.Equal(t, 0.0, deficit)
}

func TestStorage_ZeroStepOnlyClamps(t *testing.T) {
	stored, deficit := throttle.Storage(1500, 1000, 999, 0)

	assert.Equal(t, 1000.0, stored)
	assert.Equal(t, 0.0, deficit)
}
