package transfer_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brachisto/brachisto-go/internal/domain/research"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/transfer"
	"github.com/brachisto/brachisto-go/test/helpers"
)

func newSystem(t *testing.T) *transfer.System {
	t.Helper()
	provider := helpers.TestDataset()
	res := research.NewModel(provider)
	seq := 0
	return transfer.NewSystem(provider, res, transfer.WithIDGenerator(func() string {
		seq++
		return fmt.Sprintf("transfer-%d", seq)
	}))
}

func probePool(inner, outer int) map[shared.ZoneID]int {
	return map[shared.ZoneID]int{
		helpers.TestZoneInner: inner,
		helpers.TestZoneOuter: outer,
	}
}

func totalProbes(probes map[shared.ZoneID]int, s *transfer.System) int {
	total := s.InTransitTotal()
	for _, n := range probes {
		total += n
	}
	return total
}

func TestTransitDays_ReferenceRouteTakesBaseTime(t *testing.T) {
	s := newSystem(t)

	// Forge to the closest ordinary zone is the calibration route
	days := s.TransitDays(helpers.TestZoneForge, helpers.TestZoneInner, nil, 0)
	assert.InDelta(t, shared.BaseTransferDays, days, 1e-6)

	// Symmetric in direction
	back := s.TransitDays(helpers.TestZoneInner, helpers.TestZoneForge, nil, 0)
	assert.InDelta(t, days, back, 1e-9)
}

func TestTransitDays_LongerRoutesTakeLonger(t *testing.T) {
	s := newSystem(t)

	short := s.TransitDays(helpers.TestZoneForge, helpers.TestZoneInner, nil, 0)
	long := s.TransitDays(helpers.TestZoneInner, helpers.TestZoneOuter, nil, 0)
	assert.Greater(t, long, short)
}

func TestTransitDays_MassDriversStack(t *testing.T) {
	s := newSystem(t)

	base := s.TransitDays(helpers.TestZoneInner, helpers.TestZoneOuter, nil, 0)
	one := s.TransitDays(helpers.TestZoneInner, helpers.TestZoneOuter,
		map[shared.BuildingID]int{helpers.TestMassDriver: 1}, 0)
	two := s.TransitDays(helpers.TestZoneInner, helpers.TestZoneOuter,
		map[shared.BuildingID]int{helpers.TestMassDriver: 2}, 0)

	assert.InDelta(t, base*0.75, one, 1e-6)
	assert.InDelta(t, base*0.75*0.75, two, 1e-6)
}

func TestTransitDays_FloorLimitsStructureStacking(t *testing.T) {
	s := newSystem(t)

	base := s.TransitDays(helpers.TestZoneInner, helpers.TestZoneOuter, nil, 0)
	floored := s.TransitDays(helpers.TestZoneInner, helpers.TestZoneOuter,
		map[shared.BuildingID]int{helpers.TestMassDriver: 20}, 0)

	assert.InDelta(t, base*shared.TransferTimeFloor, floored, 1e-6)
}

func TestTransitDays_WormholeBypassesFloor(t *testing.T) {
	s := newSystem(t)

	base := s.TransitDays(helpers.TestZoneInner, helpers.TestZoneOuter, nil, 0)
	warped := s.TransitDays(helpers.TestZoneInner, helpers.TestZoneOuter,
		map[shared.BuildingID]int{helpers.TestWormholeGate: 1}, 0)

	assert.InDelta(t, base*shared.WormholeTimeFactor, warped, 1e-9)
	assert.Less(t, warped, base*shared.TransferTimeFloor)
}

func TestCreateOneTime_DebitsSourceImmediately(t *testing.T) {
	s := newSystem(t)
	probes := probePool(100, 0)

	tr, err := s.CreateOneTime(helpers.TestZoneInner, helpers.TestZoneOuter, 40, 0, probes, nil)
	require.NoError(t, err)

	assert.Equal(t, "transfer-1", tr.ID)
	assert.Equal(t, 60, probes[helpers.TestZoneInner])
	assert.Equal(t, 40, tr.InFlight())
	assert.Equal(t, 140, totalProbes(probes, s))
}

func TestCreateOneTime_Validation(t *testing.T) {
	s := newSystem(t)
	probes := probePool(10, 0)

	_, err := s.CreateOneTime(helpers.TestZoneInner, helpers.TestZoneInner, 5, 0, probes, nil)
	assert.Error(t, err)

	_, err = s.CreateOneTime("nowhere", helpers.TestZoneOuter, 5, 0, probes, nil)
	var invalidZone *shared.InvalidZoneError
	assert.ErrorAs(t, err, &invalidZone)

	_, err = s.CreateOneTime(helpers.TestZoneInner, helpers.TestZoneOuter, 0, 0, probes, nil)
	assert.Error(t, err)

	_, err = s.CreateOneTime(helpers.TestZoneInner, helpers.TestZoneOuter, 11, 0, probes, nil)
	var insufficient *shared.InsufficientResourceError
	assert.ErrorAs(t, err, &insufficient)

	// Failed creations never touch the pool
	assert.Equal(t, 10, probes[helpers.TestZoneInner])
}

func TestTick_OneTimeArrivalAndSelfDelete(t *testing.T) {
	s := newSystem(t)
	probes := probePool(100, 0)

	tr, err := s.CreateOneTime(helpers.TestZoneInner, helpers.TestZoneOuter, 40, 0, probes, nil)
	require.NoError(t, err)
	transit := s.TransitDays(helpers.TestZoneInner, helpers.TestZoneOuter, nil, 0)

	// Before arrival nothing lands
	s.Tick(transit/2, 1, probes, nil)
	assert.Equal(t, 0, probes[helpers.TestZoneOuter])
	assert.Equal(t, 140, totalProbes(probes, s))

	// At arrival the batch lands and the transfer removes itself
	s.Tick(transit+1, 1, probes, nil)
	assert.Equal(t, 40, probes[helpers.TestZoneOuter])
	assert.Equal(t, 140, totalProbes(probes, s))
	_, ok := s.Get(tr.ID)
	assert.False(t, ok)
}

func TestCreateContinuous_SendsRateFractionPerDay(t *testing.T) {
	s := newSystem(t)
	probes := probePool(100, 0)

	tr, err := s.CreateContinuous(helpers.TestZoneInner, helpers.TestZoneOuter, 10, 0)
	require.NoError(t, err)

	s.Tick(1, 1, probes, nil)
	assert.Equal(t, 90, probes[helpers.TestZoneInner])
	assert.Equal(t, 10, tr.InFlight())
	assert.Equal(t, 140, totalProbes(probes, s))

	// The pipeline persists after sending
	_, ok := s.Get(tr.ID)
	assert.True(t, ok)
}

func TestCreateContinuous_FractionalAccrual(t *testing.T) {
	s := newSystem(t)
	probes := probePool(5, 0)

	tr, err := s.CreateContinuous(helpers.TestZoneInner, helpers.TestZoneOuter, 10, 0)
	require.NoError(t, err)

	// Half a probe per day accrues without sending
	s.Tick(1, 1, probes, nil)
	assert.Equal(t, 5, probes[helpers.TestZoneInner])
	assert.InDelta(t, 0.5, tr.Fractional, 1e-9)

	// The carried fraction tips the next day over one whole probe
	s.Tick(2, 1, probes, nil)
	assert.Equal(t, 4, probes[helpers.TestZoneInner])
	assert.Equal(t, 1, tr.InFlight())
}

func TestCreateContinuous_RateValidation(t *testing.T) {
	s := newSystem(t)

	_, err := s.CreateContinuous(helpers.TestZoneInner, helpers.TestZoneOuter, 0, 0)
	assert.Error(t, err)
	_, err = s.CreateContinuous(helpers.TestZoneInner, helpers.TestZoneOuter, 101, 0)
	assert.Error(t, err)
}

func TestUpdateRate(t *testing.T) {
	s := newSystem(t)
	probes := probePool(100, 0)

	cont, err := s.CreateContinuous(helpers.TestZoneInner, helpers.TestZoneOuter, 10, 0)
	require.NoError(t, err)
	require.NoError(t, s.UpdateRate(cont.ID, 25))
	assert.Equal(t, 25.0, cont.RatePercentage)

	assert.Error(t, s.UpdateRate(cont.ID, 0))
	assert.Error(t, s.UpdateRate(cont.ID, 250))

	oneTime, err := s.CreateOneTime(helpers.TestZoneInner, helpers.TestZoneOuter, 5, 0, probes, nil)
	require.NoError(t, err)
	assert.Error(t, s.UpdateRate(oneTime.ID, 10))

	var notFound *shared.TransferNotFoundError
	assert.ErrorAs(t, s.UpdateRate("missing", 10), &notFound)
}

func TestSetPaused_StopsSendsButNotArrivals(t *testing.T) {
	s := newSystem(t)
	probes := probePool(100, 0)

	tr, err := s.CreateContinuous(helpers.TestZoneInner, helpers.TestZoneOuter, 10, 0)
	require.NoError(t, err)
	transit := s.TransitDays(helpers.TestZoneInner, helpers.TestZoneOuter, nil, 0)

	s.Tick(1, 1, probes, nil)
	require.Equal(t, 10, tr.InFlight())

	require.NoError(t, s.SetPaused(tr.ID, true))
	s.Tick(2, 1, probes, nil)
	assert.Equal(t, 90, probes[helpers.TestZoneInner])

	// The paused pipeline still delivers its in-flight batch
	s.Tick(transit+2, 1, probes, nil)
	assert.Equal(t, 10, probes[helpers.TestZoneOuter])
	assert.Equal(t, 0, tr.InFlight())
}

func TestReverse_SwapsEndpointsForFutureSends(t *testing.T) {
	s := newSystem(t)
	probes := probePool(100, 50)

	tr, err := s.CreateContinuous(helpers.TestZoneInner, helpers.TestZoneOuter, 10, 0)
	require.NoError(t, err)
	s.Tick(1, 1, probes, nil)
	require.Equal(t, 10, tr.InFlight())

	require.NoError(t, s.Reverse(tr.ID))
	assert.Equal(t, helpers.TestZoneOuter, tr.From)
	assert.Equal(t, helpers.TestZoneInner, tr.To)
	assert.Equal(t, 0.0, tr.Fractional)

	// The batch already in flight keeps its original destination
	assert.Equal(t, helpers.TestZoneOuter, tr.InTransit[0].Destination)
}

func TestDelete_ReturnsInFlightProbesToSource(t *testing.T) {
	s := newSystem(t)
	probes := probePool(100, 0)

	tr, err := s.CreateOneTime(helpers.TestZoneInner, helpers.TestZoneOuter, 40, 0, probes, nil)
	require.NoError(t, err)

	require.NoError(t, s.Delete(tr.ID, probes))
	assert.Equal(t, 100, probes[helpers.TestZoneInner])
	assert.Equal(t, 0, s.InTransitTotal())
	assert.Empty(t, s.List())

	var notFound *shared.TransferNotFoundError
	assert.ErrorAs(t, s.Delete("missing", probes), &notFound)
}

func TestList_PreservesCreationOrder(t *testing.T) {
	s := newSystem(t)

	first, _ := s.CreateContinuous(helpers.TestZoneInner, helpers.TestZoneOuter, 5, 0)
	second, _ := s.CreateContinuous(helpers.TestZoneOuter, helpers.TestZoneInner, 5, 0)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}
