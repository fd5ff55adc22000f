package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/brachisto/brachisto-go/internal/application/engine"
	"github.com/brachisto/brachisto-go/internal/application/setup"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/sim"
	"github.com/brachisto/brachisto-go/test/helpers"
)

// simulationContext drives one simulation through the same dispatcher
// the websocket and CLI adapters use
type simulationContext struct {
	service    *engine.Service
	dispatcher *setup.Dispatcher
	err        error
}

func (sx *simulationContext) reset() {
	sx.service = nil
	sx.dispatcher = nil
	sx.err = nil
}

// Setup steps

func (sx *simulationContext) aNewSimulationWithProbesAndMetal(probes, metal int) error {
	eng := sim.NewEngine(helpers.TestDataset(), sim.Config{
		InitialProbes: probes,
		InitialMetal:  float64(metal),
		StartZone:     helpers.TestZoneInner,
		ProbeType:     helpers.TestProbe,
		Seed:          1,
	})
	sx.service = engine.NewService(eng)
	m, err := setup.NewHandlerRegistry(sx.service).CreateConfiguredMediator()
	if err != nil {
		return err
	}
	sx.dispatcher = setup.NewDispatcher(m)
	return nil
}

func (sx *simulationContext) probesAreStationedInZone(count int, zone string) error {
	return sx.service.With(func(eng *sim.Engine) error {
		eng.State().Probes[shared.ZoneID(zone)] = count
		return nil
	})
}

func (sx *simulationContext) aStructureExistsInZone(building, zone string) error {
	return sx.service.With(func(eng *sim.Engine) error {
		eng.State().ZoneStructures(shared.ZoneID(zone))[shared.BuildingID(building)]++
		return nil
	})
}

func (sx *simulationContext) researchTierIsEnabled(tree, tier string) error {
	_, err := sx.dispatcher.Dispatch(context.Background(), "allocate_research", map[string]any{
		"tree": tree,
		"tier": tier,
	})
	return err
}

// Action steps

func (sx *simulationContext) theSimulationAdvancesDays(days float64) error {
	sx.service.Tick(days)
	return nil
}

func (sx *simulationContext) iPurchaseAProbeInZone(probeType, zone string) error {
	_, sx.err = sx.dispatcher.Dispatch(context.Background(), "purchase_probe", map[string]any{
		"probe_type": probeType,
		"zone":       zone,
	})
	return nil
}

func (sx *simulationContext) iStartAContinuousTransfer(from, to string, rate int) error {
	_, sx.err = sx.dispatcher.Dispatch(context.Background(), "create_transfer", map[string]any{
		"type":            "continuous",
		"from":            from,
		"to":              to,
		"rate_percentage": rate,
	})
	return nil
}

// Assertion steps

func (sx *simulationContext) theOperationShouldSucceed() error {
	if sx.err != nil {
		return fmt.Errorf("expected success, got: %w", sx.err)
	}
	return nil
}

func (sx *simulationContext) theOperationShouldFail() error {
	if sx.err == nil {
		return fmt.Errorf("expected an error, got none")
	}
	return nil
}

func (sx *simulationContext) zoneShouldHoldProbes(zone string, count int) error {
	got := sx.service.Snapshot().Probes[zone]
	if got != count {
		return fmt.Errorf("zone %s holds %d probes, expected %d", zone, got, count)
	}
	return nil
}

func (sx *simulationContext) theMetalStockpileShouldBeAbout(want float64) error {
	return stockpileShouldBeAbout("metal", sx.service.Snapshot().Metal, want)
}

func (sx *simulationContext) theSlagStockpileShouldBeAbout(want float64) error {
	return stockpileShouldBeAbout("slag", sx.service.Snapshot().Slag, want)
}

func stockpileShouldBeAbout(name string, got, want float64) error {
	if math.Abs(got-want) > 1e-6 {
		return fmt.Errorf("%s stockpile is %g kg, expected about %g kg", name, got, want)
	}
	return nil
}

func (sx *simulationContext) probesShouldBeInTransit(count int) error {
	total := 0
	for _, t := range sx.service.Snapshot().Transfers {
		for _, b := range t.InTransit {
			total += b.Count
		}
	}
	if total != count {
		return fmt.Errorf("%d probes in transit, expected %d", total, count)
	}
	return nil
}

func (sx *simulationContext) miningShouldBeEnergyLimited() error {
	snap := sx.service.Snapshot()
	if !snap.EnergyLimited {
		return fmt.Errorf("simulation is not energy limited")
	}
	if snap.Rates.MiningThrottle >= 1 {
		return fmt.Errorf("mining throttle is %g, expected below 1", snap.Rates.MiningThrottle)
	}
	return nil
}

func (sx *simulationContext) researchTierShouldShowProgress(tree, tier string) error {
	p, ok := sx.service.Snapshot().Research[tree][tier]
	if !ok {
		return fmt.Errorf("no research tier %s/%s", tree, tier)
	}
	if p.TranchesCompleted == 0 && p.Fractional <= 0 {
		return fmt.Errorf("research %s/%s shows no progress", tree, tier)
	}
	return nil
}

// RegisterSimulationSteps wires the simulation step definitions
func RegisterSimulationSteps(sc *godog.ScenarioContext) {
	sx := &simulationContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		sx.reset()
		return ctx, nil
	})

	sc.Step(`^a new simulation with (\d+) probes? and (\d+) kg of metal$`, sx.aNewSimulationWithProbesAndMetal)
	sc.Step(`^(\d+) probes are stationed in zone "([^"]*)"$`, sx.probesAreStationedInZone)
	sc.Step(`^a "([^"]*)" structure exists in zone "([^"]*)"$`, sx.aStructureExistsInZone)
	sc.Step(`^research "([^"]*)" tier "([^"]*)" is enabled$`, sx.researchTierIsEnabled)

	sc.Step(`^the simulation advances ([0-9.]+) days?$`, sx.theSimulationAdvancesDays)
	sc.Step(`^I purchase a "([^"]*)" probe in zone "([^"]*)"$`, sx.iPurchaseAProbeInZone)
	sc.Step(`^I start a continuous transfer from "([^"]*)" to "([^"]*)" at (\d+)% per day$`, sx.iStartAContinuousTransfer)

	sc.Step(`^the operation should succeed$`, sx.theOperationShouldSucceed)
	sc.Step(`^the operation should fail$`, sx.theOperationShouldFail)
	sc.Step(`^zone "([^"]*)" should hold (\d+) probes?$`, sx.zoneShouldHoldProbes)
	sc.Step(`^the metal stockpile should be about ([0-9.]+) kg$`, sx.theMetalStockpileShouldBeAbout)
	sc.Step(`^the slag stockpile should be about ([0-9.]+) kg$`, sx.theSlagStockpileShouldBeAbout)
	sc.Step(`^(\d+) probes should be in transit$`, sx.probesShouldBeInTransit)
	sc.Step(`^mining should be energy limited$`, sx.miningShouldBeEnergyLimited)
	sc.Step(`^research "([^"]*)" tier "([^"]*)" should show progress$`, sx.researchTierShouldShowProgress)
}
