// Package construction covers probe replication, structure building
// and factory output: everything that turns metal into hardware.
package construction

import (
	"math"

	"github.com/brachisto/brachisto-go/internal/domain/research"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
)

// Manager derives build rates and costs. Like the zone economy it is a
// pure calculator; progress counters live in the simulation state.
type Manager struct {
	provider statics.Provider
	research *research.Model
	chooser  *shared.WeightedChooser
}

func NewManager(provider statics.Provider, research *research.Model, chooser *shared.WeightedChooser) *Manager {
	return &Manager{provider: provider, research: research, chooser: chooser}
}

// BuildRate is the assembly throughput of a probe group in kg/day
func (m *Manager) BuildRate(allocatedProbes, now float64) float64 {
	if allocatedProbes <= 0 {
		return 0
	}
	return allocatedProbes * shared.ProbeBuildRateKgPerDay * m.research.BuildSkill(now)
}

// BuildEnergyDemandW converts an assembly rate to its power cost
func BuildEnergyDemandW(kgPerDay float64) float64 {
	if kgPerDay <= 0 {
		return 0
	}
	return kgPerDay * shared.BuildEnergyPerKgDayW
}

// ProbeCost returns the metal price of one probe: the factory-weighted
// average when any probe factories are running, the manual base cost
// otherwise
func (m *Manager) ProbeCost(probe statics.ProbeDef, factories []FactoryRun) float64 {
	base := probe.BaseCostMetal
	if base <= 0 {
		base = statics.DefaultProbeCostMetal
	}
	totalRate, weighted := 0.0, 0.0
	for _, f := range factories {
		if f.ProbesPerDay <= 0 {
			continue
		}
		cost := f.MetalPerProbe
		if cost <= 0 {
			cost = base
		}
		totalRate += f.ProbesPerDay
		weighted += f.ProbesPerDay * cost
	}
	if totalRate <= 0 {
		return base
	}
	return weighted / totalRate
}

// Advance accumulates deltaKg of progress against a unit cost and
// converts whole completions atomically, carrying the remainder
func Advance(progress, deltaKg, costKg float64) (newProgress float64, completed int) {
	if costKg <= 0 {
		return 0, 0
	}
	progress += deltaKg
	if progress < costKg {
		return progress, 0
	}
	completed = int(math.Floor(progress / costKg))
	return progress - float64(completed)*costKg, completed
}

// Distribute places count new probes across zones with nonzero
// replicate allocation, weighted-randomly in proportion to each zone's
// replicating headcount
func (m *Manager) Distribute(weights map[shared.ZoneID]float64, count int) map[shared.ZoneID]int {
	out := make(map[shared.ZoneID]int)
	if count <= 0 {
		return out
	}
	for i := 0; i < count; i++ {
		zone, ok := m.chooser.Pick(weights)
		if !ok {
			break
		}
		out[zone]++
	}
	return out
}

// Recycle tears a structure down for salvage. The unrecovered fraction
// of the build cost becomes slag.
func (m *Manager) Recycle(building shared.BuildingID, now float64) (metalReturned, slagProduced float64) {
	def := statics.BuildingOrDefault(m.provider, building)
	if def.CostMetal <= 0 {
		return 0, 0
	}
	eff := m.research.RecyclingEfficiency(now)
	return def.CostMetal * eff, def.CostMetal * (1 - eff)
}

// FactoryRun describes one factory type's nominal output this tick
type FactoryRun struct {
	Zone          shared.ZoneID
	Building      shared.BuildingID
	ProbesPerDay  float64
	MetalPerProbe float64
}

// FactoryRuns collects the nominal probe output of every factory,
// scaled by the player's per-factory production percentage
func (m *Manager) FactoryRuns(structures map[shared.ZoneID]map[shared.BuildingID]int, production map[shared.ZoneID]map[shared.BuildingID]float64, now float64) []FactoryRun {
	var runs []FactoryRun
	for zoneID, byBuilding := range structures {
		for buildingID, count := range byBuilding {
			if count <= 0 {
				continue
			}
			def := statics.BuildingOrDefault(m.provider, buildingID)
			if def.Effects.ProbeProductionPerDay <= 0 {
				continue
			}
			pct := 100.0
			if zoneProd, ok := production[zoneID]; ok {
				if p, ok := zoneProd[buildingID]; ok {
					pct = math.Min(100, math.Max(0, p))
				}
			}
			rate := def.Effects.ProbeProductionPerDay * float64(count) * pct / 100
			if rate <= 0 {
				continue
			}
			runs = append(runs, FactoryRun{
				Zone:          zoneID,
				Building:      buildingID,
				ProbesPerDay:  rate,
				MetalPerProbe: def.Effects.MetalPerProbe,
			})
		}
	}
	return runs
}
