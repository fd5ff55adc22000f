// Package research tracks per-tier research enablement and progress and
// computes the exponential bonus compounding applied across the rest of
// the simulation.
package research

import (
	"math"
	"sort"

	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
)

// Well-known research trees referenced by the simulation formulas.
// Unknown trees still work through the generic accessors; these are the
// ones with hardwired call sites.
const (
	TreeRoboticSystems       shared.TreeID = "robotic_systems"
	TreeLocomotionSystems    shared.TreeID = "locomotion_systems"
	TreeACDS                 shared.TreeID = "acds"
	TreePropulsionSystems    shared.TreeID = "propulsion_systems"
	TreeProductionEfficiency shared.TreeID = "production_efficiency"
	TreeRecyclingEfficiency  shared.TreeID = "recycling_efficiency"
	TreeEnergyCollection     shared.TreeID = "energy_collection"
	TreeSolarConcentrators   shared.TreeID = "solar_concentrators"
	TreeEnergyStorage        shared.TreeID = "energy_storage"
	TreeDysonConstruction    shared.TreeID = "dyson_swarm_construction"
	TreeComputerProcessing   shared.TreeID = "computer_processing"
	TreeComputerGPU          shared.TreeID = "computer_gpu"
	TreeComputerInterconnect shared.TreeID = "computer_interconnect"
	TreeComputerInterface    shared.TreeID = "computer_interface"
)

// TierState is the mutable progress record for one research tier
type TierState struct {
	TranchesCompleted int
	MaxTranches       int
	Enabled           bool
	StartTime         *float64
	CompletionTime    *float64
	Fractional        float64 // partial tranche carried across ticks, in [0,1)
}

// Complete reports whether every tranche has been finished
func (t *TierState) Complete() bool {
	return t.TranchesCompleted >= t.MaxTranches
}

// Model owns the research state for one simulation
type Model struct {
	provider statics.Provider
	tiers    map[shared.TreeID]map[shared.TierID]*TierState
}

// NewModel initializes a disabled, zero-progress state for every tier
// the provider knows about
func NewModel(provider statics.Provider) *Model {
	m := &Model{
		provider: provider,
		tiers:    make(map[shared.TreeID]map[shared.TierID]*TierState),
	}
	for _, tree := range provider.ResearchTrees() {
		byTier := make(map[shared.TierID]*TierState, len(tree.Tiers))
		for _, tier := range tree.Tiers {
			byTier[tier.ID] = &TierState{MaxTranches: maxTranchesOrDefault(tier)}
		}
		m.tiers[tree.ID] = byTier
	}
	return m
}

func maxTranchesOrDefault(tier statics.ResearchTierDef) int {
	if tier.Tranches > 0 {
		return tier.Tranches
	}
	return 10
}

// EnableTier toggles a single research tier
func (m *Model) EnableTier(tree shared.TreeID, tier shared.TierID, enabled bool) error {
	state, ok := m.tiers[tree][tier]
	if !ok {
		return shared.NewInvalidResearchError(tree, tier)
	}
	state.Enabled = enabled
	return nil
}

// EnableCategory toggles every tier of every tree in a category and
// returns how many tiers changed
func (m *Model) EnableCategory(category string, enabled bool) (int, error) {
	count := 0
	for _, tree := range m.provider.ResearchTrees() {
		if tree.Category != category {
			continue
		}
		for _, tier := range tree.Tiers {
			if state, ok := m.tiers[tree.ID][tier.ID]; ok {
				state.Enabled = enabled
				count++
			}
		}
	}
	if count == 0 {
		return 0, shared.NewInvalidParameterError("category", "no research trees in category "+category)
	}
	return count, nil
}

// Tier returns the state record for one tier
func (m *Model) Tier(tree shared.TreeID, tier shared.TierID) (*TierState, bool) {
	state, ok := m.tiers[tree][tier]
	return state, ok
}

type project struct {
	tree      shared.TreeID
	tierIndex int
	def       statics.ResearchTierDef
	state     *TierState
}

// eligible returns enabled, incomplete projects whose previous tier in
// the same tree is complete, in deterministic order
func (m *Model) eligible() []project {
	var out []project
	trees := m.provider.ResearchTrees()
	sort.Slice(trees, func(i, j int) bool { return trees[i].ID < trees[j].ID })
	for _, tree := range trees {
		for idx, tier := range tree.Tiers {
			state, ok := m.tiers[tree.ID][tier.ID]
			if !ok || !state.Enabled || state.Complete() {
				continue
			}
			if idx > 0 {
				prev, ok := m.tiers[tree.ID][tree.Tiers[idx-1].ID]
				if !ok || !prev.Complete() {
					continue
				}
			}
			out = append(out, project{tree: tree.ID, tierIndex: idx, def: tier, state: state})
		}
	}
	return out
}

// EligibleCount reports how many projects would share the FLOPS budget
// this tick. Zero means research draws no compute.
func (m *Model) EligibleCount() int {
	return len(m.eligible())
}

// tierCostFlops is the FLOP-day price of a tier by its 0-based position
// within its tree
func tierCostFlops(tierIndex int) float64 {
	return shared.ResearchTierBaseCostFlops * math.Pow(shared.ResearchTierCostGrowth, float64(tierIndex))
}

// Accrue advances every eligible project by an equal share of the FLOPS
// budget. Progress per project is additionally rate-limited so compute
// surplus cannot finish a tier faster than its daily cap allows.
func (m *Model) Accrue(now, deltaDays, flops float64) {
	projects := m.eligible()
	if len(projects) == 0 || deltaDays <= 0 {
		return
	}
	flopsPerProject := flops / float64(len(projects))

	for _, p := range projects {
		if p.state.StartTime == nil {
			start := now
			p.state.StartTime = &start
		}

		cost := tierCostFlops(p.tierIndex)
		trancheUnits := flopsPerProject * deltaDays / cost * float64(p.state.MaxTranches)
		capUnits := shared.ResearchDailyProgressCap * float64(p.state.MaxTranches) * deltaDays
		if trancheUnits > capUnits {
			trancheUnits = capUnits
		}

		p.state.Fractional += trancheUnits
		for p.state.Fractional >= 1 && !p.state.Complete() {
			p.state.Fractional -= 1
			p.state.TranchesCompleted++
		}
		if p.state.Complete() {
			p.state.Fractional = 0
			if p.state.CompletionTime == nil {
				done := now
				p.state.CompletionTime = &done
			}
		}
	}
}
