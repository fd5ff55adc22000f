package research

import (
	"math"

	"github.com/brachisto/brachisto-go/internal/domain/shared"
)

// compoundExp applies the continuous compounding curve with the
// exponent clamped so very long runs stay finite instead of overflowing
// to +Inf
func compoundExp(elapsedDays float64) float64 {
	exponent := shared.ResearchCompoundRate * elapsedDays
	if exponent > shared.ResearchBonusExponentCap {
		exponent = shared.ResearchBonusExponentCap
	}
	if exponent < 0 {
		exponent = 0
	}
	return math.Exp(exponent)
}

// tierBonus computes one tier's contribution at the given sim time.
// While researching the base bonus compounds from the start time; on
// completion the principal doubles and compounding restarts from the
// completion time.
func tierBonus(def float64, state *TierState, now float64) float64 {
	if state == nil || state.StartTime == nil {
		return 0
	}
	if state.Complete() && state.CompletionTime != nil {
		return 2 * def * compoundExp(now-*state.CompletionTime)
	}
	return def * compoundExp(now-*state.StartTime)
}

// Bonus returns the additive research bonus for a tree: the product of
// (1 + tierBonus) over every started tier, minus one. Unknown trees
// contribute nothing.
func (m *Model) Bonus(tree shared.TreeID, now float64) float64 {
	def, ok := m.provider.ResearchTree(tree)
	if !ok {
		return 0
	}
	multiplier := 1.0
	for _, tier := range def.Tiers {
		state := m.tiers[tree][tier.ID]
		if b := tierBonus(tier.TotalBonus, state, now); b > 0 {
			multiplier *= 1 + b
		}
	}
	return multiplier - 1
}

// Skill is the multiplicative form of Bonus: 1 + bonus
func (m *Model) Skill(tree shared.TreeID, now float64) float64 {
	return 1 + m.Bonus(tree, now)
}

// BuildSkill aggregates the trees that govern probe manipulation
// throughput (locomotion, attitude control, robotics)
func (m *Model) BuildSkill(now float64) float64 {
	return m.Skill(TreeLocomotionSystems, now) *
		m.Skill(TreeACDS, now) *
		m.Skill(TreeRoboticSystems, now)
}

// MiningSkill extends BuildSkill with production efficiency, which only
// applies to extraction
func (m *Model) MiningSkill(now float64) float64 {
	return m.BuildSkill(now) * m.Skill(TreeProductionEfficiency, now)
}

// ComputePower is the geometric mean of the four computer tree skills
func (m *Model) ComputePower(now float64) float64 {
	product := m.Skill(TreeComputerProcessing, now) *
		m.Skill(TreeComputerGPU, now) *
		m.Skill(TreeComputerInterconnect, now) *
		m.Skill(TreeComputerInterface, now)
	return math.Pow(product, 0.25)
}

// RecyclingEfficiency scales from the base salvage rate up to a hard
// ceiling as the recycling tree compounds
func (m *Model) RecyclingEfficiency(now float64) float64 {
	eff := shared.RecyclingBaseEfficiency + m.Bonus(TreeRecyclingEfficiency, now)
	return math.Min(shared.RecyclingMaxEfficiency, eff)
}
