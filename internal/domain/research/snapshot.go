package research

import "github.com/brachisto/brachisto-go/internal/domain/shared"

// Progress is the serializable copy of one tier's state
type Progress struct {
	TranchesCompleted int
	MaxTranches       int
	Enabled           bool
	StartTime         *float64
	CompletionTime    *float64
	Fractional        float64
}

// Snapshot copies every tier's progress for persistence
func (m *Model) Snapshot() map[shared.TreeID]map[shared.TierID]Progress {
	out := make(map[shared.TreeID]map[shared.TierID]Progress, len(m.tiers))
	for treeID, byTier := range m.tiers {
		tiers := make(map[shared.TierID]Progress, len(byTier))
		for tierID, state := range byTier {
			p := Progress{
				TranchesCompleted: state.TranchesCompleted,
				MaxTranches:       state.MaxTranches,
				Enabled:           state.Enabled,
				Fractional:        state.Fractional,
			}
			if state.StartTime != nil {
				t := *state.StartTime
				p.StartTime = &t
			}
			if state.CompletionTime != nil {
				t := *state.CompletionTime
				p.CompletionTime = &t
			}
			tiers[tierID] = p
		}
		out[treeID] = tiers
	}
	return out
}

// Restore overwrites one tier's progress from a saved snapshot. Tiers
// the current data set no longer defines are ignored so old saves load
// cleanly.
func (m *Model) Restore(tree shared.TreeID, tier shared.TierID, p Progress) {
	state, ok := m.tiers[tree][tier]
	if !ok {
		return
	}
	state.Enabled = p.Enabled
	state.Fractional = p.Fractional
	if p.MaxTranches > 0 {
		state.MaxTranches = p.MaxTranches
	}
	state.TranchesCompleted = p.TranchesCompleted
	if state.TranchesCompleted > state.MaxTranches {
		state.TranchesCompleted = state.MaxTranches
	}
	state.StartTime = nil
	if p.StartTime != nil {
		t := *p.StartTime
		state.StartTime = &t
	}
	state.CompletionTime = nil
	if p.CompletionTime != nil {
		t := *p.CompletionTime
		state.CompletionTime = &t
	}
}
