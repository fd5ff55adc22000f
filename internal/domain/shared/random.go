package shared

import (
	"math/rand"
	"sort"
)

// WeightedChooser picks zones proportionally to their weights using an
// injectable RNG so replication placement stays reproducible under a
// fixed seed. Keys are walked in sorted order so equal seeds always
// produce equal sequences regardless of map iteration order.
type WeightedChooser struct {
	rng *rand.Rand
}

func NewWeightedChooser(rng *rand.Rand) *WeightedChooser {
	return &WeightedChooser{rng: rng}
}

// Pick draws one zone from the weight table. Zero and negative weights
// are skipped. When every weight is zero the zone with the largest raw
// weight wins; ties break on sorted key order. Returns false only for
// an empty table.
func (c *WeightedChooser) Pick(weights map[ZoneID]float64) (ZoneID, bool) {
	if len(weights) == 0 {
		return "", false
	}

	keys := make([]ZoneID, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	total := 0.0
	for _, k := range keys {
		if weights[k] > 0 {
			total += weights[k]
		}
	}
	if total <= 0 {
		best := keys[0]
		for _, k := range keys[1:] {
			if weights[k] > weights[best] {
				best = k
			}
		}
		return best, true
	}

	draw := c.rng.Float64() * total
	cumulative := 0.0
	for _, k := range keys {
		if weights[k] <= 0 {
			continue
		}
		cumulative += weights[k]
		if draw < cumulative {
			return k, true
		}
	}
	// Float accumulation can land draw at the boundary
	for i := len(keys) - 1; i >= 0; i-- {
		if weights[keys[i]] > 0 {
			return keys[i], true
		}
	}
	return keys[0], true
}
