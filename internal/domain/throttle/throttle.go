// Package throttle resolves contention for energy and metal each tick.
// All functions are pure: nominal demands in, scale factors out.
package throttle

import "math"

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// EnergyFactors scales the energy-hungry activities for one tick
type EnergyFactors struct {
	Mining  float64
	Build   float64
	Limited bool
}

// Energy splits the available watts between mining and build after
// compute's fixed draw is taken off the top. Mining outranks build:
// build only sees watts left after mining is fully fed.
func Energy(totalAvailableW, miningDemandW, buildDemandW, computeDemandW float64) EnergyFactors {
	remaining := totalAvailableW - computeDemandW
	out := EnergyFactors{Mining: 1, Build: 1}

	if miningDemandW > 0 && remaining < miningDemandW {
		out.Mining = clamp01(remaining / miningDemandW)
		out.Build = 0
		out.Limited = true
		return out
	}
	remaining -= miningDemandW
	if buildDemandW > 0 && remaining < buildDemandW {
		out.Build = clamp01(remaining / buildDemandW)
		out.Limited = true
	}
	return out
}

// MetalFactors scales the metal-consuming activities for one tick
type MetalFactors struct {
	Dyson   float64
	Other   float64
	Limited bool
}

// Metal rations current metal production between Dyson construction and
// everything else. It only engages on a hard cliff: stockpile empty and
// net rate negative. With any stock left the stockpile buffers the
// deficit and nothing is throttled.
func Metal(metalRatePerDay, dysonDemandPerDay, otherDemandPerDay, storedMetal float64) MetalFactors {
	out := MetalFactors{Dyson: 1, Other: 1}

	totalDemand := dysonDemandPerDay + otherDemandPerDay
	if storedMetal > 0 || metalRatePerDay >= totalDemand || totalDemand <= 0 {
		return out
	}

	out.Limited = true
	if dysonDemandPerDay >= metalRatePerDay {
		if dysonDemandPerDay > 0 {
			out.Dyson = clamp01(metalRatePerDay / dysonDemandPerDay)
		}
		out.Other = 0
		return out
	}
	if otherDemandPerDay > 0 {
		out.Other = clamp01((metalRatePerDay - dysonDemandPerDay) / otherDemandPerDay)
	}
	return out
}

// Storage applies one tick's net energy flow to the storage bank and
// returns the new level plus the deficit (in watts) that storage could
// not cover. The level is clamped to [0, capacity] unconditionally.
func Storage(stored, capacityWattDays, netW, deltaDays float64) (newStored, uncoveredDeficitW float64) {
	if deltaDays <= 0 {
		return clampStore(stored, capacityWattDays), 0
	}
	level := clampStore(stored, capacityWattDays) + netW*deltaDays
	if level < 0 {
		uncoveredDeficitW = -level / deltaDays
		level = 0
	}
	return clampStore(level, capacityWattDays), uncoveredDeficitW
}

func clampStore(v, capacity float64) float64 {
	if v < 0 {
		return 0
	}
	if capacity >= 0 && v > capacity {
		return capacity
	}
	return v
}
