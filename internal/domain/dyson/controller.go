// Package dyson models the swarm megastructure: target mass, energy
// output and the economy/compute power split.
package dyson

import (
	"math"

	"github.com/brachisto/brachisto-go/internal/domain/research"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
)

// Controller computes swarm outputs from accumulated mass and research
type Controller struct {
	research   *research.Model
	baseTarget float64
}

func NewController(res *research.Model) *Controller {
	return &Controller{research: res, baseTarget: shared.DysonBaseTargetKg}
}

// TargetMass is the mass at which the swarm captures full stellar
// output. Construction research shaves it down, to at most half.
func (c *Controller) TargetMass(now float64) float64 {
	cut := c.research.Bonus(research.TreeDysonConstruction, now) * 0.1
	if cut > shared.DysonTargetFloorCut {
		cut = shared.DysonTargetFloorCut
	}
	return c.baseTarget * (1 - cut)
}

// OutputW is the swarm's raw power yield. Below target each kg collects
// its panel rating boosted by collection research; at target the swarm
// intercepts the star's entire output.
func (c *Controller) OutputW(mass, now float64) float64 {
	if mass <= 0 {
		return 0
	}
	if mass >= c.TargetMass(now) {
		return shared.SunTotalOutputW
	}
	bonus := c.research.Bonus(research.TreeEnergyCollection, now) +
		c.research.Bonus(research.TreeSolarConcentrators, now)
	return mass * shared.DysonPowerPerKgW * (1 + bonus)
}

// PowerSplit is the resolved allocation of swarm output for one tick
type PowerSplit struct {
	EconomyW     float64
	ComputeFlops float64
}

// SplitPower divides the output by the 0-100 allocation slider. The
// lower half interpolates economy share from 100% down to 0%; past the
// midpoint everything is compute, and the excess slider range overclocks
// compute with a 1/(1+excess) diminishing-returns curve.
func (c *Controller) SplitPower(outputW, slider float64) PowerSplit {
	if outputW <= 0 {
		return PowerSplit{}
	}
	slider = math.Min(100, math.Max(0, slider))

	if slider <= 50 {
		economyFrac := (50 - slider) / 50
		economyW := outputW * economyFrac
		return PowerSplit{
			EconomyW:     economyW,
			ComputeFlops: (outputW - economyW) * shared.FlopsPerWatt,
		}
	}

	excessRatio := (slider - 50) / 50
	overclock := outputW * excessRatio / (1 + excessRatio)
	return PowerSplit{ComputeFlops: (outputW + overclock) * shared.FlopsPerWatt}
}

// AdvanceResult reports what one tick of swarm construction did
type AdvanceResult struct {
	MassAdded     float64
	MetalConsumed float64
	// IdleFraction is the share of the requested rate that metal
	// scarcity left unused, surfaced for display only
	IdleFraction float64
}

// Advance converts a throttled construction rate into swarm mass,
// consuming metal at the fixed ratio and never overshooting the target
func (c *Controller) Advance(mass, throttledKgPerDay, availableMetal, deltaDays, now float64) AdvanceResult {
	if throttledKgPerDay <= 0 || deltaDays <= 0 {
		return AdvanceResult{}
	}
	target := c.TargetMass(now)
	if mass >= target {
		return AdvanceResult{}
	}

	massWanted := math.Min(throttledKgPerDay*deltaDays, target-mass)
	metalWanted := massWanted * shared.DysonMetalPerKg

	massBuilt := massWanted
	metalUsed := metalWanted
	if metalWanted > availableMetal {
		if availableMetal <= 0 {
			return AdvanceResult{IdleFraction: 1}
		}
		scale := availableMetal / metalWanted
		massBuilt = massWanted * scale
		metalUsed = availableMetal
	}

	idle := 0.0
	if massWanted > 0 {
		idle = 1 - massBuilt/massWanted
	}
	return AdvanceResult{MassAdded: massBuilt, MetalConsumed: metalUsed, IdleFraction: idle}
}
