package shared

// Physical and balance constants shared across the simulation domain.
// Rates are per day of simulated time; energy values are watts unless
// a name says otherwise.
const (
	// Probe baseline capabilities at dexterity 1.0
	ProbeHarvestRateKgPerDay = 100.0
	ProbeBuildRateKgPerDay   = 20.0
	ProbeMassKg              = 100.0

	// Probe power draws
	ProbeMiningDrawW = 500_000.0

	// Energy cost per kg/day of matter moved or assembled
	HarvestEnergyPerKgDayW = 453515.0 / 86400.0
	BuildEnergyPerKgDayW   = 250000.0 / 86400.0

	// Flat baseline supply available before any structures exist
	ConstantSupplyW = 100_000.0

	// Dyson swarm
	DysonPowerPerKgW    = 5000.0
	DysonMetalPerKg     = 0.5
	DysonBaseTargetKg   = 2e22
	SunTotalOutputW     = 3.8e26
	DysonTargetFloorCut = 0.5 // research can shave at most 50% off the target mass

	// Compute conversion: one watt of compute budget buys this many
	// FLOPS; running compute hardware costs 1 kW per PFLOPS
	FlopsPerWatt         = 1e9
	ComputeDrawWPerFlops = 1e-12

	// Research economy
	ResearchTierBaseCostFlops = 1e22
	ResearchTierCostGrowth    = 100.0
	ResearchCompoundRate      = 0.20  // continuous, per day
	ResearchDailyProgressCap  = 1e-4  // fraction of a tier's tranches per day
	ResearchBonusExponentCap  = 300.0 // e^300 keeps compounding finite

	// Probe fleet scaling
	ReplicationPenaltyProbes = 1e12 // halving per order of magnitude above this
	ReplicationPenaltyFloor  = 0.0001
	CountPenaltyFloor        = 0.001

	// Recycling
	RecyclingBaseEfficiency = 0.75
	RecyclingMaxEfficiency  = 0.98

	// Transfers
	BaseTransferDays   = 90.0
	TransferTimeFloor  = 0.05  // fraction of unmodified transit time
	WormholeTimeFactor = 0.001 // replaces the floor when a wormhole link exists
	MaxTransferRatePct = 100.0
)
