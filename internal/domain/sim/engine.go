package sim

import (
	"math/rand"

	"github.com/brachisto/brachisto-go/internal/domain/construction"
	"github.com/brachisto/brachisto-go/internal/domain/dyson"
	"github.com/brachisto/brachisto-go/internal/domain/research"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
	"github.com/brachisto/brachisto-go/internal/domain/transfer"
	"github.com/brachisto/brachisto-go/internal/domain/zone"
)

// Config sets the starting conditions of a new simulation
type Config struct {
	InitialProbes int
	InitialMetal  float64
	StartZone     shared.ZoneID
	ProbeType     shared.ProbeTypeID
	Seed          int64
}

// DefaultConfig matches the standard new-game difficulty
func DefaultConfig() Config {
	return Config{
		InitialProbes: 10,
		InitialMetal:  100,
		StartZone:     "earth",
		ProbeType:     "probe",
		Seed:          1,
	}
}

// Engine wires the domain calculators around one State and advances it
// tick by tick. It is not safe for concurrent use; callers serialize
// access through a single owner.
type Engine struct {
	provider  statics.Provider
	research  *research.Model
	economy   *zone.Economy
	builder   *construction.Manager
	dyson     *dyson.Controller
	transfers *transfer.System
	state     *State
	probeType shared.ProbeTypeID
}

func NewEngine(provider statics.Provider, cfg Config) *Engine {
	rng := rand.New(rand.NewSource(cfg.Seed))
	res := research.NewModel(provider)
	chooser := shared.NewWeightedChooser(rng)

	startZone := cfg.StartZone
	if _, ok := provider.Zone(startZone); !ok {
		// fall back to the first regular zone the data set defines
		for _, z := range provider.Zones() {
			if !z.IsDysonZone {
				startZone = z.ID
				break
			}
		}
	}

	return &Engine{
		provider:  provider,
		research:  res,
		economy:   zone.NewEconomy(provider, res),
		builder:   construction.NewManager(provider, res, chooser),
		dyson:     dyson.NewController(res),
		transfers: transfer.NewSystem(provider, res),
		state:     NewState(provider, cfg.InitialProbes, cfg.InitialMetal, startZone),
		probeType: cfg.ProbeType,
	}
}

// State exposes the mutable root for the owning loop. External readers
// use Snapshot instead.
func (e *Engine) State() *State {
	return e.state
}

// Research exposes the research model for queries
func (e *Engine) Research() *research.Model {
	return e.research
}

// Transfers exposes the transfer system for queries
func (e *Engine) Transfers() *transfer.System {
	return e.transfers
}

// Provider exposes the static data set backing this simulation
func (e *Engine) Provider() statics.Provider {
	return e.provider
}

func (e *Engine) probeDef() statics.ProbeDef {
	return statics.ProbeOrDefault(e.provider, e.probeType)
}

// activityModifier reads a named tuning multiplier, defaulting to 1
func (e *Engine) activityModifier(name string) float64 {
	if v, ok := e.state.ActivityModifiers[name]; ok && v >= 0 {
		return v
	}
	return 1
}
