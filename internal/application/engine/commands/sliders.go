package commands

import (
	"context"
	"fmt"

	"github.com/brachisto/brachisto-go/internal/application/engine"
	"github.com/brachisto/brachisto-go/internal/application/mediator"
	"github.com/brachisto/brachisto-go/internal/domain/sim"
)

// SetEconomySliderCommand balances swarm power between economy and
// compute. Values above 50 overclock compute at reduced efficiency.
type SetEconomySliderCommand struct {
	Value float64
}

// SetMineBuildSliderCommand balances probe time between harvesting and
// building in the regular zones
type SetMineBuildSliderCommand struct {
	Value float64
}

// SetBuildAllocationCommand splits build effort between replication
// and structure construction
type SetBuildAllocationCommand struct {
	Value float64
}

// SetDysonPowerAllocationCommand sets the fraction of build effort in
// the swarm zone that goes to swarm mass
type SetDysonPowerAllocationCommand struct {
	Value float64
}

// SliderResponse acknowledges a slider update
type SliderResponse struct {
	Value float64
}

// SliderHandler handles all four global slider commands
type SliderHandler struct {
	service *engine.Service
}

// NewSliderHandler creates a new SliderHandler
func NewSliderHandler(service *engine.Service) *SliderHandler {
	return &SliderHandler{service: service}
}

// Handle executes a slider command
func (h *SliderHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	var value float64
	err := h.service.With(func(eng *sim.Engine) error {
		switch cmd := request.(type) {
		case *SetEconomySliderCommand:
			eng.SetEconomySlider(cmd.Value)
			value = cmd.Value
		case *SetMineBuildSliderCommand:
			eng.SetMineBuildSlider(cmd.Value)
			value = cmd.Value
		case *SetBuildAllocationCommand:
			eng.SetBuildAllocation(cmd.Value)
			value = cmd.Value
		case *SetDysonPowerAllocationCommand:
			eng.SetDysonPowerAllocation(cmd.Value)
			value = cmd.Value
		default:
			return fmt.Errorf("invalid request type: expected a slider command")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SliderResponse{Value: value}, nil
}
