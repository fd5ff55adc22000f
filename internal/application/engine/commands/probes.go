package commands

import (
	"context"
	"fmt"

	"github.com/brachisto/brachisto-go/internal/application/engine"
	"github.com/brachisto/brachisto-go/internal/application/mediator"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/sim"
)

// PurchaseProbeCommand buys one probe outright with stored metal
type PurchaseProbeCommand struct {
	ProbeType string
	Zone      string
}

// PurchaseProbeResponse acknowledges the purchase
type PurchaseProbeResponse struct {
	ProbeType string
	Zone      string
}

// PurchaseProbeHandler handles the PurchaseProbe command
type PurchaseProbeHandler struct {
	service *engine.Service
}

// NewPurchaseProbeHandler creates a new PurchaseProbeHandler
func NewPurchaseProbeHandler(service *engine.Service) *PurchaseProbeHandler {
	return &PurchaseProbeHandler{service: service}
}

// Handle executes the PurchaseProbe command
func (h *PurchaseProbeHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PurchaseProbeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PurchaseProbeCommand")
	}

	err := h.service.With(func(eng *sim.Engine) error {
		return eng.PurchaseProbe(shared.ProbeTypeID(cmd.ProbeType), shared.ZoneID(cmd.Zone))
	})
	if err != nil {
		return nil, err
	}

	return &PurchaseProbeResponse{ProbeType: cmd.ProbeType, Zone: cmd.Zone}, nil
}

// AllocateProbesCommand updates a zone's activity sliders. Nil fields
// keep their current value.
type AllocateProbesCommand struct {
	Zone                  string
	MiningSlider          *float64
	ReplicationSlider     *float64
	DysonAllocationSlider *float64
	MinProbes             *int
}

// AllocateProbesResponse returns the policy now in effect
type AllocateProbesResponse struct {
	Zone                  string
	MiningSlider          float64
	ReplicationSlider     float64
	ConstructionSlider    float64
	DysonAllocationSlider float64
}

// AllocateProbesHandler handles the AllocateProbes command
type AllocateProbesHandler struct {
	service *engine.Service
}

// NewAllocateProbesHandler creates a new AllocateProbesHandler
func NewAllocateProbesHandler(service *engine.Service) *AllocateProbesHandler {
	return &AllocateProbesHandler{service: service}
}

// Handle executes the AllocateProbes command
func (h *AllocateProbesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AllocateProbesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AllocateProbesCommand")
	}

	resp := &AllocateProbesResponse{Zone: cmd.Zone}
	err := h.service.With(func(eng *sim.Engine) error {
		policy, err := eng.AllocateProbes(shared.ZoneID(cmd.Zone), sim.ZonePolicyUpdate{
			MiningSlider:          cmd.MiningSlider,
			ReplicationSlider:     cmd.ReplicationSlider,
			DysonAllocationSlider: cmd.DysonAllocationSlider,
			MinProbes:             cmd.MinProbes,
		})
		if err != nil {
			return err
		}
		resp.MiningSlider = policy.MiningSlider
		resp.ReplicationSlider = policy.ReplicationSlider
		resp.ConstructionSlider = policy.ConstructionSlider
		resp.DysonAllocationSlider = policy.DysonAllocationSlider
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// SetHarvestZoneCommand selects the zone legacy harvesting controls act on
type SetHarvestZoneCommand struct {
	Zone string
}

// SetHarvestZoneResponse acknowledges the change
type SetHarvestZoneResponse struct {
	Zone string
}

// SetHarvestZoneHandler handles the SetHarvestZone command
type SetHarvestZoneHandler struct {
	service *engine.Service
}

// NewSetHarvestZoneHandler creates a new SetHarvestZoneHandler
func NewSetHarvestZoneHandler(service *engine.Service) *SetHarvestZoneHandler {
	return &SetHarvestZoneHandler{service: service}
}

// Handle executes the SetHarvestZone command
func (h *SetHarvestZoneHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetHarvestZoneCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetHarvestZoneCommand")
	}

	err := h.service.With(func(eng *sim.Engine) error {
		return eng.SetHarvestZone(shared.ZoneID(cmd.Zone))
	})
	if err != nil {
		return nil, err
	}

	return &SetHarvestZoneResponse{Zone: cmd.Zone}, nil
}

// SetActivityModifierCommand scales one activity's output, used for
// scripted scenarios and balancing experiments
type SetActivityModifierCommand struct {
	Activity string
	Value    float64
}

// SetActivityModifierResponse acknowledges the change
type SetActivityModifierResponse struct {
	Activity string
	Value    float64
}

// SetActivityModifierHandler handles the SetActivityModifier command
type SetActivityModifierHandler struct {
	service *engine.Service
}

// NewSetActivityModifierHandler creates a new SetActivityModifierHandler
func NewSetActivityModifierHandler(service *engine.Service) *SetActivityModifierHandler {
	return &SetActivityModifierHandler{service: service}
}

// Handle executes the SetActivityModifier command
func (h *SetActivityModifierHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetActivityModifierCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetActivityModifierCommand")
	}

	err := h.service.With(func(eng *sim.Engine) error {
		return eng.SetActivityModifier(cmd.Activity, cmd.Value)
	})
	if err != nil {
		return nil, err
	}

	return &SetActivityModifierResponse{Activity: cmd.Activity, Value: cmd.Value}, nil
}
