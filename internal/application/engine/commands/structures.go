package commands

import (
	"context"
	"fmt"

	"github.com/brachisto/brachisto-go/internal/application/engine"
	"github.com/brachisto/brachisto-go/internal/application/mediator"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/sim"
)

// PurchaseStructureCommand toggles construction of a structure in a zone.
// When Enabled is nil the current toggle is flipped.
type PurchaseStructureCommand struct {
	Zone     string
	Building string
	Enabled  *bool
}

// PurchaseStructureResponse reports the resulting toggle state
type PurchaseStructureResponse struct {
	Zone     string
	Building string
	Enabled  bool
}

// PurchaseStructureHandler handles the PurchaseStructure command
type PurchaseStructureHandler struct {
	service *engine.Service
}

// NewPurchaseStructureHandler creates a new PurchaseStructureHandler
func NewPurchaseStructureHandler(service *engine.Service) *PurchaseStructureHandler {
	return &PurchaseStructureHandler{service: service}
}

// Handle executes the PurchaseStructure command
func (h *PurchaseStructureHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PurchaseStructureCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PurchaseStructureCommand")
	}

	var enabled bool
	err := h.service.With(func(eng *sim.Engine) error {
		var err error
		enabled, err = eng.PurchaseStructure(shared.ZoneID(cmd.Zone), shared.BuildingID(cmd.Building), cmd.Enabled)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &PurchaseStructureResponse{
		Zone:     cmd.Zone,
		Building: cmd.Building,
		Enabled:  enabled,
	}, nil
}

// RecycleFactoryCommand tears down a completed structure, reclaiming
// part of its metal
type RecycleFactoryCommand struct {
	Zone     string
	Building string
}

// RecycleFactoryResponse reports the reclaimed material
type RecycleFactoryResponse struct {
	MetalReturned float64
	SlagProduced  float64
}

// RecycleFactoryHandler handles the RecycleFactory command
type RecycleFactoryHandler struct {
	service *engine.Service
}

// NewRecycleFactoryHandler creates a new RecycleFactoryHandler
func NewRecycleFactoryHandler(service *engine.Service) *RecycleFactoryHandler {
	return &RecycleFactoryHandler{service: service}
}

// Handle executes the RecycleFactory command
func (h *RecycleFactoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RecycleFactoryCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecycleFactoryCommand")
	}

	var metal, slag float64
	err := h.service.With(func(eng *sim.Engine) error {
		var err error
		metal, slag, err = eng.RecycleFactory(shared.ZoneID(cmd.Zone), shared.BuildingID(cmd.Building))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &RecycleFactoryResponse{MetalReturned: metal, SlagProduced: slag}, nil
}

// SetFactoryProductionCommand sets a probe factory's output rate. An
// empty Zone applies the rate to every zone that has the factory.
type SetFactoryProductionCommand struct {
	Zone       string
	Building   string
	Production float64
}

// SetFactoryProductionResponse acknowledges the update
type SetFactoryProductionResponse struct {
	Production float64
}

// SetFactoryProductionHandler handles the SetFactoryProduction command
type SetFactoryProductionHandler struct {
	service *engine.Service
}

// NewSetFactoryProductionHandler creates a new SetFactoryProductionHandler
func NewSetFactoryProductionHandler(service *engine.Service) *SetFactoryProductionHandler {
	return &SetFactoryProductionHandler{service: service}
}

// Handle executes the SetFactoryProduction command
func (h *SetFactoryProductionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetFactoryProductionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetFactoryProductionCommand")
	}

	err := h.service.With(func(eng *sim.Engine) error {
		return eng.SetFactoryProduction(shared.ZoneID(cmd.Zone), shared.BuildingID(cmd.Building), cmd.Production)
	})
	if err != nil {
		return nil, err
	}

	return &SetFactoryProductionResponse{Production: cmd.Production}, nil
}
