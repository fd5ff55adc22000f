package setup

import (
	"reflect"

	"github.com/brachisto/brachisto-go/internal/application/engine"
	engineCommands "github.com/brachisto/brachisto-go/internal/application/engine/commands"
	engineQueries "github.com/brachisto/brachisto-go/internal/application/engine/queries"
	"github.com/brachisto/brachisto-go/internal/application/mediator"
)

// HandlerRegistry wires command and query handlers to a mediator
type HandlerRegistry struct {
	service *engine.Service
}

// NewHandlerRegistry creates a new handler registry around the engine service
func NewHandlerRegistry(service *engine.Service) *HandlerRegistry {
	return &HandlerRegistry{service: service}
}

// RegisterEngineHandlers registers every simulation command handler
// with the mediator
func (r *HandlerRegistry) RegisterEngineHandlers(m mediator.Mediator) error {
	sliderHandler := engineCommands.NewSliderHandler(r.service)
	transferHandler := engineCommands.NewTransferHandler(r.service)

	registrations := []struct {
		request mediator.Request
		handler mediator.RequestHandler
	}{
		{&engineCommands.PurchaseStructureCommand{}, engineCommands.NewPurchaseStructureHandler(r.service)},
		{&engineCommands.RecycleFactoryCommand{}, engineCommands.NewRecycleFactoryHandler(r.service)},
		{&engineCommands.SetFactoryProductionCommand{}, engineCommands.NewSetFactoryProductionHandler(r.service)},
		{&engineCommands.PurchaseProbeCommand{}, engineCommands.NewPurchaseProbeHandler(r.service)},
		{&engineCommands.AllocateProbesCommand{}, engineCommands.NewAllocateProbesHandler(r.service)},
		{&engineCommands.SetHarvestZoneCommand{}, engineCommands.NewSetHarvestZoneHandler(r.service)},
		{&engineCommands.SetActivityModifierCommand{}, engineCommands.NewSetActivityModifierHandler(r.service)},
		{&engineCommands.AllocateResearchCommand{}, engineCommands.NewAllocateResearchHandler(r.service)},
		{&engineCommands.ToggleResearchCategoryCommand{}, engineCommands.NewToggleResearchCategoryHandler(r.service)},
		{&engineCommands.SetEconomySliderCommand{}, sliderHandler},
		{&engineCommands.SetMineBuildSliderCommand{}, sliderHandler},
		{&engineCommands.SetBuildAllocationCommand{}, sliderHandler},
		{&engineCommands.SetDysonPowerAllocationCommand{}, sliderHandler},
		{&engineCommands.CreateTransferCommand{}, engineCommands.NewCreateTransferHandler(r.service)},
		{&engineCommands.UpdateTransferCommand{}, transferHandler},
		{&engineCommands.PauseTransferCommand{}, transferHandler},
		{&engineCommands.ReverseTransferCommand{}, transferHandler},
		{&engineCommands.DeleteTransferCommand{}, transferHandler},
	}

	for _, reg := range registrations {
		if err := m.Register(reflect.TypeOf(reg.request), reg.handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterQueryHandlers registers the read-side handlers with the mediator
func (r *HandlerRegistry) RegisterQueryHandlers(m mediator.Mediator) error {
	return m.Register(
		reflect.TypeOf(&engineQueries.GetStateQuery{}),
		engineQueries.NewGetStateHandler(r.service),
	)
}

// CreateConfiguredMediator creates a mediator with all handlers registered
func (r *HandlerRegistry) CreateConfiguredMediator() (mediator.Mediator, error) {
	m := mediator.NewMediator()
	if err := r.RegisterEngineHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterQueryHandlers(m); err != nil {
		return nil, err
	}
	return m, nil
}
