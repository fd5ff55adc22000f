package commands

import (
	"context"
	"fmt"

	"github.com/brachisto/brachisto-go/internal/application/engine"
	"github.com/brachisto/brachisto-go/internal/application/mediator"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/sim"
)

// AllocateResearchCommand toggles one research tier
type AllocateResearchCommand struct {
	Tree    string
	Tier    string
	Enabled bool
}

// AllocateResearchResponse acknowledges the toggle
type AllocateResearchResponse struct {
	Tree    string
	Tier    string
	Enabled bool
}

// AllocateResearchHandler handles the AllocateResearch command
type AllocateResearchHandler struct {
	service *engine.Service
}

// NewAllocateResearchHandler creates a new AllocateResearchHandler
func NewAllocateResearchHandler(service *engine.Service) *AllocateResearchHandler {
	return &AllocateResearchHandler{service: service}
}

// Handle executes the AllocateResearch command
func (h *AllocateResearchHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AllocateResearchCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AllocateResearchCommand")
	}

	err := h.service.With(func(eng *sim.Engine) error {
		return eng.AllocateResearch(shared.TreeID(cmd.Tree), shared.TierID(cmd.Tier), cmd.Enabled)
	})
	if err != nil {
		return nil, err
	}

	return &AllocateResearchResponse{Tree: cmd.Tree, Tier: cmd.Tier, Enabled: cmd.Enabled}, nil
}

// ToggleResearchCategoryCommand toggles every tier in a research category
type ToggleResearchCategoryCommand struct {
	Category string
	Enabled  bool
}

// ToggleResearchCategoryResponse reports how many tiers changed
type ToggleResearchCategoryResponse struct {
	Category string
	Toggled  int
}

// ToggleResearchCategoryHandler handles the ToggleResearchCategory command
type ToggleResearchCategoryHandler struct {
	service *engine.Service
}

// NewToggleResearchCategoryHandler creates a new ToggleResearchCategoryHandler
func NewToggleResearchCategoryHandler(service *engine.Service) *ToggleResearchCategoryHandler {
	return &ToggleResearchCategoryHandler{service: service}
}

// Handle executes the ToggleResearchCategory command
func (h *ToggleResearchCategoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ToggleResearchCategoryCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ToggleResearchCategoryCommand")
	}

	var toggled int
	err := h.service.With(func(eng *sim.Engine) error {
		var err error
		toggled, err = eng.ToggleResearchCategory(cmd.Category, cmd.Enabled)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ToggleResearchCategoryResponse{Category: cmd.Category, Toggled: toggled}, nil
}
