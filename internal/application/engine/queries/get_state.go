package queries

import (
	"context"
	"fmt"

	"github.com/brachisto/brachisto-go/internal/application/engine"
	"github.com/brachisto/brachisto-go/internal/application/mediator"
	"github.com/brachisto/brachisto-go/internal/domain/sim"
)

// GetStateQuery requests a full simulation snapshot
type GetStateQuery struct{}

// GetStateResponse carries the snapshot
type GetStateResponse struct {
	Snapshot *sim.Snapshot
}

// GetStateHandler handles the GetState query
type GetStateHandler struct {
	service *engine.Service
}

// NewGetStateHandler creates a new GetStateHandler
func NewGetStateHandler(service *engine.Service) *GetStateHandler {
	return &GetStateHandler{service: service}
}

// Handle executes the GetState query
func (h *GetStateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetStateQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetStateQuery")
	}
	return &GetStateResponse{Snapshot: h.service.Snapshot()}, nil
}
