package commands

import (
	"context"
	"fmt"

	"github.com/brachisto/brachisto-go/internal/application/engine"
	"github.com/brachisto/brachisto-go/internal/application/mediator"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/sim"
	"github.com/brachisto/brachisto-go/internal/domain/transfer"
)

// CreateTransferCommand launches a probe transfer between two zones.
// Count is used for one-time transfers, RatePercentage for continuous ones.
type CreateTransferCommand struct {
	Type           string
	From           string
	To             string
	Count          int
	RatePercentage float64
}

// CreateTransferResponse carries the new transfer's identifier
type CreateTransferResponse struct {
	TransferID string
}

// CreateTransferHandler handles the CreateTransfer command
type CreateTransferHandler struct {
	service *engine.Service
}

// NewCreateTransferHandler creates a new CreateTransferHandler
func NewCreateTransferHandler(service *engine.Service) *CreateTransferHandler {
	return &CreateTransferHandler{service: service}
}

// Handle executes the CreateTransfer command
func (h *CreateTransferHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateTransferCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateTransferCommand")
	}

	var kind transfer.Kind
	switch cmd.Type {
	case string(transfer.OneTime):
		kind = transfer.OneTime
	case string(transfer.Continuous):
		kind = transfer.Continuous
	default:
		return nil, shared.NewInvalidParameterError("type", fmt.Sprintf("unknown transfer type %q", cmd.Type))
	}

	var id string
	err := h.service.With(func(eng *sim.Engine) error {
		var err error
		id, err = eng.CreateTransfer(kind, shared.ZoneID(cmd.From), shared.ZoneID(cmd.To), cmd.Count, cmd.RatePercentage)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &CreateTransferResponse{TransferID: id}, nil
}

// UpdateTransferCommand changes a continuous transfer's rate
type UpdateTransferCommand struct {
	TransferID     string
	RatePercentage float64
}

// PauseTransferCommand pauses or resumes a continuous transfer
type PauseTransferCommand struct {
	TransferID string
	Paused     bool
}

// ReverseTransferCommand swaps a continuous transfer's direction
type ReverseTransferCommand struct {
	TransferID string
}

// DeleteTransferCommand removes a transfer, returning in-flight probes
// to the source zone
type DeleteTransferCommand struct {
	TransferID string
}

// TransferResponse acknowledges a transfer mutation
type TransferResponse struct {
	TransferID string
}

// TransferHandler handles the update, pause, reverse and delete
// transfer commands
type TransferHandler struct {
	service *engine.Service
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(service *engine.Service) *TransferHandler {
	return &TransferHandler{service: service}
}

// Handle executes a transfer mutation command
func (h *TransferHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	var id string
	err := h.service.With(func(eng *sim.Engine) error {
		switch cmd := request.(type) {
		case *UpdateTransferCommand:
			id = cmd.TransferID
			return eng.UpdateTransfer(cmd.TransferID, cmd.RatePercentage)
		case *PauseTransferCommand:
			id = cmd.TransferID
			return eng.PauseTransfer(cmd.TransferID, cmd.Paused)
		case *ReverseTransferCommand:
			id = cmd.TransferID
			return eng.ReverseTransfer(cmd.TransferID)
		case *DeleteTransferCommand:
			id = cmd.TransferID
			return eng.DeleteTransfer(cmd.TransferID)
		default:
			return fmt.Errorf("invalid request type: expected a transfer command")
		}
	})
	if err != nil {
		return nil, err
	}

	return &TransferResponse{TransferID: id}, nil
}
