package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Zone errors

type InvalidZoneError struct {
	*DomainError
	Zone ZoneID
}

func NewInvalidZoneError(zone ZoneID) *InvalidZoneError {
	return &InvalidZoneError{
		DomainError: &DomainError{Message: fmt.Sprintf("unknown zone %q", zone)},
		Zone:        zone,
	}
}

// Structure errors

type InvalidBuildingError struct {
	*DomainError
	Building BuildingID
}

func NewInvalidBuildingError(building BuildingID) *InvalidBuildingError {
	return &InvalidBuildingError{
		DomainError: &DomainError{Message: fmt.Sprintf("unknown building %q", building)},
		Building:    building,
	}
}

type BuildingNotAllowedError struct {
	*DomainError
	Building BuildingID
	Zone     ZoneID
}

func NewBuildingNotAllowedError(building BuildingID, zone ZoneID) *BuildingNotAllowedError {
	return &BuildingNotAllowedError{
		DomainError: &DomainError{Message: fmt.Sprintf("building %q cannot be placed in zone %q", building, zone)},
		Building:    building,
		Zone:        zone,
	}
}

// Resource errors

type InsufficientResourceError struct {
	*DomainError
	Resource  string
	Required  float64
	Available float64
}

func NewInsufficientResourceError(resource string, required, available float64) *InsufficientResourceError {
	return &InsufficientResourceError{
		DomainError: &DomainError{
			Message: fmt.Sprintf("insufficient %s: need %g, have %g", resource, required, available),
		},
		Resource:  resource,
		Required:  required,
		Available: available,
	}
}

// Research errors

type InvalidResearchError struct {
	*DomainError
	Tree TreeID
	Tier TierID
}

func NewInvalidResearchError(tree TreeID, tier TierID) *InvalidResearchError {
	return &InvalidResearchError{
		DomainError: &DomainError{Message: fmt.Sprintf("unknown research tier %s/%s", tree, tier)},
		Tree:        tree,
		Tier:        tier,
	}
}

// Transfer errors

type InvalidTransferError struct {
	*DomainError
}

func NewInvalidTransferError(message string) *InvalidTransferError {
	return &InvalidTransferError{DomainError: &DomainError{Message: message}}
}

type TransferNotFoundError struct {
	*DomainError
	TransferID string
}

func NewTransferNotFoundError(id string) *TransferNotFoundError {
	return &TransferNotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("transfer %q not found", id)},
		TransferID:  id,
	}
}

// Action dispatch errors

type UnknownActionError struct {
	*DomainError
	Action string
}

func NewUnknownActionError(action string) *UnknownActionError {
	return &UnknownActionError{
		DomainError: &DomainError{Message: fmt.Sprintf("unknown action %q", action)},
		Action:      action,
	}
}

type InvalidParameterError struct {
	*DomainError
	Parameter string
}

func NewInvalidParameterError(parameter, message string) *InvalidParameterError {
	return &InvalidParameterError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s: %s", parameter, message)},
		Parameter:   parameter,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
