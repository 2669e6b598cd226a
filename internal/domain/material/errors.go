package material

import (
	"errors"
	"fmt"
)

var (
	ErrMaterialNotFound       = errors.New("material not found")
	ErrLogNotFound            = errors.New("material log not found")
	ErrRequestNotFound        = errors.New("material request not found")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrInvalidMovementType    = errors.New("movement type must be IN or OUT")
	ErrInvalidStateTransition = errors.New("invalid request state transition")
	ErrSameProjectTransfer    = errors.New("source and target project must differ")
)

// StateTransitionError wraps ErrInvalidStateTransition with the request's
// current status so callers can report it.
func StateTransitionError(current RequestStatus, attempted RequestStatus) error {
	return fmt.Errorf("%w: cannot move request from %q to %q", ErrInvalidStateTransition, current, attempted)
}
