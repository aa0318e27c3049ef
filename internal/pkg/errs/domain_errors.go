package errs

import "errors"

// Sentinel errors shared by the usecase layers. Handlers map these to
// HTTP statuses with errors.Is; repositories never return them directly.
var (
	// Slot reservation errors
	ErrCapacityExceeded = errors.New("time slot capacity exceeded")
	ErrLockTimeout      = errors.New("slot lock acquisition timed out")

	// Order lifecycle errors
	ErrInvalidStateTransition = errors.New("invalid order state transition")
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderNotOwned          = errors.New("order does not belong to actor")
	ErrTimeSlotNotFound       = errors.New("time slot not found")

	// Driver matching errors
	ErrDriverNotFound      = errors.New("driver not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrDriverUnavailable   = errors.New("driver is not available")
	ErrOrderNotAvailable   = errors.New("order is not available for applications")

	// Validation errors
	ErrInvalidArgument = errors.New("invalid argument")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
