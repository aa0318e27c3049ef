package driver

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrApplicationSettled = errors.New("application has already been settled")

type ApplicationStatus string

const (
	ApplicationApplied  ApplicationStatus = "applied"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) String() string {
	return string(s)
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationApplied, ApplicationAccepted, ApplicationRejected:
		return true
	default:
		return false
	}
}

// Application is a driver's request to be assigned to a specific order.
// Created as Applied, settled once by Accept or Reject, never mutated
// afterward. At most one application per order may ever reach Accepted.
type Application struct {
	id        uuid.UUID
	orderID   uuid.UUID
	driverID  uuid.UUID
	status    ApplicationStatus
	appliedAt time.Time
}

func NewApplication(orderID, driverID uuid.UUID, now time.Time) *Application {
	return &Application{
		id:        uuid.New(),
		orderID:   orderID,
		driverID:  driverID,
		status:    ApplicationApplied,
		appliedAt: now,
	}
}

func ReconstructApplication(id, orderID, driverID uuid.UUID, status ApplicationStatus, appliedAt time.Time) *Application {
	return &Application{
		id:        id,
		orderID:   orderID,
		driverID:  driverID,
		status:    status,
		appliedAt: appliedAt,
	}
}

func (a *Application) Accept() error {
	if a.status != ApplicationApplied {
		return ErrApplicationSettled
	}
	a.status = ApplicationAccepted
	return nil
}

func (a *Application) Reject() error {
	if a.status != ApplicationApplied {
		return ErrApplicationSettled
	}
	a.status = ApplicationRejected
	return nil
}

func (a *Application) IsSettled() bool {
	return a.status != ApplicationApplied
}

func (a *Application) ID() uuid.UUID             { return a.id }
func (a *Application) OrderID() uuid.UUID        { return a.orderID }
func (a *Application) DriverID() uuid.UUID       { return a.driverID }
func (a *Application) Status() ApplicationStatus { return a.status }
func (a *Application) AppliedAt() time.Time      { return a.appliedAt }
