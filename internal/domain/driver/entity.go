package driver

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidStatus = errors.New("invalid driver status")

type Status string

const (
	StatusOffline   Status = "offline"
	StatusAvailable Status = "available"
	StatusBusy      Status = "busy"
	StatusRevoked   Status = "revoked"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusOffline, StatusAvailable, StatusBusy, StatusRevoked:
		return true
	default:
		return false
	}
}

// CanApply reports whether a driver in this status may apply for orders.
// Only Available drivers can take on new work.
func (s Status) CanApply() bool {
	return s == StatusAvailable
}

type Driver struct {
	id        uuid.UUID
	status    Status
	latitude  float64
	longitude float64
	updatedAt time.Time
}

func ReconstructDriver(id uuid.UUID, status Status, latitude, longitude float64, updatedAt time.Time) *Driver {
	return &Driver{
		id:        id,
		status:    status,
		latitude:  latitude,
		longitude: longitude,
		updatedAt: updatedAt,
	}
}

func (d *Driver) ID() uuid.UUID        { return d.id }
func (d *Driver) Status() Status       { return d.status }
func (d *Driver) Latitude() float64    { return d.latitude }
func (d *Driver) Longitude() float64   { return d.longitude }
func (d *Driver) UpdatedAt() time.Time { return d.updatedAt }
