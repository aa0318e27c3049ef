package repository

import (
	"context"
	"time"

	"laundry-orders/internal/domain/driver"
	"laundry-orders/internal/infra"
	"laundry-orders/internal/infra/db"

	"github.com/google/uuid"
)

type DriverRepository struct {
	dbtx db.DBTX
}

func NewDriverRepository(dbtx db.DBTX) *DriverRepository {
	return &DriverRepository{dbtx: dbtx}
}

func (r *DriverRepository) FindByID(ctx context.Context, id uuid.UUID) (*driver.Driver, error) {
	const selectDriver = `
		SELECT id, status, lat, lng, updated_at
		FROM drivers
		WHERE id = $1`

	var (
		driverID  uuid.UUID
		status    string
		lat, lng  float64
		updatedAt time.Time
	)
	err := r.dbtx.QueryRow(ctx, selectDriver, id).Scan(&driverID, &status, &lat, &lng, &updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load driver", err)
	}

	return driver.ReconstructDriver(driverID, driver.Status(status), lat, lng, updatedAt), nil
}
