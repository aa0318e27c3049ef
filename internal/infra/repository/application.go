package repository

import (
	"context"
	"time"

	"laundry-orders/internal/domain/driver"
	"laundry-orders/internal/infra"
	"laundry-orders/internal/infra/db"

	"github.com/google/uuid"
)

type ApplicationRepository struct {
	dbtx db.DBTX
}

func NewApplicationRepository(dbtx db.DBTX) *ApplicationRepository {
	return &ApplicationRepository{dbtx: dbtx}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *driver.Application) error {
	const insert = `
		INSERT INTO order_driver_applications (id, order_id, driver_id, status, applied_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.dbtx.Exec(ctx, insert,
		a.ID(), a.OrderID(), a.DriverID(), a.Status().String(), a.AppliedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create application", err)
	}
	return nil
}

func (r *ApplicationRepository) Get(ctx context.Context, id uuid.UUID) (*driver.Application, error) {
	const selectOne = `
		SELECT id, order_id, driver_id, status, applied_at
		FROM order_driver_applications
		WHERE id = $1
		FOR UPDATE`

	app, err := scanApplication(r.dbtx.QueryRow(ctx, selectOne, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load application", err)
	}
	return app, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, a *driver.Application) error {
	const update = `
		UPDATE order_driver_applications
		SET status = $2
		WHERE id = $1`

	tag, err := r.dbtx.Exec(ctx, update, a.ID(), a.Status().String())
	if err != nil {
		return infra.WrapRepoErr("failed to update application", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("application disappeared during update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ApplicationRepository) ListAppliedByOrder(ctx context.Context, orderID uuid.UUID) ([]*driver.Application, error) {
	const selectApplied = `
		SELECT id, order_id, driver_id, status, applied_at
		FROM order_driver_applications
		WHERE order_id = $1 AND status = 'applied'
		ORDER BY applied_at
		FOR UPDATE`

	rows, err := r.dbtx.Query(ctx, selectApplied, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list applications", err)
	}
	defer rows.Close()

	var apps []*driver.Application
	for rows.Next() {
		app, scanErr := scanApplication(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan application", scanErr)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("applications iteration failed", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) HasAcceptedForOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	const existsAccepted = `
		SELECT EXISTS (
			SELECT 1 FROM order_driver_applications
			WHERE order_id = $1 AND status = 'accepted'
		)`

	var exists bool
	if err := r.dbtx.QueryRow(ctx, existsAccepted, orderID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check accepted application", err)
	}
	return exists, nil
}

func (r *ApplicationRepository) ExistsForOrderAndDriver(ctx context.Context, orderID, driverID uuid.UUID) (bool, error) {
	const existsForDriver = `
		SELECT EXISTS (
			SELECT 1 FROM order_driver_applications
			WHERE order_id = $1 AND driver_id = $2
		)`

	var exists bool
	if err := r.dbtx.QueryRow(ctx, existsForDriver, orderID, driverID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check existing application", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*driver.Application, error) {
	var (
		id, orderID, driverID uuid.UUID
		status                string
		appliedAt             time.Time
	)
	if err := row.Scan(&id, &orderID, &driverID, &status, &appliedAt); err != nil {
		return nil, err
	}
	return driver.ReconstructApplication(id, orderID, driverID, driver.ApplicationStatus(status), appliedAt), nil
}
