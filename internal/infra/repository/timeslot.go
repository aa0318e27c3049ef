package repository

import (
	"context"
	"time"

	"laundry-orders/internal/domain/timeslot"
	"laundry-orders/internal/infra"
	"laundry-orders/internal/infra/db"

	"github.com/google/uuid"
)

type TimeSlotRepository struct {
	dbtx db.DBTX
}

func NewTimeSlotRepository(dbtx db.DBTX) *TimeSlotRepository {
	return &TimeSlotRepository{dbtx: dbtx}
}

func (r *TimeSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*timeslot.TimeSlot, error) {
	const selectSlot = `
		SELECT id, name, start_time_sec, end_time_sec, max_capacity, valid_weekdays
		FROM time_slots
		WHERE id = $1`

	var (
		slotID                 uuid.UUID
		name                   string
		startSec, endSec       int64
		maxCapacity            int
		weekdays               []int32
	)
	err := r.dbtx.QueryRow(ctx, selectSlot, id).Scan(
		&slotID, &name, &startSec, &endSec, &maxCapacity, &weekdays,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load time slot", err)
	}

	days := make([]time.Weekday, 0, len(weekdays))
	for _, d := range weekdays {
		days = append(days, time.Weekday(d))
	}

	return timeslot.ReconstructTimeSlot(
		slotID, name,
		time.Duration(startSec)*time.Second,
		time.Duration(endSec)*time.Second,
		maxCapacity, days,
	), nil
}
