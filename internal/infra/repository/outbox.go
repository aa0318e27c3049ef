package repository

import (
	"context"
	"encoding/json"
	"time"

	"laundry-orders/internal/events"
	"laundry-orders/internal/infra"
	"laundry-orders/internal/infra/db"

	"github.com/google/uuid"
)

type OutboxRow struct {
	ID        uuid.UUID
	EventType string
	Payload   json.RawMessage
	CreatedAt time.Time
}

type OutboxRepository struct {
	dbtx db.DBTX
}

func NewOutboxRepository(dbtx db.DBTX) *OutboxRepository {
	return &OutboxRepository{dbtx: dbtx}
}

// Insert records the event in the same transaction as the mutation that
// produced it; the drain job delivers pending rows later.
func (r *OutboxRepository) Insert(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal event payload", err)
	}

	const insert = `
		INSERT INTO event_outbox (id, event_type, payload, status, created_at)
		VALUES ($1, $2, $3, 'pending', $4)`

	_, err = r.dbtx.Exec(ctx, insert, uuid.New(), event.EventType(), payload, event.OccurredAt())
	if err != nil {
		return infra.WrapRepoErr("failed to insert outbox event", err)
	}
	return nil
}

// ListPending returns up to limit undelivered rows, oldest first.
// Delivery is at-least-once: a row is only marked sent after the sink
// accepted it, so a crash mid-batch re-delivers rather than drops.
func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxRow, error) {
	const selectPending = `
		SELECT id, event_type, payload, created_at
		FROM event_outbox
		WHERE status = 'pending'
		ORDER BY created_at
		LIMIT $1`

	rows, err := r.dbtx.Query(ctx, selectPending, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending events", err)
	}
	defer rows.Close()

	var pending []OutboxRow
	for rows.Next() {
		var row OutboxRow
		if err := rows.Scan(&row.ID, &row.EventType, &row.Payload, &row.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan outbox event", err)
		}
		pending = append(pending, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("outbox iteration failed", err)
	}
	return pending, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	const markSent = `
		UPDATE event_outbox
		SET status = 'sent', sent_at = $2
		WHERE id = $1`

	_, err := r.dbtx.Exec(ctx, markSent, id, sentAt)
	if err != nil {
		return infra.WrapRepoErr("failed to mark event as sent", err)
	}
	return nil
}
