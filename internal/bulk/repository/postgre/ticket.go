package postgre

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"

	repo "ticket-srv/internal/bulk/repository"
)

// insertError classifies a driver failure. Integrity violations (class 23)
// cannot succeed on retry, connection failures (class 08) and everything else
// get the generic insert error, which callers treat as retryable.
func insertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return repo.ErrConstraintViolation
	}
	return repo.ErrFailedToInsert
}

const insertTicketQuery = `
	INSERT INTO tickets (ticket_number, status, priority, customer_id, assigned_to, batch_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (ticket_number) DO NOTHING`

// InsertTickets persists a chunk of tickets in one transaction. Conflicting
// ticket numbers are skipped so redelivered chunks stay idempotent.
func (r *implRepository) InsertTickets(ctx context.Context, opt repo.InsertTicketsOptions) (repo.InsertTicketsResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "bulk.repository.postgre.InsertTickets: Failed to begin transaction: %v", err)
		return repo.InsertTicketsResult{}, repo.ErrFailedToInsert
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, insertTicketQuery)
	if err != nil {
		r.l.Errorf(ctx, "bulk.repository.postgre.InsertTickets: Failed to prepare statement: %v", err)
		return repo.InsertTicketsResult{}, repo.ErrFailedToInsert
	}
	defer stmt.Close()

	now := time.Now()
	var result repo.InsertTicketsResult
	for _, t := range opt.Tickets {
		res, execErr := stmt.ExecContext(ctx,
			t.TicketNumber, t.Status, t.Priority, t.CustomerID, t.AssignedTo, opt.BatchID, now)
		if execErr != nil {
			r.l.Errorf(ctx, "bulk.repository.postgre.InsertTickets: Failed to insert ticket %s: %v", t.TicketNumber, execErr)
			return repo.InsertTicketsResult{}, insertError(execErr)
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			result.Duplicates++
			continue
		}
		result.Inserted++
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "bulk.repository.postgre.InsertTickets: Failed to commit transaction: %v", err)
		return repo.InsertTicketsResult{}, insertError(err)
	}

	return result, nil
}

// CountByBatch returns the number of persisted tickets for a batch.
func (r *implRepository) CountByBatch(ctx context.Context, batchID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets WHERE batch_id = $1`, batchID).Scan(&count)
	if err != nil {
		r.l.Errorf(ctx, "bulk.repository.postgre.CountByBatch: Failed to count tickets: %v", err)
		return 0, repo.ErrFailedToCount
	}
	return count, nil
}
