package postgre

import (
	"context"
	"database/sql"
	"time"

	repo "ticket-srv/internal/bulk/repository"
	"ticket-srv/internal/model"
)

const defaultDeadLetterLimit = 100

// CreateDeadLetter stores a permanently failed chunk for manual review.
func (r *implRepository) CreateDeadLetter(ctx context.Context, opt repo.CreateDeadLetterOptions) (model.DeadLetter, error) {
	dl := model.DeadLetter{
		BatchID:      opt.BatchID,
		Topic:        opt.Topic,
		MessageKey:   opt.MessageKey,
		Payload:      opt.Payload,
		ErrorMessage: opt.ErrorMessage,
		ErrorCode:    opt.ErrorCode,
		CreatedAt:    opt.FailedAt,
	}
	if dl.CreatedAt.IsZero() {
		dl.CreatedAt = time.Now()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO bulk_dead_letters (batch_id, topic, message_key, payload, error_message, error_code, processed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
		RETURNING id`,
		dl.BatchID, dl.Topic, dl.MessageKey, dl.Payload, dl.ErrorMessage, dl.ErrorCode, dl.CreatedAt,
	).Scan(&dl.ID)
	if err != nil {
		r.l.Errorf(ctx, "bulk.repository.postgre.CreateDeadLetter: Failed to insert dead letter: %v", err)
		return model.DeadLetter{}, repo.ErrFailedToInsert
	}

	return dl, nil
}

// GetDeadLetter fetches a dead letter by id.
func (r *implRepository) GetDeadLetter(ctx context.Context, id int64) (model.DeadLetter, error) {
	var dl model.DeadLetter
	var reprocessedAt sql.NullTime
	var notes sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT id, batch_id, topic, message_key, payload, error_message, error_code, processed, reprocessed_at, processing_notes, created_at
		FROM bulk_dead_letters
		WHERE id = $1`, id,
	).Scan(&dl.ID, &dl.BatchID, &dl.Topic, &dl.MessageKey, &dl.Payload, &dl.ErrorMessage, &dl.ErrorCode,
		&dl.Processed, &reprocessedAt, &notes, &dl.CreatedAt)
	if err == sql.ErrNoRows {
		return model.DeadLetter{}, repo.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "bulk.repository.postgre.GetDeadLetter: Failed to get dead letter: %v", err)
		return model.DeadLetter{}, repo.ErrFailedToGet
	}

	if reprocessedAt.Valid {
		dl.ReprocessedAt = &reprocessedAt.Time
	}
	if notes.Valid {
		dl.ProcessingNotes = notes.String
	}

	return dl, nil
}

// ListDeadLetters lists stored dead letters, newest first.
func (r *implRepository) ListDeadLetters(ctx context.Context, opt repo.ListDeadLettersOptions) ([]*model.DeadLetter, error) {
	limit := opt.Limit
	if limit <= 0 {
		limit = defaultDeadLetterLimit
	}

	query := `
		SELECT id, batch_id, topic, message_key, payload, error_message, error_code, processed, reprocessed_at, processing_notes, created_at
		FROM bulk_dead_letters`
	args := []interface{}{}
	where := ""

	if !opt.IncludeResolved {
		where = " WHERE processed = FALSE"
	}
	if opt.BatchID != "" {
		if where == "" {
			where = " WHERE batch_id = $1"
		} else {
			where += " AND batch_id = $1"
		}
		args = append(args, opt.BatchID)
	}

	query += where + " ORDER BY created_at DESC"
	args = append(args, limit)
	if len(args) == 1 {
		query += " LIMIT $1"
	} else {
		query += " LIMIT $2"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "bulk.repository.postgre.ListDeadLetters: Failed to list dead letters: %v", err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var result []*model.DeadLetter
	for rows.Next() {
		var dl model.DeadLetter
		var reprocessedAt sql.NullTime
		var notes sql.NullString

		if err := rows.Scan(&dl.ID, &dl.BatchID, &dl.Topic, &dl.MessageKey, &dl.Payload, &dl.ErrorMessage,
			&dl.ErrorCode, &dl.Processed, &reprocessedAt, &notes, &dl.CreatedAt); err != nil {
			r.l.Errorf(ctx, "bulk.repository.postgre.ListDeadLetters: Failed to scan dead letter: %v", err)
			return nil, repo.ErrFailedToList
		}
		if reprocessedAt.Valid {
			dl.ReprocessedAt = &reprocessedAt.Time
		}
		if notes.Valid {
			dl.ProcessingNotes = notes.String
		}
		result = append(result, &dl)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "bulk.repository.postgre.ListDeadLetters: Row iteration failed: %v", err)
		return nil, repo.ErrFailedToList
	}

	return result, nil
}

// MarkReprocessed flags a dead letter as replayed.
func (r *implRepository) MarkReprocessed(ctx context.Context, opt repo.MarkReprocessedOptions) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bulk_dead_letters
		SET processed = TRUE, reprocessed_at = $2, processing_notes = $3
		WHERE id = $1`,
		opt.ID, time.Now(), opt.Notes)
	if err != nil {
		r.l.Errorf(ctx, "bulk.repository.postgre.MarkReprocessed: Failed to update dead letter: %v", err)
		return repo.ErrFailedToMarkReprocessed
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
