package usecase

import (
	"context"
	"errors"

	"ticket-srv/internal/bulk"
	repo "ticket-srv/internal/bulk/repository"
)

// ListDeadLetters returns stored dead letters for manual review.
func (uc *implUseCase) ListDeadLetters(ctx context.Context, input bulk.ListDeadLettersInput) (bulk.ListDeadLettersOutput, error) {
	deadLetters, err := uc.repo.ListDeadLetters(ctx, repo.ListDeadLettersOptions{
		Limit:           input.Limit,
		IncludeResolved: input.IncludeResolved,
	})
	if err != nil {
		return bulk.ListDeadLettersOutput{}, err
	}
	return bulk.ListDeadLettersOutput{DeadLetters: deadLetters}, nil
}

// ReprocessDeadLetter replays a dead letter's original payload back onto the
// main topic and marks it processed.
func (uc *implUseCase) ReprocessDeadLetter(ctx context.Context, input bulk.ReprocessInput) (bulk.ReprocessOutput, error) {
	deadLetter, err := uc.repo.GetDeadLetter(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return bulk.ReprocessOutput{}, bulk.ErrDeadLetterNotFound
		}
		return bulk.ReprocessOutput{}, err
	}

	if deadLetter.Processed {
		return bulk.ReprocessOutput{}, bulk.ErrAlreadyReprocessed
	}

	if err := uc.producer.RepublishChunk(ctx, deadLetter.MessageKey, deadLetter.Payload); err != nil {
		uc.l.Errorf(ctx, "bulk.usecase.ReprocessDeadLetter: Failed to republish dead letter %d: %v", input.ID, err)
		return bulk.ReprocessOutput{}, err
	}

	if err := uc.repo.MarkReprocessed(ctx, repo.MarkReprocessedOptions{
		ID:    input.ID,
		Notes: input.Notes,
	}); err != nil {
		// Replay already happened, record keeping failed. Surface the error so
		// the operator knows the flag was not set.
		uc.l.Errorf(ctx, "bulk.usecase.ReprocessDeadLetter: Republished %d but failed to mark processed: %v", input.ID, err)
		return bulk.ReprocessOutput{}, err
	}

	uc.l.Infof(ctx, "bulk.usecase.ReprocessDeadLetter: Dead letter %d republished for batch %s", input.ID, deadLetter.BatchID)
	return bulk.ReprocessOutput{ID: input.ID, Republished: true}, nil
}
