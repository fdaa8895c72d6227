package postgre

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"

	repo "ticket-srv/internal/bulk/repository"
)

func TestInsertError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation", &pq.Error{Code: "23505"}, repo.ErrConstraintViolation},
		{"foreign key violation", &pq.Error{Code: "23503"}, repo.ErrConstraintViolation},
		{"wrapped constraint violation", fmt.Errorf("exec: %w", &pq.Error{Code: "23502"}), repo.ErrConstraintViolation},
		{"connection failure", &pq.Error{Code: "08006"}, repo.ErrFailedToInsert},
		{"serialization failure", &pq.Error{Code: "40001"}, repo.ErrFailedToInsert},
		{"non-driver error", errors.New("broken pipe"), repo.ErrFailedToInsert},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := insertError(tc.err); got != tc.want {
				t.Errorf("insertError() = %v, want %v", got, tc.want)
			}
		})
	}
}
