package model

import (
	"testing"
)

func TestNormalizeStatus(t *testing.T) {
	t.Run("known values pass through", func(t *testing.T) {
		cases := map[string]string{
			"OPEN":        StatusOpen,
			"in_progress": StatusInProgress,
			"  pending  ": StatusPending,
			"Resolved":    StatusResolved,
			"closed":      StatusClosed,
			"cancelled":   StatusCancelled,
		}
		for raw, want := range cases {
			if got := NormalizeStatus(raw); got != want {
				t.Errorf("NormalizeStatus(%q) = %q, want %q", raw, got, want)
			}
		}
	})

	t.Run("unknown and empty fall back to OPEN", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "ON_HOLD", "done"} {
			if got := NormalizeStatus(raw); got != StatusOpen {
				t.Errorf("NormalizeStatus(%q) = %q, want %q", raw, got, StatusOpen)
			}
		}
	})
}

func TestNormalizePriority(t *testing.T) {
	t.Run("known values pass through", func(t *testing.T) {
		cases := map[string]string{
			"low":      PriorityLow,
			"MEDIUM":   PriorityMedium,
			" High ":   PriorityHigh,
			"critical": PriorityCritical,
		}
		for raw, want := range cases {
			if got := NormalizePriority(raw); got != want {
				t.Errorf("NormalizePriority(%q) = %q, want %q", raw, got, want)
			}
		}
	})

	t.Run("unknown and empty fall back to MEDIUM", func(t *testing.T) {
		for _, raw := range []string{"", "URGENT", "p1"} {
			if got := NormalizePriority(raw); got != PriorityMedium {
				t.Errorf("NormalizePriority(%q) = %q, want %q", raw, got, PriorityMedium)
			}
		}
	})
}
