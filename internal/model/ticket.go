package model

import (
	"strings"
	"time"
)

// Status constants
const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusPending    = "PENDING"
	StatusResolved   = "RESOLVED"
	StatusClosed     = "CLOSED"
	StatusCancelled  = "CANCELLED"
)

// Priority constants
const (
	PriorityLow      = "LOW"
	PriorityMedium   = "MEDIUM"
	PriorityHigh     = "HIGH"
	PriorityCritical = "CRITICAL"
)

// Ticket represents a support ticket row.
type Ticket struct {
	ID           int64      `json:"id"`
	TicketNumber string     `json:"ticket_number"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	CustomerID   int64      `json:"customer_id"`
	AssignedTo   *int64     `json:"assigned_to,omitempty"`
	BatchID      string     `json:"batch_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// NormalizeStatus maps raw input to a valid status. Unrecognized or empty
// values fall back to OPEN.
func NormalizeStatus(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case StatusOpen:
		return StatusOpen
	case StatusInProgress:
		return StatusInProgress
	case StatusPending:
		return StatusPending
	case StatusResolved:
		return StatusResolved
	case StatusClosed:
		return StatusClosed
	case StatusCancelled:
		return StatusCancelled
	default:
		return StatusOpen
	}
}

// NormalizePriority maps raw input to a valid priority. Unrecognized or empty
// values fall back to MEDIUM.
func NormalizePriority(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case PriorityLow:
		return PriorityLow
	case PriorityMedium:
		return PriorityMedium
	case PriorityHigh:
		return PriorityHigh
	case PriorityCritical:
		return PriorityCritical
	default:
		return PriorityMedium
	}
}
