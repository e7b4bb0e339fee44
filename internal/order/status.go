package order

import (
	"errors"
	"fmt"
	"strings"
)

// statusRanks orders the forward progression. Cancel is deliberately absent:
// it is terminal and exempt from rank comparison.
var statusRanks = map[Status]int{
	StatusPending:    0,
	StatusInProcess:  1,
	StatusDispatched: 2,
	StatusComplete:   3,
}

// ErrCannotRevert is surfaced verbatim to the operator.
var ErrCannotRevert = errors.New("Cannot revert to previous status")

var ErrCancelReasonRequired = errors.New("cancellation requires a reason")

// Rank returns the ordinal position of a status in the forward progression.
// ok is false for Cancel and for unknown statuses.
func (s Status) Rank() (rank int, ok bool) {
	rank, ok = statusRanks[s]
	return rank, ok
}

func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusCancel
}

// ParseStatus accepts the status spellings used across stored orders and the
// admin UI ("In-Process" vs "in-process" vs "inprocess").
func ParseStatus(value string) (Status, bool) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), " ", "-")) {
	case "pending":
		return StatusPending, true
	case "in-process", "inprocess":
		return StatusInProcess, true
	case "dispatched":
		return StatusDispatched, true
	case "complete", "completed":
		return StatusComplete, true
	case "cancel", "cancelled", "canceled":
		return StatusCancel, true
	default:
		return "", false
	}
}

// Transition validates a status change without applying it. Moving to a
// lower-ranked status is rejected unless the target is Cancel; terminal
// states admit no transition other than staying put; cancelling requires a
// non-empty operator reason. Validation happens before any persistence so a
// known-invalid transition never costs a round-trip.
func Transition(current, next Status, cancelReason string) error {
	if current == next {
		return nil
	}

	if current.Terminal() {
		return fmt.Errorf("order is already %s", current)
	}

	if next == StatusCancel {
		if strings.TrimSpace(cancelReason) == "" {
			return ErrCancelReasonRequired
		}
		return nil
	}

	nextRank, ok := next.Rank()
	if !ok {
		return fmt.Errorf("unknown status %q", string(next))
	}
	currentRank, ok := current.Rank()
	if !ok {
		return fmt.Errorf("unknown status %q", string(current))
	}

	if nextRank < currentRank {
		return ErrCannotRevert
	}
	return nil
}
