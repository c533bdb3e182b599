package receipt

import "fmt"

// Status represents the lifecycle state of a receipt
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed from this status
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo checks the full lifecycle edge used by import and export
// receipts: pending -> approved -> completed, with cancellation from pending
// or approved. Completed and cancelled are terminal.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusApproved || target == StatusCancelled
	case StatusApproved:
		return target == StatusCompleted || target == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false
	}
	return false
}

// CanTransitionDirect checks the reduced lifecycle used by transfer receipts,
// which skip approval: pending -> completed or pending -> cancelled.
func (s Status) CanTransitionDirect(target Status) bool {
	if s != StatusPending {
		return false
	}
	return target == StatusCompleted || target == StatusCancelled
}

// InvalidTransitionError is returned for an illegal status edge, including a
// repeated completion. Completing twice must fail so the stock effect is
// applied exactly once.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// Error implements the error interface
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// transitionTo applies the shared transition rules and returns the status the
// aggregate should hold afterwards. Re-requesting the current status is a
// no-op for the non-terminal states and an error for the terminal ones.
func transitionTo(current, target Status, direct bool) (Status, error) {
	if !target.IsValid() {
		return current, &InvalidTransitionError{From: current, To: target}
	}
	if target == current {
		if current == StatusPending || current == StatusApproved {
			return current, nil
		}
		return current, &InvalidTransitionError{From: current, To: target}
	}

	allowed := current.CanTransitionTo(target)
	if direct {
		allowed = current.CanTransitionDirect(target)
	}
	if !allowed {
		return current, &InvalidTransitionError{From: current, To: target}
	}
	return target, nil
}
