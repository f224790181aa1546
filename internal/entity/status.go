package entity

// Status is an order's position in the fulfilment pipeline.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"

	// StatusCancelled exists in the stored enum but has no inbound
	// transition; an order can only carry it via administrative override.
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a member of the status enum.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Next returns the single legal successor in the pipeline. The second
// return is false for terminal states and unknown values.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusPending:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusCompleted, true
	}
	return "", false
}

// CanTransition reports whether moving from s to target is legal.
// Only the immediate successor is accepted: no skipping, no regressing,
// no same-state no-op.
func (s Status) CanTransition(target Status) bool {
	next, ok := s.Next()
	return ok && next == target
}

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	_, ok := s.Next()
	return !ok
}
