package domain

type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var AllStatuses = []Status{StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled}

// transitions lists, for each status, the statuses it may move to.
// completed and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Active reports whether an order in this status can still receive items.
func (s Status) Active() bool {
	return s != StatusCompleted && s != StatusCancelled
}

func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
// Same-state moves are never allowed.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns a copy of the statuses reachable from s.
func NextStatuses(s Status) []Status {
	return append([]Status(nil), transitions[s]...)
}
