package exchange

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
)

func (a Action) IsValid() bool {
	return a == ActionAccept || a == ActionDecline
}

// DeclineReason distinguishes a manual decline (empty) from cascade
// invalidation after a competing accept consumed one of the books.
type DeclineReason string

const DeclineReasonBookUnavailable DeclineReason = "book no longer available"

func (r DeclineReason) IsEmpty() bool {
	return r == ""
}

func (r DeclineReason) String() string {
	return string(r)
}
