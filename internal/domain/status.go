package domain

// Status is the review state of an article.
type Status string

const (
	StatusPending   Status = "pending"
	StatusVerified  Status = "verified"
	StatusDiscarded Status = "discarded"
)

// Server vocabulary for statuses.
const (
	APIStatusPending  = "PENDING"
	APIStatusVerified = "VERIFIED"
	APIStatusDiscard  = "DISCARD"
)

// Statuses lists every status in menu order.
func Statuses() []Status {
	return []Status{StatusPending, StatusVerified, StatusDiscarded}
}

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusDiscarded:
		return true
	}
	return false
}

// APIValue translates the status into the server vocabulary.
func (s Status) APIValue() string {
	switch s {
	case StatusVerified:
		return APIStatusVerified
	case StatusDiscarded:
		return APIStatusDiscard
	default:
		return APIStatusPending
	}
}

// StatusFromAPI translates a server status. Unknown values map to pending.
func StatusFromAPI(value string) Status {
	switch value {
	case APIStatusVerified:
		return StatusVerified
	case APIStatusDiscard:
		return StatusDiscarded
	default:
		return StatusPending
	}
}

// IsTransitionAllowed reports whether an article may move from current to
// next. Pending can only be left; verified and discarded swap freely; a
// same-status move is never allowed.
func IsTransitionAllowed(current, next Status) bool {
	if current == next {
		return false
	}
	switch current {
	case StatusPending:
		return next == StatusVerified || next == StatusDiscarded
	case StatusVerified:
		return next == StatusDiscarded
	case StatusDiscarded:
		return next == StatusVerified
	}
	return false
}

// AllowedTransitions lists the statuses reachable from current.
func AllowedTransitions(current Status) []Status {
	var allowed []Status
	for _, next := range Statuses() {
		if IsTransitionAllowed(current, next) {
			allowed = append(allowed, next)
		}
	}
	return allowed
}
