package contract

import "fmt"

// Status is the workflow step of a contract.
type Status string

const (
	StatusDrafted Status = "DRAFTED"
	StatusSent    Status = "SENT"
)

var validTransitions = map[Status][]Status{
	StatusDrafted: {StatusSent},
	StatusSent:    {StatusSent},
}

var steps = map[Status]int{
	StatusDrafted: 1,
	StatusSent:    2,
}

// IsValid returns true if the status is recognized.
func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo returns true if moving to target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Step is the numeric workflow step shown to clients.
func (s Status) Step() int {
	return steps[s]
}

func (s Status) String() string { return string(s) }

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid contract status: %s", s)
	}
	return st, nil
}
