package chat

import "fmt"

// Status is the read state of a message.
type Status string

const (
	StatusUnread Status = "unread"
	StatusRead   Status = "read"
)

// IsValid returns true if the status is recognized.
func (s Status) IsValid() bool {
	return s == StatusUnread || s == StatusRead
}

func (s Status) String() string { return string(s) }

// ParseStatus converts a stored value to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid chat status: %s", s)
	}
	return st, nil
}
