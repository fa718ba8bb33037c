package chat

import (
	"fmt"
	"unicode/utf8"
)

// ValidationError reports a message rejected before any tool is asked.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func validate(text string) error {
	n := utf8.RuneCountInString(text)
	switch {
	case n == 0:
		return &ValidationError{Field: "message", Reason: "Message cannot be empty."}
	case n < minMessageChars:
		return &ValidationError{Field: "message", Reason: "Message must be at least 2 characters long."}
	case n > maxMessageChars:
		return &ValidationError{Field: "message", Reason: "Message must be less than 5000 characters."}
	}
	return nil
}

func validateShare(public bool, recipient string, days int) error {
	switch {
	case !public && recipient == "":
		return &ValidationError{Field: "recipient", Reason: "You must select a recipient when sharing privately."}
	case days < 0:
		return &ValidationError{Field: "expiration_days", Reason: "Expiration cannot be negative."}
	case days > maxExpirationDays:
		return &ValidationError{Field: "expiration_days", Reason: "Expiration cannot exceed 365 days."}
	}
	return nil
}
