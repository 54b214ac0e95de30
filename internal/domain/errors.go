package domain

import "fmt"

// NotFoundError reports that a referenced entity does not exist.
// Handlers map it to HTTP 404.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// ValidationError reports malformed or unusable input.
// Handlers map it to HTTP 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// BusyError reports that a computation for the key is already
// in flight and the requested action was refused without side
// effects. Handlers map it to HTTP 409.
type BusyError struct {
	Key string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("computation for %q is already in progress", e.Key)
}

// MissingFieldError reports that an oracle payload lacked a required
// nested path. The aggregator refuses to merge such payloads.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("analysis payload is missing required field %q", e.Path)
}
