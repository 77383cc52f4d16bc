package mutate

import "fmt"

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ReservedError is returned for user edits of the synthesized birthday milestone.
type ReservedError struct {
	ID string
}

func (e ReservedError) Error() string {
	return fmt.Sprintf("milestone %s is managed by the birthday setting", e.ID)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
