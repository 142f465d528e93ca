package domain

import "github.com/google/uuid"

// newID returns a time-ordered (version 7) UUID. Within a process ids are
// strictly increasing, so sorting by id reproduces creation order when
// timestamps tie.
func newID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
