package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind classifies a domain error. None of the kinds are transient; callers
// must not retry on any of them.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindDuplicateName
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicateName:
		return "duplicate_name"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	}
	return "unknown"
}

// Validation reasons.
const (
	ReasonBlankName    = "blank-name"
	ReasonNameTooLong  = "too-long"
	ReasonNotPositive  = "not-positive"
	ReasonNullArgument = "null-argument"
)

// Error is the single error type raised by the domain and its adapters.
type Error struct {
	Kind    Kind
	Entity  string // "franchise" | "branch" | "product"
	Reason  string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches on Kind, and on Reason when the target sets one, so
// errors.Is(err, ErrNotFound) works through any amount of wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

var (
	ErrValidation    = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrDuplicateName = &Error{Kind: KindDuplicateName, Message: "duplicate name"}
	ErrNotFound      = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict      = &Error{Kind: KindConflict, Message: "concurrent modification"}
)

func NewValidationError(entity, reason, message string) *Error {
	return &Error{Kind: KindValidation, Entity: entity, Reason: reason, Message: message}
}

func NewDuplicateNameError(entity, name, scope string) *Error {
	msg := fmt.Sprintf("%s name %q already exists", capitalize(entity), name)
	if scope != "" {
		msg += " in this " + scope
	}
	return &Error{Kind: KindDuplicateName, Entity: entity, Message: msg}
}

func NewNotFoundError(entity string, id uuid.UUID) *Error {
	return &Error{
		Kind:    KindNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s not found with id: %s", capitalize(entity), id),
	}
}

func NewConflictError(entity string, id uuid.UUID) *Error {
	return &Error{
		Kind:    KindConflict,
		Entity:  entity,
		Message: fmt.Sprintf("%s %s was modified concurrently or no longer exists", entity, id),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
