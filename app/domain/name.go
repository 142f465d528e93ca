package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest name, in characters, any entity may carry.
const MaxNameLength = 100

// Entity names used in error values.
const (
	EntityFranchise = "franchise"
	EntityBranch    = "branch"
	EntityProduct   = "product"
)

// normalizeName trims v and checks it is non-blank and not too long.
func normalizeName(entity, v string) (string, error) {
	name := strings.TrimSpace(v)
	if name == "" {
		return "", NewValidationError(entity, ReasonBlankName,
			fmt.Sprintf("%s name cannot be blank", capitalize(entity)))
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", NewValidationError(entity, ReasonNameTooLong,
			fmt.Sprintf("%s name cannot exceed %d characters", capitalize(entity), MaxNameLength))
	}
	return name, nil
}
