package orm

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/johssalinas/backend-accenture/pkg/metrics"
)

// IsNotFound reports a First/Take miss.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation reports a unique-constraint failure. TranslateError
// covers dialects that implement it; the message match covers the rest.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	for _, s := range []string{"UNIQUE constraint failed", "duplicate key", "Duplicate entry", "Cannot insert duplicate key"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// Transaction runs fn in a transaction, timed under op.
func Transaction(ctx context.Context, db *gorm.DB, op string, fn func(tx *gorm.DB) error) error {
	defer metrics.ObserveDBQuery(op, time.Now())
	return db.WithContext(ctx).Transaction(fn)
}
