// Package services holds the use cases. Each service loads aggregates
// through the repository ports, lets the domain enforce its rules and
// saves the result.
package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/johssalinas/backend-accenture/app/domain"
	"github.com/johssalinas/backend-accenture/pkg/metrics"
)

// outcome labels franchise_operations_total.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrDuplicateName):
		return "duplicate"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

// finish records the operation and logs its result. Domain errors pass
// through untouched; anything else is wrapped with the operation name.
//
//	defer finish(s.log, "franchise.create", &err)
func finish(log *zap.Logger, op string, err *error) {
	o := outcome(*err)
	metrics.RecordOperation(op, o)

	switch o {
	case "ok":
		log.Info(op+" succeeded", zap.String("operation", op))
	case "error":
		log.Error(op+" failed", zap.String("operation", op), zap.Error(*err))
		*err = fmt.Errorf("%s: %w", op, *err)
	default:
		log.Info(op+" rejected", zap.String("operation", op), zap.String("outcome", o), zap.Error(*err))
	}
}

func named(l *zap.Logger, name string) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return l.Named(name)
}
