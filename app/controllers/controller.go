// Package controllers adapts HTTP requests to the services.
package controllers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/johssalinas/backend-accenture/app/domain"
	"github.com/johssalinas/backend-accenture/pkg/ctx"
)

// fail maps a service error onto a response. Unknown errors become a
// generic 500 and are logged with the request's logger.
func fail(c *ctx.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		c.Logger().Error("request failed", zap.Error(err))
		c.Error(http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	switch de.Kind {
	case domain.KindValidation:
		c.Error(http.StatusBadRequest, de.Message)
	case domain.KindNotFound:
		c.NotFound(de.Message)
	case domain.KindDuplicateName, domain.KindConflict:
		c.Error(http.StatusConflict, de.Message)
	default:
		c.Error(http.StatusInternalServerError, de.Message)
	}
}

// nameRequest is the body of every rename endpoint.
type nameRequest struct {
	Name string `json:"name" validate:"notblank"`
}
