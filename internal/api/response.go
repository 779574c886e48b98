package api

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"task-planner/internal/errors"
	"task-planner/internal/validation"
)

const unexpectedErrorMessage = "An unexpected error occurred."

// respondError writes {error[, fields]} with the status the error maps to
func respondError(c *gin.Context, op string, err error) {
	status := errors.HTTPStatus(err)

	entry := log.WithFields(log.Fields{
		"operation":  op,
		"status":     status,
		"code":       errors.GetErrorCode(err),
		"request_id": c.GetString(requestIDKey),
	}).WithError(err)
	if errors.ShouldLogError(err) {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}

	message := unexpectedErrorMessage
	if errors.IsAppError(err) {
		message = errors.GetUserMessage(err)
	}

	body := gin.H{"error": message}
	if fields := validation.FieldErrors(err); len(fields) > 0 {
		body["fields"] = fields
	}
	c.AbortWithStatusJSON(status, body)
}

// bindError reports a body gin could not decode
func bindError(c *gin.Context, op string, err error) {
	respondError(c, op, errors.NewValidationError("invalid request body", err))
}
