package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"betbroker/service"
)

// respondError maps business error kinds to HTTP statuses. Unauthorized
// maps to 400: a missing external account is a caller setup problem,
// not a failed login. Only safe messages reach the response body;
// wrapped causes stay in the logs.
func respondError(c *fiber.Ctx, err error) error {
	kind := service.KindOf(err)

	var status int
	switch kind {
	case service.KindValidation, service.KindUnauthorized:
		status = fiber.StatusBadRequest
	case service.KindNotFound:
		status = fiber.StatusNotFound
	case service.KindConflict:
		status = fiber.StatusConflict
	case service.KindUpstream:
		status = fiber.StatusBadGateway
	default:
		status = fiber.StatusInternalServerError
	}

	message := "internal error"
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}

	entry := log.WithFields(log.Fields{
		"requestId": c.Locals(requestIDKey),
		"path":      c.Path(),
		"kind":      kind,
	})
	if status >= fiber.StatusInternalServerError {
		entry.WithError(err).Error("Request failed")
	} else {
		entry.WithError(err).Warn("Request rejected")
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}
