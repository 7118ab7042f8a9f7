// Package handlers contains the Fiber HTTP handlers. Handlers are thin: they
// parse and validate input, call a service with the caller's identity, and
// map service errors onto HTTP statuses.
package handlers

import (
	"bankcards/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// serverError logs the internal detail and returns an opaque 500. The cause
// is never sent to the caller.
func serverError(c *fiber.Ctx, err error) error {
	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("internal error")
	return response.ServerError(c, "internal server error")
}

// HealthCheck reports service liveness.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
