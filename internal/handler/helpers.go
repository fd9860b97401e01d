package handler

import (
	"strconv"

	"goldshop-api/internal/apperr"
	"goldshop-api/internal/middleware"
	"goldshop-api/internal/policy"

	"github.com/gofiber/fiber/v2"
)

// actor pulls the authenticated actor set by the auth middleware.
func actor(c *fiber.Ctx) (policy.Actor, bool) {
	return middleware.Actor(c)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
}

// paramID parses the :id route parameter.
func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func badID(c *fiber.Ctx) error {
	return c.Status(400).JSON(fiber.Map{"error": "Invalid ID"})
}

// fail maps a business error onto the wire.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

// includeDeleted reads the ?include_deleted flag.
func includeDeleted(c *fiber.Ctx) bool {
	return c.Query("include_deleted") == "true"
}
