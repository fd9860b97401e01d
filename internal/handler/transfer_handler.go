package handler

import (
	"goldshop-api/internal/metrics"
	"goldshop-api/internal/model"
	"goldshop-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransferHandler struct {
	transferService service.TransferService
}

func NewTransferHandler(transferService service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// POST /api/v1/transfers
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var req service.CreateTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transfer, err := h.transferService.Create(a, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Transfer requested", "data": transfer})
}

// POST /api/v1/transfers/:id/approve
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	transfer, err := h.transferService.Approve(a, id)
	if err != nil {
		return fail(c, err)
	}

	metrics.RecordTransferDecision(string(model.TransferApproved))
	return c.JSON(fiber.Map{"message": "Transfer approved", "data": transfer})
}

// POST /api/v1/transfers/:id/reject
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	transfer, err := h.transferService.Reject(a, id)
	if err != nil {
		return fail(c, err)
	}

	metrics.RecordTransferDecision(string(model.TransferRejected))
	return c.JSON(fiber.Map{"message": "Transfer rejected", "data": transfer})
}

// GET /api/v1/transfers/:id
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	transfer, err := h.transferService.Get(a, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transfer)
}

// GET /api/v1/transfers?status=Pending
func (h *TransferHandler) List(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	status := model.TransferStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown status"})
	}
	transfers, err := h.transferService.List(a, status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transfers)
}
