package handler

import (
	"goldshop-api/internal/metrics"
	"goldshop-api/internal/model"
	"goldshop-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var req service.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	invoice, err := h.invoiceService.CreateInvoice(a, &req)
	if err != nil {
		return fail(c, err)
	}

	metrics.RecordInvoiceCreated(string(invoice.InvoiceType), string(invoice.Material))
	return c.Status(201).JSON(fiber.Map{"message": "Invoice created", "data": invoice})
}

// GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	invoice, err := h.invoiceService.GetInvoice(a, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(invoice)
}

// GET /api/v1/invoices?material=Gold
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	material := model.Material(c.Query("material"))
	if material != "" && !material.Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown material"})
	}
	invoices, err := h.invoiceService.ListInvoices(a, material)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(invoices)
}
