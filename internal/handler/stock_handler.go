package handler

import (
	"goldshop-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	stockService service.StockService
}

func NewStockHandler(stockService service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// GET /api/v1/warehouses/:id/stock
func (h *StockHandler) ListByWarehouse(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	rows, err := h.stockService.ListByWarehouse(a, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// GET /api/v1/warehouses/:id/stock/:productId
func (h *StockHandler) GetQuantity(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	productID, err := c.ParamsInt("productId")
	if err != nil || productID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	qty, err := h.stockService.GetQuantity(a, id, uint(productID))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"warehouse_id": id,
		"product_id":   productID,
		"quantity":     qty,
	})
}

// POST /api/v1/stock/receive
func (h *StockHandler) Receive(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var req service.ReceiveStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	row, err := h.stockService.Receive(a, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Stock received", "data": row})
}
