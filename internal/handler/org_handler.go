package handler

import (
	"goldshop-api/internal/model"
	"goldshop-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// OrgHandler serves branch and warehouse routes.
type OrgHandler struct {
	orgService       service.OrgService
	lifecycleService service.LifecycleService
}

func NewOrgHandler(orgService service.OrgService, lifecycleService service.LifecycleService) *OrgHandler {
	return &OrgHandler{orgService: orgService, lifecycleService: lifecycleService}
}

// POST /api/v1/branches
func (h *OrgHandler) CreateBranch(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var branch model.Branch
	if err := c.BodyParser(&branch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.orgService.CreateBranch(a, &branch); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Branch created", "data": branch})
}

// PUT /api/v1/branches/:id
func (h *OrgHandler) UpdateBranch(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	branch, err := h.orgService.UpdateBranch(a, id, req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Branch updated", "data": branch})
}

// GET /api/v1/branches
func (h *OrgHandler) ListBranches(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	branches, err := h.orgService.ListBranches(a, includeDeleted(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(branches)
}

// GET /api/v1/branches/:id
func (h *OrgHandler) GetBranch(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	branch, err := h.orgService.GetBranch(a, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(branch)
}

// DELETE /api/v1/branches/:id
func (h *OrgHandler) DeleteBranch(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.DeleteBranch(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Branch deleted"})
}

// POST /api/v1/branches/:id/restore
func (h *OrgHandler) RestoreBranch(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.RestoreBranch(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Branch restored"})
}

// DELETE /api/v1/branches/:id/purge
func (h *OrgHandler) PurgeBranch(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.PurgeBranch(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Branch permanently deleted"})
}

// POST /api/v1/warehouses
func (h *OrgHandler) CreateWarehouse(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}

	var warehouse model.Warehouse
	if err := c.BodyParser(&warehouse); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.orgService.CreateWarehouse(a, &warehouse); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Warehouse created", "data": warehouse})
}

// PUT /api/v1/warehouses/:id
func (h *OrgHandler) UpdateWarehouse(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}

	var req struct {
		Code string           `json:"code"`
		Cash *decimal.Decimal `json:"cash"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	warehouse, err := h.orgService.UpdateWarehouse(a, id, req.Code, req.Cash)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Warehouse updated", "data": warehouse})
}

// GET /api/v1/warehouses
func (h *OrgHandler) ListWarehouses(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	warehouses, err := h.orgService.ListWarehouses(a, includeDeleted(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(warehouses)
}

// GET /api/v1/warehouses/:id
func (h *OrgHandler) GetWarehouse(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	warehouse, err := h.orgService.GetWarehouse(a, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(warehouse)
}

// GET /api/v1/branches/:id/warehouses
func (h *OrgHandler) ListBranchWarehouses(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	warehouses, err := h.orgService.ListWarehousesByBranch(a, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(warehouses)
}

// DELETE /api/v1/warehouses/:id
func (h *OrgHandler) DeleteWarehouse(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.DeleteWarehouse(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Warehouse deleted"})
}

// POST /api/v1/warehouses/:id/restore
func (h *OrgHandler) RestoreWarehouse(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.RestoreWarehouse(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Warehouse restored"})
}

// DELETE /api/v1/warehouses/:id/purge
func (h *OrgHandler) PurgeWarehouse(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.PurgeWarehouse(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Warehouse permanently deleted"})
}
