package handler

import (
	"goldshop-api/internal/model"
	"goldshop-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves vendor, customer, seller and product routes.
type CatalogHandler struct {
	catalogService   service.CatalogService
	lifecycleService service.LifecycleService
}

func NewCatalogHandler(catalogService service.CatalogService, lifecycleService service.LifecycleService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, lifecycleService: lifecycleService}
}

// --- vendors ---

// POST /api/v1/vendors
func (h *CatalogHandler) CreateVendor(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	var vendor model.Vendor
	if err := c.BodyParser(&vendor); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.catalogService.CreateVendor(a, &vendor); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Vendor created", "data": vendor})
}

// PUT /api/v1/vendors/:id
func (h *CatalogHandler) UpdateVendor(c *fiber.Ctx) error {
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
	vendor, err := h.catalogService.UpdateVendor(a, id, req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Vendor updated", "data": vendor})
}

// GET /api/v1/vendors
func (h *CatalogHandler) ListVendors(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	vendors, err := h.catalogService.ListVendors(a, includeDeleted(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(vendors)
}

// DELETE /api/v1/vendors/:id
func (h *CatalogHandler) DeleteVendor(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.DeleteVendor(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Vendor deleted"})
}

// POST /api/v1/vendors/:id/restore
func (h *CatalogHandler) RestoreVendor(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.RestoreVendor(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Vendor restored"})
}

// DELETE /api/v1/vendors/:id/purge
func (h *CatalogHandler) PurgeVendor(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.PurgeVendor(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Vendor permanently deleted"})
}

// --- customers ---

// POST /api/v1/customers
func (h *CatalogHandler) CreateCustomer(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.catalogService.CreateCustomer(a, &customer); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Customer created", "data": customer})
}

// PUT /api/v1/customers/:id
func (h *CatalogHandler) UpdateCustomer(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	customer, err := h.catalogService.UpdateCustomer(a, id, req.Name, req.Phone)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer updated", "data": customer})
}

// GET /api/v1/customers
func (h *CatalogHandler) ListCustomers(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	customers, err := h.catalogService.ListCustomers(a, includeDeleted(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(customers)
}

// DELETE /api/v1/customers/:id
func (h *CatalogHandler) DeleteCustomer(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.DeleteCustomer(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer deleted"})
}

// POST /api/v1/customers/:id/restore
func (h *CatalogHandler) RestoreCustomer(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.RestoreCustomer(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer restored"})
}

// DELETE /api/v1/customers/:id/purge
func (h *CatalogHandler) PurgeCustomer(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.PurgeCustomer(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer permanently deleted"})
}

// --- sellers ---

// POST /api/v1/sellers
func (h *CatalogHandler) CreateSeller(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	var seller model.Seller
	if err := c.BodyParser(&seller); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.catalogService.CreateSeller(a, &seller); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Seller created", "data": seller})
}

// PUT /api/v1/sellers/:id
func (h *CatalogHandler) UpdateSeller(c *fiber.Ctx) error {
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
	seller, err := h.catalogService.UpdateSeller(a, id, req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Seller updated", "data": seller})
}

// GET /api/v1/sellers
func (h *CatalogHandler) ListSellers(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	sellers, err := h.catalogService.ListSellers(a, includeDeleted(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sellers)
}

// DELETE /api/v1/sellers/:id
func (h *CatalogHandler) DeleteSeller(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.DeleteSeller(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Seller deleted"})
}

// POST /api/v1/sellers/:id/restore
func (h *CatalogHandler) RestoreSeller(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.RestoreSeller(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Seller restored"})
}

// DELETE /api/v1/sellers/:id/purge
func (h *CatalogHandler) PurgeSeller(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.PurgeSeller(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Seller permanently deleted"})
}

// --- products ---

// POST /api/v1/products
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.catalogService.CreateProduct(a, &product); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// PUT /api/v1/products/:id
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var update model.Product
	if err := c.BodyParser(&update); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	product, err := h.catalogService.UpdateProduct(a, id, &update)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// GET /api/v1/products?material=Gold
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	material := model.Material(c.Query("material"))
	products, err := h.catalogService.ListProducts(a, material, includeDeleted(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

// GET /api/v1/products/:id
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	product, err := h.catalogService.GetProduct(a, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

// DELETE /api/v1/products/:id
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.DeleteProduct(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// POST /api/v1/products/:id/restore
func (h *CatalogHandler) RestoreProduct(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.RestoreProduct(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product restored"})
}

// DELETE /api/v1/products/:id/purge
func (h *CatalogHandler) PurgeProduct(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	if err := h.lifecycleService.PurgeProduct(a, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product permanently deleted"})
}
