package handler

import (
	"time"

	"goldshop-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// dateRange parses ?from=2006-01-02&to=2006-01-02; to is exclusive and
// defaults to tomorrow, from defaults to 30 days back.
func dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)

	var err error
	if q := c.Query("from"); q != "" {
		if from, err = time.Parse("2006-01-02", q); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if q := c.Query("to"); q != "" {
		if to, err = time.Parse("2006-01-02", q); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}

// GET /api/v1/reports/dashboard
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	stats, err := h.reportService.Dashboard(a)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}

// GET /api/v1/reports/movements
func (h *ReportHandler) DailyMovements(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
	}
	rows, err := h.reportService.DailyMovements(a, from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

// GET /api/v1/reports/invoices/export
func (h *ReportHandler) ExportInvoices(c *fiber.Ctx) error {
	a, ok := actor(c)
	if !ok {
		return unauthorized(c)
	}
	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
	}

	data, err := h.reportService.ExportInvoicesXLSX(a, from, to)
	if err != nil {
		return fail(c, err)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="invoices.xlsx"`)
	return c.Send(data)
}
