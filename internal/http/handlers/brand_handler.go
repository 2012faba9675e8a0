package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/domain"
	applog "storeadmin/internal/log"
	"storeadmin/internal/services"
	"storeadmin/internal/validate"
)

type BrandHandler struct {
	Svc *services.BrandService
}

func (h *BrandHandler) page(c *fiber.Ctx, status int, errMsg string) error {
	return render(c.Status(status), "brands", fiber.Map{"Brands": h.Svc.Sync.Snapshot(), "Err": errMsg})
}

// GET /brands
func (h *BrandHandler) List(c *fiber.Ctx) error {
	if _, err := h.Svc.List(c.UserContext()); err != nil {
		applog.Error(c, "brand.list.fail", err, nil)
		return h.page(c, statusFor(err), userMessage("Failed to load brands", err))
	}
	return h.page(c, fiber.StatusOK, "")
}

// POST /brands
func (h *BrandHandler) Create(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "brand.name"})
		return h.page(c, fiber.StatusBadRequest, "Please enter a brand name")
	}
	if err := h.Svc.Create(c.UserContext(), domain.BrandInput{Name: name}); err != nil {
		logWriteFail(c, "brand.create", err, map[string]any{"name": name})
		return h.page(c, statusFor(err), writeFailure(err, "Failed to add brand", "Failed to load brands"))
	}
	applog.Audit(c, "brand.create", map[string]any{"name": name})
	return c.Redirect("/brands")
}

// POST /brands/:id
func (h *BrandHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Brand not found")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return h.page(c, fiber.StatusBadRequest, "Please enter a brand name")
	}
	if err := h.Svc.Update(c.UserContext(), id, domain.BrandInput{Name: name}); err != nil {
		logWriteFail(c, "brand.update", err, map[string]any{"id": id})
		return h.page(c, statusFor(err), writeFailure(err, "Failed to update brand", "Failed to load brands"))
	}
	applog.Audit(c, "brand.update", map[string]any{"id": id, "name": name})
	return c.Redirect("/brands")
}

// POST /brands/:id/delete
func (h *BrandHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Brand not found")
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		logWriteFail(c, "brand.delete", err, map[string]any{"id": id})
		return h.page(c, statusFor(err), writeFailure(err, "Failed to delete brand", "Failed to load brands"))
	}
	applog.Audit(c, "brand.delete", map[string]any{"id": id})
	return c.Redirect("/brands")
}
