package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "storeadmin/internal/log"
	"storeadmin/internal/services"
	"storeadmin/internal/validate"
)

type SubCategoryHandler struct {
	Svc *services.SubCategoryService
}

func (h *SubCategoryHandler) detail(c *fiber.Ctx, status, id int, errMsg string) error {
	sub, err := h.Svc.Get(c.UserContext(), id)
	if err != nil {
		applog.Error(c, "subcategory.get.fail", err, map[string]any{"id": id})
		if statusFor(err) == fiber.StatusBadRequest {
			return notFound(c, "Sub-category not found")
		}
		return errorPage(c, statusFor(err), userMessage("Failed to load sub-category", err))
	}
	return render(c.Status(status), "subcategory", fiber.Map{"SubCategory": sub, "Err": errMsg})
}

// GET /subcategories/:id
func (h *SubCategoryHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Sub-category not found")
	}
	return h.detail(c, fiber.StatusOK, id, "")
}

// POST /subcategories/:id
func (h *SubCategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Sub-category not found")
	}
	catID, ok := validate.ID(c.FormValue("category_id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "subcategory.category_id"})
		return h.detail(c, fiber.StatusBadRequest, id, "Missing category")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return h.detail(c, fiber.StatusBadRequest, id, "Please enter a sub-category name")
	}
	if err := h.Svc.Update(c.UserContext(), catID, id, name); err != nil {
		logWriteFail(c, "subcategory.update", err, map[string]any{"id": id})
		return h.detail(c, statusFor(err), id, writeFailure(err, "Failed to update sub-category", "Failed to load sub-categories"))
	}
	applog.Audit(c, "subcategory.update", map[string]any{"id": id, "name": name})
	return c.Redirect("/categories/" + strconv.Itoa(catID))
}

// POST /subcategories/:id/delete
func (h *SubCategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Sub-category not found")
	}
	catID, ok := validate.ID(c.FormValue("category_id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "subcategory.category_id"})
		return h.detail(c, fiber.StatusBadRequest, id, "Missing category")
	}
	if err := h.Svc.Delete(c.UserContext(), catID, id); err != nil {
		logWriteFail(c, "subcategory.delete", err, map[string]any{"id": id})
		if errors.Is(err, services.ErrReloadFailed) {
			// the sub-category is gone; the category page reloads its list
			return c.Redirect("/categories/" + strconv.Itoa(catID))
		}
		return h.detail(c, statusFor(err), id, writeFailure(err, "Failed to delete sub-category", "Failed to load sub-categories"))
	}
	applog.Audit(c, "subcategory.delete", map[string]any{"id": id, "category": catID})
	return c.Redirect("/categories/" + strconv.Itoa(catID))
}
