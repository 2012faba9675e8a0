package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/domain"
	applog "storeadmin/internal/log"
	"storeadmin/internal/services"
	"storeadmin/internal/validate"
)

type CategoryHandler struct {
	Svc  *services.CategoryService
	Subs *services.SubCategoryService
}

func (h *CategoryHandler) page(c *fiber.Ctx, status int, errMsg string) error {
	return render(c.Status(status), "categories", fiber.Map{"Categories": h.Svc.Sync.Snapshot(), "Err": errMsg})
}

// GET /categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	if _, err := h.Svc.List(c.UserContext()); err != nil {
		applog.Error(c, "category.list.fail", err, nil)
		return h.page(c, statusFor(err), userMessage("Failed to load categories", err))
	}
	return h.page(c, fiber.StatusOK, "")
}

func (h *CategoryHandler) input(c *fiber.Ctx) (domain.CategoryInput, string) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "category.name"})
		return domain.CategoryInput{}, "Please enter a category name"
	}
	img, err := formImage(c, "image")
	if err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "category.image", "err": err.Error()})
		return domain.CategoryInput{}, "Image must be a png, jpeg, gif or webp file up to 5 MiB"
	}
	return domain.CategoryInput{Name: name, Image: img}, ""
}

// POST /categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	in, msg := h.input(c)
	if msg != "" {
		return h.page(c, fiber.StatusBadRequest, msg)
	}
	if err := h.Svc.Create(c.UserContext(), in); err != nil {
		logWriteFail(c, "category.create", err, map[string]any{"name": in.Name})
		return h.page(c, statusFor(err), writeFailure(err, "Failed to add category", "Failed to load categories"))
	}
	applog.Audit(c, "category.create", map[string]any{"name": in.Name, "image": in.Image != nil})
	return c.Redirect("/categories")
}

// POST /categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Category not found")
	}
	in, msg := h.input(c)
	if msg != "" {
		return h.page(c, fiber.StatusBadRequest, msg)
	}
	if err := h.Svc.Update(c.UserContext(), id, in); err != nil {
		logWriteFail(c, "category.update", err, map[string]any{"id": id})
		return h.page(c, statusFor(err), writeFailure(err, "Failed to update category", "Failed to load categories"))
	}
	applog.Audit(c, "category.update", map[string]any{"id": id, "name": in.Name, "image": in.Image != nil})
	return c.Redirect("/categories")
}

// POST /categories/:id/delete
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Category not found")
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		logWriteFail(c, "category.delete", err, map[string]any{"id": id})
		return h.page(c, statusFor(err), writeFailure(err, "Failed to delete category", "Failed to load categories"))
	}
	applog.Audit(c, "category.delete", map[string]any{"id": id})
	return c.Redirect("/categories")
}

func (h *CategoryHandler) detail(c *fiber.Ctx, status int, id int, errMsg string) error {
	ctx := c.UserContext()
	cat, err := h.Svc.Get(ctx, id)
	if err != nil {
		applog.Error(c, "category.get.fail", err, map[string]any{"id": id})
		if statusFor(err) == fiber.StatusBadRequest {
			return notFound(c, "Category not found")
		}
		return errorPage(c, statusFor(err), userMessage("Failed to load category", err))
	}
	subs, err := h.Subs.ListByCategory(ctx, id)
	if err != nil && errMsg == "" {
		applog.Error(c, "subcategory.list.fail", err, map[string]any{"category": id})
		errMsg = userMessage("Failed to load sub-categories", err)
		status = statusFor(err)
	}
	return render(c.Status(status), "category_detail", fiber.Map{"Category": cat, "SubCategories": subs, "Err": errMsg})
}

// GET /categories/:id
func (h *CategoryHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Category not found")
	}
	return h.detail(c, fiber.StatusOK, id, "")
}

// POST /categories/:id/subcategories
func (h *CategoryHandler) CreateSubCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Category not found")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return h.detail(c, fiber.StatusBadRequest, id, "Please enter a sub-category name")
	}
	if err := h.Subs.Create(c.UserContext(), domain.SubCategoryInput{Name: name, CategoryID: id}); err != nil {
		logWriteFail(c, "subcategory.create", err, map[string]any{"category": id, "name": name})
		return h.detail(c, statusFor(err), id, writeFailure(err, "Failed to add sub-category", "Failed to load sub-categories"))
	}
	applog.Audit(c, "subcategory.create", map[string]any{"category": id, "name": name})
	return c.Redirect("/categories/" + strconv.Itoa(id))
}
