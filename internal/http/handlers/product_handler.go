package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"storeadmin/internal/domain"
	"storeadmin/internal/log"
	"storeadmin/internal/services"
	"storeadmin/internal/validate"
)

type ProductHandler struct {
	Svc           *services.ProductService
	Categories    *services.CategoryService
	SubCategories *services.SubCategoryService
}

func (h *ProductHandler) page(c *fiber.Ctx, status int, errMsg string) error {
	return render(c.Status(status), "products", fiber.Map{
		"Page":          h.Svc.Page(),
		"Query":         h.Svc.Query(),
		"Categories":    h.Categories.Sync.Snapshot(),
		"SubCategories": h.SubCategories.All.Snapshot(),
		"Err":           errMsg,
	})
}

// query reads the list filters; malformed values are dropped.
func productQuery(c *fiber.Ctx) domain.ProductQuery {
	id := func(k string) int { n, _ := validate.OptionalID(c.Query(k)); return n }
	q := domain.ProductQuery{
		ProductName:   c.Query("q"),
		BrandID:       id("brand"),
		ColorID:       id("color"),
		CategoryID:    id("category"),
		SubcategoryID: id("subcategory"),
		PageNumber:    id("page"),
	}
	if v := c.Query("min"); v != "" {
		if d, ok := validate.Price(v); ok {
			q.MinPrice = &d
		}
	}
	if v := c.Query("max"); v != "" {
		if d, ok := validate.Price(v); ok {
			q.MaxPrice = &d
		}
	}
	return q
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if _, err := h.Categories.List(ctx); err != nil {
		log.Error(c, "category.list.fail", err, nil)
	}
	if _, err := h.SubCategories.List(ctx); err != nil {
		log.Error(c, "subcategory.list.fail", err, nil)
	}
	if _, err := h.Svc.List(ctx, productQuery(c)); err != nil {
		log.Error(c, "product.list.fail", err, nil)
		return h.page(c, statusFor(err), userMessage("Failed to load products", err))
	}
	return h.page(c, fiber.StatusOK, "")
}

// input reads the product form. The second return is a user-facing
// problem, empty when the form is usable.
func (h *ProductHandler) input(c *fiber.Ctx) (domain.ProductInput, string) {
	var in domain.ProductInput
	var ok bool
	if in.Name, ok = validate.Name(c.FormValue("name")); !ok {
		return in, "Please enter a product name"
	}
	if in.Code, ok = validate.Code(c.FormValue("code")); !ok {
		return in, "Please enter a product code (letters, digits, - and _)"
	}
	if in.Price, ok = validate.Price(c.FormValue("price")); !ok {
		return in, "Please enter a valid price"
	}
	if in.BrandID, ok = validate.ID(c.FormValue("brand_id")); !ok {
		return in, "Please choose a brand"
	}
	if in.ColorID, ok = validate.ID(c.FormValue("color_id")); !ok {
		return in, "Please choose a color"
	}
	if in.SubCategoryID, ok = validate.ID(c.FormValue("subcategory_id")); !ok {
		return in, "Please choose a sub-category"
	}
	in.Description = c.FormValue("description")
	in.Quantity = validate.Qty(c.FormValue("quantity"))
	in.HasDiscount = validate.Bool(c.FormValue("has_discount"))
	if v := c.FormValue("discount_price"); v != "" {
		var d decimal.Decimal
		if d, ok = validate.Price(v); !ok {
			return in, "Please enter a valid discount price"
		}
		if in.HasDiscount && d.GreaterThanOrEqual(in.Price) {
			return in, "Discount price must be lower than the price"
		}
		in.DiscountPrice = &d
	}
	in.Weight = c.FormValue("weight")
	in.Size = c.FormValue("size")
	if problems := validate.Struct(in); len(problems) > 0 {
		return in, "Please check the product fields"
	}
	imgs, err := formImages(c, "images")
	if err != nil {
		return in, "Images must be png, jpeg, gif or webp files up to 5 MiB"
	}
	in.Images = imgs
	return in, ""
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, msg := h.input(c)
	if msg != "" {
		log.Security(c, "validation.fail", map[string]any{"form": "product", "problem": msg})
		return h.page(c, fiber.StatusBadRequest, msg)
	}
	if err := h.Svc.Create(c.UserContext(), in); err != nil {
		logWriteFail(c, "product.create", err, map[string]any{"code": in.Code})
		return h.page(c, statusFor(err), writeFailure(err, "Failed to add product", "Failed to load products"))
	}
	log.Audit(c, "product.create", map[string]any{"code": in.Code, "name": in.Name, "images": len(in.Images)})
	return c.Redirect("/products")
}

// POST /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Product not found")
	}
	in, msg := h.input(c)
	if msg != "" {
		log.Security(c, "validation.fail", map[string]any{"form": "product", "problem": msg})
		return h.page(c, fiber.StatusBadRequest, msg)
	}
	if err := h.Svc.Update(c.UserContext(), id, in); err != nil {
		logWriteFail(c, "product.update", err, map[string]any{"id": id})
		return h.page(c, statusFor(err), writeFailure(err, "Failed to update product", "Failed to load products"))
	}
	log.Audit(c, "product.update", map[string]any{"id": id, "code": in.Code})
	return c.Redirect("/products")
}

// POST /products/:id/delete
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Product not found")
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		logWriteFail(c, "product.delete", err, map[string]any{"id": id})
		return h.page(c, statusFor(err), writeFailure(err, "Failed to delete product", "Failed to load products"))
	}
	log.Audit(c, "product.delete", map[string]any{"id": id})
	return c.Redirect("/products")
}

// POST /products/images/:id/delete
func (h *ProductHandler) DeleteImage(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Image not found")
	}
	if err := h.Svc.DeleteImage(c.UserContext(), id); err != nil {
		logWriteFail(c, "product.image.delete", err, map[string]any{"image": id})
		return h.page(c, statusFor(err), writeFailure(err, "Failed to delete image", "Failed to load products"))
	}
	log.Audit(c, "product.image.delete", map[string]any{"image": id})
	return c.Redirect("/products")
}
