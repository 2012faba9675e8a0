package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "storeadmin/internal/log"
	"storeadmin/internal/services"
)

type AdminHandler struct {
	Brands        *services.BrandService
	Categories    *services.CategoryService
	SubCategories *services.SubCategoryService
	Products      *services.ProductService
	Colors        *services.ColorService
}

// storeRow is one line of the dashboard's store overview.
type storeRow struct {
	Name      string
	Count     int
	State     services.State
	UpdatedAt time.Time
	Err       string
}

func row(name string, count int, st services.Status) storeRow {
	r := storeRow{Name: name, Count: count, State: st.State, UpdatedAt: st.UpdatedAt}
	if st.LastError != nil {
		r.Err = userMessage("Last sync failed", st.LastError)
	}
	return r
}

// GET /
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var failed []string
	note := func(name string, err error) {
		if err != nil {
			applog.Error(c, "dashboard.load.fail", err, map[string]any{"store": name})
			failed = append(failed, name)
		}
	}
	_, err := h.Brands.List(ctx)
	note("brands", err)
	_, err = h.Categories.List(ctx)
	note("categories", err)
	_, err = h.SubCategories.List(ctx)
	note("subcategories", err)
	_, err = h.Products.List(ctx, h.Products.Query())
	note("products", err)
	cq := h.Colors.Query()
	_, err = h.Colors.List(ctx, cq.ColorName, cq.PageNumber)
	note("colors", err)

	rows := []storeRow{
		row("Brands", h.Brands.Sync.Store().Len(), h.Brands.Sync.Status()),
		row("Categories", h.Categories.Sync.Store().Len(), h.Categories.Sync.Status()),
		row("Sub-categories", h.SubCategories.All.Store().Len(), h.SubCategories.All.Status()),
		row("Products", h.Products.Sync.Store().Len(), h.Products.Sync.Status()),
		row("Colors", h.Colors.Sync.Store().Len(), h.Colors.Sync.Status()),
	}
	data := fiber.Map{"Stores": rows}
	if len(failed) > 0 {
		data["Err"] = "Some lists could not be loaded"
	}
	return render(c, "dashboard", data)
}
