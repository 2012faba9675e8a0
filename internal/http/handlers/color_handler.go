package handlers

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/domain"
	applog "storeadmin/internal/log"
	"storeadmin/internal/services"
	"storeadmin/internal/validate"
)

const (
	msgColorBlank      = "Please enter a color name or code"
	msgColorLoadFail   = "Failed to load colors"
	msgColorAddFail    = "Failed to add color"
	msgColorUpdateFail = "Failed to update color"
	msgColorDeleteFail = "Failed to delete color"
)

type ColorHandler struct {
	Svc *services.ColorService
}

func (h *ColorHandler) page(c *fiber.Ctx, status int, errMsg string) error {
	q := h.Svc.Query()
	return render(c.Status(status), "colors", fiber.Map{
		"Colors":   h.Svc.Sync.Snapshot(),
		"Query":    q,
		"PrevPage": q.PageNumber - 1,
		"NextPage": q.PageNumber + 1,
		"Err":      errMsg,
	})
}

// back returns to the list with the current filter and page.
func (h *ColorHandler) back(c *fiber.Ctx) error {
	q := h.Svc.Query()
	v := url.Values{"page": {strconv.Itoa(q.PageNumber)}}
	if q.ColorName != "" {
		v.Set("name", q.ColorName)
	}
	return c.Redirect("/colors?" + v.Encode())
}

// GET /colors
func (h *ColorHandler) List(c *fiber.Ctx) error {
	page, _ := validate.OptionalID(c.Query("page"))
	if _, err := h.Svc.List(c.UserContext(), c.Query("name"), page); err != nil {
		applog.Error(c, "color.list.fail", err, nil)
		return h.page(c, statusFor(err), msgColorLoadFail)
	}
	return h.page(c, fiber.StatusOK, "")
}

func (h *ColorHandler) fail(c *fiber.Ctx, action string, err error, msg string) error {
	if errors.Is(err, services.ErrBlankColor) {
		applog.Security(c, "validation.fail", map[string]any{"field": "color.name"})
		return h.page(c, fiber.StatusBadRequest, msgColorBlank)
	}
	logWriteFail(c, action, err, nil)
	return h.page(c, statusFor(err), writeFailure(err, msg, msgColorLoadFail))
}

// POST /colors
func (h *ColorHandler) Create(c *fiber.Ctx) error {
	in := domain.ColorInput{Name: c.FormValue("name")}
	if err := h.Svc.Create(c.UserContext(), in); err != nil {
		return h.fail(c, "color.create", err, msgColorAddFail)
	}
	applog.Audit(c, "color.create", map[string]any{"name": in.Name})
	return h.back(c)
}

// POST /colors/:id
func (h *ColorHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Color not found")
	}
	in := domain.ColorInput{Name: c.FormValue("name")}
	if err := h.Svc.Update(c.UserContext(), id, in); err != nil {
		return h.fail(c, "color.update", err, msgColorUpdateFail)
	}
	applog.Audit(c, "color.update", map[string]any{"id": id, "name": in.Name})
	return h.back(c)
}

// POST /colors/:id/delete
func (h *ColorHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "Color not found")
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, "color.delete", err, msgColorDeleteFail)
	}
	applog.Audit(c, "color.delete", map[string]any{"id": id})
	return h.back(c)
}
