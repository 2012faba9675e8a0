package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "storeadmin/internal/log"
)

// Routes registers the console pages. Global middleware is the caller's.
func Routes(app *fiber.App, d *Deps) {
	// Auth routes (login throttled)
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later.", "UserName": ""})
		},
	}), d.AuthHandler.Login)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	authed := app.Group("/", RequireAuth(d.Auth))
	authed.Get("/", d.AdminHandler.Dashboard)
	authed.Post("/logout", d.AuthHandler.Logout)

	authed.Get("/brands", d.BrandHandler.List)
	authed.Post("/brands", d.BrandHandler.Create)
	authed.Post("/brands/:id", d.BrandHandler.Update)
	authed.Post("/brands/:id/delete", d.BrandHandler.Delete)

	authed.Get("/categories", d.CategoryHandler.List)
	authed.Post("/categories", d.CategoryHandler.Create)
	authed.Get("/categories/:id", d.CategoryHandler.Detail)
	authed.Post("/categories/:id", d.CategoryHandler.Update)
	authed.Post("/categories/:id/delete", d.CategoryHandler.Delete)
	authed.Post("/categories/:id/subcategories", d.CategoryHandler.CreateSubCategory)

	authed.Get("/subcategories/:id", d.SubCategoryHandler.Detail)
	authed.Post("/subcategories/:id", d.SubCategoryHandler.Update)
	authed.Post("/subcategories/:id/delete", d.SubCategoryHandler.Delete)

	authed.Get("/products", d.ProductHandler.List)
	authed.Post("/products", d.ProductHandler.Create)
	authed.Post("/products/images/:id/delete", d.ProductHandler.DeleteImage)
	authed.Post("/products/:id", d.ProductHandler.Update)
	authed.Post("/products/:id/delete", d.ProductHandler.Delete)

	authed.Get("/colors", d.ColorHandler.List)
	authed.Post("/colors", d.ColorHandler.Create)
	authed.Post("/colors/:id", d.ColorHandler.Update)
	authed.Post("/colors/:id/delete", d.ColorHandler.Delete)
}
