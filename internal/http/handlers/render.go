package handlers

import (
	"errors"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	html "github.com/gofiber/template/html/v2"

	"storeadmin/internal/apiclient"
	"storeadmin/internal/colors"
	applog "storeadmin/internal/log"
)

// NewEngine loads the templates in dir with the view helpers registered.
func NewEngine(dir string, client *apiclient.Client) *html.Engine {
	engine := html.New(dir, ".html")
	// Display only passes through syntactically valid colors.
	engine.AddFunc("swatch", func(name string) template.CSS { return template.CSS(colors.Display(name)) })
	engine.AddFunc("imageURL", func(name string) string {
		if client == nil {
			return ""
		}
		return client.ImageURL(name)
	})
	return engine
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data, "layouts/main")
}

func errorPage(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render("notfound", fiber.Map{"Message": msg})
}

func notFound(c *fiber.Ctx, msg string) error { return errorPage(c, fiber.StatusNotFound, msg) }

// ErrorHandler logs err and shows a friendly page without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < 500 {
		status = fe.Code
		msg = utils.StatusMessage(fe.Code)
	}
	applog.Error(c, "server.error", err, map[string]any{"status": status})
	if rerr := c.Status(status).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(status).SendString(msg)
	}
	return nil
}
