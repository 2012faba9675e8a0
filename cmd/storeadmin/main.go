package main

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"storeadmin/internal/apiclient"
	"storeadmin/internal/config"
	"storeadmin/internal/http/handlers"
	applog "storeadmin/internal/log"
	"storeadmin/internal/repos"
	"storeadmin/internal/telemetry"
)

func main() {
	cfg := config.Load()

	closeLog, err := applog.Init(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
	}
	defer closeLog()

	var traceOut io.Writer
	if cfg.TraceStdout {
		traceOut = os.Stdout
	}
	shutdownTrace, err := telemetry.Setup("storeadmin", traceOut)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = shutdownTrace(context.Background()) }()

	sessions, err := openSessions(cfg)
	if err != nil {
		log.Fatal(err)
	}

	client := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithLogger(applog.L().Named("apiclient")),
	)
	deps := handlers.NewDeps(cfg, client, sessions)

	// Templates & app
	engine := handlers.NewEngine(cfg.TemplatesDir, client)
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views:        engine,
		BodyLimit:    20 << 20, // product forms carry images
		ErrorHandler: handlers.ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"path": c.Path()})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	log.Printf("[static] /static -> %s", cfg.StaticDir)
	app.Static("/static", cfg.StaticDir)

	handlers.Routes(app, deps)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}

func openSessions(cfg config.Config) (repos.SessionRepo, error) {
	if cfg.SessionBackend == "redis" {
		log.Printf("[sessions] redis %s", cfg.RedisURL)
		r, err := repos.NewRedisSessionRepo(cfg.RedisURL, 0)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	log.Printf("[sessions] sqlite %s", cfg.DBDSN)
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	return repos.NewSQLSessionRepo(db), nil
}
