package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"siviack-portal/internal/backend"
	"siviack-portal/internal/config"
	"siviack-portal/internal/database"
	"siviack-portal/internal/handlers"
	"siviack-portal/internal/masterdata"
	"siviack-portal/internal/middleware"
	"siviack-portal/internal/models"
	"siviack-portal/internal/session"
)

func main() {
	// Load .env file if exists
	godotenv.Load()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Override with .env PORT if set
	if envPort := os.Getenv("PORT"); envPort != "" {
		if port, err := strconv.Atoi(envPort); err == nil {
			cfg.Server.Port = port
		}
	}

	// Connect to the local session store
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(&models.Session{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Wire the portal's collaborators
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	sessions := session.NewManager(db, cfg.Session.TTL)
	store := masterdata.NewStore(client)
	h := handlers.New(client, store, sessions)

	// Background refresher: master-data cache + expired session sweep
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Cache.RefreshSpec, func() {
		store.Refresh()
		sessions.Sweep()
	}); err != nil {
		log.Fatalf("Invalid cache refresh schedule %q: %v", cfg.Cache.RefreshSpec, err)
	}
	scheduler.Start()

	// Setup template engine
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/base",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: false,
	}))

	// Static files
	app.Static("/static", "./web/static")

	// Routes
	setupRoutes(app, h, sessions)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 SIVIACK Portal starting on http://%s", addr)
	log.Printf("📊 Backend API: %s", cfg.Backend.BaseURL)
	log.Fatal(app.Listen(addr))
}

func setupRoutes(app *fiber.App, h *handlers.Handler, sessions *session.Manager) {
	// Public routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})
	app.Get("/login", h.LoginPage)

	// Pages (cookie-gated)
	pages := app.Group("/", middleware.PageAuth(sessions))
	pages.Get("/dashboard", h.DashboardPage)
	pages.Get("/mis-pendientes", h.PendientesPage)
	pages.Get("/empresas", middleware.AdminPage(), h.AdminPage)

	// API routes - Public
	api := app.Group("/api")
	api.Post("/auth/login", h.Login)

	// API routes - Protected
	protected := api.Group("/", middleware.APIAuth(sessions))
	protected.Post("/auth/logout", h.Logout)

	// Dashboard API
	protected.Get("/actividades", h.GetActividades)
	protected.Get("/actividades/export/excel", h.ExportExcel)
	protected.Get("/actividades/export/pdf", h.ExportPDF)
	protected.Get("/masterdata", h.GetMasterData)
	protected.Get("/masterdata/areas/:empresaId", h.GetAreasForEmpresa)
	protected.Get("/pendientes", h.GetPendientes)

	// Activity writes (CLIENTE is read-only; no delete route exists)
	editor := protected.Group("/", middleware.EditorRequired())
	editor.Post("/actividades", h.CreateActividad)
	editor.Put("/actividades/:id", h.UpdateActividad)

	// Admin API: master data, catalogs, audit trail, host stats
	admin := protected.Group("/", middleware.AdminRequired())
	admin.Post("/empresas", h.CreateEmpresa)
	admin.Put("/empresas/:id", h.UpdateEmpresa)
	admin.Delete("/empresas/:id", h.DeleteEmpresa)
	admin.Post("/areas", h.CreateArea)
	admin.Put("/areas/:id", h.UpdateArea)
	admin.Delete("/areas/:id", h.DeleteArea)
	admin.Post("/usuarios", h.CreateUsuario)
	admin.Put("/usuarios/:id", h.UpdateUsuario)
	admin.Delete("/usuarios/:id", h.DeleteUsuario)
	admin.Get("/catalogos/:categoria", h.GetCatalogoItems)
	admin.Post("/catalogos/:categoria", h.CreateCatalogoItem)
	admin.Delete("/catalogos/:categoria/:id", h.DeleteCatalogoItem)
	admin.Get("/auditoria", h.GetAuditLogs)
	admin.Get("/system/stats", h.GetSystemStats)
}
