package main

import (
	"log"
	"strings"

	"seguimiento-backend/internal/auth"
	"seguimiento-backend/internal/clients"
	"seguimiento-backend/internal/config"
	"seguimiento-backend/internal/database"
	"seguimiento-backend/internal/improvements"
	"seguimiento-backend/internal/locations"
	"seguimiento-backend/internal/metrics"
	"seguimiento-backend/internal/reports"
	"seguimiento-backend/internal/tasks"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"message": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
			})
		},
	})

	// CORS: orígenes separados por coma en la configuración
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Rutas públicas
	api.Post("/users/register", auth.RegisterHandler())
	api.Post("/users/login", auth.LoginHandler(cfg))

	// Todo lo demás requiere token
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Clientes
	protected.Post("/clients", clients.CreateClientHandler())
	protected.Get("/clients", clients.ListClientsHandler())
	protected.Get("/clients/:id", clients.GetClientHandler())
	protected.Put("/clients/:id", clients.UpdateClientHandler())
	protected.Delete("/clients/:id", clients.DeleteClientHandler())

	// Ubicaciones
	protected.Post("/locations", locations.CreateLocationHandler())
	protected.Get("/locations", locations.ListLocationsHandler())
	protected.Get("/locations/:id", locations.GetLocationHandler())
	protected.Put("/locations/:id", locations.UpdateLocationHandler())
	protected.Delete("/locations/:id", locations.DeleteLocationHandler())

	// Tareas
	protected.Post("/tasks", tasks.CreateTaskHandler())
	protected.Get("/tasks", tasks.ListTasksHandler())
	protected.Get("/tasks/:id", tasks.GetTaskHandler())
	protected.Put("/tasks/:id", tasks.UpdateTaskHandler())
	protected.Delete("/tasks/:id", tasks.DeleteTaskHandler())

	// Mejoras
	protected.Post("/improvements", improvements.CreateImprovementHandler())
	protected.Get("/improvements", improvements.ListImprovementsHandler())
	protected.Get("/improvements/:id", improvements.GetImprovementHandler())
	protected.Put("/improvements/:id", improvements.UpdateImprovementHandler())
	protected.Delete("/improvements/:id", improvements.DeleteImprovementHandler())

	// Métricas
	protected.Post("/metrics", metrics.CreateMetricHandler())
	protected.Get("/metrics", metrics.ListMetricsHandler())
	protected.Get("/metrics/:id", metrics.GetMetricHandler())
	protected.Put("/metrics/:id", metrics.UpdateMetricHandler())
	protected.Delete("/metrics/:id", metrics.DeleteMetricHandler())

	// Reportes semanales
	protected.Post("/weekly", reports.CreateWeeklyReportHandler())
	protected.Get("/weekly", reports.ListWeeklyReportsHandler())
	protected.Get("/weekly/:id", reports.GetWeeklyReportHandler())
	protected.Put("/weekly/:id", reports.UpdateWeeklyReportHandler())
	protected.Delete("/weekly/:id", reports.DeleteWeeklyReportHandler())
	protected.Post("/weekly/:id/consolidate", reports.ConsolidateWeeklyReportHandler())

	// Reportes mensuales
	protected.Post("/monthly", reports.CreateMonthlyReportHandler())
	protected.Get("/monthly", reports.ListMonthlyReportsHandler())
	protected.Get("/monthly/:id", reports.GetMonthlyReportHandler())
	protected.Put("/monthly/:id", reports.UpdateMonthlyReportHandler())
	protected.Delete("/monthly/:id", reports.DeleteMonthlyReportHandler())
	protected.Post("/monthly/:id/consolidate", reports.ConsolidateMonthlyReportHandler())

	log.Println("Server running on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
