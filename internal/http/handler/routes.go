package handler

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"msdsapi/docs"
	"msdsapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only translate HTTP to service calls; rules live in the service package.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.CatalogService) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/swagger/index.html", fiber.StatusFound)
	})
	app.Get("/swagger/*", swaggerUI)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/documents", ListDocuments(svc))
	app.Post("/documents", CreateDocument(svc))
	app.Get("/documents/:id", GetDocument(svc))
	app.Put("/documents/:id", UpdateDocument(svc))
	app.Delete("/documents/:id", DeleteDocument(svc))

	app.Post("/documents/:id/file", UploadPrimaryFile(svc))
	app.Get("/documents/:id/file", StreamPrimaryFile(svc))
	app.Delete("/documents/:id/file", DeletePrimaryFile(svc))
	app.Get("/documents/:id/download", DownloadPrimaryFile(svc))

	app.Get("/documents/:id/attachments/:aid", AttachmentFile(svc))
	app.Put("/documents/:id/attachments/:aid", LinkAttachment(svc))
	app.Delete("/documents/:id/attachments/:aid", UnlinkAttachment(svc))

	app.Get("/search", SearchDocuments(svc))
	app.Get("/options", GetOptions(svc))

	app.Get("/attachments", ListAttachments(svc))
	app.Post("/attachments", CreateAttachment(svc))
	app.Put("/attachments/:aid", UpdateAttachment(svc))
	app.Delete("/attachments/:aid", DeleteAttachment(svc))
}

// swaggerUI serves the generated docs with the host and scheme the client used.
func swaggerUI(c *fiber.Ctx) error {
	scheme := c.Protocol()
	if proto := c.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}

	docs.SwaggerInfo.Host = c.Get("Host")
	docs.SwaggerInfo.Schemes = []string{scheme}

	return swagger.HandlerDefault(c)
}
