package integrity

import (
	"material-manager/core/logger"
	"material-manager/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the integrity checks over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleRun)
	group.Get("/structure", h.HandleStructure)
	group.Get("/schema", h.HandleSchema)
}

// HandleRun runs both checks.
// @Summary Run integrity checks
// @Description Checks the bucket folders and the database tables. Never fixes anything.
// @Tags integrity
// @Produce json
// @Success 200 {object} Report
// @Router /integrity [get]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	report := h.service.Run(c.UserContext())
	if !report.Healthy() {
		logger.WithRayID(h.service.logger, c).Warn("Integrity problems found",
			zap.String("structure_error", report.StructureError),
			zap.String("schema_error", report.SchemaError))
	}
	return c.JSON(report)
}

// HandleStructure checks the bucket folders.
// @Summary Check storage structure
// @Description Verifies that the report and export folders exist in the bucket.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create missing folders"
// @Success 200 {object} checks.StructureReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructure(c *fiber.Ctx) error {
	report, err := h.service.Structure(c.UserContext(), c.QueryBool("fix"))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Structure check failed", zap.Error(err))
		return server.Error(c, err)
	}
	return c.JSON(report)
}

// HandleSchema checks the database schema.
// @Summary Check database schema
// @Description Checks that the cursos, colegios and productos tables match the models.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Database not connected"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	report, err := h.service.Schema()
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Schema check failed", zap.Error(err))
		return server.Error(c, err)
	}
	return c.JSON(report)
}
