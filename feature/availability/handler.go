package availability

import (
	"material-manager/core/logger"
	"material-manager/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for availability checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the availability routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/cursos/:curso/disponibilidad", h.HandleVerify)
	app.Get("/cursos/:curso/disponibilidad/reportes", h.HandleListReports)
	app.Get("/cursos/:curso/disponibilidad/reportes/ultimo", h.HandleLatestReport)
}

// HandleVerify reconciles the latest list against the catalogs.
// @Summary Verify availability
// @Description Looks up every item of the latest version and writes price, stock and availability back.
// @Tags disponibilidad
// @Produce json
// @Param curso path string true "Course documentId or numeric id"
// @Success 200 {object} Report
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Course has no versions"
// @Router /cursos/{curso}/disponibilidad [post]
func (h *Handler) HandleVerify(c *fiber.Ctx) error {
	log := logger.WithCurso(h.service.logger, c)
	report, err := h.service.VerifyAvailability(c.UserContext(), c.Params("curso"))
	if err != nil {
		log.Warn("Availability check failed", zap.Error(err))
		return server.Error(c, err)
	}
	if report.Partial {
		log.Warn("Availability check interrupted",
			zap.Int("processed", report.Processed), zap.Int("total", report.Total))
	}
	return c.JSON(report)
}

// HandleListReports lists archived reports.
// @Summary List availability reports
// @Tags disponibilidad
// @Produce json
// @Param curso path string true "Course documentId or numeric id"
// @Success 200 {array} string
// @Failure 404 {object} map[string]string "Course not found"
// @Router /cursos/{curso}/disponibilidad/reportes [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	keys, err := h.service.ListReports(c.UserContext(), c.Params("curso"))
	if err != nil {
		logger.WithCurso(h.service.logger, c).Warn("List reports failed", zap.Error(err))
		return server.Error(c, err)
	}
	return c.JSON(keys)
}

// HandleLatestReport returns the newest archived report.
// @Summary Latest availability report
// @Tags disponibilidad
// @Produce json
// @Param curso path string true "Course documentId or numeric id"
// @Success 200 {object} Report
// @Failure 404 {object} map[string]string "Course or report not found"
// @Router /cursos/{curso}/disponibilidad/reportes/ultimo [get]
func (h *Handler) HandleLatestReport(c *fiber.Ctx) error {
	report, err := h.service.LatestReport(c.UserContext(), c.Params("curso"))
	if err != nil {
		return server.Error(c, err)
	}
	return c.JSON(report)
}
