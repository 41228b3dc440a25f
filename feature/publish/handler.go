package publish

import (
	"material-manager/core/logger"
	"material-manager/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for publishing.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the publish routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/cursos/:curso/publicar", h.HandlePublish)
}

// HandlePublish publishes the latest list of a course.
// @Summary Publish list
// @Description Tags the course in the shop catalog, exports the latest list to object storage and records both on the course.
// @Tags cursos
// @Produce json
// @Param curso path string true "Course documentId or numeric id"
// @Success 200 {object} Publication
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Course has no versions"
// @Failure 500 {object} map[string]string "Publish failed and was rolled back"
// @Router /cursos/{curso}/publicar [post]
func (h *Handler) HandlePublish(c *fiber.Ctx) error {
	pub, err := h.service.Publish(c.UserContext(), c.Params("curso"))
	if err != nil {
		logger.WithCurso(h.service.logger, c).Error("Publish failed", zap.Error(err))
		return server.Error(c, err)
	}
	return c.JSON(pub)
}
