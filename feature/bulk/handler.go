package bulk

import (
	"material-manager/core/logger"
	"material-manager/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for bulk updates.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the bulk routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/cursos/bulk", h.HandleApplyBulk)
}

// Request is the body of a bulk update.
type Request struct {
	IDs   []string `json:"ids" yaml:"ids"`
	Patch Patch    `json:"patch" yaml:"patch"`
}

// Response lists one result per requested id.
type Response struct {
	Results   []Result `json:"results"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
}

// NewResponse counts the outcomes of results.
func NewResponse(results []Result) Response {
	resp := Response{Results: results}
	for _, r := range results {
		if r.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp
}

// HandleApplyBulk applies one patch to many courses.
// @Summary Bulk update courses
// @Description Sets activo, colegio and/or anio on every listed course. Each id succeeds or fails on its own.
// @Tags cursos
// @Accept json
// @Produce json
// @Param body body Request true "Ids and patch"
// @Success 200 {object} Response
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 422 {object} map[string]string "Invalid request"
// @Router /cursos/bulk [post]
func (h *Handler) HandleApplyBulk(c *fiber.Ctx) error {
	log := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.service.Check(req.IDs, req.Patch); err != nil {
		log.Warn("Rejected bulk update", zap.Error(err))
		return server.Error(c, err)
	}

	resp := NewResponse(h.service.ApplyBulk(c.UserContext(), req.IDs, req.Patch))
	log.Debug("Bulk update finished", zap.Int("succeeded", resp.Succeeded), zap.Int("failed", resp.Failed))
	return c.JSON(resp)
}
