package search

import (
	"material-manager/core/logger"
	"material-manager/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for search.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the search routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/materiales/buscar", h.HandleSearch)
}

// HandleSearch searches every course's latest list.
// @Summary Search materials
// @Description Matches the query against nombre, isbn, marca, asignatura and descripcion of the latest list of every course.
// @Tags materiales
// @Produce json
// @Param q query string true "Search text, at least 2 characters"
// @Success 200 {object} Result
// @Failure 422 {object} map[string]string "Query too short"
// @Router /materiales/buscar [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	res, err := h.service.SearchAcrossLists(c.UserContext(), c.Query("q"))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Search failed", zap.String("q", c.Query("q")), zap.Error(err))
		return server.Error(c, err)
	}
	return c.JSON(res)
}
