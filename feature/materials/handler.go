package materials

import (
	"material-manager/core/logger"
	"material-manager/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for material lists.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the material list routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	cursos := app.Group("/cursos/:curso")
	cursos.Get("/versiones", h.HandleListVersions)
	cursos.Get("/materiales", h.HandleGetMaterials)
	cursos.Post("/materiales", h.HandleAddMaterial)
	cursos.Put("/materiales", h.HandleReplaceMaterials)
	cursos.Delete("/materiales", h.HandleDeleteMaterial)
	cursos.Patch("/materiales/:material", h.HandleEditMaterial)
	cursos.Post("/aprobar", h.HandleApproveAll)

	app.Get("/colegios/:colegio/cursos", h.HandleListCoursesBySchool)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	logger.WithCurso(h.service.logger, c).Warn(msg, zap.Error(err))
	return server.Error(c, err)
}

// HandleListVersions returns a course's history.
// @Summary List versions
// @Description Returns every version of the course's material list, newest first.
// @Tags materiales
// @Produce json
// @Param curso path string true "Course documentId or numeric id"
// @Success 200 {array} models.MaterialVersion
// @Failure 404 {object} map[string]string "Course not found"
// @Router /cursos/{curso}/versiones [get]
func (h *Handler) HandleListVersions(c *fiber.Ctx) error {
	list, err := h.service.ListVersions(c.UserContext(), c.Params("curso"))
	if err != nil {
		return h.fail(c, "List versions failed", err)
	}
	return c.JSON(list)
}

// HandleGetMaterials returns the latest version.
// @Summary Get latest list
// @Tags materiales
// @Produce json
// @Param curso path string true "Course documentId or numeric id"
// @Success 200 {object} LatestList
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Course has no versions"
// @Router /cursos/{curso}/materiales [get]
func (h *Handler) HandleGetMaterials(c *fiber.Ctx) error {
	latest, err := h.service.GetLatest(c.UserContext(), c.Params("curso"))
	if err != nil {
		return h.fail(c, "Get materials failed", err)
	}
	return c.JSON(latest)
}

// HandleAddMaterial appends an item to the latest version.
// @Summary Add material
// @Tags materiales
// @Accept json
// @Produce json
// @Param curso path string true "Course documentId or numeric id"
// @Param material body MaterialInput true "Item"
// @Success 201 {object} models.MaterialItem
// @Failure 422 {object} map[string]string "Invalid item"
// @Router /cursos/{curso}/materiales [post]
func (h *Handler) HandleAddMaterial(c *fiber.Ctx) error {
	var in MaterialInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	item, err := h.service.AddMaterial(c.UserContext(), c.Params("curso"), in)
	if err != nil {
		return h.fail(c, "Add material failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

type replaceRequest struct {
	Materiales []MaterialInput `json:"materiales"`
}

// HandleReplaceMaterials overwrites the latest version's items.
// @Summary Replace all materials
// @Tags materiales
// @Accept json
// @Produce json
// @Param curso path string true "Course documentId or numeric id"
// @Param body body replaceRequest true "Items"
// @Success 200 {array} models.MaterialItem
// @Failure 422 {object} map[string]string "Invalid item"
// @Router /cursos/{curso}/materiales [put]
func (h *Handler) HandleReplaceMaterials(c *fiber.Ctx) error {
	var req replaceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	items, err := h.service.ReplaceAllMaterials(c.UserContext(), c.Params("curso"), req.Materiales)
	if err != nil {
		return h.fail(c, "Replace materials failed", err)
	}
	return c.JSON(items)
}

// HandleEditMaterial patches one item.
// @Summary Edit material
// @Tags materiales
// @Accept json
// @Produce json
// @Param curso path string true "Course documentId or numeric id"
// @Param material path string true "Material id"
// @Param patch body MaterialPatch true "Fields to change"
// @Success 200 {object} models.MaterialItem
// @Failure 404 {object} map[string]string "Course or material not found"
// @Router /cursos/{curso}/materiales/{material} [patch]
func (h *Handler) HandleEditMaterial(c *fiber.Ctx) error {
	var patch MaterialPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	item, err := h.service.EditMaterial(c.UserContext(), c.Params("curso"), c.Params("material"), patch)
	if err != nil {
		return h.fail(c, "Edit material failed", err)
	}
	return c.JSON(item)
}

// HandleDeleteMaterial removes the first item matching the selector, given
// as a JSON body or as query parameters.
// @Summary Delete material
// @Tags materiales
// @Produce json
// @Param curso path string true "Course documentId or numeric id"
// @Param id query string false "Material id"
// @Param nombre query string false "Material name"
// @Param index query int false "Position in the list"
// @Success 200 {object} models.MaterialItem
// @Failure 404 {object} map[string]string "Course or material not found"
// @Router /cursos/{curso}/materiales [delete]
func (h *Handler) HandleDeleteMaterial(c *fiber.Ctx) error {
	var sel Selector
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&sel); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	if sel.Empty() {
		if err := c.QueryParser(&sel); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	item, err := h.service.DeleteMaterial(c.UserContext(), c.Params("curso"), sel)
	if err != nil {
		return h.fail(c, "Delete material failed", err)
	}
	return c.JSON(item)
}

// HandleApproveAll approves every item of the latest version.
// @Summary Approve list
// @Tags materiales
// @Produce json
// @Param curso path string true "Course documentId or numeric id"
// @Success 200 {object} Approval
// @Failure 409 {object} map[string]string "Course has no versions"
// @Failure 422 {object} map[string]string "Nothing to approve"
// @Router /cursos/{curso}/aprobar [post]
func (h *Handler) HandleApproveAll(c *fiber.Ctx) error {
	res, err := h.service.ApproveAll(c.UserContext(), c.Params("curso"))
	if err != nil {
		return h.fail(c, "Approve failed", err)
	}
	return c.JSON(res)
}

// HandleListCoursesBySchool lists a school's courses with material lists.
// @Summary Courses by school
// @Tags colegios
// @Produce json
// @Param colegio path string true "School documentId or numeric id"
// @Success 200 {object} SchoolCourses
// @Failure 404 {object} map[string]string "School not found"
// @Router /colegios/{colegio}/cursos [get]
func (h *Handler) HandleListCoursesBySchool(c *fiber.Ctx) error {
	res, err := h.service.ListCoursesBySchool(c.UserContext(), c.Params("colegio"))
	if err != nil {
		return h.fail(c, "List courses by school failed", err)
	}
	return c.JSON(res)
}
