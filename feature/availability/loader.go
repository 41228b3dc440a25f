package availability

import (
	"material-manager/core/reconcile"
	"material-manager/feature/materials/versions"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates a new availability feature. It is disabled when no
// catalog source is configured.
func NewFeature(vs *versions.Store, engine *reconcile.Engine, archive *Archive, logger *zap.Logger) *Feature {
	svc := NewService(vs, engine, archive, logger)
	return &Feature{service: svc, handler: NewHandler(svc), enabled: engine != nil}
}

// Service returns the feature's service for CLI use.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "availability"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
