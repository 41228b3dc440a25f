package publish

import (
	"material-manager/core/storage"
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

// NewFeature creates a new publish feature. It needs both a tag client and
// object storage and is disabled otherwise.
func NewFeature(vs *versions.Store, tags TagClient, client storage.Client, bucket string, logger *zap.Logger) *Feature {
	svc := NewService(vs, tags, client, bucket, logger)
	return &Feature{service: svc, handler: NewHandler(svc), enabled: tags != nil && client != nil}
}

// Service returns the feature's service for CLI use.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "publish"
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
