package integrity

import (
	"context"
	"fmt"

	"material-manager/core/catalog"
	"material-manager/core/errs"
	"material-manager/core/storage"
	"material-manager/feature/integrity/checks"
	"material-manager/feature/materials/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNoStorage is returned by bucket checks when object storage is not configured.
	ErrNoStorage = fmt.Errorf("%w: object storage is not configured", errs.ErrUnavailable)

	// ErrNoDatabase is returned by schema checks when no SQL database is connected.
	ErrNoDatabase = fmt.Errorf("%w: database is not connected", errs.ErrUnavailable)
)

// Report combines both checks. A check that could not run carries its error instead.
type Report struct {
	Structure      *checks.StructureReport `json:"structure,omitempty"`
	StructureError string                  `json:"structure_error,omitempty"`
	Schema         *checks.SchemaReport    `json:"schema,omitempty"`
	SchemaError    string                  `json:"schema_error,omitempty"`
}

// Healthy reports whether both checks ran and found nothing to fix.
func (r *Report) Healthy() bool {
	return r.Structure != nil && r.Structure.Intact() && r.Schema != nil && r.Schema.Matched
}

// Service checks the bucket layout and the SQL tables the service relies on.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service. client and db may be nil.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{client: client, bucket: bucket, logger: logger, db: db}
}

// Structure inspects the bucket and, when fix is set, creates the missing folders.
func (s *Service) Structure(ctx context.Context, fix bool) (*checks.StructureReport, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	report, err := checks.CheckStructure(ctx, s.client, s.bucket)
	if err != nil {
		return nil, err
	}
	if !fix || report.Intact() {
		return report, nil
	}
	if err := checks.FixStructure(ctx, s.client, report); err != nil {
		return report, err
	}
	s.logger.Info("Created missing folders", zap.String("bucket", s.bucket), zap.Strings("folders", report.Created))
	return report, nil
}

// Schema compares the course, school and product tables with their models.
func (s *Service) Schema() (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return checks.CheckSchema(s.db, &store.ColegioRecord{}, &store.CursoRecord{}, &catalog.Producto{})
}

// Run executes both checks without fixing anything.
func (s *Service) Run(ctx context.Context) *Report {
	report := &Report{}
	if st, err := s.Structure(ctx, false); err != nil {
		report.StructureError = err.Error()
	} else {
		report.Structure = st
	}
	if sc, err := s.Schema(); err != nil {
		report.SchemaError = err.Error()
	} else {
		report.Schema = sc
	}
	return report
}
