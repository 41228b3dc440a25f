package availability

import (
	"context"
	"time"

	"material-manager/core/errs"
	"material-manager/core/reconcile"
	"material-manager/feature/materials/models"
	"material-manager/feature/materials/versions"

	"go.uber.org/zap"
)

// Report is the outcome of one availability run.
type Report struct {
	Curso      string                `json:"curso"`
	Items      []models.MaterialItem `json:"items"`
	Summary    reconcile.Summary     `json:"summary"`
	Processed  int                   `json:"processed"`
	Total      int                   `json:"total"`
	Partial    bool                  `json:"partial"`
	VerifiedAt time.Time             `json:"verified_at"`
	ArchiveKey string                `json:"archive_key,omitempty"`
}

// Service checks the latest list of a course against the product catalogs.
type Service struct {
	versions *versions.Store
	engine   *reconcile.Engine
	archive  *Archive
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new availability service. archive may be nil.
func NewService(vs *versions.Store, engine *reconcile.Engine, archive *Archive, logger *zap.Logger) *Service {
	return &Service{
		versions: vs,
		engine:   engine,
		archive:  archive,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// VerifyAvailability looks every item of the latest version up, one catalog
// call at a time, and writes the price, stock and availability back in a
// single history write.
//
// The lookups run on a snapshot without holding the course lock; results are
// applied by item id to whatever the latest version is at write time. When
// the budget runs out or ctx is cancelled, the items resolved so far are
// still written and the report is marked partial.
func (s *Service) VerifyAvailability(ctx context.Context, cursoKey string) (*Report, error) {
	curso, err := s.versions.Get(ctx, cursoKey)
	if err != nil {
		return nil, err
	}
	_, latest, err := versions.Latest(curso.VersionesMateriales)
	if err != nil {
		return nil, err
	}

	subjects := make([]reconcile.Subject, 0, len(latest.Materiales))
	for _, item := range latest.Materiales {
		subjects = append(subjects, reconcile.Subject{Key: item.ID, Name: item.Nombre, ISBN: item.ISBN})
	}

	run := s.engine.ReconcileAll(ctx, subjects)
	results := make(map[string]reconcile.Result, len(run.Results))
	for _, r := range run.Results {
		results[r.Subject.Key] = r
	}

	report := &Report{
		Curso:     cursoKey,
		Summary:   run.Summary,
		Processed: len(run.Results),
		Total:     len(subjects),
		Partial:   run.Partial,
	}

	// Resolved items are committed even when the caller has gone away
	writeCtx := context.WithoutCancel(ctx)
	updated, err := s.versions.Mutate(writeCtx, curso.Key(), func(_ *models.Curso, v *models.MaterialVersion) error {
		for i := range v.Materiales {
			if r, ok := results[v.Materiales[i].ID]; ok {
				applyResult(&v.Materiales[i], r)
			}
		}
		now := s.now()
		v.FechaActualizacion = &now
		report.VerifiedAt = now
		report.Items = make([]models.MaterialItem, len(v.Materiales))
		for i := range v.Materiales {
			report.Items[i] = v.Materiales[i].Clone()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Availability verified",
		zap.String("curso", updated.Key()),
		zap.Int("processed", report.Processed),
		zap.Int("total", report.Total),
		zap.Int("disponible", report.Summary.Available),
		zap.Int("no_disponible", report.Summary.Unavailable),
		zap.Int("no_encontrado", report.Summary.NotFound),
		zap.Bool("partial", report.Partial),
		zap.Duration("elapsed", run.Elapsed))

	if s.archive != nil {
		key, err := s.archive.Save(writeCtx, report)
		if err != nil {
			s.logger.Warn("Failed to archive availability report", zap.String("curso", cursoKey), zap.Error(err))
		} else {
			report.ArchiveKey = key
		}
	}
	return report, nil
}

// ListReports returns the archived report keys of a course, newest first.
func (s *Service) ListReports(ctx context.Context, cursoKey string) ([]string, error) {
	if s.archive == nil {
		return []string{}, nil
	}
	curso, err := s.versions.Get(ctx, cursoKey)
	if err != nil {
		return nil, err
	}
	keys, err := s.archive.List(ctx, curso.Key())
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// LatestReport returns the newest archived report of a course.
func (s *Service) LatestReport(ctx context.Context, cursoKey string) (*Report, error) {
	keys, err := s.ListReports(ctx, cursoKey)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, errs.NotFound("availability report", cursoKey)
	}
	return s.archive.Load(ctx, keys[0])
}

// applyResult writes only the catalog-derived fields.
func applyResult(item *models.MaterialItem, r reconcile.Result) {
	item.Disponibilidad = models.Disponibilidad(r.Status)
	if r.Match == nil {
		item.EncontradoEnWooCommerce = false
		return
	}

	m := r.Match
	item.EncontradoEnWooCommerce = true
	if m.Price != nil {
		price := *m.Price
		item.Precio = &price
	}
	stock := m.StockOrZero()
	item.StockQuantity = &stock
	if m.Image != "" {
		item.Imagen = m.Image
	}
	if m.ExternalID != nil {
		id := *m.ExternalID
		item.WooCommerceID = &id
	}
}
