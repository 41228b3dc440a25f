package publish

import (
	"context"
	"fmt"
	"strings"
	"time"

	"material-manager/core/matcher"
	"material-manager/core/saga"
	"material-manager/core/storage"
	"material-manager/feature/materials/models"
	"material-manager/feature/materials/store"
	"material-manager/feature/materials/versions"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// TagClient creates and removes product tags in the shop catalog.
type TagClient interface {
	CreateTag(ctx context.Context, name, slug string) (int, error)
	DeleteTag(ctx context.Context, id int) error
}

// Export is the document uploaded for a published list.
type Export struct {
	RunID       string                 `json:"run_id"`
	Curso       string                 `json:"curso"`
	NombreCurso string                 `json:"nombre_curso"`
	Colegio     string                 `json:"colegio,omitempty"`
	Anio        int                    `json:"anio,omitempty"`
	Matricula   int                    `json:"matricula"`
	TagID       int                    `json:"tag_woocommerce_id"`
	Version     models.MaterialVersion `json:"version"`
	Lines       []ExportLine           `json:"lines"`
	ExportedAt  time.Time              `json:"exported_at"`
}

// ExportLine is one item with the quantity needed for the whole course.
type ExportLine struct {
	ID             string `json:"id"`
	Nombre         string `json:"nombre"`
	Cantidad       int    `json:"cantidad"`
	TotalProductos int    `json:"total_productos"`
	WooCommerceID  *int   `json:"woocommerce_id,omitempty"`
}

// Publication is the outcome of a successful publish.
type Publication struct {
	Curso       string    `json:"curso"`
	TagID       int       `json:"tag_woocommerce_id"`
	TagCreated  bool      `json:"tag_created"`
	ExportKey   string    `json:"export_key"`
	Lines       int       `json:"lines"`
	PublishedAt time.Time `json:"published_at"`
}

// Service publishes a course's latest list to the shop and object storage.
type Service struct {
	versions *versions.Store
	tags     TagClient
	storage  storage.Client
	bucket   string
	logger   *zap.Logger
	now      func() time.Time
	newRunID func() string
}

// NewService creates a new publish service.
func NewService(vs *versions.Store, tags TagClient, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		versions: vs,
		tags:     tags,
		storage:  client,
		bucket:   bucket,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newRunID: uuid.NewString,
	}
}

// ExportKey returns the object key of an export taken at ts.
func ExportKey(cursoKey string, ts time.Time) string {
	return fmt.Sprintf("exports/cursos/%s/%s.json", strings.ReplaceAll(cursoKey, "/", "_"), ts.UTC().Format("20060102T150405.000Z"))
}

// Slug builds the catalog tag slug of a course.
func Slug(c *models.Curso) string {
	base := matcher.Normalize(fmt.Sprintf("curso %s %d", c.Key(), c.Anio))
	var b strings.Builder
	dash := false
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Publish tags the course in the catalog, uploads the latest list and
// records both on the course. A failing step undoes the earlier ones; a
// course that already carries a tag keeps it and only gets a new export.
func (s *Service) Publish(ctx context.Context, cursoKey string) (*Publication, error) {
	curso, err := s.versions.Get(ctx, cursoKey)
	if err != nil {
		return nil, err
	}
	_, latest, err := versions.Latest(curso.VersionesMateriales)
	if err != nil {
		return nil, err
	}

	now := s.now()
	runID := s.newRunID()
	pub := &Publication{
		Curso:       curso.Key(),
		ExportKey:   ExportKey(curso.Key(), now),
		Lines:       len(latest.Materiales),
		PublishedAt: now,
	}
	log := s.logger.With(zap.String("curso", pub.Curso), zap.String("run_id", runID))

	run := saga.New("publish", log)
	if curso.TagWooCommerceID != nil {
		pub.TagID = *curso.TagWooCommerceID
	} else {
		run.Add(saga.Step{
			Name: "create_tag",
			Action: func(ctx context.Context) error {
				id, err := s.tags.CreateTag(ctx, tagName(curso), Slug(curso))
				if err != nil {
					return err
				}
				pub.TagID = id
				pub.TagCreated = true
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.tags.DeleteTag(ctx, pub.TagID)
			},
		})
	}

	run.Add(saga.Step{
		Name: "upload_export",
		Action: func(ctx context.Context) error {
			return storage.PutJSON(ctx, s.storage, s.bucket, pub.ExportKey, buildExport(runID, curso, latest, pub))
		},
		Compensate: func(ctx context.Context) error {
			return s.storage.RemoveObject(ctx, s.bucket, pub.ExportKey, minio.RemoveObjectOptions{})
		},
	})

	run.Add(saga.Step{
		Name: "record_publication",
		Action: func(ctx context.Context) error {
			tag := pub.TagID
			key := pub.ExportKey
			return s.versions.Docs().UpdateCurso(ctx, curso.ID, store.CursoUpdate{TagWooCommerceID: &tag, ExportKey: &key})
		},
	})

	if err := run.Run(ctx); err != nil {
		if saga.IsCompensationFailure(err) {
			log.Error("Publish left side effects behind", zap.Error(err))
		}
		return nil, err
	}

	log.Info("Published course list",
		zap.Int("tag_id", pub.TagID),
		zap.Bool("tag_created", pub.TagCreated),
		zap.String("export_key", pub.ExportKey))
	return pub, nil
}

func tagName(c *models.Curso) string {
	name := c.NombreCurso
	if c.Colegio != nil && c.Colegio.Nombre != "" {
		name = c.Colegio.Nombre + " - " + name
	}
	if c.Anio != 0 {
		name = fmt.Sprintf("%s %d", name, c.Anio)
	}
	return name
}

func buildExport(runID string, c *models.Curso, v *models.MaterialVersion, pub *Publication) Export {
	exp := Export{
		RunID:       runID,
		Curso:       c.Key(),
		NombreCurso: c.NombreCurso,
		Anio:        c.Anio,
		Matricula:   c.Matricula,
		TagID:       pub.TagID,
		Version:     v.Clone(),
		Lines:       make([]ExportLine, 0, len(v.Materiales)),
		ExportedAt:  pub.PublishedAt,
	}
	if c.Colegio != nil {
		exp.Colegio = c.Colegio.Nombre
	}
	for _, item := range v.Materiales {
		exp.Lines = append(exp.Lines, ExportLine{
			ID:             item.ID,
			Nombre:         item.Nombre,
			Cantidad:       item.Cantidad,
			TotalProductos: models.TotalProductos(c.Matricula, item.Cantidad),
			WooCommerceID:  item.WooCommerceID,
		})
	}
	return exp
}
