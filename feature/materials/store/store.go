package store

import (
	"context"
	"time"

	"material-manager/feature/materials/models"
)

// Store is the document store holding courses and schools.
//
// Keys are either the stable external key (DocumentID) or the numeric id;
// lookups try the external key first.
type Store interface {
	// GetCurso loads a course with its school and full version history.
	GetCurso(ctx context.Context, key string) (*models.Curso, error)

	// FindCursos returns one page of courses matching the filter.
	FindCursos(ctx context.Context, filter CursoFilter, page Page) (*CursoPage, error)

	// SaveVersions overwrites the version history if the stored revision still
	// equals expectedRevision, and returns the new revision. A stale revision
	// fails with errs.ErrConflict.
	SaveVersions(ctx context.Context, id uint, expectedRevision int64, versions []models.MaterialVersion) (int64, error)

	// UpdateCurso writes the non-nil fields of update. An empty update is a no-op.
	UpdateCurso(ctx context.Context, id uint, update CursoUpdate) error

	// GetColegio loads a school by external or numeric key.
	GetColegio(ctx context.Context, key string) (*models.Colegio, error)
}

// CursoFilter narrows FindCursos.
type CursoFilter struct {
	ColegioID *uint
	Anio      *int
}

// Page selects a 1-based page.
type Page struct {
	Number int
	Size   int
}

// Normalize applies defaults: page 1, size 25, size capped at max when max > 0.
func (p Page) Normalize(max int) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = 25
	}
	if max > 0 && p.Size > max {
		p.Size = max
	}
	return p
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// CursoPage is one page of FindCursos results.
type CursoPage struct {
	Items   []models.Curso
	Page    Page
	HasMore bool
}

// CursoUpdate lists the course fields this service may change besides the history.
type CursoUpdate struct {
	Activo           *bool
	ColegioID        *uint
	Anio             *int
	EstadoRevision   *string
	FechaRevision    *time.Time
	TagWooCommerceID *int
	ClearTag         bool
	ExportKey        *string
}

// Empty reports whether the update would change nothing.
func (u CursoUpdate) Empty() bool {
	return u.Activo == nil && u.ColegioID == nil && u.Anio == nil &&
		u.EstadoRevision == nil && u.FechaRevision == nil &&
		u.TagWooCommerceID == nil && !u.ClearTag && u.ExportKey == nil
}

// Fields returns the update as a column map.
func (u CursoUpdate) Fields() map[string]any {
	fields := make(map[string]any)
	if u.Activo != nil {
		fields["activo"] = *u.Activo
	}
	if u.ColegioID != nil {
		fields["colegio_id"] = *u.ColegioID
	}
	if u.Anio != nil {
		fields["anio"] = *u.Anio
	}
	if u.EstadoRevision != nil {
		fields["estado_revision"] = *u.EstadoRevision
	}
	if u.FechaRevision != nil {
		fields["fecha_revision"] = *u.FechaRevision
	}
	if u.TagWooCommerceID != nil {
		fields["tag_woocommerce_id"] = *u.TagWooCommerceID
	} else if u.ClearTag {
		fields["tag_woocommerce_id"] = nil
	}
	if u.ExportKey != nil {
		fields["export_key"] = *u.ExportKey
	}
	return fields
}
