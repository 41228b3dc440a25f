package materials

import (
	"context"
	"fmt"
	"time"

	"material-manager/core/errs"
	"material-manager/feature/materials/models"
	"material-manager/feature/materials/review"
	"material-manager/feature/materials/store"
	"material-manager/feature/materials/versions"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service edits, approves and lists course material lists.
type Service struct {
	versions *versions.Store
	docs     store.Store
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewService creates a new materials service.
func NewService(vs *versions.Store, logger *zap.Logger) *Service {
	return &Service{
		versions: vs,
		docs:     vs.Docs(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// LatestList is the latest version of a course's list.
type LatestList struct {
	Curso   *models.Curso           `json:"curso"`
	Version *models.MaterialVersion `json:"version"`
}

// GetLatest returns the latest version of the course's list.
func (s *Service) GetLatest(ctx context.Context, cursoKey string) (*LatestList, error) {
	curso, err := s.versions.Get(ctx, cursoKey)
	if err != nil {
		return nil, err
	}
	_, latest, err := versions.Latest(curso.VersionesMateriales)
	if err != nil {
		return nil, err
	}
	v := latest.Clone()
	curso.VersionesMateriales = nil
	return &LatestList{Curso: curso, Version: &v}, nil
}

// ListVersions returns the whole history, newest first.
func (s *Service) ListVersions(ctx context.Context, cursoKey string) ([]models.MaterialVersion, error) {
	curso, err := s.versions.Get(ctx, cursoKey)
	if err != nil {
		return nil, err
	}
	return versions.NewestFirst(curso.VersionesMateriales), nil
}

// EditMaterial patches one item of the latest version.
func (s *Service) EditMaterial(ctx context.Context, cursoKey, materialID string, patch MaterialPatch) (*models.MaterialItem, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var edited models.MaterialItem
	curso, err := s.versions.Mutate(ctx, cursoKey, func(_ *models.Curso, latest *models.MaterialVersion) error {
		idx := latest.IndexOf(materialID)
		if idx < 0 {
			return errs.NotFound("material", materialID)
		}
		patch.Apply(&latest.Materiales[idx])
		s.stamp(latest)
		edited = latest.Materiales[idx].Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.reopen(ctx, curso)
	return &edited, nil
}

// DeleteMaterial removes the first item the selector matches.
func (s *Service) DeleteMaterial(ctx context.Context, cursoKey string, sel Selector) (*models.MaterialItem, error) {
	if sel.Empty() {
		return nil, errs.Invalid("selector", "one of id, nombre or index is required")
	}

	var removed models.MaterialItem
	curso, err := s.versions.Mutate(ctx, cursoKey, func(_ *models.Curso, latest *models.MaterialVersion) error {
		idx := sel.Resolve(latest.Materiales)
		if idx < 0 {
			return errs.NotFound("material", sel.String())
		}
		removed = latest.Materiales[idx]
		latest.Materiales = append(latest.Materiales[:idx], latest.Materiales[idx+1:]...)
		s.stamp(latest)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.reopen(ctx, curso)
	return &removed, nil
}

// ReplaceAllMaterials overwrites the latest version's items.
func (s *Service) ReplaceAllMaterials(ctx context.Context, cursoKey string, inputs []MaterialInput) ([]models.MaterialItem, error) {
	items := make([]models.MaterialItem, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for i, in := range inputs {
		item, err := in.ToItem()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if _, dup := seen[item.ID]; item.ID == "" || dup {
			item.ID = s.newID()
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}

	curso, err := s.versions.Mutate(ctx, cursoKey, func(_ *models.Curso, latest *models.MaterialVersion) error {
		latest.Materiales = items
		s.stamp(latest)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.reopen(ctx, curso)
	return items, nil
}

// AddMaterial appends one item to the latest version.
func (s *Service) AddMaterial(ctx context.Context, cursoKey string, in MaterialInput) (*models.MaterialItem, error) {
	item, err := in.ToItem()
	if err != nil {
		return nil, err
	}

	curso, err := s.versions.Mutate(ctx, cursoKey, func(_ *models.Curso, latest *models.MaterialVersion) error {
		if item.ID == "" || latest.IndexOf(item.ID) >= 0 {
			item.ID = s.newID()
		}
		latest.Materiales = append(latest.Materiales, item)
		s.stamp(latest)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.reopen(ctx, curso)
	return &item, nil
}

// Approval is the outcome of ApproveAll.
type Approval struct {
	Curso          string `json:"curso"`
	Total          int    `json:"total"`
	NewlyApproved  int    `json:"newly_approved"`
	EstadoRevision string `json:"estado_revision"`
}

// ApproveAll approves every item of the latest version, then marks the
// course reviewed. The second step is best-effort: its failure is logged
// and the approvals stay.
func (s *Service) ApproveAll(ctx context.Context, cursoKey string) (*Approval, error) {
	now := s.now()
	result := &Approval{Curso: cursoKey}

	curso, err := s.versions.Mutate(ctx, cursoKey, func(_ *models.Curso, latest *models.MaterialVersion) error {
		if len(latest.Materiales) == 0 {
			return errs.ErrNothingToApprove
		}
		for i := range latest.Materiales {
			item := &latest.Materiales[i]
			if item.Aprobado {
				continue
			}
			item.Aprobado = true
			stamp := now
			item.FechaAprobacion = &stamp
			result.NewlyApproved++
		}
		result.Total = len(latest.Materiales)
		latest.FechaActualizacion = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := review.Apply(ctx, s.docs, curso, review.EventAprobar, now); err != nil {
		s.logger.Warn("Failed to mark curso as reviewed",
			zap.String("curso", cursoKey),
			zap.Error(err))
	}
	result.EstadoRevision = curso.EstadoRevision
	return result, nil
}

// CourseSummary describes a participating course of a school.
type CourseSummary struct {
	ID                  uint       `json:"id"`
	DocumentID          string     `json:"documentId,omitempty"`
	NombreCurso         string     `json:"nombre_curso"`
	Nivel               string     `json:"nivel,omitempty"`
	Grado               string     `json:"grado,omitempty"`
	Anio                int        `json:"anio,omitempty"`
	Matricula           int        `json:"matricula"`
	EstadoRevision      string     `json:"estado_revision,omitempty"`
	Versiones           int        `json:"versiones"`
	Materiales          int        `json:"materiales"`
	UltimaActualizacion *time.Time `json:"ultima_actualizacion,omitempty"`
}

// SchoolCourses lists a school's participating courses.
type SchoolCourses struct {
	Colegio *models.Colegio `json:"colegio"`
	Cursos  []CourseSummary `json:"cursos"`
}

const schoolPageSize = 100

// ListCoursesBySchool returns the school's courses that have at least one
// version with materials or a source document.
func (s *Service) ListCoursesBySchool(ctx context.Context, colegioKey string) (*SchoolCourses, error) {
	colegio, err := s.docs.GetColegio(ctx, colegioKey)
	if err != nil {
		return nil, err
	}

	out := &SchoolCourses{Colegio: colegio, Cursos: []CourseSummary{}}
	filter := store.CursoFilter{ColegioID: &colegio.ID}
	for page := (store.Page{Number: 1, Size: schoolPageSize}); ; page.Number++ {
		res, err := s.docs.FindCursos(ctx, filter, page)
		if err != nil {
			return nil, err
		}
		for i := range res.Items {
			if summary, ok := summarize(&res.Items[i]); ok {
				out.Cursos = append(out.Cursos, summary)
			}
		}
		if !res.HasMore {
			break
		}
	}
	return out, nil
}

func summarize(c *models.Curso) (CourseSummary, bool) {
	if !c.HasMaterials() {
		return CourseSummary{}, false
	}
	summary := CourseSummary{
		ID:             c.ID,
		DocumentID:     c.DocumentID,
		NombreCurso:    c.NombreCurso,
		Nivel:          c.Nivel,
		Grado:          c.Grado,
		Anio:           c.Anio,
		Matricula:      c.Matricula,
		EstadoRevision: c.EstadoRevision,
		Versiones:      len(c.VersionesMateriales),
	}
	if _, latest, err := versions.Latest(c.VersionesMateriales); err == nil {
		summary.Materiales = len(latest.Materiales)
		t := latest.EffectiveTime()
		summary.UltimaActualizacion = &t
	}
	return summary, true
}

func (s *Service) stamp(v *models.MaterialVersion) {
	now := s.now()
	v.FechaActualizacion = &now
}

// reopen sends an already reviewed list back to review after an edit.
func (s *Service) reopen(ctx context.Context, curso *models.Curso) {
	if curso.EstadoRevision != models.EstadoRevisado {
		return
	}
	if _, err := review.Apply(ctx, s.docs, curso, review.EventReabrir, s.now()); err != nil {
		s.logger.Warn("Failed to reopen reviewed curso",
			zap.String("curso", curso.Key()),
			zap.Error(err))
	}
}
