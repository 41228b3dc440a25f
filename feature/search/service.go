package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"material-manager/core/errs"
	"material-manager/core/matcher"
	"material-manager/feature/materials/models"
	"material-manager/feature/materials/store"
	"material-manager/feature/materials/versions"

	"go.uber.org/zap"
)

// MinQueryLength is the shortest accepted query, in characters.
const MinQueryLength = 2

// Hit is one matching item of a course's latest list.
type Hit struct {
	ColegioID      uint                `json:"colegio_id,omitempty"`
	ColegioNombre  string              `json:"colegio_nombre,omitempty"`
	Curso          string              `json:"curso"`
	NombreCurso    string              `json:"nombre_curso"`
	Anio           int                 `json:"anio,omitempty"`
	Matricula      int                 `json:"matricula"`
	Material       models.MaterialItem `json:"material"`
	TotalProductos int                 `json:"total_productos"`
}

// Totals aggregates a result set.
type Totals struct {
	Colegios       int `json:"colegios"`
	Cursos         int `json:"cursos"`
	Matricula      int `json:"matricula"`
	TotalProductos int `json:"total_productos"`
}

// Result is the answer to one search.
type Result struct {
	Query   string `json:"query"`
	Hits    []Hit  `json:"hits"`
	Totals  Totals `json:"totals"`
	Scanned int    `json:"scanned"`
	// Truncated is set when more courses exist than one search reads.
	Truncated bool `json:"truncated"`
}

// Service searches the latest list of every course.
type Service struct {
	docs    store.Store
	ceiling int
	logger  *zap.Logger
}

// NewService creates a new search service.
func NewService(docs store.Store, cfg Config, logger *zap.Logger) *Service {
	if cfg.PageSizeCeiling < 1 {
		cfg.PageSizeCeiling = 1000
	}
	return &Service{docs: docs, ceiling: cfg.PageSizeCeiling, logger: logger}
}

// SearchAcrossLists finds items whose nombre, isbn, marca, asignatura or
// descripcion contain the normalized query, or, for multi-word queries,
// contain every word somewhere across those fields. Only the latest version
// of each course is searched.
//
// Courses are read in a single page of at most the configured ceiling;
// Truncated reports that some were not scanned.
func (s *Service) SearchAcrossLists(ctx context.Context, query string) (*Result, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, errs.Invalid("q", "must be at least 2 characters")
	}
	q := matcher.NewQuery(query, "")
	if q.Empty() {
		return nil, errs.Invalid("q", "has no searchable characters")
	}

	page, err := s.docs.FindCursos(ctx, store.CursoFilter{}, store.Page{Number: 1, Size: s.ceiling})
	if err != nil {
		return nil, err
	}

	result := &Result{Query: query, Hits: []Hit{}, Truncated: page.HasMore}
	colegios := make(map[uint]struct{})
	cursos := make(map[uint]struct{})

	for i := range page.Items {
		curso := &page.Items[i]
		if len(curso.VersionesMateriales) == 0 {
			continue
		}
		result.Scanned++
		_, latest, err := versions.Latest(curso.VersionesMateriales)
		if err != nil {
			continue
		}

		for _, item := range latest.Materiales {
			if !q.MatchesFields(item.Nombre, item.ISBN, item.Marca, item.Asignatura, item.Descripcion) {
				continue
			}
			hit := Hit{
				ColegioID:      curso.ColegioID,
				Curso:          curso.Key(),
				NombreCurso:    curso.NombreCurso,
				Anio:           curso.Anio,
				Matricula:      curso.Matricula,
				Material:       item.Clone(),
				TotalProductos: models.TotalProductos(curso.Matricula, item.Cantidad),
			}
			if curso.Colegio != nil {
				hit.ColegioNombre = curso.Colegio.Nombre
			}
			result.Hits = append(result.Hits, hit)
			result.Totals.TotalProductos += hit.TotalProductos

			if _, seen := cursos[curso.ID]; !seen {
				cursos[curso.ID] = struct{}{}
				result.Totals.Matricula += curso.Matricula
			}
			if curso.ColegioID != 0 {
				colegios[curso.ColegioID] = struct{}{}
			}
		}
	}
	result.Totals.Cursos = len(cursos)
	result.Totals.Colegios = len(colegios)

	if result.Truncated {
		s.logger.Warn("Search scanned a truncated course set",
			zap.String("query", query),
			zap.Int("ceiling", s.ceiling))
	}
	return result, nil
}
