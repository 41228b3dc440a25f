package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"material-manager/core/database"
	"material-manager/core/errs"
	"material-manager/feature/materials/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ColegioRecord is the colegios table.
type ColegioRecord struct {
	ID         uint   `gorm:"primaryKey"`
	DocumentID string `gorm:"size:64;index"`
	Nombre     string `gorm:"size:255"`
	RBD        string `gorm:"size:32"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the table name used by gorm.
func (ColegioRecord) TableName() string {
	return "colegios"
}

// CursoRecord is the cursos table. The whole version history lives in one JSON column.
type CursoRecord struct {
	ID                  uint   `gorm:"primaryKey"`
	DocumentID          string `gorm:"size:64;index"`
	NombreCurso         string `gorm:"size:255"`
	Nivel               string `gorm:"size:64"`
	Grado               string `gorm:"size:64"`
	Anio                int    `gorm:"index"`
	Matricula           int
	Activo              bool
	ColegioID           *uint          `gorm:"index"`
	Colegio             *ColegioRecord `gorm:"foreignKey:ColegioID"`
	EstadoRevision      string         `gorm:"size:32"`
	FechaRevision       *time.Time
	TagWooCommerceID    *int                                         `gorm:"column:tag_woocommerce_id"`
	ExportKey           string                                       `gorm:"size:255"`
	VersionesMateriales datatypes.JSONType[[]models.MaterialVersion] `gorm:"column:versiones_materiales"`
	Revision            int64                                        `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName overrides the table name used by gorm.
func (CursoRecord) TableName() string {
	return "cursos"
}

// ToModel converts the record into the canonical Curso.
func (r *CursoRecord) ToModel() *models.Curso {
	c := &models.Curso{
		ID:                  r.ID,
		DocumentID:          r.DocumentID,
		NombreCurso:         r.NombreCurso,
		Nivel:               r.Nivel,
		Grado:               r.Grado,
		Anio:                r.Anio,
		Matricula:           r.Matricula,
		Activo:              r.Activo,
		EstadoRevision:      r.EstadoRevision,
		FechaRevision:       r.FechaRevision,
		TagWooCommerceID:    r.TagWooCommerceID,
		ExportKey:           r.ExportKey,
		VersionesMateriales: r.VersionesMateriales.Data(),
		Revision:            r.Revision,
	}
	if r.ColegioID != nil {
		c.ColegioID = *r.ColegioID
	}
	if r.Colegio != nil {
		c.Colegio = r.Colegio.ToModel()
	}
	return c
}

// ToModel converts the record into the canonical Colegio.
func (r *ColegioRecord) ToModel() *models.Colegio {
	return &models.Colegio{ID: r.ID, DocumentID: r.DocumentID, Nombre: r.Nombre, RBD: r.RBD}
}

// SQL is a Store backed by gorm tables.
type SQL struct {
	db *gorm.DB
}

// NewSQL creates a gorm-backed store.
func NewSQL(db *gorm.DB) *SQL {
	return &SQL{db: db}
}

// Migrate creates or updates the tables and checks the history columns exist.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ColegioRecord{}, &CursoRecord{}); err != nil {
		return fmt.Errorf("failed to migrate document tables: %w", err)
	}
	missing, err := database.MissingColumns(db, "cursos", "versiones_materiales", "revision")
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("cursos table is missing columns %v", missing)
	}
	return nil
}

// CreateColegio inserts a school and fills its id.
func (s *SQL) CreateColegio(ctx context.Context, c *models.Colegio) error {
	rec := ColegioRecord{ID: c.ID, DocumentID: c.DocumentID, Nombre: c.Nombre, RBD: c.RBD}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create colegio: %w", err)
	}
	c.ID = rec.ID
	return nil
}

// CreateCurso inserts a course with its history and fills its id.
func (s *SQL) CreateCurso(ctx context.Context, c *models.Curso) error {
	versions := c.VersionesMateriales
	if versions == nil {
		versions = []models.MaterialVersion{}
	}
	rec := CursoRecord{
		ID:                  c.ID,
		DocumentID:          c.DocumentID,
		NombreCurso:         c.NombreCurso,
		Nivel:               c.Nivel,
		Grado:               c.Grado,
		Anio:                c.Anio,
		Matricula:           c.Matricula,
		Activo:              c.Activo,
		EstadoRevision:      c.EstadoRevision,
		FechaRevision:       c.FechaRevision,
		TagWooCommerceID:    c.TagWooCommerceID,
		ExportKey:           c.ExportKey,
		VersionesMateriales: datatypes.NewJSONType(versions),
		Revision:            c.Revision,
	}
	if c.ColegioID != 0 {
		id := c.ColegioID
		rec.ColegioID = &id
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create curso: %w", err)
	}
	c.ID = rec.ID
	return nil
}

// GetCurso implements Store.
func (s *SQL) GetCurso(ctx context.Context, key string) (*models.Curso, error) {
	if key == "" {
		return nil, errs.NotFound("curso", key)
	}

	var rec CursoRecord
	err := s.db.WithContext(ctx).Preload("Colegio").Where("document_id = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		id, perr := strconv.ParseUint(key, 10, 64)
		if perr != nil {
			return nil, errs.NotFound("curso", key)
		}
		err = s.db.WithContext(ctx).Preload("Colegio").First(&rec, id).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("curso", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load curso %s: %w", key, err)
	}

	return rec.ToModel(), nil
}

// FindCursos implements Store.
func (s *SQL) FindCursos(ctx context.Context, filter CursoFilter, page Page) (*CursoPage, error) {
	page = page.Normalize(0)

	q := s.db.WithContext(ctx).Preload("Colegio").Model(&CursoRecord{})
	if filter.ColegioID != nil {
		q = q.Where("colegio_id = ?", *filter.ColegioID)
	}
	if filter.Anio != nil {
		q = q.Where("anio = ?", *filter.Anio)
	}

	var recs []CursoRecord
	// One extra row tells whether another page exists
	if err := q.Order("id").Offset(page.Offset()).Limit(page.Size + 1).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to query cursos: %w", err)
	}

	result := &CursoPage{Page: page}
	if len(recs) > page.Size {
		result.HasMore = true
		recs = recs[:page.Size]
	}
	result.Items = make([]models.Curso, 0, len(recs))
	for i := range recs {
		result.Items = append(result.Items, *recs[i].ToModel())
	}
	return result, nil
}

// SaveVersions implements Store.
func (s *SQL) SaveVersions(ctx context.Context, id uint, expectedRevision int64, versions []models.MaterialVersion) (int64, error) {
	if versions == nil {
		versions = []models.MaterialVersion{}
	}

	res := s.db.WithContext(ctx).Model(&CursoRecord{}).
		Where("id = ? AND revision = ?", id, expectedRevision).
		Updates(map[string]any{
			"versiones_materiales": datatypes.NewJSONType(versions),
			"revision":             gorm.Expr("revision + 1"),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to save versions of curso %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		if err := s.requireCurso(ctx, id); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("curso %d changed since revision %d: %w", id, expectedRevision, errs.ErrConflict)
	}

	return expectedRevision + 1, nil
}

// UpdateCurso implements Store.
func (s *SQL) UpdateCurso(ctx context.Context, id uint, update CursoUpdate) error {
	if update.Empty() {
		return nil
	}

	res := s.db.WithContext(ctx).Model(&CursoRecord{}).Where("id = ?", id).Updates(update.Fields())
	if res.Error != nil {
		return fmt.Errorf("failed to update curso %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports changed rows, so a no-op write also lands here
		return s.requireCurso(ctx, id)
	}
	return nil
}

func (s *SQL) requireCurso(ctx context.Context, id uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&CursoRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check curso %d: %w", id, err)
	}
	if count == 0 {
		return errs.NotFound("curso", strconv.FormatUint(uint64(id), 10))
	}
	return nil
}

// GetColegio implements Store.
func (s *SQL) GetColegio(ctx context.Context, key string) (*models.Colegio, error) {
	if key == "" {
		return nil, errs.NotFound("colegio", key)
	}

	var rec ColegioRecord
	err := s.db.WithContext(ctx).Where("document_id = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		id, perr := strconv.ParseUint(key, 10, 64)
		if perr != nil {
			return nil, errs.NotFound("colegio", key)
		}
		err = s.db.WithContext(ctx).First(&rec, id).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("colegio", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load colegio %s: %w", key, err)
	}
	return rec.ToModel(), nil
}
