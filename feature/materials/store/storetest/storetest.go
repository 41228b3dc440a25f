// Package storetest provides an in-memory document store and seed helpers for tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"material-manager/core/database"
	"material-manager/feature/materials/models"
	"material-manager/feature/materials/store"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New opens a migrated sqlite in-memory store.
func New(t *testing.T) (*store.SQL, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return store.NewSQL(db), db
}

// Colegio inserts a school.
func Colegio(t *testing.T, s *store.SQL, documentID, nombre string) *models.Colegio {
	t.Helper()
	c := &models.Colegio{DocumentID: documentID, Nombre: nombre}
	require.NoError(t, s.CreateColegio(context.Background(), c))
	return c
}

// Curso inserts an active course with the given history.
func Curso(t *testing.T, s *store.SQL, documentID string, colegio *models.Colegio, versions ...models.MaterialVersion) *models.Curso {
	t.Helper()
	c := &models.Curso{
		DocumentID:          documentID,
		NombreCurso:         "Curso " + documentID,
		Anio:                2025,
		Matricula:           30,
		Activo:              true,
		EstadoRevision:      models.EstadoPendiente,
		VersionesMateriales: versions,
	}
	if colegio != nil {
		c.ColegioID = colegio.ID
	}
	require.NoError(t, s.CreateCurso(context.Background(), c))
	return c
}

// Version builds a version uploaded at the given day of January 2025.
func Version(day int, items ...models.MaterialItem) models.MaterialVersion {
	if items == nil {
		items = []models.MaterialItem{}
	}
	return models.MaterialVersion{
		FechaSubida: time.Date(2025, 1, day, 10, 0, 0, 0, time.UTC),
		Materiales:  items,
	}
}

// Item builds a minimal material line.
func Item(id, nombre string) models.MaterialItem {
	return models.MaterialItem{ID: id, Nombre: nombre, Tipo: models.TipoUtil, Cantidad: 1, Obligatorio: true}
}
