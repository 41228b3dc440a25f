package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE cursos (id INTEGER PRIMARY KEY, nombre_curso TEXT, versiones_materiales JSON)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "cursos")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["nombre_curso"])
	assert.Equal(t, "json", colMap["versiones_materiales"])

	// PRAGMA table_info returns an empty result for a non-existent table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE cursos (id INTEGER PRIMARY KEY, revision INTEGER)").Error)

	missing, err := MissingColumns(db, "cursos", "id", "revision", "versiones_materiales")
	assert.NoError(t, err)
	assert.Equal(t, []string{"versiones_materiales"}, missing)
}
