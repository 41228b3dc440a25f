package catalog

import (
	"context"
	"testing"

	"material-manager/core/database"
	"material-manager/core/matcher"
	"material-manager/core/reconcile"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInternal(t *testing.T, batch int, rows ...Producto) (*Internal, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
	return NewInternal(db, batch), db
}

func intPtr(n int) *int { return &n }

func TestProducto_BeforeSaveNormalizes(t *testing.T) {
	_, db := newInternal(t, 10, Producto{Nombre: "  Cuaderno   UNIVERSITARIO Matemática "})

	var p Producto
	require.NoError(t, db.First(&p).Error)
	assert.Equal(t, "cuaderno universitario matematica", p.NombreNormalizado)
}

func TestInternal_FindByName(t *testing.T) {
	price := decimal.RequireFromString("2490.00")
	cat, _ := newInternal(t, 1,
		Producto{Nombre: "Regla 30 cm"},
		Producto{Nombre: "Cuaderno college 100 hojas"},
		Producto{Nombre: "Cuaderno Universitario 100 hojas", Precio: &price, Stock: intPtr(4)},
	)
	ctx := context.Background()

	// Two of three tokens present, found in a later batch
	p, err := cat.Find(ctx, matcher.NewQuery("cuaderno universitario cuadriculado", ""))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Cuaderno Universitario 100 hojas", p.Nombre)
	assert.True(t, price.Equal(*p.Precio))

	// Accents and case are ignored
	p, err = cat.Find(ctx, matcher.NewQuery("RÉGLA", ""))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Regla 30 cm", p.Nombre)

	p, err = cat.Find(ctx, matcher.NewQuery("compás", ""))
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = cat.Find(ctx, matcher.NewQuery("", ""))
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestInternal_FindByISBN(t *testing.T) {
	cat, _ := newInternal(t, 50,
		Producto{Nombre: "Lenguaje 1° Básico", ISBN: "978-956-12-3456-7"},
		Producto{Nombre: "Matemática 1° Básico", ISBN: "978 956 99 0000 1"},
	)

	p, err := cat.Find(context.Background(), matcher.NewQuery("libro cualquiera", "9789561234567"))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Lenguaje 1° Básico", p.Nombre)

	// The ISBN rule applies alone; a matching name does not rescue a wrong ISBN
	p, err = cat.Find(context.Background(), matcher.NewQuery("Matemática 1° Básico", "9780000000000"))
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestInternal_FindByISBN_StoredWithinQuery(t *testing.T) {
	cat, _ := newInternal(t, 50, Producto{Nombre: "Historia 5° Básico", ISBN: "956-12-3456-7"})

	// The stored ten digits sit inside the thirteen digit query
	p, err := cat.Find(context.Background(), matcher.NewQuery("historia", "978-9561234567"))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Historia 5° Básico", p.Nombre)
}

func TestInternal_FindEscapesLikeWildcards(t *testing.T) {
	cat, _ := newInternal(t, 50,
		Producto{Nombre: "Carpetaxa4 oficio"},
		Producto{Nombre: "Carpeta_a4 oficio"},
	)

	p, err := cat.Find(context.Background(), matcher.NewQuery("carpeta_a4", ""))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Carpeta_a4 oficio", p.Nombre)
}

func TestMigrate_BackfillsISBNDigits(t *testing.T) {
	cat, db := newInternal(t, 50)
	require.NoError(t, db.Exec("INSERT INTO productos (nombre, nombre_normalizado, isbn, isbn_digits) VALUES (?, ?, ?, '')",
		"Ciencias 3° Básico", "ciencias 3° basico", "978-956-00-1111-2").Error)

	require.NoError(t, Migrate(db))

	p, err := cat.Find(context.Background(), matcher.NewQuery("ciencias", "9789560011112"))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "9789560011112", p.ISBNDigits)
}

func TestInternalSource_Lookup(t *testing.T) {
	cat, _ := newInternal(t, 10, Producto{Nombre: "Tijeras punta roma", WooCommerceID: intPtr(99), Stock: intPtr(2), Imagen: "https://img/t.jpg"})
	src := NewInternalSource(cat)

	m, err := src.Lookup(context.Background(), reconcile.Subject{Name: "tijeras"})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, SourceInternal, m.Source)
	assert.Equal(t, 99, *m.ExternalID)
	assert.Equal(t, reconcile.StatusAvailable, reconcile.Classify(m))
	assert.Equal(t, "https://img/t.jpg", m.Image)
}
