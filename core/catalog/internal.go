package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"material-manager/core/matcher"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Producto is a row of the internal product catalog.
type Producto struct {
	ID                uint             `gorm:"primaryKey"`
	Nombre            string           `gorm:"size:255"`
	NombreNormalizado string           `gorm:"size:255;index"`
	ISBN              string           `gorm:"column:isbn;size:32"`
	ISBNDigits        string           `gorm:"column:isbn_digits;size:32;index"`
	SKU               string           `gorm:"size:64"`
	WooCommerceID     *int             `gorm:"column:woocommerce_id"`
	Precio            *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Stock             *int
	Imagen            string `gorm:"size:512"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides the table name used by gorm.
func (Producto) TableName() string {
	return "productos"
}

// BeforeSave keeps the normalized name and ISBN digits in sync for containment queries.
func (p *Producto) BeforeSave(tx *gorm.DB) error {
	p.NombreNormalizado = matcher.Normalize(p.Nombre)
	p.ISBNDigits = matcher.DigitsOnly(p.ISBN)
	return nil
}

// Internal searches the productos table.
type Internal struct {
	db        *gorm.DB
	batchSize int
}

// NewInternal creates an internal catalog over db.
func NewInternal(db *gorm.DB, batchSize int) *Internal {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &Internal{db: db, batchSize: batchSize}
}

// Migrate creates or updates the productos table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Producto{}); err != nil {
		return fmt.Errorf("failed to migrate productos: %w", err)
	}
	return backfillISBNDigits(db)
}

// backfillISBNDigits fills isbn_digits for rows written before the column existed.
func backfillISBNDigits(db *gorm.DB) error {
	var batch []Producto
	res := db.Where("isbn <> '' AND (isbn_digits IS NULL OR isbn_digits = '')").
		FindInBatches(&batch, 200, func(tx *gorm.DB, _ int) error {
			for i := range batch {
				err := tx.Model(&batch[i]).UpdateColumn("isbn_digits", matcher.DigitsOnly(batch[i].ISBN)).Error
				if err != nil {
					return err
				}
			}
			return nil
		})
	if res.Error != nil {
		return fmt.Errorf("failed to backfill isbn digits: %w", res.Error)
	}
	return nil
}

// likeEscape escapes LIKE metacharacters in name patterns.
const likeEscape = "!"

func containsPattern(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(s) + "%"
}

// isbnWithin lists every run of query digits long enough to be a stored ISBN,
// so stored values contained in the query can be matched with IN.
func isbnWithin(digits string) []string {
	var out []string
	for size := matcher.MinISBNDigits; size <= len(digits); size++ {
		for i := 0; i+size <= len(digits); i++ {
			out = append(out, digits[i:i+size])
		}
	}
	return out
}

var errFound = errors.New("found")

// Find returns the first product (lowest id) accepted by the catalog rule, or nil.
//
// With an ISBN the stored digits are prefiltered in both containment
// directions; otherwise a LIKE over the normalized name narrows candidates
// to those containing any token. The matcher picks among them batch by batch.
func (c *Internal) Find(ctx context.Context, q matcher.Query) (*Producto, error) {
	if q.Empty() {
		return nil, nil
	}

	tx := c.db.WithContext(ctx).Model(&Producto{})
	if q.HasISBN() {
		tx = tx.Where(c.db.Where("isbn_digits LIKE ?", "%"+q.ISBNDigits+"%").
			Or("isbn_digits IN ?", isbnWithin(q.ISBNDigits)))
	} else {
		const like = "nombre_normalizado LIKE ? ESCAPE '" + likeEscape + "'"
		cond := c.db.Where(like, containsPattern(q.Tokens[0]))
		for _, tok := range q.Tokens[1:] {
			cond = cond.Or(like, containsPattern(tok))
		}
		tx = tx.Where(cond)
	}

	var (
		found *Producto
		batch []Producto
	)
	res := tx.FindInBatches(&batch, c.batchSize, func(_ *gorm.DB, _ int) error {
		for i := range batch {
			if q.MatchesCandidate(batch[i].Nombre, batch[i].ISBN) {
				p := batch[i]
				found = &p
				return errFound
			}
		}
		return nil
	})
	if res.Error != nil && !errors.Is(res.Error, errFound) {
		return nil, fmt.Errorf("failed to query productos: %w", res.Error)
	}
	return found, nil
}
