package materials

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"material-manager/core/errs"
	"material-manager/feature/materials/models"

	"github.com/shopspring/decimal"
)

// MaterialPatch lists the item fields an edit may change. id, coordenadas
// and disponibilidad have no field here and are never patched.
type MaterialPatch struct {
	Nombre                  *string          `json:"nombre,omitempty"`
	Tipo                    *models.Tipo     `json:"tipo,omitempty"`
	Cantidad                *int             `json:"cantidad,omitempty"`
	Obligatorio             *bool            `json:"obligatorio,omitempty"`
	ISBN                    *string          `json:"isbn,omitempty"`
	Marca                   *string          `json:"marca,omitempty"`
	Asignatura              *string          `json:"asignatura,omitempty"`
	Descripcion             *string          `json:"descripcion,omitempty"`
	Precio                  *decimal.Decimal `json:"precio,omitempty"`
	StockQuantity           *int             `json:"stock_quantity,omitempty"`
	Imagen                  *string          `json:"imagen,omitempty"`
	EncontradoEnWooCommerce *bool            `json:"encontrado_en_woocommerce,omitempty"`
	WooCommerceID           *int             `json:"woocommerce_id,omitempty"`
	Aprobado                *bool            `json:"aprobado,omitempty"`
	FechaAprobacion         *time.Time       `json:"fecha_aprobacion,omitempty"`
}

// Validate checks the patched values.
func (p MaterialPatch) Validate() error {
	if p.Nombre != nil && strings.TrimSpace(*p.Nombre) == "" {
		return errs.Invalid("nombre", "must not be empty")
	}
	if p.Tipo != nil && !p.Tipo.Valid() {
		return errs.Invalid("tipo", "must be one of util, libro, cuaderno, otro")
	}
	if p.Cantidad != nil && *p.Cantidad < 1 {
		return errs.Invalid("cantidad", "must be at least 1")
	}
	return nil
}

// Apply copies the set fields onto item. fecha_aprobacion is only taken
// when the item has none yet.
func (p MaterialPatch) Apply(item *models.MaterialItem) {
	setString(&item.Nombre, p.Nombre)
	if p.Tipo != nil {
		item.Tipo = *p.Tipo
	}
	if p.Cantidad != nil {
		item.Cantidad = *p.Cantidad
	}
	if p.Obligatorio != nil {
		item.Obligatorio = *p.Obligatorio
	}
	setString(&item.ISBN, p.ISBN)
	setString(&item.Marca, p.Marca)
	setString(&item.Asignatura, p.Asignatura)
	setString(&item.Descripcion, p.Descripcion)
	if p.Precio != nil {
		price := *p.Precio
		item.Precio = &price
	}
	if p.StockQuantity != nil {
		stock := *p.StockQuantity
		item.StockQuantity = &stock
	}
	setString(&item.Imagen, p.Imagen)
	if p.EncontradoEnWooCommerce != nil {
		item.EncontradoEnWooCommerce = *p.EncontradoEnWooCommerce
	}
	if p.WooCommerceID != nil {
		id := *p.WooCommerceID
		item.WooCommerceID = &id
	}
	if p.Aprobado != nil {
		item.Aprobado = *p.Aprobado
	}
	if p.FechaAprobacion != nil && item.FechaAprobacion == nil {
		f := *p.FechaAprobacion
		item.FechaAprobacion = &f
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// MaterialInput is an item as supplied by an import or an add. Missing tipo,
// cantidad and obligatorio take their defaults (util, 1, true); a missing id
// gets a fresh one.
type MaterialInput struct {
	ID          string           `json:"id,omitempty"`
	Nombre      string           `json:"nombre"`
	Tipo        models.Tipo      `json:"tipo,omitempty"`
	Cantidad    *int             `json:"cantidad,omitempty"`
	Obligatorio *bool            `json:"obligatorio,omitempty"`
	ISBN        string           `json:"isbn,omitempty"`
	Marca       string           `json:"marca,omitempty"`
	Asignatura  string           `json:"asignatura,omitempty"`
	Descripcion string           `json:"descripcion,omitempty"`
	Precio      *decimal.Decimal `json:"precio,omitempty"`
	Imagen      string           `json:"imagen,omitempty"`
	Coordenadas json.RawMessage  `json:"coordenadas,omitempty"`
}

// ToItem validates the input and applies defaults.
func (in MaterialInput) ToItem() (models.MaterialItem, error) {
	item := models.MaterialItem{
		ID:          strings.TrimSpace(in.ID),
		Nombre:      strings.TrimSpace(in.Nombre),
		Tipo:        in.Tipo,
		Cantidad:    1,
		Obligatorio: true,
		ISBN:        in.ISBN,
		Marca:       in.Marca,
		Asignatura:  in.Asignatura,
		Descripcion: in.Descripcion,
		Imagen:      in.Imagen,
	}
	if item.Nombre == "" {
		return item, errs.Invalid("nombre", "must not be empty")
	}
	if item.Tipo == "" {
		item.Tipo = models.TipoUtil
	}
	if !item.Tipo.Valid() {
		return item, errs.Invalid("tipo", "must be one of util, libro, cuaderno, otro")
	}
	if in.Cantidad != nil {
		if *in.Cantidad < 1 {
			return item, errs.Invalid("cantidad", "must be at least 1")
		}
		item.Cantidad = *in.Cantidad
	}
	if in.Obligatorio != nil {
		item.Obligatorio = *in.Obligatorio
	}
	if in.Precio != nil {
		p := *in.Precio
		item.Precio = &p
	}
	if in.Coordenadas != nil {
		item.Coordenadas = append(json.RawMessage(nil), in.Coordenadas...)
	}
	return item, nil
}

// Selector picks an item to delete. Criteria are tried in the order id,
// nombre, index; the first that matches wins.
type Selector struct {
	ID     *string `json:"id,omitempty" query:"id"`
	Nombre *string `json:"nombre,omitempty" query:"nombre"`
	Index  *int    `json:"index,omitempty" query:"index"`
}

// Empty reports whether no criterion is set.
func (s Selector) Empty() bool {
	return s.ID == nil && s.Nombre == nil && s.Index == nil
}

// Resolve returns the position in items of the selected item, or -1.
func (s Selector) Resolve(items []models.MaterialItem) int {
	if s.ID != nil {
		for i := range items {
			if items[i].ID == *s.ID {
				return i
			}
		}
	}
	if s.Nombre != nil {
		for i := range items {
			if items[i].Nombre == *s.Nombre {
				return i
			}
		}
	}
	if s.Index != nil && *s.Index >= 0 && *s.Index < len(items) {
		return *s.Index
	}
	return -1
}

// String describes the selector for errors.
func (s Selector) String() string {
	var parts []string
	if s.ID != nil {
		parts = append(parts, "id="+*s.ID)
	}
	if s.Nombre != nil {
		parts = append(parts, "nombre="+*s.Nombre)
	}
	if s.Index != nil {
		parts = append(parts, "index="+strconv.Itoa(*s.Index))
	}
	return strings.Join(parts, ",")
}
