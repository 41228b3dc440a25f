package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Tipo classifies a material item.
type Tipo string

const (
	TipoUtil     Tipo = "util"
	TipoLibro    Tipo = "libro"
	TipoCuaderno Tipo = "cuaderno"
	TipoOtro     Tipo = "otro"
)

// Valid reports whether t is one of the known item types.
func (t Tipo) Valid() bool {
	switch t {
	case TipoUtil, TipoLibro, TipoCuaderno, TipoOtro:
		return true
	default:
		return false
	}
}

// Disponibilidad is the availability of an item, computed by the reconciler only.
type Disponibilidad string

const (
	Disponible   Disponibilidad = "disponible"
	NoDisponible Disponibilidad = "no_disponible"
	NoEncontrado Disponibilidad = "no_encontrado"
)

// Review states of a course's supply list.
const (
	EstadoPendiente  = "pendiente"
	EstadoEnRevision = "en_revision"
	EstadoRevisado   = "revisado"
)

// Colegio is the school owning a set of courses.
type Colegio struct {
	ID         uint   `json:"id"`
	DocumentID string `json:"documentId,omitempty"`
	Nombre     string `json:"nombre"`
	RBD        string `json:"rbd,omitempty"`
}

// Curso is a course at a school for one year, with its supply-list history.
type Curso struct {
	ID                  uint              `json:"id"`
	DocumentID          string            `json:"documentId,omitempty"`
	NombreCurso         string            `json:"nombre_curso"`
	Nivel               string            `json:"nivel,omitempty"`
	Grado               string            `json:"grado,omitempty"`
	Anio                int               `json:"anio,omitempty"`
	Matricula           int               `json:"matricula"`
	Activo              bool              `json:"activo"`
	ColegioID           uint              `json:"colegio_id,omitempty"`
	Colegio             *Colegio          `json:"colegio,omitempty"`
	EstadoRevision      string            `json:"estado_revision,omitempty"`
	FechaRevision       *time.Time        `json:"fecha_revision,omitempty"`
	TagWooCommerceID    *int              `json:"tag_woocommerce_id,omitempty"`
	ExportKey           string            `json:"export_key,omitempty"`
	VersionesMateriales []MaterialVersion `json:"versiones_materiales"`

	// Revision increases on every history write; writes carry the revision they read.
	Revision int64 `json:"revision"`
}

// Key returns the stable external key, or the numeric key when there is none.
func (c *Curso) Key() string {
	if c.DocumentID != "" {
		return c.DocumentID
	}
	return uintToString(c.ID)
}

// HasMaterials reports whether the course takes part in by-school aggregation:
// at least one version with materials or with a source document.
func (c *Curso) HasMaterials() bool {
	for _, v := range c.VersionesMateriales {
		if len(v.Materiales) > 0 || v.PDFID != "" || v.PDFURL != "" {
			return true
		}
	}
	return false
}

// MaterialVersion is one dated snapshot of a course's supply list.
type MaterialVersion struct {
	FechaSubida        time.Time      `json:"fecha_subida"`
	FechaActualizacion *time.Time     `json:"fecha_actualizacion,omitempty"`
	Secuencia          int            `json:"secuencia,omitempty"`
	PDFID              string         `json:"pdf_id,omitempty"`
	PDFURL             string         `json:"pdf_url,omitempty"`
	Materiales         []MaterialItem `json:"materiales"`
}

// EffectiveTime is fecha_actualizacion when set, fecha_subida otherwise.
func (v *MaterialVersion) EffectiveTime() time.Time {
	if v.FechaActualizacion != nil {
		return *v.FechaActualizacion
	}
	return v.FechaSubida
}

// SameStamp compares the (fecha_subida, fecha_actualizacion) pair by value.
func (v *MaterialVersion) SameStamp(o *MaterialVersion) bool {
	if !v.FechaSubida.Equal(o.FechaSubida) {
		return false
	}
	switch {
	case v.FechaActualizacion == nil && o.FechaActualizacion == nil:
		return true
	case v.FechaActualizacion == nil || o.FechaActualizacion == nil:
		return false
	default:
		return v.FechaActualizacion.Equal(*o.FechaActualizacion)
	}
}

// Clone deep-copies the version so edits never alias the stored history.
func (v MaterialVersion) Clone() MaterialVersion {
	out := v
	if v.FechaActualizacion != nil {
		t := *v.FechaActualizacion
		out.FechaActualizacion = &t
	}
	if v.Materiales != nil {
		out.Materiales = make([]MaterialItem, len(v.Materiales))
		for i, item := range v.Materiales {
			out.Materiales[i] = item.Clone()
		}
	}
	return out
}

// IndexOf returns the position of the item with the given id, or -1.
func (v *MaterialVersion) IndexOf(id string) int {
	for i := range v.Materiales {
		if v.Materiales[i].ID == id {
			return i
		}
	}
	return -1
}

// MaterialItem is one line of a supply list.
type MaterialItem struct {
	ID            string           `json:"id"`
	Nombre        string           `json:"nombre"`
	Tipo          Tipo             `json:"tipo"`
	Cantidad      int              `json:"cantidad"`
	Obligatorio   bool             `json:"obligatorio"`
	ISBN          string           `json:"isbn,omitempty"`
	Marca         string           `json:"marca,omitempty"`
	Asignatura    string           `json:"asignatura,omitempty"`
	Descripcion   string           `json:"descripcion,omitempty"`
	Precio        *decimal.Decimal `json:"precio,omitempty"`
	StockQuantity *int             `json:"stock_quantity,omitempty"`
	Imagen        string           `json:"imagen,omitempty"`

	Disponibilidad          Disponibilidad `json:"disponibilidad,omitempty"`
	EncontradoEnWooCommerce bool           `json:"encontrado_en_woocommerce"`
	WooCommerceID           *int           `json:"woocommerce_id,omitempty"`

	Aprobado        bool       `json:"aprobado"`
	FechaAprobacion *time.Time `json:"fecha_aprobacion,omitempty"`

	// Coordenadas is the layout hint left by ingestion; opaque and never edited.
	Coordenadas json.RawMessage `json:"coordenadas,omitempty"`
}

// Clone deep-copies pointer and slice fields.
func (m MaterialItem) Clone() MaterialItem {
	out := m
	if m.Precio != nil {
		p := *m.Precio
		out.Precio = &p
	}
	if m.StockQuantity != nil {
		s := *m.StockQuantity
		out.StockQuantity = &s
	}
	if m.WooCommerceID != nil {
		w := *m.WooCommerceID
		out.WooCommerceID = &w
	}
	if m.FechaAprobacion != nil {
		f := *m.FechaAprobacion
		out.FechaAprobacion = &f
	}
	if m.Coordenadas != nil {
		out.Coordenadas = append(json.RawMessage(nil), m.Coordenadas...)
	}
	return out
}

// TotalProductos scales the per-student quantity by the course headcount.
func TotalProductos(matricula, cantidad int) int {
	return matricula * cantidad
}
