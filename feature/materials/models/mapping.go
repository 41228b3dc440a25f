package models

import (
	"encoding/json"
	"fmt"
	"strconv"

	"material-manager/core/utils"
)

// Documents coming from a headless CMS arrive in two shapes:
//
//	{"id": 1, "attributes": {"nombre_curso": "1° Básico", ...}}   (nested)
//	{"id": 1, "documentId": "abc", "nombre_curso": "1° Básico"}   (flat)
//
// Relations are nested the same way and may be wrapped in {"data": ...}.
// Everything is normalized here so no other package looks at raw shapes.

// Flatten merges "attributes" into the top level and unwraps a {"data": ...} envelope.
func Flatten(raw map[string]any) map[string]any {
	if raw == nil {
		return nil
	}
	if data, ok := raw["data"]; ok && len(raw) == 1 {
		inner, ok := data.(map[string]any)
		if !ok {
			return nil
		}
		raw = inner
	}
	attrs, ok := raw["attributes"].(map[string]any)
	if !ok {
		return raw
	}
	flat := make(map[string]any, len(attrs)+2)
	for k, v := range attrs {
		flat[k] = v
	}
	for k, v := range raw {
		if k != "attributes" {
			flat[k] = v
		}
	}
	return flat
}

// DecodeColegio maps a raw school document (either shape) into a Colegio.
func DecodeColegio(raw map[string]any) (*Colegio, error) {
	flat := Flatten(raw)
	if flat == nil {
		return nil, fmt.Errorf("empty colegio document")
	}
	return &Colegio{
		ID:         uint(utils.ToInt(flat["id"])),
		DocumentID: utils.ToString(flat["documentId"]),
		Nombre:     firstString(flat, "colegio_nombre", "nombre"),
		RBD:        utils.ToString(flat["rbd"]),
	}, nil
}

// DecodeCurso maps a raw course document (either shape) into a Curso.
func DecodeCurso(raw map[string]any) (*Curso, error) {
	flat := Flatten(raw)
	if flat == nil {
		return nil, fmt.Errorf("empty curso document")
	}

	c := &Curso{
		ID:             uint(utils.ToInt(flat["id"])),
		DocumentID:     utils.ToString(flat["documentId"]),
		NombreCurso:    utils.ToString(flat["nombre_curso"]),
		Nivel:          utils.ToString(flat["nivel"]),
		Grado:          utils.ToString(flat["grado"]),
		Anio:           utils.ToInt(flat["anio"]),
		Matricula:      utils.ToInt(flat["matricula"]),
		EstadoRevision: utils.ToString(flat["estado_revision"]),
		FechaRevision:  utils.ToTime(flat["fecha_revision"]),
		ExportKey:      utils.ToString(flat["export_key"]),
		Revision:       int64(utils.ToInt(flat["revision"])),
	}
	if v, ok := flat["activo"]; ok && v != nil {
		c.Activo = utils.ToBool(v)
	} else {
		c.Activo = true
	}
	if v, ok := flat["tag_woocommerce_id"]; ok && v != nil {
		id := utils.ToInt(v)
		c.TagWooCommerceID = &id
	}

	switch rel := flat["colegio"].(type) {
	case map[string]any:
		if col, err := DecodeColegio(rel); err == nil && (col.ID != 0 || col.DocumentID != "") {
			c.Colegio = col
			c.ColegioID = col.ID
		}
	case nil:
	default:
		c.ColegioID = uint(utils.ToInt(rel))
	}

	if raw, ok := flat["versiones_materiales"]; ok && raw != nil {
		versions, err := decodeVersions(raw)
		if err != nil {
			return nil, fmt.Errorf("curso %d: %w", c.ID, err)
		}
		c.VersionesMateriales = versions
	}

	return c, nil
}

// decodeVersions re-encodes the loosely typed value and decodes it into the
// canonical structs; the history may also arrive as a JSON string.
func decodeVersions(raw any) ([]MaterialVersion, error) {
	var data []byte
	switch v := raw.(type) {
	case string:
		data = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode versiones_materiales: %w", err)
		}
		data = b
	}
	var versions []MaterialVersion
	if err := json.Unmarshal(data, &versions); err != nil {
		return nil, fmt.Errorf("failed to decode versiones_materiales: %w", err)
	}
	return versions, nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := utils.ToString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
