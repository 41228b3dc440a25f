// Package models defines the canonical course, school and supply-list types.
//
// A Curso owns an append-only history of MaterialVersion snapshots; each
// snapshot holds an ordered list of MaterialItem lines. The JSON tags match the
// document layout persisted by every store.
//
// # Boundary Mapping
//
// DecodeCurso and DecodeColegio accept documents in either the nested
// ("attributes") or the flat shape and return the canonical structs, so core
// logic never inspects raw document shapes.
package models
