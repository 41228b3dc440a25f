// Package bulk applies one course patch (activo, colegio, anio) to many
// courses with a bounded worker pool, reporting success or failure per id.
package bulk
