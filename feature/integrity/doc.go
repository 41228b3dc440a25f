// Package integrity provides infrastructure health checks.
//
// # Checks Provided
//
//   - Structure: Checks that the report and export folders exist in the storage bucket.
//   - Schema: Validates that the cursos, colegios and productos tables match their models (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check.
package integrity
