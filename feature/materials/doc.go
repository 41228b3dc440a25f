// Package materials edits and approves the material lists of courses.
//
// Every change goes through versions.Store, which rewrites the latest
// version of the history under a per-course lock.
//
// # HTTP Endpoints
//
//   - GET /cursos/:curso/versiones : Full history, newest first.
//   - GET /cursos/:curso/materiales : Latest version.
//   - POST /cursos/:curso/materiales : Add one item.
//   - PUT /cursos/:curso/materiales : Replace all items.
//   - PATCH /cursos/:curso/materiales/:material : Edit one item.
//   - DELETE /cursos/:curso/materiales : Delete by id, nombre or index.
//   - POST /cursos/:curso/aprobar : Approve every item.
//   - GET /colegios/:colegio/cursos : Courses of a school that have lists.
package materials
