// Package middleware groups the Fiber middleware mounted in front of every
// route of the material service.
//
//   - rayid assigns each request an X-Ray-ID (reusing the caller's when
//     present) and stores it under the "ray_id" local, which logger.WithRayID
//     and logger.WithCurso read.
//   - auth checks the X-API-Key header against the configured key. An empty
//     key disables the check, and the swagger UI is mounted before it.
//
// cmd/start.go registers rayid first so the request log and every error
// response can be correlated.
package middleware
