// Package errs defines the error vocabulary shared by every feature.
//
// Sentinel errors are matched with errors.Is; the typed errors carry the
// resource and key that failed and report themselves as the matching sentinel.
//
// # Mapping
//
// HTTP handlers translate these errors into status codes through StatusCode:
//   - ErrNotFound: 404
//   - ErrNoVersion, ErrConflict: 409
//   - ErrNothingToApprove, ErrInvalidInput: 422
//   - anything else: 500
package errs
