// Package loader registers the HTTP features of the service.
//
// Each feature (materials, availability, bulk, search, publish, integrity)
// owns its service, handler and routes, and reports through IsEnabled whether
// its backends were configured. cmd/start.go registers all of them; LoadAll
// skips the disabled ones and rejects duplicate names, so a deployment without
// a catalog or a bucket still serves list editing.
package loader
