// Package server holds the HTTP server configuration and response helpers.
//
// While the start command handles the server startup, this package defines the
// listen address, the API key and the request body limit.
package server
