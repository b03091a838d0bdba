// Package http implements the registry server's HTTP transport.
//
// It exposes the recovery registration endpoints used by the forkeys client
// and the status endpoints used for monitoring. Cross-cutting concerns such
// as request tracing, access logging, CORS and per-client rate limiting are
// handled here before requests are delegated to the service layer.
package http
