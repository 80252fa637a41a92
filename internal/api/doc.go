// Package api implements the HTTP REST API and WebSocket server for Homestead.
//
// This package provides:
//   - REST endpoints for house and room CRUD under /api
//   - A paginated audit trail at /api/audit
//   - WebSocket hub broadcasting housing lifecycle events
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//   - TLS support for production deployments
//
// # Status codes
//
// Handlers translate housing errors at the edge: missing or invalid fields
// are 400, unknown ids 404 and duplicate names 409. Creation returns 200 and
// deletion 204 with no body. An empty collection is reported as 404.
//
// # Lifecycle
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
package api
