// Package server provides HTTP routing, middleware, and the agent tool endpoints.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Tool Endpoints
//
// [ToolHandler] exposes the integration operations as JSON POST endpoints under /tools/.
// Each endpoint decodes a JSON request body, invokes the corresponding service or engine,
// and writes a JSON response. Errors fold into {"error": "..."} bodies with an
// appropriate status code so callers never have to parse free-form text.
//
// # Middleware
//
// [LoggingMiddleware] records method, path, status, and duration for every request.
// [RequestIDMiddleware] assigns each request a UUID, echoed in the X-Request-Id
// response header and attached to the request context for downstream log lines.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
