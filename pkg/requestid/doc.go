// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware reads X-Request-ID from the client, keeps it when it is a
// short alphanumeric token and otherwise generates a UUID. The ID is stored
// in the request context, echoed in the response header and forwarded to
// the upstream auth service with Propagate. LoggerExtractor plugs the ID
// into pkg/logger so every record carries request_id.
package requestid
