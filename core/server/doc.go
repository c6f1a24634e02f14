// Package server holds the HTTP server configuration and the shared response envelope.
//
// Every endpoint answers with a JSON object carrying a success boolean. Fail writes
// client errors, OK wraps data, and InternalError logs the underlying error server-side
// and returns only a generic message plus the request's correlationId.
package server
