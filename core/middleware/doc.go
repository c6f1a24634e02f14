// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: optional API key validation (disabled when no key is configured).
//   - rayid: assigns every request a RayID, stored in the context and echoed in the
//     X-Ray-ID response header. Error envelopes return it as correlationId.
//
// Both are registered globally in cmd/start, rayid first so every log line carries it.
package middleware
