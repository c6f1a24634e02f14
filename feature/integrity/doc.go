// Package integrity provides operational health checks for the bridge.
//
// # Checks Provided
//
//   - Schema: Validates that CAD_IPE has every column the line item model maps (names, and types where the model declares one).
//     Extra columns are listed but tolerated.
//   - Storage: Verifies that the reconciliation report bucket exists when the archive is enabled.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
package integrity
