// Package database owns the connection to the relational database behind the bridge.
//
// It wraps GORM to open pooled connections for SQL Server (production), MySQL, or
// SQLite (tests and local runs), and exposes a Provider that is the single
// initialization point for the process-wide pool.
//
// # Provider
//
// Provider connects lazily. Every Get pings the current pool before handing it out;
// a failed ping closes the pool and dials again. Connection failures surface as
// ErrUnavailable so handlers can fail fast before any statement executes.
//
// # Stored procedures
//
// CallProcedure renders a dialect-specific call (EXEC with named arguments on SQL
// Server, CALL on MySQL) and returns the first result set as generic rows.
//
// # Schema Inspection
//
// GetTableColumns lists the live columns of a table, which the integrity feature
// compares against the line item model to detect schema drift.
//
// # Usage
//
//	provider := database.NewProvider(cfg.Database, logg)
//	defer provider.Close()
//
//	db, err := provider.Get(ctx)
//	if err != nil {
//	    return err // wraps database.ErrUnavailable
//	}
package database
