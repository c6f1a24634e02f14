// Package catalog serves the general product catalog and order discount rules.
//
// The product list comes from a stored procedure and is kept in a TTL cache;
// concurrent misses share one procedure call.
package catalog
