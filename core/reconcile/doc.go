// Package reconcile applies a batch of line item change requests to the CAD_IPE table.
//
// Each request is classified into exactly one action from three fields: whether
// itemId is present, the out-of-order flag, and the status code.
//
//	out of order, status 1 (removed)         -> delete (by itemId, else orderRef/orderId/referenceCode)
//	out of order, status 9 (new outside)     -> insert, generated itemId returned
//	itemId present                           -> update
//	otherwise                                -> reject
//
// # Flow
//
// BuildPlan classifies and validates the batch without touching the database and
// produces typed commands with explicit NULLs for absent optional columns.
// Engine.Apply runs the plan through a Store inside one transaction.
//
// # Policies
//
// PolicyAtomic (default) refuses a batch with any invalid item and rolls back the
// whole transaction on the first statement error.
//
// PolicyTolerant runs every action in its own savepoint, records invalid items and
// failed statements in Result.Failures, and commits what succeeded.
//
// Under both policies an update or delete that matches no row is a warning
// ("not found"), not an error. Row locking is left to the database's default
// isolation level.
package reconcile
