package lineitems

import (
	"returns-bridge/core/reconcile"
)

// Options configures the line items feature.
type Options struct {
	// Policy is the reconciliation policy applied to every batch.
	Policy reconcile.Policy
	// OrderItemsProcedure lists the items of an order.
	OrderItemsProcedure string
}
