package reconcile

// Classify resolves a request to exactly one action.
//
// Precedence:
//  1. out of order and status removed: delete
//  2. out of order and status new-outside-order: insert
//  3. itemId present: update
//  4. anything else: reject
//
// A status that does not parse is treated as an ordinary in-order state.
func Classify(req ChangeRequest) Kind {
	outOfOrder := req.OutOfOrder.Bool()
	status, err := req.Status.Int()
	statusKnown := err == nil

	switch {
	case outOfOrder && statusKnown && status == StatusRemoved:
		return KindDelete
	case outOfOrder && statusKnown && status == StatusNewOutsideOrder:
		return KindInsert
	case req.HasItemID():
		return KindUpdate
	default:
		return KindReject
	}
}
