package reconcile

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

// Status codes with a meaning for classification. Every other code is an in-order state.
const (
	// StatusRemoved marks an out-of-order item the caller removed.
	StatusRemoved = 1
	// StatusNewOutsideOrder marks an item returned outside the original order.
	StatusNewOutsideOrder = 9
)

// ChangeRequest is one element of an incoming reconciliation batch.
type ChangeRequest struct {
	// ItemID identifies an existing row. Absent, blank or zero means "not yet persisted".
	ItemID Value `json:"itemId"`
	// OutOfOrder is true when the item is added or removed outside the original order.
	OutOfOrder Value `json:"outOfOrderFlag"`
	// Status is the domain status code.
	Status Value `json:"status"`

	OrderRef      Value `json:"orderRef"`
	OrderID       Value `json:"orderId"`
	ReferenceCode Value `json:"referenceCode"`
	Description   Value `json:"description"`
	UnitValue     Value `json:"unitValue"`
	UnitCode      Value `json:"unitCode"`
	ProductCode   Value `json:"productCode"`
	ReturnUser    Value `json:"returnUser"`
	ReturnedAt    Value `json:"returnedAt"`
	Rescheduled   Value `json:"rescheduledNextPeriod"`

	// ClientRef is the caller's own identifier, echoed back with generated keys.
	ClientRef Value `json:"clientRef"`
}

// HasItemID reports whether the request references a persisted row.
// A value that does not parse still counts as present so it fails validation
// instead of being treated as a new item.
func (r ChangeRequest) HasItemID() bool {
	if !r.ItemID.Present() {
		return false
	}
	id, err := r.ItemID.Int()
	return err != nil || id != 0
}

// Key returns the identifying fields of the request, as submitted.
func (r ChangeRequest) Key() ItemKey {
	return ItemKey{
		ItemID:        r.ItemID.V(),
		OrderRef:      r.OrderRef.V(),
		OrderID:       r.OrderID.V(),
		ReferenceCode: r.ReferenceCode.V(),
		ClientRef:     r.ClientRef.V(),
	}
}

// ItemKey identifies an item in failures, warnings and error details.
type ItemKey struct {
	ItemID        any `json:"itemId,omitempty"`
	OrderRef      any `json:"orderRef,omitempty"`
	OrderID       any `json:"orderId,omitempty"`
	ReferenceCode any `json:"referenceCode,omitempty"`
	ClientRef     any `json:"clientRef,omitempty"`
}

// Kind is the action a request resolves to.
type Kind string

const (
	KindDelete Kind = "delete"
	KindInsert Kind = "insert"
	KindUpdate Kind = "update"
	KindReject Kind = "reject"
)

// InsertCommand creates a new line item. Optional columns are bound as explicit NULLs.
type InsertCommand struct {
	OrderRef      int64
	OrderID       int64
	ReferenceCode string
	Description   sql.NullString
	UnitValue     decimal.Decimal
	Status        int
	OutOfOrder    bool
	UnitCode      sql.NullString
	ProductCode   sql.NullString
	ReturnUser    sql.NullString
	ReturnedAt    sql.NullTime
	Rescheduled   bool
}

// UpdateCommand rewrites the mutable columns of an existing line item.
// Every column is always written; absent optional values become NULL.
type UpdateCommand struct {
	ItemID      int64
	Status      int
	Rescheduled bool
	OutOfOrder  bool
	ReturnedAt  sql.NullTime
	ReturnUser  sql.NullString
}

// DeleteCommand removes a line item by ItemID, or by the composite key when ItemID is zero.
type DeleteCommand struct {
	ItemID        int64
	OrderRef      int64
	OrderID       int64
	ReferenceCode string
}

// ByItemID reports whether the delete is keyed by the surrogate key.
func (c DeleteCommand) ByItemID() bool {
	return c.ItemID != 0
}

// Action is one planned statement.
type Action struct {
	Index  int            `json:"index"`
	Kind   Kind           `json:"kind"`
	Key    ItemKey        `json:"key"`
	Insert *InsertCommand `json:"-"`
	Update *UpdateCommand `json:"-"`
	Delete *DeleteCommand `json:"-"`
}

// Failure is an item that was not applied.
type Failure struct {
	Index  int     `json:"index"`
	Kind   Kind    `json:"action"`
	Key    ItemKey `json:"key"`
	Reason string  `json:"reason"`
}

// Warning is a soft outcome, such as an update or delete that matched no row.
type Warning struct {
	Index  int     `json:"index"`
	Kind   Kind    `json:"action"`
	Key    ItemKey `json:"key"`
	Reason string  `json:"reason"`
}

// WarningNotFound is the reason recorded when a statement affects zero rows.
const WarningNotFound = "not found"

// InsertedItem reports a generated key.
type InsertedItem struct {
	Index     int   `json:"index"`
	ItemID    int64 `json:"itemId"`
	ClientRef any   `json:"clientRef,omitempty"`
}

// UpdatedItem reports an updated row.
type UpdatedItem struct {
	Index  int   `json:"index"`
	ItemID int64 `json:"itemId"`
}

// DeletedItem reports a removed row by whichever key was used.
type DeletedItem struct {
	Index         int    `json:"index"`
	ItemID        int64  `json:"itemId,omitempty"`
	OrderRef      int64  `json:"orderRef,omitempty"`
	OrderID       int64  `json:"orderId,omitempty"`
	ReferenceCode string `json:"referenceCode,omitempty"`
}

// Details lists per-item outcomes in batch order.
type Details struct {
	Inserted []InsertedItem `json:"inserted"`
	Updated  []UpdatedItem  `json:"updated"`
	Deleted  []DeletedItem  `json:"deleted"`
}

// Result is the outcome of one reconciliation call.
type Result struct {
	Inserted int       `json:"inserted"`
	Updated  int       `json:"updated"`
	Deleted  int       `json:"deleted"`
	Details  Details   `json:"details"`
	Warnings []Warning `json:"warnings,omitempty"`
	Failures []Failure `json:"failures,omitempty"`
}

func newResult() *Result {
	return &Result{
		Details: Details{
			Inserted: []InsertedItem{},
			Updated:  []UpdatedItem{},
			Deleted:  []DeletedItem{},
		},
	}
}

// Store opens transactions against the line item table.
type Store interface {
	// Transaction runs fn in one transaction. Any error or panic from fn rolls it back.
	Transaction(ctx context.Context, fn func(tx Tx) error) error
}

// Tx executes typed commands inside a transaction.
type Tx interface {
	// Insert creates a row and returns its generated key.
	Insert(ctx context.Context, cmd InsertCommand) (int64, error)
	// Update returns the number of affected rows.
	Update(ctx context.Context, cmd UpdateCommand) (int64, error)
	// Delete returns the number of affected rows.
	Delete(ctx context.Context, cmd DeleteCommand) (int64, error)
	// Isolate runs fn inside a savepoint. An error from fn rolls back only its own statements.
	Isolate(ctx context.Context, fn func(tx Tx) error) error
}
