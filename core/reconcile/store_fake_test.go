package reconcile

import (
	"context"
	"errors"
	"maps"
)

type fakeRow struct {
	OrderRef      int64
	OrderID       int64
	ReferenceCode string
	Status        int
	OutOfOrder    bool
	Rescheduled   bool
}

// fakeStore is an in-memory Store with snapshot based rollback.
type fakeStore struct {
	rows   map[int64]fakeRow
	nextID int64

	// fail returns an error to inject for a command, or nil.
	fail func(kind Kind, cmd any) error

	transactions int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[int64]fakeRow{}, nextID: 100}
}

func (s *fakeStore) seed(id int64, row fakeRow) {
	s.rows[id] = row
}

func (s *fakeStore) Transaction(ctx context.Context, fn func(tx Tx) error) (err error) {
	s.transactions++
	snapshot := maps.Clone(s.rows)
	nextID := s.nextID

	defer func() {
		if r := recover(); r != nil {
			s.rows, s.nextID = snapshot, nextID
			err = errors.New("panic in transaction")
		}
	}()

	if err := fn(&fakeTx{s: s}); err != nil {
		s.rows, s.nextID = snapshot, nextID
		return err
	}
	return nil
}

type fakeTx struct {
	s *fakeStore
}

func (t *fakeTx) check(kind Kind, cmd any) error {
	if t.s.fail == nil {
		return nil
	}
	return t.s.fail(kind, cmd)
}

func (t *fakeTx) Insert(ctx context.Context, cmd InsertCommand) (int64, error) {
	if err := t.check(KindInsert, cmd); err != nil {
		return 0, err
	}
	t.s.nextID++
	t.s.rows[t.s.nextID] = fakeRow{
		OrderRef:      cmd.OrderRef,
		OrderID:       cmd.OrderID,
		ReferenceCode: cmd.ReferenceCode,
		Status:        cmd.Status,
		OutOfOrder:    cmd.OutOfOrder,
		Rescheduled:   cmd.Rescheduled,
	}
	return t.s.nextID, nil
}

func (t *fakeTx) Update(ctx context.Context, cmd UpdateCommand) (int64, error) {
	if err := t.check(KindUpdate, cmd); err != nil {
		return 0, err
	}
	row, ok := t.s.rows[cmd.ItemID]
	if !ok {
		return 0, nil
	}
	row.Status = cmd.Status
	row.OutOfOrder = cmd.OutOfOrder
	row.Rescheduled = cmd.Rescheduled
	t.s.rows[cmd.ItemID] = row
	return 1, nil
}

func (t *fakeTx) Delete(ctx context.Context, cmd DeleteCommand) (int64, error) {
	if err := t.check(KindDelete, cmd); err != nil {
		return 0, err
	}
	if cmd.ByItemID() {
		if _, ok := t.s.rows[cmd.ItemID]; !ok {
			return 0, nil
		}
		delete(t.s.rows, cmd.ItemID)
		return 1, nil
	}

	var n int64
	for id, row := range t.s.rows {
		if row.OrderRef == cmd.OrderRef && row.OrderID == cmd.OrderID && row.ReferenceCode == cmd.ReferenceCode {
			delete(t.s.rows, id)
			n++
		}
	}
	return n, nil
}

func (t *fakeTx) Isolate(ctx context.Context, fn func(tx Tx) error) error {
	snapshot := maps.Clone(t.s.rows)
	nextID := t.s.nextID
	if err := fn(t); err != nil {
		t.s.rows, t.s.nextID = snapshot, nextID
		return err
	}
	return nil
}
