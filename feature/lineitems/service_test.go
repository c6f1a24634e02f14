package lineitems

import (
	"context"
	"errors"
	"testing"

	"returns-bridge/core/database"
	"returns-bridge/core/reconcile"
	"returns-bridge/feature/lineitems/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type countingGetter struct {
	db    *gorm.DB
	err   error
	calls int
}

func (g *countingGetter) Get(ctx context.Context) (*gorm.DB, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.db, nil
}

type mockArchiver struct {
	mock.Mock
}

func (m *mockArchiver) PutJSON(ctx context.Context, name string, v any) (string, error) {
	args := m.Called(ctx, name, v)
	return args.String(0), args.Error(1)
}

func v(x any) reconcile.Value {
	return reconcile.NewValue(x)
}

func newInsert(ref string) reconcile.ChangeRequest {
	return reconcile.ChangeRequest{
		OutOfOrder:    v(true),
		Status:        v(reconcile.StatusNewOutsideOrder),
		OrderRef:      v(5),
		OrderID:       v(42),
		ReferenceCode: v(ref),
		Description:   v("Returned item"),
		UnitValue:     v("10.50"),
		ClientRef:     v("local-" + ref),
	}
}

func newService(t *testing.T, policy reconcile.Policy) (*Service, *gorm.DB) {
	db := setupSQLite(t)
	return NewService(database.Static{DB: db}, Options{Policy: policy}, nil, zap.NewNop()), db
}

func TestService_ScenarioMixedBatch(t *testing.T) {
	svc, db := newService(t, reconcile.PolicyAtomic)
	ten := seedItem(t, db, models.LineItem{ID: 10, Status: 0})
	eleven := seedItem(t, db, models.LineItem{ID: 11, Status: 9, OutOfOrder: 1})

	res, err := svc.Reconcile(context.Background(), "ray-1", []reconcile.ChangeRequest{
		{ItemID: v(ten.ID), OutOfOrder: v(false), Status: v(2)},
		newInsert("NEW-1"),
		{ItemID: v(eleven.ID), OutOfOrder: v(true), Status: v(reconcile.StatusRemoved)},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Deleted)

	newID := res.Details.Inserted[0].ItemID
	assert.NotZero(t, newID)
	assert.NotEqual(t, ten.ID, newID)
	assert.NotEqual(t, eleven.ID, newID)
	assert.Equal(t, "local-NEW-1", res.Details.Inserted[0].ClientRef)

	item, _ := loadItem(t, db, ten.ID)
	assert.Equal(t, 2, item.Status)
	_, ok := loadItem(t, db, eleven.ID)
	assert.False(t, ok)
	inserted, ok := loadItem(t, db, newID)
	require.True(t, ok)
	assert.Equal(t, "NEW-1", inserted.ReferenceCode)
	assert.Equal(t, "10.5", inserted.UnitValue.String())
}

func TestService_UpdateMissingRowWarns(t *testing.T) {
	svc, _ := newService(t, reconcile.PolicyAtomic)

	res, err := svc.Reconcile(context.Background(), "", []reconcile.ChangeRequest{
		{ItemID: v(999), OutOfOrder: v(false), Status: v(2)},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Updated)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, reconcile.WarningNotFound, res.Warnings[0].Reason)
}

func TestService_TolerantSkipsInsertWithoutUnitValue(t *testing.T) {
	svc, db := newService(t, reconcile.PolicyTolerant)
	ten := seedItem(t, db, models.LineItem{Status: 0})

	bad := newInsert("BAD")
	bad.UnitValue = reconcile.Value{}

	res, err := svc.Reconcile(context.Background(), "", []reconcile.ChangeRequest{
		bad,
		{ItemID: v(ten.ID), Status: v(4)},
		newInsert("GOOD"),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 0, res.Failures[0].Index)
	assert.Equal(t, "unitValue is required", res.Failures[0].Reason)

	var count int64
	require.NoError(t, db.Model(&models.LineItem{}).Where("CUP_REF = ?", "BAD").Count(&count).Error)
	assert.Zero(t, count)
}

func TestService_AtomicRefusesInvalidBatchWithoutConnecting(t *testing.T) {
	getter := &countingGetter{err: errors.New("should not connect")}
	svc := NewService(getter, Options{Policy: reconcile.PolicyAtomic}, nil, zap.NewNop())

	bad := newInsert("BAD")
	bad.UnitValue = reconcile.Value{}

	_, err := svc.Reconcile(context.Background(), "", []reconcile.ChangeRequest{bad}, nil)
	assert.ErrorIs(t, err, reconcile.ErrInvalidBatch)
	assert.Zero(t, getter.calls)
}

func TestService_EmptyBatchNeverTouchesDatabase(t *testing.T) {
	getter := &countingGetter{}
	svc := NewService(getter, Options{}, nil, zap.NewNop())

	_, err := svc.Reconcile(context.Background(), "", nil, nil)
	assert.ErrorIs(t, err, reconcile.ErrEmptyBatch)
	assert.Zero(t, getter.calls)
}

func TestService_ConnectionFailure(t *testing.T) {
	getter := &countingGetter{err: database.ErrUnavailable}
	svc := NewService(getter, Options{}, nil, zap.NewNop())

	_, err := svc.Reconcile(context.Background(), "", []reconcile.ChangeRequest{newInsert("X")}, nil)
	assert.ErrorIs(t, err, database.ErrUnavailable)
	assert.Equal(t, 1, getter.calls)
}

func TestService_AtomicRollback(t *testing.T) {
	svc, db := newService(t, reconcile.PolicyAtomic)
	failOnStatus(t, db, 66)
	a := seedItem(t, db, models.LineItem{Status: 0})
	b := seedItem(t, db, models.LineItem{Status: 0})

	_, err := svc.Reconcile(context.Background(), "", []reconcile.ChangeRequest{
		{ItemID: v(a.ID), Status: v(2)},
		newInsert("NEW-1"),
		{ItemID: v(b.ID), Status: v(66)},
	}, nil)

	var itemErr *reconcile.ItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 2, itemErr.Index)

	item, _ := loadItem(t, db, a.ID)
	assert.Equal(t, 0, item.Status)

	var count int64
	require.NoError(t, db.Model(&models.LineItem{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestService_TolerantPartialCommit(t *testing.T) {
	svc, db := newService(t, reconcile.PolicyTolerant)
	failOnStatus(t, db, 66)
	a := seedItem(t, db, models.LineItem{Status: 0})
	b := seedItem(t, db, models.LineItem{Status: 0})

	res, err := svc.Reconcile(context.Background(), "", []reconcile.ChangeRequest{
		{ItemID: v(a.ID), Status: v(2)},
		newInsert("NEW-1"),
		{ItemID: v(b.ID), Status: v(66)},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Inserted)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 2, res.Failures[0].Index)

	item, _ := loadItem(t, db, a.ID)
	assert.Equal(t, 2, item.Status)
	item, _ = loadItem(t, db, b.ID)
	assert.Equal(t, 0, item.Status)
}

func TestService_DeleteIsIdempotent(t *testing.T) {
	svc, db := newService(t, reconcile.PolicyAtomic)
	seeded := seedItem(t, db, models.LineItem{Status: 9, OutOfOrder: 1})
	req := reconcile.ChangeRequest{ItemID: v(seeded.ID), OutOfOrder: v(true), Status: v(reconcile.StatusRemoved)}

	first, err := svc.Reconcile(context.Background(), "", []reconcile.ChangeRequest{req}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Deleted)

	second, err := svc.Reconcile(context.Background(), "", []reconcile.ChangeRequest{req}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Deleted)
	assert.Len(t, second.Warnings, 1)
}

func TestService_ArchivesReport(t *testing.T) {
	db := setupSQLite(t)
	archive := new(mockArchiver)
	archive.On("PutJSON", mock.Anything, "ray-42", mock.MatchedBy(func(r Report) bool {
		return r.RayID == "ray-42" && r.Items == 1 && r.Result.Inserted == 1 && r.Policy == reconcile.PolicyAtomic
	})).Return("reports/reconcile/2026/10/19/ray-42.json", nil)

	svc := NewService(database.Static{DB: db}, Options{}, archive, zap.NewNop())
	_, err := svc.Reconcile(context.Background(), "ray-42", []reconcile.ChangeRequest{newInsert("A")}, nil)
	require.NoError(t, err)

	archive.AssertExpectations(t)
}

func TestService_ArchiveFailureIsIgnored(t *testing.T) {
	db := setupSQLite(t)
	archive := new(mockArchiver)
	archive.On("PutJSON", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket offline"))

	svc := NewService(database.Static{DB: db}, Options{}, archive, zap.NewNop())
	res, err := svc.Reconcile(context.Background(), "../../etc", []reconcile.ChangeRequest{newInsert("A")}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)

	// Unsafe ray ids are replaced before naming the object.
	name := archive.Calls[0].Arguments.String(1)
	assert.NotContains(t, name, "/")
}

func TestService_OrderItemsRequiresKey(t *testing.T) {
	getter := &countingGetter{}
	svc := NewService(getter, Options{}, nil, zap.NewNop())

	_, err := svc.OrderItems(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrMissingOrderKey)
	assert.Zero(t, getter.calls)
}
