package lineitems

import (
	"context"
	"fmt"

	"returns-bridge/core/reconcile"
	"returns-bridge/feature/lineitems/models"

	"gorm.io/gorm"
)

// Store implements reconcile.Store on top of GORM.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store bound to a connection pool.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn in a database transaction. GORM rolls back on error or panic.
func (s *Store) Transaction(ctx context.Context, fn func(tx reconcile.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&storeTx{db: tx})
	})
}

type storeTx struct {
	db *gorm.DB
}

func (t *storeTx) Insert(ctx context.Context, cmd reconcile.InsertCommand) (int64, error) {
	row := models.LineItem{
		OrderRef:      cmd.OrderRef,
		OrderID:       cmd.OrderID,
		ReferenceCode: cmd.ReferenceCode,
		Description:   cmd.Description,
		UnitValue:     cmd.UnitValue,
		Status:        cmd.Status,
		OutOfOrder:    models.Flag(cmd.OutOfOrder),
		ReturnedAt:    cmd.ReturnedAt,
		ReturnUser:    cmd.ReturnUser,
		ProductCode:   cmd.ProductCode,
		UnitCode:      cmd.UnitCode,
		Rescheduled:   cmd.Rescheduled,
	}
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("insert line item: %w", err)
	}
	return row.ID, nil
}

func (t *storeTx) Update(ctx context.Context, cmd reconcile.UpdateCommand) (int64, error) {
	res := t.db.WithContext(ctx).
		Model(&models.LineItem{}).
		Where("IPE_COD = ?", cmd.ItemID).
		Updates(map[string]any{
			"IPE_STA":            cmd.Status,
			"REMARCADO_PROX_MES": cmd.Rescheduled,
			"IPE_DFP":            models.Flag(cmd.OutOfOrder),
			"IPE_DDV":            cmd.ReturnedAt,
			"USU_DEV":            cmd.ReturnUser,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update line item %d: %w", cmd.ItemID, res.Error)
	}
	return res.RowsAffected, nil
}

func (t *storeTx) Delete(ctx context.Context, cmd reconcile.DeleteCommand) (int64, error) {
	q := t.db.WithContext(ctx)
	if cmd.ByItemID() {
		q = q.Where("IPE_COD = ?", cmd.ItemID)
	} else {
		q = q.Where("REV_COD = ? AND PED_COD = ? AND CUP_REF = ?", cmd.OrderRef, cmd.OrderID, cmd.ReferenceCode)
	}

	res := q.Delete(&models.LineItem{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete line item: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Isolate runs fn in a savepoint via GORM's nested transactions.
func (t *storeTx) Isolate(ctx context.Context, fn func(tx reconcile.Tx) error) error {
	return t.db.WithContext(ctx).Transaction(func(sp *gorm.DB) error {
		return fn(&storeTx{db: sp})
	})
}
