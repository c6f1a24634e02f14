package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// LineItem is a row of CAD_IPE, one unit of an order or return batch.
type LineItem struct {
	ID            int64           `gorm:"primaryKey;autoIncrement;column:IPE_COD"`
	OrderRef      int64           `gorm:"column:REV_COD;not null"`
	OrderID       int64           `gorm:"column:PED_COD;not null"`
	ReferenceCode string          `gorm:"column:CUP_REF;type:varchar(50);not null"`
	Description   sql.NullString  `gorm:"column:PRO_DES;type:varchar(255)"`
	UnitValue     decimal.Decimal `gorm:"column:IPE_VTL;type:decimal(10,2);not null"`
	Status        int             `gorm:"column:IPE_STA;not null"`
	OutOfOrder    int             `gorm:"column:IPE_DFP;not null"` // 1 when added outside the original order
	ReturnedAt    sql.NullTime    `gorm:"column:IPE_DDV"`
	ReturnUser    sql.NullString  `gorm:"column:USU_DEV;type:varchar(50)"`
	ProductCode   sql.NullString  `gorm:"column:CUP_COD;type:varchar(50)"`
	UnitCode      sql.NullString  `gorm:"column:UNI_COD;type:varchar(50)"`
	Rescheduled   bool            `gorm:"column:REMARCADO_PROX_MES;not null"`
}

func (LineItem) TableName() string {
	return "CAD_IPE"
}

// Columns lists the CAD_IPE columns the service reads and writes, upper-case.
func Columns() []string {
	return []string{
		"IPE_COD", "REV_COD", "PED_COD", "CUP_REF", "PRO_DES", "IPE_VTL", "IPE_STA",
		"IPE_DFP", "IPE_DDV", "USU_DEV", "CUP_COD", "UNI_COD", "REMARCADO_PROX_MES",
	}
}

// Flag converts a boolean to the 0/1 form stored in integer marker columns.
func Flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
