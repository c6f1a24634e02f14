package models

// DiscountRule is one discount tier of an order (cad_dpd joined with cad_tdp).
// Range and percentage columns are nullable.
type DiscountRule struct {
	OrderID           int64    `gorm:"column:PED_COD" json:"PED_COD"`
	TypeDescription   string   `gorm:"column:TDP_DES" json:"TDP_DES"`
	Group             int      `gorm:"column:GRU_COD" json:"GRU_COD"`
	From              *float64 `gorm:"column:DE" json:"DE"`
	To                *float64 `gorm:"column:ATE" json:"ATE"`
	Percent           *float64 `gorm:"column:PORC" json:"PORC"`
	BonusPercent      *float64 `gorm:"column:PORC_BONUS" json:"PORC_BONUS"`
	GracePercent      *float64 `gorm:"column:PORC_CARENCIA" json:"PORC_CARENCIA"`
	LossPercent       *float64 `gorm:"column:PORC_PERDA" json:"PORC_PERDA"`
	GraceSettlements  *int     `gorm:"column:QTDE_ACERTO_CARENCIA" json:"QTDE_ACERTO_CARENCIA"`
	TotalSaleDiscount *float64 `gorm:"column:DESC_VENDA_TOTAL" json:"DESC_VENDA_TOTAL"`
}
