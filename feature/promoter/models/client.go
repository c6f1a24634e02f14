package models

// Client is a row of CAD_CLI. Promoters are clients in specific groups.
type Client struct {
	ID       int64  `gorm:"primaryKey;column:CLI_COD" json:"CLI_COD"`
	Group    int    `gorm:"column:GRU_COD" json:"GRU_COD"`
	Name     string `gorm:"column:CLI_RAZ;type:varchar(100)" json:"CLI_RAZ"`
	Document string `gorm:"column:CLI_DOC;type:varchar(14)" json:"CLI_DOC"`
	Status   int    `gorm:"column:CLI_STA" json:"-"`
}

func (Client) TableName() string {
	return "CAD_CLI"
}
