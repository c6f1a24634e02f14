package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one column of a live table.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // Pointer because NULL default is possible
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
// Field names are lower-cased so callers can compare them with GORM tags case-insensitively.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	if !identifierPattern.MatchString(tableName) {
		return nil, fmt.Errorf("invalid table name %q", tableName)
	}

	var columns []ColumnInfo

	switch db.Dialector.Name() {
	case DriverSQLite:
		type sqliteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string `gorm:"column:dflt_value"`
			Pk         int
		}
		var sqliteCols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{
				Field:   col.Name,
				Type:    col.Type,
				Default: col.DefaultVal,
			})
		}

	case DriverSQLServer:
		type sqlServerColumn struct {
			Name       string  `gorm:"column:COLUMN_NAME"`
			DataType   string  `gorm:"column:DATA_TYPE"`
			IsNullable string  `gorm:"column:IS_NULLABLE"`
			Default    *string `gorm:"column:COLUMN_DEFAULT"`
		}
		var cols []sqlServerColumn
		err := db.Raw(`SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE, COLUMN_DEFAULT
			FROM INFORMATION_SCHEMA.COLUMNS
			WHERE TABLE_NAME = ?
			ORDER BY ORDINAL_POSITION`, tableName).Scan(&cols).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range cols {
			columns = append(columns, ColumnInfo{
				Field:   col.Name,
				Type:    col.DataType,
				Null:    col.IsNullable,
				Default: col.Default,
			})
		}

	default:
		if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
	}

	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}
