package checks

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"returns-bridge/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport is the result of comparing a live table against its GORM model.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	ExtraColumns   []string `json:"extra_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies the table behind model using the model's GORM tags as the source of truth.
// Extra columns are reported but do not fail the check.
func CheckSchema(db *gorm.DB, model any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	parsed, err := schema.Parse(model, &sync.Map{}, db.NamingStrategy)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}

	actual, err := database.GetTableColumns(db, parsed.Table)
	if err != nil {
		return nil, err
	}

	report := &SchemaReport{
		Table:          parsed.Table,
		Matched:        true,
		MissingColumns: []string{},
		ExtraColumns:   []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	actualMap := make(map[string]database.ColumnInfo, len(actual))
	for _, col := range actual {
		actualMap[col.Field] = col
	}

	expected := make(map[string]bool, len(parsed.Fields))
	for _, field := range parsed.Fields {
		if field.DBName == "" {
			continue
		}
		name := strings.ToLower(field.DBName)
		expected[name] = true

		col, ok := actualMap[name]
		if !ok {
			report.MissingColumns = append(report.MissingColumns, field.DBName)
			report.Matched = false
			continue
		}

		// Only columns with an explicit type tag are type checked.
		expType := strings.ToLower(field.TagSettings["TYPE"])
		if expType == "" {
			continue
		}
		if baseType(expType) != baseType(col.Type) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", field.DBName, expType, col.Type))
			report.Matched = false
		}
	}

	for _, col := range actual {
		if !expected[col.Field] {
			report.ExtraColumns = append(report.ExtraColumns, strings.ToUpper(col.Field))
		}
	}
	sort.Strings(report.ExtraColumns)

	if !report.Matched {
		report.Status = "error"
	}
	return report, nil
}

// baseType strips length and precision, so varchar(50) and varchar compare equal.
// SQL Server's INFORMATION_SCHEMA reports bare type names.
func baseType(t string) string {
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}
