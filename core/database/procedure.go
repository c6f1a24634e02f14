package database

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Param is a named stored procedure argument. Order is preserved.
type Param struct {
	Name  string
	Value any
}

// ProcedureStatement renders a stored procedure call for the given dialect.
// SQL Server uses named arguments (EXEC p @A = ?); MySQL uses positional CALL p(?).
func ProcedureStatement(dialect, name string, params []Param) (string, []any, error) {
	if !identifierPattern.MatchString(name) {
		return "", nil, fmt.Errorf("invalid procedure name %q", name)
	}

	args := make([]any, 0, len(params))
	parts := make([]string, 0, len(params))

	switch dialect {
	case DriverSQLServer:
		for _, p := range params {
			if !identifierPattern.MatchString(p.Name) {
				return "", nil, fmt.Errorf("invalid parameter name %q", p.Name)
			}
			parts = append(parts, "@"+p.Name+" = ?")
			args = append(args, p.Value)
		}
		stmt := "EXEC " + name
		if len(parts) > 0 {
			stmt += " " + strings.Join(parts, ", ")
		}
		return stmt, args, nil
	case DriverMySQL:
		for _, p := range params {
			parts = append(parts, "?")
			args = append(args, p.Value)
		}
		return "CALL " + name + "(" + strings.Join(parts, ", ") + ")", args, nil
	default:
		return "", nil, fmt.Errorf("stored procedures are not supported by %s", dialect)
	}
}

// CallProcedure executes a stored procedure and returns its first result set as rows of column → value.
func CallProcedure(ctx context.Context, db *gorm.DB, name string, params ...Param) ([]map[string]any, error) {
	stmt, args, err := ProcedureStatement(db.Dialector.Name(), name, params)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]any, 0)
	if err := db.WithContext(ctx).Raw(stmt, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("procedure %s failed: %w", name, err)
	}

	// Some drivers hand back text columns as raw bytes.
	for _, row := range rows {
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
	}
	return rows, nil
}
