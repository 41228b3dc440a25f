package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo is one live column, with name and type lower-cased.
type ColumnInfo struct {
	Field string
	Type  string
}

// GetTableColumns reads the live columns of tableName. A table that does not
// exist yields no columns and no error.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var (
		rows []struct {
			Field string
			Type  string
		}
		err error
	)

	switch db.Dialector.Name() {
	case "sqlite":
		err = db.Raw("SELECT name AS field, type AS type FROM pragma_table_info(?)", tableName).Scan(&rows).Error
	case "postgres":
		err = db.Raw(`SELECT column_name AS field, data_type AS type FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = ?`, tableName).Scan(&rows).Error
	default:
		err = db.Raw(`SELECT column_name AS field, column_type AS type FROM information_schema.columns
			WHERE table_schema = DATABASE() AND table_name = ?`, tableName).Scan(&rows).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(rows))
	for _, r := range rows {
		columns = append(columns, ColumnInfo{Field: strings.ToLower(r.Field), Type: strings.ToLower(r.Type)})
	}
	return columns, nil
}

// MissingColumns returns the expected columns that the table does not have.
func MissingColumns(db *gorm.DB, tableName string, expected ...string) ([]string, error) {
	columns, err := GetTableColumns(db, tableName)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col.Field] = true
	}
	var missing []string
	for _, name := range expected {
		if !present[strings.ToLower(name)] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
