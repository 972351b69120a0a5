package db

import (
	"database/sql"
	"fmt"
)

// ColumnType represents expected column schema
type ColumnType struct {
	Name     string
	DataType string
	Nullable bool
}

// TableSchema represents expected table structure
type TableSchema struct {
	Name    string
	Columns []ColumnType
}

// SchemaGuard validates database schema matches expectations
type SchemaGuard struct {
	db *sql.DB
}

// NewSchemaGuard creates a new schema guard
func NewSchemaGuard(db *sql.DB) *SchemaGuard {
	return &SchemaGuard{db: db}
}

// CoreTableSchemas lists the columns the attachment manager and identifier
// generators depend on. Validated at startup so a drifted database fails
// fast instead of corrupting owner references.
func CoreTableSchemas() []TableSchema {
	return []TableSchema{
		{
			Name: "images",
			Columns: []ColumnType{
				{Name: "id", DataType: "char", Nullable: false},
				{Name: "path", DataType: "varchar", Nullable: false},
				{Name: "url", DataType: "varchar", Nullable: false},
				{Name: "image_type", DataType: "varchar", Nullable: false},
				{Name: "owner_kind", DataType: "varchar", Nullable: true},
				{Name: "owner_id", DataType: "char", Nullable: true},
			},
		},
		{
			Name: "zones",
			Columns: []ColumnType{
				{Name: "id", DataType: "char", Nullable: false},
				{Name: "name", DataType: "varchar", Nullable: false},
				{Name: "slug", DataType: "varchar", Nullable: false},
			},
		},
		{
			Name: "officials",
			Columns: []ColumnType{
				{Name: "id", DataType: "char", Nullable: false},
				{Name: "official_id", DataType: "varchar", Nullable: false},
				{Name: "profile_image_id", DataType: "char", Nullable: true},
			},
		},
		{
			Name: "news_events",
			Columns: []ColumnType{
				{Name: "id", DataType: "char", Nullable: false},
				{Name: "slug", DataType: "varchar", Nullable: false},
				{Name: "featured_image_id", DataType: "char", Nullable: true},
			},
		},
	}
}

// ValidateTable validates a table's schema
func (sg *SchemaGuard) ValidateTable(schema TableSchema) error {
	query := `
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = DATABASE()
		AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`

	rows, err := sg.db.Query(query, schema.Name)
	if err != nil {
		return fmt.Errorf("failed to query table schema for %s: %w", schema.Name, err)
	}
	defer rows.Close()

	actualColumns := make(map[string]ColumnType)
	for rows.Next() {
		var colName, dataType, isNullable string
		if err := rows.Scan(&colName, &dataType, &isNullable); err != nil {
			return fmt.Errorf("failed to scan column info: %w", err)
		}
		actualColumns[colName] = ColumnType{
			Name:     colName,
			DataType: dataType,
			Nullable: isNullable == "YES",
		}
	}

	if len(actualColumns) == 0 {
		return fmt.Errorf("table %s does not exist or has no columns", schema.Name)
	}

	for _, expectedCol := range schema.Columns {
		actualCol, exists := actualColumns[expectedCol.Name]
		if !exists {
			return fmt.Errorf("table %s missing expected column: %s", schema.Name, expectedCol.Name)
		}

		if !matchesDataType(actualCol.DataType, expectedCol.DataType) {
			return fmt.Errorf("table %s column %s has type %s, expected %s",
				schema.Name, expectedCol.Name, actualCol.DataType, expectedCol.DataType)
		}
	}

	return nil
}

// ValidateTables validates multiple tables
func (sg *SchemaGuard) ValidateTables(schemas []TableSchema) error {
	for _, schema := range schemas {
		if err := sg.ValidateTable(schema); err != nil {
			return err
		}
	}
	return nil
}

// matchesDataType checks if data types are compatible (handles varchar(n) vs varchar)
func matchesDataType(actual, expected string) bool {
	if actual == expected {
		return true
	}
	if len(actual) >= len(expected) && actual[:len(expected)] == expected {
		return true
	}
	return false
}
