package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/altocrm/altocrm/internal/database/schema"
	"github.com/altocrm/altocrm/internal/domain"
)

// defaultFields is the field catalog installed on first boot
var defaultFields = []struct {
	Key      string
	Label    string
	Kind     domain.FieldKind
	Position int
}{
	{domain.FieldKeyName, "Name", domain.FieldKindText, 1},
	{domain.FieldKeyFirstName, "First Name", domain.FieldKindText, 2},
	{domain.FieldKeyLastName, "Last Name", domain.FieldKindText, 3},
	{domain.FieldKeyEmail, "Email", domain.FieldKindEmail, 4},
	{domain.FieldKeyPhone, "Phone", domain.FieldKindPhone, 5},
	{domain.FieldKeyCompany, "Company", domain.FieldKindText, 6},
	{domain.FieldKeyTitle, "Title", domain.FieldKindText, 7},
	{domain.FieldKeyWebsite, "Website", domain.FieldKindURL, 8},
	{domain.FieldKeyNotes, "Notes", domain.FieldKindText, 9},
}

// defaultStages is the pipeline installed on first boot
var defaultStages = []struct {
	Key      string
	Label    string
	Position int
	Color    string
}{
	{"new", "New", 1, "#3b82f6"},
	{"contacted", "Contacted", 2, "#8b5cf6"},
	{"qualified", "Qualified", 3, "#f59e0b"},
	{"proposal", "Proposal", 4, "#f97316"},
	{"won", "Won", 5, "#22c55e"},
	{"lost", "Lost", 6, "#ef4444"},
}

// InitializeDatabase creates all necessary database tables if they don't exist
// and seeds the default field catalog and pipeline stages. Seeding skips keys
// that already exist, so operator customizations survive restarts.
func InitializeDatabase(db *sql.DB) error {
	// Run all table creation queries
	for _, query := range schema.TableDefinitions {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	if err := seedDefaultFields(db); err != nil {
		return err
	}

	return seedDefaultStages(db)
}

func seedDefaultFields(db *sql.DB) error {
	query := `
		INSERT INTO crm_fields (key, label, kind, required, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (key) DO NOTHING
	`

	now := time.Now().UTC()
	for _, field := range defaultFields {
		_, err := db.Exec(query, field.Key, field.Label, field.Kind, false, field.Position, now, now)
		if err != nil {
			return fmt.Errorf("failed to seed field %s: %w", field.Key, err)
		}
	}

	return nil
}

func seedDefaultStages(db *sql.DB) error {
	query := `
		INSERT INTO pipeline_stages (key, label, position, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key) DO NOTHING
	`

	now := time.Now().UTC()
	for _, stage := range defaultStages {
		_, err := db.Exec(query, stage.Key, stage.Label, stage.Position, stage.Color, now, now)
		if err != nil {
			return fmt.Errorf("failed to seed stage %s: %w", stage.Key, err)
		}
	}

	return nil
}

// CleanDatabase drops all tables in reverse order
func CleanDatabase(db *sql.DB) error {
	// Drop tables in reverse order to handle dependencies
	for i := len(schema.TableNames) - 1; i >= 0; i-- {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", schema.TableNames[i])
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", schema.TableNames[i], err)
		}
	}
	return nil
}
