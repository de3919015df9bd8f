package migrations

import (
	"context"
	"fmt"

	"github.com/altocrm/altocrm/config"
	"github.com/altocrm/altocrm/internal/database/schema"
)

// V1Migration is the baseline release: all tables and indexes plus the seeded
// field catalog and pipeline stages. Fresh installs never execute it because
// the first run stamps the code version directly; it exists so a database
// restored without a version row can be brought up to date.
type V1Migration struct{}

// GetMajorVersion returns the major version this migration handles
func (m *V1Migration) GetMajorVersion() float64 {
	return 1.0
}

// ShouldRestartServer indicates if the server must restart after this migration
func (m *V1Migration) ShouldRestartServer() bool {
	return false
}

// Update executes the migration changes
func (m *V1Migration) Update(ctx context.Context, config *config.Config, db DBExecutor) error {
	for _, query := range schema.TableDefinitions {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Seed the default field catalog, leaving existing keys untouched
	_, err := db.ExecContext(ctx, `
		INSERT INTO crm_fields (key, label, kind, required, position, created_at, updated_at)
		VALUES
			('name', 'Name', 'text', FALSE, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
			('first_name', 'First Name', 'text', FALSE, 2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
			('last_name', 'Last Name', 'text', FALSE, 3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
			('email', 'Email', 'email', FALSE, 4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
			('phone', 'Phone', 'phone', FALSE, 5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
			('company', 'Company', 'text', FALSE, 6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
			('title', 'Title', 'text', FALSE, 7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
			('website', 'Website', 'url', FALSE, 8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
			('notes', 'Notes', 'text', FALSE, 9, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to seed field catalog: %w", err)
	}

	// Seed the default pipeline
	_, err = db.ExecContext(ctx, `
		INSERT INTO pipeline_stages (key, label, position, color, created_at, updated_at)
		VALUES
			('new', 'New', 1, '#3b82f6', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
			('contacted', 'Contacted', 2, '#8b5cf6', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
			('qualified', 'Qualified', 3, '#f59e0b', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
			('proposal', 'Proposal', 4, '#f97316', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
			('won', 'Won', 5, '#22c55e', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP),
			('lost', 'Lost', 6, '#ef4444', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to seed pipeline stages: %w", err)
	}

	return nil
}

// init registers this migration with the default registry
func init() {
	Register(&V1Migration{})
}
