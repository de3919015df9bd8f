// Package schema defines the database schema for development.
//
// DEVELOPMENT USE ONLY
// This file contains the current database schema and is used for development and testing.
// Schema changes after the initial release ship as migrations; see internal/migrations.
package schema

// TableDefinitions contains all the SQL statements to create the database tables
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS crm_fields (
		key VARCHAR(64) PRIMARY KEY,
		label VARCHAR(255) NOT NULL,
		kind VARCHAR(20) NOT NULL,
		options JSONB,
		required BOOLEAN NOT NULL DEFAULT FALSE,
		position INTEGER NOT NULL DEFAULT 0,
		archived_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pipeline_stages (
		key VARCHAR(64) PRIMARY KEY,
		label VARCHAR(255) NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		color VARCHAR(20) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS leads (
		id UUID PRIMARY KEY,
		stage VARCHAR(64) NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		deleted_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS lead_values (
		lead_id UUID NOT NULL,
		field_key VARCHAR(64) NOT NULL,
		value JSONB,
		source VARCHAR(20) NOT NULL DEFAULT 'manual',
		locked BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (lead_id, field_key)
	)`,
	`CREATE TABLE IF NOT EXISTS lead_audit_logs (
		id UUID PRIMARY KEY,
		lead_id UUID NOT NULL,
		field_key VARCHAR(64),
		operation VARCHAR(20) NOT NULL,
		old_value JSONB,
		new_value JSONB,
		source VARCHAR(20) NOT NULL,
		actor VARCHAR(64) NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS background_jobs (
		id UUID PRIMARY KEY,
		kind VARCHAR(64) NOT NULL,
		status VARCHAR(20) NOT NULL,
		payload JSONB,
		result JSONB,
		error_message TEXT,
		progress DOUBLE PRECISION NOT NULL DEFAULT 0,
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 3,
		retry_interval INTEGER NOT NULL DEFAULT 60,
		next_run_after TIMESTAMP,
		started_at TIMESTAMP,
		finished_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key VARCHAR(255) PRIMARY KEY,
		value TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_stage ON leads(stage) WHERE deleted_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at, id)`,
	`CREATE INDEX IF NOT EXISTS idx_lead_values_field_key ON lead_values(field_key)`,
	`CREATE INDEX IF NOT EXISTS idx_lead_audit_logs_lead_id ON lead_audit_logs(lead_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_background_jobs_status ON background_jobs(status, next_run_after)`,
	`CREATE INDEX IF NOT EXISTS idx_background_jobs_kind ON background_jobs(kind)`,
}

// TableNames returns a list of all table names in creation order
var TableNames = []string{
	"crm_fields",
	"pipeline_stages",
	"leads",
	"lead_values",
	"lead_audit_logs",
	"background_jobs",
	"settings",
}
