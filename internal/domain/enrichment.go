package domain

import (
	"context"
)

//go:generate mockgen -destination mocks/mock_enrichment_service.go -package mocks github.com/altocrm/altocrm/internal/domain EnrichmentService

// EnrichmentResult summarizes what one enrichment pass changed
type EnrichmentResult struct {
	LeadID  string   `json:"lead_id"`
	Applied []string `json:"applied"`
	Skipped []string `json:"skipped"`
}

// EnrichmentService derives missing lead values from the ones already
// present. Derived values never overwrite manual data and never touch
// locked fields.
type EnrichmentService interface {
	// EnrichLead runs the enrichment rules against one lead
	EnrichLead(ctx context.Context, leadID string) (*EnrichmentResult, error)
}
