package service

import (
	"context"
	"fmt"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/pkg/logger"
)

// EnrichJobProcessor handles the enrichment job kinds. The single-lead
// kind finishes in one step; the all-leads kind walks the lead list one
// page per step, carrying its cursor and counters in the job payload.
type EnrichJobProcessor struct {
	enrichmentService domain.EnrichmentService
	leadService       domain.LeadService
	logger            logger.Logger
	pageSize          int // Leads enriched per continuation step
}

// NewEnrichJobProcessor creates a new enrich job processor
func NewEnrichJobProcessor(
	enrichmentService domain.EnrichmentService,
	leadService domain.LeadService,
	logger logger.Logger,
) *EnrichJobProcessor {
	return &EnrichJobProcessor{
		enrichmentService: enrichmentService,
		leadService:       leadService,
		logger:            logger,
		pageSize:          20, // Small pages keep each step well inside the job timeout
	}
}

// CanProcess returns whether this processor can handle the given job kind
func (p *EnrichJobProcessor) CanProcess(kind string) bool {
	return kind == domain.JobKindLeadEnrich || kind == domain.JobKindLeadsEnrichAll
}

// Process executes or continues an enrichment job
func (p *EnrichJobProcessor) Process(ctx context.Context, job *domain.Job) (bool, error) {
	switch job.Kind {
	case domain.JobKindLeadEnrich:
		return p.processSingle(ctx, job)
	case domain.JobKindLeadsEnrichAll:
		return p.processAll(ctx, job)
	default:
		return false, fmt.Errorf("unsupported job kind: %s", job.Kind)
	}
}

func (p *EnrichJobProcessor) processSingle(ctx context.Context, job *domain.Job) (bool, error) {
	if job.Payload == nil || job.Payload.Enrich == nil || job.Payload.Enrich.LeadID == "" {
		return false, fmt.Errorf("enrich payload with lead_id is required")
	}
	leadID := job.Payload.Enrich.LeadID

	p.logger.WithFields(map[string]interface{}{
		"job_id":  job.ID,
		"lead_id": leadID,
	}).Info("Processing lead enrichment job")

	result, err := p.enrichmentService.EnrichLead(ctx, leadID)
	if err != nil {
		return false, fmt.Errorf("failed to enrich lead %s: %w", leadID, err)
	}

	job.Progress = 100
	job.Result = &domain.JobResult{
		Message:  fmt.Sprintf("enriched lead %s", leadID),
		Enriched: len(result.Applied),
		Skipped:  len(result.Skipped),
	}
	return true, nil
}

func (p *EnrichJobProcessor) processAll(ctx context.Context, job *domain.Job) (bool, error) {
	if job.Payload == nil {
		job.Payload = &domain.JobPayload{}
	}
	if job.Payload.Enrich == nil {
		job.Payload.Enrich = &domain.EnrichJobPayload{}
	}
	state := job.Payload.Enrich

	p.logger.WithFields(map[string]interface{}{
		"job_id": job.ID,
		"cursor": state.Cursor,
	}).Info("Processing enrich-all job page")

	resp, err := p.leadService.GetLeads(ctx, &domain.GetLeadsRequest{
		Limit:  p.pageSize,
		Cursor: state.Cursor,
	})
	if err != nil {
		return false, fmt.Errorf("failed to page leads: %w", err)
	}

	for _, lead := range resp.Leads {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		result, err := p.enrichmentService.EnrichLead(ctx, lead.ID)
		if err != nil {
			// One broken lead must not sink the whole pass
			p.logger.WithField("lead_id", lead.ID).Error(fmt.Sprintf("Failed to enrich lead: %v", err))
			state.Skipped++
			continue
		}
		if len(result.Applied) > 0 {
			state.Enriched++
		} else {
			state.Skipped++
		}
	}

	if resp.NextCursor == "" {
		job.Progress = 100
		job.Result = &domain.JobResult{
			Message:  "enrichment pass complete",
			Enriched: state.Enriched,
			Skipped:  state.Skipped,
		}
		return true, nil
	}

	// More pages remain, checkpoint the cursor for the next step
	state.Cursor = resp.NextCursor
	return false, nil
}
