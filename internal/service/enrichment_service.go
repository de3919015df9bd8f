package service

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/pkg/logger"
)

var titleCaser = cases.Title(language.English)

// Mail providers whose domain says nothing about the employer
var freemailHosts = map[string]bool{
	"gmail":      true,
	"googlemail": true,
	"yahoo":      true,
	"hotmail":    true,
	"outlook":    true,
	"live":       true,
	"icloud":     true,
	"aol":        true,
	"proton":     true,
	"protonmail": true,
	"gmx":        true,
}

// EnrichmentService implements domain.EnrichmentService. The rules are a
// deterministic stand-in for a real enrichment provider: split the name
// into first and last, and guess the company from the email domain.
type EnrichmentService struct {
	repo      domain.LeadRepository
	fieldRepo domain.FieldRepository
	auditRepo domain.AuditRepository
	logger    logger.Logger
}

// NewEnrichmentService creates a new enrichment service
func NewEnrichmentService(
	repo domain.LeadRepository,
	fieldRepo domain.FieldRepository,
	auditRepo domain.AuditRepository,
	logger logger.Logger,
) *EnrichmentService {
	return &EnrichmentService{
		repo:      repo,
		fieldRepo: fieldRepo,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// EnrichLead runs the enrichment rules against one lead. Derived values
// only land on fields that are empty or already AI-sourced; locked fields
// are skipped, never an error.
func (s *EnrichmentService) EnrichLead(ctx context.Context, leadID string) (*domain.EnrichmentResult, error) {
	result := &domain.EnrichmentResult{
		LeadID:  leadID,
		Applied: []string{},
		Skipped: []string{},
	}

	fields, err := s.fieldRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load fields: %w", err)
	}
	active := make(map[string]*domain.Field, len(fields))
	for _, field := range fields {
		active[field.Key] = field
	}

	err = s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		lead, err := s.repo.GetLeadTx(ctx, tx, leadID, true)
		if err != nil {
			return err
		}
		if lead.IsDeleted() {
			return &domain.ErrLeadDeleted{Message: "lead is deleted"}
		}

		values, err := s.repo.GetValuesTx(ctx, tx, leadID)
		if err != nil {
			return fmt.Errorf("failed to load current values: %w", err)
		}

		derived := deriveValues(values)
		now := time.Now().UTC()

		for _, key := range sortedKeys(derived) {
			value := derived[key]
			existing := values[key]

			if existing != nil && existing.Locked {
				s.logger.WithField("lead_id", leadID).
					WithField("field", key).
					Info("Enrichment skipping locked field")
				result.Skipped = append(result.Skipped, key)
				continue
			}
			if existing != nil && existing.Value != nil && existing.Source != domain.ValueSourceAI {
				result.Skipped = append(result.Skipped, key)
				continue
			}
			if existing != nil && reflect.DeepEqual(existing.Value, value) {
				result.Skipped = append(result.Skipped, key)
				continue
			}
			if _, ok := active[key]; !ok {
				result.Skipped = append(result.Skipped, key)
				continue
			}

			leadValue := &domain.LeadValue{
				Value:     value,
				Source:    domain.ValueSourceAI,
				UpdatedAt: now,
			}
			if err := s.repo.UpsertValueTx(ctx, tx, leadID, key, leadValue); err != nil {
				return fmt.Errorf("failed to write value %s: %w", key, err)
			}

			var oldValue interface{}
			if existing != nil {
				oldValue = existing.Value
			}
			fieldKey := key
			entry := domain.NewAuditEntry(leadID, &fieldKey, domain.AuditOpEnrich, oldValue, value, domain.ValueSourceAI, actorSystem)
			if err := s.auditRepo.CreateTx(ctx, tx, entry); err != nil {
				return fmt.Errorf("failed to record audit entry for %s: %w", key, err)
			}

			result.Applied = append(result.Applied, key)
		}

		if len(result.Applied) > 0 {
			if err := s.repo.TouchLeadTx(ctx, tx, leadID, now); err != nil {
				return fmt.Errorf("failed to touch lead: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// deriveValues computes the candidate writes for a lead from the values
// it already has
func deriveValues(values map[string]*domain.LeadValue) map[string]interface{} {
	derived := make(map[string]interface{})

	if name := rawString(values, domain.FieldKeyName); name != "" {
		first, last := SplitName(name)
		if first != "" {
			derived[domain.FieldKeyFirstName] = first
		}
		if last != "" {
			derived[domain.FieldKeyLastName] = last
		}
	}

	if email := rawString(values, domain.FieldKeyEmail); email != "" {
		if company := CompanyFromEmail(email); company != "" {
			derived[domain.FieldKeyCompany] = company
		}
	}

	return derived
}

// SplitName splits a full name on whitespace into a title-cased first
// name and the remaining tokens joined as the last name
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}

	first = titleCaser.String(parts[0])
	if len(parts) > 1 {
		rest := make([]string, 0, len(parts)-1)
		for _, part := range parts[1:] {
			rest = append(rest, titleCaser.String(part))
		}
		last = strings.Join(rest, " ")
	}
	return first, last
}

// CompanyFromEmail guesses a company name from the domain of an email
// address. Freemail domains produce no guess.
func CompanyFromEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}

	host := strings.ToLower(email[at+1:])
	host = strings.TrimPrefix(host, "www.")
	host = strings.Split(host, ".")[0]
	if host == "" || freemailHosts[host] {
		return ""
	}

	return titleCaser.String(host)
}

// rawString reads a value as a string, "" when absent or another type
func rawString(values map[string]*domain.LeadValue, key string) string {
	v, ok := values[key]
	if !ok || v == nil || v.Value == nil {
		return ""
	}
	s, _ := v.Value.(string)
	return s
}
