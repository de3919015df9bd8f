package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/altocrm/altocrm/internal/domain"
)

const defaultExportPageSize = 100

// ExportLeads streams matching leads to w as CSV. The header carries id,
// stage and created_at followed by the active field keys in position
// order, and the result pages through the lead list so a large export
// never sits fully in memory.
func (s *LeadService) ExportLeads(ctx context.Context, req *domain.ExportLeadsRequest, w io.Writer) error {
	fields, err := s.fieldRepo.List(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to load fields: %w", err)
	}

	writer := csv.NewWriter(w)

	header := []string{"id", "stage", "created_at"}
	for _, field := range fields {
		header = append(header, field.Key)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultExportPageSize
	}

	cursor := ""
	for {
		resp, err := s.GetLeads(ctx, &domain.GetLeadsRequest{
			Stage:          req.Stage,
			IncludeDeleted: req.IncludeDeleted,
			Limit:          limit,
			Cursor:         cursor,
		})
		if err != nil {
			return fmt.Errorf("failed to page leads: %w", err)
		}

		for _, lead := range resp.Leads {
			row := make([]string, 0, len(header))
			row = append(row, lead.ID, lead.Stage, lead.CreatedAt.UTC().Format(time.RFC3339))
			for _, field := range fields {
				row = append(row, exportCell(lead.Values[field.Key]))
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}

		if resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// exportCell flattens a stored value into its CSV cell
func exportCell(v *domain.LeadValue) string {
	if v == nil || v.Value == nil {
		return ""
	}
	switch value := v.Value.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
