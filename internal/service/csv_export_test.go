package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/internal/domain/mocks"
	pkgmocks "github.com/altocrm/altocrm/pkg/mocks"
)

func TestExportCell(t *testing.T) {
	testCases := []struct {
		name     string
		value    *domain.LeadValue
		expected string
	}{
		{"nil value row", nil, ""},
		{"null value", &domain.LeadValue{Value: nil}, ""},
		{"string", &domain.LeadValue{Value: "Acme"}, "Acme"},
		{"number", &domain.LeadValue{Value: float64(1250.5)}, "1250.5"},
		{"whole number without trailing zeros", &domain.LeadValue{Value: float64(42)}, "42"},
		{"bool", &domain.LeadValue{Value: true}, "true"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, exportCell(tc.value))
		})
	}
}

func TestLeadService_ExportLeads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockLeadRepository(ctrl)
	mockFieldRepo := mocks.NewMockFieldRepository(ctrl)
	mockStageRepo := mocks.NewMockStageRepository(ctrl)
	mockAuditRepo := mocks.NewMockAuditRepository(ctrl)
	mockLogger := pkgmocks.NewMockLogger(ctrl)
	setupLoggerMock(mockLogger)

	svc := NewLeadService(mockRepo, mockFieldRepo, mockStageRepo, mockAuditRepo, mockLogger)

	exportFields := func() []*domain.Field {
		now := time.Now().UTC()
		return []*domain.Field{
			{Key: "name", Label: "Name", Kind: domain.FieldKindText, Position: 0, CreatedAt: now, UpdatedAt: now},
			{Key: "email", Label: "Email", Kind: domain.FieldKindEmail, Position: 1, CreatedAt: now, UpdatedAt: now},
			{Key: "budget", Label: "Budget", Kind: domain.FieldKindNumber, Position: 2, CreatedAt: now, UpdatedAt: now},
		}
	}

	t.Run("streams pages of leads as csv", func(t *testing.T) {
		ctx := context.Background()
		createdAt := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

		mockFieldRepo.EXPECT().List(gomock.Any(), false).Return(exportFields(), nil)

		mockRepo.EXPECT().
			GetLeads(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *domain.GetLeadsRequest) (*domain.GetLeadsResponse, error) {
				assert.Empty(t, req.Cursor)
				assert.Equal(t, defaultExportPageSize, req.Limit)
				return &domain.GetLeadsResponse{
					Leads: []*domain.Lead{
						{
							ID:        "lead-1",
							Stage:     "new",
							CreatedAt: createdAt,
							Values: map[string]*domain.LeadValue{
								"name":   {Value: "Jane Doe"},
								"email":  {Value: "jane@acme.io"},
								"budget": {Value: float64(1250.5)},
							},
						},
						{
							ID:        "lead-2",
							Stage:     "qualified",
							CreatedAt: createdAt,
							Values:    map[string]*domain.LeadValue{"name": {Value: "Bob"}},
						},
					},
					NextCursor: "cursor-2",
				}, nil
			})

		mockRepo.EXPECT().
			GetLeads(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *domain.GetLeadsRequest) (*domain.GetLeadsResponse, error) {
				assert.Equal(t, "cursor-2", req.Cursor)
				return &domain.GetLeadsResponse{
					Leads: []*domain.Lead{
						{ID: "lead-3", Stage: "won", CreatedAt: createdAt},
					},
				}, nil
			})

		var buf bytes.Buffer
		err := svc.ExportLeads(ctx, &domain.ExportLeadsRequest{}, &buf)
		require.NoError(t, err)

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 4)

		assert.Equal(t, []string{"id", "stage", "created_at", "name", "email", "budget"}, records[0])
		assert.Equal(t, []string{"lead-1", "new", "2025-03-14T09:30:00Z", "Jane Doe", "jane@acme.io", "1250.5"}, records[1])
		assert.Equal(t, []string{"lead-2", "qualified", "2025-03-14T09:30:00Z", "Bob", "", ""}, records[2])
		assert.Equal(t, []string{"lead-3", "won", "2025-03-14T09:30:00Z", "", "", ""}, records[3])
	})

	t.Run("stage filter and page size pass through", func(t *testing.T) {
		ctx := context.Background()

		mockFieldRepo.EXPECT().List(gomock.Any(), false).Return(exportFields(), nil)
		mockRepo.EXPECT().
			GetLeads(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *domain.GetLeadsRequest) (*domain.GetLeadsResponse, error) {
				assert.Equal(t, "won", req.Stage)
				assert.True(t, req.IncludeDeleted)
				assert.Equal(t, 2, req.Limit)
				return &domain.GetLeadsResponse{Leads: []*domain.Lead{}}, nil
			})

		var buf bytes.Buffer
		err := svc.ExportLeads(ctx, &domain.ExportLeadsRequest{Stage: "won", IncludeDeleted: true, Limit: 2}, &buf)

		require.NoError(t, err)
	})

	t.Run("returns error when fields cannot be loaded", func(t *testing.T) {
		ctx := context.Background()

		mockFieldRepo.EXPECT().List(gomock.Any(), false).Return(nil, errors.New("db down"))

		var buf bytes.Buffer
		err := svc.ExportLeads(ctx, &domain.ExportLeadsRequest{}, &buf)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load fields")
		assert.Zero(t, buf.Len())
	})

	t.Run("returns error when paging fails", func(t *testing.T) {
		ctx := context.Background()

		mockFieldRepo.EXPECT().List(gomock.Any(), false).Return(exportFields(), nil)
		mockRepo.EXPECT().GetLeads(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		var buf bytes.Buffer
		err := svc.ExportLeads(ctx, &domain.ExportLeadsRequest{}, &buf)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to page leads")
	})
}
