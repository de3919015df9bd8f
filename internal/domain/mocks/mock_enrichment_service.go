package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/altocrm/altocrm/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockEnrichmentService is a mock of EnrichmentService interface
type MockEnrichmentService struct {
	ctrl     *gomock.Controller
	recorder *MockEnrichmentServiceMockRecorder
}

// MockEnrichmentServiceMockRecorder is the mock recorder for MockEnrichmentService
type MockEnrichmentServiceMockRecorder struct {
	mock *MockEnrichmentService
}

// NewMockEnrichmentService creates a new mock instance
func NewMockEnrichmentService(ctrl *gomock.Controller) *MockEnrichmentService {
	mock := &MockEnrichmentService{ctrl: ctrl}
	mock.recorder = &MockEnrichmentServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockEnrichmentService) EXPECT() *MockEnrichmentServiceMockRecorder {
	return m.recorder
}

// EnrichLead mocks base method
func (m *MockEnrichmentService) EnrichLead(ctx context.Context, leadID string) (*domain.EnrichmentResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EnrichLead", ctx, leadID)
	ret0, _ := ret[0].(*domain.EnrichmentResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// EnrichLead indicates an expected call of EnrichLead
func (mr *MockEnrichmentServiceMockRecorder) EnrichLead(ctx, leadID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EnrichLead", reflect.TypeOf((*MockEnrichmentService)(nil).EnrichLead), ctx, leadID)
}
