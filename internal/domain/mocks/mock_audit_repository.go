package mocks

import (
	context "context"
	sql "database/sql"
	reflect "reflect"

	domain "github.com/altocrm/altocrm/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockAuditRepository is a mock of AuditRepository interface
type MockAuditRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAuditRepositoryMockRecorder
}

// MockAuditRepositoryMockRecorder is the mock recorder for MockAuditRepository
type MockAuditRepositoryMockRecorder struct {
	mock *MockAuditRepository
}

// NewMockAuditRepository creates a new mock instance
func NewMockAuditRepository(ctrl *gomock.Controller) *MockAuditRepository {
	mock := &MockAuditRepository{ctrl: ctrl}
	mock.recorder = &MockAuditRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockAuditRepository) EXPECT() *MockAuditRepositoryMockRecorder {
	return m.recorder
}

// CreateTx mocks base method
func (m *MockAuditRepository) CreateTx(ctx context.Context, tx *sql.Tx, entry *domain.AuditEntry) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateTx", ctx, tx, entry)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateTx indicates an expected call of CreateTx
func (mr *MockAuditRepositoryMockRecorder) CreateTx(ctx, tx, entry interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateTx", reflect.TypeOf((*MockAuditRepository)(nil).CreateTx), ctx, tx, entry)
}

// GetLatestUndoableTx mocks base method
func (m *MockAuditRepository) GetLatestUndoableTx(ctx context.Context, tx *sql.Tx, leadID string) (*domain.AuditEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLatestUndoableTx", ctx, tx, leadID)
	ret0, _ := ret[0].(*domain.AuditEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetLatestUndoableTx indicates an expected call of GetLatestUndoableTx
func (mr *MockAuditRepositoryMockRecorder) GetLatestUndoableTx(ctx, tx, leadID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLatestUndoableTx", reflect.TypeOf((*MockAuditRepository)(nil).GetLatestUndoableTx), ctx, tx, leadID)
}

// ListByLead mocks base method
func (m *MockAuditRepository) ListByLead(ctx context.Context, leadID string, limit int, cursor string) ([]*domain.AuditEntry, string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByLead", ctx, leadID, limit, cursor)
	ret0, _ := ret[0].([]*domain.AuditEntry)
	ret1, _ := ret[1].(string)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ListByLead indicates an expected call of ListByLead
func (mr *MockAuditRepositoryMockRecorder) ListByLead(ctx, leadID, limit, cursor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByLead", reflect.TypeOf((*MockAuditRepository)(nil).ListByLead), ctx, leadID, limit, cursor)
}
