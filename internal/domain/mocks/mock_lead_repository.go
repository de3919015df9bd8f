package mocks

import (
	context "context"
	sql "database/sql"
	reflect "reflect"
	time "time"

	domain "github.com/altocrm/altocrm/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockLeadRepository is a mock of LeadRepository interface
type MockLeadRepository struct {
	ctrl     *gomock.Controller
	recorder *MockLeadRepositoryMockRecorder
}

// MockLeadRepositoryMockRecorder is the mock recorder for MockLeadRepository
type MockLeadRepositoryMockRecorder struct {
	mock *MockLeadRepository
}

// NewMockLeadRepository creates a new mock instance
func NewMockLeadRepository(ctrl *gomock.Controller) *MockLeadRepository {
	mock := &MockLeadRepository{ctrl: ctrl}
	mock.recorder = &MockLeadRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockLeadRepository) EXPECT() *MockLeadRepositoryMockRecorder {
	return m.recorder
}

// CreateLead mocks base method
func (m *MockLeadRepository) CreateLead(ctx context.Context, lead *domain.Lead) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateLead", ctx, lead)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateLead indicates an expected call of CreateLead
func (mr *MockLeadRepositoryMockRecorder) CreateLead(ctx, lead interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateLead", reflect.TypeOf((*MockLeadRepository)(nil).CreateLead), ctx, lead)
}

// CreateLeadTx mocks base method
func (m *MockLeadRepository) CreateLeadTx(ctx context.Context, tx *sql.Tx, lead *domain.Lead) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateLeadTx", ctx, tx, lead)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateLeadTx indicates an expected call of CreateLeadTx
func (mr *MockLeadRepositoryMockRecorder) CreateLeadTx(ctx, tx, lead interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateLeadTx", reflect.TypeOf((*MockLeadRepository)(nil).CreateLeadTx), ctx, tx, lead)
}

// GetLead mocks base method
func (m *MockLeadRepository) GetLead(ctx context.Context, id string, includeDeleted bool) (*domain.Lead, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLead", ctx, id, includeDeleted)
	ret0, _ := ret[0].(*domain.Lead)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetLead indicates an expected call of GetLead
func (mr *MockLeadRepositoryMockRecorder) GetLead(ctx, id, includeDeleted interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLead", reflect.TypeOf((*MockLeadRepository)(nil).GetLead), ctx, id, includeDeleted)
}

// GetLeadTx mocks base method
func (m *MockLeadRepository) GetLeadTx(ctx context.Context, tx *sql.Tx, id string, includeDeleted bool) (*domain.Lead, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLeadTx", ctx, tx, id, includeDeleted)
	ret0, _ := ret[0].(*domain.Lead)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetLeadTx indicates an expected call of GetLeadTx
func (mr *MockLeadRepositoryMockRecorder) GetLeadTx(ctx, tx, id, includeDeleted interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLeadTx", reflect.TypeOf((*MockLeadRepository)(nil).GetLeadTx), ctx, tx, id, includeDeleted)
}

// GetLeads mocks base method
func (m *MockLeadRepository) GetLeads(ctx context.Context, req *domain.GetLeadsRequest) (*domain.GetLeadsResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLeads", ctx, req)
	ret0, _ := ret[0].(*domain.GetLeadsResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetLeads indicates an expected call of GetLeads
func (mr *MockLeadRepositoryMockRecorder) GetLeads(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLeads", reflect.TypeOf((*MockLeadRepository)(nil).GetLeads), ctx, req)
}

// GetLeadsByStage mocks base method
func (m *MockLeadRepository) GetLeadsByStage(ctx context.Context, stage string, limit int) ([]*domain.Lead, int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLeadsByStage", ctx, stage, limit)
	ret0, _ := ret[0].([]*domain.Lead)
	ret1, _ := ret[1].(int)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetLeadsByStage indicates an expected call of GetLeadsByStage
func (mr *MockLeadRepositoryMockRecorder) GetLeadsByStage(ctx, stage, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLeadsByStage", reflect.TypeOf((*MockLeadRepository)(nil).GetLeadsByStage), ctx, stage, limit)
}

// GetValuesTx mocks base method
func (m *MockLeadRepository) GetValuesTx(ctx context.Context, tx *sql.Tx, leadID string) (map[string]*domain.LeadValue, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetValuesTx", ctx, tx, leadID)
	ret0, _ := ret[0].(map[string]*domain.LeadValue)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetValuesTx indicates an expected call of GetValuesTx
func (mr *MockLeadRepositoryMockRecorder) GetValuesTx(ctx, tx, leadID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetValuesTx", reflect.TypeOf((*MockLeadRepository)(nil).GetValuesTx), ctx, tx, leadID)
}

// PurgeLead mocks base method
func (m *MockLeadRepository) PurgeLead(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PurgeLead", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// PurgeLead indicates an expected call of PurgeLead
func (mr *MockLeadRepositoryMockRecorder) PurgeLead(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PurgeLead", reflect.TypeOf((*MockLeadRepository)(nil).PurgeLead), ctx, id)
}

// RestoreLead mocks base method
func (m *MockLeadRepository) RestoreLead(ctx context.Context, tx *sql.Tx, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RestoreLead", ctx, tx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// RestoreLead indicates an expected call of RestoreLead
func (mr *MockLeadRepositoryMockRecorder) RestoreLead(ctx, tx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RestoreLead", reflect.TypeOf((*MockLeadRepository)(nil).RestoreLead), ctx, tx, id)
}

// SetValueLockTx mocks base method
func (m *MockLeadRepository) SetValueLockTx(ctx context.Context, tx *sql.Tx, leadID, fieldKey string, locked bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetValueLockTx", ctx, tx, leadID, fieldKey, locked)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetValueLockTx indicates an expected call of SetValueLockTx
func (mr *MockLeadRepositoryMockRecorder) SetValueLockTx(ctx, tx, leadID, fieldKey, locked interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetValueLockTx", reflect.TypeOf((*MockLeadRepository)(nil).SetValueLockTx), ctx, tx, leadID, fieldKey, locked)
}

// SoftDeleteLead mocks base method
func (m *MockLeadRepository) SoftDeleteLead(ctx context.Context, tx *sql.Tx, id string, deletedAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SoftDeleteLead", ctx, tx, id, deletedAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// SoftDeleteLead indicates an expected call of SoftDeleteLead
func (mr *MockLeadRepositoryMockRecorder) SoftDeleteLead(ctx, tx, id, deletedAt interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SoftDeleteLead", reflect.TypeOf((*MockLeadRepository)(nil).SoftDeleteLead), ctx, tx, id, deletedAt)
}

// TouchLeadTx mocks base method
func (m *MockLeadRepository) TouchLeadTx(ctx context.Context, tx *sql.Tx, id string, updatedAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TouchLeadTx", ctx, tx, id, updatedAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// TouchLeadTx indicates an expected call of TouchLeadTx
func (mr *MockLeadRepositoryMockRecorder) TouchLeadTx(ctx, tx, id, updatedAt interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TouchLeadTx", reflect.TypeOf((*MockLeadRepository)(nil).TouchLeadTx), ctx, tx, id, updatedAt)
}

// UpdateStageTx mocks base method
func (m *MockLeadRepository) UpdateStageTx(ctx context.Context, tx *sql.Tx, leadID, stage string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateStageTx", ctx, tx, leadID, stage)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateStageTx indicates an expected call of UpdateStageTx
func (mr *MockLeadRepositoryMockRecorder) UpdateStageTx(ctx, tx, leadID, stage interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateStageTx", reflect.TypeOf((*MockLeadRepository)(nil).UpdateStageTx), ctx, tx, leadID, stage)
}

// UpsertValueTx mocks base method
func (m *MockLeadRepository) UpsertValueTx(ctx context.Context, tx *sql.Tx, leadID, fieldKey string, value *domain.LeadValue) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertValueTx", ctx, tx, leadID, fieldKey, value)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpsertValueTx indicates an expected call of UpsertValueTx
func (mr *MockLeadRepositoryMockRecorder) UpsertValueTx(ctx, tx, leadID, fieldKey, value interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertValueTx", reflect.TypeOf((*MockLeadRepository)(nil).UpsertValueTx), ctx, tx, leadID, fieldKey, value)
}

// WithTransaction mocks base method
func (m *MockLeadRepository) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WithTransaction", ctx, fn)
	ret0, _ := ret[0].(error)
	return ret0
}

// WithTransaction indicates an expected call of WithTransaction
func (mr *MockLeadRepositoryMockRecorder) WithTransaction(ctx, fn interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WithTransaction", reflect.TypeOf((*MockLeadRepository)(nil).WithTransaction), ctx, fn)
}
