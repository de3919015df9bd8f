package mocks

import (
	context "context"
	io "io"
	reflect "reflect"

	domain "github.com/altocrm/altocrm/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockLeadService is a mock of LeadService interface
type MockLeadService struct {
	ctrl     *gomock.Controller
	recorder *MockLeadServiceMockRecorder
}

// MockLeadServiceMockRecorder is the mock recorder for MockLeadService
type MockLeadServiceMockRecorder struct {
	mock *MockLeadService
}

// NewMockLeadService creates a new mock instance
func NewMockLeadService(ctrl *gomock.Controller) *MockLeadService {
	mock := &MockLeadService{ctrl: ctrl}
	mock.recorder = &MockLeadServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockLeadService) EXPECT() *MockLeadServiceMockRecorder {
	return m.recorder
}

// CreateLead mocks base method
func (m *MockLeadService) CreateLead(ctx context.Context, req *domain.CreateLeadRequest) (*domain.Lead, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateLead", ctx, req)
	ret0, _ := ret[0].(*domain.Lead)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateLead indicates an expected call of CreateLead
func (mr *MockLeadServiceMockRecorder) CreateLead(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateLead", reflect.TypeOf((*MockLeadService)(nil).CreateLead), ctx, req)
}

// DeleteLead mocks base method
func (m *MockLeadService) DeleteLead(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteLead", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteLead indicates an expected call of DeleteLead
func (mr *MockLeadServiceMockRecorder) DeleteLead(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteLead", reflect.TypeOf((*MockLeadService)(nil).DeleteLead), ctx, id)
}

// ExportLeads mocks base method
func (m *MockLeadService) ExportLeads(ctx context.Context, req *domain.ExportLeadsRequest, w io.Writer) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExportLeads", ctx, req, w)
	ret0, _ := ret[0].(error)
	return ret0
}

// ExportLeads indicates an expected call of ExportLeads
func (mr *MockLeadServiceMockRecorder) ExportLeads(ctx, req, w interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExportLeads", reflect.TypeOf((*MockLeadService)(nil).ExportLeads), ctx, req, w)
}

// GetBoard mocks base method
func (m *MockLeadService) GetBoard(ctx context.Context, req *domain.GetBoardRequest) (*domain.BoardResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBoard", ctx, req)
	ret0, _ := ret[0].(*domain.BoardResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetBoard indicates an expected call of GetBoard
func (mr *MockLeadServiceMockRecorder) GetBoard(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBoard", reflect.TypeOf((*MockLeadService)(nil).GetBoard), ctx, req)
}

// GetLead mocks base method
func (m *MockLeadService) GetLead(ctx context.Context, id string, includeDeleted bool) (*domain.Lead, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLead", ctx, id, includeDeleted)
	ret0, _ := ret[0].(*domain.Lead)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetLead indicates an expected call of GetLead
func (mr *MockLeadServiceMockRecorder) GetLead(ctx, id, includeDeleted interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLead", reflect.TypeOf((*MockLeadService)(nil).GetLead), ctx, id, includeDeleted)
}

// GetLeads mocks base method
func (m *MockLeadService) GetLeads(ctx context.Context, req *domain.GetLeadsRequest) (*domain.GetLeadsResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLeads", ctx, req)
	ret0, _ := ret[0].(*domain.GetLeadsResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetLeads indicates an expected call of GetLeads
func (mr *MockLeadServiceMockRecorder) GetLeads(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLeads", reflect.TypeOf((*MockLeadService)(nil).GetLeads), ctx, req)
}

// ListLeadHistory mocks base method
func (m *MockLeadService) ListLeadHistory(ctx context.Context, req *domain.ListLeadHistoryRequest) (*domain.ListLeadHistoryResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListLeadHistory", ctx, req)
	ret0, _ := ret[0].(*domain.ListLeadHistoryResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListLeadHistory indicates an expected call of ListLeadHistory
func (mr *MockLeadServiceMockRecorder) ListLeadHistory(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListLeadHistory", reflect.TypeOf((*MockLeadService)(nil).ListLeadHistory), ctx, req)
}

// LockField mocks base method
func (m *MockLeadService) LockField(ctx context.Context, leadID, fieldKey string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LockField", ctx, leadID, fieldKey)
	ret0, _ := ret[0].(error)
	return ret0
}

// LockField indicates an expected call of LockField
func (mr *MockLeadServiceMockRecorder) LockField(ctx, leadID, fieldKey interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LockField", reflect.TypeOf((*MockLeadService)(nil).LockField), ctx, leadID, fieldKey)
}

// MoveStage mocks base method
func (m *MockLeadService) MoveStage(ctx context.Context, req *domain.MoveStageRequest) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MoveStage", ctx, req)
	ret0, _ := ret[0].(error)
	return ret0
}

// MoveStage indicates an expected call of MoveStage
func (mr *MockLeadServiceMockRecorder) MoveStage(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MoveStage", reflect.TypeOf((*MockLeadService)(nil).MoveStage), ctx, req)
}

// PurgeLead mocks base method
func (m *MockLeadService) PurgeLead(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PurgeLead", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// PurgeLead indicates an expected call of PurgeLead
func (mr *MockLeadServiceMockRecorder) PurgeLead(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PurgeLead", reflect.TypeOf((*MockLeadService)(nil).PurgeLead), ctx, id)
}

// RestoreLead mocks base method
func (m *MockLeadService) RestoreLead(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RestoreLead", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// RestoreLead indicates an expected call of RestoreLead
func (mr *MockLeadServiceMockRecorder) RestoreLead(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RestoreLead", reflect.TypeOf((*MockLeadService)(nil).RestoreLead), ctx, id)
}

// UndoLastChange mocks base method
func (m *MockLeadService) UndoLastChange(ctx context.Context, leadID string) (*domain.AuditEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UndoLastChange", ctx, leadID)
	ret0, _ := ret[0].(*domain.AuditEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UndoLastChange indicates an expected call of UndoLastChange
func (mr *MockLeadServiceMockRecorder) UndoLastChange(ctx, leadID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UndoLastChange", reflect.TypeOf((*MockLeadService)(nil).UndoLastChange), ctx, leadID)
}

// UnlockField mocks base method
func (m *MockLeadService) UnlockField(ctx context.Context, leadID, fieldKey string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UnlockField", ctx, leadID, fieldKey)
	ret0, _ := ret[0].(error)
	return ret0
}

// UnlockField indicates an expected call of UnlockField
func (mr *MockLeadServiceMockRecorder) UnlockField(ctx, leadID, fieldKey interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UnlockField", reflect.TypeOf((*MockLeadService)(nil).UnlockField), ctx, leadID, fieldKey)
}

// UpdateLead mocks base method
func (m *MockLeadService) UpdateLead(ctx context.Context, req *domain.UpdateLeadRequest) (*domain.Lead, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateLead", ctx, req)
	ret0, _ := ret[0].(*domain.Lead)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateLead indicates an expected call of UpdateLead
func (mr *MockLeadServiceMockRecorder) UpdateLead(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateLead", reflect.TypeOf((*MockLeadService)(nil).UpdateLead), ctx, req)
}
