package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/altocrm/altocrm/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockFieldService is a mock of FieldService interface
type MockFieldService struct {
	ctrl     *gomock.Controller
	recorder *MockFieldServiceMockRecorder
}

// MockFieldServiceMockRecorder is the mock recorder for MockFieldService
type MockFieldServiceMockRecorder struct {
	mock *MockFieldService
}

// NewMockFieldService creates a new mock instance
func NewMockFieldService(ctrl *gomock.Controller) *MockFieldService {
	mock := &MockFieldService{ctrl: ctrl}
	mock.recorder = &MockFieldServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockFieldService) EXPECT() *MockFieldServiceMockRecorder {
	return m.recorder
}

// ArchiveField mocks base method
func (m *MockFieldService) ArchiveField(ctx context.Context, key string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ArchiveField", ctx, key)
	ret0, _ := ret[0].(error)
	return ret0
}

// ArchiveField indicates an expected call of ArchiveField
func (mr *MockFieldServiceMockRecorder) ArchiveField(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ArchiveField", reflect.TypeOf((*MockFieldService)(nil).ArchiveField), ctx, key)
}

// CreateField mocks base method
func (m *MockFieldService) CreateField(ctx context.Context, req *domain.CreateFieldRequest) (*domain.Field, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateField", ctx, req)
	ret0, _ := ret[0].(*domain.Field)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateField indicates an expected call of CreateField
func (mr *MockFieldServiceMockRecorder) CreateField(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateField", reflect.TypeOf((*MockFieldService)(nil).CreateField), ctx, req)
}

// GetActiveFields mocks base method
func (m *MockFieldService) GetActiveFields(ctx context.Context) (map[string]*domain.Field, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActiveFields", ctx)
	ret0, _ := ret[0].(map[string]*domain.Field)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActiveFields indicates an expected call of GetActiveFields
func (mr *MockFieldServiceMockRecorder) GetActiveFields(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActiveFields", reflect.TypeOf((*MockFieldService)(nil).GetActiveFields), ctx)
}

// ListFields mocks base method
func (m *MockFieldService) ListFields(ctx context.Context, includeArchived bool) ([]*domain.Field, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListFields", ctx, includeArchived)
	ret0, _ := ret[0].([]*domain.Field)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListFields indicates an expected call of ListFields
func (mr *MockFieldServiceMockRecorder) ListFields(ctx, includeArchived interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListFields", reflect.TypeOf((*MockFieldService)(nil).ListFields), ctx, includeArchived)
}

// UpdateField mocks base method
func (m *MockFieldService) UpdateField(ctx context.Context, req *domain.UpdateFieldRequest) (*domain.Field, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateField", ctx, req)
	ret0, _ := ret[0].(*domain.Field)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateField indicates an expected call of UpdateField
func (mr *MockFieldServiceMockRecorder) UpdateField(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateField", reflect.TypeOf((*MockFieldService)(nil).UpdateField), ctx, req)
}
