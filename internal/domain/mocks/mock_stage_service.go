package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/altocrm/altocrm/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockStageService is a mock of StageService interface
type MockStageService struct {
	ctrl     *gomock.Controller
	recorder *MockStageServiceMockRecorder
}

// MockStageServiceMockRecorder is the mock recorder for MockStageService
type MockStageServiceMockRecorder struct {
	mock *MockStageService
}

// NewMockStageService creates a new mock instance
func NewMockStageService(ctrl *gomock.Controller) *MockStageService {
	mock := &MockStageService{ctrl: ctrl}
	mock.recorder = &MockStageServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockStageService) EXPECT() *MockStageServiceMockRecorder {
	return m.recorder
}

// CreateStage mocks base method
func (m *MockStageService) CreateStage(ctx context.Context, req *domain.CreateStageRequest) (*domain.Stage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateStage", ctx, req)
	ret0, _ := ret[0].(*domain.Stage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateStage indicates an expected call of CreateStage
func (mr *MockStageServiceMockRecorder) CreateStage(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateStage", reflect.TypeOf((*MockStageService)(nil).CreateStage), ctx, req)
}

// DeleteStage mocks base method
func (m *MockStageService) DeleteStage(ctx context.Context, req *domain.DeleteStageRequest) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteStage", ctx, req)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteStage indicates an expected call of DeleteStage
func (mr *MockStageServiceMockRecorder) DeleteStage(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteStage", reflect.TypeOf((*MockStageService)(nil).DeleteStage), ctx, req)
}

// GetStage mocks base method
func (m *MockStageService) GetStage(ctx context.Context, key string) (*domain.Stage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetStage", ctx, key)
	ret0, _ := ret[0].(*domain.Stage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetStage indicates an expected call of GetStage
func (mr *MockStageServiceMockRecorder) GetStage(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetStage", reflect.TypeOf((*MockStageService)(nil).GetStage), ctx, key)
}

// ListStages mocks base method
func (m *MockStageService) ListStages(ctx context.Context) ([]*domain.Stage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListStages", ctx)
	ret0, _ := ret[0].([]*domain.Stage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListStages indicates an expected call of ListStages
func (mr *MockStageServiceMockRecorder) ListStages(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListStages", reflect.TypeOf((*MockStageService)(nil).ListStages), ctx)
}

// UpdateStage mocks base method
func (m *MockStageService) UpdateStage(ctx context.Context, req *domain.UpdateStageRequest) (*domain.Stage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateStage", ctx, req)
	ret0, _ := ret[0].(*domain.Stage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateStage indicates an expected call of UpdateStage
func (mr *MockStageServiceMockRecorder) UpdateStage(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateStage", reflect.TypeOf((*MockStageService)(nil).UpdateStage), ctx, req)
}
