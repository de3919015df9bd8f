package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/altocrm/altocrm/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockStageRepository is a mock of StageRepository interface
type MockStageRepository struct {
	ctrl     *gomock.Controller
	recorder *MockStageRepositoryMockRecorder
}

// MockStageRepositoryMockRecorder is the mock recorder for MockStageRepository
type MockStageRepositoryMockRecorder struct {
	mock *MockStageRepository
}

// NewMockStageRepository creates a new mock instance
func NewMockStageRepository(ctrl *gomock.Controller) *MockStageRepository {
	mock := &MockStageRepository{ctrl: ctrl}
	mock.recorder = &MockStageRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockStageRepository) EXPECT() *MockStageRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method
func (m *MockStageRepository) Create(ctx context.Context, stage *domain.Stage) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, stage)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create
func (mr *MockStageRepositoryMockRecorder) Create(ctx, stage interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockStageRepository)(nil).Create), ctx, stage)
}

// DeleteWithMigration mocks base method
func (m *MockStageRepository) DeleteWithMigration(ctx context.Context, key, migrateTo string) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteWithMigration", ctx, key, migrateTo)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteWithMigration indicates an expected call of DeleteWithMigration
func (mr *MockStageRepositoryMockRecorder) DeleteWithMigration(ctx, key, migrateTo interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteWithMigration", reflect.TypeOf((*MockStageRepository)(nil).DeleteWithMigration), ctx, key, migrateTo)
}

// Get mocks base method
func (m *MockStageRepository) Get(ctx context.Context, key string) (*domain.Stage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, key)
	ret0, _ := ret[0].(*domain.Stage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get
func (mr *MockStageRepositoryMockRecorder) Get(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockStageRepository)(nil).Get), ctx, key)
}

// List mocks base method
func (m *MockStageRepository) List(ctx context.Context) ([]*domain.Stage, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx)
	ret0, _ := ret[0].([]*domain.Stage)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List
func (mr *MockStageRepositoryMockRecorder) List(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockStageRepository)(nil).List), ctx)
}

// Update mocks base method
func (m *MockStageRepository) Update(ctx context.Context, stage *domain.Stage) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, stage)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update
func (mr *MockStageRepositoryMockRecorder) Update(ctx, stage interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockStageRepository)(nil).Update), ctx, stage)
}
