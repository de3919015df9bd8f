package mocks

import (
	context "context"
	reflect "reflect"
	time "time"

	domain "github.com/altocrm/altocrm/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockFieldRepository is a mock of FieldRepository interface
type MockFieldRepository struct {
	ctrl     *gomock.Controller
	recorder *MockFieldRepositoryMockRecorder
}

// MockFieldRepositoryMockRecorder is the mock recorder for MockFieldRepository
type MockFieldRepositoryMockRecorder struct {
	mock *MockFieldRepository
}

// NewMockFieldRepository creates a new mock instance
func NewMockFieldRepository(ctrl *gomock.Controller) *MockFieldRepository {
	mock := &MockFieldRepository{ctrl: ctrl}
	mock.recorder = &MockFieldRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockFieldRepository) EXPECT() *MockFieldRepositoryMockRecorder {
	return m.recorder
}

// Archive mocks base method
func (m *MockFieldRepository) Archive(ctx context.Context, key string, archivedAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Archive", ctx, key, archivedAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// Archive indicates an expected call of Archive
func (mr *MockFieldRepositoryMockRecorder) Archive(ctx, key, archivedAt interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Archive", reflect.TypeOf((*MockFieldRepository)(nil).Archive), ctx, key, archivedAt)
}

// Create mocks base method
func (m *MockFieldRepository) Create(ctx context.Context, field *domain.Field) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, field)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create
func (mr *MockFieldRepositoryMockRecorder) Create(ctx, field interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockFieldRepository)(nil).Create), ctx, field)
}

// Get mocks base method
func (m *MockFieldRepository) Get(ctx context.Context, key string) (*domain.Field, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, key)
	ret0, _ := ret[0].(*domain.Field)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get
func (mr *MockFieldRepositoryMockRecorder) Get(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockFieldRepository)(nil).Get), ctx, key)
}

// List mocks base method
func (m *MockFieldRepository) List(ctx context.Context, includeArchived bool) ([]*domain.Field, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, includeArchived)
	ret0, _ := ret[0].([]*domain.Field)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List
func (mr *MockFieldRepositoryMockRecorder) List(ctx, includeArchived interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockFieldRepository)(nil).List), ctx, includeArchived)
}

// Update mocks base method
func (m *MockFieldRepository) Update(ctx context.Context, field *domain.Field) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, field)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update
func (mr *MockFieldRepositoryMockRecorder) Update(ctx, field interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockFieldRepository)(nil).Update), ctx, field)
}
