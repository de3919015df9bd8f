package mocks

import (
	context "context"
	sql "database/sql"
	reflect "reflect"
	time "time"

	domain "github.com/altocrm/altocrm/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockJobRepository is a mock of JobRepository interface
type MockJobRepository struct {
	ctrl     *gomock.Controller
	recorder *MockJobRepositoryMockRecorder
}

// MockJobRepositoryMockRecorder is the mock recorder for MockJobRepository
type MockJobRepositoryMockRecorder struct {
	mock *MockJobRepository
}

// NewMockJobRepository creates a new mock instance
func NewMockJobRepository(ctrl *gomock.Controller) *MockJobRepository {
	mock := &MockJobRepository{ctrl: ctrl}
	mock.recorder = &MockJobRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockJobRepository) EXPECT() *MockJobRepositoryMockRecorder {
	return m.recorder
}

// ClaimDueJobs mocks base method
func (m *MockJobRepository) ClaimDueJobs(ctx context.Context, limit int) ([]*domain.Job, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimDueJobs", ctx, limit)
	ret0, _ := ret[0].([]*domain.Job)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimDueJobs indicates an expected call of ClaimDueJobs
func (mr *MockJobRepositoryMockRecorder) ClaimDueJobs(ctx, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimDueJobs", reflect.TypeOf((*MockJobRepository)(nil).ClaimDueJobs), ctx, limit)
}

// Create mocks base method
func (m *MockJobRepository) Create(ctx context.Context, job *domain.Job) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, job)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create
func (mr *MockJobRepositoryMockRecorder) Create(ctx, job interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockJobRepository)(nil).Create), ctx, job)
}

// CreateTx mocks base method
func (m *MockJobRepository) CreateTx(ctx context.Context, tx *sql.Tx, job *domain.Job) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateTx", ctx, tx, job)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateTx indicates an expected call of CreateTx
func (mr *MockJobRepositoryMockRecorder) CreateTx(ctx, tx, job interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateTx", reflect.TypeOf((*MockJobRepository)(nil).CreateTx), ctx, tx, job)
}

// Get mocks base method
func (m *MockJobRepository) Get(ctx context.Context, id string) (*domain.Job, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, id)
	ret0, _ := ret[0].(*domain.Job)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get
func (mr *MockJobRepositoryMockRecorder) Get(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockJobRepository)(nil).Get), ctx, id)
}

// List mocks base method
func (m *MockJobRepository) List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, filter)
	ret0, _ := ret[0].([]*domain.Job)
	ret1, _ := ret[1].(int)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// List indicates an expected call of List
func (mr *MockJobRepositoryMockRecorder) List(ctx, filter interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockJobRepository)(nil).List), ctx, filter)
}

// MarkAsDone mocks base method
func (m *MockJobRepository) MarkAsDone(ctx context.Context, id string, result *domain.JobResult) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkAsDone", ctx, id, result)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkAsDone indicates an expected call of MarkAsDone
func (mr *MockJobRepositoryMockRecorder) MarkAsDone(ctx, id, result interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkAsDone", reflect.TypeOf((*MockJobRepository)(nil).MarkAsDone), ctx, id, result)
}

// MarkAsFailed mocks base method
func (m *MockJobRepository) MarkAsFailed(ctx context.Context, id, errorMsg string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkAsFailed", ctx, id, errorMsg)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkAsFailed indicates an expected call of MarkAsFailed
func (mr *MockJobRepositoryMockRecorder) MarkAsFailed(ctx, id, errorMsg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkAsFailed", reflect.TypeOf((*MockJobRepository)(nil).MarkAsFailed), ctx, id, errorMsg)
}

// MarkAsPending mocks base method
func (m *MockJobRepository) MarkAsPending(ctx context.Context, id string, progress float64, payload *domain.JobPayload) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkAsPending", ctx, id, progress, payload)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkAsPending indicates an expected call of MarkAsPending
func (mr *MockJobRepositoryMockRecorder) MarkAsPending(ctx, id, progress, payload interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkAsPending", reflect.TypeOf((*MockJobRepository)(nil).MarkAsPending), ctx, id, progress, payload)
}

// ReapStaleJobs mocks base method
func (m *MockJobRepository) ReapStaleJobs(ctx context.Context, olderThan time.Duration) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReapStaleJobs", ctx, olderThan)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ReapStaleJobs indicates an expected call of ReapStaleJobs
func (mr *MockJobRepositoryMockRecorder) ReapStaleJobs(ctx, olderThan interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReapStaleJobs", reflect.TypeOf((*MockJobRepository)(nil).ReapStaleJobs), ctx, olderThan)
}

// ResetForRetry mocks base method
func (m *MockJobRepository) ResetForRetry(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResetForRetry", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// ResetForRetry indicates an expected call of ResetForRetry
func (mr *MockJobRepositoryMockRecorder) ResetForRetry(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResetForRetry", reflect.TypeOf((*MockJobRepository)(nil).ResetForRetry), ctx, id)
}

// SaveProgress mocks base method
func (m *MockJobRepository) SaveProgress(ctx context.Context, id string, progress float64, payload *domain.JobPayload) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SaveProgress", ctx, id, progress, payload)
	ret0, _ := ret[0].(error)
	return ret0
}

// SaveProgress indicates an expected call of SaveProgress
func (mr *MockJobRepositoryMockRecorder) SaveProgress(ctx, id, progress, payload interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SaveProgress", reflect.TypeOf((*MockJobRepository)(nil).SaveProgress), ctx, id, progress, payload)
}

// WithTransaction mocks base method
func (m *MockJobRepository) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WithTransaction", ctx, fn)
	ret0, _ := ret[0].(error)
	return ret0
}

// WithTransaction indicates an expected call of WithTransaction
func (mr *MockJobRepositoryMockRecorder) WithTransaction(ctx, fn interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WithTransaction", reflect.TypeOf((*MockJobRepository)(nil).WithTransaction), ctx, fn)
}
