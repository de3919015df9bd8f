package mocks

import (
	context "context"
	reflect "reflect"
	time "time"

	domain "github.com/altocrm/altocrm/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockJobService is a mock of JobService interface
type MockJobService struct {
	ctrl     *gomock.Controller
	recorder *MockJobServiceMockRecorder
}

// MockJobServiceMockRecorder is the mock recorder for MockJobService
type MockJobServiceMockRecorder struct {
	mock *MockJobService
}

// NewMockJobService creates a new mock instance
func NewMockJobService(ctrl *gomock.Controller) *MockJobService {
	mock := &MockJobService{ctrl: ctrl}
	mock.recorder = &MockJobServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockJobService) EXPECT() *MockJobServiceMockRecorder {
	return m.recorder
}

// CreateJob mocks base method
func (m *MockJobService) CreateJob(ctx context.Context, job *domain.Job) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateJob", ctx, job)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateJob indicates an expected call of CreateJob
func (mr *MockJobServiceMockRecorder) CreateJob(ctx, job interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateJob", reflect.TypeOf((*MockJobService)(nil).CreateJob), ctx, job)
}

// ExecuteJob mocks base method
func (m *MockJobService) ExecuteJob(ctx context.Context, job *domain.Job) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExecuteJob", ctx, job)
	ret0, _ := ret[0].(error)
	return ret0
}

// ExecuteJob indicates an expected call of ExecuteJob
func (mr *MockJobServiceMockRecorder) ExecuteJob(ctx, job interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExecuteJob", reflect.TypeOf((*MockJobService)(nil).ExecuteJob), ctx, job)
}

// ExecutePendingJobs mocks base method
func (m *MockJobService) ExecutePendingJobs(ctx context.Context, maxJobs int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExecutePendingJobs", ctx, maxJobs)
	ret0, _ := ret[0].(error)
	return ret0
}

// ExecutePendingJobs indicates an expected call of ExecutePendingJobs
func (mr *MockJobServiceMockRecorder) ExecutePendingJobs(ctx, maxJobs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExecutePendingJobs", reflect.TypeOf((*MockJobService)(nil).ExecutePendingJobs), ctx, maxJobs)
}

// GetJob mocks base method
func (m *MockJobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetJob", ctx, id)
	ret0, _ := ret[0].(*domain.Job)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetJob indicates an expected call of GetJob
func (mr *MockJobServiceMockRecorder) GetJob(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetJob", reflect.TypeOf((*MockJobService)(nil).GetJob), ctx, id)
}

// GetLastPollAt mocks base method
func (m *MockJobService) GetLastPollAt(ctx context.Context) (*time.Time, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLastPollAt", ctx)
	ret0, _ := ret[0].(*time.Time)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetLastPollAt indicates an expected call of GetLastPollAt
func (mr *MockJobServiceMockRecorder) GetLastPollAt(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLastPollAt", reflect.TypeOf((*MockJobService)(nil).GetLastPollAt), ctx)
}

// GetProcessor mocks base method
func (m *MockJobService) GetProcessor(kind string) (domain.JobProcessor, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetProcessor", kind)
	ret0, _ := ret[0].(domain.JobProcessor)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetProcessor indicates an expected call of GetProcessor
func (mr *MockJobServiceMockRecorder) GetProcessor(kind interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetProcessor", reflect.TypeOf((*MockJobService)(nil).GetProcessor), kind)
}

// ListJobs mocks base method
func (m *MockJobService) ListJobs(ctx context.Context, filter domain.JobFilter) (*domain.JobListResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListJobs", ctx, filter)
	ret0, _ := ret[0].(*domain.JobListResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListJobs indicates an expected call of ListJobs
func (mr *MockJobServiceMockRecorder) ListJobs(ctx, filter interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListJobs", reflect.TypeOf((*MockJobService)(nil).ListJobs), ctx, filter)
}

// RegisterProcessor mocks base method
func (m *MockJobService) RegisterProcessor(processor domain.JobProcessor) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "RegisterProcessor", processor)
}

// RegisterProcessor indicates an expected call of RegisterProcessor
func (mr *MockJobServiceMockRecorder) RegisterProcessor(processor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RegisterProcessor", reflect.TypeOf((*MockJobService)(nil).RegisterProcessor), processor)
}

// RetryJob mocks base method
func (m *MockJobService) RetryJob(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RetryJob", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// RetryJob indicates an expected call of RetryJob
func (mr *MockJobServiceMockRecorder) RetryJob(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RetryJob", reflect.TypeOf((*MockJobService)(nil).RetryJob), ctx, id)
}
