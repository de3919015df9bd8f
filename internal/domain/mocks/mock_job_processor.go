package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/altocrm/altocrm/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockJobProcessor is a mock of JobProcessor interface
type MockJobProcessor struct {
	ctrl     *gomock.Controller
	recorder *MockJobProcessorMockRecorder
}

// MockJobProcessorMockRecorder is the mock recorder for MockJobProcessor
type MockJobProcessorMockRecorder struct {
	mock *MockJobProcessor
}

// NewMockJobProcessor creates a new mock instance
func NewMockJobProcessor(ctrl *gomock.Controller) *MockJobProcessor {
	mock := &MockJobProcessor{ctrl: ctrl}
	mock.recorder = &MockJobProcessorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockJobProcessor) EXPECT() *MockJobProcessorMockRecorder {
	return m.recorder
}

// CanProcess mocks base method
func (m *MockJobProcessor) CanProcess(kind string) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CanProcess", kind)
	ret0, _ := ret[0].(bool)
	return ret0
}

// CanProcess indicates an expected call of CanProcess
func (mr *MockJobProcessorMockRecorder) CanProcess(kind interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CanProcess", reflect.TypeOf((*MockJobProcessor)(nil).CanProcess), kind)
}

// Process mocks base method
func (m *MockJobProcessor) Process(ctx context.Context, job *domain.Job) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Process", ctx, job)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Process indicates an expected call of Process
func (mr *MockJobProcessorMockRecorder) Process(ctx, job interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Process", reflect.TypeOf((*MockJobProcessor)(nil).Process), ctx, job)
}
