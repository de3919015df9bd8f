package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/internal/domain/mocks"
	pkgmocks "github.com/altocrm/altocrm/pkg/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

const testJobID = "9f8e7d6c-5b4a-4392-8170-6e5d4c3b2a19"

func setupJobHandlerTest(ctrl *gomock.Controller) (*mocks.MockJobService, *JobHandler) {
	mockService := mocks.NewMockJobService(ctrl)

	mockLogger := pkgmocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().WithField(gomock.Any(), gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	return mockService, NewJobHandler(mockService, mockLogger)
}

func TestJobHandler_RegisterRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, handler := setupJobHandlerTest(ctrl)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	endpoints := []string{
		"/api/jobs.list",
		"/api/jobs.get",
		"/api/jobs.retry",
		"/api/jobs.run",
	}

	for _, endpoint := range endpoints {
		h, pattern := mux.Handler(&http.Request{Method: http.MethodGet, URL: &url.URL{Path: endpoint}})
		assert.NotNil(t, h, "expected handler for %s", endpoint)
		assert.Equal(t, endpoint, pattern)
	}
}

func TestJobHandler_HandleList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService, handler := setupJobHandlerTest(ctrl)

	t.Run("lists jobs with default limit", func(t *testing.T) {
		mockService.EXPECT().
			ListJobs(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, filter domain.JobFilter) (*domain.JobListResponse, error) {
				assert.Equal(t, 100, filter.Limit)
				assert.Empty(t, filter.Status)
				return &domain.JobListResponse{
					Jobs: []*domain.Job{
						{ID: testJobID, Kind: domain.JobKindLeadsImport, Status: domain.JobStatusDone},
					},
					TotalCount: 1,
					Limit:      100,
				}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/api/jobs.list", nil)
		rec := httptest.NewRecorder()

		handler.handleList(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeJSONBody(t, rec)
		assert.Len(t, body["jobs"], 1)
		assert.Equal(t, float64(1), body["total_count"])
	})

	t.Run("status and kind filters", func(t *testing.T) {
		mockService.EXPECT().
			ListJobs(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, filter domain.JobFilter) (*domain.JobListResponse, error) {
				assert.Equal(t, []domain.JobStatus{domain.JobStatusPending, domain.JobStatusFailed}, filter.Status)
				assert.Equal(t, []string{domain.JobKindLeadsImport}, filter.Kind)
				assert.Equal(t, 10, filter.Limit)
				return &domain.JobListResponse{Jobs: []*domain.Job{}}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/api/jobs.list?status=pending,failed&kind=leads_import&limit=10", nil)
		rec := httptest.NewRecorder()

		handler.handleList(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/jobs.list?limit=abc", nil)
		rec := httptest.NewRecorder()

		handler.handleList(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockService.EXPECT().
			ListJobs(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("db down"))

		req := httptest.NewRequest(http.MethodGet, "/api/jobs.list", nil)
		rec := httptest.NewRecorder()

		handler.handleList(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/jobs.list", nil)
		rec := httptest.NewRecorder()

		handler.handleList(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestJobHandler_HandleGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService, handler := setupJobHandlerTest(ctrl)

	t.Run("returns the job", func(t *testing.T) {
		mockService.EXPECT().
			GetJob(gomock.Any(), testJobID).
			Return(&domain.Job{ID: testJobID, Kind: domain.JobKindLeadEnrich, Status: domain.JobStatusProcessing, Progress: 40}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/jobs.get?id="+testJobID, nil)
		rec := httptest.NewRecorder()

		handler.handleGet(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeJSONBody(t, rec)
		assert.Contains(t, body, "job")
	})

	t.Run("job not found", func(t *testing.T) {
		mockService.EXPECT().
			GetJob(gomock.Any(), testJobID).
			Return(nil, &domain.ErrJobNotFound{Message: "job not found"})

		req := httptest.NewRequest(http.MethodGet, "/api/jobs.get?id="+testJobID, nil)
		rec := httptest.NewRecorder()

		handler.handleGet(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeJSONBody(t, rec)
		assert.Equal(t, "Job not found", body["error"])
	})

	t.Run("missing id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/jobs.get", nil)
		rec := httptest.NewRecorder()

		handler.handleGet(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/jobs.get?id="+testJobID, nil)
		rec := httptest.NewRecorder()

		handler.handleGet(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestJobHandler_HandleRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService, handler := setupJobHandlerTest(ctrl)

	t.Run("requeues a failed job", func(t *testing.T) {
		mockService.EXPECT().RetryJob(gomock.Any(), testJobID).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs.retry", strings.NewReader(`{"id": "`+testJobID+`"}`))
		rec := httptest.NewRecorder()

		handler.handleRetry(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeJSONBody(t, rec)
		assert.Equal(t, true, body["success"])
	})

	t.Run("missing job id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/jobs.retry", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		handler.handleRetry(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeJSONBody(t, rec)
		assert.Equal(t, "Missing job ID", body["error"])
	})

	t.Run("job not found", func(t *testing.T) {
		mockService.EXPECT().
			RetryJob(gomock.Any(), testJobID).
			Return(&domain.ErrJobNotFound{Message: "job not found"})

		req := httptest.NewRequest(http.MethodPost, "/api/jobs.retry", strings.NewReader(`{"id": "`+testJobID+`"}`))
		rec := httptest.NewRecorder()

		handler.handleRetry(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("job is not retryable", func(t *testing.T) {
		mockService.EXPECT().
			RetryJob(gomock.Any(), testJobID).
			Return(domain.NewValidationError("only failed jobs can be retried"))

		req := httptest.NewRequest(http.MethodPost, "/api/jobs.retry", strings.NewReader(`{"id": "`+testJobID+`"}`))
		rec := httptest.NewRecorder()

		handler.handleRetry(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeJSONBody(t, rec)
		assert.Contains(t, body["error"], "only failed jobs")
	})

	t.Run("invalid request body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/jobs.retry", strings.NewReader("invalid json"))
		rec := httptest.NewRecorder()

		handler.handleRetry(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/jobs.retry", nil)
		rec := httptest.NewRecorder()

		handler.handleRetry(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestJobHandler_HandleRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService, handler := setupJobHandlerTest(ctrl)

	t.Run("polls the queue without a body", func(t *testing.T) {
		mockService.EXPECT().ExecutePendingJobs(gomock.Any(), 0).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs.run", nil)
		rec := httptest.NewRecorder()

		handler.handleRun(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeJSONBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["elapsed"])
	})

	t.Run("max_jobs passes through", func(t *testing.T) {
		mockService.EXPECT().ExecutePendingJobs(gomock.Any(), 5).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs.run", strings.NewReader(`{"max_jobs": 5}`))
		rec := httptest.NewRecorder()

		handler.handleRun(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("execution failure", func(t *testing.T) {
		mockService.EXPECT().
			ExecutePendingJobs(gomock.Any(), 0).
			Return(errors.New("db down"))

		req := httptest.NewRequest(http.MethodPost, "/api/jobs.run", nil)
		rec := httptest.NewRecorder()

		handler.handleRun(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("invalid request body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/jobs.run", strings.NewReader("invalid json"))
		rec := httptest.NewRecorder()

		handler.handleRun(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/jobs.run", nil)
		rec := httptest.NewRecorder()

		handler.handleRun(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
