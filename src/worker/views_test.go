package worker_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reports/src/worker"
	"reports/src/worker/handlers"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockController struct {
	mock.Mock
}

func (m *MockController) LoadAllReportSchedule(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockController) LoadReportScheduleByID(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func TestWorkerRoutes(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	controller := &MockController{}
	controller.On("LoadAllReportSchedule", mock.Anything).Return(nil)
	controller.On("LoadReportScheduleByID", mock.Anything, uint(3)).Return(nil)
	controller.On("LoadReportScheduleByID", mock.Anything, uint(4)).Return(gorm.ErrRecordNotFound)

	server := worker.NewServerWithHandler(&handlers.Handler{Controller: controller}, logger)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"alive", http.MethodGet, "/alive", http.StatusOK},
		{"load all", http.MethodPost, "/api/schedules/load", http.StatusOK},
		{"load one", http.MethodPost, "/api/schedules/3/load", http.StatusOK},
		{"missing schedule", http.MethodPost, "/api/schedules/4/load", http.StatusNotFound},
		{"bad id", http.MethodPost, "/api/schedules/x/load", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
	controller.AssertExpectations(t)
}
