package services_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reports/src/config"
	"reports/src/schemas"
	"reports/src/services"
	"reports/src/services/charts"
	"reports/src/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) GetReportData(ctx context.Context, token string, reportType schemas.ReportType, dateRange schemas.DateRange) (json.RawMessage, error) {
	args := m.Called(ctx, token, reportType, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

var period = schemas.DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Report.Locale = "id-ID"
	cfg.Report.CurrencySymbol = "Rp"
	cfg.Report.ChartWidth = 600
	cfg.Report.ChartHeight = 300
	return cfg
}

func newService(t *testing.T, client *MockBackend) *services.ReportService {
	service, err := services.NewReportService(testConfig(), client, charts.NewMemoryStore())
	require.NoError(t, err)
	return service
}

func TestExportFetchesPayloadFromBackend(t *testing.T) {
	client := new(MockBackend)
	client.On("GetReportData", mock.Anything, "user-token", schemas.ReportProducts, period).
		Return(json.RawMessage(`{"data": [{"code": "P1", "name": "Widget", "category": "Tools", "quantitySold": 5, "revenue": "50000"}]}`), nil)

	result, err := newService(t, client).Export(context.Background(), services.ExportInput{
		ReportType: schemas.ReportProducts,
		Format:     schemas.FormatPDF,
		DateRange:  period,
		Token:      "user-token",
	})
	require.NoError(t, err)

	assert.Equal(t, "laporan-products-2024-01-01-2024-01-31.pdf", result.Filename)
	assert.Equal(t, utils.ContentTypePDF, result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Data, []byte("%PDF")))
	client.AssertExpectations(t)
}

func TestExportUsesSuppliedPayload(t *testing.T) {
	client := new(MockBackend)

	result, err := newService(t, client).Export(context.Background(), services.ExportInput{
		ReportType: schemas.ReportSales,
		Format:     schemas.FormatXLSX,
		DateRange:  period,
		Payload:    json.RawMessage(`{"data": [{"date": "2024-01-02", "invoiceNumber": "INV-1", "customerName": "Budi", "total": 75000, "paymentMethod": "Tunai"}]}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "laporan-sales-2024-01-01-2024-01-31.xlsx", result.Filename)
	assert.Equal(t, utils.ContentTypeXLSX, result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Data, []byte("PK")))
	client.AssertNotCalled(t, "GetReportData", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExportUnknownTypeSkipsBackend(t *testing.T) {
	client := new(MockBackend)

	result, err := newService(t, client).Export(context.Background(), services.ExportInput{
		ReportType: schemas.ReportType("inventory"),
		Format:     schemas.FormatPDF,
		DateRange:  period,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Data)
	client.AssertNotCalled(t, "GetReportData", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExportErrors(t *testing.T) {
	t.Run("invalid date range", func(t *testing.T) {
		_, err := newService(t, new(MockBackend)).Export(context.Background(), services.ExportInput{
			ReportType: schemas.ReportSales,
			DateRange:  schemas.DateRange{StartDate: "2024-02-01", EndDate: "2024-01-01"},
		})
		var httpErr *utils.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := newService(t, new(MockBackend)).Export(context.Background(), services.ExportInput{
			ReportType: schemas.ReportSales,
			DateRange:  period,
			Payload:    json.RawMessage(`{"data": "oops"}`),
		})
		var httpErr *utils.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
	})

	t.Run("backend failure is returned as is", func(t *testing.T) {
		client := new(MockBackend)
		upstream := utils.BadGateway("backend error: db down")
		client.On("GetReportData", mock.Anything, "", schemas.ReportSales, period).Return(nil, upstream)

		_, err := newService(t, client).Export(context.Background(), services.ExportInput{
			ReportType: schemas.ReportSales,
			DateRange:  period,
		})
		assert.Equal(t, upstream, err)
	})
}

func TestNewReportServiceRejectsBadLocale(t *testing.T) {
	cfg := testConfig()
	cfg.Report.Locale = "not a locale!"
	_, err := services.NewReportService(cfg, nil, nil)
	assert.Error(t, err)
}
