package charts_test

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"reports/src/schemas"
	"reports/src/services/charts"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderChart(ctx context.Context, payload schemas.ReportPayload, reportType schemas.ReportType, width, height int) ([]byte, error) {
	args := m.Called(ctx, payload, reportType, width, height)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type failingStore struct{}

func (failingStore) GetBytes(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (failingStore) SetBytes(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func salesPayload() *schemas.SalesPayload {
	return &schemas.SalesPayload{Data: []schemas.SalesRow{
		{Date: "2024-01-01", InvoiceNumber: "INV-1", Total: decimal.NewFromInt(150000)},
		{Date: "2024-01-02", InvoiceNumber: "INV-2", Total: decimal.NewFromInt(90000)},
		{Date: "2024-01-01", InvoiceNumber: "INV-3", Total: decimal.NewFromInt(20000)},
	}}
}

func TestRendererProducesPNG(t *testing.T) {
	r := charts.NewRenderer()
	cases := map[schemas.ReportType]schemas.ReportPayload{
		schemas.ReportSales: salesPayload(),
		schemas.ReportIncomeExpense: &schemas.IncomeExpensePayload{Report: schemas.IncomeExpenseData{
			TotalIncome:  decimal.NewFromInt(500000),
			TotalExpense: decimal.NewFromInt(200000),
			NetIncome:    decimal.NewFromInt(300000),
		}},
		schemas.ReportProducts: &schemas.ProductsPayload{Data: []schemas.ProductRow{
			{Code: "P1", Name: "Widget", Revenue: decimal.NewFromInt(50000)},
			{Code: "P2", Name: "Gadget", Revenue: decimal.NewFromInt(75000)},
		}},
	}

	for rt, payload := range cases {
		t.Run(string(rt), func(t *testing.T) {
			image, err := r.RenderChart(context.Background(), payload, rt, 600, 300)
			require.NoError(t, err)

			cfg, err := png.DecodeConfig(bytes.NewReader(image))
			require.NoError(t, err)
			assert.Equal(t, 600, cfg.Width)
			assert.Equal(t, 300, cfg.Height)
		})
	}
}

func TestRendererRejectsEmptySeries(t *testing.T) {
	r := charts.NewRenderer()

	_, err := r.RenderChart(context.Background(), &schemas.SalesPayload{}, schemas.ReportSales, 600, 300)
	assert.ErrorIs(t, err, charts.ErrNothingToPlot)

	_, err = r.RenderChart(context.Background(), &schemas.IncomeExpensePayload{}, schemas.ReportIncomeExpense, 600, 300)
	assert.ErrorIs(t, err, charts.ErrNothingToPlot)
}

func TestRendererRejectsTablesOnlyReports(t *testing.T) {
	_, err := charts.NewRenderer().RenderChart(context.Background(), &schemas.CustomersPayload{}, schemas.ReportCustomers, 600, 300)
	assert.Error(t, err)
}

func TestCachedRendererReusesImages(t *testing.T) {
	next := new(MockRenderer)
	payload := salesPayload()
	next.On("RenderChart", mock.Anything, payload, schemas.ReportSales, 600, 300).Return([]byte("png"), nil).Once()

	cached := charts.NewCachedRenderer(next, charts.NewMemoryStore(), time.Minute)

	first, err := cached.RenderChart(context.Background(), payload, schemas.ReportSales, 600, 300)
	require.NoError(t, err)
	second, err := cached.RenderChart(context.Background(), payload, schemas.ReportSales, 600, 300)
	require.NoError(t, err)

	assert.Equal(t, []byte("png"), first)
	assert.Equal(t, first, second)
	next.AssertExpectations(t)
}

func TestCachedRendererKeysBySize(t *testing.T) {
	next := new(MockRenderer)
	payload := salesPayload()
	next.On("RenderChart", mock.Anything, payload, schemas.ReportSales, 600, 300).Return([]byte("small"), nil).Once()
	next.On("RenderChart", mock.Anything, payload, schemas.ReportSales, 1200, 600).Return([]byte("large"), nil).Once()

	cached := charts.NewCachedRenderer(next, charts.NewMemoryStore(), time.Minute)

	small, err := cached.RenderChart(context.Background(), payload, schemas.ReportSales, 600, 300)
	require.NoError(t, err)
	large, err := cached.RenderChart(context.Background(), payload, schemas.ReportSales, 1200, 600)
	require.NoError(t, err)

	assert.Equal(t, "small", string(small))
	assert.Equal(t, "large", string(large))
	next.AssertExpectations(t)
}

func TestCachedRendererBypassesBrokenStore(t *testing.T) {
	next := new(MockRenderer)
	payload := salesPayload()
	next.On("RenderChart", mock.Anything, payload, schemas.ReportSales, 600, 300).Return([]byte("png"), nil).Twice()

	cached := charts.NewCachedRenderer(next, failingStore{}, time.Minute)

	for i := 0; i < 2; i++ {
		image, err := cached.RenderChart(context.Background(), payload, schemas.ReportSales, 600, 300)
		require.NoError(t, err)
		assert.Equal(t, []byte("png"), image)
	}
	next.AssertExpectations(t)
}

func TestCachedRendererDoesNotCacheFailures(t *testing.T) {
	next := new(MockRenderer)
	payload := salesPayload()
	next.On("RenderChart", mock.Anything, payload, schemas.ReportSales, 600, 300).Return(nil, errors.New("boom")).Twice()

	cached := charts.NewCachedRenderer(next, charts.NewMemoryStore(), time.Minute)

	for i := 0; i < 2; i++ {
		_, err := cached.RenderChart(context.Background(), payload, schemas.ReportSales, 600, 300)
		assert.Error(t, err)
	}
	next.AssertExpectations(t)
}
