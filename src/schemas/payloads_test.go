package schemas_test

import (
	"encoding/json"
	"reports/src/schemas"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const incomeExpenseReport = `{
	"totalIncome": 150000,
	"totalExpense": "40000",
	"netIncome": 110000,
	"incomeTransactions": [{"date": "2024-01-02", "description": "Penjualan tunai", "amount": 150000}],
	"expenseTransactions": [{"date": "2024-01-03", "description": "Listrik", "amount": "40000"}]
}`

func TestDecodeIncomeExpenseShapes(t *testing.T) {
	shapes := map[string]string{
		"bare object":          incomeExpenseReport,
		"one element list":     "[" + incomeExpenseReport + "]",
		"wrapped object":       `{"data": ` + incomeExpenseReport + `}`,
		"wrapped list":         `{"data": [` + incomeExpenseReport + `]}`,
		"double wrapped array": `[{"data": ` + incomeExpenseReport + `}]`,
	}

	for name, raw := range shapes {
		t.Run(name, func(t *testing.T) {
			payload, err := schemas.DecodePayload(schemas.ReportIncomeExpense, json.RawMessage(raw))
			require.NoError(t, err)

			ie, ok := payload.(*schemas.IncomeExpensePayload)
			require.True(t, ok)
			assert.True(t, ie.Report.TotalIncome.Equal(decimal.NewFromInt(150000)))
			assert.True(t, ie.Report.TotalExpense.Equal(decimal.NewFromInt(40000)))
			assert.True(t, ie.Report.NetIncome.Equal(decimal.NewFromInt(110000)))
			require.Len(t, ie.Report.IncomeTransactions, 1)
			require.Len(t, ie.Report.ExpenseTransactions, 1)
			assert.Equal(t, "Listrik", ie.Report.ExpenseTransactions[0].Description)
		})
	}
}

func TestDecodeIncomeExpenseEmpty(t *testing.T) {
	for _, raw := range []string{"", "null", "[]", `{"data": []}`} {
		payload, err := schemas.DecodePayload(schemas.ReportIncomeExpense, json.RawMessage(raw))
		require.NoError(t, err, raw)
		ie := payload.(*schemas.IncomeExpensePayload)
		assert.True(t, ie.Report.TotalIncome.IsZero(), raw)
		assert.Empty(t, ie.Report.IncomeTransactions, raw)
	}
}

func TestDecodeProductsAcceptsStringAmounts(t *testing.T) {
	raw := `{"data": [{"code": "P1", "name": "Widget", "category": "Tools", "quantitySold": 5, "revenue": "50000"}]}`

	payload, err := schemas.DecodePayload(schemas.ReportProducts, json.RawMessage(raw))
	require.NoError(t, err)

	products := payload.(*schemas.ProductsPayload)
	require.Len(t, products.Data, 1)
	assert.True(t, products.Data[0].Revenue.Equal(decimal.NewFromInt(50000)))
	assert.True(t, products.Data[0].QuantitySold.Equal(decimal.NewFromInt(5)))
}

func TestDecodeBareListAsData(t *testing.T) {
	raw := `[{"date": "2024-01-01", "invoiceNumber": "INV-1", "customerName": "Budi", "productName": "Kopi", "quantity": 2, "price": 10000, "total": 20000}]`

	payload, err := schemas.DecodePayload(schemas.ReportTransactions, json.RawMessage(raw))
	require.NoError(t, err)

	transactions := payload.(*schemas.TransactionsPayload)
	require.Len(t, transactions.Data, 1)
	assert.Equal(t, "INV-1", transactions.Data[0].InvoiceNumber)
}

func TestDecodeCustomersOptionalFields(t *testing.T) {
	raw := `{"data": [
		{"name": "Budi", "contact": "0812", "totalPurchase": 100000, "average": 50000, "frequency": 2, "lastPurchaseDate": "2024-01-20", "notes": "VIP"},
		{"name": "Sari", "contact": "0813", "totalPurchase": 20000, "average": 20000, "frequency": 1}
	]}`

	payload, err := schemas.DecodePayload(schemas.ReportCustomers, json.RawMessage(raw))
	require.NoError(t, err)

	customers := payload.(*schemas.CustomersPayload)
	require.Len(t, customers.Data, 2)
	require.NotNil(t, customers.Data[0].Notes)
	assert.Equal(t, "VIP", *customers.Data[0].Notes)
	assert.Nil(t, customers.Data[1].Notes)
	assert.Nil(t, customers.Data[1].LastPurchaseDate)
}

func TestDecodeUnknownTypeIsNotAnError(t *testing.T) {
	payload, err := schemas.DecodePayload(schemas.ReportType("inventory"), json.RawMessage(`{"whatever": true}`))
	require.NoError(t, err)

	unknown, ok := payload.(*schemas.UnknownPayload)
	require.True(t, ok)
	assert.Equal(t, schemas.ReportType("inventory"), unknown.Type())
}

func TestDecodeMalformedPayload(t *testing.T) {
	_, err := schemas.DecodePayload(schemas.ReportSales, json.RawMessage(`{"data": "nope"}`))
	assert.Error(t, err)
}

func TestReportTypeLookups(t *testing.T) {
	rt, ok := schemas.ParseReportType(" Sales ")
	require.True(t, ok)
	assert.Equal(t, schemas.ReportSales, rt)
	assert.Equal(t, "LAPORAN PENJUALAN", rt.Label())

	for _, rt := range schemas.ReportTypes {
		assert.True(t, rt.Known())
		assert.NotEqual(t, "LAPORAN", rt.Label())
	}

	assert.True(t, schemas.ReportIncomeExpense.ChartEligible())
	assert.True(t, schemas.ReportProducts.ChartEligible())
	assert.False(t, schemas.ReportCustomers.ChartEligible())
	assert.False(t, schemas.ReportTransactions.ChartEligible())

	unknown, ok := schemas.ParseReportType("stock")
	assert.False(t, ok)
	assert.Equal(t, "LAPORAN", unknown.Label())
	assert.False(t, unknown.ChartEligible())
}

func TestParseExportFormat(t *testing.T) {
	f, ok := schemas.ParseExportFormat("")
	assert.True(t, ok)
	assert.Equal(t, schemas.FormatPDF, f)

	f, ok = schemas.ParseExportFormat("XLSX")
	assert.True(t, ok)
	assert.Equal(t, schemas.FormatXLSX, f)

	_, ok = schemas.ParseExportFormat("docx")
	assert.False(t, ok)
}
