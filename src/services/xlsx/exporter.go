// Package xlsx exports report payloads as Excel workbooks.
package xlsx

import (
	"context"
	"fmt"
	"reports/src/schemas"
	"reports/src/services/analysis"
	"reports/src/utils"
	"reports/src/utils/format"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const dailySummarySheet = "Ringkasan Harian"

// sheet is one table: a title row, a header row and the data below.
type sheet struct {
	name         string
	headers      []string
	rows         [][]interface{}
	currencyCols []int
	// chartCol is the value column plotted on a companion chart sheet, 0 for none.
	chartCol int
}

type Exporter struct {
	Formatter *format.Formatter
}

func NewExporter(formatter *format.Formatter) *Exporter {
	return &Exporter{Formatter: formatter}
}

// GenerateReport returns the workbook bytes.
func (e *Exporter) GenerateReport(ctx context.Context, reportType schemas.ReportType, payload schemas.ReportPayload, dateRange schemas.DateRange) ([]byte, error) {
	f, err := e.Generate(ctx, reportType, payload, dateRange)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) Generate(ctx context.Context, reportType schemas.ReportType, payload schemas.ReportPayload, dateRange schemas.DateRange) (*excelize.File, error) {
	logger := utils.LoggerFromContext(ctx).WithField("report_type", reportType)
	if payload == nil {
		payload = schemas.NewPayload(reportType)
	}

	var sheets []sheet
	switch p := payload.(type) {
	case *schemas.SalesPayload:
		sales, err := e.salesSheets(p)
		if err != nil {
			return nil, err
		}
		sheets = sales
	case *schemas.IncomeExpensePayload:
		sheets = e.incomeExpenseSheets(p)
	case *schemas.ProductsPayload:
		sheets = []sheet{e.productSheet(p)}
	case *schemas.CustomersPayload:
		sheets = []sheet{e.customerSheet(p)}
	case *schemas.TransactionsPayload:
		sheets = []sheet{e.transactionSheet(p)}
	default:
		sheets = []sheet{{
			name:    "Laporan",
			headers: []string{"Keterangan"},
			rows:    [][]interface{}{{"Tidak ada data tersedia"}},
		}}
	}

	title := fmt.Sprintf("%s - Periode: %s sampai %s", reportType.Label(),
		e.Formatter.Date(dateRange.StartDate), e.Formatter.Date(dateRange.EndDate))

	f := excelize.NewFile()
	currency := map[string][]int{}
	for i, s := range sheets {
		if err := writeSheet(f, i == 0, title, s); err != nil {
			f.Close()
			return nil, fmt.Errorf("write sheet %s: %w", s.name, err)
		}
		currency[s.name] = s.currencyCols
	}

	if err := applyStylesToAllSheets(f, currency); err != nil {
		f.Close()
		return nil, fmt.Errorf("style workbook: %w", err)
	}

	// Chart sheets are added after styling; they hold no cells.
	for _, s := range sheets {
		if s.chartCol == 0 || len(s.rows) == 0 {
			continue
		}
		if err := addBarChartFromSheet(f, s.name, s.chartCol, len(s.rows)); err != nil {
			logger.WithError(err).Warn("skipping workbook chart")
		}
	}
	f.SetActiveSheet(0)

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   reportType.Title(),
		Subject: fmt.Sprintf("Periode: %s sampai %s", dateRange.StartDate, dateRange.EndDate),
		Creator: "reports",
	}); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func money(v decimal.Decimal) float64 {
	return v.InexactFloat64()
}

func (e *Exporter) salesSheets(p *schemas.SalesPayload) ([]sheet, error) {
	data := sheet{
		name:         "Penjualan",
		headers:      []string{"Tanggal", "Invoice", "Pelanggan", "Total", "Metode Pembayaran"},
		currencyCols: []int{4},
	}
	for _, row := range p.Data {
		data.rows = append(data.rows, []interface{}{
			e.Formatter.Date(row.Date), row.InvoiceNumber, row.CustomerName, money(row.Total), row.PaymentMethod,
		})
	}
	if len(p.Data) == 0 {
		return []sheet{data}, nil
	}

	daily, err := dailySummary(p.Data)
	if err != nil {
		return nil, err
	}
	return []sheet{data, daily}, nil
}

// dailySummary aggregates sales per date in a dataframe sorted by date.
func dailySummary(rows []schemas.SalesRow) (sheet, error) {
	days := analysis.DailyTotals(rows)
	counts := map[string]int{}
	for _, row := range rows {
		counts[row.Date]++
	}

	dates := make([]string, 0, len(days))
	totals := make([]float64, 0, len(days))
	transactions := make([]int, 0, len(days))
	for _, day := range days {
		dates = append(dates, day.Date)
		totals = append(totals, money(day.Total))
		transactions = append(transactions, counts[day.Date])
	}

	df := dataframe.New(
		series.New(dates, series.String, "Tanggal"),
		series.New(transactions, series.Int, "Jumlah Transaksi"),
		series.New(totals, series.Float, "Total"),
	).Arrange(dataframe.Sort("Tanggal"))
	if df.Err != nil {
		return sheet{}, fmt.Errorf("build daily summary: %w", df.Err)
	}

	s := sheet{
		name:         dailySummarySheet,
		headers:      df.Names(),
		currencyCols: []int{3},
		chartCol:     3,
	}
	for i := 0; i < df.Nrow(); i++ {
		count, err := df.Elem(i, 1).Int()
		if err != nil {
			return sheet{}, err
		}
		s.rows = append(s.rows, []interface{}{
			df.Elem(i, 0).String(),
			count,
			df.Elem(i, 2).Float(),
		})
	}
	return s, nil
}

func (e *Exporter) incomeExpenseSheets(p *schemas.IncomeExpensePayload) []sheet {
	report := p.Report
	summary := sheet{
		name:         "Ringkasan",
		headers:      []string{"Keterangan", "Jumlah"},
		currencyCols: []int{2},
		chartCol:     2,
		rows: [][]interface{}{
			{"Total Pemasukan", money(report.TotalIncome)},
			{"Total Pengeluaran", money(report.TotalExpense)},
			{"Laba Bersih", money(report.NetIncome)},
		},
	}
	return []sheet{
		summary,
		e.ledgerSheet("Pemasukan", report.IncomeTransactions),
		e.ledgerSheet("Pengeluaran", report.ExpenseTransactions),
	}
}

func (e *Exporter) ledgerSheet(name string, entries []schemas.LedgerEntry) sheet {
	s := sheet{
		name:         name,
		headers:      []string{"Tanggal", "Deskripsi", "Jumlah"},
		currencyCols: []int{3},
	}
	for _, entry := range entries {
		s.rows = append(s.rows, []interface{}{e.Formatter.Date(entry.Date), entry.Description, money(entry.Amount)})
	}
	return s
}

func (e *Exporter) productSheet(p *schemas.ProductsPayload) sheet {
	s := sheet{
		name:         "Produk",
		headers:      []string{"Kode", "Nama Produk", "Kategori", "Total Terjual", "Pendapatan"},
		currencyCols: []int{5},
		chartCol:     5,
	}
	for _, row := range p.Data {
		s.rows = append(s.rows, []interface{}{row.Code, row.Name, row.Category, row.QuantitySold.InexactFloat64(), money(row.Revenue)})
	}
	return s
}

func (e *Exporter) customerSheet(p *schemas.CustomersPayload) sheet {
	s := sheet{
		name:         "Pelanggan",
		headers:      []string{"Nama", "Kontak", "Total Pembelian", "Rata-rata", "Frekuensi", "Pembelian Terakhir", "Catatan"},
		currencyCols: []int{3, 4},
	}
	for _, row := range p.Data {
		lastPurchase := format.Placeholder
		if row.LastPurchaseDate != nil {
			lastPurchase = e.Formatter.Date(*row.LastPurchaseDate)
		}
		notes := ""
		if row.Notes != nil {
			notes = *row.Notes
		}
		s.rows = append(s.rows, []interface{}{
			row.Name, row.Contact, money(row.TotalPurchase), money(row.Average), row.Frequency.InexactFloat64(), lastPurchase, notes,
		})
	}
	return s
}

func (e *Exporter) transactionSheet(p *schemas.TransactionsPayload) sheet {
	s := sheet{
		name:         "Transaksi",
		headers:      []string{"Tanggal", "Invoice", "Pelanggan", "Item", "Qty", "Harga", "Total"},
		currencyCols: []int{6, 7},
	}
	for _, row := range p.Data {
		s.rows = append(s.rows, []interface{}{
			e.Formatter.Date(row.Date), row.InvoiceNumber, row.CustomerName, row.ProductName,
			row.Quantity.InexactFloat64(), money(row.Price), money(row.Total),
		})
	}
	return s
}

// writeSheet puts the title in row 1, headers in row 2 and data from row 3.
func writeSheet(f *excelize.File, first bool, title string, s sheet) error {
	if first {
		if err := f.SetSheetName("Sheet1", s.name); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(s.name); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(s.headers))
	if err != nil {
		return err
	}
	if err := f.SetCellValue(s.name, "A1", title); err != nil {
		return err
	}
	if len(s.headers) > 1 {
		if err := f.MergeCell(s.name, "A1", lastCol+"1"); err != nil {
			return err
		}
	}

	for i, header := range s.headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.name, cell, header); err != nil {
			return err
		}
	}

	for r, row := range s.rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+3)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(s.name, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
