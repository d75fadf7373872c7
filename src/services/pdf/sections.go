package pdf

import (
	"fmt"
	"reports/src/schemas"
	"reports/src/services/analysis"
	"reports/src/utils/format"

	"github.com/shopspring/decimal"
)

var (
	salesColumns = []Column{
		{Header: "Tanggal", Width: 30},
		{Header: "Invoice", Width: 34},
		{Header: "Pelanggan", Width: 48},
		{Header: "Total", Width: 34, Align: "R"},
		{Header: "Metode Pembayaran", Width: 36},
	}
	ledgerColumns = []Column{
		{Header: "Tanggal", Width: 36},
		{Header: "Deskripsi", Width: 100},
		{Header: "Jumlah", Width: 46, Align: "R"},
	}
	productColumns = []Column{
		{Header: "Kode", Width: 24},
		{Header: "Nama Produk", Width: 58},
		{Header: "Kategori", Width: 36},
		{Header: "Total Terjual", Width: 26, Align: "R"},
		{Header: "Pendapatan", Width: 38, Align: "R"},
	}
	customerColumns = []Column{
		{Header: "Nama", Width: 44},
		{Header: "Kontak", Width: 34},
		{Header: "Total Pembelian", Width: 36, Align: "R"},
		{Header: "Rata-rata", Width: 36, Align: "R"},
		{Header: "Frekuensi", Width: 32, Align: "R"},
	}
	customerDetailColumns = []Column{
		{Header: "Nama", Width: 32},
		{Header: "Kontak", Width: 24},
		{Header: "Total Pembelian", Width: 26, Align: "R"},
		{Header: "Rata-rata", Width: 26, Align: "R"},
		{Header: "Frekuensi", Width: 18, Align: "R"},
		{Header: "Pembelian Terakhir", Width: 28},
		{Header: "Catatan", Width: 28},
	}
	transactionColumns = []Column{
		{Header: "Tanggal", Width: 24},
		{Header: "Invoice", Width: 26},
		{Header: "Pelanggan", Width: 32},
		{Header: "Item", Width: 34},
		{Header: "Qty", Width: 14, Align: "R"},
		{Header: "Harga", Width: 26, Align: "R"},
		{Header: "Total", Width: 26, Align: "R"},
	}
)

// customerDetailLimit is the largest customer list that still gets the last
// purchase and notes columns.
const customerDetailLimit = 5

type sections struct {
	b      *Builder
	f      *format.Formatter
	layout Layout
	title  string
}

func (s *sections) caption() string {
	return s.title + " (lanjutan)"
}

func (s *sections) table(columns []Column, rows [][]string, accent Color) Table {
	return Table{Columns: columns, Rows: rows, Accent: accent, Caption: s.caption()}
}

func (s *sections) sales(p *schemas.SalesPayload, startY float64) {
	tableY := startY + 10
	if p.Summary != nil {
		s.b.SummaryBoxes(startY, 30, &shade, []SummaryBox{
			{Label: "Total Penjualan", Value: s.f.Currency(p.Summary.TotalSales)},
			{Label: "Jumlah Transaksi", Value: s.f.Quantity(p.Summary.TransactionCount)},
			{Label: "Rata-rata Transaksi", Value: s.f.Currency(p.Summary.AverageTransaction)},
		})
		tableY = startY + 40
	}

	if len(p.Data) == 0 {
		s.b.SetY(tableY)
		s.b.Placeholder("Tidak ada data penjualan untuk periode ini.")
		return
	}

	rows := make([][]string, 0, len(p.Data))
	for _, row := range p.Data {
		rows = append(rows, []string{
			s.f.Date(row.Date),
			row.InvoiceNumber,
			row.CustomerName,
			s.f.Currency(row.Total),
			row.PaymentMethod,
		})
	}
	endY := s.b.DrawTable(s.table(salesColumns, rows, AccentBlue), tableY)

	s.b.SetY(endY + 10)
	s.salesSummary(p)
}

// salesSummary writes the executive summary bullets below the sales table.
func (s *sections) salesSummary(p *schemas.SalesPayload) {
	total, average := analysis.SalesTotals(p.Data)
	count := decimal.NewFromInt(int64(len(p.Data)))
	if p.Summary != nil {
		total, count, average = p.Summary.TotalSales, p.Summary.TransactionCount, p.Summary.AverageTransaction
	}

	s.b.Heading("Ringkasan Eksekutif")
	s.b.Bullet("Total penjualan: " + s.f.Currency(total))
	s.b.Bullet("Jumlah transaksi: " + s.f.Quantity(count))
	s.b.Bullet("Rata-rata per transaksi: " + s.f.Currency(average))

	trend := analysis.AnalyzeTrend(p.Data)
	if trend.Highest != nil {
		s.b.Bullet(fmt.Sprintf("Penjualan tertinggi: %s (%s)", s.f.Date(trend.Highest.Date), s.f.Currency(trend.Highest.Total)))
	}
	if trend.Lowest != nil {
		s.b.Bullet(fmt.Sprintf("Penjualan terendah: %s (%s)", s.f.Date(trend.Lowest.Date), s.f.Currency(trend.Lowest.Total)))
	}
}

func (s *sections) incomeExpense(p *schemas.IncomeExpensePayload, startY float64) {
	report := p.Report

	net := TintGreen
	if report.NetIncome.IsNegative() {
		net = TintRed
	}
	s.b.SummaryBoxes(startY, 22, nil, []SummaryBox{
		{Label: "Total Pemasukan", Value: s.f.Currency(report.TotalIncome), Fill: &TintGreen},
		{Label: "Total Pengeluaran", Value: s.f.Currency(report.TotalExpense), Fill: &TintRed},
		{Label: "Laba Bersih", Value: s.f.Currency(report.NetIncome), Fill: &net},
	})

	s.b.SetY(s.b.Y() + 10)
	s.b.Heading("Detail Pemasukan")
	endY := s.ledger(report.IncomeTransactions, AccentGreen, "Tidak ada data pemasukan untuk periode ini.")

	expenseY := endY + 12
	s.b.SetY(expenseY)
	if expenseY > s.layout.OverflowThreshold {
		s.b.AddPage()
	}
	s.b.Heading("Detail Pengeluaran")
	s.ledger(report.ExpenseTransactions, AccentRed, "Tidak ada data pengeluaran untuk periode ini.")
}

func (s *sections) ledger(entries []schemas.LedgerEntry, accent Color, empty string) float64 {
	if len(entries) == 0 {
		s.b.Placeholder(empty)
		return s.b.Y()
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{s.f.Date(e.Date), e.Description, s.f.Currency(e.Amount)})
	}
	return s.b.DrawTable(s.table(ledgerColumns, rows, accent), s.b.Y())
}

func (s *sections) products(p *schemas.ProductsPayload, startY float64) {
	if len(p.Data) == 0 {
		s.b.SetY(startY)
		s.b.Placeholder("Tidak ada data produk untuk periode ini.")
		return
	}
	rows := make([][]string, 0, len(p.Data))
	for _, row := range p.Data {
		rows = append(rows, []string{
			row.Code,
			row.Name,
			row.Category,
			s.f.Quantity(row.QuantitySold),
			s.f.Currency(row.Revenue),
		})
	}
	s.b.DrawTable(s.table(productColumns, rows, AccentBlue), startY)
}

type customerView struct {
	Name             string
	Contact          string
	FormattedTotal   string
	FormattedAverage string
	Frequency        string
	LastPurchase     string
	Notes            string
}

func (s *sections) customerViews(rows []schemas.CustomerRow) []customerView {
	views := make([]customerView, 0, len(rows))
	detailed := len(rows) <= customerDetailLimit
	for _, row := range rows {
		v := customerView{
			Name:             row.Name,
			Contact:          row.Contact,
			FormattedTotal:   s.f.Currency(row.TotalPurchase),
			FormattedAverage: s.f.Currency(row.Average),
			Frequency:        s.f.Quantity(row.Frequency),
		}
		if detailed {
			v.LastPurchase = format.Placeholder
			if row.LastPurchaseDate != nil {
				v.LastPurchase = s.f.Date(*row.LastPurchaseDate)
			}
			if row.Notes != nil {
				v.Notes = *row.Notes
			}
		}
		views = append(views, v)
	}
	return views
}

// customerSummary writes the summary bullets and returns where the table starts.
func (s *sections) customerSummary(rows []schemas.CustomerRow, startY float64) float64 {
	s.b.SetY(startY)
	s.b.Heading("Ringkasan Eksekutif")
	s.b.Bullet("Jumlah pelanggan: " + s.f.Number(int64(len(rows))))

	var total decimal.Decimal
	var top *schemas.CustomerRow
	for i := range rows {
		total = total.Add(rows[i].TotalPurchase)
		if top == nil || rows[i].TotalPurchase.GreaterThan(top.TotalPurchase) {
			top = &rows[i]
		}
	}
	s.b.Bullet("Total pembelian: " + s.f.Currency(total))
	if top != nil {
		average := total.Div(decimal.NewFromInt(int64(len(rows))))
		s.b.Bullet("Rata-rata pembelian per pelanggan: " + s.f.Currency(average))
		s.b.Bullet(fmt.Sprintf("Pelanggan teratas: %s (%s)", top.Name, s.f.Currency(top.TotalPurchase)))
	}
	return s.b.Y() + 6
}

func (s *sections) customers(p *schemas.CustomersPayload, startY float64) {
	tableY := s.customerSummary(p.Data, startY)
	if len(p.Data) == 0 {
		s.b.SetY(tableY)
		s.b.Placeholder("Tidak ada data pelanggan untuk periode ini.")
		return
	}

	views := s.customerViews(p.Data)
	columns := customerColumns
	if len(views) <= customerDetailLimit {
		columns = customerDetailColumns
	}

	rows := make([][]string, 0, len(views))
	for _, v := range views {
		row := []string{v.Name, v.Contact, v.FormattedTotal, v.FormattedAverage, v.Frequency}
		if len(columns) == len(customerDetailColumns) {
			row = append(row, v.LastPurchase, v.Notes)
		}
		rows = append(rows, row)
	}

	table := s.table(columns, rows, AccentBlue)
	if len(rows) > s.layout.CustomerChunkSize {
		s.b.DrawTableChunks(table, s.layout.CustomerChunkSize)
		return
	}
	s.b.DrawTable(table, tableY)
}

func (s *sections) transactions(p *schemas.TransactionsPayload, startY float64) {
	if len(p.Data) == 0 {
		s.b.SetY(startY)
		s.b.Placeholder("Tidak ada data transaksi untuk periode ini.")
		return
	}
	rows := make([][]string, 0, len(p.Data))
	for _, row := range p.Data {
		rows = append(rows, []string{
			s.f.Date(row.Date),
			row.InvoiceNumber,
			row.CustomerName,
			row.ProductName,
			s.f.Quantity(row.Quantity),
			s.f.Currency(row.Price),
			s.f.Currency(row.Total),
		})
	}
	s.b.DrawTable(s.table(transactionColumns, rows, AccentBlue), startY)
}
