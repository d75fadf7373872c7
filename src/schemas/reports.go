package schemas

import (
	"encoding/json"
	"strings"
)

// ReportType selects the section builder and the header label of a report.
type ReportType string

const (
	ReportSales         ReportType = "sales"
	ReportTransactions  ReportType = "transactions"
	ReportCustomers     ReportType = "customers"
	ReportProducts      ReportType = "products"
	ReportIncomeExpense ReportType = "income-expense"
)

var reportLabels = map[ReportType]string{
	ReportSales:         "LAPORAN PENJUALAN",
	ReportTransactions:  "LAPORAN TRANSAKSI",
	ReportCustomers:     "LAPORAN PELANGGAN",
	ReportProducts:      "LAPORAN PRODUK",
	ReportIncomeExpense: "LAPORAN PEMASUKAN DAN PENGELUARAN",
}

var reportTitles = map[ReportType]string{
	ReportSales:         "Laporan Penjualan",
	ReportTransactions:  "Laporan Transaksi",
	ReportCustomers:     "Laporan Pelanggan",
	ReportProducts:      "Laporan Produk",
	ReportIncomeExpense: "Laporan Pemasukan dan Pengeluaran",
}

// ReportTypes lists the supported report types in menu order.
var ReportTypes = []ReportType{
	ReportSales,
	ReportTransactions,
	ReportCustomers,
	ReportProducts,
	ReportIncomeExpense,
}

// ParseReportType normalises s and reports whether it is a known type.
// Unknown values are still returned so callers can render a "no data" report.
func ParseReportType(s string) (ReportType, bool) {
	rt := ReportType(strings.ToLower(strings.TrimSpace(s)))
	_, ok := reportLabels[rt]
	return rt, ok
}

func (rt ReportType) Known() bool {
	_, ok := reportLabels[rt]
	return ok
}

// Label is the upper-case heading printed on the first page.
func (rt ReportType) Label() string {
	if label, ok := reportLabels[rt]; ok {
		return label
	}
	return "LAPORAN"
}

// Title is used for document metadata and continuation captions.
func (rt ReportType) Title() string {
	if title, ok := reportTitles[rt]; ok {
		return title
	}
	return "Laporan"
}

// ChartEligible reports whether a chart image precedes the tables.
func (rt ReportType) ChartEligible() bool {
	switch rt {
	case ReportSales, ReportIncomeExpense, ReportProducts:
		return true
	}
	return false
}

type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type ExportFormat string

const (
	FormatPDF  ExportFormat = "pdf"
	FormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat defaults to PDF when s is empty.
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, true
	case "xlsx", "excel":
		return FormatXLSX, true
	}
	return "", false
}

func (f ExportFormat) Extension() string {
	return string(f)
}

// ReportExportRequest is the body of POST /api/reports/{type}/export.
type ReportExportRequest struct {
	DateRange DateRange       `json:"dateRange"`
	Payload   json.RawMessage `json:"payload"`
}
