package schemas

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ReportPayload is one variant per report type. The set is closed: only the
// types in this file implement it.
type ReportPayload interface {
	Type() ReportType
	isReportPayload()
}

type SalesSummary struct {
	TotalSales         decimal.Decimal `json:"totalSales"`
	TransactionCount   decimal.Decimal `json:"transactionCount"`
	AverageTransaction decimal.Decimal `json:"averageTransaction"`
}

type SalesRow struct {
	Date          string          `json:"date"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerName  string          `json:"customerName"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
}

type SalesPayload struct {
	Summary *SalesSummary `json:"summary,omitempty"`
	Data    []SalesRow    `json:"data"`
}

type LedgerEntry struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type IncomeExpenseData struct {
	TotalIncome         decimal.Decimal `json:"totalIncome"`
	TotalExpense        decimal.Decimal `json:"totalExpense"`
	NetIncome           decimal.Decimal `json:"netIncome"`
	IncomeTransactions  []LedgerEntry   `json:"incomeTransactions"`
	ExpenseTransactions []LedgerEntry   `json:"expenseTransactions"`
}

// IncomeExpensePayload holds the single normalised report-data object. The
// backend sends it bare, as a one-element list, or wrapped in "data".
type IncomeExpensePayload struct {
	Report IncomeExpenseData
}

type ProductRow struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	QuantitySold decimal.Decimal `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type ProductsPayload struct {
	Data []ProductRow `json:"data"`
}

type CustomerRow struct {
	Name             string          `json:"name"`
	Contact          string          `json:"contact"`
	TotalPurchase    decimal.Decimal `json:"totalPurchase"`
	Average          decimal.Decimal `json:"average"`
	Frequency        decimal.Decimal `json:"frequency"`
	LastPurchaseDate *string         `json:"lastPurchaseDate,omitempty"`
	Notes            *string         `json:"notes,omitempty"`
}

type CustomersPayload struct {
	Data []CustomerRow `json:"data"`
}

type TransactionRow struct {
	Date          string          `json:"date"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerName  string          `json:"customerName"`
	ProductName   string          `json:"productName"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Total         decimal.Decimal `json:"total"`
}

type TransactionsPayload struct {
	Data []TransactionRow `json:"data"`
}

// UnknownPayload stands in for report types outside the supported set.
type UnknownPayload struct {
	ReportType ReportType
}

func (*SalesPayload) Type() ReportType         { return ReportSales }
func (*IncomeExpensePayload) Type() ReportType { return ReportIncomeExpense }
func (*ProductsPayload) Type() ReportType      { return ReportProducts }
func (*CustomersPayload) Type() ReportType     { return ReportCustomers }
func (*TransactionsPayload) Type() ReportType  { return ReportTransactions }
func (p *UnknownPayload) Type() ReportType     { return p.ReportType }

func (*SalesPayload) isReportPayload()         {}
func (*IncomeExpensePayload) isReportPayload() {}
func (*ProductsPayload) isReportPayload()      {}
func (*CustomersPayload) isReportPayload()     {}
func (*TransactionsPayload) isReportPayload()  {}
func (*UnknownPayload) isReportPayload()       {}

func (p *IncomeExpensePayload) UnmarshalJSON(raw []byte) error {
	data, err := normalizeIncomeExpense(raw)
	if err != nil {
		return err
	}
	p.Report = data
	return nil
}

func (p IncomeExpensePayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]IncomeExpenseData{"data": p.Report})
}

// normalizeIncomeExpense unwraps "data" and one-element lists until it reaches
// the report object. An empty list or null yields a zero report.
func normalizeIncomeExpense(raw []byte) (IncomeExpenseData, error) {
	var data IncomeExpenseData

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return data, nil
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return data, fmt.Errorf("decode income-expense list: %w", err)
		}
		if len(items) == 0 {
			return data, nil
		}
		return normalizeIncomeExpense(items[0])
	case '{':
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return data, fmt.Errorf("decode income-expense object: %w", err)
		}
		if inner, ok := probe["data"]; ok {
			return normalizeIncomeExpense(inner)
		}
		if err := json.Unmarshal(trimmed, &data); err != nil {
			return data, fmt.Errorf("decode income-expense report: %w", err)
		}
		return data, nil
	}
	return data, fmt.Errorf("unsupported income-expense payload starting with %q", trimmed[0])
}

// NewPayload returns the empty variant for rt.
func NewPayload(rt ReportType) ReportPayload {
	switch rt {
	case ReportSales:
		return &SalesPayload{}
	case ReportIncomeExpense:
		return &IncomeExpensePayload{}
	case ReportProducts:
		return &ProductsPayload{}
	case ReportCustomers:
		return &CustomersPayload{}
	case ReportTransactions:
		return &TransactionsPayload{}
	}
	return &UnknownPayload{ReportType: rt}
}

// DecodePayload decodes raw into the variant for rt. Unknown types are not an
// error: they decode to UnknownPayload and raw is ignored.
func DecodePayload(rt ReportType, raw json.RawMessage) (ReportPayload, error) {
	payload := NewPayload(rt)
	if _, unknown := payload.(*UnknownPayload); unknown {
		return payload, nil
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return payload, nil
	}

	// A bare list is accepted as the "data" field for the list-shaped reports.
	if trimmed[0] == '[' && rt != ReportIncomeExpense {
		wrapped, err := json.Marshal(map[string]json.RawMessage{"data": trimmed})
		if err != nil {
			return nil, err
		}
		trimmed = wrapped
	}

	if err := json.Unmarshal(trimmed, payload); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", rt, err)
	}
	return payload, nil
}
