package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CompanyInfo is the static seller identity printed on every invoice.
type CompanyInfo struct {
	Name           string `json:"name"`
	NameArabic     string `json:"nameArabic"`
	Subtitle       string `json:"subtitle"`
	SubtitleArabic string `json:"subtitleArabic"`
	Description    string `json:"description"`
	VATTRN         string `json:"vatTrn"`
}

// CustomerInfo holds the editable customer fields on the invoice form.
type CustomerInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	TelFax  string `json:"telFax"`
	TRN     string `json:"trn"`
}

// Customer is a saved customer record. IDs are millisecond timestamps so
// they stay interchangeable with records written by older data sets.
type Customer struct {
	ID int64 `json:"id"`
	CustomerInfo
}

type LineItem struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Qty         string          `json:"qty"`
	Unit        string          `json:"unit"`
	Rate        string          `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Ledger maps normalized customer key -> month key -> cumulative amount.
type Ledger map[string]map[string]decimal.Decimal

func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for key, months := range l {
		m := make(map[string]decimal.Decimal, len(months))
		for monthKey, amount := range months {
			m[monthKey] = amount
		}
		out[key] = m
	}
	return out
}

// MonthlyEntry is one flattened ledger row for reporting.
type MonthlyEntry struct {
	CustomerName string          `json:"customer_name"`
	MonthKey     string          `json:"month_key"`
	MonthLabel   string          `json:"month_label"`
	Amount       decimal.Decimal `json:"amount"`
}

// RankedCustomer is a saved customer annotated with lifetime spend.
type RankedCustomer struct {
	Customer
	LifetimeTotal decimal.Decimal `json:"lifetime_total"`
}

// CustomerKey normalizes a customer name into its ledger key. The
// lower-cased name is a weak key: differently spelled entries for the same
// real customer land in separate buckets, which matches the persisted data.
func CustomerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MonthKey buckets a point in time into its calendar month.
func MonthKey(when time.Time) string {
	return when.Format("2006-01")
}
