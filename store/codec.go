package store

import (
	"github.com/shopspring/decimal"

	"nooralanwar/invoicing/domain"
)

// Keys of the persisted documents. They match the browser edition of the
// form byte for byte so existing data keeps loading.
const (
	KeyCustomers         = "invoiceCustomers"
	KeyPurchases         = "customerPurchases"
	KeyLastInvoiceNumber = "lastInvoiceNumber"
)

// LedgerDoc is the wire shape of the purchase ledger. Amounts are JSON
// numbers because the original data was written from plain JS numbers.
type LedgerDoc map[string]map[string]float64

func EncodeLedger(ledger domain.Ledger) LedgerDoc {
	doc := make(LedgerDoc, len(ledger))
	for key, months := range ledger {
		m := make(map[string]float64, len(months))
		for monthKey, amount := range months {
			m[monthKey] = amount.InexactFloat64()
		}
		doc[key] = m
	}
	return doc
}

func DecodeLedger(doc LedgerDoc) domain.Ledger {
	ledger := make(domain.Ledger, len(doc))
	for key, months := range doc {
		m := make(map[string]decimal.Decimal, len(months))
		for monthKey, amount := range months {
			m[monthKey] = decimal.NewFromFloat(amount)
		}
		ledger[key] = m
	}
	return ledger
}
