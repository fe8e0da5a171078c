package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"nooralanwar/invoicing/domain"
)

var ErrNotFound = errors.New("not found")

// Repository persists the saved-customer list, the purchase ledger and the
// last issued invoice number. Implementations flush synchronously: when a
// mutating call returns, the change is already durable for that backend.
type Repository interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpsertCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error

	Ledger(ctx context.Context) (domain.Ledger, error)
	AddPurchase(ctx context.Context, customerKey string, monthKey string, amount decimal.Decimal) error
	RemovePurchases(ctx context.Context, customerKey string) error

	LastInvoiceNumber(ctx context.Context) (string, error)
	SetLastInvoiceNumber(ctx context.Context, number string) error
}
