package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"nooralanwar/invoicing/domain"
	"nooralanwar/invoicing/store"
)

func TestUpsertAndListCustomers(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.UpsertCustomer(ctx, domain.Customer{ID: 2, CustomerInfo: domain.CustomerInfo{Name: "Beta"}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if _, err := s.UpsertCustomer(ctx, domain.Customer{ID: 1, CustomerInfo: domain.CustomerInfo{Name: "Alpha"}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if _, err := s.UpsertCustomer(ctx, domain.Customer{ID: 2, CustomerInfo: domain.CustomerInfo{Name: "Beta Updated"}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	customers, err := s.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(customers))
	}
	if customers[0].Name != "Alpha" || customers[1].Name != "Beta Updated" {
		t.Fatalf("unexpected order or content: %+v", customers)
	}
}

func TestDeleteCustomerNotFound(t *testing.T) {
	s := New()

	err := s.DeleteCustomer(context.Background(), 99)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLedgerSnapshotIsIsolated(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.AddPurchase(ctx, "acme", "2024-03", decimal.NewFromInt(210)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	snapshot, err := s.Ledger(ctx)
	if err != nil {
		t.Fatalf("ledger failed: %v", err)
	}
	snapshot["acme"]["2024-03"] = decimal.NewFromInt(1)

	fresh, _ := s.Ledger(ctx)
	if !fresh["acme"]["2024-03"].Equal(decimal.NewFromInt(210)) {
		t.Fatalf("snapshot mutation leaked into store: %s", fresh["acme"]["2024-03"])
	}
}

func TestLastInvoiceNumberLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.LastInvoiceNumber(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before any set, got %v", err)
	}
	if err := s.SetLastInvoiceNumber(ctx, "6010"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	number, err := s.LastInvoiceNumber(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if number != "6010" {
		t.Fatalf("want 6010 got %s", number)
	}
}
