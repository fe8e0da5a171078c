package redis

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"nooralanwar/invoicing/domain"
	"nooralanwar/invoicing/store"
)

// openTestStore connects to the instance named by REDIS_ADDR and clears the
// three invoice keys. Without the variable the test is skipped.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping redis round-trip test")
	}

	s := New(addr, os.Getenv("REDIS_PASSWORD"), 0)
	ctx := context.Background()
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping %s failed: %v", addr, err)
	}
	if err := s.client.Del(ctx, store.KeyCustomers, store.KeyPurchases, store.KeyLastInvoiceNumber).Err(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.UpsertCustomer(ctx, domain.Customer{ID: 1700000000000, CustomerInfo: domain.CustomerInfo{Name: "Acme", Address: "Deira"}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(customers) != 1 || customers[0].Name != "Acme" {
		t.Fatalf("unexpected customers: %+v", customers)
	}

	if err := s.AddPurchase(ctx, "acme", "2024-03", decimal.NewFromInt(210)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := s.AddPurchase(ctx, "acme", "2024-03", decimal.NewFromInt(90)); err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	ledger, err := s.Ledger(ctx)
	if err != nil {
		t.Fatalf("ledger failed: %v", err)
	}
	if !ledger["acme"]["2024-03"].Equal(decimal.NewFromInt(300)) {
		t.Fatalf("bucket: want 300 got %s", ledger["acme"]["2024-03"])
	}

	if err := s.RemovePurchases(ctx, "acme"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	ledger, _ = s.Ledger(ctx)
	if len(ledger) != 0 {
		t.Fatalf("expected empty ledger after remove, got %+v", ledger)
	}

	if err := s.DeleteCustomer(ctx, 1700000000000); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.DeleteCustomer(ctx, 1700000000000); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestLastInvoiceNumberLifecycle(t *testing.T) {
	s := openTestStore(t)
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
