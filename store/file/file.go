// Package file keeps the invoice state in a single JSON file. The file
// holds the same three documents the browser edition kept in local storage,
// under the same keys and with the same encoding, so data written by either
// edition loads in the other.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"

	"nooralanwar/invoicing/domain"
	"nooralanwar/invoicing/store"
)

type Store struct {
	mu   sync.Mutex
	path string

	customers         []domain.Customer
	ledger            domain.Ledger
	lastInvoiceNumber string
}

type document struct {
	Customers         []domain.Customer `json:"invoiceCustomers"`
	Purchases         store.LedgerDoc   `json:"customerPurchases"`
	LastInvoiceNumber string            `json:"lastInvoiceNumber,omitempty"`
}

// Open loads the file at path, or starts empty when it does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path:   path,
		ledger: make(domain.Ledger),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	s.customers = doc.Customers
	if doc.Purchases != nil {
		s.ledger = store.DecodeLedger(doc.Purchases)
	}
	s.lastInvoiceNumber = doc.LastInvoiceNumber
	return s, nil
}

// flushLocked rewrites the whole file. Mutations call it before returning,
// so the on-disk state always reflects the last completed operation.
func (s *Store) flushLocked() error {
	doc := document{
		Customers:         s.customers,
		Purchases:         store.EncodeLedger(s.ledger),
		LastInvoiceNumber: s.lastInvoiceNumber,
	}
	if doc.Customers == nil {
		doc.Customers = []domain.Customer{}
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *Store) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers := make([]domain.Customer, len(s.customers))
	copy(customers, s.customers)
	return customers, nil
}

func (s *Store) UpsertCustomer(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.customers {
		if s.customers[i].ID == customer.ID {
			s.customers[i] = customer
			replaced = true
			break
		}
	}
	if !replaced {
		s.customers = append(s.customers, customer)
	}
	if err := s.flushLocked(); err != nil {
		return nil, err
	}
	saved := customer
	return &saved, nil
}

func (s *Store) DeleteCustomer(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.customers[:0]
	removed := false
	for _, c := range s.customers {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return store.ErrNotFound
	}
	s.customers = kept
	return s.flushLocked()
}

func (s *Store) Ledger(_ context.Context) (domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Clone(), nil
}

func (s *Store) AddPurchase(_ context.Context, customerKey string, monthKey string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	months, exists := s.ledger[customerKey]
	if !exists {
		months = make(map[string]decimal.Decimal)
		s.ledger[customerKey] = months
	}
	months[monthKey] = months[monthKey].Add(amount)
	return s.flushLocked()
}

func (s *Store) RemovePurchases(_ context.Context, customerKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ledger[customerKey]; !exists {
		return nil
	}
	delete(s.ledger, customerKey)
	return s.flushLocked()
}

func (s *Store) LastInvoiceNumber(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastInvoiceNumber == "" {
		return "", store.ErrNotFound
	}
	return s.lastInvoiceNumber, nil
}

func (s *Store) SetLastInvoiceNumber(_ context.Context, number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastInvoiceNumber = number
	return s.flushLocked()
}
