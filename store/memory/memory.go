package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"nooralanwar/invoicing/domain"
	"nooralanwar/invoicing/store"
)

// Store is the in-process repository. It backs tests and runs the form
// without any persistence configured.
type Store struct {
	mu                sync.RWMutex
	customers         map[int64]domain.Customer
	ledger            domain.Ledger
	lastInvoiceNumber string
}

func New() *Store {
	return &Store{
		customers: make(map[int64]domain.Customer),
		ledger:    make(domain.Ledger),
	}
}

func (s *Store) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		customers = append(customers, c)
	}
	// Timestamp ids give creation order.
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers, nil
}

func (s *Store) UpsertCustomer(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customers[customer.ID] = customer
	saved := customer
	return &saved, nil
}

func (s *Store) DeleteCustomer(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.customers, id)
	return nil
}

func (s *Store) Ledger(_ context.Context) (domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

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
	return nil
}

func (s *Store) RemovePurchases(_ context.Context, customerKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.ledger, customerKey)
	return nil
}

func (s *Store) LastInvoiceNumber(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastInvoiceNumber == "" {
		return "", store.ErrNotFound
	}
	return s.lastInvoiceNumber, nil
}

func (s *Store) SetLastInvoiceNumber(_ context.Context, number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastInvoiceNumber = number
	return nil
}
