// Package redis stores the three invoice documents in a redis instance
// under the same string keys and JSON encodings the other backends use.
// The form has a single writer at a time, so read-modify-write without a
// lock is safe.
package redis

import (
	"context"
	"encoding/json"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"nooralanwar/invoicing/domain"
	"nooralanwar/invoicing/store"
)

type Store struct {
	client *goredis.Client
}

func New(addr string, password string, db int) *Store {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Store{client: client}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

// getJSON reads and decodes one document; a missing key reports false.
func (s *Store) getJSON(ctx context.Context, key string, out any) (bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, payload, 0).Err()
}

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	if _, err := s.getJSON(ctx, store.KeyCustomers, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *Store) UpsertCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range customers {
		if customers[i].ID == customer.ID {
			customers[i] = customer
			replaced = true
			break
		}
	}
	if !replaced {
		customers = append(customers, customer)
	}
	if err := s.setJSON(ctx, store.KeyCustomers, customers); err != nil {
		return nil, err
	}
	saved := customer
	return &saved, nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return err
	}

	kept := customers[:0]
	removed := false
	for _, c := range customers {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return store.ErrNotFound
	}
	return s.setJSON(ctx, store.KeyCustomers, kept)
}

func (s *Store) ledgerDoc(ctx context.Context) (store.LedgerDoc, error) {
	doc := make(store.LedgerDoc)
	if _, err := s.getJSON(ctx, store.KeyPurchases, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Store) Ledger(ctx context.Context) (domain.Ledger, error) {
	doc, err := s.ledgerDoc(ctx)
	if err != nil {
		return nil, err
	}
	return store.DecodeLedger(doc), nil
}

func (s *Store) AddPurchase(ctx context.Context, customerKey string, monthKey string, amount decimal.Decimal) error {
	doc, err := s.ledgerDoc(ctx)
	if err != nil {
		return err
	}

	months, exists := doc[customerKey]
	if !exists {
		months = make(map[string]float64)
		doc[customerKey] = months
	}
	months[monthKey] = decimal.NewFromFloat(months[monthKey]).Add(amount).InexactFloat64()
	return s.setJSON(ctx, store.KeyPurchases, doc)
}

func (s *Store) RemovePurchases(ctx context.Context, customerKey string) error {
	doc, err := s.ledgerDoc(ctx)
	if err != nil {
		return err
	}
	if _, exists := doc[customerKey]; !exists {
		return nil
	}
	delete(doc, customerKey)
	return s.setJSON(ctx, store.KeyPurchases, doc)
}

func (s *Store) LastInvoiceNumber(ctx context.Context) (string, error) {
	var number string
	found, err := s.getJSON(ctx, store.KeyLastInvoiceNumber, &number)
	if err != nil {
		return "", err
	}
	if !found || number == "" {
		return "", store.ErrNotFound
	}
	return number, nil
}

func (s *Store) SetLastInvoiceNumber(ctx context.Context, number string) error {
	return s.setJSON(ctx, store.KeyLastInvoiceNumber, number)
}
