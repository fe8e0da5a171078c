package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"nooralanwar/invoicing/domain"
	"nooralanwar/invoicing/invoice"
	"nooralanwar/invoicing/store"
	"nooralanwar/invoicing/xid"
)

// Printer opens the platform print dialog against the rendered document.
type Printer interface {
	Print(ctx context.Context, doc *invoice.Document) error
}

// Exporter writes the rendered document to a PDF file and returns its path.
type Exporter interface {
	Export(ctx context.Context, doc *invoice.Document) (string, error)
}

type Service struct {
	repo       store.Repository
	log        *logrus.Logger
	printDelay time.Duration
	now        func() time.Time
}

type Option func(*Service)

// WithPrintDelay sets the pause between the ledger write and the print
// dialog opening.
func WithPrintDelay(d time.Duration) Option {
	return func(s *Service) { s.printDelay = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(repo store.Repository, log *logrus.Logger, opts ...Option) *Service {
	if log == nil {
		log = logrus.New()
	}
	s := &Service{
		repo:       repo,
		log:        log,
		printDelay: 300 * time.Millisecond,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveCustomer upserts a saved customer record. A blank name is silently
// ignored; an existing record with the same case-insensitive name is
// replaced in place under its original id, otherwise a new id is assigned.
func (s *Service) SaveCustomer(ctx context.Context, info domain.CustomerInfo) (*domain.Customer, error) {
	info.Name = strings.TrimSpace(info.Name)
	if info.Name == "" {
		return nil, nil
	}

	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}

	record := domain.Customer{CustomerInfo: info}
	key := domain.CustomerKey(info.Name)
	for _, existing := range customers {
		if domain.CustomerKey(existing.Name) == key {
			record.ID = existing.ID
			break
		}
	}
	if record.ID == 0 {
		record.ID = xid.NextID()
	}

	saved, err := s.repo.UpsertCustomer(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}
	return saved, nil
}

// RecordPurchase folds a finalized amount into the customer's bucket for
// the month of `when`. Blank names and non-positive amounts are ignored:
// the ledger only ever grows, so a document totalling zero or less leaves
// no trace. The call is deliberately not idempotent: it runs once per
// finalize action, and the caller must not trigger both print and export
// for one document.
func (s *Service) RecordPurchase(ctx context.Context, customerName string, amount decimal.Decimal, when time.Time) error {
	if strings.TrimSpace(customerName) == "" {
		return nil
	}
	if !amount.IsPositive() {
		return nil
	}
	key := domain.CustomerKey(customerName)
	if err := s.repo.AddPurchase(ctx, key, domain.MonthKey(when), amount); err != nil {
		return fmt.Errorf("record purchase: %w", err)
	}
	return nil
}

// MonthlyTotal returns the stored bucket for the customer and month, zero
// when absent.
func (s *Service) MonthlyTotal(ctx context.Context, customerName string, monthKey string) (decimal.Decimal, error) {
	ledger, err := s.repo.Ledger(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	months, exists := ledger[domain.CustomerKey(customerName)]
	if !exists {
		return decimal.Zero, nil
	}
	return months[monthKey], nil
}

// LifetimeTotal sums every month bucket for the customer.
func (s *Service) LifetimeTotal(ctx context.Context, customerName string) (decimal.Decimal, error) {
	ledger, err := s.repo.Ledger(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return lifetimeFromLedger(ledger, domain.CustomerKey(customerName)), nil
}

func lifetimeFromLedger(ledger domain.Ledger, customerKey string) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range ledger[customerKey] {
		total = total.Add(amount)
	}
	return total
}

// DeleteCustomer removes a saved customer and, cascading, the entire
// ledger sub-map under that customer's normalized name. Unknown ids are a
// no-op. Any interactive confirmation happens before this call, in the UI.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	var name string
	found := false
	for _, c := range customers {
		if c.ID == id {
			name = c.Name
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	if err := s.repo.DeleteCustomer(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete customer: %w", err)
	}
	if err := s.repo.RemovePurchases(ctx, domain.CustomerKey(name)); err != nil {
		return fmt.Errorf("delete customer purchases: %w", err)
	}
	return nil
}

// recordFinalize captures the on-screen total at trigger time.
func (s *Service) recordFinalize(ctx context.Context, doc *invoice.Document) error {
	return s.RecordPurchase(ctx, doc.Customer().Name, doc.Total(), s.now())
}

// FinalizeAndPrint records the purchase, waits the configured delay and
// opens the print dialog. The ledger write always lands before the dialog,
// so the recorded amount matches what was on screen.
func (s *Service) FinalizeAndPrint(ctx context.Context, doc *invoice.Document, printer Printer) error {
	if err := s.recordFinalize(ctx, doc); err != nil {
		return err
	}

	time.Sleep(s.printDelay)

	if err := printer.Print(ctx, doc); err != nil {
		s.log.WithFields(logrus.Fields{
			"invoice": doc.Number(),
		}).WithError(err).Error("print failed")
		return fmt.Errorf("print invoice %s: %w", doc.Number(), err)
	}
	return nil
}

// FinalizeAndExport records the purchase and hands the document to the PDF
// exporter. An export failure is surfaced to the caller but the ledger
// update is not rolled back.
func (s *Service) FinalizeAndExport(ctx context.Context, doc *invoice.Document, exporter Exporter) (string, error) {
	if err := s.recordFinalize(ctx, doc); err != nil {
		return "", err
	}

	path, err := exporter.Export(ctx, doc)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"invoice": doc.Number(),
		}).WithError(err).Error("pdf export failed")
		return "", fmt.Errorf("export invoice %s: %w", doc.Number(), err)
	}
	return path, nil
}

// StartNewInvoice rolls the document to its next number, resets it for
// fresh entry and persists the new number.
func (s *Service) StartNewInvoice(ctx context.Context, doc *invoice.Document) (string, error) {
	next := doc.NextInvoiceNumber()
	if err := s.repo.SetLastInvoiceNumber(ctx, next); err != nil {
		return "", fmt.Errorf("persist invoice number: %w", err)
	}
	return next, nil
}

// RestoreInvoiceNumber seeds the document with the persisted number, if
// one was ever stored.
func (s *Service) RestoreInvoiceNumber(ctx context.Context, doc *invoice.Document) error {
	number, err := s.repo.LastInvoiceNumber(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore invoice number: %w", err)
	}
	doc.SetNumber(number)
	return nil
}
