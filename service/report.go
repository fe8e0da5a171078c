package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"nooralanwar/invoicing/domain"
)

// RankedCustomers returns the saved customers annotated with lifetime
// spend, highest first. Customers with no recorded spend are left out.
func (s *Service) RankedCustomers(ctx context.Context) ([]domain.RankedCustomer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.repo.Ledger(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.RankedCustomer, 0, len(customers))
	for _, c := range customers {
		total := lifetimeFromLedger(ledger, domain.CustomerKey(c.Name))
		if total.IsZero() {
			continue
		}
		ranked = append(ranked, domain.RankedCustomer{Customer: c, LifetimeTotal: total})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].LifetimeTotal.Equal(ranked[j].LifetimeTotal) {
			return ranked[i].LifetimeTotal.GreaterThan(ranked[j].LifetimeTotal)
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked, nil
}

// AllMonthlyEntries flattens the ledger into report rows, most recent month
// first. The display name prefers the saved record's casing and falls back
// to the raw ledger key for customers that were never explicitly saved.
func (s *Service) AllMonthlyEntries(ctx context.Context) ([]domain.MonthlyEntry, error) {
	ledger, err := s.repo.Ledger(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	displayNames := make(map[string]string, len(customers))
	for _, c := range customers {
		displayNames[domain.CustomerKey(c.Name)] = c.Name
	}

	entries := make([]domain.MonthlyEntry, 0, len(ledger))
	for key, months := range ledger {
		name, saved := displayNames[key]
		if !saved {
			name = key
		}
		for monthKey, amount := range months {
			entries = append(entries, domain.MonthlyEntry{
				CustomerName: name,
				MonthKey:     monthKey,
				MonthLabel:   FormatMonthRange(monthKey),
				Amount:       amount,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		// YYYY-MM keys order lexicographically.
		if entries[i].MonthKey != entries[j].MonthKey {
			return entries[i].MonthKey > entries[j].MonthKey
		}
		return entries[i].CustomerName < entries[j].CustomerName
	})
	return entries, nil
}

// FormatMonthRange renders a month key as the statement label, e.g.
// "Feb 2024 (1st - 29th)". The day count follows the real calendar,
// including leap years; a malformed key is returned unchanged.
func FormatMonthRange(monthKey string) string {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return monthKey
	}
	lastDay := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return fmt.Sprintf("%s %d (1st - %dth)", t.Format("Jan"), t.Year(), lastDay)
}
