package category

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Snapshot is an immutable copy of the registry at one point in time.
type Snapshot struct {
	TaxInvoiced []string `json:"tax_invoiced"`
	ZeroRated   []string `json:"zero_rated"`
	Expense     []string `json:"expense"`
}

// RevenueNames returns every recognized revenue source: tax-invoiced, then
// zero-rated, then the catch-all, with names shared across groups collapsed
// to their first position.
func (s Snapshot) RevenueNames() []string {
	return uniqueNames(s.TaxInvoiced, s.ZeroRated, []string{Other})
}

// ExpenseNames returns the expense items with the catch-all always present.
func (s Snapshot) ExpenseNames() []string {
	return uniqueNames(s.Expense, []string{Other})
}

// GroupNames returns the sources of a single revenue group.
func (s Snapshot) GroupNames(g Group) []string {
	switch g {
	case GroupTaxInvoiced:
		return slices.Clone(s.TaxInvoiced)
	case GroupZeroRated:
		return slices.Clone(s.ZeroRated)
	}

	return nil
}

func uniqueNames(lists ...[]string) []string {
	seen := make(map[string]struct{})

	var out []string

	for _, list := range lists {
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}

			seen[name] = struct{}{}
			out = append(out, name)
		}
	}

	return out
}

// Registry holds the ordered, mutable category lists. Insertion order is the
// display order everywhere.
type Registry struct {
	mu      sync.RWMutex
	revenue map[Group][]string
	expense []string
}

// NewRegistry builds a registry from initial lists. Blank and repeated names
// are dropped.
func NewRegistry(taxInvoiced, zeroRated, expense []string) *Registry {
	return &Registry{
		revenue: map[Group][]string{
			GroupTaxInvoiced: sanitize(taxInvoiced),
			GroupZeroRated:   sanitize(zeroRated),
		},
		expense: sanitize(expense),
	}
}

// NewDefaultRegistry returns a registry seeded with the default lists.
func NewDefaultRegistry() *Registry {
	return NewRegistry(DefaultTaxInvoiced, DefaultZeroRated, DefaultExpense)
}

func sanitize(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || slices.Contains(out, n) {
			continue
		}

		out = append(out, n)
	}

	return out
}

func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Snapshot{
		TaxInvoiced: slices.Clone(r.revenue[GroupTaxInvoiced]),
		ZeroRated:   slices.Clone(r.revenue[GroupZeroRated]),
		Expense:     slices.Clone(r.expense),
	}
}

func (r *Registry) RevenueSources(g Group) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.revenue[g])
}

func (r *Registry) ExpenseItems() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.expense)
}

// AddRevenueSource appends name to the group. Blank names are ignored.
func (r *Registry) AddRevenueSource(g Group, name string) error {
	if _, err := ParseGroup(string(g)); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := add(r.revenue[g], name)
	if err != nil {
		return err
	}

	r.revenue[g] = list

	return nil
}

// RenameRevenueSource changes the name in place, keeping its position.
// Stored month entries keep their amounts under the old name.
func (r *Registry) RenameRevenueSource(g Group, oldName, newName string) error {
	if _, err := ParseGroup(string(g)); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return rename(r.revenue[g], oldName, newName)
}

func (r *Registry) RemoveRevenueSource(g Group, name string) error {
	if _, err := ParseGroup(string(g)); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := remove(r.revenue[g], name)
	if err != nil {
		return err
	}

	r.revenue[g] = list

	return nil
}

func (r *Registry) AddExpenseItem(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := add(r.expense, name)
	if err != nil {
		return err
	}

	r.expense = list

	return nil
}

func (r *Registry) RenameExpenseItem(oldName, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return rename(r.expense, oldName, newName)
}

func (r *Registry) RemoveExpenseItem(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := remove(r.expense, name)
	if err != nil {
		return err
	}

	r.expense = list

	return nil
}

func add(list []string, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return list, nil
	}

	if slices.Contains(list, name) {
		return list, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	return append(list, name), nil
}

func rename(list []string, oldName, newName string) error {
	idx := slices.Index(list, oldName)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, oldName)
	}

	newName = strings.TrimSpace(newName)
	if newName == oldName {
		return nil
	}

	if newName == "" {
		return fmt.Errorf("%w: new name is empty", ErrInvalidName)
	}

	if slices.Contains(list, newName) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, newName)
	}

	list[idx] = newName

	return nil
}

func remove(list []string, name string) ([]string, error) {
	idx := slices.Index(list, name)
	if idx < 0 {
		return list, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return slices.Delete(list, idx, idx+1), nil
}
