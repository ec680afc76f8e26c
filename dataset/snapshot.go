package dataset

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the complete in-memory state of the three feeds. It is rebuilt
// wholesale on every refresh and never mutated afterwards.
type Snapshot struct {
	ID       uuid.UUID `json:"id"`
	LoadedAt time.Time `json:"loadedAt"`

	Expenses []*Expense `json:"expenses"`
	Receipts []*Receipt `json:"receipts"`
	Contras  []*Contra  `json:"contras"`
}

// Empty returns a snapshot without any rows. It is the state of a dashboard
// before its first successful refresh.
func Empty() *Snapshot {
	return &Snapshot{}
}

// NewSnapshot cleans the raw rows of each feed, discards empty rows and builds
// the typed records.
func NewSnapshot(expenses, receipts, contras []Row) *Snapshot {
	s := &Snapshot{
		ID:       uuid.New(),
		LoadedAt: time.Now(),
	}

	for _, row := range RemoveEmptyRows(expenses) {
		s.Expenses = append(s.Expenses, NewExpense(row))
	}
	for _, row := range RemoveEmptyRows(receipts) {
		s.Receipts = append(s.Receipts, NewReceipt(row))
	}
	for _, row := range RemoveEmptyRows(contras) {
		s.Contras = append(s.Contras, NewContra(row))
	}

	return s
}

// Options are the distinct values offered by the dashboard filter controls.
type Options struct {
	Projects   []string `json:"projects"`
	Years      []string `json:"years"`
	Months     []string `json:"months"`
	Suppliers  []string `json:"suppliers"`
	PaidBy     []string `json:"paidBy"`
	ReceivedBy []string `json:"receivedBy"`
}

// Options collects the filter values of the snapshot. Contra senders are
// offered as payers and contra receivers as receivers.
func (s *Snapshot) Options() Options {
	projects := newValueSet()
	years := newValueSet()
	months := newValueSet()
	suppliers := newValueSet()
	paidBy := newValueSet()
	receivedBy := newValueSet()

	for _, e := range s.Expenses {
		projects.add(e.Project)
		years.add(e.Year)
		months.add(e.Month)
		suppliers.add(e.Supplier)
		paidBy.add(e.PaidBy)
	}
	for _, r := range s.Receipts {
		projects.add(r.Project)
		years.add(r.Year)
		months.add(r.Month)
		receivedBy.add(r.ReceivedBy)
	}
	for _, c := range s.Contras {
		paidBy.add(c.From)
		receivedBy.add(c.To)
	}

	return Options{
		Projects:   projects.sorted(),
		Years:      years.sorted(),
		Months:     months.sorted(),
		Suppliers:  suppliers.sorted(),
		PaidBy:     paidBy.sorted(),
		ReceivedBy: receivedBy.sorted(),
	}
}

// valueSet collects distinct non-empty strings.
type valueSet map[string]struct{}

func newValueSet() valueSet {
	return make(valueSet)
}

func (v valueSet) add(s string) {
	if s != "" {
		v[s] = struct{}{}
	}
}

func (v valueSet) sorted() []string {
	values := make([]string, 0, len(v))
	for s := range v {
		values = append(values, s)
	}
	sort.Strings(values)
	return values
}

// SortedValues returns the distinct non-empty values produced by fn, sorted.
func SortedValues[T any](items []T, fn func(T) string) []string {
	set := newValueSet()
	for _, item := range items {
		set.add(fn(item))
	}
	return set.sorted()
}
