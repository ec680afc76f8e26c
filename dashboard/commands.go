package dashboard

import (
	"github.com/robinvdvleuten/insight/filter"
	"github.com/robinvdvleuten/insight/pager"
)

// View returns the main dashboard for the current state.
func (d *Dashboard) View() *View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view()
}

// OnFilterChanged replaces the filter criteria and returns both tables to
// their first page.
func (d *Dashboard) OnFilterChanged(c filter.Criteria) *View {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.Criteria = c
	d.state.ExpensePage = 1
	d.state.ReceiptPage = 1
	return d.view()
}

// OnExpenseSort reorders the expense table and returns it to its first page.
func (d *Dashboard) OnExpenseSort(key pager.SortKey) *View {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.ExpenseSort = key
	d.state.ExpensePage = 1
	return d.view()
}

// OnReceiptSort reorders the receipt table and returns it to its first page.
func (d *Dashboard) OnReceiptSort(key pager.SortKey) *View {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.ReceiptSort = key
	d.state.ReceiptPage = 1
	return d.view()
}

// OnExpensePage moves the expense table to page n, clamped into range.
func (d *Dashboard) OnExpensePage(n int) *View {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.ExpensePage = n
	return d.view()
}

// OnReceiptPage moves the receipt table to page n, clamped into range.
func (d *Dashboard) OnReceiptPage(n int) *View {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.ReceiptPage = n
	return d.view()
}
