package dashboard

import (
	"github.com/robinvdvleuten/insight/filter"
	"github.com/robinvdvleuten/insight/pager"
)

// State is the filter and paging state of the main dashboard.
type State struct {
	Criteria    filter.Criteria `json:"criteria"`
	ExpenseSort pager.SortKey   `json:"expenseSort"`
	ReceiptSort pager.SortKey   `json:"receiptSort"`
	ExpensePage int             `json:"expensePage"`
	ReceiptPage int             `json:"receiptPage"`
}

// DefaultState shows everything, newest first, from the first page.
func DefaultState() State {
	return State{
		Criteria:    filter.AllCriteria(),
		ExpenseSort: pager.DateDesc,
		ReceiptSort: pager.DateDesc,
		ExpensePage: 1,
		ReceiptPage: 1,
	}
}

