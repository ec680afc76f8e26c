package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/robinvdvleuten/insight/dashboard"
	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/filter"
	"github.com/robinvdvleuten/insight/ledger"
	"github.com/robinvdvleuten/insight/loader"
	"github.com/robinvdvleuten/insight/pager"
)

// VersionResponse is the JSON response structure for the version endpoint.
type VersionResponse struct {
	Version string `json:"version"`
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, &VersionResponse{Version: s.Version})
}

// handleGetDashboard handles GET requests to /api/dashboard.
func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, s.dashboard.View())
}

// handleRefresh handles POST requests to /api/refresh. It answers 409 while
// another refresh is running and 502 when a feed could not be loaded.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	view, err := s.refresh(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSONResponse(w, view)
}

// handlePostFilters handles POST requests to /api/filters with a
// filter.Criteria body.
func (s *Server) handlePostFilters(w http.ResponseWriter, r *http.Request) {
	var criteria filter.Criteria
	if !decodeJSON(w, r, &criteria) {
		return
	}
	writeJSONResponse(w, s.dashboard.OnFilterChanged(criteria))
}

// SortRequest is the request body of the sort endpoints.
type SortRequest struct {
	Key pager.SortKey `json:"key"`
}

func (s *Server) decodeSort(w http.ResponseWriter, r *http.Request) (pager.SortKey, bool) {
	var request SortRequest
	if !decodeJSON(w, r, &request) {
		return "", false
	}
	if !request.Key.Valid() {
		http.Error(w, fmt.Sprintf("invalid sort key %q", request.Key), http.StatusBadRequest)
		return "", false
	}
	return request.Key, true
}

func (s *Server) handlePostExpenseSort(w http.ResponseWriter, r *http.Request) {
	key, ok := s.decodeSort(w, r)
	if !ok {
		return
	}
	writeJSONResponse(w, s.dashboard.OnExpenseSort(key))
}

func (s *Server) handlePostReceiptSort(w http.ResponseWriter, r *http.Request) {
	key, ok := s.decodeSort(w, r)
	if !ok {
		return
	}
	writeJSONResponse(w, s.dashboard.OnReceiptSort(key))
}

// handleGetExpenses handles GET requests to /api/expenses?page=N.
func (s *Server) handleGetExpenses(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}
	writeJSONResponse(w, s.dashboard.OnExpensePage(page))
}

// handleGetReceipts handles GET requests to /api/receipts?page=N.
func (s *Server) handleGetReceipts(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}
	writeJSONResponse(w, s.dashboard.OnReceiptPage(page))
}

// AccountsResponse is the JSON response structure for the accounts endpoint.
type AccountsResponse struct {
	Accounts []string `json:"accounts"`
}

// handleGetAccounts handles GET requests to /api/accounts.
// Returns every account of the current snapshot, sorted alphabetically.
func (s *Server) handleGetAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := s.dashboard.Accounts()
	if accounts == nil {
		accounts = []string{}
	}
	writeJSONResponse(w, &AccountsResponse{Accounts: accounts})
}

// handleGetReconcile handles GET requests to /api/reconcile.
func (s *Server) handleGetReconcile(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, s.dashboard.Reconcile())
}

// FeedResponse is the JSON response structure for the feeds endpoint.
type FeedResponse struct {
	Feed loader.Feed         `json:"feed"`
	Rows []map[string]string `json:"rows"`
}

// handleGetFeed handles GET requests to /api/feeds/{feed}.
// Returns the cleaned rows of one feed from the current snapshot.
func (s *Server) handleGetFeed(w http.ResponseWriter, r *http.Request) {
	feed := loader.Feed(mux.Vars(r)["feed"])
	snap := s.dashboard.Snapshot()

	var rows []dataset.Row
	switch feed {
	case loader.FeedExpenses:
		for _, e := range snap.Expenses {
			rows = append(rows, e.Row)
		}
	case loader.FeedReceipts:
		for _, rc := range snap.Receipts {
			rows = append(rows, rc.Row)
		}
	case loader.FeedContras:
		for _, c := range snap.Contras {
			rows = append(rows, c.Row)
		}
	default:
		http.Error(w, fmt.Sprintf("unknown feed %q", feed), http.StatusNotFound)
		return
	}

	response := &FeedResponse{Feed: feed, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		obj := make(map[string]string, len(row))
		for _, f := range row {
			obj[f.Name] = f.Value
		}
		response.Rows = append(response.Rows, obj)
	}
	writeJSONResponse(w, response)
}

// handleOpenLedger handles GET requests to /api/ledger/{account} and opens
// the account ledger with cleared filters.
func (s *Server) handleOpenLedger(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, s.dashboard.OpenAccountLedger(mux.Vars(r)["account"]))
}

// handleGetLedger handles GET requests to /api/ledger?page=N for the open
// account ledger.
func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(w, r)
	if !ok {
		return
	}
	view, err := s.dashboard.OnLedgerPage(page)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSONResponse(w, view)
}

func (s *Server) handlePostLedgerFilters(w http.ResponseWriter, r *http.Request) {
	var criteria ledger.Criteria
	if !decodeJSON(w, r, &criteria) {
		return
	}
	view, err := s.dashboard.OnLedgerFilterChanged(criteria)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSONResponse(w, view)
}

func (s *Server) handleOpenSupplier(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, s.dashboard.OpenSupplierLedger(mux.Vars(r)["supplier"]))
}

func (s *Server) handlePostSupplierFilters(w http.ResponseWriter, r *http.Request) {
	var criteria ledger.SupplierCriteria
	if !decodeJSON(w, r, &criteria) {
		return
	}
	view, err := s.dashboard.OnSupplierFilterChanged(criteria)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSONResponse(w, view)
}

func (s *Server) handleGetWorkType(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, s.dashboard.WorkTypeDetails(mux.Vars(r)["workType"]))
}

// handleChartClick handles GET requests to /api/charts/{chart}/{index} and
// opens the drill-down of the clicked chart label.
func (s *Server) handleChartClick(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid index %q", vars["index"]), http.StatusBadRequest)
		return
	}
	dd, err := s.dashboard.OnChartClick(dashboard.Chart(vars["chart"]), index)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSONResponse(w, dd)
}
