package web

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/insight/dashboard"
	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/ledger"
	"github.com/robinvdvleuten/insight/loader"
)

const (
	expensesCSV = "Date,Project,Paid By,Supplier,Work Type,Total Amount,Paid Amount,Payables,Month,Year\n" +
		"05-Jan-2024,Tower A,ram kumar,Steel Co,Structure,\"1,000.00\",600.00,400.00,January,2024\n"
	receiptsCSV = "Date,Project,Stage,Received By,Amount,Month,Year\n" +
		"02-Jan-2024,Tower A,Booking,Ram Kumar,\"2,000.00\",January,2024\n"
	contrasCSV = "Date,From,To,Mode,Amount\n" +
		"06-Jan-2024,Ram Kumar,Sita,UPI,300\n"
)

type feeds struct {
	expenses, receipts, contras string
}

func writeFeeds(t *testing.T) feeds {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		assert.NoError(t, os.WriteFile(path, []byte(content), 0600))
		return path
	}
	return feeds{
		expenses: write("expenses.csv", expensesCSV),
		receipts: write("receipts.csv", receiptsCSV),
		contras:  write("contras.csv", contrasCSV),
	}
}

func newTestServer(t *testing.T, opts ...Option) (*Server, http.Handler, feeds) {
	t.Helper()
	f := writeFeeds(t)
	d := dashboard.New(loader.New(loader.WithLocations(f.expenses, f.receipts, f.contras)))
	s := New(d, opts...)
	_, err := s.refresh(context.Background())
	assert.NoError(t, err)
	return s, s.setupRouter(), f
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestAPIDashboard(t *testing.T) {
	_, h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	view := decode[dashboard.View](t, rec)
	assert.Equal(t, "₹ 1,000.00", view.Summary.TotalExpense)
	assert.Equal(t, "₹ 2,000.00", view.Summary.TotalReceipts)
	assert.Equal(t, "₹ 1,000.00", view.Summary.NetProfit)
	assert.Equal(t, 1, len(view.Expenses.Rows))
	assert.Equal(t, "Ram Kumar", view.Expenses.Rows[0][2])
}

func TestAPIFiltersAndPaging(t *testing.T) {
	_, h, _ := newTestServer(t)

	t.Run("Filters", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/filters", `{"project":"Tower B","year":"ALL"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		view := decode[dashboard.View](t, rec)
		assert.Equal(t, "Project: Tower B | ALL | ALL", view.Subtitle)
		assert.Equal(t, "No expense data", view.Expenses.Empty)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/filters", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Sort", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/expenses/sort", `{"key":"amount_desc"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		view := decode[dashboard.View](t, rec)
		assert.Equal(t, "amount_desc", string(view.State.ExpenseSort))

		rec = do(t, h, http.MethodPost, "/api/receipts/sort", `{"key":"sideways"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Page", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/receipts?page=7", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		view := decode[dashboard.View](t, rec)
		assert.Equal(t, 1, view.State.ReceiptPage)

		rec = do(t, h, http.MethodGet, "/api/expenses?page=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAPIRefresh(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		_, h, _ := newTestServer(t)
		rec := do(t, h, http.MethodPost, "/api/refresh", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("FeedFailure", func(t *testing.T) {
		_, h, f := newTestServer(t)
		assert.NoError(t, os.Remove(f.contras))

		rec := do(t, h, http.MethodPost, "/api/refresh", "")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "contras")

		// The previous snapshot is still served.
		rec = do(t, h, http.MethodGet, "/api/dashboard", "")
		view := decode[dashboard.View](t, rec)
		assert.Equal(t, "₹ 1,000.00", view.Summary.TotalExpense)
	})

	t.Run("InProgress", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		d := dashboard.New(blockingLoader{started: started, release: release})
		h := New(d).setupRouter()

		done := make(chan int, 1)
		go func() {
			done <- do(t, h, http.MethodPost, "/api/refresh", "").Code
		}()
		<-started

		rec := do(t, h, http.MethodPost, "/api/refresh", "")
		assert.Equal(t, http.StatusConflict, rec.Code)

		close(release)
		assert.Equal(t, http.StatusOK, <-done)
	})
}

type blockingLoader struct {
	started, release chan struct{}
}

func (l blockingLoader) Load(ctx context.Context) (*dataset.Snapshot, error) {
	close(l.started)
	<-l.release
	return dataset.Empty(), nil
}

func TestAPIDrilldown(t *testing.T) {
	_, h, _ := newTestServer(t)

	t.Run("PaidBy", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/charts/paidby/0", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		dd := decode[dashboard.Drilldown](t, rec)
		assert.Equal(t, "Ram Kumar", dd.Label)
		assert.Equal(t, "Account Ledger: Ram Kumar", dd.Ledger.Title)
		assert.Equal(t, "₹ 1,100.00", dd.Ledger.Balance)
	})

	t.Run("Errors", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/charts/trend/0", "").Code)
		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/charts/radar/0", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/charts/paidby/9", "").Code)
	})

	t.Run("Supplier", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/suppliers/Steel%20Co", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		v := decode[dashboard.SupplierLedgerView](t, rec)
		assert.Equal(t, "₹ 400.00", v.TotalPayables)

		rec = do(t, h, http.MethodPost, "/api/suppliers/filters", `{"project":"Tower B"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		v = decode[dashboard.SupplierLedgerView](t, rec)
		assert.Equal(t, "No supplier data found", v.Empty)
	})

	t.Run("WorkType", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/worktypes/Structure", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		v := decode[dashboard.WorkTypeView](t, rec)
		assert.Equal(t, "Work Type Details: Structure", v.Title)
		assert.Equal(t, 1, len(v.Rows))
	})
}

func TestAPILedger(t *testing.T) {
	_, h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/ledger?page=1", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/ledger/filters", `{}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/ledger/ram%20kumar", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	v := decode[dashboard.LedgerView](t, rec)
	assert.Equal(t, "Ram Kumar", v.Account)
	assert.Equal(t, 3, len(v.Rows))

	rec = do(t, h, http.MethodPost, "/api/ledger/filters", `{"kind":"Contra Out"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	v = decode[dashboard.LedgerView](t, rec)
	assert.Equal(t, 1, len(v.Rows))
	assert.Equal(t, "Transfer to Sita (UPI)", v.Rows[0].Description)

	rec = do(t, h, http.MethodGet, "/api/ledger?page=3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	v = decode[dashboard.LedgerView](t, rec)
	assert.Equal(t, 1, v.Page.Page)
}

func TestAPIAccountsAndReconcile(t *testing.T) {
	_, h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/accounts", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	accounts := decode[AccountsResponse](t, rec)
	assert.Equal(t, []string{"Ram Kumar", "Sita"}, accounts.Accounts)

	rec = do(t, h, http.MethodGet, "/api/reconcile", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	r := decode[ledger.Reconciliation](t, rec)
	assert.True(t, r.Balanced())
	assert.Equal(t, 2, len(r.Accounts))
}

func TestAPIFeeds(t *testing.T) {
	_, h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/feeds/expenses", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	feed := decode[FeedResponse](t, rec)
	assert.Equal(t, loader.FeedExpenses, feed.Feed)
	assert.Equal(t, 1, len(feed.Rows))
	assert.Equal(t, "Ram Kumar", feed.Rows[0][dataset.FieldPaidBy])
	assert.Equal(t, "1,000.00", feed.Rows[0][dataset.FieldTotalAmount])

	rec = do(t, h, http.MethodGet, "/api/feeds/invoices", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssets(t *testing.T) {
	t.Run("Embedded", func(t *testing.T) {
		_, h, _ := newTestServer(t)
		rec := do(t, h, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<title>Insight</title>")
	})

	t.Run("StaticDir", func(t *testing.T) {
		dir := t.TempDir()
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("custom frontend"), 0600))

		_, h, _ := newTestServer(t, WithStaticDir(dir))
		rec := do(t, h, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "custom frontend")
	})
}

func TestSSEReload(t *testing.T) {
	s, h, _ := newTestServer(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	assert.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer func() { _ = res.Body.Close() }()

	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	events := bufio.NewReader(res.Body)
	line, err := events.ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "data: connected\n", line)
	assert.Equal(t, 1, s.clients())

	_, err = s.refresh(context.Background())
	assert.NoError(t, err)

	_, _ = events.ReadString('\n') // blank separator
	line, err = events.ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "data: reload\n", line)
}

func TestSSEOutlivesWriteTimeout(t *testing.T) {
	s, h, _ := newTestServer(t)
	ts := httptest.NewUnstartedServer(h)
	ts.Config.WriteTimeout = 100 * time.Millisecond
	ts.Start()
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	assert.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer func() { _ = res.Body.Close() }()

	events := bufio.NewReader(res.Body)
	line, err := events.ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "data: connected\n", line)

	time.Sleep(300 * time.Millisecond)
	s.broadcast("reload")

	_, _ = events.ReadString('\n')
	line, err = events.ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "data: reload\n", line)
}

func TestWatcherRefreshesOnChange(t *testing.T) {
	s, _, f := newTestServer(t)
	s.WatchFiles = []string{f.expenses, f.receipts, f.contras}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.NoError(t, s.startWatcher(ctx))

	before := s.dashboard.Snapshot().ID
	updated := expensesCSV + "07-Jan-2024,Tower A,Sita,Cement Ltd,Structure,500,500,0,January,2024\n"
	assert.NoError(t, os.WriteFile(f.expenses, []byte(updated), 0600))

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if snap := s.dashboard.Snapshot(); snap.ID != before && len(snap.Expenses) == 2 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("dashboard was not refreshed after the feed changed")
}

func TestSchedulerRejectsInvalidSpec(t *testing.T) {
	s, _, _ := newTestServer(t, WithSchedule("every now and then"))
	err := s.startScheduler(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{dashboard.ErrRefreshInProgress, http.StatusConflict},
		{dashboard.ErrNoLedgerOpen, http.StatusConflict},
		{&loader.FeedError{Feed: loader.FeedExpenses, Err: os.ErrNotExist}, http.StatusBadGateway},
		{dashboard.ErrUnknownChart, http.StatusNotFound},
		{&dashboard.ChartIndexError{Chart: dashboard.ChartPaidBy, Index: 3}, http.StatusBadRequest},
		{os.ErrPermission, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
