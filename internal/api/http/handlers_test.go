package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/evlampy/storeboard/internal/apisrv/auth"
	"github.com/evlampy/storeboard/internal/apisrv/dashboard"
	"github.com/evlampy/storeboard/internal/dependency"
	"github.com/evlampy/storeboard/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	orders []entity.Order
}

func (s *stubSource) FetchOrders(ctx context.Context, window entity.TimeRange) ([]entity.Order, error) {
	return s.orders, nil
}
func (s *stubSource) FetchAllOrders(ctx context.Context) ([]entity.Order, error) {
	return s.orders, nil
}
func (s *stubSource) FetchCustomers(ctx context.Context) ([]entity.Customer, error) {
	return nil, nil
}
func (s *stubSource) FetchProducts(ctx context.Context) ([]entity.Product, error) {
	return nil, nil
}

type stubExpenses struct{}

func (s *stubExpenses) AddExpense(ctx context.Context, insert *entity.ExpenseInsert) (*entity.Expense, error) {
	return &entity.Expense{ID: "e1", Date: insert.Date, Amount: insert.Amount, Category: insert.Category}, nil
}
func (s *stubExpenses) UpdateExpense(ctx context.Context, id string, insert *entity.ExpenseInsert) error {
	return nil
}
func (s *stubExpenses) DeleteExpense(ctx context.Context, id string) error { return nil }
func (s *stubExpenses) GetExpenseByID(ctx context.Context, id string) (*entity.Expense, error) {
	return &entity.Expense{ID: id}, nil
}
func (s *stubExpenses) GetExpensesInRange(ctx context.Context, window entity.TimeRange) ([]entity.Expense, error) {
	return nil, nil
}

type stubRepo struct{}

func (r *stubRepo) Expenses() dependency.Expenses { return &stubExpenses{} }
func (r *stubRepo) Tx(ctx context.Context, f func(context.Context, dependency.Repository) error) error {
	return f(ctx, r)
}
func (r *stubRepo) TxBegin(ctx context.Context) (dependency.Repository, error) { return r, nil }
func (r *stubRepo) TxCommit(ctx context.Context) error                         { return nil }
func (r *stubRepo) TxRollback(ctx context.Context) error                       { return nil }
func (r *stubRepo) Now() time.Time                                             { return time.Now() }
func (r *stubRepo) InTx() bool                                                 { return false }
func (r *stubRepo) Close()                                                     {}

func newTestAPI(t *testing.T) (http.Handler, string) {
	t.Helper()

	order := entity.Order{
		ID:        1,
		CreatedAt: time.Now().Add(-24 * time.Hour),
		Status:    entity.OrderStatusCompleted,
		Totals:    entity.OrderTotals{GrandTotal: decimal.RequireFromString("100.00")},
	}
	svc := dashboard.New(&stubRepo{}, &stubSource{orders: []entity.Order{order}}, nil)

	authSrv, err := auth.New(&auth.Config{
		JWTSecret:      "test_secret",
		MasterPassword: "test_password",
		JWTTTL:         "60m",
	})
	require.NoError(t, err)

	token, err := authSrv.Login(context.Background(), "test_password")
	require.NoError(t, err)

	s := New(&Config{Port: "8081"})
	return s.router(svc, authSrv), token
}

func TestAPI_Login(t *testing.T) {
	h, _ := newTestAPI(t)

	w := doRequest(t, h, http.MethodPost, "/auth/login", "", `{"password":"test_password"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		AuthToken string `json:"auth_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AuthToken)

	w = doRequest(t, h, http.MethodPost, "/auth/login", "", `{"password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAPI_RequiresToken(t *testing.T) {
	h, _ := newTestAPI(t)

	w := doRequest(t, h, http.MethodGet, "/api/reports/sales", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_Healthz(t *testing.T) {
	h, _ := newTestAPI(t)

	w := doRequest(t, h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPI_SalesReport(t *testing.T) {
	h, token := newTestAPI(t)

	w := doRequest(t, h, http.MethodGet, "/api/reports/sales", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		GrossSales float64 `json:"gross_sales"`
		OrderCount int     `json:"order_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 100.0, resp.GrossSales)
	assert.Equal(t, 1, resp.OrderCount)
}

func TestAPI_InvalidWindow(t *testing.T) {
	h, token := newTestAPI(t)

	w := doRequest(t, h, http.MethodGet, "/api/reports/sales?from=2024-03-20&to=2024-03-01", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodGet, "/api/reports/sales?from=garbage", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_BasketNegativeSupport(t *testing.T) {
	h, token := newTestAPI(t)

	w := doRequest(t, h, http.MethodGet, "/api/insights/basket?min_support=-1", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_AddExpense(t *testing.T) {
	h, token := newTestAPI(t)

	body := `{"date":"2024-03-10","amount":49.99,"category":"Marketing","description":"ads"}`
	w := doRequest(t, h, http.MethodPost, "/api/expenses/", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "e1", resp.ID)
	assert.Equal(t, 49.99, resp.Amount)
}

func TestAPI_AddExpenseBadDate(t *testing.T) {
	h, token := newTestAPI(t)

	body := `{"date":"10/03/2024","amount":49.99,"category":"Marketing"}`
	w := doRequest(t, h, http.MethodPost, "/api/expenses/", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_DeleteExpense(t *testing.T) {
	h, token := newTestAPI(t)

	w := doRequest(t, h, http.MethodDelete, "/api/expenses/e1", token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
