package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
	"github.com/amriddinov-m/panasonic-api/internal/core/clock"
	"github.com/amriddinov-m/panasonic-api/internal/core/id"
	"github.com/amriddinov-m/panasonic-api/internal/core/tx"
	"github.com/amriddinov-m/panasonic-api/internal/core/types"
	"github.com/amriddinov-m/panasonic-api/internal/domain"
	"github.com/amriddinov-m/panasonic-api/internal/domain/catalogs/category"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents"
	"github.com/amriddinov-m/panasonic-api/internal/domain/documents/income"
	"github.com/amriddinov-m/panasonic-api/internal/domain/posting"
	"github.com/amriddinov-m/panasonic-api/internal/domain/registers/stock"
	"github.com/amriddinov-m/panasonic-api/internal/domain/reports"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/http/v1/middleware"
)

var testNow = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- fakes ---

type memCategories struct {
	items map[id.ID]*category.Category
}

func (r *memCategories) Create(_ context.Context, c *category.Category) error {
	r.items[c.ID] = c
	return nil
}

func (r *memCategories) GetByID(_ context.Context, v id.ID) (*category.Category, error) {
	c, ok := r.items[v]
	if !ok || c.DeletionMark {
		return nil, apperror.NewNotFound("category", v.String())
	}
	return c, nil
}

func (r *memCategories) Update(_ context.Context, c *category.Category) error {
	r.items[c.ID] = c
	return nil
}

func (r *memCategories) SetDeletionMark(_ context.Context, v id.ID, marked bool) error {
	r.items[v].DeletionMark = marked
	return nil
}

func (r *memCategories) List(_ context.Context, f domain.ListFilter) (domain.ListResult[*category.Category], error) {
	res := domain.ListResult[*category.Category]{Items: []*category.Category{}, Limit: f.Limit, Offset: f.Offset}
	for _, c := range r.items {
		if !c.DeletionMark {
			res.Items = append(res.Items, c)
		}
	}
	res.TotalCount = int64(len(res.Items))
	return res, nil
}

func (r *memCategories) Exists(_ context.Context, v id.ID) (bool, error) {
	c, ok := r.items[v]
	return ok && !c.DeletionMark, nil
}

// emptyReports has no facts at all.
type emptyReports struct{}

func (emptyReports) OutcomeLines(context.Context, reports.LineQuery) ([]reports.Line, error) {
	return nil, nil
}

func (emptyReports) OrderLines(context.Context, reports.LineQuery) ([]reports.Line, error) {
	return nil, nil
}

func (emptyReports) IncomeLines(context.Context, reports.LineQuery) ([]reports.Line, error) {
	return nil, nil
}

func (emptyReports) Orders(context.Context, reports.HeaderQuery) ([]reports.Header, error) {
	return nil, nil
}

func (emptyReports) Outcomes(context.Context, reports.HeaderQuery) ([]reports.Header, error) {
	return nil, nil
}

func (emptyReports) StockRows(context.Context, reports.StockQuery) ([]reports.StockRow, error) {
	return nil, nil
}

func (emptyReports) PlanItems(context.Context, reports.PlanQuery) ([]reports.PlanItem, error) {
	return nil, nil
}

func (emptyReports) WarehouseExists(context.Context, id.ID) (bool, error) {
	return false, nil
}

// --- harness ---

type harness struct {
	router *gin.Engine
	ledger *stock.MemoryRepository
}

func newHarness() *harness {
	base := NewBaseHandler()
	clk := clock.Fixed(testNow)

	ledgerRepo := stock.NewMemoryRepository()
	ledger := stock.NewService(ledgerRepo, tx.Nop{})
	incomes := income.NewService(documents.NewMemoryRepository[*income.Income, income.Status](), documents.Deps{
		TxManager: tx.Nop{},
		Engine:    posting.NewEngine(tx.Nop{}, ledger),
		Clock:     clk,
	})
	categories := category.NewService(&memCategories{items: map[id.ID]*category.Category{}}, tx.Nop{}, clk)
	reportSvc := reports.NewService(emptyReports{}, clk, reports.DefaultOptions())

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	api := router.Group("/api/v1")
	NewCategoryHandler(base, categories).RegisterRoutes(api.Group("/catalog/categories"))
	NewIncomeHandler(base, incomes).RegisterRoutes(api.Group("/documents/incomes"))
	NewStockHandler(base, ledger).RegisterRoutes(api.Group("/stock"))
	NewReportsHandler(base, reportSvc).RegisterRoutes(api.Group("/reports"))

	return &harness{router: router, ledger: ledgerRepo}
}

func (h *harness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// --- tests ---

func TestCategoryCRUD(t *testing.T) {
	h := newHarness()

	w := h.do(t, http.MethodPost, "/api/v1/catalog/categories", map[string]any{"name": "Air conditioners"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[category.Category](t, w)
	assert.Equal(t, "Air conditioners", created.Name)
	assert.False(t, id.IsNil(created.ID))

	w = h.do(t, http.MethodGet, "/api/v1/catalog/categories/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[category.Category](t, w).ID)

	w = h.do(t, http.MethodPut, "/api/v1/catalog/categories/"+created.ID.String(), map[string]any{"name": "Climate"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Climate", decode[category.Category](t, w).Name)

	w = h.do(t, http.MethodGet, "/api/v1/catalog/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Items      []category.Category `json:"items"`
		TotalCount int64               `json:"totalCount"`
	}](t, w)
	assert.Equal(t, int64(1), list.TotalCount)

	w = h.do(t, http.MethodDelete, "/api/v1/catalog/categories/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = h.do(t, http.MethodGet, "/api/v1/catalog/categories/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, decode[errorBody](t, w).Code)
}

func TestCategoryValidationErrors(t *testing.T) {
	h := newHarness()

	w := h.do(t, http.MethodPost, "/api/v1/catalog/categories", map[string]any{"status": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, decode[errorBody](t, w).Code)

	w = h.do(t, http.MethodGet, "/api/v1/catalog/categories/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, apperror.CodeValidation, body.Code)
	assert.Equal(t, "id", body.Details["field"])
}

func TestIncomeLifecyclePostsToLedger(t *testing.T) {
	h := newHarness()
	wh, p1, p2 := id.New(), id.New(), id.New()

	w := h.do(t, http.MethodPost, "/api/v1/documents/incomes", map[string]any{
		"clientId":    id.New(),
		"warehouseId": wh,
		"lines": []map[string]any{
			{"productId": p1, "count": 5, "price": "10.00"},
			{"productId": p2, "count": 2, "price": "3.50"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	doc := decode[income.Income](t, w)
	assert.Equal(t, income.StatusPending, doc.Status)
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("57")), doc.TotalAmount.String())
	assert.Len(t, doc.Lines, 2)
	assert.Equal(t, int64(-1), h.ledger.Quantity(wh, p1), "pending has no ledger effect")

	path := "/api/v1/documents/incomes/" + doc.ID.String() + "/status"
	w = h.do(t, http.MethodPost, path, map[string]any{"status": "finished"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, income.StatusFinished, decode[income.Income](t, w).Status)
	assert.Equal(t, int64(5), h.ledger.Quantity(wh, p1))
	assert.Equal(t, int64(2), h.ledger.Quantity(wh, p2))

	// finished is terminal
	w = h.do(t, http.MethodPost, path, map[string]any{"status": "pending"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.CodeInvalidTransition, decode[errorBody](t, w).Code)

	w = h.do(t, http.MethodPost, path, map[string]any{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodPost, path, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIncomeUpdateAppliesStatus(t *testing.T) {
	h := newHarness()
	wh, p1 := id.New(), id.New()
	client := id.New()

	w := h.do(t, http.MethodPost, "/api/v1/documents/incomes", map[string]any{
		"clientId":    client,
		"warehouseId": wh,
		"lines":       []map[string]any{{"productId": p1, "count": 1, "price": "2.00"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	docID := decode[income.Income](t, w).ID.String()

	body := map[string]any{
		"clientId":    client,
		"warehouseId": wh,
		"status":      "finished",
		"lines":       []map[string]any{{"productId": p1, "count": 4, "price": "2.00"}},
	}
	w = h.do(t, http.MethodPut, "/api/v1/documents/incomes/"+docID, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	doc := decode[income.Income](t, w)
	assert.Equal(t, income.StatusFinished, doc.Status)
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("8")), doc.TotalAmount.String())
	assert.Equal(t, int64(4), h.ledger.Quantity(wh, p1), "edited lines are posted")

	w = h.do(t, http.MethodGet, "/api/v1/documents/incomes/"+docID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, income.StatusFinished, decode[income.Income](t, w).Status)

	// finished documents are no longer editable
	w = h.do(t, http.MethodPut, "/api/v1/documents/incomes/"+docID, body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.CodeDocumentLocked, decode[errorBody](t, w).Code)
}

func TestIncomeUpdateRejectsUnknownStatus(t *testing.T) {
	h := newHarness()
	client, wh := id.New(), id.New()

	w := h.do(t, http.MethodPost, "/api/v1/documents/incomes", map[string]any{
		"clientId":    client,
		"warehouseId": wh,
		"lines":       []map[string]any{{"productId": id.New(), "count": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	docID := decode[income.Income](t, w).ID.String()

	w = h.do(t, http.MethodPut, "/api/v1/documents/incomes/"+docID, map[string]any{
		"clientId": client,
		"status":   "shipped",
		"lines":    []map[string]any{{"productId": id.New(), "count": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, decode[errorBody](t, w).Code)
}

func TestIncomeRejectsInvalidLines(t *testing.T) {
	h := newHarness()

	w := h.do(t, http.MethodPost, "/api/v1/documents/incomes", map[string]any{
		"clientId": id.New(),
		"lines":    []map[string]any{{"productId": id.New(), "count": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, decode[errorBody](t, w).Code)
}

func TestDocumentTransitionsTable(t *testing.T) {
	h := newHarness()

	w := h.do(t, http.MethodGet, "/api/v1/documents/incomes/transitions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	table := decode[struct {
		Entity   string   `json:"entity"`
		Initial  string   `json:"initial"`
		Statuses []string `json:"statuses"`
	}](t, w)
	assert.Equal(t, "income", table.Entity)
	assert.Equal(t, "pending", table.Initial)
	assert.Contains(t, table.Statuses, "finished")
}

func TestStockGetCreatesEmptyRow(t *testing.T) {
	h := newHarness()
	wh, p := id.New(), id.New()

	w := h.do(t, http.MethodGet, "/api/v1/stock/"+wh.String()+"/"+p.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	row := decode[stock.Row](t, w)
	assert.Equal(t, int64(0), row.Quantity)
	assert.Equal(t, wh, row.WarehouseID)
	assert.Equal(t, int64(0), h.ledger.Quantity(wh, p))

	w = h.do(t, http.MethodGet, "/api/v1/stock/"+wh.String()+"/bad", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportsEndpoints(t *testing.T) {
	h := newHarness()

	w := h.do(t, http.MethodGet, "/api/v1/reports/top-products?date_from=2024-06-01&date_to=garbage", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ranking := decode[reports.RankingReport](t, w)
	assert.Equal(t, reports.MetricAmount, ranking.Metric)
	assert.Equal(t, 0, ranking.Count)

	w = h.do(t, http.MethodGet, "/api/v1/reports/top-products?metric=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, decode[errorBody](t, w).Code)

	w = h.do(t, http.MethodGet, "/api/v1/reports/sales-volume/compare?mode=prev", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.do(t, http.MethodGet, "/api/v1/reports/forecast-shortages?window_days=-5", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2024-06-10", decode[reports.ForecastReport](t, w).Today)
}

func TestReportEndpointsServeEmptyResults(t *testing.T) {
	h := newHarness()

	tests := []struct {
		path  string
		limit int
	}{
		{path: "/api/v1/reports/sales-geography?warehouse=not-an-id"},
		{path: "/api/v1/reports/top-categories?limit=3", limit: 3},
		{path: "/api/v1/reports/stocks-by-warehouse-dealer"},
		{path: "/api/v1/reports/most-ordered-products?limit=9999", limit: reports.MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := h.do(t, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			body := decode[map[string]any](t, w)
			assert.Contains(t, body, "results")
			if tt.limit > 0 {
				assert.EqualValues(t, tt.limit, body["limit"])
			}
		})
	}
}
