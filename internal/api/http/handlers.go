package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/evlampy/storeboard/internal/analytics"
	"github.com/evlampy/storeboard/internal/apisrv/auth"
	"github.com/evlampy/storeboard/internal/apisrv/dashboard"
	"github.com/evlampy/storeboard/internal/dto"
	"github.com/evlampy/storeboard/internal/entity"
	"github.com/evlampy/storeboard/internal/store"
)

const (
	windowLayout = "2006-01-02"

	// defaultWindowDays is the reporting window used when the request does
	// not pin one.
	defaultWindowDays = 30
)

type handlers struct {
	svc  *dashboard.Server
	auth *auth.Server
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	AuthToken string `json:"auth_token"`
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, errInvalidRequest(err))
		return
	}
	token, err := h.auth.Login(r.Context(), req.Password)
	if err != nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, &ErrResponse{StatusText: "Not authenticated."})
		return
	}
	render.JSON(w, r, &loginResponse{AuthToken: token})
}

// ErrResponse is the JSON error envelope.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	ErrorText  string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func errInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func errNotFound() render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "Resource not found.",
	}
}

func errInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     http.StatusText(http.StatusInternalServerError),
	}
}

// respondErr maps service errors onto the HTTP surface: precondition
// violations become 400s, unknown ids 404s, everything else a 500.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, analytics.ErrInvalidWindow),
		errors.Is(err, analytics.ErrInvalidSupport),
		errors.Is(err, analytics.ErrInvalidPeriod),
		errors.Is(err, store.ErrInvalidExpense):
		render.Render(w, r, errInvalidRequest(err))
	case errors.Is(err, store.ErrExpenseNotFound):
		render.Render(w, r, errNotFound())
	default:
		slog.Default().ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
		render.Render(w, r, errInternal(err))
	}
}

// parseWindow reads the from/to query params, defaulting to the trailing
// thirty days.
func parseWindow(r *http.Request) (entity.TimeRange, error) {
	now := time.Now()
	window := entity.TimeRange{From: now.AddDate(0, 0, -(defaultWindowDays - 1)), To: now}

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(windowLayout, v)
		if err != nil {
			return entity.TimeRange{}, analytics.ErrInvalidWindow
		}
		window.From = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(windowLayout, v)
		if err != nil {
			return entity.TimeRange{}, analytics.ErrInvalidWindow
		}
		window.To = t
	}
	if err := window.Validate(); err != nil {
		return entity.TimeRange{}, analytics.ErrInvalidWindow
	}
	return window, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func (h *handlers) getOverview(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	o, err := h.svc.GetOverview(r.Context(), window)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, &dto.Overview{
		Sales:     dto.ConvertSalesSummary(&o.Sales),
		Profit:    dto.ConvertProfitSummary(&o.Profit),
		Customers: dto.ConvertCustomerSummary(&o.Customers),
		Campaigns: dto.ConvertCampaignStats(o.Campaigns),
	})
}

func (h *handlers) getSalesReport(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	summary, err := h.svc.SalesReport(r.Context(), window)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertSalesSummary(&summary))
}

func (h *handlers) getProfitReport(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	summary, err := h.svc.ProfitReport(r.Context(), window)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertProfitSummary(&summary))
}

func (h *handlers) getCustomerReport(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	summary, err := h.svc.CustomerReport(r.Context(), window)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertCustomerSummary(&summary))
}

func (h *handlers) getBasket(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	minSupport, err := queryInt(r, "min_support")
	if err != nil {
		respondErr(w, r, analytics.ErrInvalidSupport)
		return
	}
	pairs, err := h.svc.Basket(r.Context(), window, minSupport)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertProductPairs(pairs))
}

func (h *handlers) getSegments(w http.ResponseWriter, r *http.Request) {
	segments, err := h.svc.Segments(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertCustomerSegments(segments))
}

func (h *handlers) getVelocity(w http.ResponseWriter, r *http.Request) {
	periodDays, err := queryInt(r, "period_days")
	if err != nil {
		respondErr(w, r, analytics.ErrInvalidPeriod)
		return
	}
	velocities, err := h.svc.Velocity(r.Context(), periodDays)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertProductVelocities(velocities))
}

func (h *handlers) getForecast(w http.ResponseWriter, r *http.Request) {
	historyDays, err := queryInt(r, "history_days")
	if err != nil {
		respondErr(w, r, analytics.ErrInvalidPeriod)
		return
	}
	forecastDays, err := queryInt(r, "forecast_days")
	if err != nil {
		respondErr(w, r, analytics.ErrInvalidPeriod)
		return
	}
	points, err := h.svc.Forecast(r.Context(), historyDays, forecastDays)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertForecast(points))
}

func (h *handlers) getCampaigns(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Campaigns(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertCampaignStats(stats))
}

func (h *handlers) listExpenses(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	expenses, err := h.svc.GetExpenses(r.Context(), window)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertExpenses(expenses))
}

func (h *handlers) addExpense(w http.ResponseWriter, r *http.Request) {
	var req dto.ExpenseRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, errInvalidRequest(err))
		return
	}
	insert, err := dto.ConvertExpenseRequest(&req)
	if err != nil {
		render.Render(w, r, errInvalidRequest(err))
		return
	}
	expense, err := h.svc.AddExpense(r.Context(), insert)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, dto.ConvertExpense(expense))
}

func (h *handlers) getExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.svc.GetExpense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	render.JSON(w, r, dto.ConvertExpense(expense))
}

func (h *handlers) updateExpense(w http.ResponseWriter, r *http.Request) {
	var req dto.ExpenseRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, errInvalidRequest(err))
		return
	}
	insert, err := dto.ConvertExpenseRequest(&req)
	if err != nil {
		render.Render(w, r, errInvalidRequest(err))
		return
	}
	if err := h.svc.UpdateExpense(r.Context(), chi.URLParam(r, "id"), insert); err != nil {
		respondErr(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *handlers) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	render.NoContent(w, r)
}
