package dashboard

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/evlampy/storeboard/internal/analytics"
	"github.com/evlampy/storeboard/internal/dependency"
	"github.com/evlampy/storeboard/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Server assembles dashboard reports: it fetches storefront snapshots,
// reads the expense store and runs the aggregation engine.
type Server struct {
	repo      dependency.Repository
	src       dependency.ShopSource
	campaigns dependency.CampaignSource
	nowFn     func() time.Time
}

// New creates a new dashboard server. campaigns may be nil when the mail
// platform is not configured.
func New(r dependency.Repository, src dependency.ShopSource, campaigns dependency.CampaignSource) *Server {
	return &Server{
		repo:      r,
		src:       src,
		campaigns: campaigns,
		nowFn:     time.Now,
	}
}

// Overview is the full dashboard aggregate rendered on initial load.
type Overview struct {
	Sales     entity.SalesSummary
	Profit    entity.ProfitSummary
	Customers entity.CustomerSummary
	Campaigns []entity.CampaignStats
}

// windowedOrders fetches orders and applies the window and status filters.
func (s *Server) windowedOrders(ctx context.Context, window entity.TimeRange) ([]entity.Order, error) {
	orders, err := s.src.FetchOrders(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	filtered, err := analytics.FilterOrders(orders, window)
	if err != nil {
		return nil, err
	}
	return analytics.QualifyingOrders(filtered), nil
}

// SalesReport returns the sales summary for the window.
func (s *Server) SalesReport(ctx context.Context, window entity.TimeRange) (entity.SalesSummary, error) {
	orders, err := s.windowedOrders(ctx, window)
	if err != nil {
		return entity.SalesSummary{}, err
	}
	return analytics.SummarizeSales(orders), nil
}

// ProfitReport returns the profit summary for the window, joining order
// revenue with unit costs and tracked expenses.
func (s *Server) ProfitReport(ctx context.Context, window entity.TimeRange) (entity.ProfitSummary, error) {
	var (
		orders   []entity.Order
		products []entity.Product
		expenses []entity.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		orders, err = s.windowedOrders(gctx, window)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.src.FetchProducts(gctx)
		if err != nil {
			return fmt.Errorf("fetch products: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		expenses, err = s.repo.Expenses().GetExpensesInRange(gctx, window)
		if err != nil {
			return fmt.Errorf("get expenses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return entity.ProfitSummary{}, err
	}

	return analytics.SummarizeProfit(orders, entity.CostLookupFromProducts(products), expenses), nil
}

// CustomerReport returns the customer summary for the window. The full order
// history backs the new-vs-returning classification.
func (s *Server) CustomerReport(ctx context.Context, window entity.TimeRange) (entity.CustomerSummary, error) {
	if err := window.Validate(); err != nil {
		return entity.CustomerSummary{}, analytics.ErrInvalidWindow
	}

	var (
		allOrders []entity.Order
		customers []entity.Customer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		allOrders, err = s.src.FetchAllOrders(gctx)
		if err != nil {
			return fmt.Errorf("fetch order history: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		customers, err = s.src.FetchCustomers(gctx)
		if err != nil {
			return fmt.Errorf("fetch customers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return entity.CustomerSummary{}, err
	}

	return analytics.SummarizeCustomers(allOrders, customers, window)
}

// Basket returns product pairs bought together inside the window at or above
// minSupport co-occurrences.
func (s *Server) Basket(ctx context.Context, window entity.TimeRange, minSupport int) ([]entity.ProductPair, error) {
	orders, err := s.windowedOrders(ctx, window)
	if err != nil {
		return nil, err
	}
	return analytics.AnalyzeBaskets(orders, minSupport)
}

// Segments returns RFM customer segments computed over the full order
// history.
func (s *Server) Segments(ctx context.Context) ([]entity.CustomerSegment, error) {
	orders, err := s.src.FetchAllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch order history: %w", err)
	}
	return analytics.SegmentCustomers(analytics.QualifyingOrders(orders), s.nowFn()), nil
}

// Velocity returns per-product sales velocity over the trailing period.
func (s *Server) Velocity(ctx context.Context, periodDays int) ([]entity.ProductVelocity, error) {
	if periodDays == 0 {
		periodDays = analytics.DefaultVelocityPeriodDays
	}
	if periodDays < 0 {
		return nil, analytics.ErrInvalidPeriod
	}

	now := s.nowFn()
	window := entity.TimeRange{From: now.AddDate(0, 0, -(periodDays - 1)), To: now}

	var (
		orders   []entity.Order
		products []entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		orders, err = s.windowedOrders(gctx, window)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.src.FetchProducts(gctx)
		if err != nil {
			return fmt.Errorf("fetch products: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return analytics.AnalyzeVelocity(orders, products, periodDays, now)
}

// Forecast projects daily revenue forward from the trailing historyDays of
// sales. Gaps in the historical series count as zero-revenue days.
func (s *Server) Forecast(ctx context.Context, historyDays, forecastDays int) ([]entity.RevenueForecastPoint, error) {
	if historyDays <= 0 {
		historyDays = 90
	}
	now := s.nowFn()
	window := entity.TimeRange{From: now.AddDate(0, 0, -(historyDays - 1)), To: now}

	orders, err := s.windowedOrders(ctx, window)
	if err != nil {
		return nil, err
	}

	summary := analytics.SummarizeSales(orders)
	history := denseDailySeries(summary.ByDay, window)
	return analytics.ForecastRevenue(history, forecastDays), nil
}

// Campaigns returns email campaign stats, or an empty slice when no mail
// platform is configured.
func (s *Server) Campaigns(ctx context.Context) ([]entity.CampaignStats, error) {
	if s.campaigns == nil {
		return nil, nil
	}
	return s.campaigns.FetchCampaignStats(ctx)
}

// GetOverview assembles the full dashboard aggregate in parallel. A mail
// platform failure degrades to an empty campaign list instead of failing the
// whole dashboard.
func (s *Server) GetOverview(ctx context.Context, window entity.TimeRange) (*Overview, error) {
	if err := window.Validate(); err != nil {
		return nil, analytics.ErrInvalidWindow
	}

	var o Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		o.Sales, err = s.SalesReport(gctx, window)
		return err
	})
	g.Go(func() (err error) {
		o.Profit, err = s.ProfitReport(gctx, window)
		return err
	})
	g.Go(func() (err error) {
		o.Customers, err = s.CustomerReport(gctx, window)
		return err
	})
	g.Go(func() error {
		stats, err := s.Campaigns(gctx)
		if err != nil {
			slog.Default().ErrorContext(gctx, "can't fetch campaign stats",
				slog.String("err", err.Error()),
			)
			return nil
		}
		o.Campaigns = stats
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Expense write-through operations for the dashboard admin surface.

func (s *Server) AddExpense(ctx context.Context, insert *entity.ExpenseInsert) (*entity.Expense, error) {
	return s.repo.Expenses().AddExpense(ctx, insert)
}

func (s *Server) UpdateExpense(ctx context.Context, id string, insert *entity.ExpenseInsert) error {
	return s.repo.Expenses().UpdateExpense(ctx, id, insert)
}

func (s *Server) DeleteExpense(ctx context.Context, id string) error {
	return s.repo.Expenses().DeleteExpense(ctx, id)
}

func (s *Server) GetExpense(ctx context.Context, id string) (*entity.Expense, error) {
	return s.repo.Expenses().GetExpenseByID(ctx, id)
}

func (s *Server) GetExpenses(ctx context.Context, window entity.TimeRange) ([]entity.Expense, error) {
	if err := window.Validate(); err != nil {
		return nil, analytics.ErrInvalidWindow
	}
	return s.repo.Expenses().GetExpensesInRange(ctx, window)
}

// denseDailySeries expands the by-day breakdown into a contiguous daily
// series over the window so the forecaster's day indexes map to calendar
// days.
func denseDailySeries(byDay []entity.DailyPoint, window entity.TimeRange) []entity.DailyPoint {
	const layout = "2006-01-02"

	revenue := make(map[string]entity.DailyPoint, len(byDay))
	for _, p := range byDay {
		revenue[p.Date] = p
	}

	var series []entity.DailyPoint
	day := time.Date(window.From.Year(), window.From.Month(), window.From.Day(), 0, 0, 0, 0, window.From.Location())
	last := time.Date(window.To.Year(), window.To.Month(), window.To.Day(), 0, 0, 0, 0, window.To.Location())
	for !day.After(last) {
		key := day.Format(layout)
		if p, ok := revenue[key]; ok {
			series = append(series, p)
		} else {
			series = append(series, entity.DailyPoint{Date: key, Revenue: decimal.Zero})
		}
		day = day.AddDate(0, 0, 1)
	}
	return series
}
