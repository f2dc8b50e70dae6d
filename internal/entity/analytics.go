package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimeRange is the reporting window. The period filter treats it as
// start-of-day(From) through end-of-day(To), inclusive.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Validate rejects inverted windows. An inverted window is a caller bug, not
// dirty data, so it surfaces as an error instead of an empty result.
func (tr TimeRange) Validate() error {
	if tr.To.Before(tr.From) {
		return fmt.Errorf("time range from %s is after to %s", tr.From.Format("2006-01-02"), tr.To.Format("2006-01-02"))
	}
	return nil
}

// SalesSummary contains scalar totals and dimensional breakdowns over the
// qualifying orders of a reporting window.
type SalesSummary struct {
	GrossSales        decimal.Decimal
	NetSales          decimal.Decimal
	TotalRefunds      decimal.Decimal
	TotalShipping     decimal.Decimal
	TotalTax          decimal.Decimal
	TotalDiscount     decimal.Decimal
	ItemsSold         int
	OrderCount        int
	AverageOrderValue decimal.Decimal

	ByDay           []DailyPoint           // ascending by date
	ByHour          []HourPoint            // all 24 buckets, ascending by hour
	ByCountry       []CountryMetric        // descending by revenue
	ByPaymentMethod []PaymentMethodMetric  // descending by revenue
	ByCategory      []CategoryMetric       // descending by revenue
	ByProduct       []ProductSalesMetric   // descending by revenue
}

// DailyPoint is one day of net revenue. Date is formatted yyyy-mm-dd.
type DailyPoint struct {
	Date    string
	Revenue decimal.Decimal
	Orders  int
}

type HourPoint struct {
	Hour    int
	Revenue decimal.Decimal
	Orders  int
}

type CountryMetric struct {
	Country string
	Revenue decimal.Decimal
	Orders  int
}

type PaymentMethodMetric struct {
	Method  string
	Revenue decimal.Decimal
	Orders  int
}

type CategoryMetric struct {
	Category string
	Revenue  decimal.Decimal
	Quantity int
}

type ProductSalesMetric struct {
	ProductID int
	Name      string
	Revenue   decimal.Decimal
	Quantity  int
}

// ProfitSummary joins order revenue against unit costs and manually recorded
// expenses.
type ProfitSummary struct {
	Revenue       decimal.Decimal
	TotalCOGS     decimal.Decimal
	TotalExpenses decimal.Decimal
	GrossProfit   decimal.Decimal
	NetProfit     decimal.Decimal
	GrossMargin   float64 // percent
	NetMargin     float64 // percent
	ROI           float64 // percent

	ByDate             []ProfitDatePoint      // ascending by date
	ByProduct          []ProductProfitMetric  // descending by gross profit
	ExpensesByCategory []ExpenseCategoryTotal // descending by total
}

// ProfitDatePoint merges order revenue/COGS with expense cost for one date.
// A date with only expenses and no orders still appears.
type ProfitDatePoint struct {
	Date     string
	Revenue  decimal.Decimal
	COGS     decimal.Decimal
	Expenses decimal.Decimal
	Profit   decimal.Decimal
}

type ProductProfitMetric struct {
	ProductID   int
	Name        string
	Revenue     decimal.Decimal
	COGS        decimal.Decimal
	Units       int
	GrossProfit decimal.Decimal
	Margin      float64 // percent
}

type ExpenseCategoryTotal struct {
	Category ExpenseCategory
	Total    decimal.Decimal
}

// CustomerSummary describes the customer base for a reporting window.
type CustomerSummary struct {
	NewCustomers       int
	ReturningCustomers int
	GuestOrders        int
	TotalCustomers     int
	RetentionRate      float64 // percent of customers with more than one order
	AvgLifetimeValue   decimal.Decimal
	Attribution        []SourceMetric // descending by revenue
}

// SourceMetric accumulates orders and revenue per resolved acquisition source.
type SourceMetric struct {
	Source  string
	Orders  int
	Revenue decimal.Decimal
}

// ProductPair is a frequently-bought-together pair. The smaller product id is
// always first so the pair key is stable regardless of input order.
type ProductPair struct {
	Product1ID   int
	Product2ID   int
	Product1Name string
	Product2Name string
	Frequency    int
	Confidence   float64 // percent, P(product2 | product1)
	Lift         float64
}

// CustomerSegment is one RFM-style bucket of purchasing customers.
type CustomerSegment struct {
	Name          string
	Count         int
	Revenue       decimal.Decimal
	AvgOrderValue decimal.Decimal
}

// ProductVelocity is the trailing daily sales profile of one product.
type ProductVelocity struct {
	ProductID     int
	Name          string
	TotalSales    int
	AvgDailySales float64
	Trend         string // increasing, decreasing or stable
	PercentChange float64
	DaysToSellOut *int  // nil when stock is unknown or nothing sells
	Daily         []int // index 0 = today, increasing = further in the past
}

// RevenueForecastPoint is a projected daily revenue with a 95% band.
type RevenueForecastPoint struct {
	Date      time.Time
	Projected decimal.Decimal
	Lower     decimal.Decimal
	Upper     decimal.Decimal
}

// CampaignStats summarizes one email campaign as reported by the platform.
type CampaignStats struct {
	CampaignID string
	Name       string
	Delivered  int
	Opens      int
	Clicks     int
	OpenRate   float64 // percent
	ClickRate  float64 // percent
}
