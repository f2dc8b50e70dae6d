package dto

import (
	"github.com/evlampy/storeboard/internal/entity"
	"github.com/shopspring/decimal"
)

// money renders a decimal as a plain JSON number. Engine decimals are
// already rounded where the contract requires it.
func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

type SalesSummary struct {
	GrossSales        float64               `json:"gross_sales"`
	NetSales          float64               `json:"net_sales"`
	TotalRefunds      float64               `json:"total_refunds"`
	TotalShipping     float64               `json:"total_shipping"`
	TotalTax          float64               `json:"total_tax"`
	TotalDiscount     float64               `json:"total_discount"`
	ItemsSold         int                   `json:"items_sold"`
	OrderCount        int                   `json:"order_count"`
	AverageOrderValue float64               `json:"average_order_value"`
	ByDay             []DailyPoint          `json:"by_day"`
	ByHour            []HourPoint           `json:"by_hour"`
	ByCountry         []CountryMetric       `json:"by_country"`
	ByPaymentMethod   []PaymentMethodMetric `json:"by_payment_method"`
	ByCategory        []CategoryMetric      `json:"by_category"`
	ByProduct         []ProductSalesMetric  `json:"by_product"`
}

type DailyPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type HourPoint struct {
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type CountryMetric struct {
	Country string  `json:"country"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type PaymentMethodMetric struct {
	Method  string  `json:"method"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type CategoryMetric struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Quantity int     `json:"quantity"`
}

type ProductSalesMetric struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Revenue   float64 `json:"revenue"`
	Quantity  int     `json:"quantity"`
}

func ConvertSalesSummary(s *entity.SalesSummary) *SalesSummary {
	out := &SalesSummary{
		GrossSales:        money(s.GrossSales),
		NetSales:          money(s.NetSales),
		TotalRefunds:      money(s.TotalRefunds),
		TotalShipping:     money(s.TotalShipping),
		TotalTax:          money(s.TotalTax),
		TotalDiscount:     money(s.TotalDiscount),
		ItemsSold:         s.ItemsSold,
		OrderCount:        s.OrderCount,
		AverageOrderValue: money(s.AverageOrderValue),
		ByDay:             make([]DailyPoint, 0, len(s.ByDay)),
		ByHour:            make([]HourPoint, 0, len(s.ByHour)),
		ByCountry:         make([]CountryMetric, 0, len(s.ByCountry)),
		ByPaymentMethod:   make([]PaymentMethodMetric, 0, len(s.ByPaymentMethod)),
		ByCategory:        make([]CategoryMetric, 0, len(s.ByCategory)),
		ByProduct:         make([]ProductSalesMetric, 0, len(s.ByProduct)),
	}
	for _, p := range s.ByDay {
		out.ByDay = append(out.ByDay, DailyPoint{Date: p.Date, Revenue: money(p.Revenue), Orders: p.Orders})
	}
	for _, p := range s.ByHour {
		out.ByHour = append(out.ByHour, HourPoint{Hour: p.Hour, Revenue: money(p.Revenue), Orders: p.Orders})
	}
	for _, p := range s.ByCountry {
		out.ByCountry = append(out.ByCountry, CountryMetric{Country: p.Country, Revenue: money(p.Revenue), Orders: p.Orders})
	}
	for _, p := range s.ByPaymentMethod {
		out.ByPaymentMethod = append(out.ByPaymentMethod, PaymentMethodMetric{Method: p.Method, Revenue: money(p.Revenue), Orders: p.Orders})
	}
	for _, p := range s.ByCategory {
		out.ByCategory = append(out.ByCategory, CategoryMetric{Category: p.Category, Revenue: money(p.Revenue), Quantity: p.Quantity})
	}
	for _, p := range s.ByProduct {
		out.ByProduct = append(out.ByProduct, ProductSalesMetric{ProductID: p.ProductID, Name: p.Name, Revenue: money(p.Revenue), Quantity: p.Quantity})
	}
	return out
}

type ProfitSummary struct {
	Revenue            float64                `json:"revenue"`
	TotalCOGS          float64                `json:"total_cogs"`
	TotalExpenses      float64                `json:"total_expenses"`
	GrossProfit        float64                `json:"gross_profit"`
	NetProfit          float64                `json:"net_profit"`
	GrossMargin        float64                `json:"gross_margin"`
	NetMargin          float64                `json:"net_margin"`
	ROI                float64                `json:"roi"`
	ByDate             []ProfitDatePoint      `json:"by_date"`
	ByProduct          []ProductProfitMetric  `json:"by_product"`
	ExpensesByCategory []ExpenseCategoryTotal `json:"expenses_by_category"`
}

type ProfitDatePoint struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	COGS     float64 `json:"cogs"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

type ProductProfitMetric struct {
	ProductID   int     `json:"product_id"`
	Name        string  `json:"name"`
	Revenue     float64 `json:"revenue"`
	COGS        float64 `json:"cogs"`
	Units       int     `json:"units"`
	GrossProfit float64 `json:"gross_profit"`
	Margin      float64 `json:"margin"`
}

type ExpenseCategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

func ConvertProfitSummary(s *entity.ProfitSummary) *ProfitSummary {
	out := &ProfitSummary{
		Revenue:            money(s.Revenue),
		TotalCOGS:          money(s.TotalCOGS),
		TotalExpenses:      money(s.TotalExpenses),
		GrossProfit:        money(s.GrossProfit),
		NetProfit:          money(s.NetProfit),
		GrossMargin:        s.GrossMargin,
		NetMargin:          s.NetMargin,
		ROI:                s.ROI,
		ByDate:             make([]ProfitDatePoint, 0, len(s.ByDate)),
		ByProduct:          make([]ProductProfitMetric, 0, len(s.ByProduct)),
		ExpensesByCategory: make([]ExpenseCategoryTotal, 0, len(s.ExpensesByCategory)),
	}
	for _, p := range s.ByDate {
		out.ByDate = append(out.ByDate, ProfitDatePoint{
			Date:     p.Date,
			Revenue:  money(p.Revenue),
			COGS:     money(p.COGS),
			Expenses: money(p.Expenses),
			Profit:   money(p.Profit),
		})
	}
	for _, p := range s.ByProduct {
		out.ByProduct = append(out.ByProduct, ProductProfitMetric{
			ProductID:   p.ProductID,
			Name:        p.Name,
			Revenue:     money(p.Revenue),
			COGS:        money(p.COGS),
			Units:       p.Units,
			GrossProfit: money(p.GrossProfit),
			Margin:      p.Margin,
		})
	}
	for _, p := range s.ExpensesByCategory {
		out.ExpensesByCategory = append(out.ExpensesByCategory, ExpenseCategoryTotal{
			Category: string(p.Category),
			Total:    money(p.Total),
		})
	}
	return out
}

type CustomerSummary struct {
	NewCustomers       int            `json:"new_customers"`
	ReturningCustomers int            `json:"returning_customers"`
	GuestOrders        int            `json:"guest_orders"`
	TotalCustomers     int            `json:"total_customers"`
	RetentionRate      float64        `json:"retention_rate"`
	AvgLifetimeValue   float64        `json:"avg_lifetime_value"`
	Attribution        []SourceMetric `json:"attribution"`
}

type SourceMetric struct {
	Source  string  `json:"source"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

func ConvertCustomerSummary(s *entity.CustomerSummary) *CustomerSummary {
	out := &CustomerSummary{
		NewCustomers:       s.NewCustomers,
		ReturningCustomers: s.ReturningCustomers,
		GuestOrders:        s.GuestOrders,
		TotalCustomers:     s.TotalCustomers,
		RetentionRate:      s.RetentionRate,
		AvgLifetimeValue:   money(s.AvgLifetimeValue),
		Attribution:        make([]SourceMetric, 0, len(s.Attribution)),
	}
	for _, a := range s.Attribution {
		out.Attribution = append(out.Attribution, SourceMetric{
			Source:  a.Source,
			Orders:  a.Orders,
			Revenue: money(a.Revenue),
		})
	}
	return out
}

type ProductPair struct {
	Product1ID   int     `json:"product1_id"`
	Product2ID   int     `json:"product2_id"`
	Product1Name string  `json:"product1_name"`
	Product2Name string  `json:"product2_name"`
	Frequency    int     `json:"frequency"`
	Confidence   float64 `json:"confidence"`
	Lift         float64 `json:"lift"`
}

func ConvertProductPairs(pairs []entity.ProductPair) []ProductPair {
	out := make([]ProductPair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, ProductPair{
			Product1ID:   p.Product1ID,
			Product2ID:   p.Product2ID,
			Product1Name: p.Product1Name,
			Product2Name: p.Product2Name,
			Frequency:    p.Frequency,
			Confidence:   p.Confidence,
			Lift:         p.Lift,
		})
	}
	return out
}

type CustomerSegment struct {
	Name          string  `json:"name"`
	Count         int     `json:"count"`
	Revenue       float64 `json:"revenue"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

func ConvertCustomerSegments(segments []entity.CustomerSegment) []CustomerSegment {
	out := make([]CustomerSegment, 0, len(segments))
	for _, s := range segments {
		out = append(out, CustomerSegment{
			Name:          s.Name,
			Count:         s.Count,
			Revenue:       money(s.Revenue),
			AvgOrderValue: money(s.AvgOrderValue),
		})
	}
	return out
}

type ProductVelocity struct {
	ProductID     int     `json:"product_id"`
	Name          string  `json:"name"`
	TotalSales    int     `json:"total_sales"`
	AvgDailySales float64 `json:"avg_daily_sales"`
	Trend         string  `json:"trend"`
	PercentChange float64 `json:"percent_change"`
	DaysToSellOut *int    `json:"days_to_sell_out"`
	Daily         []int   `json:"daily"`
}

func ConvertProductVelocities(velocities []entity.ProductVelocity) []ProductVelocity {
	out := make([]ProductVelocity, 0, len(velocities))
	for _, v := range velocities {
		out = append(out, ProductVelocity{
			ProductID:     v.ProductID,
			Name:          v.Name,
			TotalSales:    v.TotalSales,
			AvgDailySales: v.AvgDailySales,
			Trend:         v.Trend,
			PercentChange: v.PercentChange,
			DaysToSellOut: v.DaysToSellOut,
			Daily:         v.Daily,
		})
	}
	return out
}

type RevenueForecastPoint struct {
	Date      string  `json:"date"`
	Projected float64 `json:"projected"`
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
}

func ConvertForecast(points []entity.RevenueForecastPoint) []RevenueForecastPoint {
	out := make([]RevenueForecastPoint, 0, len(points))
	for _, p := range points {
		out = append(out, RevenueForecastPoint{
			Date:      p.Date.Format("2006-01-02"),
			Projected: money(p.Projected),
			Lower:     money(p.Lower),
			Upper:     money(p.Upper),
		})
	}
	return out
}

type CampaignStats struct {
	CampaignID string  `json:"campaign_id"`
	Name       string  `json:"name"`
	Delivered  int     `json:"delivered"`
	Opens      int     `json:"opens"`
	Clicks     int     `json:"clicks"`
	OpenRate   float64 `json:"open_rate"`
	ClickRate  float64 `json:"click_rate"`
}

func ConvertCampaignStats(stats []entity.CampaignStats) []CampaignStats {
	out := make([]CampaignStats, 0, len(stats))
	for _, s := range stats {
		out = append(out, CampaignStats{
			CampaignID: s.CampaignID,
			Name:       s.Name,
			Delivered:  s.Delivered,
			Opens:      s.Opens,
			Clicks:     s.Clicks,
			OpenRate:   s.OpenRate,
			ClickRate:  s.ClickRate,
		})
	}
	return out
}

type Overview struct {
	Sales     *SalesSummary    `json:"sales"`
	Profit    *ProfitSummary   `json:"profit"`
	Customers *CustomerSummary `json:"customers"`
	Campaigns []CampaignStats  `json:"campaigns"`
}
