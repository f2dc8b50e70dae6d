package analytics

import (
	"sort"

	"github.com/evlampy/storeboard/internal/entity"
	"github.com/shopspring/decimal"
)

// uncategorized is the category bucket for line items without a category tag.
const uncategorized = "Uncategorized"

// SummarizeSales computes scalar totals and dimensional breakdowns over a set
// of qualifying orders. Pure function: the same input always yields the same
// summary.
func SummarizeSales(orders []entity.Order) entity.SalesSummary {
	s := entity.SalesSummary{
		GrossSales:        decimal.Zero,
		NetSales:          decimal.Zero,
		TotalRefunds:      decimal.Zero,
		TotalShipping:     decimal.Zero,
		TotalTax:          decimal.Zero,
		TotalDiscount:     decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}

	byDay := map[string]*entity.DailyPoint{}
	byHour := make([]entity.HourPoint, 24)
	for h := range byHour {
		byHour[h] = entity.HourPoint{Hour: h, Revenue: decimal.Zero}
	}
	byCountry := map[string]*entity.CountryMetric{}
	byMethod := map[string]*entity.PaymentMethodMetric{}
	byCategory := map[string]*entity.CategoryMetric{}
	byProduct := map[int]*entity.ProductSalesMetric{}

	for i := range orders {
		o := &orders[i]
		net := o.NetTotal()

		s.GrossSales = s.GrossSales.Add(o.Totals.GrandTotal)
		s.NetSales = s.NetSales.Add(net)
		s.TotalRefunds = s.TotalRefunds.Add(o.RefundedTotal())
		s.TotalShipping = s.TotalShipping.Add(o.Totals.Shipping)
		s.TotalTax = s.TotalTax.Add(o.Totals.Tax)
		s.TotalDiscount = s.TotalDiscount.Add(o.Totals.Discount)
		s.OrderCount++

		day := o.CreatedAt.Format(dayKeyFormat)
		dp, ok := byDay[day]
		if !ok {
			dp = &entity.DailyPoint{Date: day, Revenue: decimal.Zero}
			byDay[day] = dp
		}
		dp.Revenue = dp.Revenue.Add(net)
		dp.Orders++

		h := o.CreatedAt.Hour()
		byHour[h].Revenue = byHour[h].Revenue.Add(net)
		byHour[h].Orders++

		country := o.Billing.Country
		if country == "" {
			country = "Unknown"
		}
		cm, ok := byCountry[country]
		if !ok {
			cm = &entity.CountryMetric{Country: country, Revenue: decimal.Zero}
			byCountry[country] = cm
		}
		cm.Revenue = cm.Revenue.Add(net)
		cm.Orders++

		method := o.PaymentMethodLabel
		if method == "" {
			method = "Unknown"
		}
		pm, ok := byMethod[method]
		if !ok {
			pm = &entity.PaymentMethodMetric{Method: method, Revenue: decimal.Zero}
			byMethod[method] = pm
		}
		pm.Revenue = pm.Revenue.Add(net)
		pm.Orders++

		for _, li := range o.LineItems {
			if li.Quantity > 0 {
				s.ItemsSold += li.Quantity
			}

			cat := li.Category
			if cat == "" {
				cat = uncategorized
			}
			catm, ok := byCategory[cat]
			if !ok {
				catm = &entity.CategoryMetric{Category: cat, Revenue: decimal.Zero}
				byCategory[cat] = catm
			}
			catm.Revenue = catm.Revenue.Add(li.LineTotal)
			if li.Quantity > 0 {
				catm.Quantity += li.Quantity
			}

			prm, ok := byProduct[li.ProductID]
			if !ok {
				prm = &entity.ProductSalesMetric{ProductID: li.ProductID, Name: li.Name, Revenue: decimal.Zero}
				byProduct[li.ProductID] = prm
			}
			prm.Revenue = prm.Revenue.Add(li.LineTotal)
			if li.Quantity > 0 {
				prm.Quantity += li.Quantity
			}
		}
	}

	if s.OrderCount > 0 {
		s.AverageOrderValue = s.NetSales.Div(decimal.NewFromInt(int64(s.OrderCount))).Round(2)
	}

	for _, dp := range byDay {
		s.ByDay = append(s.ByDay, *dp)
	}
	sort.Slice(s.ByDay, func(i, j int) bool { return s.ByDay[i].Date < s.ByDay[j].Date })

	s.ByHour = byHour

	for _, cm := range byCountry {
		s.ByCountry = append(s.ByCountry, *cm)
	}
	sort.Slice(s.ByCountry, func(i, j int) bool {
		return s.ByCountry[i].Revenue.GreaterThan(s.ByCountry[j].Revenue)
	})

	for _, pm := range byMethod {
		s.ByPaymentMethod = append(s.ByPaymentMethod, *pm)
	}
	sort.Slice(s.ByPaymentMethod, func(i, j int) bool {
		return s.ByPaymentMethod[i].Revenue.GreaterThan(s.ByPaymentMethod[j].Revenue)
	})

	for _, cm := range byCategory {
		s.ByCategory = append(s.ByCategory, *cm)
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		return s.ByCategory[i].Revenue.GreaterThan(s.ByCategory[j].Revenue)
	})

	for _, prm := range byProduct {
		s.ByProduct = append(s.ByProduct, *prm)
	}
	sort.Slice(s.ByProduct, func(i, j int) bool {
		return s.ByProduct[i].Revenue.GreaterThan(s.ByProduct[j].Revenue)
	})

	return s
}
