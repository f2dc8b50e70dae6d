package analytics

import (
	"sort"

	"github.com/evlampy/storeboard/internal/entity"
	"github.com/shopspring/decimal"
)

// SummarizeProfit joins qualifying orders against a unit cost lookup and a
// snapshot of manually recorded expenses. Orders and expenses are expected to
// be pre-filtered to the same window; a date with only expenses and no orders
// still appears in the per-date breakdown.
func SummarizeProfit(orders []entity.Order, costs entity.CostLookup, expenses []entity.Expense) entity.ProfitSummary {
	p := entity.ProfitSummary{
		Revenue:       decimal.Zero,
		TotalCOGS:     decimal.Zero,
		TotalExpenses: decimal.Zero,
		GrossProfit:   decimal.Zero,
		NetProfit:     decimal.Zero,
	}

	byDate := map[string]*entity.ProfitDatePoint{}
	byProduct := map[int]*entity.ProductProfitMetric{}

	datePoint := func(key string) *entity.ProfitDatePoint {
		dp, ok := byDate[key]
		if !ok {
			dp = &entity.ProfitDatePoint{
				Date:     key,
				Revenue:  decimal.Zero,
				COGS:     decimal.Zero,
				Expenses: decimal.Zero,
			}
			byDate[key] = dp
		}
		return dp
	}

	for i := range orders {
		o := &orders[i]
		net := o.NetTotal()
		orderCOGS := decimal.Zero

		for _, li := range o.LineItems {
			if li.Quantity <= 0 {
				continue
			}
			qty := decimal.NewFromInt(int64(li.Quantity))
			cogs := costs.Cost(li.ProductID).Mul(qty)
			orderCOGS = orderCOGS.Add(cogs)

			pm, ok := byProduct[li.ProductID]
			if !ok {
				pm = &entity.ProductProfitMetric{
					ProductID: li.ProductID,
					Name:      li.Name,
					Revenue:   decimal.Zero,
					COGS:      decimal.Zero,
				}
				byProduct[li.ProductID] = pm
			}
			pm.Revenue = pm.Revenue.Add(li.LineTotal)
			pm.COGS = pm.COGS.Add(cogs)
			pm.Units += li.Quantity
		}

		p.Revenue = p.Revenue.Add(net)
		p.TotalCOGS = p.TotalCOGS.Add(orderCOGS)

		dp := datePoint(o.CreatedAt.Format(dayKeyFormat))
		dp.Revenue = dp.Revenue.Add(net)
		dp.COGS = dp.COGS.Add(orderCOGS)
	}

	expByCategory := map[entity.ExpenseCategory]decimal.Decimal{}
	for _, e := range expenses {
		p.TotalExpenses = p.TotalExpenses.Add(e.Amount)
		dp := datePoint(e.Date.Format(dayKeyFormat))
		dp.Expenses = dp.Expenses.Add(e.Amount)
		expByCategory[e.Category] = expByCategory[e.Category].Add(e.Amount)
	}

	p.GrossProfit = p.Revenue.Sub(p.TotalCOGS)
	p.NetProfit = p.GrossProfit.Sub(p.TotalExpenses)
	p.GrossMargin = pctOf(p.GrossProfit, p.Revenue)
	p.NetMargin = pctOf(p.NetProfit, p.Revenue)
	p.ROI = pctOf(p.NetProfit, p.TotalCOGS.Add(p.TotalExpenses))

	for _, dp := range byDate {
		dp.Profit = dp.Revenue.Sub(dp.COGS).Sub(dp.Expenses)
		p.ByDate = append(p.ByDate, *dp)
	}
	sort.Slice(p.ByDate, func(i, j int) bool { return p.ByDate[i].Date < p.ByDate[j].Date })

	for _, pm := range byProduct {
		pm.GrossProfit = pm.Revenue.Sub(pm.COGS)
		pm.Margin = pctOf(pm.GrossProfit, pm.Revenue)
		p.ByProduct = append(p.ByProduct, *pm)
	}
	sort.Slice(p.ByProduct, func(i, j int) bool {
		return p.ByProduct[i].GrossProfit.GreaterThan(p.ByProduct[j].GrossProfit)
	})

	for cat, total := range expByCategory {
		p.ExpensesByCategory = append(p.ExpensesByCategory, entity.ExpenseCategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(p.ExpensesByCategory, func(i, j int) bool {
		return p.ExpensesByCategory[i].Total.GreaterThan(p.ExpensesByCategory[j].Total)
	})

	return p
}
