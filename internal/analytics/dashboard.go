package analytics

import (
	"github.com/rogerio-castellano/stock-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

const (
	recentActivityLimit = 5

	// The activity feed is a placeholder built from the snapshot; there is
	// no mutation log behind it.
	placeholderAction = "Restocked"
	placeholderActor  = "Admin"
	placeholderTime   = "2 hours ago"
)

type CategoryQuantity struct {
	Name  string
	Value int
}

type CategoryValue struct {
	Name  string
	Value decimal.Decimal
}

type Activity struct {
	ID     int
	Action string
	Item   string
	Time   string
	User   string
}

// DashboardSummary is the derived view of one inventory snapshot.
type DashboardSummary struct {
	TotalProducts             int
	LowStockCount             int
	OutOfStockCount           int
	TotalValue                decimal.Decimal
	LowStockItems             []models.Product
	OutOfStockItems           []models.Product
	CategoryDistribution      []CategoryQuantity
	CategoryValueDistribution []CategoryValue
	RecentActivity            []Activity
}

// ComputeDashboard aggregates a snapshot of products into a dashboard
// summary. The input slice is never modified and negative numbers are
// accepted as ordinary values.
func ComputeDashboard(records []models.Product) DashboardSummary {
	s := DashboardSummary{
		TotalProducts:             len(records),
		TotalValue:                decimal.Zero,
		LowStockItems:             []models.Product{},
		OutOfStockItems:           []models.Product{},
		CategoryDistribution:      []CategoryQuantity{},
		CategoryValueDistribution: []CategoryValue{},
		RecentActivity:            []Activity{},
	}

	quantities := newOrderedTotals(func(a, b int) int { return a + b })
	values := newOrderedTotals(func(a, b decimal.Decimal) decimal.Decimal { return a.Add(b) })

	for _, p := range records {
		if p.Quantity <= p.MinStock {
			s.LowStockItems = append(s.LowStockItems, p)
		}
		if p.Quantity == 0 {
			s.OutOfStockItems = append(s.OutOfStockItems, p)
		}

		value := p.Value()
		s.TotalValue = s.TotalValue.Add(value)
		quantities.Add(p.Category, p.Quantity)
		values.Add(p.Category, value)
	}

	s.LowStockCount = len(s.LowStockItems)
	s.OutOfStockCount = len(s.OutOfStockItems)

	quantities.Each(func(name string, v int) {
		s.CategoryDistribution = append(s.CategoryDistribution, CategoryQuantity{Name: name, Value: v})
	})
	values.Each(func(name string, v decimal.Decimal) {
		s.CategoryValueDistribution = append(s.CategoryValueDistribution, CategoryValue{Name: name, Value: v})
	})

	for i, p := range records {
		if i == recentActivityLimit {
			break
		}
		s.RecentActivity = append(s.RecentActivity, Activity{
			ID:     p.ID,
			Action: placeholderAction,
			Item:   p.Name,
			Time:   placeholderTime,
			User:   placeholderActor,
		})
	}

	return s
}
