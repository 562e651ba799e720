package shopping

import (
	"github.com/shopspring/decimal"

	"github.com/dukerupert/listkeeper/internal/model"
)

type Progress struct {
	CompletedCount int     `json:"completedCount"`
	TotalCount     int     `json:"totalCount"`
	Ratio          float64 `json:"ratio"`
}

// ComputeProgress counts completed items. Ratio is 0 for an empty list.
func ComputeProgress(items []model.Item) Progress {
	p := Progress{TotalCount: len(items)}
	for _, item := range items {
		if item.IsCompleted {
			p.CompletedCount++
		}
	}
	if p.TotalCount > 0 {
		p.Ratio = float64(p.CompletedCount) / float64(p.TotalCount)
	}
	return p
}

// ComputeTotal sums price × quantity over items. Items without a price
// contribute nothing.
func ComputeTotal(items []model.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Price == nil {
			continue
		}
		line := decimal.NewFromFloat(*item.Price).Mul(decimal.NewFromFloat(item.Quantity))
		total = total.Add(line)
	}
	return total
}
