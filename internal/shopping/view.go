package shopping

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/listkeeper/internal/model"
)

// ListView is everything a detail screen renders for one list. It is rebuilt
// from the latest fetch and never persisted.
type ListView struct {
	List          model.ShoppingList `json:"list"`
	Progress      Progress           `json:"progress"`
	Sections      []Section          `json:"sections"`
	ComputedTotal decimal.Decimal    `json:"computedTotal"`
	// Editable is false once the list is closed; screens hide item actions.
	Editable bool `json:"editable"`
}

func BuildView(list model.ShoppingList) ListView {
	if list.Items == nil {
		list.Items = []model.Item{}
	}
	return ListView{
		List:          list,
		Progress:      ComputeProgress(list.Items),
		Sections:      GroupItems(list.Items),
		ComputedTotal: ComputeTotal(list.Items),
		Editable:      list.Status != model.StatusClosed,
	}
}

// ListSummary is one row of the lists index.
type ListSummary struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Status        model.Status    `json:"status"`
	TotalAmount   float64         `json:"totalAmount"`
	ComputedTotal decimal.Decimal `json:"computedTotal"`
	Progress      Progress        `json:"progress"`
}

func Summarize(lists []model.ShoppingList) []ListSummary {
	out := make([]ListSummary, 0, len(lists))
	for _, l := range lists {
		out = append(out, ListSummary{
			ID:            l.ID,
			Name:          l.Name,
			Status:        l.Status,
			TotalAmount:   l.TotalAmount,
			ComputedTotal: ComputeTotal(l.Items),
			Progress:      ComputeProgress(l.Items),
		})
	}
	return out
}

// FilterByName keeps lists whose name contains query, ignoring case.
func FilterByName(lists []model.ShoppingList, query string) []model.ShoppingList {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return lists
	}
	var out []model.ShoppingList
	for _, l := range lists {
		if strings.Contains(strings.ToLower(l.Name), q) {
			out = append(out, l)
		}
	}
	return out
}
