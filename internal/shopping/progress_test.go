package shopping

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/listkeeper/internal/model"
)

func price(v float64) *float64 { return &v }

func exampleItems() []model.Item {
	return []model.Item{
		{ID: "i1", Name: "Milk", Notes: "Dairy", Price: price(2), Quantity: 2, IsCompleted: true},
		{ID: "i2", Name: "Bread", Notes: "Bakery", Price: price(3), Quantity: 1},
	}
}

func TestComputeProgressEmpty(t *testing.T) {
	p := ComputeProgress(nil)
	if p.TotalCount != 0 || p.CompletedCount != 0 || p.Ratio != 0 {
		t.Errorf("ComputeProgress(nil) = %+v, want zero", p)
	}
}

func TestComputeProgress(t *testing.T) {
	p := ComputeProgress(exampleItems())
	if p.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1", p.CompletedCount)
	}
	if p.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", p.TotalCount)
	}
	if p.Ratio != 0.5 {
		t.Errorf("Ratio = %v, want 0.5", p.Ratio)
	}
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []model.Item
		want  string
	}{
		{"empty", nil, "0"},
		{"example", exampleItems(), "7"},
		{"missing price", []model.Item{{Name: "Salt", Quantity: 3}, {Name: "Eggs", Quantity: 12, Price: price(0.25)}}, "3"},
		{"fractions", []model.Item{{Name: "Ham", Quantity: 0.3, Price: price(0.1)}}, "0.03"},
	}
	for _, tt := range tests {
		got := ComputeTotal(tt.items)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("%s: ComputeTotal = %s, want %s", tt.name, got, tt.want)
		}
	}
}
