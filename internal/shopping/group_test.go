package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dukerupert/listkeeper/internal/model"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		item model.Item
		want string
	}{
		{model.Item{Notes: "Dairy|2% milk"}, "Dairy"},
		{model.Item{Notes: " Bakery "}, "Bakery"},
		{model.Item{Notes: ""}, "General"},
		{model.Item{}, "General"},
		{model.Item{Notes: "|only a note"}, "General"},
		{model.Item{Category: "Frozen", Notes: "Dairy|x"}, "Frozen"},
		{model.Item{Category: "  ", Notes: "Produce|ripe"}, "Produce"},
	}
	for _, tt := range tests {
		if got := CategoryOf(tt.item); got != tt.want {
			t.Errorf("CategoryOf(%+v) = %q, want %q", tt.item, got, tt.want)
		}
	}
}

func TestGroupItemsExample(t *testing.T) {
	sections := GroupItems(exampleItems())
	if assert.Len(t, sections, 2) {
		assert.Equal(t, "Dairy", sections[0].Category)
		assert.Equal(t, "Milk", sections[0].Items[0].Name)
		assert.Equal(t, "Bakery", sections[1].Category)
		assert.Equal(t, "Bread", sections[1].Items[0].Name)
	}
}

func mixedItems() []model.Item {
	return []model.Item{
		{ID: "1", Name: "Apples", Category: "Produce"},
		{ID: "2", Name: "Milk", Notes: "Dairy|whole"},
		{ID: "3", Name: "Foil"},
		{ID: "4", Name: "Pears", Category: "Produce"},
		{ID: "5", Name: "Butter", Notes: "Dairy"},
		{ID: "6", Name: "Tape"},
	}
}

func TestGroupItemsFirstAppearanceOrder(t *testing.T) {
	sections := GroupItems(mixedItems())

	var got []string
	for _, s := range sections {
		got = append(got, s.Category)
	}
	assert.Equal(t, []string{"Produce", "Dairy", "General"}, got)
	assert.Equal(t, "Apples", sections[0].Items[0].Name)
	assert.Equal(t, "Pears", sections[0].Items[1].Name)
}

func TestGroupItemsIdempotent(t *testing.T) {
	first := GroupItems(mixedItems())
	second := GroupItems(flatten(first))
	assert.Equal(t, first, second)
}

func TestGroupItemsPreservesMembership(t *testing.T) {
	items := mixedItems()
	flat := flatten(GroupItems(items))

	assert.Len(t, flat, len(items))
	seen := make(map[string]int)
	for _, item := range flat {
		seen[item.ID]++
	}
	for _, item := range items {
		assert.Equal(t, 1, seen[item.ID], "item %s", item.ID)
	}
}

func TestGroupItemsEmpty(t *testing.T) {
	sections := GroupItems(nil)
	assert.NotNil(t, sections)
	assert.Empty(t, sections)
}

func flatten(sections []Section) []model.Item {
	var n int
	for _, s := range sections {
		n += len(s.Items)
	}
	items := make([]model.Item, 0, n)
	for _, s := range sections {
		items = append(items, s.Items...)
	}
	return items
}
