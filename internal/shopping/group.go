package shopping

import (
	"strings"

	"github.com/dukerupert/listkeeper/internal/model"
)

const DefaultCategory = "General"

type Section struct {
	Category string       `json:"category"`
	Items    []model.Item `json:"items"`
}

// CategoryOf returns the grouping key of an item. The explicit category wins;
// older items carry it as the part of notes before the first "|".
func CategoryOf(item model.Item) string {
	if c := strings.TrimSpace(item.Category); c != "" {
		return c
	}
	if item.Notes == "" {
		return DefaultCategory
	}
	key, _, _ := strings.Cut(item.Notes, "|")
	if key = strings.TrimSpace(key); key != "" {
		return key
	}
	return DefaultCategory
}

// GroupItems splits items into sections keyed by category. Sections appear in
// the order their category is first seen; items keep their relative order.
func GroupItems(items []model.Item) []Section {
	sections := []Section{}
	index := make(map[string]int)
	for _, item := range items {
		key := CategoryOf(item)
		i, ok := index[key]
		if !ok {
			i = len(sections)
			index[key] = i
			sections = append(sections, Section{Category: key})
		}
		sections[i].Items = append(sections[i].Items, item)
	}
	return sections
}
