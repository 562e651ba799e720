package shopping

import (
	"strconv"
	"strings"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/model"
	"github.com/dukerupert/listkeeper/internal/validate"
)

const DefaultUnit = "unid"

// Quantity defaults to 1 when the text does not parse to a positive number.
func Quantity(raw model.FormNumber) float64 {
	if v, ok := raw.Float(); ok && v > 0 {
		return v
	}
	return 1
}

// Price defaults to 0 when the text does not parse to a non-negative number.
func Price(raw model.FormNumber) float64 {
	if v, ok := raw.Float(); ok && v >= 0 {
		return v
	}
	return 0
}

func Unit(raw string) string {
	if u := strings.TrimSpace(raw); u != "" {
		return u
	}
	return DefaultUnit
}

// NormalizeDraft turns an add-item form into a create body. The name is the
// only field that can reject the draft; numbers and unit fall back to
// defaults.
func NormalizeDraft(listID, addedBy string, d model.ItemDraft) (model.NewItem, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return model.NewItem{}, apperr.Validation("name is required").
			WithDetails(map[string]string{"name": "is required"})
	}
	item := model.NewItem{
		Name:     name,
		Quantity: Quantity(d.Quantity),
		Unit:     Unit(d.Unit),
		Price:    Price(d.Price),
		Notes:    strings.TrimSpace(d.Notes),
		Category: strings.TrimSpace(d.Category),
		ListID:   listID,
		AddedBy:  addedBy,
	}
	if err := validate.Struct(item); err != nil {
		return model.NewItem{}, err
	}
	return item, nil
}

// NormalizePatch applies the same defaulting as NormalizeDraft, but only to
// the fields present in the patch.
func NormalizePatch(p model.ItemPatch) (model.ItemUpdate, error) {
	var u model.ItemUpdate
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return model.ItemUpdate{}, apperr.Validation("name is required").
				WithDetails(map[string]string{"name": "is required"})
		}
		u.Name = &name
	}
	if p.Quantity != nil {
		q := Quantity(*p.Quantity)
		u.Quantity = &q
	}
	if p.Unit != nil {
		unit := Unit(*p.Unit)
		u.Unit = &unit
	}
	if p.Price != nil {
		price := Price(*p.Price)
		u.Price = &price
	}
	if p.Notes != nil {
		notes := strings.TrimSpace(*p.Notes)
		u.Notes = &notes
	}
	if p.Category != nil {
		category := strings.TrimSpace(*p.Category)
		u.Category = &category
	}
	u.IsCompleted = p.IsCompleted
	if u.Empty() {
		return model.ItemUpdate{}, apperr.Validation("nothing to update")
	}
	if err := validate.Struct(u); err != nil {
		return model.ItemUpdate{}, err
	}
	return u, nil
}

// DraftFromProduct pre-fills an item form from a catalog product.
func DraftFromProduct(p model.Product, categoryName string) model.ItemDraft {
	d := model.ItemDraft{
		Name:     p.Name,
		Unit:     p.DefaultUnit,
		Category: categoryName,
	}
	if p.DefaultQuantity != nil {
		d.Quantity = model.FormNumber(strconv.FormatFloat(*p.DefaultQuantity, 'f', -1, 64))
	}
	if p.DefaultPrice != nil {
		d.Price = model.FormNumber(strconv.FormatFloat(*p.DefaultPrice, 'f', -1, 64))
	}
	return d
}
