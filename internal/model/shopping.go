package model

import (
	"encoding/json"
	"time"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

type ShoppingList struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	CreatedBy   string     `json:"createdBy"`
	Items       []Item     `json:"itemsProduct"`
	Status      Status     `json:"status"`
	TotalAmount float64    `json:"totalAmount"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
	PurchasedBy string     `json:"purchasedBy,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type Item struct {
	ID          string     `json:"_id"`
	ListID      string     `json:"shoppingListId,omitempty"`
	Name        string     `json:"name"`
	Quantity    float64    `json:"quantity"`
	Unit        string     `json:"unit"`
	Price       *float64   `json:"price,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	Notes       string     `json:"notes,omitempty"`
	Category    string     `json:"category,omitempty"`
	Order       *int       `json:"order,omitempty"`
	AddedBy     string     `json:"addedBy,omitempty"`
	AddedAt     *time.Time `json:"addedAt,omitempty"`
	ImageID     string     `json:"public_id,omitempty"`
	ImageURL    string     `json:"secure_url,omitempty"`
}

// ItemDraft is the raw add/edit form. Numeric fields arrive as typed text and
// are normalized before anything is sent to the backend.
type ItemDraft struct {
	Name     string     `json:"name"`
	Quantity FormNumber `json:"quantity"`
	Unit     string     `json:"unit"`
	Price    FormNumber `json:"price"`
	Notes    string     `json:"notes"`
	Category string     `json:"category"`
}

// ItemPatch is a partial edit; nil fields are left untouched.
type ItemPatch struct {
	Name        *string     `json:"name,omitempty"`
	Quantity    *FormNumber `json:"quantity,omitempty"`
	Unit        *string     `json:"unit,omitempty"`
	Price       *FormNumber `json:"price,omitempty"`
	Notes       *string     `json:"notes,omitempty"`
	Category    *string     `json:"category,omitempty"`
	IsCompleted *bool       `json:"isCompleted,omitempty"`
}

// NewItem is the create body for POST /shopping-lists/{id}/items.
type NewItem struct {
	Name        string  `json:"name" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	Unit        string  `json:"unit" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Notes       string  `json:"notes,omitempty"`
	Category    string  `json:"category,omitempty"`
	IsCompleted bool    `json:"isCompleted"`
	ListID      string  `json:"shoppingListId" validate:"required"`
	AddedBy     string  `json:"addedBy" validate:"required"`
	Order       *int    `json:"order,omitempty"`
}

// ItemUpdate is the partial body for PATCH /shopping-lists/items/{itemId}.
type ItemUpdate struct {
	Name        *string  `json:"name,omitempty" validate:"omitnil,min=1"`
	Quantity    *float64 `json:"quantity,omitempty" validate:"omitnil,gt=0"`
	Unit        *string  `json:"unit,omitempty" validate:"omitnil,min=1"`
	Price       *float64 `json:"price,omitempty" validate:"omitnil,gte=0"`
	Notes       *string  `json:"notes,omitempty"`
	Category    *string  `json:"category,omitempty"`
	IsCompleted *bool    `json:"isCompleted,omitempty"`
}

// Empty reports whether the update carries no field at all.
func (u ItemUpdate) Empty() bool {
	return u.Name == nil && u.Quantity == nil && u.Unit == nil && u.Price == nil &&
		u.Notes == nil && u.Category == nil && u.IsCompleted == nil
}

type NewList struct {
	Name      string `json:"name" validate:"required"`
	CreatedBy string `json:"createdBy" validate:"required"`
}

// ListPatch is what a screen may change on a list. totalAmount is owned by
// the backend and is deliberately absent.
type ListPatch struct {
	Name   *string `json:"name,omitempty"`
	Status *Status `json:"status,omitempty"`
}

// ListUpdate is the PATCH /shopping-lists/{id} body. ClearClosure sends
// explicit nulls for closedAt and purchasedBy.
type ListUpdate struct {
	Name         *string
	Status       *Status
	ClosedAt     *time.Time
	PurchasedBy  *string
	ClearClosure bool
}

func (u ListUpdate) MarshalJSON() ([]byte, error) {
	body := make(map[string]any)
	if u.Name != nil {
		body["name"] = *u.Name
	}
	if u.Status != nil {
		body["status"] = *u.Status
	}
	if u.ClearClosure {
		body["closedAt"] = nil
		body["purchasedBy"] = nil
	} else {
		if u.ClosedAt != nil {
			body["closedAt"] = u.ClosedAt.UTC()
		}
		if u.PurchasedBy != nil {
			body["purchasedBy"] = *u.PurchasedBy
		}
	}
	return json.Marshal(body)
}
