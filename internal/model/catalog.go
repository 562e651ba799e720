package model

import "time"

type Category struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	ImageID   *string    `json:"public_id"`
	ImageURL  *string    `json:"secure_url"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type CategoryInput struct {
	Name     string `json:"name" validate:"required,max=60"`
	Color    string `json:"color" validate:"omitempty,hexcolor"`
	ImageID  string `json:"public_id,omitempty"`
	ImageURL string `json:"secure_url,omitempty" validate:"omitempty,url"`
}

type Product struct {
	ID              string     `json:"_id"`
	Name            string     `json:"name"`
	Category        string     `json:"category,omitempty"`
	DefaultQuantity *float64   `json:"defaultQuantity,omitempty"`
	DefaultUnit     string     `json:"defaultUnit,omitempty"`
	DefaultPrice    *float64   `json:"defaultPrice,omitempty"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

type ProductInput struct {
	Name            string   `json:"name" validate:"required,max=120"`
	Category        string   `json:"category,omitempty"`
	DefaultQuantity *float64 `json:"defaultQuantity,omitempty" validate:"omitnil,gt=0"`
	DefaultUnit     string   `json:"defaultUnit,omitempty"`
	DefaultPrice    *float64 `json:"defaultPrice,omitempty" validate:"omitnil,gte=0"`
	ImageURL        string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
}
