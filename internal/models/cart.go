package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int64              `bson:"quantity" json:"quantity"`
}

// One document per user; items stay ordered and never hold two entries for
// the same product. An emptied cart is a valid state, the document is never
// deleted.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type AddToCartRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"omitempty,min=1"`
}

// A cart line joined against the current catalog state.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
	Subtotal  float64 `json:"subtotal"`
}

type CartView struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}
