package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	ID         uuid.UUID       `json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []CartItem      `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type CartItem struct {
	ID       int64       `json:"id"`
	CartID   uuid.UUID   `json:"-"`
	Product  CartProduct `json:"product"`
	Quantity int         `json:"quantity"`

	// TotalPrice = quantity × prix unitaire courant du produit, calculé à la lecture.
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CartProduct est la vue réduite d'un produit embarquée dans un item de panier.
type CartProduct struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
