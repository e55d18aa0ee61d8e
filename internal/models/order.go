package models

import "github.com/shopspring/decimal"

// OrderItem est créé par le flux de checkout (hors périmètre de ce service).
// Ici il est en lecture seule : son existence bloque la suppression d'un produit.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"order_id" db:"order_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
}
