package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           int64           `json:"id" db:"id"`
	Title        string          `json:"title" db:"title"`
	Slug         string          `json:"slug" db:"slug"`
	Description  string          `json:"description" db:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price" db:"unit_price"`
	Inventory    int             `json:"inventory" db:"inventory"`
	CollectionID int64           `json:"collection_id" db:"collection_id"`
	LastUpdate   time.Time       `json:"last_update" db:"last_update"`
}
