package models

type Collection struct {
	ID                int64  `json:"id" db:"id"`
	Title             string `json:"title" db:"title"`
	FeaturedProductID *int64 `json:"featured_product_id,omitempty" db:"featured_product_id"`

	// ProductsCount est recalculé à chaque lecture, jamais stocké.
	ProductsCount int64 `json:"products_count" db:"products_count"`
}
