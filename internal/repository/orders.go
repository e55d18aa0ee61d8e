package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"storefront_back_end/internal/models"
)

// InsertOrderItem écrit une ligne de commande. Le checkout qui les produit vit
// dans un autre service ; ici la fonction sert au flux d'import et aux tests
// des gardes de suppression. Elle accepte n'importe quel runner (DB ou Tx).
func InsertOrderItem(ctx context.Context, runner squirrel.BaseRunner, item *models.OrderItem) error {
	err := psql.Insert("order_items").
		SetMap(map[string]interface{}{
			"order_id":   item.OrderID,
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
		}).
		Suffix("RETURNING id").
		RunWith(runner).
		QueryRowContext(ctx).
		Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("inserting order item: %w", err)
	}
	return nil
}
