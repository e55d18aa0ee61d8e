package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront_back_end/internal/apperrors"
	"storefront_back_end/internal/models"
)

// Carts implémente le moteur de panier : création de jetons opaques, upsert
// additif des quantités et agrégation des prix au moment de la lecture.
type Carts struct {
	DB *sql.DB
}

func NewCarts(db *sql.DB) *Carts {
	return &Carts{DB: db}
}

// Create alloue un panier vide identifié par un jeton aléatoire de 128 bits.
func (r *Carts) Create(ctx context.Context) (models.Cart, error) {
	cart := models.Cart{
		ID:         uuid.New(),
		Items:      []models.CartItem{},
		TotalPrice: decimal.Zero,
	}

	err := psql.Insert("carts").
		Columns("id").
		Values(cart.ID).
		Suffix("RETURNING created_at").
		RunWith(r.DB).
		QueryRowContext(ctx).
		Scan(&cart.CreatedAt)
	if err != nil {
		return models.Cart{}, fmt.Errorf("inserting cart: %w", err)
	}
	return cart, nil
}

// Get retourne le panier et ses items, chaque item annoté du total
// quantité × prix unitaire courant. Un panier vide a un total de 0.
func (r *Carts) Get(ctx context.Context, cartID uuid.UUID) (models.Cart, error) {
	cart := models.Cart{ID: cartID, Items: []models.CartItem{}, TotalPrice: decimal.Zero}

	err := psql.Select("created_at").
		From("carts").
		Where(squirrel.Eq{"id": cartID}).
		RunWith(r.DB).
		QueryRowContext(ctx).
		Scan(&cart.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Cart{}, apperrors.NotFound("Panier introuvable")
	}
	if err != nil {
		return models.Cart{}, fmt.Errorf("selecting cart: %w", err)
	}

	rows, err := psql.Select("ci.id", "ci.quantity", "p.id", "p.title", "p.unit_price").
		From("cart_items ci").
		Join("products p ON p.id = ci.product_id").
		Where(squirrel.Eq{"ci.cart_id": cartID}).
		OrderBy("ci.id").
		RunWith(r.DB).
		QueryContext(ctx)
	if err != nil {
		return models.Cart{}, fmt.Errorf("selecting cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := models.CartItem{CartID: cartID}
		if err := rows.Scan(&item.ID, &item.Quantity, &item.Product.ID, &item.Product.Title, &item.Product.UnitPrice); err != nil {
			return models.Cart{}, fmt.Errorf("scanning cart item: %w", err)
		}
		item.TotalPrice = item.Product.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		cart.TotalPrice = cart.TotalPrice.Add(item.TotalPrice)
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return models.Cart{}, fmt.Errorf("iterating cart items: %w", err)
	}
	return cart, nil
}

// AddItem fusionne les quantités : un ajout répété du même produit incrémente
// la ligne existante. L'upsert est une seule instruction SQL atomique appuyée
// sur l'index unique (cart_id, product_id) — jamais un read-then-write.
func (r *Carts) AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, apperrors.Validation("Quantité invalide : doit être au moins 1")
	}

	item := models.CartItem{CartID: cartID, Quantity: quantity}
	err := psql.Insert("cart_items").
		Columns("cart_id", "product_id", "quantity").
		Values(cartID, productID, quantity).
		Suffix("ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity RETURNING id, quantity").
		RunWith(r.DB).
		QueryRowContext(ctx).
		Scan(&item.ID, &item.Quantity)
	if err != nil {
		if isForeignKeyViolation(err, "cart_items_cart_id_fkey") {
			return models.CartItem{}, apperrors.NotFound("Panier introuvable")
		}
		if isForeignKeyViolation(err, "cart_items_product_id_fkey") {
			return models.CartItem{}, apperrors.NotFound("Produit introuvable")
		}
		return models.CartItem{}, fmt.Errorf("upserting cart item: %w", err)
	}

	return r.loadItem(ctx, cartID, item.ID)
}

// UpdateItem remplace la quantité d'un item existant (pas de fusion).
func (r *Carts) UpdateItem(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, apperrors.Validation("Quantité invalide : doit être au moins 1")
	}

	res, err := psql.Update("cart_items").
		Set("quantity", quantity).
		Where(squirrel.Eq{"id": itemID, "cart_id": cartID}).
		RunWith(r.DB).
		ExecContext(ctx)
	if err != nil {
		return models.CartItem{}, fmt.Errorf("updating cart item: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return models.CartItem{}, fmt.Errorf("getting affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return models.CartItem{}, apperrors.NotFound("Article introuvable dans ce panier")
	}

	return r.loadItem(ctx, cartID, itemID)
}

func (r *Carts) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	res, err := psql.Delete("cart_items").
		Where(squirrel.Eq{"id": itemID, "cart_id": cartID}).
		RunWith(r.DB).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("deleting cart item: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("Article introuvable dans ce panier")
	}
	return nil
}

// Delete supprime le panier ; les items suivent par cascade de FK.
func (r *Carts) Delete(ctx context.Context, cartID uuid.UUID) error {
	res, err := psql.Delete("carts").
		Where(squirrel.Eq{"id": cartID}).
		RunWith(r.DB).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("deleting cart: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("Panier introuvable")
	}
	return nil
}

// loadItem recharge un item avec sa vue produit et son total au prix courant.
func (r *Carts) loadItem(ctx context.Context, cartID uuid.UUID, itemID int64) (models.CartItem, error) {
	item := models.CartItem{CartID: cartID}
	err := psql.Select("ci.id", "ci.quantity", "p.id", "p.title", "p.unit_price").
		From("cart_items ci").
		Join("products p ON p.id = ci.product_id").
		Where(squirrel.Eq{"ci.id": itemID, "ci.cart_id": cartID}).
		RunWith(r.DB).
		QueryRowContext(ctx).
		Scan(&item.ID, &item.Quantity, &item.Product.ID, &item.Product.Title, &item.Product.UnitPrice)
	if err == sql.ErrNoRows {
		return models.CartItem{}, apperrors.NotFound("Article introuvable dans ce panier")
	}
	if err != nil {
		return models.CartItem{}, fmt.Errorf("selecting cart item: %w", err)
	}
	item.TotalPrice = item.Product.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return item, nil
}
