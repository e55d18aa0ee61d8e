package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"storefront_back_end/internal/apperrors"
	"storefront_back_end/internal/models"
)

// Catalog regroupe les accès produits et collections, y compris les gardes
// référentielles de suppression.
type Catalog struct {
	DB *sql.DB
}

func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{DB: db}
}

// --- Produits ---

func (r *Catalog) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	err := psql.Insert("products").
		SetMap(map[string]interface{}{
			"title":         p.Title,
			"slug":          p.Slug,
			"description":   p.Description,
			"unit_price":    p.UnitPrice,
			"inventory":     p.Inventory,
			"collection_id": p.CollectionID,
		}).
		Suffix("RETURNING id, last_update").
		RunWith(r.DB).
		QueryRowContext(ctx).
		Scan(&p.ID, &p.LastUpdate)
	if err != nil {
		if isUniqueViolation(err, "products_slug_key") {
			return apperrors.Conflict("Un produit avec ce slug existe déjà")
		}
		if isForeignKeyViolation(err, "products_collection_id_fkey") {
			return apperrors.NotFound("Collection introuvable")
		}
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

func (r *Catalog) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	var p models.Product
	err := psql.Select("id", "title", "slug", "description", "unit_price", "inventory", "collection_id", "last_update").
		From("products").
		Where(squirrel.Eq{"id": id}).
		RunWith(r.DB).
		QueryRowContext(ctx).
		Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.UnitPrice, &p.Inventory, &p.CollectionID, &p.LastUpdate)
	if err == sql.ErrNoRows {
		return models.Product{}, apperrors.NotFound("Produit introuvable")
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("selecting product: %w", err)
	}
	return p, nil
}

func (r *Catalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := psql.Select("id", "title", "slug", "description", "unit_price", "inventory", "collection_id", "last_update").
		From("products").
		OrderBy("id").
		RunWith(r.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.UnitPrice, &p.Inventory, &p.CollectionID, &p.LastUpdate); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ProductChangeSet porte les champs modifiables d'un produit (mise à jour partielle).
type ProductChangeSet struct {
	Title        *string
	Slug         *string
	Description  *string
	UnitPrice    *decimal.Decimal
	Inventory    *int
	CollectionID *int64
}

func (cs ProductChangeSet) toMap() map[string]interface{} {
	m := map[string]interface{}{}
	if cs.Title != nil {
		m["title"] = *cs.Title
	}
	if cs.Slug != nil {
		m["slug"] = *cs.Slug
	}
	if cs.Description != nil {
		m["description"] = *cs.Description
	}
	if cs.UnitPrice != nil {
		m["unit_price"] = *cs.UnitPrice
	}
	if cs.Inventory != nil {
		m["inventory"] = *cs.Inventory
	}
	if cs.CollectionID != nil {
		m["collection_id"] = *cs.CollectionID
	}
	return m
}

func (r *Catalog) UpdateProduct(ctx context.Context, id int64, changeSet ProductChangeSet) (models.Product, error) {
	updates := changeSet.toMap()
	if len(updates) == 0 {
		return models.Product{}, apperrors.Validation("Aucune donnée à mettre à jour")
	}
	if changeSet.Title != nil && *changeSet.Title == "" {
		return models.Product{}, apperrors.Validation("Le champ 'title' ne peut pas être vide")
	}
	if changeSet.UnitPrice != nil && changeSet.UnitPrice.IsNegative() {
		return models.Product{}, apperrors.Validation("Le prix unitaire doit être positif ou nul")
	}
	if changeSet.Inventory != nil && *changeSet.Inventory < 0 {
		return models.Product{}, apperrors.Validation("Le stock doit être positif ou nul")
	}
	updates["last_update"] = squirrel.Expr("now()")

	res, err := psql.Update("products").
		SetMap(updates).
		Where(squirrel.Eq{"id": id}).
		RunWith(r.DB).
		ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err, "products_slug_key") {
			return models.Product{}, apperrors.Conflict("Un produit avec ce slug existe déjà")
		}
		if isForeignKeyViolation(err, "products_collection_id_fkey") {
			return models.Product{}, apperrors.NotFound("Collection introuvable")
		}
		return models.Product{}, fmt.Errorf("updating product: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return models.Product{}, fmt.Errorf("getting affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return models.Product{}, apperrors.NotFound("Produit introuvable")
	}
	return r.GetProduct(ctx, id)
}

// DeleteProduct refuse la suppression tant qu'un order_item référence le
// produit. La vérification et la suppression partagent la même transaction
// pour fermer la fenêtre entre le check et le delete.
func (r *Catalog) DeleteProduct(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var referenced bool
	err = tx.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM order_items WHERE product_id = $1)", id).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("checking order items: %w", err)
	}
	if referenced {
		return apperrors.Conflict("Impossible de supprimer : le produit est associé à une commande")
	}

	res, err := psql.Delete("products").
		Where(squirrel.Eq{"id": id}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		// Filet de sécurité : la FK RESTRICT d'order_items peut encore se déclencher
		if isForeignKeyViolation(err, "order_items") {
			return apperrors.Conflict("Impossible de supprimer : le produit est associé à une commande")
		}
		return fmt.Errorf("deleting product: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("Produit introuvable")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// --- Collections ---

const productsCountExpr = "(SELECT COUNT(*) FROM products p WHERE p.collection_id = collections.id) AS products_count"

func (r *Catalog) CreateCollection(ctx context.Context, c *models.Collection) error {
	if c.Title == "" {
		return apperrors.Validation("Le champ 'title' est obligatoire")
	}

	err := psql.Insert("collections").
		SetMap(map[string]interface{}{
			"title":               c.Title,
			"featured_product_id": c.FeaturedProductID,
		}).
		Suffix("RETURNING id").
		RunWith(r.DB).
		QueryRowContext(ctx).
		Scan(&c.ID)
	if err != nil {
		if isForeignKeyViolation(err, "collections_featured_product_id_fkey") {
			return apperrors.NotFound("Produit vedette introuvable")
		}
		return fmt.Errorf("inserting collection: %w", err)
	}
	return nil
}

func (r *Catalog) GetCollection(ctx context.Context, id int64) (models.Collection, error) {
	var c models.Collection
	err := psql.Select("id", "title", "featured_product_id", productsCountExpr).
		From("collections").
		Where(squirrel.Eq{"id": id}).
		RunWith(r.DB).
		QueryRowContext(ctx).
		Scan(&c.ID, &c.Title, &c.FeaturedProductID, &c.ProductsCount)
	if err == sql.ErrNoRows {
		return models.Collection{}, apperrors.NotFound("Collection introuvable")
	}
	if err != nil {
		return models.Collection{}, fmt.Errorf("selecting collection: %w", err)
	}
	return c, nil
}

// ListCollections annote chaque collection avec products_count, recalculé
// par sous-requête à chaque lecture.
func (r *Catalog) ListCollections(ctx context.Context) ([]models.Collection, error) {
	rows, err := psql.Select("id", "title", "featured_product_id", productsCountExpr).
		From("collections").
		OrderBy("id").
		RunWith(r.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting collections: %w", err)
	}
	defer rows.Close()

	collections := []models.Collection{}
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Title, &c.FeaturedProductID, &c.ProductsCount); err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

func (r *Catalog) UpdateCollection(ctx context.Context, id int64, title *string, featuredProductID *int64) (models.Collection, error) {
	updates := map[string]interface{}{}
	if title != nil {
		if *title == "" {
			return models.Collection{}, apperrors.Validation("Le champ 'title' ne peut pas être vide")
		}
		updates["title"] = *title
	}
	if featuredProductID != nil {
		updates["featured_product_id"] = *featuredProductID
	}
	if len(updates) == 0 {
		return models.Collection{}, apperrors.Validation("Aucune donnée à mettre à jour")
	}

	res, err := psql.Update("collections").
		SetMap(updates).
		Where(squirrel.Eq{"id": id}).
		RunWith(r.DB).
		ExecContext(ctx)
	if err != nil {
		if isForeignKeyViolation(err, "collections_featured_product_id_fkey") {
			return models.Collection{}, apperrors.NotFound("Produit vedette introuvable")
		}
		return models.Collection{}, fmt.Errorf("updating collection: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return models.Collection{}, fmt.Errorf("getting affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return models.Collection{}, apperrors.NotFound("Collection introuvable")
	}
	return r.GetCollection(ctx, id)
}

// DeleteCollection refuse la suppression tant qu'un produit référence la
// collection, dans la même transaction que le delete.
func (r *Catalog) DeleteCollection(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var referenced bool
	err = tx.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM products WHERE collection_id = $1)", id).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("checking products: %w", err)
	}
	if referenced {
		return apperrors.Conflict("Impossible de supprimer : des produits utilisent cette collection")
	}

	res, err := psql.Delete("collections").
		Where(squirrel.Eq{"id": id}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		if isForeignKeyViolation(err, "products_collection_id_fkey") {
			return apperrors.Conflict("Impossible de supprimer : des produits utilisent cette collection")
		}
		return fmt.Errorf("deleting collection: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("Collection introuvable")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func validateProduct(p *models.Product) error {
	if p.Title == "" {
		return apperrors.Validation("Le champ 'title' est obligatoire")
	}
	if p.Slug == "" {
		return apperrors.Validation("Le champ 'slug' est obligatoire")
	}
	if p.UnitPrice.IsNegative() {
		return apperrors.Validation("Le prix unitaire doit être positif ou nul")
	}
	if p.Inventory < 0 {
		return apperrors.Validation("Le stock doit être positif ou nul")
	}
	return nil
}
