package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"storefront_back_end/internal/apperrors"
	"storefront_back_end/internal/models"
)

// Reviews stocke les avis, toujours rattachés à un produit.
type Reviews struct {
	DB *sql.DB
}

func NewReviews(db *sql.DB) *Reviews {
	return &Reviews{DB: db}
}

func (r *Reviews) Create(ctx context.Context, review *models.Review) error {
	if review.Name == "" {
		return apperrors.Validation("Le champ 'name' est obligatoire")
	}
	if review.Description == "" {
		return apperrors.Validation("Le champ 'description' est obligatoire")
	}
	if review.Date.IsZero() {
		review.Date = time.Now()
	}

	err := psql.Insert("reviews").
		SetMap(map[string]interface{}{
			"product_id":  review.ProductID,
			"name":        review.Name,
			"description": review.Description,
			"date":        review.Date,
		}).
		Suffix("RETURNING id, date").
		RunWith(r.DB).
		QueryRowContext(ctx).
		Scan(&review.ID, &review.Date)
	if err != nil {
		if isForeignKeyViolation(err, "reviews_product_id_fkey") {
			return apperrors.NotFound("Produit introuvable")
		}
		return fmt.Errorf("inserting review: %w", err)
	}
	return nil
}

// ListByProduct retourne les avis du produit. Un produit inconnu donne une
// liste vide, comme la route imbriquée d'origine.
func (r *Reviews) ListByProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	rows, err := psql.Select("id", "product_id", "name", "description", "date").
		From("reviews").
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("id").
		RunWith(r.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.ProductID, &review.Name, &review.Description, &review.Date); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
