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

// Customers relie une identité utilisateur à son profil (un seul par identité).
type Customers struct {
	DB *sql.DB
}

func NewCustomers(db *sql.DB) *Customers {
	return &Customers{DB: db}
}

func (r *Customers) Create(ctx context.Context, customer *models.Customer) error {
	if customer.UserID == "" {
		return apperrors.Validation("Identité utilisateur manquante")
	}
	if customer.Membership == "" {
		customer.Membership = models.MembershipBronze
	}
	if !models.ValidMembership(customer.Membership) {
		return apperrors.Validation("Niveau d'adhésion invalide (B, S ou G)")
	}

	err := psql.Insert("customers").
		SetMap(map[string]interface{}{
			"user_id":    customer.UserID,
			"phone":      customer.Phone,
			"birth_date": customer.BirthDate,
			"membership": customer.Membership,
		}).
		Suffix("RETURNING id").
		RunWith(r.DB).
		QueryRowContext(ctx).
		Scan(&customer.ID)
	if err != nil {
		if isUniqueViolation(err, "customers_user_id_key") {
			return apperrors.Conflict("Un profil existe déjà pour cet utilisateur")
		}
		return fmt.Errorf("inserting customer: %w", err)
	}
	return nil
}

func (r *Customers) GetByUserID(ctx context.Context, userID string) (models.Customer, error) {
	var customer models.Customer
	var membership string
	err := psql.Select("id", "user_id", "phone", "birth_date", "membership").
		From("customers").
		Where(squirrel.Eq{"user_id": userID}).
		RunWith(r.DB).
		QueryRowContext(ctx).
		Scan(&customer.ID, &customer.UserID, &customer.Phone, &customer.BirthDate, &membership)
	if err == sql.ErrNoRows {
		return models.Customer{}, apperrors.NotFound("Profil introuvable")
	}
	if err != nil {
		return models.Customer{}, fmt.Errorf("selecting customer: %w", err)
	}
	customer.Membership = membership
	return customer, nil
}

// CustomerChangeSet porte les champs modifiables d'un profil.
type CustomerChangeSet struct {
	Phone      *string
	BirthDate  *time.Time
	Membership *string
}

func (cs CustomerChangeSet) toMap() map[string]interface{} {
	m := map[string]interface{}{}
	if cs.Phone != nil {
		m["phone"] = *cs.Phone
	}
	if cs.BirthDate != nil {
		m["birth_date"] = *cs.BirthDate
	}
	if cs.Membership != nil {
		m["membership"] = *cs.Membership
	}
	return m
}

// Update modifie le profil rattaché à userID. Le contrôle de propriété
// (identité appelante vs profil) est fait en amont via models.Ownable.
func (r *Customers) Update(ctx context.Context, userID string, changeSet CustomerChangeSet) (models.Customer, error) {
	if changeSet.Membership != nil && !models.ValidMembership(*changeSet.Membership) {
		return models.Customer{}, apperrors.Validation("Niveau d'adhésion invalide (B, S ou G)")
	}
	updates := changeSet.toMap()
	if len(updates) == 0 {
		return models.Customer{}, apperrors.Validation("Aucune donnée à mettre à jour")
	}

	res, err := psql.Update("customers").
		SetMap(updates).
		Where(squirrel.Eq{"user_id": userID}).
		RunWith(r.DB).
		ExecContext(ctx)
	if err != nil {
		return models.Customer{}, fmt.Errorf("updating customer: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return models.Customer{}, fmt.Errorf("getting affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return models.Customer{}, apperrors.NotFound("Profil introuvable")
	}
	return r.GetByUserID(ctx, userID)
}
