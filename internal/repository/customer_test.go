package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/apperrors"
	"storefront_back_end/internal/models"
)

func TestCreateCustomerDefaultsToBronze(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewCustomers(testDB)

	customer := models.Customer{UserID: "user-1", Phone: "+3212345678"}
	require.NoError(t, repo.Create(ctx, &customer))
	assert.Equal(t, models.MembershipBronze, customer.Membership)
	assert.NotZero(t, customer.ID)
}

func TestCreateCustomerDuplicateConflict(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewCustomers(testDB)

	require.NoError(t, repo.Create(ctx, &models.Customer{UserID: "user-1"}))

	err := repo.Create(ctx, &models.Customer{UserID: "user-1"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestCreateCustomerInvalidMembership(t *testing.T) {
	resetTables(t)

	err := NewCustomers(testDB).Create(context.Background(), &models.Customer{UserID: "user-1", Membership: "X"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestGetCustomerByUserID(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewCustomers(testDB)

	birth := time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)
	created := models.Customer{UserID: "user-1", Phone: "+3212345678", BirthDate: &birth, Membership: models.MembershipGold}
	require.NoError(t, repo.Create(ctx, &created))

	got, err := repo.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, models.MembershipGold, got.Membership)
	assert.Equal(t, "user-1", got.OwnerID())

	_, err = repo.GetByUserID(ctx, "inconnu")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateCustomer(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := NewCustomers(testDB)

	require.NoError(t, repo.Create(ctx, &models.Customer{UserID: "user-1", Phone: "+321"}))

	phone := "+324999"
	silver := models.MembershipSilver
	updated, err := repo.Update(ctx, "user-1", CustomerChangeSet{Phone: &phone, Membership: &silver})
	require.NoError(t, err)
	assert.Equal(t, "+324999", updated.Phone)
	assert.Equal(t, models.MembershipSilver, updated.Membership)

	bad := "Z"
	_, err = repo.Update(ctx, "user-1", CustomerChangeSet{Membership: &bad})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = repo.Update(ctx, "user-1", CustomerChangeSet{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = repo.Update(ctx, "inconnu", CustomerChangeSet{Phone: &phone})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
