package store

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/apperrors"
	"storefront_back_end/internal/database"
	"storefront_back_end/internal/repository"
)

func catalog() *repository.Catalog {
	return repository.NewCatalog(database.Postgres)
}

func carts() *repository.Carts {
	return repository.NewCarts(database.Postgres)
}

func reviews() *repository.Reviews {
	return repository.NewReviews(database.Postgres)
}

// respondError traduit les erreurs métier en réponse JSON ; tout le reste
// est une erreur interne loggée.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message})
		return
	}
	log.Printf("❌ Erreur interne: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne du serveur"})
}
