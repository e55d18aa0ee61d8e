package user

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/apperrors"
	"storefront_back_end/internal/database"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/repository"
)

func customers() *repository.Customers {
	return repository.NewCustomers(database.Postgres)
}

// canModify applique le contrôle de propriété : l'identité appelante ou un
// administrateur, via l'interface Ownable (pas d'introspection dynamique).
func canModify(c *gin.Context, entity models.Ownable) bool {
	if c.GetString("user_id") == entity.OwnerID() {
		return true
	}
	role, _ := c.Get("role")
	return role == "admin"
}

func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message})
		return
	}
	log.Printf("❌ Erreur interne: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne du serveur"})
}

//
// 🔵 GET /api/customers/me
//
func GetMyCustomer(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	customer, err := customers().GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

//
// 🟢 POST /api/customers
//
// Un seul profil par identité : un doublon est un conflit.
func CreateCustomer(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Phone      string     `json:"phone"`
		BirthDate  *time.Time `json:"birth_date"`
		Membership string     `json:"membership"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	customer := models.Customer{
		UserID:     userID,
		Phone:      input.Phone,
		BirthDate:  input.BirthDate,
		Membership: input.Membership,
	}

	if err := customers().Create(c.Request.Context(), &customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

//
// 🟠 PUT /api/customers/me
//
func UpdateMyCustomer(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	existing, err := customers().GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !canModify(c, existing) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Modification réservée au propriétaire du profil"})
		return
	}

	var input struct {
		Phone      *string    `json:"phone"`
		BirthDate  *time.Time `json:"birth_date"`
		Membership *string    `json:"membership"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	customer, err := customers().Update(c.Request.Context(), userID, repository.CustomerChangeSet{
		Phone:      input.Phone,
		BirthDate:  input.BirthDate,
		Membership: input.Membership,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
