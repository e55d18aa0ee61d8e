package store

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/models"
)

//
// 🟢 POST /api/products/:id/reviews
//
func CreateReview(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Date        *time.Time `json:"date"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	review := models.Review{
		ProductID:   productID,
		Name:        input.Name,
		Description: input.Description,
	}
	if input.Date != nil {
		review.Date = *input.Date
	}

	if err := reviews().Create(c.Request.Context(), &review); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

//
// 🔵 GET /api/products/:id/reviews
//
func GetProductReviews(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	list, err := reviews().ListByProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
