package store

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/models"
)

//
// 🟢 POST /api/collections (admin)
//
func CreateCollection(c *gin.Context) {
	var input struct {
		Title             string `json:"title"`
		FeaturedProductID *int64 `json:"featured_product_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	col := models.Collection{
		Title:             input.Title,
		FeaturedProductID: input.FeaturedProductID,
	}

	if err := catalog().CreateCollection(c.Request.Context(), &col); err != nil {
		respondError(c, err)
		return
	}

	cache.InvalidateCatalogCache(c.Request.Context())
	c.JSON(http.StatusCreated, col)
}

//
// 🔵 GET /api/collections
//
// Chaque collection porte products_count, recalculé à la lecture.
func GetAllCollections(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := cache.GetCollectionsFromCache(ctx); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	collections, err := catalog().ListCollections(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	cache.SetCollectionsCache(ctx, collections)
	c.JSON(http.StatusOK, collections)
}

//
// 🔵 GET /api/collections/:id
//
func GetCollection(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID collection invalide"})
		return
	}

	col, err := catalog().GetCollection(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, col)
}

//
// 🟠 PUT /api/collections/:id (admin)
//
func UpdateCollection(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID collection invalide"})
		return
	}

	var input struct {
		Title             *string `json:"title"`
		FeaturedProductID *int64  `json:"featured_product_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	col, err := catalog().UpdateCollection(c.Request.Context(), id, input.Title, input.FeaturedProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	cache.InvalidateCatalogCache(c.Request.Context())
	c.JSON(http.StatusOK, col)
}

//
// ❌ DELETE /api/collections/:id (admin)
//
// Refusé tant que des produits appartiennent à la collection.
func DeleteCollection(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID collection invalide"})
		return
	}

	if err := catalog().DeleteCollection(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	cache.InvalidateCatalogCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Collection supprimée avec succès"})
}
