package store

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/repository"
	"storefront_back_end/internal/services"
)

//
// 🟢 POST /api/products (admin)
//
func CreateProduct(c *gin.Context) {
	var input struct {
		Title        string          `json:"title"`
		Slug         string          `json:"slug"`
		Description  string          `json:"description"`
		UnitPrice    decimal.Decimal `json:"unit_price"`
		Inventory    int             `json:"inventory"`
		CollectionID int64           `json:"collection_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	p := models.Product{
		Title:        input.Title,
		Slug:         input.Slug,
		Description:  input.Description,
		UnitPrice:    input.UnitPrice,
		Inventory:    input.Inventory,
		CollectionID: input.CollectionID,
	}

	if err := catalog().CreateProduct(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}

	cache.InvalidateCatalogCache(c.Request.Context())

	// 🔄 Indexation Elasticsearch (best-effort)
	go services.IndexProduct(p)

	c.JSON(http.StatusCreated, p)
}

//
// 🔵 GET /api/products
//
func GetAllProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := cache.GetProductsFromCache(ctx); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := catalog().ListProducts(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	cache.SetProductsCache(ctx, products)
	c.JSON(http.StatusOK, products)
}

//
// 🔵 GET /api/products/:id
//
func GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	p, err := catalog().GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

//
// 🟠 PUT /api/products/:id (admin)
//
func UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Title        *string          `json:"title"`
		Slug         *string          `json:"slug"`
		Description  *string          `json:"description"`
		UnitPrice    *decimal.Decimal `json:"unit_price"`
		Inventory    *int             `json:"inventory"`
		CollectionID *int64           `json:"collection_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	p, err := catalog().UpdateProduct(c.Request.Context(), id, repository.ProductChangeSet{
		Title:        input.Title,
		Slug:         input.Slug,
		Description:  input.Description,
		UnitPrice:    input.UnitPrice,
		Inventory:    input.Inventory,
		CollectionID: input.CollectionID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	cache.InvalidateCatalogCache(c.Request.Context())
	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

//
// ❌ DELETE /api/products/:id (admin)
//
// Refusé tant qu'une ligne de commande référence le produit.
func DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	if err := catalog().DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	cache.InvalidateCatalogCache(c.Request.Context())
	go services.RemoveProduct(id)

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé avec succès"})
}
