package cache

import (
	"context"
	"encoding/json"
	"time"

	"storefront_back_end/internal/database"
	"storefront_back_end/internal/models"
)

const (
	CollectionsCacheTTL = time.Hour
	ProductsCacheTTL    = 10 * time.Minute

	collectionsKey = "collections:all"
	productsKey    = "products:all"
)

// GetCollectionsFromCache lit la liste des collections depuis Redis.
func GetCollectionsFromCache(ctx context.Context) ([]models.Collection, bool) {
	if database.Redis == nil {
		return nil, false
	}
	data, err := database.Redis.Get(ctx, collectionsKey).Result()
	if err != nil || data == "" {
		return nil, false
	}
	var collections []models.Collection
	if json.Unmarshal([]byte(data), &collections) != nil {
		return nil, false
	}
	return collections, true
}

func SetCollectionsCache(ctx context.Context, collections []models.Collection) {
	if database.Redis == nil {
		return
	}
	data, err := json.Marshal(collections)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, collectionsKey, data, CollectionsCacheTTL)
}

// GetProductsFromCache lit la liste des produits depuis Redis.
func GetProductsFromCache(ctx context.Context) ([]models.Product, bool) {
	if database.Redis == nil {
		return nil, false
	}
	data, err := database.Redis.Get(ctx, productsKey).Result()
	if err != nil || data == "" {
		return nil, false
	}
	var products []models.Product
	if json.Unmarshal([]byte(data), &products) != nil {
		return nil, false
	}
	return products, true
}

func SetProductsCache(ctx context.Context, products []models.Product) {
	if database.Redis == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, productsKey, data, ProductsCacheTTL)
}

// InvalidateCatalogCache purge les deux listes. Toute mutation produit doit
// aussi invalider les collections : products_count en dérive.
func InvalidateCatalogCache(ctx context.Context) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, productsKey, collectionsKey)
}
