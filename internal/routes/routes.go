package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/handlers/store"
	"storefront_back_end/internal/handlers/user"
	"storefront_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	// CORS pour le frontend
	allowedOrigins := []string{"http://localhost:3000"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(middleware.MetricsHandler()))

	api := r.Group("/api")

	// --- Produits ---
	api.GET("/products", store.GetAllProducts)
	api.GET("/products/:id", store.GetProduct)
	api.GET("/products/:id/reviews", store.GetProductReviews)
	api.POST("/products/:id/reviews", store.CreateReview)

	// --- Collections ---
	api.GET("/collections", store.GetAllCollections)
	api.GET("/collections/:id", store.GetCollection)

	// --- Paniers (anonymes, adressés par jeton) ---
	api.POST("/carts", store.CreateCart)
	api.GET("/carts/:id", store.GetCart)
	api.DELETE("/carts/:id", store.DeleteCart)
	api.POST("/carts/:id/items", store.AddCartItem)
	api.PATCH("/carts/:id/items/:itemId", store.UpdateCartItem)
	api.DELETE("/carts/:id/items/:itemId", store.RemoveCartItem)

	// --- Profils clients (authentifiés) ---
	customers := api.Group("/customers", middleware.AuthRequired())
	customers.GET("/me", user.GetMyCustomer)
	customers.POST("", user.CreateCustomer)
	customers.PUT("/me", user.UpdateMyCustomer)

	// --- Mutations catalogue (admin) ---
	admin := api.Group("", middleware.AuthRequired(), middleware.RequireAdmin)
	admin.POST("/products", store.CreateProduct)
	admin.PUT("/products/:id", store.UpdateProduct)
	admin.DELETE("/products/:id", store.DeleteProduct)
	admin.POST("/collections", store.CreateCollection)
	admin.PUT("/collections/:id", store.UpdateCollection)
	admin.DELETE("/collections/:id", store.DeleteCollection)
}
