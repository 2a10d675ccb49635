// routes/routes.go
package routes

import (
	"net/http"

	"nexus-market/controllers"
	"nexus-market/middleware"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, rdb *redis.Client, userController *controllers.UserController, productController *controllers.ProductController, cartController *controllers.CartController, orderController *controllers.OrderController) {
	authLimiter := middleware.AuthRateLimit(rdb)
	auth := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(h)
	}

	// Public routes
	router.Handle("/api/auth/register", authLimiter(http.HandlerFunc(userController.Register))).Methods("POST")
	router.Handle("/api/auth/login", authLimiter(http.HandlerFunc(userController.Login))).Methods("POST")
	router.HandleFunc("/api/users", userController.ListUsers).Methods("GET")
	router.HandleFunc("/api/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/api/products/{id:[0-9]+}", productController.GetProductByID).Methods("GET")

	// Seller routes
	router.Handle("/api/products",
		middleware.AuthMiddleware(middleware.SellerMiddleware(http.HandlerFunc(productController.CreateProduct)))).Methods("POST")

	// Protected routes
	router.Handle("/api/auth/me", auth(userController.Me)).Methods("GET")
	router.Handle("/api/profile", auth(userController.UpdateProfile)).Methods("PUT")
	router.Handle("/api/cart", auth(cartController.GetCart)).Methods("GET")
	router.Handle("/api/cart/add", auth(cartController.AddToCart)).Methods("POST")
	router.Handle("/api/cart/remove/{productId:[0-9]+}", auth(cartController.RemoveFromCart)).Methods("DELETE")
	router.Handle("/api/orders", auth(orderController.GetOrders)).Methods("GET")
	router.Handle("/api/orders", auth(orderController.CreateOrder)).Methods("POST")
}
