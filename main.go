// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"nexus-market/config"
	"nexus-market/controllers"
	"nexus-market/repository"
	"nexus-market/routes"
	"nexus-market/utils"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET is not set")
	}
	utils.JwtKey = []byte(cfg.JWTSecret)

	// Initialize EmailService
	emailService := utils.NewEmailService(cfg.SendGridKey, cfg.EmailSender)

	// Connect to MongoDB and Redis
	client := utils.ConnectDB(cfg.MongoURI)
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()
	db := client.Database(cfg.MongoDB)
	rdb := utils.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Prepare indexes and first-boot seed data
	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repository.EnsureIndexes(bootCtx, db); err != nil {
		logrus.Fatalf("failed to create indexes: %v", err)
	}
	if err := repository.EnsureSeedData(bootCtx, db); err != nil {
		logrus.Fatalf("failed to seed database: %v", err)
	}

	// Initialize repositories and controllers
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	cartRepo := repository.NewCartRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	userController := controllers.NewUserController(userRepo, emailService)
	productController := controllers.NewProductController(productRepo, rdb)
	cartController := controllers.NewCartController(cartRepo, productRepo)
	orderController := controllers.NewOrderController(orderRepo, productRepo, userRepo, emailService, rdb)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, rdb, userController, productController, cartController, orderController)

	logrus.Infof("Server is running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
