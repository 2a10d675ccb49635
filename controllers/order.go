// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"nexus-market/middleware"
	"nexus-market/models"
	"nexus-market/repository"
	"nexus-market/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultPaymentMethod = "cash_on_delivery"

// OrderController handles order placement and listing
type OrderController struct {
	Orders       *repository.OrderRepo
	Products     *repository.ProductRepo
	Users        *repository.UserRepo
	EmailService *utils.EmailService
	Redis        *redis.Client
}

// NewOrderController creates a new OrderController
func NewOrderController(orders *repository.OrderRepo, products *repository.ProductRepo, users *repository.UserRepo, emailService *utils.EmailService, rdb *redis.Client) *OrderController {
	return &OrderController{
		Orders:       orders,
		Products:     products,
		Users:        users,
		EmailService: emailService,
		Redis:        rdb,
	}
}

// orderItemRequest is one requested line of a new order
type orderItemRequest struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateOrderRequest is the payload for placing an order
type CreateOrderRequest struct {
	Items           []orderItemRequest      `json:"items"`
	TotalAmount     float64                 `json:"totalAmount"`
	ShippingAddress *models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
}

// buildOrderItems freezes the requested lines into order items, capturing
// each product's current title so later catalog edits never rewrite the
// order.
func buildOrderItems(items []orderItemRequest, products map[int64]models.Product) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	for i, item := range items {
		out[i] = models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Title:     products[item.ProductID].Title,
		}
	}
	return out
}

// defaultShippingAddress falls back to the buyer's profile data when the
// client supplies no address
func defaultShippingAddress(user *models.User) models.ShippingAddress {
	return models.ShippingAddress{
		FullName: user.Name,
		Address:  user.Address,
		Phone:    user.Phone,
	}
}

// CreateOrder places a new order (buyers only).
//
// All lines are validated before any stock moves. Each decrement is then a
// conditional update that only applies while enough stock remains, and a
// failed line releases every earlier reservation, so an order either
// decrements all of its lines or none of them — including under concurrent
// orders racing for the same product.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	if claims.Role != models.RoleBuyer {
		utils.RespondError(w, http.StatusForbidden, "Only buyers can place orders")
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if len(req.Items) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "At least one item is required")
		return
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			utils.RespondError(w, http.StatusBadRequest,
				fmt.Sprintf("Invalid quantity for product %d", item.ProductID))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := oc.Users.FindByID(ctx, claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusForbidden, "Invalid token")
		return
	}

	// First pass: resolve every product and pre-check stock so the common
	// failure cases report before anything is reserved.
	productsByID := make(map[int64]models.Product, len(req.Items))
	for _, item := range req.Items {
		product, err := oc.Products.FindByID(ctx, item.ProductID)
		if err != nil {
			if err == repository.ErrNotFound {
				utils.RespondError(w, http.StatusBadRequest,
					fmt.Sprintf("Product %d not found", item.ProductID))
				return
			}
			logrus.WithError(err).Error("Product lookup failed")
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if product.Stock < item.Quantity {
			utils.RespondError(w, http.StatusBadRequest,
				fmt.Sprintf("Insufficient stock for %s", product.Title))
			return
		}
		productsByID[item.ProductID] = *product
	}

	// Second pass: reserve stock line by line. A conditional update can
	// still lose to a concurrent order, in which case everything reserved
	// so far is released.
	for i, item := range req.Items {
		if err := oc.Products.ReserveStock(ctx, item.ProductID, item.Quantity); err != nil {
			oc.releaseReserved(req.Items[:i])
			if err == repository.ErrInsufficientStock {
				utils.RespondError(w, http.StatusBadRequest,
					fmt.Sprintf("Insufficient stock for %s", productsByID[item.ProductID].Title))
				return
			}
			logrus.WithError(err).Error("Stock reservation failed")
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	now := time.Now().UTC()
	order := models.Order{
		UserID:        claims.UserID,
		Items:         buildOrderItems(req.Items, productsByID),
		TotalAmount:   req.TotalAmount,
		Status:        models.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.ShippingAddress != nil {
		order.ShippingAddress = *req.ShippingAddress
	} else {
		order.ShippingAddress = defaultShippingAddress(user)
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = defaultPaymentMethod
	}

	if err := oc.Orders.Create(ctx, &order); err != nil {
		oc.releaseReserved(req.Items)
		logrus.WithError(err).Error("Order creation failed")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	// Stock changed, so cached catalog pages are stale.
	if err := oc.Redis.Incr(r.Context(), "products:ver").Err(); err != nil {
		logrus.WithError(err).Warn("Failed to bump product cache version")
	}

	logrus.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
		"items":        len(order.Items),
	}).Info("Order placed")

	go func(email, name string, order models.Order) {
		if err := oc.EmailService.SendOrderConfirmationEmail(email, name, order); err != nil {
			logrus.WithError(err).Warnf("Failed to send order confirmation to %s", email)
		}
	}(user.Email, user.Name, order)

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// releaseReserved rolls back stock reservations after a failed placement.
// A detached context is used so the rollback still runs when the request
// context is already cancelled.
func (oc *OrderController) releaseReserved(items []orderItemRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, item := range items {
		if err := oc.Products.ReleaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			logrus.WithFields(logrus.Fields{
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
			}).WithError(err).Error("Failed to release reserved stock")
		}
	}
}

// GetOrders retrieves the authenticated user's orders. Line items are
// served from the snapshot captured at checkout, not from the live catalog.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	orders, err := oc.Orders.ListByUserID(ctx, claims.UserID)
	if err != nil {
		logrus.WithError(err).Error("Orders fetch failed")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	utils.RespondJSON(w, http.StatusOK, orders)
}
