package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"nexus-market/middleware"
	"nexus-market/models"
	"nexus-market/repository"
	"nexus-market/utils"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// CartController handles cart-related requests
type CartController struct {
	Carts    *repository.CartRepo
	Products *repository.ProductRepo
}

// NewCartController creates a new CartController
func NewCartController(carts *repository.CartRepo, products *repository.ProductRepo) *CartController {
	return &CartController{
		Carts:    carts,
		Products: products,
	}
}

// GetCart retrieves the user's cart. A user with no cart yet gets an empty
// cart shape, never an error.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	cart, err := cc.Carts.FindByUserID(ctx, claims.UserID)
	if err == repository.ErrNotFound {
		utils.RespondJSON(w, http.StatusOK, models.Cart{
			UserID: claims.UserID,
			Items:  []models.CartItem{},
		})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("Cart fetch failed")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, cart)
}

// AddToCartRequest is the payload for adding a product to the cart
type AddToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// AddToCart adds a product to the user's cart (buyers only). Adding a
// product already in the cart grows its quantity instead of duplicating
// the line.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	if claims.Role != models.RoleBuyer {
		utils.RespondError(w, http.StatusForbidden, "Only buyers can add items to cart")
		return
	}

	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.ProductID == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Product ID is required")
		return
	}
	if req.Quantity < 0 {
		utils.RespondError(w, http.StatusBadRequest, "Invalid quantity")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := cc.Products.FindByID(ctx, req.ProductID); err != nil {
		if err == repository.ErrNotFound {
			utils.RespondError(w, http.StatusNotFound, "Product not found")
			return
		}
		logrus.WithError(err).Error("Product lookup failed")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	cart, err := cc.Carts.AddItem(ctx, claims.UserID, req.ProductID, req.Quantity)
	if err != nil {
		logrus.WithError(err).Error("Add to cart failed")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Item added to cart",
		"cart":    cart,
	})
}

// RemoveFromCart removes a product's line from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Access token required")
		return
	}
	if claims.Role != models.RoleBuyer {
		utils.RespondError(w, http.StatusForbidden, "Only buyers can modify the cart")
		return
	}

	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	cart, err := cc.Carts.RemoveItem(ctx, claims.UserID, productID)
	if err != nil {
		if err == repository.ErrNotFound {
			utils.RespondError(w, http.StatusNotFound, "Cart not found")
			return
		}
		logrus.WithError(err).Error("Remove from cart failed")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Item removed from cart",
		"cart":    cart,
	})
}
