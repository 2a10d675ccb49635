package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"nexus-market/middleware"
	"nexus-market/models"
	"nexus-market/repository"
	"nexus-market/utils"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	productCacheTTL  = 60 * time.Second
	// productsVersionKey is bumped on every product mutation so cached list
	// pages built against older catalog state stop matching.
	productsVersionKey = "products:ver"
)

// sortFields maps the public sort keys to their stored field names
var sortFields = map[string]string{
	"id":        "_id",
	"title":     "title",
	"price":     "price",
	"rating":    "rating",
	"category":  "category",
	"stock":     "stock",
	"createdAt": "created_at",
}

// ProductController handles catalog requests
type ProductController struct {
	Products *repository.ProductRepo
	Redis    *redis.Client
}

// NewProductController creates a new ProductController
func NewProductController(products *repository.ProductRepo, rdb *redis.Client) *ProductController {
	return &ProductController{
		Products: products,
		Redis:    rdb,
	}
}

// parseListQuery translates the public listing parameters
// (category, _sort, _order, _page, _limit) into a repository query.
// Unknown sort keys are ignored rather than rejected.
func parseListQuery(values url.Values) repository.ListQuery {
	q := repository.ListQuery{
		Category: values.Get("category"),
		Page:     1,
		Limit:    defaultPageLimit,
	}
	if field, ok := sortFields[values.Get("_sort")]; ok {
		q.SortKey = field
		q.SortDesc = values.Get("_order") == "desc"
	}
	if v, err := strconv.Atoi(values.Get("_page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(values.Get("_limit")); err == nil && v > 0 && v <= maxPageLimit {
		q.Limit = v
	}
	return q
}

// GetProducts returns one page of the catalog, served from the Redis cache
// when a fresh enough copy exists
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r.URL.Query())

	ver, err := pc.Redis.Get(r.Context(), productsVersionKey).Int64()
	if err != nil && err != redis.Nil {
		ver = -1 // cache unusable, fall through to the database
	}
	cacheKey := fmt.Sprintf("products:v%d:cat=%s:sort=%s:desc=%t:page=%d:limit=%d",
		ver, q.Category, q.SortKey, q.SortDesc, q.Page, q.Limit)

	var products []models.Product
	if ver >= 0 {
		if found, err := utils.GetCache(r.Context(), pc.Redis, cacheKey, &products); err == nil && found {
			utils.RespondJSON(w, http.StatusOK, products)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	products, err = pc.Products.List(ctx, q)
	if err != nil {
		logrus.WithError(err).Error("Products fetch failed")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	if ver >= 0 {
		_ = utils.SetCache(r.Context(), pc.Redis, cacheKey, products, productCacheTTL)
	}
	utils.RespondJSON(w, http.StatusOK, products)
}

// GetProductByID returns a single product
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	product, err := pc.Products.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			utils.RespondError(w, http.StatusNotFound, "Product not found")
			return
		}
		logrus.WithError(err).Error("Product fetch failed")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, product)
}

// CreateProductRequest is the payload for listing a new product. Price and
// stock are pointers so missing fields can be told apart from zero values,
// and non-numeric input fails at decode time instead of being stored.
type CreateProductRequest struct {
	Title       string   `json:"title"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Stock       *int     `json:"stock"`
}

// CreateProduct handles adding a new product (sellers only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Title == "" || req.Price == nil || req.Category == "" {
		utils.RespondError(w, http.StatusBadRequest, "Title, price, and category are required")
		return
	}
	if *req.Price < 0 || (req.Stock != nil && *req.Stock < 0) {
		utils.RespondError(w, http.StatusBadRequest, "Price and stock must be non-negative")
		return
	}

	product := models.Product{
		Title:       req.Title,
		Price:       *req.Price,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
		SellerID:    claims.UserID,
		Rating:      0,
		CreatedAt:   time.Now().UTC(),
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if product.Image == "" {
		product.Image = models.DefaultProductImage
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := pc.Products.Create(ctx, &product); err != nil {
		logrus.WithError(err).Error("Product creation failed")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := pc.Redis.Incr(r.Context(), productsVersionKey).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to bump product cache version")
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"seller_id":  product.SellerID,
	}).Info("Product created")

	utils.RespondJSON(w, http.StatusCreated, product)
}
