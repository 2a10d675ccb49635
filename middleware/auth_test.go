package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nexus-market/models"
	"nexus-market/utils"

	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T, wantUserID int64, wantRole models.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, wantUserID, claims.UserID)
		require.Equal(t, wantRole, claims.Role)
		w.WriteHeader(http.StatusOK)
	})
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)

	AuthMiddleware(okHandler(t, 0, "")).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Access token required", errorBody(t, rec))
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Token abcdef")

	AuthMiddleware(okHandler(t, 0, "")).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid Authorization header format", errorBody(t, rec))
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	AuthMiddleware(okHandler(t, 0, "")).ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Invalid token", errorBody(t, rec))
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	utils.JwtKey = []byte("test-secret")
	token, err := utils.GenerateJWT(2, models.RoleBuyer)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	AuthMiddleware(okHandler(t, 2, models.RoleBuyer)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSellerMiddlewareRejectsBuyer(t *testing.T) {
	utils.JwtKey = []byte("test-secret")
	token, err := utils.GenerateJWT(2, models.RoleBuyer)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	AuthMiddleware(SellerMiddleware(okHandler(t, 2, models.RoleBuyer))).ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Only sellers can create products", errorBody(t, rec))
}

func TestSellerMiddlewareAllowsSeller(t *testing.T) {
	utils.JwtKey = []byte("test-secret")
	token, err := utils.GenerateJWT(1, models.RoleSeller)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	AuthMiddleware(SellerMiddleware(okHandler(t, 1, models.RoleSeller))).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
