package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	handler "github.com/CHANDU-143-ashok/mangocropconnect/internal/handler/http"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/handler/http/dto"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/jwt"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/logger"
	passwordservice "github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/password_service"
	randomgenerator "github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/random_generator"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/repository/memory"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/uuidgen"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/validator"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type app struct {
	engine *gin.Engine
	userUC *usecase.UserUsecase
}

func newApp(t *testing.T) *app {
	t.Helper()
	users := memory.NewUserRepository()
	brokers := memory.NewBrokerRepository()
	listings := memory.NewListingRepository(brokers)
	ids := uuidgen.NewGenerator()
	log := logger.NewNopLogger()
	hasher := passwordservice.NewHasher(bcrypt.MinCost)

	mgr, err := jwt.NewJWTManager("test-secret", time.Hour)
	require.NoError(t, err)

	userUC := usecase.NewUserUsecase(users, brokers, hasher, jwt.NewJWTService(mgr), log, validator.NewValidator(), ids)
	listingUC := usecase.NewListingUseCase(listings, brokers, users, ids, log)
	brokerUC := usecase.NewBrokerUseCase(brokers, users, ids, log)

	router := handler.NewRouter(userUC, listingUC, brokerUC, randomgenerator.NewRandomGenerator(), log, handler.RouterConfig{
		RateLimitPerSecond: 1000,
		Cookie:             handler.CookieOptions{MaxAge: time.Hour},
	})
	engine := gin.New()
	router.SetupRoutes(engine)
	return &app{engine: engine, userUC: userUC}
}

func (a *app) seedAdmin(t *testing.T) string {
	t.Helper()
	_, created, err := a.userUC.EnsureAdmin(context.Background(), "Admin", "admin@example.com", "9000000000", "adminpass")
	require.NoError(t, err)
	require.True(t, created)
	return a.login(t, "admin@example.com", "adminpass")
}

func (a *app) login(t *testing.T, email, password string) string {
	t.Helper()
	w := do(a.engine, jsonRequest(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: password}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func (a *app) register(t *testing.T, email, role string) string {
	t.Helper()
	w := do(a.engine, jsonRequest(http.MethodPost, "/api/auth/register", dto.CreateUserRequest{
		Name: "User", Email: email, Phone: "9876543210", Password: "secret1", Role: role,
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func listingIDs(t *testing.T, w interface{ Bytes() []byte }) []string {
	t.Helper()
	var resp []dto.ListingResponse
	require.NoError(t, json.Unmarshal(w.Bytes(), &resp))
	ids := make([]string, 0, len(resp))
	for _, l := range resp {
		ids = append(ids, l.ID)
	}
	return ids
}

func TestModerationFlowEndToEnd(t *testing.T) {
	a := newApp(t)
	adminToken := a.seedAdmin(t)
	sellerToken := a.register(t, "seller@example.com", "seller")

	body := map[string]interface{}{
		"variety": "Banganapalli", "quantity": 800, "location": "Krishna",
		"harvestDate": "2024-05-15", "sellerName": "Ravi", "sellerPhone": "9876543210",
	}
	w := do(a.engine, withToken(jsonRequest(http.MethodPost, "/api/listings", body), sellerToken))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.ListingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "pending", created.Status)
	require.NotNil(t, created.SellerID)

	// pending listings are hidden from everyone but admins
	w = do(a.engine, jsonRequest(http.MethodGet, "/api/listings", nil))
	assert.Empty(t, listingIDs(t, w.Body))
	w = do(a.engine, jsonRequest(http.MethodGet, "/api/listings?status=pending", nil))
	assert.Empty(t, listingIDs(t, w.Body))
	assert.Equal(t, http.StatusNotFound, do(a.engine, withToken(jsonRequest(http.MethodGet, "/api/listings/"+created.ID, nil), sellerToken)).Code)
	w = do(a.engine, withToken(jsonRequest(http.MethodGet, "/api/listings", nil), adminToken))
	assert.Equal(t, []string{created.ID}, listingIDs(t, w.Body))

	assert.Equal(t, http.StatusForbidden, do(a.engine, withToken(jsonRequest(http.MethodPut, "/api/listings/"+created.ID+"/approve", nil), sellerToken)).Code)
	assert.Equal(t, http.StatusOK, do(a.engine, withToken(jsonRequest(http.MethodPut, "/api/listings/"+created.ID+"/approve", nil), adminToken)).Code)
	assert.Equal(t, http.StatusOK, do(a.engine, withToken(jsonRequest(http.MethodPut, "/api/listings/"+created.ID+"/approve", nil), adminToken)).Code)
	assert.Equal(t, http.StatusConflict, do(a.engine, withToken(jsonRequest(http.MethodPut, "/api/listings/"+created.ID+"/reject", nil), adminToken)).Code)

	w = do(a.engine, jsonRequest(http.MethodGet, "/api/listings?variety=Banganapalli&location=kri", nil))
	assert.Equal(t, []string{created.ID}, listingIDs(t, w.Body))

	w = do(a.engine, withToken(jsonRequest(http.MethodGet, "/api/admin/listings/stats", nil), adminToken))
	assert.JSONEq(t, `{"pending":0,"approved":1,"rejected":0,"total":1}`, w.Body.String())

	otherToken := a.register(t, "other@example.com", "seller")
	assert.Equal(t, http.StatusForbidden, do(a.engine, withToken(jsonRequest(http.MethodDelete, "/api/listings/"+created.ID, nil), otherToken)).Code)
	assert.Equal(t, http.StatusOK, do(a.engine, withToken(jsonRequest(http.MethodDelete, "/api/listings/"+created.ID, nil), sellerToken)).Code)
}

func TestBrokerFlowEndToEnd(t *testing.T) {
	a := newApp(t)
	adminToken := a.seedAdmin(t)
	brokerToken := a.register(t, "broker@example.com", "buyer")
	buyerToken := a.register(t, "buyer@example.com", "buyer")

	w := do(a.engine, withToken(jsonRequest(http.MethodPost, "/api/brokers", dto.CreateBrokerRequest{Regions: []string{"Krishna"}, ExperienceYears: 4}), brokerToken))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var broker dto.BrokerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &broker))

	// the role change is visible on the next request without a new token
	w = do(a.engine, withToken(jsonRequest(http.MethodGet, "/api/auth/profile", nil), brokerToken))
	assert.Contains(t, w.Body.String(), `"role":"broker"`)

	assert.Equal(t, http.StatusConflict, do(a.engine, withToken(jsonRequest(http.MethodPost, "/api/brokers", dto.CreateBrokerRequest{Regions: []string{"Krishna"}}), brokerToken)).Code)

	w = do(a.engine, withToken(jsonRequest(http.MethodPost, "/api/brokers/"+broker.ID+"/ratings", dto.RatingRequest{Rating: 3}), buyerToken))
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(a.engine, withToken(jsonRequest(http.MethodPost, "/api/brokers/"+broker.ID+"/ratings", dto.RatingRequest{Rating: 5, Comment: "better"}), buyerToken))
	require.Equal(t, http.StatusCreated, w.Code)
	var rated dto.BrokerActionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rated))
	require.Len(t, rated.Broker.Ratings, 1)
	assert.Equal(t, 5.0, rated.Broker.AverageRating)

	assert.Equal(t, http.StatusBadRequest, do(a.engine, withToken(jsonRequest(http.MethodPost, "/api/brokers/"+broker.ID+"/ratings", map[string]int{"rating": 6}), buyerToken)).Code)
	assert.Equal(t, http.StatusUnauthorized, do(a.engine, jsonRequest(http.MethodPost, "/api/brokers/"+broker.ID+"/ratings", dto.RatingRequest{Rating: 4})).Code)

	assert.Equal(t, http.StatusForbidden, do(a.engine, withToken(jsonRequest(http.MethodPut, "/api/brokers/"+broker.ID+"/verify", nil), brokerToken)).Code)
	w = do(a.engine, withToken(jsonRequest(http.MethodPut, "/api/brokers/"+broker.ID+"/verify", nil), adminToken))
	assert.Contains(t, w.Body.String(), "Broker verified successfully")

	w = do(a.engine, jsonRequest(http.MethodGet, "/api/brokers?verified=true&region=kri", nil))
	var listed []dto.BrokerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].User)
	assert.Equal(t, "broker@example.com", listed[0].User.Email)

	require.Equal(t, http.StatusOK, do(a.engine, withToken(jsonRequest(http.MethodDelete, "/api/brokers/"+broker.ID, nil), brokerToken)).Code)
	w = do(a.engine, withToken(jsonRequest(http.MethodGet, "/api/auth/profile", nil), brokerToken))
	assert.Contains(t, w.Body.String(), `"role":"buyer"`)
}

func TestAdminUserRoutesRequireAdmin(t *testing.T) {
	a := newApp(t)
	adminToken := a.seedAdmin(t)
	buyerToken := a.register(t, "buyer@example.com", "")

	assert.Equal(t, http.StatusUnauthorized, do(a.engine, jsonRequest(http.MethodGet, "/api/auth/users", nil)).Code)
	assert.Equal(t, http.StatusForbidden, do(a.engine, withToken(jsonRequest(http.MethodGet, "/api/auth/users", nil), buyerToken)).Code)

	w := do(a.engine, withToken(jsonRequest(http.MethodGet, "/api/auth/users", nil), adminToken))
	require.Equal(t, http.StatusOK, w.Code)
	var users []dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 2)

	assert.Equal(t, http.StatusBadRequest, do(a.engine, withToken(jsonRequest(http.MethodDelete, "/api/auth/users/admin-1", nil), adminToken)).Code)
}

func TestHealthAndMetrics(t *testing.T) {
	a := newApp(t)
	w := do(a.engine, jsonRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(a.engine, jsonRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
