package http

import (
	"net/http"
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/handler/http/dto"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/handler/http/middleware"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
	"github.com/gin-gonic/gin"
)

// UserHandlerInterface defines the methods for user handler to allow interface-based dependency injection (for testing/mocking)
type UserHandlerInterface interface {
	CreateUser(*gin.Context)
	Login(*gin.Context)
	Logout(*gin.Context)
	GetCurrentUser(*gin.Context)
	UpdateUser(*gin.Context)
	ListUsers(*gin.Context)
	GetUser(*gin.Context)
	DeleteUser(*gin.Context)
	ChangeRole(*gin.Context)
}

// Ensure UserHandler implements UserHandlerInterface
var _ UserHandlerInterface = (*UserHandler)(nil)

// CookieOptions controls the session cookie written at login.
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

type UserHandler struct {
	userUsecase usecasecontract.IUserUseCase
	cookie      CookieOptions
}

func NewUserHandler(userUsecase usecasecontract.IUserUseCase, cookie CookieOptions) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		cookie:      cookie,
	}
}

func (h *UserHandler) setSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
}

// CreateUser handles user registration (signup) and signs the new user in.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.userUsecase.Register(ctx, req.ToInput()); err != nil {
		HandleUseCaseError(c, err)
		return
	}
	user, token, err := h.userUsecase.Login(ctx, req.Email, req.Password)
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	h.setSession(c, token)
	SuccessHandler(c, http.StatusCreated, dto.LoginResponse{User: dto.ToUserResponse(*user, now()), AccessToken: token})
}

// Login handles user authentication
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, token, err := h.userUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	h.setSession(c, token)
	SuccessHandler(c, http.StatusOK, dto.LoginResponse{User: dto.ToUserResponse(*user, now()), AccessToken: token})
}

// Logout clears the session cookie.
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cookie.Secure, true)
	MessageHandler(c, http.StatusOK, "Logged out successfully")
}

// GetCurrentUser handles GET /auth/profile
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.userUsecase.GetProfile(c.Request.Context(), middleware.GetCaller(c))
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user, now()))
}

// UpdateUser handles PUT /auth/profile
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	updatedUser, err := h.userUsecase.UpdateProfile(c.Request.Context(), middleware.GetCaller(c), req.ToPatch())
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*updatedUser, now()))
}

// ListUsers handles GET /auth/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userUsecase.ListUsers(c.Request.Context(), middleware.GetCaller(c))
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponses(users, now()))
}

// GetUser handles GET /auth/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUsecase.GetUserByID(c.Request.Context(), middleware.GetCaller(c), c.Param("id"))
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user, now()))
}

// DeleteUser handles DELETE /auth/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userUsecase.DeleteUser(c.Request.Context(), middleware.GetCaller(c), c.Param("id")); err != nil {
		HandleUseCaseError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "User removed")
}

// ChangeRole handles PUT /auth/users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req dto.ChangeRoleRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	user, err := h.userUsecase.ChangeRole(c.Request.Context(), middleware.GetCaller(c), c.Param("id"), entity.UserRole(req.Role))
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user, now()))
}
