package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/contract"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/handler/http/dto"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookie = "oauthState"
	googleUserInfo   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// GoogleOAuthConfig holds the client credentials registered with Google.
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
}

type AuthHandler struct {
	userUsecase usecasecontract.IUserUseCase
	users       *UserHandler
	randomGen   contract.IRandomGenerator
	oauth       *oauth2.Config
	userInfoURL string
}

func NewAuthHandler(uc usecasecontract.IUserUseCase, users *UserHandler, randomGen contract.IRandomGenerator, cfg GoogleOAuthConfig) *AuthHandler {
	return &AuthHandler{
		userUsecase: uc,
		users:       users,
		randomGen:   randomGen,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.BaseURL + "/api/auth/google/callback",
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfo,
	}
}

type googleUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleGoogleLogin redirects to the Google consent page with a fresh state cookie.
func (h *AuthHandler) HandleGoogleLogin(c *gin.Context) {
	state, err := h.randomGen.GenerateRandomToken(16)
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	c.SetCookie(oauthStateCookie, state, 300, "/", "", h.users.cookie.Secure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

// HandleGoogleCallback exchanges the code, signs the account in and sets the session cookie.
func (h *AuthHandler) HandleGoogleCallback(c *gin.Context) {
	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || cookieState == "" || c.Query("state") != cookieState {
		ErrorHandler(c, http.StatusUnauthorized, "Invalid OAuth state")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.users.cookie.Secure, true)

	code := c.Query("code")
	if code == "" {
		ErrorHandler(c, http.StatusBadRequest, "Authorization code not provided")
		return
	}

	ctx := c.Request.Context()
	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		_ = c.Error(fmt.Errorf("oauth exchange: %w", err))
		ErrorHandler(c, http.StatusBadGateway, "Failed to exchange authorization code")
		return
	}

	resp, err := h.oauth.Client(ctx, token).Get(h.userInfoURL)
	if err != nil {
		_ = c.Error(fmt.Errorf("oauth user info: %w", err))
		ErrorHandler(c, http.StatusBadGateway, "Failed to get user info")
		return
	}
	defer resp.Body.Close()

	var info googleUser
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		_ = c.Error(fmt.Errorf("decode user info: %w", err))
		ErrorHandler(c, http.StatusBadGateway, "Failed to decode user info")
		return
	}

	user, accessToken, err := h.userUsecase.LoginWithOAuth(ctx, info.Name, info.Email)
	if err != nil {
		HandleUseCaseError(c, err)
		return
	}
	h.users.setSession(c, accessToken)
	SuccessHandler(c, http.StatusOK, dto.LoginResponse{User: dto.ToUserResponse(*user, now()), AccessToken: accessToken})
}
