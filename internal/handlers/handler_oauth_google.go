package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealdesk/deal_workflow_app/internal/apperrors"
	portssvc "github.com/dealdesk/deal_workflow_app/internal/core/ports/services"
	"github.com/dealdesk/deal_workflow_app/internal/dto"
	"github.com/dealdesk/deal_workflow_app/internal/middleware"
	"github.com/dealdesk/deal_workflow_app/internal/platform/config"
	"github.com/dealdesk/deal_workflow_app/internal/utils"
)

// GoogleOAuthHandler handles Google OAuth related requests. The frontend drives
// the consent flow and posts the authorization code back here.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	jwtSecret          string
	jwtDuration        time.Duration
	jwtIssuer          string
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: services.GoogleOAuth,
		userService:        services.User,
		jwtSecret:          cfg.JWTSecret,
		jwtDuration:        cfg.JWTExpiryDuration,
		jwtIssuer:          cfg.JWTIssuer,
	}
}

// registerGoogleOAuthRoutes sets up the Google OAuth routes under the auth group.
func registerGoogleOAuthRoutes(auth *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	if cfg.GoogleClientID == "" {
		return
	}
	h := NewGoogleOAuthHandler(services, cfg)

	auth.GET("/google/login", h.LoginGoogle)
	auth.POST("/google/exchange-code", h.ExchangeCodeGoogle)
}

// ExchangeCodeRequest defines the expected JSON body for the /google/exchange-code endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// LoginGoogle godoc
// @Summary Redirect to the Google consent page
// @Tags oauth
// @Success 307
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	state := c.Query("state")
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.AuthCodeURL(state))
}

// ExchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code for an application JWT
// @Description Exchanges the code for Google tokens, validates the ID token, provisions the user on first login and returns an application JWT.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} apperrors.AppError "Invalid authorization code"
// @Failure 401 {object} apperrors.AppError "Invalid Google ID token"
// @Failure 500 {object} apperrors.AppError "Failed to exchange authorization code"
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request payload: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service.")
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") || strings.Contains(strings.ToLower(err.Error()), "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google.")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		appErr := apperrors.NewInternalServerError("Failed to retrieve ID token from Google.")
		c.JSON(appErr.Code, appErr)
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Error("Google ID token validation failed", slog.String("error", err.Error()))
		appErr := apperrors.NewUnauthorizedError("Invalid Google ID token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		appErr := apperrors.NewUnauthorizedError("Google ID token is missing the email claim.")
		c.JSON(appErr.Code, appErr)
		return
	}

	user, err := h.userService.EnsureOAuthUser(ctx, email, name, "google")
	if err != nil {
		logger.Error("Failed to provision OAuth user", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to provision user.")
		c.JSON(appErr.Code, appErr)
		return
	}

	token, err := utils.GenerateJWT(user.UserID, user.Name, string(user.Role), h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign JWT", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to generate token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	logger.Info("Google login complete", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}
