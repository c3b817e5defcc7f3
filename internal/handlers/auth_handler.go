package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/internal/config"
	"github.com/tunestream/backend/internal/middleware"
	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/services"
	"github.com/tunestream/backend/pkg/apperror"
	"github.com/tunestream/backend/pkg/response"
)

type AuthHandler struct {
	cfg         *config.Config
	authService *services.AuthService
	google      services.OAuthProvider
	facebook    services.OAuthProvider
}

func NewAuthHandler(cfg *config.Config, authService *services.AuthService, google, facebook services.OAuthProvider) *AuthHandler {
	return &AuthHandler{
		cfg:         cfg,
		authService: authService,
		google:      google,
		facebook:    facebook,
	}
}

// Register handles email/password sign-up
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Username string `json:"username"`
		FullName string `json:"fullName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	user, pair, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		FullName: req.FullName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	setAuthCookies(c, h.cfg, pair)
	response.JSON(c, http.StatusCreated, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "registration successful")
}

// Login handles email/password sign-in
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	user, pair, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	setAuthCookies(c, h.cfg, pair)
	response.JSON(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "login successful")
}

// GoogleLogin exchanges a Google credential for a session
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	h.providerLogin(c, h.google, models.AuthProviderGoogle)
}

// FacebookLogin exchanges a Facebook credential for a session
func (h *AuthHandler) FacebookLogin(c *gin.Context) {
	h.providerLogin(c, h.facebook, models.AuthProviderFacebook)
}

func (h *AuthHandler) providerLogin(c *gin.Context, provider services.OAuthProvider, name models.AuthProvider) {
	var req struct {
		Token string `json:"token"`
		Code  string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	var (
		profile *services.ProviderProfile
		err     error
	)
	switch {
	case req.Token != "":
		profile, err = provider.VerifyToken(c.Request.Context(), req.Token)
	case req.Code != "":
		profile, err = provider.ExchangeCode(c.Request.Context(), req.Code)
	default:
		err = apperror.BadRequest("token or code is required")
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	user, pair, err := h.authService.LoginWithProvider(c.Request.Context(), name, *profile)
	if err != nil {
		response.Error(c, err)
		return
	}

	setAuthCookies(c, h.cfg, pair)
	response.JSON(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "login successful")
}

// RefreshToken rotates the token pair. The refresh token is read from the
// cookie, falling back to the request body.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(middleware.RefreshTokenCookie)
	if token == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}

	user, pair, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	setAuthCookies(c, h.cfg, pair)
	response.JSON(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "token refreshed")
}

// Logout revokes the session and clears the auth cookies
func (h *AuthHandler) Logout(c *gin.Context) {
	accessToken := ""
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		accessToken = strings.TrimPrefix(header, "Bearer ")
	} else if cookie, err := c.Cookie(middleware.AccessTokenCookie); err == nil {
		accessToken = cookie
	}

	if err := h.authService.Logout(c.Request.Context(), middleware.UserID(c), accessToken); err != nil {
		response.Error(c, err)
		return
	}

	clearAuthCookies(c, h.cfg)
	response.JSON(c, http.StatusOK, nil, "logged out")
}

// ChangePassword rotates the caller's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), middleware.UserID(c), req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nil, "password changed")
}

// ForgotPassword mails a reset link
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nil, "password reset email sent")
}

// ResetPassword consumes a reset token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nil, "password reset")
}
