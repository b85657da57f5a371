package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mock-auth/internal/service"
)

const bearerPrefix = "Bearer "

// AuthHandler mantiene dependencias para los endpoints de autenticación mock.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
}

func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
	}
}

// fieldError reporta un campo requerido ausente, con su ubicación.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func missingField(name string) fieldError {
	return fieldError{
		Loc:  []string{"body", name},
		Msg:  "field required",
		Type: "value_error.missing",
	}
}

// bindBody aplica la política estricta de cuerpo: vacío equivale a objeto
// vacío, JSON malformado responde 400 y corta el manejo.
func (h *AuthHandler) bindBody(c *gin.Context, dst any) bool {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		// Una falla de lectura se colapsa con el caso de JSON malformado:
		// el cliente recibe el mismo 400, el log distingue la causa.
		h.logger.Warn("body read failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid JSON body"})
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		h.logger.Warn("invalid json body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid JSON body"})
		return false
	}
	return true
}

// Signup maneja POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Name     *string `json:"name"`
	}
	if !h.bindBody(c, &req) {
		return
	}

	// Campo ausente y campo presente-pero-vacío son condiciones distintas.
	var missing []fieldError
	if req.Email == nil {
		missing = append(missing, missingField("email"))
	}
	if req.Password == nil {
		missing = append(missing, missingField("password"))
	}
	if len(missing) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": missing})
		return
	}
	if *req.Email == "" || *req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email and password are required"})
		return
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	user, pair := h.authServ.Signup(c.Request.Context(), *req.Email, name)

	c.JSON(http.StatusOK, gin.H{
		"user_id":       user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    pair.TokenType,
	})
}

// Signin maneja POST /api/auth/signin. La respuesta excluye name y email
// deliberadamente; ese esquema angosto es parte del contrato.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if !h.bindBody(c, &req) {
		return
	}
	if req.Email == nil || req.Password == nil || *req.Email == "" || *req.Password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Email and password are required"})
		return
	}

	identity, pair := h.authServ.Signin(c.Request.Context(), *req.Email)

	c.JSON(http.StatusOK, gin.H{
		"user_id":       identity.User.ID,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    pair.TokenType,
	})
}

// Refresh maneja POST /api/auth/refresh. Cualquier refresh token no vacío
// se acepta; no se verifica relación con emisiones previas.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken *string `json:"refresh_token"`
	}
	if !h.bindBody(c, &req) {
		return
	}
	if req.RefreshToken == nil || *req.RefreshToken == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Refresh token required"})
		return
	}

	pair := h.authServ.Refresh(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    pair.TokenType,
		"expires_at":    pair.ExpiresAt,
	})
}

// Me maneja GET /api/auth/me. Solo exige un header con esquema bearer; el
// valor nunca se valida contra ningún token emitido.
func (h *AuthHandler) Me(c *gin.Context) {
	authz := c.GetHeader("Authorization")
	if !strings.HasPrefix(authz, bearerPrefix) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	identity := h.authServ.Profile(c.Request.Context())
	user := identity.User

	c.JSON(http.StatusOK, gin.H{
		"user_id":        user.ID,
		"email":          user.Email,
		"name":           user.Name,
		"email_verified": user.EmailVerified,
		"is_active":      user.IsActive,
		"created_at":     user.CreatedAt,
		"last_login_at":  user.LastLoginAt,
	})
}

// Health maneja GET /health.
func (h *AuthHandler) Health(c *gin.Context) {
	report := h.authServ.Health(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":        report.Status,
		"users":         report.Users,
		"active_tokens": report.ActiveTokens,
	})
}
