package mw

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"keycontrol-backend/internal/auth"
	"keycontrol-backend/internal/model"
)

// UserKey is the gin context key holding the authenticated user.
const UserKey = "usuario"

// CurrentUser returns the authenticated user set by RequireAuth.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth verifies the bearer token on every request and loads the
// user into the context. Identity is never cached across requests, so a
// deleted account is rejected immediately.
func RequireAuth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.VerifyToken(c.Request.Context(), BearerToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"sucesso": false,
				"erro":    authErrorMessage(err),
			})
			return
		}
		c.Set(UserKey, user)
		c.Next()
	}
}

// RequireAdmin gates a route to administrators. Must run after
// RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireRole(CurrentUser(c), model.AccessAdmin); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"sucesso": false,
				"erro":    "Acesso negado. Privilégios de administrador requeridos.",
			})
			return
		}
		c.Next()
	}
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return "Token de acesso requerido"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expirado"
	case errors.Is(err, auth.ErrUnknownUser):
		return "Usuário não encontrado"
	default:
		return "Token inválido"
	}
}
