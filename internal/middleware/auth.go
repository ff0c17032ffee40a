package middleware

import (
	"errors"
	"net/http"
	"strings"

	"dashflow/internal/apierr"
	"dashflow/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AuthMiddleware accepts a Bearer token only while its session is still
// stored, so logout revokes tokens that have not expired yet.
func AuthMiddleware(tokens *auth.TokenManager, sessions auth.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apierr.MsgUnauthorized})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apierr.MsgUnauthorized})
			return
		}

		userID, email, role, err := tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apierr.MsgUnauthorized})
			return
		}

		user, err := sessions.FindByEmail(c.Request.Context(), email)
		if errors.Is(err, auth.ErrSessionNotFound) || (err == nil && user.ID != userID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expirée, veuillez vous reconnecter"})
			return
		}
		if err != nil {
			log.Error().Err(err).Str("email", email).Msg("session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": apierr.MsgInternal})
			return
		}

		log.Debug().Str("userID", userID).Str("email", email).Str("role", role).Msg("authenticated")

		// Attach user info to request context
		c.Set("userID", userID)
		c.Set("userEmail", email)
		c.Set("userRole", role)
		c.Next()
	}
}

// TokenFromQuery lets websocket clients, which cannot set headers, pass the
// token as ?token=.
func TokenFromQuery() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			if token := c.Query("token"); token != "" {
				c.Request.Header.Set("Authorization", "Bearer "+token)
			}
		}
		c.Next()
	}
}
