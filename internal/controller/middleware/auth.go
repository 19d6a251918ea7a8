// Package middleware holds the gin middleware for authentication.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/lshigami/academe/config"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/rs/zerolog/log"
)

const principalKey = "principal"

// RequireAuth validates the bearer token and stores the principal on the
// request context. Requests without a usable token are rejected.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := principalFromRequest(c, cfg)
		if err != nil {
			log.Debug().Err(err).Msg("Rejected unauthenticated request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
			return
		}
		c.Set(principalKey, *principal)
		c.Next()
	}
}

// OptionalAuth stores the principal when a valid token is present but lets
// anonymous requests through. Used on endpoints whose response depends on who
// is asking, like draft course visibility.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, err := principalFromRequest(c, cfg); err == nil {
			c.Set(principalKey, *principal)
		}
		c.Next()
	}
}

// Principal returns the authenticated identity stored by RequireAuth.
func Principal(c *gin.Context) model.Principal {
	value, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}
	}
	principal, _ := value.(model.Principal)
	return principal
}

// OptionalPrincipal returns the identity if one was attached, else nil.
func OptionalPrincipal(c *gin.Context) *model.Principal {
	value, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	principal, ok := value.(model.Principal)
	if !ok {
		return nil
	}
	return &principal
}

func principalFromRequest(c *gin.Context, cfg *config.Config) (*model.Principal, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := claims["userId"].(float64)
	if !ok {
		return nil, errors.New("token has no user id")
	}
	email, _ := claims["email"].(string)
	roleStr, _ := claims["role"].(string)
	role := model.Role(roleStr)
	if !role.Valid() {
		return nil, errors.New("token has an unknown role")
	}

	return &model.Principal{
		ID:    uint(userID),
		Email: email,
		Role:  role,
	}, nil
}
