package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/blogms/blogms/identity"
)

const principalKey = "principal"

// TokenMiddleware validates the bearer token, runs claims enrichment,
// and stores the resulting principal in the request context. It must run
// before any role check.
func (s *Server) TokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := s.principalFromRequest(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":             "unauthorized",
				"error_description": "missing or invalid bearer token",
			})
			c.Abort()
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// OptionalTokenMiddleware authenticates when a bearer token is present
// and otherwise proceeds with an anonymous principal. Public reads use
// it so elevated callers still see their full listing.
func (s *Server) OptionalTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := s.principalFromRequest(c); ok {
			c.Set(principalKey, p)
		}
		c.Next()
	}
}

func (s *Server) principalFromRequest(c *gin.Context) (identity.Principal, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return identity.Principal{}, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return identity.Principal{}, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Auth.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return identity.Principal{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity.Principal{}, false
	}

	p := identity.NewPrincipal(claims)
	return s.enricher.Enrich(c.Request.Context(), p), true
}

// GetPrincipal retrieves the enriched principal from the gin context.
// Requests that skipped authentication yield an anonymous principal.
func GetPrincipal(c *gin.Context) identity.Principal {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(identity.Principal); ok {
			return p
		}
	}
	return identity.NewPrincipal(nil)
}

// RequireRole aborts with 403 unless the principal holds the role.
func (s *Server) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetPrincipal(c).HasRole(role) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":             "forbidden",
				"error_description": "missing required role: " + role,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
