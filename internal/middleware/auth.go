package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Claims carried by dealer and back-office tokens. DealerID is empty on
// staff tokens; dealer-scoped routes then fall back to the X-Dealer-ID
// header (see DealerMiddleware).
type Claims struct {
	UserID   string   `json:"user_id"`
	Email    string   `json:"email"`
	DealerID string   `json:"dealer_id"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// bearerToken extracts the raw token from the Authorization header
func bearerToken(c *gin.Context) (string, bool) {
	raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !found || raw == "" {
		return "", false
	}
	return raw, true
}

// AuthMiddleware authenticates every API request with an HMAC-signed JWT
// and stages the caller's identity on the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	}

	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "MISSING_TOKEN",
				"A bearer token is required: Authorization: Bearer <token>")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(raw, claims, keyFunc)
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			abortWithError(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "The token has expired")
			return
		case err != nil, !token.Valid:
			abortWithError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_roles", claims.Roles)
		if claims.DealerID != "" {
			c.Set("dealer_id", claims.DealerID)
		}
		c.Next()
	}
}

// RequireRole gates a route on a role claim. super_admin passes every gate.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, _ := c.Get("user_roles")
		userRoles, ok := roles.([]string)
		if !ok || !hasRole(userRoles, role) {
			abortWithError(c, http.StatusForbidden, "INSUFFICIENT_PERMISSIONS",
				fmt.Sprintf("Required role: %s", role))
			return
		}
		c.Next()
	}
}

func hasRole(roles []string, want string) bool {
	for _, role := range roles {
		if role == want || role == "super_admin" {
			return true
		}
	}
	return false
}
