package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte(getJWTSecret())

func getJWTSecret() string {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return val
	}
	return "supersecret" // fallback
}

// GenerateToken issues an HS256 token carrying the caller's identity.
// hostelID is 0 for roles without a hostel affiliation.
func GenerateToken(authID uint, role string, hostelID uint, academicYear string) (string, error) {
	claims := jwt.MapClaims{
		"auth_id":       authID,
		"role":          role,
		"hostel_id":     hostelID,
		"academic_year": academicYear,
		"exp":           time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and verifies a token. Only HS256 is accepted;
// tokens signed with any other method are rejected outright.
func ValidateToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
}

// authenticate validates the bearer token and stores its claims in the
// request context. On failure it aborts with a single failure envelope
// and reports false; the chain must not advance past it.
func authenticate(c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized: missing token"})
		return false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	token, err := ValidateToken(tokenString)
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized: invalid or expired token"})
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized: invalid token claims"})
		return false
	}

	c.Set("auth_id", claims["auth_id"])
	c.Set("role", claims["role"])
	c.Set("hostel_id", claims["hostel_id"])
	c.Set("academic_year", claims["academic_year"])
	return true
}

// RequireAuth ensures a valid JWT is present and stores its claims in the
// request context for the guard to resolve.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			return
		}
		c.Next()
	}
}

// RequireAuthWithRole ensures the JWT is valid and the caller has a
// specific role. The role is checked before the chain advances, so a
// wrong-role caller never reaches the handler and receives exactly one
// failure envelope.
func RequireAuthWithRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			return
		}

		roleIfc, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "not authorized: role not found in token"})
			return
		}
		if role, ok := roleIfc.(string); !ok || role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "not authorized: insufficient permissions"})
			return
		}

		c.Next()
	}
}
