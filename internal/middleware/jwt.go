// internal/middleware/jwt.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"threadqube/internal/database"
	"threadqube/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Token expiration time - 24 hours
const tokenExpiration = 24 * time.Hour

// Claims represents the JWT claims for our application. Identity is the
// caller's email; there are no passwords, the token itself is the proof.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenVerifier issues and validates bearer tokens with a shared HMAC
// secret loaded from configuration.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// GenerateToken creates a new JWT token for the given email
func (v *TokenVerifier) GenerateToken(email string) (string, error) {
	expirationTime := time.Now().Add(tokenExpiration)

	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "threadqube-api",
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(v.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates the provided JWT token
func (v *TokenVerifier) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.secret, nil
		},
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// RequireAuth wraps a handler function with bearer token authentication.
// The verified email lands in the request context.
func (v *TokenVerifier) RequireAuth(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := v.ValidateToken(tokenString)
		if err != nil {
			slog.Debug("token rejected", "error", err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if time.Now().After(claims.ExpiresAt.Time) {
			http.Error(w, "Token expired", http.StatusUnauthorized)
			return
		}

		ctx := SetEmailInContext(r.Context(), claims.Email)
		handler(w, r.WithContext(ctx))
	}
}

// RequireEmailMatch rejects requests whose email query parameter doesn't
// match the authenticated caller. Handlers behind it can trust ?email=.
func (v *TokenVerifier) RequireEmailMatch(handler http.HandlerFunc) http.HandlerFunc {
	return v.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		email, _ := GetEmailFromContext(r.Context())
		requested := r.URL.Query().Get("email")
		if requested != "" && requested != email {
			http.Error(w, "Email does not match token", http.StatusForbidden)
			return
		}
		handler(w, r)
	})
}

// RequireAdmin authenticates the caller and then checks the stored role.
// The role lives in the database, not the token, so a promotion or
// demotion takes effect on the next request.
func (v *TokenVerifier) RequireAdmin(store database.Store, handler http.HandlerFunc) http.HandlerFunc {
	return v.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		email, _ := GetEmailFromContext(r.Context())

		user, err := store.GetUserByEmail(r.Context(), email)
		if err != nil || user.Role != models.RoleAdmin {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		handler(w, r)
	})
}

// Define a custom context key type to avoid collisions
type contextKey string

// EmailKey is the key used to store the caller's email in the context
const EmailKey contextKey = "email"

// SetEmailInContext saves the caller's email in the request context
func SetEmailInContext(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, EmailKey, email)
}

// GetEmailFromContext retrieves the caller's email from the context
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}
