// Package identity resolves the "current user" a favorites request acts for.
// Resolution is pluggable: a fixed user for development, or a signed bearer
// token carrying the user id.
package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

// ErrUnresolved means the request carries no usable identity.
var ErrUnresolved = errors.New("current user could not be resolved")

// Resolver maps a request to the id of the user it acts for.
type Resolver interface {
	Resolve(c *fiber.Ctx) (uint, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(c *fiber.Ctx) (uint, error)

func (f ResolverFunc) Resolve(c *fiber.Ctx) (uint, error) { return f(c) }

// FixedResolver resolves every request to the same user.
type FixedResolver struct {
	UserID uint
}

func (r FixedResolver) Resolve(*fiber.Ctx) (uint, error) {
	if r.UserID == 0 {
		return 0, ErrUnresolved
	}
	return r.UserID, nil
}

// TokenResolver reads an HS256 bearer token and returns its user_id claim.
type TokenResolver struct {
	secret []byte
}

func NewTokenResolver(secret string) *TokenResolver {
	return &TokenResolver{secret: []byte(secret)}
}

func (r *TokenResolver) Resolve(c *fiber.Ctx) (uint, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return 0, ErrUnresolved
	}
	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return 0, fmt.Errorf("%w: authorization header must be 'Bearer <token>'", ErrUnresolved)
	}
	return r.ValidateToken(parts[1])
}

// ValidateToken parses tokenString and returns the user id it was issued for.
func (r *TokenResolver) ValidateToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnresolved, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("%w: invalid token", ErrUnresolved)
	}
	// Numeric claims decode as float64.
	raw, ok := claims["user_id"].(float64)
	if !ok || raw < 1 {
		return 0, fmt.Errorf("%w: token has no user_id claim", ErrUnresolved)
	}
	return uint(raw), nil
}

// IssueToken signs a token for userID valid for ttl.
func IssueToken(secret string, userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}
