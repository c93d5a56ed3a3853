package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("session has expired")
	ErrTokenInvalid = errors.New("session token is invalid")
)

// CookieName is the name of the session cookie
const CookieName = "session"

// Claims represents the signed session state carried by the cookie
type Claims struct {
	AccountID uint   `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Permanent bool   `json:"permanent"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Generate creates a signed session token for an authenticated account.
// Permanent sessions get the long TTL; everything else expires after ttl.
func Generate(accountID uint, name, email, role string, permanent bool, secret string, ttl time.Duration) (string, error) {
	claims := Claims{
		AccountID: accountID,
		Name:      name,
		Email:     email,
		Role:      role,
		Permanent: permanent,
		SessionID: uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "novacapital-credit",
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Validate validates a session token and returns its claims
func Validate(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}
