package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const defaultSecret = "bankbot-secret-change-me"

var secret = []byte(defaultSecret)

// SetSecret configures the JWT signing secret (call on startup).
func SetSecret(s string) {
	if s != "" {
		secret = []byte(s)
	}
}

// Claims is the decoded identity token payload issued by the identity
// provider. Subject carries the user id.
type Claims struct {
	Username    string `json:"username"`
	AccessLevel int    `json:"access_level"`
	Role        string `json:"role,omitempty"`
	jwtlib.RegisteredClaims
}

// UserID returns the subject claim.
func (c *Claims) UserID() string { return c.Subject }

// Sign creates a signed claims token. Used by provisioning tooling and
// tests; the serving path only ever parses tokens.
func Sign(userID, username string, accessLevel int, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		Username:    username,
		AccessLevel: accessLevel,
		Role:        role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Parse validates a token string and returns the claims. A token whose
// access level falls outside 1..5 is rejected as malformed.
func Parse(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	if claims.AccessLevel < 1 || claims.AccessLevel > 5 {
		return nil, fmt.Errorf("access level %d out of range", claims.AccessLevel)
	}
	return claims, nil
}
