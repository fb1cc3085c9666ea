package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// WorkflowClaims are the JWT claims issued at login. The role travels in the
// token so every engine call knows the acting role without a user lookup.
type WorkflowClaims struct {
	DisplayName string `json:"name"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new signed token carrying the user's identity and role.
func GenerateJWT(userID, name, role, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := WorkflowClaims{
		DisplayName: name,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string, validates its signature and
// standard claims, and returns the workflow claims.
func ParseAndValidateJWT(tokenString string, secretKey string) (*WorkflowClaims, error) {
	claims := &WorkflowClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
