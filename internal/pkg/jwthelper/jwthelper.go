package jwthelper

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetime matches the event horizon rather than a session length;
// revocation happens through the blocklist instead.
const tokenLifetime = 8500 * time.Hour

var ErrInvalidToken = errors.New("token is invalid")

type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateToken signs a claim of {group name, expiry} with HS256.
func GenerateToken(signingKey []byte, groupName string) (string, error) {
	claims := Claims{
		Name: groupName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(signingKey)
}

// ParseToken validates signature and expiry and returns the group name the
// token was issued for.
func ParseToken(signingKey []byte, tokenString string) (string, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	return claims.Name, nil
}
