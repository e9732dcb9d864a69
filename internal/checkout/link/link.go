// Package link signs and verifies shareable checkout links. A link carries
// only the cart seed; pricing is always redone at open time so a stale link
// can never lock in an old rate.
package link

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const defaultTTL = 72 * time.Hour

var ErrNoSigningKey = errors.New("checkout link signing key is not configured")

type SeedLine struct {
	RoomID    string `json:"roomId"`
	Count     int    `json:"count"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	RoomColor string `json:"roomColor,omitempty"`
}

type CartSeed struct {
	Lines []SeedLine `json:"lines"`
}

type claims struct {
	Cart CartSeed `json:"cart"`
	jwt.RegisteredClaims
}

func Sign(key []byte, cart CartSeed, ttl time.Duration) (string, error) {
	if len(key) == 0 {
		return "", ErrNoSigningKey
	}

	if ttl == 0 {
		ttl = defaultTTL
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Cart: cart,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "checkout-hub",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString(key)
}

func Parse(key []byte, tokenString string) (CartSeed, error) {
	if len(key) == 0 {
		return CartSeed{}, ErrNoSigningKey
	}

	parsed := claims{}
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}

		return key, nil
	})
	if err != nil {
		return CartSeed{}, err
	}

	return parsed.Cart, nil
}
