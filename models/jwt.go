package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWT = struct {
	ACCESS_COOKIE_NAME string
	OPERATOR_SCOPE     string
}{
	ACCESS_COOKIE_NAME: "access_token",
	OPERATOR_SCOPE:     "operator",
}

// OperatorClaims are carried by tokens that may teach colors
type OperatorClaims struct {
	Scope     string `json:"scope"`
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

type OperatorLoginRequest struct {
	Password string `json:"password"`
}

type OperatorTokenResponse struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}

func NewOperatorToken(secret string, sessionID string, expiry time.Time) (string, error) {
	claims := OperatorClaims{
		Scope:     JWT.OPERATOR_SCOPE,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("error signing operator token %v", err)
	}
	return signed, nil
}

func ValidateJWTToken(tokenString string, secret string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*OperatorClaims)
	if !ok || claims.Scope != JWT.OPERATOR_SCOPE {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
