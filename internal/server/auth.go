package server

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"draw-guess/internal/config"
	"draw-guess/internal/game"
)

// Tokenizer issues and verifies the per-player tokens handed out on create
// and join. A token binds one player name to one game code.
type Tokenizer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

type playerClaims struct {
	Code string `json:"code"`
	User string `json:"user"`
	jwt.RegisteredClaims
}

func NewTokenizer(cfg config.Config) *Tokenizer {
	return &Tokenizer{
		secret: []byte(cfg.JWTSecret),
		expiry: time.Duration(cfg.JWTExpirySeconds) * time.Second,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create signs a token for user in the game identified by code.
func (t *Tokenizer) Create(code, user string) (string, error) {
	now := t.now()
	claims := playerClaims{
		Code: code,
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Authenticate checks that the bearer token in header belongs to user acting
// in the game identified by code.
func (t *Tokenizer) Authenticate(header, code, user string) error {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return game.ErrUnauthorized
	}
	var claims playerClaims
	_, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, game.ErrUnauthorized
		}
		return t.secret, nil
	})
	if err != nil {
		return game.ErrUnauthorized
	}
	if claims.Code != code || claims.User != user {
		return game.ErrUnauthorized
	}
	return nil
}
