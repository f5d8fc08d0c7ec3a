package utils

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/config"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/infra/cache"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by every bearer token.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(cfg *config.Config, userID uint, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    cfg.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTExpirationTime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecretKey))
}

// ParseToken validates signature, issuer and expiry and returns the claims.
func ParseToken(cfg *config.Config, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWTSecretKey), nil
	}, jwt.WithIssuer(cfg.JWTIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func blacklistKey(jti string) string {
	return "blacklist:" + jti
}

// IsTokenBlacklisted reports whether the token's jti was revoked by logout.
// Cache failures are returned so the caller decides whether to degrade.
func IsTokenBlacklisted(ctx context.Context, rdb *cache.RedisCache, claims *Claims) (bool, error) {
	if claims.ID == "" {
		return false, nil
	}
	_, err := rdb.Get(ctx, blacklistKey(claims.ID))
	if errors.Is(err, cache.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis error checking blacklist: %w", err)
	}
	return true, nil
}

// AddTokenToBlacklist revokes the token until it would have expired anyway.
func AddTokenToBlacklist(ctx context.Context, rdb *cache.RedisCache, claims *Claims) error {
	if claims.ID == "" {
		return errors.New("token has no jti")
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}
	return rdb.Set(ctx, blacklistKey(claims.ID), "1", ttl)
}

func GetTokenHash(token string) string {
	if token == "" {
		return "empty"
	}
	hash := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", hash[:8])
}
