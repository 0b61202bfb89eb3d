package identity

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for malformed, expired, or forged tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload carrying the user record.
type Claims struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenProvider issues and validates HMAC-signed user tokens.
// It implements Provider.
type TokenProvider struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// NewTokenProvider creates a TokenProvider with the given signing secret.
func NewTokenProvider(secret, issuer string, ttl time.Duration) *TokenProvider {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenProvider{Secret: []byte(secret), Issuer: issuer, TTL: ttl}
}

// IssueToken signs a token identifying the user.
func (p *TokenProvider) IssueToken(u User) (string, error) {
	now := time.Now()
	claims := &Claims{
		TenantID: u.TenantID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    p.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.Secret)
}

// UserFromToken validates the token and rebuilds the user record from its
// claims.
func (p *TokenProvider) UserFromToken(ctx context.Context, tokenStr string) (*User, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if p.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.Secret, nil
	}, opts...)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &User{
		ID:       claims.Subject,
		TenantID: claims.TenantID,
		Email:    claims.Email,
		FullName: claims.FullName,
		Role:     Role(claims.Role),
		IsActive: true,
	}, nil
}
