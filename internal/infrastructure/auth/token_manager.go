package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"armabazar/internal/domain/entity"
)

// TokenManager verifies the session tokens issued by the identity provider
// and turns them into an explicit principal. Issuance lives here too so the
// dev endpoint can mint tokens locally.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

type sessionClaims struct {
	Admin  bool `json:"admin"`
	Banned bool `json:"banned"`
	jwt.RegisteredClaims
}

func NewTokenManager(secret string, expirySeconds int64) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		expiry: time.Duration(expirySeconds) * time.Second,
	}
}

func (m *TokenManager) Issue(userID string, admin, banned bool) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Admin:  admin,
		Banned: banned,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Verify(tokenString string) (*entity.Principal, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token")
	}

	return &entity.Principal{
		ID:       claims.Subject,
		IsAdmin:  claims.Admin,
		IsBanned: claims.Banned,
	}, nil
}
