package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shortlist-dev/shortlister/internal/apperr"
	"github.com/shortlist-dev/shortlister/internal/domain"
	"github.com/shortlist-dev/shortlister/internal/logger"
)

// Claims is the decoded, trusted content of a session token.
type Claims struct {
	UserId domain.UserId
	Name   string
}

type Service interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(tokenStr string) (Claims, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":  int64(user.Id),
		"name": user.Name,
		"exp":  time.Now().Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", apperr.New(apperr.Infrastructure, "Can't create token")
	}

	return tokenString, nil
}

// DecodeToken verifies signature and expiry. Any failure collapses into a
// single invalid-token error; no field of an unverified token is trusted.
func (j *Jwt) DecodeToken(tokenStr string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.InvalidToken, "Unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, apperr.New(apperr.InvalidToken, "Invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, apperr.New(apperr.InvalidToken, "Invalid or expired token")
	}
	uid, ok := mapClaims["uid"].(float64)
	if !ok {
		return Claims{}, apperr.New(apperr.InvalidToken, "Invalid or expired token")
	}
	name, _ := mapClaims["name"].(string)

	return Claims{UserId: domain.UserId(uid), Name: name}, nil
}
