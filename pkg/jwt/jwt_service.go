package jwt

import (
	"errors"
	"fmt"
	"log"
	"time"

	"leftunder/domain"
	"leftunder/internal/utils"

	"github.com/golang-jwt/jwt/v4"
)

type (
	// JWTService issues and validates the short-lived HS256 tokens the bot
	// and sweeper use against the internal REST surface.
	JWTService interface {
		GenerateServiceToken(caller string) string
		ValidateServiceToken(token string) (string, error)
	}

	serviceClaim struct {
		Caller string `json:"caller"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func getSecretKey() string {
	return utils.GetConfig("SERVICE_JWT_SECRET")
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
		issuer:    "LEFTUNDER",
	}
}

func (j *jwtService) GenerateServiceToken(caller string) string {
	claims := serviceClaim{
		caller,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute * 10)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return tx
}

func (j *jwtService) parseToken(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateServiceToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &serviceClaim{}, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims := parsed.Claims.(*serviceClaim)
	return claims.Caller, nil
}
