package security

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer     = "kingdomwar"
	defaultTTL = 7 * 24 * time.Hour
)

var ErrJWTSecretMissing = errors.New("JWT_SECRET is not set")

// Claims 与登录服签发的 token 保持一致：uid 即王国的 owner id。
type Claims struct {
	Uid int `json:"uid"`
	jwt.RegisteredClaims
}

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}
	return []byte(secret), nil
}

// Enabled 是否配置了签名密钥（未配置时战斗服不做鉴权）。
func Enabled() bool {
	return os.Getenv("JWT_SECRET") != ""
}

// Award 生成 Token（默认 7 天过期）。主要给测试和运维脚本用，正式 token 由登录服签发。
func Award(uid int) (string, error) {
	return AwardWithTTL(uid, defaultTTL)
}

func AwardWithTTL(uid int, ttl time.Duration) (string, error) {
	key, err := jwtSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		Uid: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// ParseToken 解析并验证 Token（只接受 HS256）。
func ParseToken(tokenStr string) (*jwt.Token, *Claims, error) {
	key, err := jwtSecret()
	if err != nil {
		return nil, nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, nil, err
	}
	if token == nil || !token.Valid || claims.Uid <= 0 {
		return nil, nil, jwt.ErrTokenInvalidClaims
	}
	return token, claims, nil
}
