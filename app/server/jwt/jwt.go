package jwt

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"time"
)

// ErrInvalidToken 覆盖所有验证失败的情况：格式错误、未签名、密钥不对、内容被篡改、缺少 userId
var ErrInvalidToken = errors.New("invalid token")

// JWT 是无状态的签发与验证器，不保存任何 token ，所以不支持吊销
type JWT struct {
	key []byte
}

type User struct {
	ID string
}

type claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func New(key string) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key)}, nil
}

func (j *JWT) ParseUser(tokenString string) (*User, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, fmt.Errorf("%w: token string is empty", ErrInvalidToken)
	}

	// 只接受 HS256 ，避免 alg 被替换成 none 或者非对称算法
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	// 匹配内容
	if !token.Valid || c.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	return &User{ID: c.UserID}, nil
}

// SignToken 只绑定用户 ID ，不设置过期时间
func (j *JWT) SignToken(user *User) (string, error) {
	if user == nil || user.ID == "" {
		return "", errors.New("user id is empty")
	}

	// 创建声明
	c := claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	// 签名并返回
	return token.SignedString(j.key)
}
