package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL はアクセストークンのデフォルト有効期間。
const DefaultTokenTTL = 15 * time.Minute

// tokenIssuer はトークンのiss（発行者）クレームに設定する値。
const tokenIssuer = "blogging-api"

// ErrInvalidToken は署名不一致・パース不能・期限切れ・subクレーム欠落など、
// トークン検証に失敗したすべてのケースを表す。
var ErrInvalidToken = errors.New("invalid token")

// GenerateToken は指定されたサブジェクト（ユーザーID）を持つ
// HS256署名付きアクセストークンを生成する。
// ttlに0以下を指定した場合もそのままexpに反映される（即時失効トークン）。
func GenerateToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    tokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("アクセストークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// VerifyToken はアクセストークンを検証し、サブジェクト（ユーザーID）を返す。
// 署名アルゴリズムはHS256のみ許可する。検証失敗はすべてErrInvalidTokenとして扱う。
func VerifyToken(secret, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// JWTAuth はBearerトークンを検証するGinミドルウェアを返す。
// 検証に成功した場合、コンテキストに "user_id" としてサブジェクトを設定する。
// 失敗時はWWW-Authenticateヘッダーを付与して401で中断し、ハンドラ本体は実行しない。
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorizationヘッダーが必要です")
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			abortUnauthorized(c, "Bearer トークン形式が不正です")
			return
		}

		subject, err := VerifyToken(secret, tokenString)
		if err != nil {
			abortUnauthorized(c, "トークンが無効です")
			return
		}

		c.Set("user_id", subject)
		c.Next()
	}
}

// abortUnauthorized は認証失敗レスポンスを返してリクエストを中断する。
func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
	})
}

// GetUserID はGinコンテキストから認証済みユーザーIDを取得する。
// JWTAuthミドルウェアが事前に適用されている必要がある。
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}
