// Package middleware はブログサービス共通のGinミドルウェアを提供する。
//
// アクセストークンの発行・検証（JWT HS256）、Bearerトークンによる認証ガード、
// パニックからの回復、CORS設定を含む。
package middleware
