// Package config はブログサービスのプロセス全体設定を提供する。
//
// 設定はすべて環境変数から読み込み、起動時に一度だけパースする。
// パース後の値は変更せず、依存するコンポーネントへ明示的に注入する。
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config はブログサービスの設定値。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string `env:"PORT" envDefault:"8000"`
	// DatabasePath はSQLiteデータベースファイルのパス。
	DatabasePath string `env:"DATABASE_PATH" envDefault:"/data/blogging.db"`
	// JWTSecret はアクセストークン署名用の秘密鍵。
	// ローテーションすると発行済みトークンはすべて無効になる。
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-key"`
	// MailerURL はメール送信ワーカーのベースURL。
	MailerURL string `env:"MAILER_URL" envDefault:"http://localhost:8090"`
	// MailQueueSize はメール送信キューの上限。超過分は破棄される。
	MailQueueSize int `env:"MAIL_QUEUE_SIZE" envDefault:"100"`
	// FrontendURL はCORSで許可するフロントエンドのオリジン。
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
}

// Load は環境変数から設定を読み込む。
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("環境変数のパースに失敗: %w", err)
	}
	return cfg, nil
}
