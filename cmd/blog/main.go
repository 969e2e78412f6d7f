// ブログサービスのエントリポイント。
// ユーザー登録・ログインとブログ記事のCRUDを提供し、
// 登録時には外部メール送信ワーカーへ登録完了メールをディスパッチする。
package main

import (
	"log"

	"github.com/nao1215/blogging/internal/blog"
	"github.com/nao1215/blogging/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	server, err := blog.NewServer(cfg)
	if err != nil {
		log.Fatalf("ブログサーバーの初期化に失敗: %v", err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			log.Printf("ブログサーバーの停止に失敗: %v", err)
		}
	}()

	log.Printf("ブログサービスを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("ブログサービスの起動に失敗: %v", err)
	}
}
