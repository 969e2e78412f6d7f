// Package httpclient は外部ワーカーサービスとのJSON over HTTP通信クライアントを提供する。
//
// メール送信ワーカーへのペイロード送信など、サービス外部への
// リクエスト送信に使用する。
package httpclient
