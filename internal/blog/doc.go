// Package blog はブログサービスのHTTPサーバーを提供する。
//
// ユーザー登録・ログイン・JWT認証付きのユーザーおよびブログ記事のCRUDを
// 公開する。ユーザー登録時には外部メール送信ワーカーへ非同期で
// 登録完了メールをディスパッチする。
package blog
