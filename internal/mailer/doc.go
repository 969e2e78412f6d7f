// Package mailer は外部メール送信ワーカーへの非同期ディスパッチを提供する。
//
// メッセージは容量制限付きのキューに投入され、専用のゴルーチンがHTTP経由で
// ワーカーへ送信する。キューが満杯の場合はメッセージを破棄してログに記録し、
// 呼び出し元のリクエスト処理をブロックしない。
package mailer
