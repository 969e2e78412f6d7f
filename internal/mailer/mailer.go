package mailer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nao1215/blogging/pkg/httpclient"
)

// Type はメールテンプレートの種別。
type Type string

// TypeRegisterUser はユーザー登録完了メール。
const TypeRegisterUser Type = "register_user"

// defaultCountry はテンプレートに埋め込むデフォルトの地域名。
const defaultCountry = "Delhi"

// dispatchTimeout はワーカーへの1回の送信に許可する最大時間。
const dispatchTimeout = 10 * time.Second

// emailsPath はメール送信ワーカーのエンドポイントパス。
const emailsPath = "/api/v1/emails"

// TemplateData はメールテンプレートへ渡す変数。
type TemplateData struct {
	// Name は宛先ユーザーの表示名。
	Name string `json:"name"`
	// Country はテンプレートに表示する地域名。
	Country string `json:"country"`
}

// Message はメール送信ワーカーへ送る1件のリクエスト。
type Message struct {
	// TemplateData はテンプレート変数。
	TemplateData TemplateData `json:"template_data"`
	// Email は宛先メールアドレス。
	Email string `json:"email"`
	// Type はテンプレート種別。
	Type Type `json:"type"`
}

// NewRegisterMessage はユーザー登録完了メールのメッセージを生成する。
func NewRegisterMessage(name, email string) Message {
	return Message{
		TemplateData: TemplateData{
			Name:    name,
			Country: defaultCountry,
		},
		Email: email,
		Type:  TypeRegisterUser,
	}
}

// Mailer はメール送信キューとディスパッチャーを管理する。
type Mailer struct {
	// client はメール送信ワーカーへのHTTPクライアント。
	client *httpclient.Client
	// queue は送信待ちメッセージのキュー。
	queue chan Message
	// wg はディスパッチャーゴルーチンの終了待ち。
	wg sync.WaitGroup
}

// New は新しいMailerを生成し、ディスパッチャーゴルーチンを起動する。
// queueSizeが0以下の場合は1として扱う。
func New(client *httpclient.Client, queueSize int) *Mailer {
	if queueSize <= 0 {
		queueSize = 1
	}
	m := &Mailer{
		client: client,
		queue:  make(chan Message, queueSize),
	}
	m.wg.Add(1)
	go m.dispatchLoop()
	return m
}

// Enqueue はメッセージを送信キューへ投入する。
// キューが満杯の場合はメッセージを破棄してfalseを返す。ブロックはしない。
func (m *Mailer) Enqueue(msg Message) bool {
	select {
	case m.queue <- msg:
		return true
	default:
		log.Printf("メールキューが満杯のためメッセージを破棄: type=%s email=%s", msg.Type, msg.Email)
		return false
	}
}

// Close はキューを閉じ、残りのメッセージが送信されるまで待機する。
// Close後のEnqueueはpanicするため、サーバー停止時に一度だけ呼ぶこと。
func (m *Mailer) Close() {
	close(m.queue)
	m.wg.Wait()
}

// dispatchLoop はキューからメッセージを取り出し、1件ずつワーカーへ送信する。
func (m *Mailer) dispatchLoop() {
	defer m.wg.Done()
	for msg := range m.queue {
		m.dispatch(msg)
	}
}

// dispatch は1件のメッセージをメール送信ワーカーへPOSTする。
// 送信失敗はログに記録するのみで、リトライは行わない。
func (m *Mailer) dispatch(msg Message) {
	id := uuid.New().String()
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if err := m.client.PostJSON(ctx, emailsPath, msg, nil); err != nil {
		log.Printf("メール送信に失敗: dispatch_id=%s type=%s email=%s error=%v", id, msg.Type, msg.Email, err)
		return
	}
	log.Printf("メール送信を完了: dispatch_id=%s type=%s email=%s", id, msg.Type, msg.Email)
}
