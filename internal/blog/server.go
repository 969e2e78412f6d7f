package blog

import (
	"database/sql"
	"embed"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	blogdb "github.com/nao1215/blogging/internal/blog/db"
	"github.com/nao1215/blogging/internal/config"
	"github.com/nao1215/blogging/internal/mailer"
	"github.com/nao1215/blogging/pkg/httpclient"
	"github.com/nao1215/blogging/pkg/middleware"
	"github.com/nao1215/blogging/pkg/migration"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Server はブログサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// cfg はプロセス全体の設定値。
	cfg config.Config
	// queries はクエリ実行オブジェクト。
	queries *blogdb.Queries
	// db はSQLiteデータベース接続。
	db *sql.DB
	// mailer はメール送信ワーカーへの非同期ディスパッチャー。
	mailer *mailer.Mailer
}

// NewServer は新しいブログサーバーを生成する。
// SQLiteデータベースの初期化とマイグレーション適用を行う。
func NewServer(cfg config.Config) (*Server, error) {
	dsn := cfg.DatabasePath
	if dsn != ":memory:" {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	if cfg.DatabasePath == ":memory:" {
		// インメモリDBは接続ごとに独立するため、単一接続に制限する
		sqlDB.SetMaxOpenConns(1)
	}

	if err := migration.Run(sqlDB, migrationsFS, "migrations"); err != nil {
		return nil, fmt.Errorf("マイグレーション適用に失敗: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS([]string{cfg.FrontendURL}))

	s := &Server{
		router:  router,
		cfg:     cfg,
		queries: blogdb.New(sqlDB),
		db:      sqlDB,
		mailer:  mailer.New(httpclient.New(cfg.MailerURL), cfg.MailQueueSize),
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.cfg.Port))
}

// Close はメールキューをフラッシュし、データベース接続を閉じる。
func (s *Server) Close() error {
	s.mailer.Close()
	return s.db.Close()
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	// 認証不要のエンドポイント
	public := api.Group("/users")
	{
		// ログイン（トークン発行）
		public.POST("/login", s.handleLogin())
		// ユーザー登録
		public.POST("/register", s.handleRegister())
	}

	// JWT認証が必要なエンドポイント
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(s.cfg.JWTSecret))
	{
		users := authed.Group("/users")
		{
			// ユーザー一覧取得
			users.GET("/", s.handleListUsers())
			// ユーザー詳細取得
			users.GET("/:id", s.handleGetUser())
			// ユーザー更新
			users.PUT("/:id", s.handleUpdateUser())
			// ユーザー削除
			users.DELETE("/:id", s.handleDeleteUser())
		}

		blogs := authed.Group("/blogs")
		{
			// ブログ記事作成
			blogs.POST("", s.handleCreateBlog())
			// ブログ記事一覧取得
			blogs.GET("", s.handleListBlogs())
			// ブログ記事詳細取得
			blogs.GET("/:id", s.handleGetBlog())
			// ブログ記事更新
			blogs.PUT("/:id", s.handleUpdateBlog())
			// ブログ記事削除
			blogs.DELETE("/:id", s.handleDeleteBlog())
		}
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "blogging"})
	})
}
