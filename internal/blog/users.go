package blog

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	blogdb "github.com/nao1215/blogging/internal/blog/db"
	"github.com/nao1215/blogging/internal/mailer"
	"github.com/nao1215/blogging/pkg/middleware"
	"golang.org/x/crypto/bcrypt"
)

// loginRequest はログインリクエストのJSON構造。
type loginRequest struct {
	// Email はログインに使用するメールアドレス。
	Email string `json:"email" binding:"required,email"`
	// Password は平文のパスワード（5〜20文字）。
	Password string `json:"password" binding:"required,min=5,max=20"`
}

// loginResponse はログインレスポンスのJSON構造。
// 認証失敗時はTokenがnullになる。
type loginResponse struct {
	// Success は認証の成否。
	Success bool `json:"success"`
	// Token は発行されたアクセストークン。
	Token *string `json:"token"`
}

// registerRequest はユーザー登録リクエストのJSON構造。
type registerRequest struct {
	// Name はユーザーの表示名。
	Name string `json:"name" binding:"required"`
	// Email はユーザーのメールアドレス。
	Email string `json:"email" binding:"required,email"`
	// Password は平文のパスワード（5〜20文字）。
	Password string `json:"password" binding:"required,min=5,max=20"`
}

// updateUserRequest はユーザー更新リクエストのJSON構造。
type updateUserRequest struct {
	// Name はユーザーの表示名。
	Name string `json:"name" binding:"required"`
	// Email はユーザーのメールアドレス。
	Email string `json:"email" binding:"required,email"`
	// Password は平文のパスワード（5〜20文字）。
	Password string `json:"password" binding:"required,min=5,max=20"`
}

// userResponse はユーザーのJSONレスポンス構造。
// パスワードハッシュはレスポンスに含めない。
type userResponse struct {
	// ID はユーザーの一意識別子。
	ID int64 `json:"id"`
	// Email はユーザーのメールアドレス。
	Email string `json:"email"`
	// Name はユーザーの表示名。
	Name string `json:"name"`
}

// toUserResponse はDB行をJSONレスポンスに変換する。
func toUserResponse(u blogdb.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// handleLogin はログインを処理するハンドラを返す。
// 認証に成功した場合、ユーザーIDをサブジェクトとするアクセストークンを発行する。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		u, err := s.queries.GetUserByEmail(c.Request.Context(), req.Email)
		if err == sql.ErrNoRows {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, loginResponse{Success: false, Token: nil})
			return
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ユーザーの取得に失敗しました"})
			log.Printf("ユーザー取得エラー: %v", err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, loginResponse{Success: false, Token: nil})
			return
		}

		token, err := middleware.GenerateToken(s.cfg.JWTSecret, strconv.FormatInt(u.ID, 10), middleware.DefaultTokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "トークンの発行に失敗しました"})
			log.Printf("トークン発行エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, loginResponse{Success: true, Token: &token})
	}
}

// handleRegister はユーザー登録を処理するハンドラを返す。
// 登録に成功した場合、メール送信ワーカーへ登録完了メールを非同期でディスパッチする。
func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "パスワードのハッシュ化に失敗しました"})
			log.Printf("パスワードハッシュ化エラー: %v", err)
			return
		}

		id, err := s.queries.CreateUser(c.Request.Context(), blogdb.CreateUserParams{
			Email:    req.Email,
			Name:     req.Name,
			Password: string(hash),
		})
		if blogdb.IsUniqueViolation(err) {
			c.JSON(http.StatusForbidden, gin.H{"success": false})
			return
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ユーザーの作成に失敗しました"})
			log.Printf("ユーザー作成エラー: %v", err)
			return
		}

		// 登録完了メールは非同期送信。失敗してもレスポンスには影響しない
		s.mailer.Enqueue(mailer.NewRegisterMessage(req.Name, req.Email))

		c.JSON(http.StatusCreated, gin.H{
			"name":    req.Name,
			"email":   req.Email,
			"id":      id,
			"success": true,
		})
	}
}

// handleListUsers はユーザー一覧取得を処理するハンドラを返す。
func (s *Server) handleListUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.queries.ListUsers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ユーザー一覧の取得に失敗しました"})
			log.Printf("ユーザー一覧取得エラー: %v", err)
			return
		}

		responses := make([]userResponse, 0, len(users))
		for _, u := range users {
			responses = append(responses, toUserResponse(u))
		}

		c.JSON(http.StatusOK, responses)
	}
}

// handleGetUser はユーザー詳細取得を処理するハンドラを返す。
func (s *Server) handleGetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "IDは整数で指定してください"})
			return
		}

		u, err := s.queries.GetUserByID(c.Request.Context(), id)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "ユーザーが見つかりません"})
			return
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ユーザーの取得に失敗しました"})
			log.Printf("ユーザー取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, toUserResponse(u))
	}
}

// handleUpdateUser はユーザー更新を処理するハンドラを返す。
// パスワードは再ハッシュ化して保存する。
func (s *Server) handleUpdateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "IDは整数で指定してください"})
			return
		}

		// 更新対象の存在確認
		if _, err := s.queries.GetUserByID(c.Request.Context(), id); err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "ユーザーが見つかりません"})
			return
		} else if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ユーザーの取得に失敗しました"})
			log.Printf("ユーザー取得エラー: %v", err)
			return
		}

		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "パスワードのハッシュ化に失敗しました"})
			log.Printf("パスワードハッシュ化エラー: %v", err)
			return
		}

		err = s.queries.UpdateUser(c.Request.Context(), blogdb.UpdateUserParams{
			ID:       id,
			Email:    req.Email,
			Name:     req.Name,
			Password: string(hash),
		})
		if blogdb.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "このメールアドレスは既に使用されています"})
			return
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ユーザーの更新に失敗しました"})
			log.Printf("ユーザー更新エラー: %v", err)
			return
		}

		updated, err := s.queries.GetUserByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "更新後のユーザーの取得に失敗しました"})
			log.Printf("ユーザー取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, toUserResponse(updated))
	}
}

// handleDeleteUser はユーザー削除を処理するハンドラを返す。
// 削除は冪等で、該当ユーザーが存在しない場合も成功レスポンスを返す。
func (s *Server) handleDeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "IDは整数で指定してください"})
			return
		}

		if err := s.queries.DeleteUser(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ユーザーの削除に失敗しました"})
			log.Printf("ユーザー削除エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
