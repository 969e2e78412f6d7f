package blog

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	blogdb "github.com/nao1215/blogging/internal/blog/db"
)

// blogRequest はブログ記事の作成・更新リクエストのJSON構造。
type blogRequest struct {
	// Topic は記事のトピック（25文字以内）。
	Topic string `json:"topic" binding:"required,max=25"`
	// Data は記事本文。
	Data string `json:"data" binding:"required"`
}

// createBlogResponse はブログ記事作成レスポンスのJSON構造。
type createBlogResponse struct {
	// Topic は作成された記事のトピック。
	Topic string `json:"topic"`
	// Content は作成された記事の本文。
	Content string `json:"content"`
}

// blogResponse はブログ記事のJSONレスポンス構造。
type blogResponse struct {
	// ID は記事の一意識別子。
	ID int64 `json:"id"`
	// Topic は記事のトピック。
	Topic string `json:"topic"`
	// Data は記事本文。
	Data string `json:"data"`
}

// toBlogResponse はDB行をJSONレスポンスに変換する。
func toBlogResponse(b blogdb.Blog) blogResponse {
	return blogResponse{
		ID:    b.ID,
		Topic: b.Topic,
		Data:  b.Data,
	}
}

// handleCreateBlog はブログ記事作成を処理するハンドラを返す。
func (s *Server) handleCreateBlog() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req blogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		_, err := s.queries.CreateBlog(c.Request.Context(), blogdb.CreateBlogParams{
			Topic: req.Topic,
			Data:  req.Data,
		})
		if blogdb.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "このトピックは既に使用されています"})
			return
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ブログ記事の作成に失敗しました"})
			log.Printf("ブログ記事作成エラー: %v", err)
			return
		}

		c.JSON(http.StatusCreated, createBlogResponse{
			Topic:   req.Topic,
			Content: req.Data,
		})
	}
}

// handleListBlogs はブログ記事一覧取得を処理するハンドラを返す。
func (s *Server) handleListBlogs() gin.HandlerFunc {
	return func(c *gin.Context) {
		blogs, err := s.queries.ListBlogs(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ブログ記事一覧の取得に失敗しました"})
			log.Printf("ブログ記事一覧取得エラー: %v", err)
			return
		}

		responses := make([]blogResponse, 0, len(blogs))
		for _, b := range blogs {
			responses = append(responses, toBlogResponse(b))
		}

		c.JSON(http.StatusOK, responses)
	}
}

// handleGetBlog はブログ記事詳細取得を処理するハンドラを返す。
func (s *Server) handleGetBlog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "IDは整数で指定してください"})
			return
		}

		b, err := s.queries.GetBlogByID(c.Request.Context(), id)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "ブログ記事が見つかりません"})
			return
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ブログ記事の取得に失敗しました"})
			log.Printf("ブログ記事取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, toBlogResponse(b))
	}
}

// handleUpdateBlog はブログ記事更新を処理するハンドラを返す。
func (s *Server) handleUpdateBlog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "IDは整数で指定してください"})
			return
		}

		// 更新対象の存在確認
		if _, err := s.queries.GetBlogByID(c.Request.Context(), id); err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "ブログ記事が見つかりません"})
			return
		} else if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ブログ記事の取得に失敗しました"})
			log.Printf("ブログ記事取得エラー: %v", err)
			return
		}

		var req blogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		err = s.queries.UpdateBlog(c.Request.Context(), blogdb.UpdateBlogParams{
			ID:    id,
			Topic: req.Topic,
			Data:  req.Data,
		})
		if blogdb.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "このトピックは既に使用されています"})
			return
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ブログ記事の更新に失敗しました"})
			log.Printf("ブログ記事更新エラー: %v", err)
			return
		}

		updated, err := s.queries.GetBlogByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "更新後のブログ記事の取得に失敗しました"})
			log.Printf("ブログ記事取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, toBlogResponse(updated))
	}
}

// handleDeleteBlog はブログ記事削除を処理するハンドラを返す。
// 削除は冪等で、該当記事が存在しない場合も成功レスポンスを返す。
func (s *Server) handleDeleteBlog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "IDは整数で指定してください"})
			return
		}

		if err := s.queries.DeleteBlog(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ブログ記事の削除に失敗しました"})
			log.Printf("ブログ記事削除エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
