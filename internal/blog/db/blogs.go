package db

import (
	"context"
)

// Blog はblogsテーブルの1行を表す。
type Blog struct {
	// ID はブログ記事の一意識別子。
	ID int64
	// Topic は記事のトピック（一意、25文字以内）。
	Topic string
	// Data は記事本文。
	Data string
}

// CreateBlogParams はCreateBlogのパラメータ。
type CreateBlogParams struct {
	// Topic は記事のトピック。
	Topic string
	// Data は記事本文。
	Data string
}

// CreateBlog は新しいブログ記事を作成し、採番されたIDを返す。
// トピックが重複している場合はUNIQUE制約違反エラーを返す。
func (q *Queries) CreateBlog(ctx context.Context, arg CreateBlogParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO blogs (topic, data) VALUES (?, ?)",
		arg.Topic, arg.Data,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetBlogByID は指定されたIDのブログ記事を取得する。
// 存在しない場合はsql.ErrNoRowsを返す。
func (q *Queries) GetBlogByID(ctx context.Context, id int64) (Blog, error) {
	var b Blog
	err := q.db.QueryRowContext(ctx,
		"SELECT id, topic, data FROM blogs WHERE id = ?", id,
	).Scan(&b.ID, &b.Topic, &b.Data)
	return b, err
}

// ListBlogs は全ブログ記事をID順に取得する。
func (q *Queries) ListBlogs(ctx context.Context) ([]Blog, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, topic, data FROM blogs ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var blogs []Blog
	for rows.Next() {
		var b Blog
		if err := rows.Scan(&b.ID, &b.Topic, &b.Data); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// UpdateBlogParams はUpdateBlogのパラメータ。
type UpdateBlogParams struct {
	// ID は更新対象記事のID。
	ID int64
	// Topic は更新後のトピック。
	Topic string
	// Data は更新後の本文。
	Data string
}

// UpdateBlog はブログ記事のトピックと本文を置き換える。
// トピックが他記事と重複する場合はUNIQUE制約違反エラーを返す。
func (q *Queries) UpdateBlog(ctx context.Context, arg UpdateBlogParams) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE blogs SET topic = ?, data = ? WHERE id = ?",
		arg.Topic, arg.Data, arg.ID,
	)
	return err
}

// DeleteBlog は指定されたIDのブログ記事を削除する。
// 該当行が存在しない場合もエラーにはならない。
func (q *Queries) DeleteBlog(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM blogs WHERE id = ?", id)
	return err
}
