package db

import (
	"context"
)

// User はusersテーブルの1行を表す。
type User struct {
	// ID はユーザーの一意識別子。
	ID int64
	// Email はログインに使用するメールアドレス（一意）。
	Email string
	// Name はユーザーの表示名。
	Name string
	// Password はbcryptでハッシュ化されたパスワード。
	Password string
}

// CreateUserParams はCreateUserのパラメータ。
type CreateUserParams struct {
	// Email はユーザーのメールアドレス。
	Email string
	// Name はユーザーの表示名。
	Name string
	// Password はハッシュ化済みのパスワード。
	Password string
}

// CreateUser は新しいユーザーを作成し、採番されたIDを返す。
// メールアドレスが重複している場合はUNIQUE制約違反エラーを返す。
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO users (email, name, password) VALUES (?, ?, ?)",
		arg.Email, arg.Name, arg.Password,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetUserByID は指定されたIDのユーザーを取得する。
// 存在しない場合はsql.ErrNoRowsを返す。
func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := q.db.QueryRowContext(ctx,
		"SELECT id, email, name, password FROM users WHERE id = ?", id,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Password)
	return u, err
}

// GetUserByEmail は指定されたメールアドレスのユーザーを取得する。
// 存在しない場合はsql.ErrNoRowsを返す。
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := q.db.QueryRowContext(ctx,
		"SELECT id, email, name, password FROM users WHERE email = ?", email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Password)
	return u, err
}

// ListUsers は全ユーザーをID順に取得する。
func (q *Queries) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, email, name, password FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Password); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUserParams はUpdateUserのパラメータ。
type UpdateUserParams struct {
	// ID は更新対象ユーザーのID。
	ID int64
	// Email は更新後のメールアドレス。
	Email string
	// Name は更新後の表示名。
	Name string
	// Password は更新後のハッシュ化済みパスワード。
	Password string
}

// UpdateUser はユーザーの全可変フィールドを置き換える。
// メールアドレスが他ユーザーと重複する場合はUNIQUE制約違反エラーを返す。
func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE users SET email = ?, name = ?, password = ? WHERE id = ?",
		arg.Email, arg.Name, arg.Password, arg.ID,
	)
	return err
}

// DeleteUser は指定されたIDのユーザーを削除する。
// 該当行が存在しない場合もエラーにはならない。
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}
