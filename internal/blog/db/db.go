// Package db はブログサービスのSQLiteクエリ実行オブジェクトを提供する。
//
// 各操作はdatabase/sqlの薄いラッパーで、エンティティごとのパラメータ構造体を
// 受け取りDB行の構造体を返す。一意制約違反の判定ヘルパーも含む。
package db

import (
	"database/sql"
	"strings"
)

// Queries はクエリ実行オブジェクト。
type Queries struct {
	// db はSQLiteデータベース接続。
	db *sql.DB
}

// New は新しいクエリ実行オブジェクトを生成する。
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// IsUniqueViolation はエラーがUNIQUE制約違反かどうかを判定する。
// 重複メールアドレスや重複トピックのConflict判定に使用する。
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
